package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .seess.yaml config file",
	Long:  `Create a .seess.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")
		path, _ := cmd.Flags().GetString("config")
		if path == "" {
			path = defaultConfigPath
		}

		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
		return nil
	},
}

const defaultConfig = `# seess configuration
# Docs: https://github.com/yacobolo/seess

# Shared settings
verbose: false
color: false
log-level: info

# Analysis settings
analyze:
  paths:
    - "**/*.css"
  format: text            # text | json | markdown
  caveats: false
  strict: false
  jobs: 0                 # 0 = GOMAXPROCS
  include-minified: false
  ignore-file: .gitignore
  print-lines: true

# Command host settings
serve:
  addr: 127.0.0.1:8787
  max-body-bytes: 1048576
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
