package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dop251/goja"
	"github.com/spf13/cobra"
	"github.com/yacobolo/seess/internal/bridge"
)

var evalCmd = &cobra.Command{
	Use:   "eval [script.js]",
	Short: "Run JavaScript with the seess bridge installed",
	Long: `Run a script in an embedded JavaScript runtime that provides
analyze_css_js(input) and get_version(). The value of the last expression is
printed as JSON.

  seess eval -e 'analyze_css_js("h1, h2 { color: red; }")'`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runEval,
}

func init() {
	f := evalCmd.Flags()
	f.StringP("expr", "e", "", "Evaluate this source instead of a script file")
	f.Duration("timeout", 10*time.Second, "Interrupt the script after this long (0 = no limit)")
}

func runEval(cmd *cobra.Command, args []string) error {
	expr, _ := cmd.Flags().GetString("expr")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	name, src := "<expr>", expr
	switch {
	case expr != "" && len(args) > 0:
		return fmt.Errorf("use either a script file or --expr, not both")
	case len(args) > 0:
		name = args[0]
		// #nosec G304 - script path comes from the command line
		data, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("reading script: %w", err)
		}
		src = string(data)
	case expr == "":
		return fmt.Errorf("a script file or --expr is required")
	}

	rt, err := bridge.New(cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	value, err := rt.Run(ctx, name, src)
	if err != nil {
		return err
	}

	if value == nil || goja.IsUndefined(value) || goja.IsNull(value) {
		return nil
	}

	out, err := json.MarshalIndent(value.Export(), "", "  ")
	if err != nil {
		return &bridge.SerializationError{Err: err}
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
