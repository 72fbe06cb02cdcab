package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yacobolo/seess"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of seess",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "seess %s\n", seess.Version)
	},
}
