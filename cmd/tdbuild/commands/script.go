package commands

import (
	"os"

	"github.com/spf13/cobra"
)

func (c *CLI) newScriptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "script [groups...]",
		Short: "Write a conformance script per task instead of running the generators",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			return c.app.EmitScripts(cmd.Context(), cwd, args)
		},
	}
}
