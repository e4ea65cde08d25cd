package commands

import (
	"os"

	"github.com/spf13/cobra"
)

func (c *CLI) newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [groups...]",
		Short: "Run the generation tasks of the named groups (all groups when none are given)",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parallelism, _ := cmd.Flags().GetInt("parallelism")
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			return c.app.Generate(cmd.Context(), cwd, args, parallelism)
		},
	}
	cmd.Flags().IntP("parallelism", "p", 0, "Maximum concurrent generator invocations (0 = number of CPUs)")
	return cmd
}
