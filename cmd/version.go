package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the crsconv and PROJ versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "crsconv %s\n", Version)
			if deps.EngineVersion != nil {
				fmt.Fprintf(out, "PROJ %s\n", deps.EngineVersion())
			}
			return nil
		},
	}
}
