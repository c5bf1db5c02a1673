package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newSizesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sizes",
		Short: "Print the dimensions of every loaded table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, logger, err := buildRegistry()
			if err != nil {
				return err
			}
			defer logger.Sync()

			name := color.New(color.FgCyan).SprintFunc()
			dim := color.New(color.Faint).SprintFunc()
			for _, s := range r.SampleSizes() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %6d %s %d %s\n",
					name(s.Name), s.Rows, dim("rows x"), s.Cols, dim("cols"))
			}
			return nil
		},
	}
}
