package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match",
		Short: "Print the sample barcodes shared by the selected modalities",
		Long: "Computes the order-preserving intersection of sample barcodes across " +
			"the selected modalities and prints one barcode per line.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, logger, err := buildRegistry()
			if err != nil {
				return err
			}
			defer logger.Sync()

			mods := r.Modalities()
			matched, err := r.MatchSamples(mods)
			if err != nil {
				return err
			}

			for _, id := range matched {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d samples matched across %d modalities\n",
				len(matched), len(mods))
			return nil
		},
	}
}
