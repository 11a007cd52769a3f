package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

func newBuildCmd() *cobra.Command {
	opts := &graphOptions{}
	var compact bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Print the graph document as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, services, err := buildDocument(cmd.Context(), cmd, opts)
			if err != nil {
				return err
			}
			defer services.Close()

			enc := json.NewEncoder(cmd.OutOrStdout())
			if !compact {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(doc)
		},
	}

	addGraphFlags(cmd, opts)
	cmd.Flags().BoolVar(&compact, "compact", false, "emit JSON without indentation")
	return cmd
}
