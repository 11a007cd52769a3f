package main

import (
	"bytes"
	"fmt"

	"kgraph-api/core/export"

	"github.com/spf13/cobra"
)

func newRenderCmd() *cobra.Command {
	opts := &graphOptions{}
	var outDir string
	var useS3 bool

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a graph page",
		Long:  `Builds the graph and writes it as a standalone HTML page named <username>_<i|m>.html.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			doc, services, err := buildDocument(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer services.Close()

			if cmd.Flags().Changed("out") {
				services.Config.Output.Dir = outDir
			}

			var buf bytes.Buffer
			if err := export.RenderHTML(&buf, doc); err != nil {
				return fmt.Errorf("failed to render graph: %w", err)
			}

			publisher, err := services.Publisher(ctx, useS3)
			if err != nil {
				return err
			}

			name := export.FileName(doc.Username, doc.Isolate)
			location, err := publisher.Publish(ctx, name, "text/html", &buf)
			if err != nil {
				return err
			}

			printStats(cmd.ErrOrStderr(), doc)
			fmt.Fprintln(cmd.OutOrStdout(), location)
			return nil
		},
	}

	addGraphFlags(cmd, opts)
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (defaults to OUTPUT_DIR)")
	cmd.Flags().BoolVar(&useS3, "s3", false, "upload to S3_BUCKET instead of writing locally")
	return cmd
}
