package main

import (
	"context"
	"fmt"
	"io"

	"kgraph-api/cmd/internal/app"
	"kgraph-api/core/corpus"
	"kgraph-api/core/export"
	"kgraph-api/core/pipeline"
	logruslogger "kgraph-api/infrastructure/logger/logrus"
	"kgraph-api/pkg/config"

	"github.com/spf13/cobra"
)

// DefaultUsername is used when -u is not given
const DefaultUsername = "justdataplease"

// graphOptions are the flags shared by build and render
type graphOptions struct {
	username   string
	limit      int
	isolate    bool
	input      string
	exclusions []string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "kgraph",
		Short:         "KGraph - citation graphs for a writer's articles",
		Long:          `KGraph links a writer's articles to each other and to the external domains they cite, and renders the result as an interactive page.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRenderCmd(), newBuildCmd())
	return root
}

func addGraphFlags(cmd *cobra.Command, opts *graphOptions) {
	flags := cmd.Flags()
	flags.StringVarP(&opts.username, "username", "u", DefaultUsername, "author handle whose feed is loaded")
	flags.IntVarP(&opts.limit, "limit", "l", 0, "maximum number of articles (0 loads all)")
	flags.BoolVarP(&opts.isolate, "isolate", "i", false, "deduplicate domains per article instead of globally")
	flags.StringVar(&opts.input, "input", "", "corpus file (.json, .yaml) to use instead of the feed")
	flags.StringSliceVar(&opts.exclusions, "exclude", nil, "link exclusion patterns (replaces the defaults)")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr")
}

// buildDocument loads the corpus from the file or the feed and builds its graph
func buildDocument(ctx context.Context, cmd *cobra.Command, opts *graphOptions) (*export.Document, *app.App, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, nil, err
	}
	if cmd.Flags().Changed("isolate") {
		cfg.Graph.Isolate = opts.isolate
	}
	if len(opts.exclusions) > 0 {
		cfg.Graph.ExcludePatterns = opts.exclusions
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logruslogger.NewLoggerWithWriter(cmd.ErrOrStderr(), opts.logLevel)

	services, err := app.New(cfg, logger, nil)
	if err != nil {
		return nil, nil, err
	}

	isolate := cfg.Graph.Isolate

	if opts.input != "" {
		c, err := corpus.LoadFile(opts.input)
		if err != nil {
			services.Close()
			return nil, nil, err
		}
		if c.User.Username == "" {
			c.User.Username = opts.username
		}
		c.Truncate(opts.limit)

		doc, err := services.Pipeline.FromCorpus(ctx, c, pipeline.Options{Isolate: isolate})
		if err != nil {
			services.Close()
			return nil, nil, err
		}
		return doc, services, nil
	}

	doc, err := services.Pipeline.Generate(ctx, pipeline.Request{
		Username:    opts.username,
		Isolate:     isolate,
		MaxArticles: opts.limit,
	})
	if err != nil {
		services.Close()
		return nil, nil, err
	}
	return doc, services, nil
}

func printStats(w io.Writer, doc *export.Document) {
	fmt.Fprintf(w, "articles: %d  domains: %d  edges: %d", doc.Stats.Articles, doc.Stats.Domains, doc.Stats.Edges)
	if doc.Stats.Collisions > 0 {
		fmt.Fprintf(w, "  slug collisions: %d", doc.Stats.Collisions)
	}
	fmt.Fprintln(w)
}
