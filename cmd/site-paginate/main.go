package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/Sternrassler/site-paginate/pkg/cache"
	"github.com/Sternrassler/site-paginate/pkg/config"
	"github.com/Sternrassler/site-paginate/pkg/ingest"
	"github.com/Sternrassler/site-paginate/pkg/logging"
	"github.com/Sternrassler/site-paginate/pkg/metrics"
	"github.com/Sternrassler/site-paginate/pkg/pagination"
	"github.com/Sternrassler/site-paginate/pkg/site"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

type options struct {
	logLevel    string
	pretty      bool
	redisURL    string
	concurrency int
	showMetrics bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "site-paginate",
		Short:         "Plan paginated pages for a static site",
		Long:          `Computes the numbered pages a static site build produces from a site manifest.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(opts.logLevel)
			if err != nil {
				return err
			}
			logging.Setup(logging.Config{
				Level:  level,
				Pretty: opts.pretty,
				Output: cmd.ErrOrStderr(),
			})
			return nil
		},
	}
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&opts.pretty, "pretty", false, "Human-readable log output")

	plan := &cobra.Command{
		Use:   "plan <manifest.yaml>",
		Short: "Run pagination over a site manifest and print the generated pages as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}
	plan.Flags().StringVar(&opts.redisURL, "redis-url", os.Getenv("REDIS_URL"), "Redis URL for change reports against previous builds (e.g. redis://localhost:6379/0)")
	plan.Flags().IntVar(&opts.concurrency, "concurrency", pagination.DefaultRunnerConfig().MaxConcurrency, "Maximum number of category runs computed in parallel")
	plan.Flags().BoolVar(&opts.showMetrics, "metrics", false, "Include a metrics snapshot in the output")

	validate := &cobra.Command{
		Use:   "validate <config.yml>",
		Short: "Check the pagination settings of a site configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.OutOrStdout(), args[0])
		},
	}

	root.AddCommand(plan, validate)
	return root
}

// planOutput is the JSON document printed by the plan command.
type planOutput struct {
	Report  site.Report      `json:"report"`
	Pages   []pageOutput     `json:"pages"`
	Metrics []metrics.Sample `json:"metrics,omitempty"`
}

type pageOutput struct {
	URL    string         `json:"url"`
	Source string         `json:"source"`
	Data   map[string]any `json:"data"`
}

func runPlan(ctx context.Context, out io.Writer, manifestPath string, opts *options) error {
	logger := logging.NewLogger(logging.ComponentCLI)

	f, err := os.Open(manifestPath)
	if err != nil {
		return fmt.Errorf("open manifest: %w", err)
	}
	manifest, err := site.LoadManifest(f)
	f.Close()
	if err != nil {
		return err
	}

	cfg, warnings, err := manifest.Pagination()
	logging.Warnings(logger, "Configuration warning", warnings)
	if err != nil {
		return err
	}

	s := manifest.Site()
	if manifest.Feed != "" {
		items, err := loadFeed(ctx, filepath.Dir(manifestPath), manifest.Feed)
		if err != nil {
			return err
		}
		s.Items = append(s.Items, items...)
	}

	genOpts := []site.Option{
		site.WithRunner(pagination.NewRunner(pagination.RunnerConfig{MaxConcurrency: opts.concurrency})),
	}
	if opts.redisURL != "" {
		redisOpts, err := redis.ParseURL(opts.redisURL)
		if err != nil {
			return fmt.Errorf("parse redis url: %w", err)
		}
		redisClient := redis.NewClient(redisOpts)
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		logger.Info().Str("addr", redisOpts.Addr).Msg("Plan cache enabled")
		genOpts = append(genOpts, site.WithPlanCache(cache.NewManager(redisClient)))
	}

	gen := site.NewGenerator(cfg.Pagination, logging.NewLogger(logging.ComponentGenerator), genOpts...)
	report, err := gen.Generate(ctx, s)
	if err != nil {
		return err
	}

	result := planOutput{Report: report, Pages: []pageOutput{}}
	for _, p := range s.Pages {
		if p.Pager == nil {
			continue
		}
		result.Pages = append(result.Pages, pageOutput{
			URL:    p.URL(),
			Source: p.SourcePath(),
			Data:   p.TemplateData(),
		})
	}
	if opts.showMetrics {
		samples, err := metrics.Snapshot()
		if err != nil {
			return fmt.Errorf("gather metrics: %w", err)
		}
		result.Metrics = samples
	}

	logger.Info().
		Int("runs", len(report.Runs)).
		Int("pages_emitted", report.PagesEmitted()).
		Int("items", len(s.Items)).
		Msg("Plan complete")

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// loadFeed reads a feed from a URL or from a path relative to the manifest.
// Local .yml and .yaml files are item lists.
func loadFeed(ctx context.Context, baseDir, feed string) ([]pagination.Item, error) {
	if strings.HasPrefix(feed, "http://") || strings.HasPrefix(feed, "https://") {
		return ingest.FetchFeed(ctx, nil, feed)
	}

	path := feed
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feed: %w", err)
	}
	defer f.Close()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return ingest.FromYAML(f)
	}
	return ingest.FromFeed(f)
}

func runValidate(out io.Writer, configPath string) error {
	cfg, warnings, err := config.Load(configPath)
	for _, w := range warnings {
		fmt.Fprintf(out, "warning: %s\n", w)
	}
	if err != nil {
		return err
	}

	p := cfg.Pagination
	if !p.Enabled {
		fmt.Fprintln(out, "pagination disabled")
		return nil
	}
	fmt.Fprintf(out, "pagination enabled: per_page=%d path=%s template=%s\n", p.PerPage, p.Path, p.TemplateName)
	if p.Categories.Enabled {
		names := p.Categories.Names
		if len(names) == 0 {
			fmt.Fprintln(out, "categories: all")
		}
		for _, name := range names {
			perPage, pattern := p.ForCategory(name)
			fmt.Fprintf(out, "category %s: per_page=%d path=%s\n", name, perPage, pattern)
		}
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
