// Package site runs pagination as a pipeline stage of a static site build.
//
// The host calls Generate after all pages and items are read and before
// rendering. Generate locates a template page per run, computes the page
// windows and materializes pages 2..N as clones of the template.
package site

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sternrassler/site-paginate/pkg/config"
	"github.com/Sternrassler/site-paginate/pkg/locator"
	"github.com/Sternrassler/site-paginate/pkg/pagination"
	"github.com/Sternrassler/site-paginate/pkg/paths"
	"github.com/rs/zerolog"
)

// Skip reasons reported in RunReport.Skipped.
const (
	SkipConfig   = "config"
	SkipTemplate = "template"
)

// Site is the host state that pagination reads and extends.
type Site struct {
	// Source is the absolute site source directory.
	Source string

	// Pages is every page of the site. Generate appends numbered pages.
	Pages []*Page

	// Items is the ordered collection to paginate.
	Items []pagination.Item
}

// PlanStore remembers the plan of previous builds. Sync reports the page
// numbers that changed since and those that no longer exist.
type PlanStore interface {
	Sync(ctx context.Context, site, category string, windows []pagination.Window) (changed, removed []int, err error)
}

// RunReport describes the outcome of one pagination run.
type RunReport struct {
	Category     string `json:"category,omitempty"`
	PathTemplate string `json:"path_template"`
	Template     string `json:"template,omitempty"`
	Pages        int    `json:"pages"`
	Skipped      string `json:"skipped,omitempty"`
	Reason       string `json:"reason,omitempty"`
	Changed      []int  `json:"changed,omitempty"`
	Removed      []int  `json:"removed,omitempty"`
}

// Report collects the run reports of one Generate call.
type Report struct {
	Runs []RunReport `json:"runs"`
}

// PagesEmitted returns the number of numbered pages added to the site.
func (r Report) PagesEmitted() int {
	n := 0
	for _, run := range r.Runs {
		if run.Pages > 1 {
			n += run.Pages - 1
		}
	}
	return n
}

// Generator is the pagination pipeline stage.
type Generator struct {
	config config.Pagination
	logger zerolog.Logger
	runner *pagination.Runner
	plans  PlanStore
}

// Option configures a Generator.
type Option func(*Generator)

// WithRunner sets the runner used for the pagination runs.
func WithRunner(r *pagination.Runner) Option {
	return func(g *Generator) {
		g.runner = r
	}
}

// WithPlanCache enables change reporting against previous builds.
func WithPlanCache(store PlanStore) Option {
	return func(g *Generator) {
		g.plans = store
	}
}

// NewGenerator creates a pagination stage for the given settings.
func NewGenerator(cfg config.Pagination, logger zerolog.Logger, opts ...Option) *Generator {
	if cfg.TemplateName == "" {
		cfg.TemplateName = config.DefaultTemplateName
	}
	g := &Generator{
		config: cfg,
		logger: logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.runner == nil {
		g.runner = pagination.NewRunner(pagination.DefaultRunnerConfig())
	}
	return g
}

// run is one planned pagination run before it is computed.
type run struct {
	report   RunReport
	template *Page
	job      pagination.Job
}

// Generate paginates the site items and appends numbered pages to s.Pages.
//
// Runs with an invalid configuration or without a template page are
// skipped with a warning. Any other error aborts Generate; s is not
// modified in that case.
func (g *Generator) Generate(ctx context.Context, s *Site) (Report, error) {
	var report Report
	if !g.config.Enabled {
		g.logger.Debug().Msg("Pagination disabled")
		return report, nil
	}
	if len(s.Pages) == 0 {
		g.logger.Debug().Msg("No pages, skipping pagination")
		return report, nil
	}

	planned, err := g.plan(s, &report)
	if err != nil {
		return report, err
	}

	jobs := make([]pagination.Job, len(planned))
	for i, r := range planned {
		jobs[i] = r.job
	}
	// Per-result errors are inspected below.
	results, _ := g.runner.RunAll(ctx, jobs)

	windows := make([][]pagination.Window, len(planned))
	for i, res := range results {
		r := &planned[i]
		if res.Err != nil {
			if !skippable(res.Err) {
				return report, fmt.Errorf("paginate %s: %w", describe(r.report), res.Err)
			}
			g.skip(&r.report, SkipConfig, res.Err)
			continue
		}
		windows[i] = res.Windows
		r.report.Pages = len(res.Windows)
	}

	if g.plans != nil {
		for i := range planned {
			if planned[i].report.Skipped != "" {
				continue
			}
			changed, removed, err := g.plans.Sync(ctx, s.Source, planned[i].job.Config.Category, windows[i])
			if err != nil {
				g.logger.Warn().Err(err).
					Str("category", planned[i].job.Config.Category).
					Msg("Plan cache unavailable, change report skipped")
				continue
			}
			planned[i].report.Changed = changed
			planned[i].report.Removed = removed
		}
	}

	claimed := make(map[*Page]string, len(planned))
	for i := range planned {
		r := &planned[i]
		if r.report.Skipped != "" {
			report.Runs = append(report.Runs, r.report)
			continue
		}
		if prev, ok := claimed[r.template]; ok {
			g.logger.Warn().
				Str("template", r.template.Path).
				Str("previous", prev).
				Str("run", describe(r.report)).
				Msg("Template page shared by several runs, later run wins page 1")
		}
		claimed[r.template] = describe(r.report)

		s.Pages = append(s.Pages, materialize(r.template, windows[i])...)
		runsTotal.WithLabelValues("ok").Inc()
		report.Runs = append(report.Runs, r.report)

		g.logger.Info().
			Str("run", describe(r.report)).
			Str("template", r.template.Path).
			Int("items", len(r.job.Items)).
			Int("pages", r.report.Pages).
			Msg("Pagination run complete")
	}

	pagesEmitted.Add(float64(report.PagesEmitted()))
	return report, nil
}

// plan builds one run per category, or a single default run, and locates
// the template page of each. Runs that cannot be located are recorded as
// skipped in report and left out of the result.
func (g *Generator) plan(s *Site, report *Report) ([]run, error) {
	type runPlan struct {
		category string
		perPage  int
		pattern  string
		items    []pagination.Item
	}

	var plans []runPlan
	if g.config.Categories.Enabled {
		names := g.config.Categories.Names
		if len(names) == 0 {
			names = pagination.Categories(s.Items)
		}
		for _, name := range names {
			perPage, pattern := g.config.ForCategory(name)
			plans = append(plans, runPlan{
				category: name,
				perPage:  perPage,
				pattern:  pattern,
				items:    pagination.ForCategory(s.Items, name),
			})
		}
	} else {
		plans = append(plans, runPlan{
			perPage: g.config.PerPage,
			pattern: g.config.Path,
			items: pagination.Filter(s.Items, pagination.FilterOptions{
				ExcludedCategories: g.config.ExcludeCategories.Names,
			}),
		})
	}

	runs := make([]run, 0, len(plans))
	for _, sp := range plans {
		rr := RunReport{Category: sp.category, PathTemplate: sp.pattern}

		tpl, err := locator.Find(s.Pages, locator.Options{
			SourceRoot:   s.Source,
			PathTemplate: sp.pattern,
			TemplateName: g.config.TemplateName,
		})
		if err != nil {
			if !skippable(err) {
				return nil, fmt.Errorf("locate template for %s: %w", describe(rr), err)
			}
			reason := SkipConfig
			if errors.Is(err, locator.ErrNoTemplate) {
				reason = SkipTemplate
			}
			g.skip(&rr, reason, err)
			report.Runs = append(report.Runs, rr)
			continue
		}
		rr.Template = tpl.Path

		runs = append(runs, run{
			report:   rr,
			template: tpl,
			job: pagination.Job{
				Config: pagination.Config{
					PerPage:       sp.perPage,
					PathTemplate:  sp.pattern,
					FirstPagePath: tpl.URL(),
					Category:      sp.category,
				},
				Items: sp.items,
			},
		})
	}
	return runs, nil
}

func (g *Generator) skip(rr *RunReport, reason string, err error) {
	rr.Skipped = reason
	rr.Reason = err.Error()
	runsTotal.WithLabelValues("skipped_" + reason).Inc()

	g.logger.Warn().
		Err(err).
		Str("run", describe(*rr)).
		Str("path", rr.PathTemplate).
		Msg("Pagination skipped")
}

// materialize attaches page 1 to the template and returns clones for
// pages 2..N. Clones drop the template's permalink so that they are
// written under their own page path.
func materialize(template *Page, windows []pagination.Window) []*Page {
	if len(windows) == 0 {
		return nil
	}

	first := windows[0]
	template.Pager = &first

	pages := make([]*Page, 0, len(windows)-1)
	for i := 1; i < len(windows); i++ {
		w := windows[i]
		p := template.Clone()
		p.Dir = w.PagePath
		p.Permalink = ""
		p.Pager = &w
		pages = append(pages, p)
	}
	return pages
}

// skippable reports whether err only disables the affected run.
func skippable(err error) bool {
	return paths.IsConfigurationError(err) || errors.Is(err, locator.ErrNoTemplate)
}

func describe(rr RunReport) string {
	if rr.Category == "" {
		return "default"
	}
	return "category " + rr.Category
}
