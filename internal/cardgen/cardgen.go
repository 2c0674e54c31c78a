// Package cardgen runs complete renders: presets and card metadata in, one
// PDF per arrangement out.
package cardgen

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/alping/medrefcards/internal/config"
	"github.com/alping/medrefcards/internal/deck"
	"github.com/alping/medrefcards/internal/layout"
	"github.com/alping/medrefcards/internal/pdf"
	"github.com/alping/medrefcards/internal/scanner"
	"github.com/alping/medrefcards/pkg/logger"
)

const FilePrefix = "medical-reference-cards"

type Options struct {
	ContentRoot  string
	OutputDir    string
	ThemeDir     string
	Locale       string
	Layout       string
	ColourScheme string
	Filter       string
	Sort         deck.SortKey
	Reverse      bool
	Title        string
	// Name replaces the default file name. With several arrangements the
	// arrangement is appended to keep the files apart.
	Name string
	// Arrangements overrides the layout preset's own arrangement. Each one
	// is rendered to its own document.
	Arrangements []layout.Arrangement
}

type Result struct {
	Path   string
	Report *pdf.Report
}

type Generator struct {
	content *pdf.ContentResolver
	logger  *logger.Logger
}

// New returns a Generator whose content probes are shared by every run it
// performs.
func New(logger *logger.Logger) *Generator {
	return &Generator{
		content: pdf.NewContentResolver(logger),
		logger:  logger,
	}
}

type job struct {
	composer *pdf.Composer
	path     string
	warnings []string
}

// Generate renders the deck in the first requested arrangement, or in the
// layout's own arrangement when none is requested.
func (g *Generator) Generate(ctx context.Context, opts Options) (*Result, error) {
	if len(opts.Arrangements) > 1 {
		opts.Arrangements = opts.Arrangements[:1]
	}
	results, err := g.GenerateAll(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &results[0], nil
}

// GenerateAll renders one document per arrangement concurrently. Presets,
// metadata and the filter are validated before any output file is created.
func (g *Generator) GenerateAll(ctx context.Context, opts Options) ([]Result, error) {
	d, jobs, err := g.prepare(ctx, opts)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Join(opts.OutputDir, opts.Locale), 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	results := make([]Result, len(jobs))
	eg, ctx := errgroup.WithContext(ctx)
	for i, j := range jobs {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report, err := g.render(j, d)
			if err != nil {
				return err
			}
			results[i] = Result{Path: j.path, Report: report}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (g *Generator) prepare(ctx context.Context, opts Options) (*deck.Deck, []job, error) {
	filter, err := deck.ParseFilter(opts.Filter)
	if err != nil {
		return nil, nil, err
	}

	presets := config.New(opts.ThemeDir, g.logger)
	spec, err := presets.Layout(opts.Layout)
	if err != nil {
		return nil, nil, err
	}
	colours, err := presets.ColourScheme(opts.ColourScheme)
	if err != nil {
		return nil, nil, err
	}

	root := filepath.Join(opts.ContentRoot, opts.Locale)
	g.logger.Info("Scanning content: %s", root)
	records, err := scanner.New(g.logger).LoadRecords(ctx, root)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load cards: %w", err)
	}

	all, err := deck.Load(records)
	if err != nil {
		return nil, nil, err
	}
	d := all.Select(filter)
	d.Sort(opts.Sort, opts.Reverse)
	g.logger.Info("Deck ready: %d of %d cards in %d domains", d.Len(), all.Len(), len(d.Domains()))
	if d.Len() == 0 {
		msg := fmt.Sprintf("filter %q matches no cards", opts.Filter)
		presets.Warnings = append(presets.Warnings, msg)
		g.logger.Warn("%s", msg)
	}

	arrangements := slices.Compact(slices.Clone(opts.Arrangements))
	if len(arrangements) == 0 {
		arrangements = []layout.Arrangement{spec.Arrangement()}
	}

	jobs := make([]job, 0, len(arrangements))
	for _, a := range arrangements {
		s, err := spec.WithArrangement(a)
		if err != nil {
			return nil, nil, err
		}
		jobs = append(jobs, job{
			composer: pdf.NewComposer(s, colours, g.content, pdf.Options{Title: opts.Title, Locale: opts.Locale}, g.logger),
			path:     filepath.Join(opts.OutputDir, opts.Locale, fileName(opts.Name, a, len(arrangements))+".pdf"),
			warnings: slices.Clone(presets.Warnings),
		})
	}
	return d, jobs, nil
}

func fileName(name string, a layout.Arrangement, n int) string {
	switch {
	case name == "":
		return FilePrefix + "-" + string(a)
	case n > 1:
		return name + "-" + string(a)
	}
	return name
}

// render composes in memory and only then writes the file, so a failed run
// leaves no partial document behind.
func (g *Generator) render(j job, d *deck.Deck) (*pdf.Report, error) {
	surface := pdf.NewFPDFSurface(j.composer.Title())
	report, err := j.composer.Compose(surface, d)
	if err != nil {
		return nil, fmt.Errorf("failed to compose %s: %w", j.path, err)
	}
	report.Warnings = append(j.warnings, report.Warnings...)

	var buf bytes.Buffer
	if err := surface.Write(&buf); err != nil {
		return nil, err
	}
	if err := writeFile(j.path, buf.Bytes()); err != nil {
		return nil, err
	}

	g.logger.Info("Wrote %s", j.path)
	return report, nil
}

func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".medrefcards-*.pdf")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
