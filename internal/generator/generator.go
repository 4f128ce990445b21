// Package generator turns a finished schema into generated artifacts.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/tordrt/modelschema/internal/codegen"
	"github.com/tordrt/modelschema/internal/db"
	"github.com/tordrt/modelschema/internal/ddl"
	"github.com/tordrt/modelschema/internal/formatter"
	"github.com/tordrt/modelschema/internal/schema"
)

// Generator consumes a finished schema.
type Generator interface {
	Generate(ctx context.Context, s *schema.Schema, outDir string) error
}

// Func adapts a function to Generator.
type Func func(ctx context.Context, s *schema.Schema, outDir string) error

// Generate calls f.
func (f Func) Generate(ctx context.Context, s *schema.Schema, outDir string) error {
	return f(ctx, s, outDir)
}

// Targets understood by New.
const (
	TargetDocs     = "docs"
	TargetGo       = "go"
	TargetSQL      = "sql"
	TargetSnapshot = "snapshot"
)

// AllTargets lists every target in generation order.
var AllTargets = []string{TargetGo, TargetDocs, TargetSQL, TargetSnapshot}

// Options configures the default generator.
type Options struct {
	Targets    []string    // defaults to go and docs
	DocsFormat string      // markdown (default) or text
	Dialect    ddl.Dialect // defaults to sqlite, or the dialect of ApplyURL
	ApplyURL   string      // when set, the DDL is also executed there
	Logger     *slog.Logger
}

// Pipeline runs its targets in parallel after a structural check.
type Pipeline struct {
	targets []target
	logger  *slog.Logger
}

type target struct {
	name string
	run  func(ctx context.Context, s *schema.Schema, outDir string) error
}

// New builds the pipeline for opts.
func New(opts Options) (*Pipeline, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	names := opts.Targets
	if len(names) == 0 {
		names = []string{TargetGo, TargetDocs}
	}

	docsFormat := opts.DocsFormat
	if docsFormat == "" {
		docsFormat = formatter.FormatMarkdown
	}
	if docsFormat != formatter.FormatMarkdown && docsFormat != formatter.FormatText {
		return nil, fmt.Errorf("invalid docs format: %s (must be 'text' or 'markdown')", docsFormat)
	}

	dialect, err := resolveDialect(opts.Dialect, opts.ApplyURL)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{logger: logger}
	seen := make(map[string]bool)
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		switch name {
		case TargetGo:
			p.targets = append(p.targets, target{name: name, run: generateGo})
		case TargetDocs:
			p.targets = append(p.targets, target{name: name, run: docs(docsFormat)})
		case TargetSQL:
			p.targets = append(p.targets, target{name: name, run: sqlTarget(dialect, opts.ApplyURL)})
		case TargetSnapshot:
			p.targets = append(p.targets, target{name: name, run: WriteSnapshot})
		default:
			return nil, fmt.Errorf("unknown target: %s", name)
		}
	}

	if opts.ApplyURL != "" && !seen[TargetSQL] {
		p.targets = append(p.targets, target{name: TargetSQL, run: sqlTarget(dialect, opts.ApplyURL)})
	}

	return p, nil
}

// Generate checks s and runs every target.
func (p *Pipeline) Generate(ctx context.Context, s *schema.Schema, outDir string) error {
	if err := Check(s); err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	eg, ctx := errgroup.WithContext(ctx)
	for _, t := range p.targets {
		eg.Go(func() error {
			p.logger.Debug("generating target", "target", t.name, "dir", outDir)
			if err := t.run(ctx, s, outDir); err != nil {
				return fmt.Errorf("%s: %w", t.name, err)
			}
			p.logger.Info("generated target", "target", t.name)
			return nil
		})
	}
	return eg.Wait()
}

// Targets returns the names of the configured targets.
func (p *Pipeline) Targets() []string {
	names := make([]string, 0, len(p.targets))
	for _, t := range p.targets {
		names = append(names, t.name)
	}
	return names
}

func generateGo(ctx context.Context, s *schema.Schema, outDir string) error {
	return codegen.NewWriter(s, outDir).Generate(ctx)
}

func docs(format string) func(context.Context, *schema.Schema, string) error {
	return func(_ context.Context, s *schema.Schema, outDir string) error {
		return formatter.NewMultiFileFormatter(filepath.Join(outDir, "docs"), format).Format(s)
	}
}

func sqlTarget(d ddl.Dialect, applyURL string) func(context.Context, *schema.Schema, string) error {
	return func(ctx context.Context, s *schema.Schema, outDir string) error {
		path := filepath.Join(outDir, fmt.Sprintf("schema.%s.sql", d))
		if err := ddl.WriteFile(path, s, d); err != nil {
			return err
		}
		if applyURL == "" {
			return nil
		}

		stmts, err := ddl.Statements(s, d)
		if err != nil {
			return err
		}
		if err := db.Apply(ctx, applyURL, stmts); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
		return nil
	}
}

// resolveDialect prefers the database behind applyURL over the configured
// dialect, falling back to sqlite.
func resolveDialect(configured ddl.Dialect, applyURL string) (ddl.Dialect, error) {
	var d ddl.Dialect
	if configured != "" {
		var err error
		if d, err = ddl.ParseDialect(string(configured)); err != nil {
			return "", err
		}
	}

	if applyURL != "" {
		dbType, _, err := db.ParseDatabaseURL(applyURL)
		if err != nil {
			return "", err
		}
		if d != "" && d != ddl.Dialect(dbType) {
			return "", fmt.Errorf("dialect %s does not match apply URL database %s", d, dbType)
		}
		return ddl.Dialect(dbType), nil
	}

	if d == "" {
		return ddl.SQLite, nil
	}
	return d, nil
}
