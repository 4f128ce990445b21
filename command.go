package modelschema

import (
	"fmt"
	"log/slog"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/tordrt/modelschema/internal/build"
	"github.com/tordrt/modelschema/internal/config"
	"github.com/tordrt/modelschema/internal/ddl"
	"github.com/tordrt/modelschema/internal/generator"
)

// NewCommand returns the root command of a schema build program. register
// queues the program's models and relations on the configured Builder.
func NewCommand(register func(*Builder) error) *cobra.Command {
	var (
		configPath    string
		outputDir     string
		version       int
		namespace     string
		targets       []string
		format        string
		dialect       string
		applyURL      string
		entityPrefix  string
		idSuffix      string
		linkPlacement string
		blacklist     []string
		dump          bool
		verbose       bool
	)

	cmd := &cobra.Command{
		Use:   "modelschema",
		Short: "Generate a relational schema from Go data models",
		Long: `modelschema reads the registered Go model types, assembles entities and
relations, and generates Go entity sources, documentation, DDL and a YAML
snapshot of the schema.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("output-dir") {
				cfg.OutputDir = outputDir
			}
			if flags.Changed("version") {
				cfg.Version = version
			}
			if flags.Changed("namespace") {
				cfg.Namespace = namespace
			}
			if flags.Changed("targets") {
				cfg.Targets = targets
			}
			if flags.Changed("format") {
				cfg.DocsFormat = format
			}
			if flags.Changed("dialect") {
				cfg.Dialect = dialect
			}
			if flags.Changed("apply-url") {
				cfg.ApplyURL = applyURL
			}
			if flags.Changed("entity-prefix") {
				cfg.EntityPrefix = entityPrefix
			}
			if flags.Changed("id-suffix") {
				cfg.IDSuffix = idSuffix
			}
			if flags.Changed("link-placement") {
				cfg.LinkPlacement = linkPlacement
			}
			cfg.Blacklist = append(cfg.Blacklist, blacklist...)

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			placement, err := build.ParseLinkPlacement(cfg.LinkPlacement)
			if err != nil {
				return err
			}

			pipeline, err := generator.New(generator.Options{
				Targets:    cfg.Targets,
				DocsFormat: cfg.DocsFormat,
				Dialect:    ddl.Dialect(cfg.Dialect),
				ApplyURL:   cfg.ApplyURL,
				Logger:     logger,
			})
			if err != nil {
				return err
			}

			b := New(cfg.Version, cfg.Namespace, cfg.OutputDir,
				WithEntityPrefix(cfg.EntityPrefix),
				WithIDSuffix(cfg.IDSuffix),
				WithLinkPlacement(placement),
				WithGenerator(pipeline),
				WithLogger(logger),
			)
			for _, name := range cfg.Blacklist {
				b.AddToBlacklist(name)
			}

			if register != nil {
				if err := register(b); err != nil {
					return fmt.Errorf("register models: %w", err)
				}
			}

			if err := b.Generate(cmd.Context()); err != nil {
				return err
			}

			if dump {
				dumper := spew.ConfigState{Indent: "  ", MaxDepth: 5, DisablePointerAddresses: true}
				dumper.Fdump(cmd.OutOrStdout(), b.Schema())
			}

			logger.Info("schema generated", "entities", len(b.Schema().Entities), "dir", cfg.OutputDir)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "YAML configuration file")
	f.StringVarP(&outputDir, "output-dir", "d", "", "Output directory for generated files")
	f.IntVar(&version, "version", 0, "Schema version")
	f.StringVar(&namespace, "namespace", "", "Package path of the generated entities")
	f.StringSliceVar(&targets, "targets", nil, "Targets to generate: go, docs, sql, snapshot (default: go,docs)")
	f.StringVarP(&format, "format", "f", "", "Docs format: text or markdown (default: markdown)")
	f.StringVar(&dialect, "dialect", "", "SQL dialect: postgres, mysql or sqlite (default: sqlite)")
	f.StringVar(&applyURL, "apply-url", "", "Database URL to apply the DDL to (postgres://, mysql:// or sqlite://)")
	f.StringVar(&entityPrefix, "entity-prefix", "", "Prefix prepended to every entity name")
	f.StringVar(&idSuffix, "id-suffix", "", "Suffix of synthesized linking properties (default: Id)")
	f.StringVar(&linkPlacement, "link-placement", "", "Linking property placement: by-kind or source")
	f.StringSliceVar(&blacklist, "blacklist", nil, "Field names excluded from every entity (comma-separated)")
	f.BoolVar(&dump, "dump", false, "Dump the assembled schema to stdout")
	f.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}
