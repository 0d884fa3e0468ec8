// Package cli implements the apidoc command tree.
package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/vitalvas/apidoc/config"
	"github.com/vitalvas/apidoc/doccache"
	"github.com/vitalvas/apidoc/docserver"
	"github.com/vitalvas/apidoc/finder"
	"github.com/vitalvas/apidoc/meta"
	"github.com/vitalvas/apidoc/metrics"
	"github.com/vitalvas/apidoc/openapi"
)

// NewRootCmd constructs the root command over the controllers and types
// declared in catalog.
func NewRootCmd(catalog *meta.Catalog) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "apidoc",
		Short:         "Generate and serve OpenAPI documents for declared controllers",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return newUsageError(fmt.Sprintf("%v\n\n%s", err, c.UsageString()))
	})

	flags := cmd.PersistentFlags()
	flags.StringP("config", "c", "", "Config file path (YAML); defaults to $"+config.EnvConfig)
	flags.BoolP("verbose", "v", false, "Enable debug logging")
	flags.String("env", "", "Application mode; \""+config.ModeDev+"\" disables caching")
	flags.String("server-url", "", "Server URL listed in the document")
	flags.String("title", "", "Document title")
	flags.String("api-version", "", "Document version")
	flags.StringSlice("controllers", nil, "Package prefixes to scan for controllers, in order")

	cmd.AddCommand(newGenerateCmd(catalog))
	cmd.AddCommand(newCheckCmd(catalog))
	cmd.AddCommand(newServeCmd(catalog))

	return cmd
}

// runtime is the wiring shared by every command.
type runtime struct {
	cfg       config.Config
	logger    *slog.Logger
	metrics   *metrics.Metrics
	generator *openapi.Generator
	server    *docserver.Server
}

func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}

	var cfg config.Config
	if path = strings.TrimSpace(path); path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	overrideString(flags, "env", &cfg.Env)
	overrideString(flags, "server-url", &cfg.ServerURL)
	overrideString(flags, "title", &cfg.Info.Title)
	overrideString(flags, "api-version", &cfg.Info.Version)
	if flags.Changed("controllers") {
		cfg.Controllers, _ = flags.GetStringSlice("controllers")
	}
	cfg.Env = strings.ToLower(cfg.Env)

	if err := cfg.Validate(); err != nil {
		return config.Config{}, newUsageError(err.Error())
	}
	return cfg, nil
}

// overrideString copies an explicitly set flag over the configured value.
func overrideString(flags *pflag.FlagSet, name string, dst *string) {
	if !flags.Changed(name) {
		return
	}
	if v, err := flags.GetString(name); err == nil {
		*dst = strings.TrimSpace(v)
	}
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// newRuntime wires configuration, cache, metrics, generator and document
// server. The document server's own controller is added to catalog so the
// documentation endpoint documents itself.
func newRuntime(cmd *cobra.Command, catalog *meta.Catalog) (*runtime, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger := newLogger(cmd)
	m := metrics.New()
	settings := cfg.Settings()

	gen := openapi.NewGenerator(
		finder.Catalog(catalog, cfg.Controllers...),
		catalog,
		openapi.WithInfo(settings.Info),
		openapi.WithServerURL(settings.ServerURL),
		openapi.WithLogger(logger),
		openapi.WithObserver(m),
	)

	title := cfg.Info.Title
	if title == "" {
		title = openapi.DefaultTitle
	}

	srv := docserver.New(gen, newCache(cfg, m),
		docserver.WithDebug(cfg.Debug()),
		docserver.WithRateLimit(cfg.DebugRateLimit, 1),
		docserver.WithLogger(logger),
		docserver.WithTitle(title),
	)
	catalog.AddController(srv.Controller())

	return &runtime{cfg: cfg, logger: logger, metrics: m, generator: gen, server: srv}, nil
}

func newCache(cfg config.Config, m *metrics.Metrics) doccache.Cache {
	opts := []doccache.Option{doccache.WithTTL(cfg.Cache.TTL), doccache.WithObserver(m)}
	if cfg.Cache.Path != "" {
		return doccache.NewFile(cfg.Cache.Path, opts...)
	}
	return doccache.NewMemory(opts...)
}
