package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/blueprint"
	"github.com/dmitrymomot/blueprint/pkg/clientip"
	"github.com/dmitrymomot/blueprint/pkg/config"
	"github.com/dmitrymomot/blueprint/pkg/fieldtype"
	"github.com/dmitrymomot/blueprint/pkg/i18n"
	"github.com/dmitrymomot/blueprint/pkg/loader"
	"github.com/dmitrymomot/blueprint/pkg/logger"
	"github.com/dmitrymomot/blueprint/pkg/metrics"
	"github.com/dmitrymomot/blueprint/pkg/requestid"
)

// exitError ends the process with code without printing anything more.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// app carries the dependencies built from AppConfig before a command runs.
type app struct {
	cfg        AppConfig
	logger     *slog.Logger
	registry   *fieldtype.Registry
	translator *i18n.Translator
	metrics    *metrics.Collector
	store      *loader.Store
}

type rootFlags struct {
	envFile    string
	blueprints string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	a := &app{}
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "blueprint",
		Short: "Validate and filter data against form blueprints",
		Long: `Blueprint checks loosely-typed request data against declarative form
blueprints written in YAML.

Blueprints are read from BLUEPRINT_BLUEPRINTS_DIR (or --blueprints). A
blueprint may extend another one, declare per-type defaults and mark levels
as strict so undeclared keys are rejected.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.bootstrap(cmd.Context(), cmd.ErrOrStderr(), flags)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.envFile, "env-file", "", "load environment variables from this file first")
	cmd.PersistentFlags().StringVarP(&flags.blueprints, "blueprints", "b", "", "blueprints directory (overrides BLUEPRINT_BLUEPRINTS_DIR)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(
		newValidateCmd(a),
		newFilterCmd(a),
		newTypesCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return cmd
}

func (a *app) bootstrap(ctx context.Context, logOutput io.Writer, flags *rootFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if flags.envFile != "" {
		if err := config.LoadEnv(flags.envFile); err != nil {
			return err
		}
	}
	if err := config.Parse(&a.cfg, config.WithPrefix(envPrefix)); err != nil {
		return err
	}
	if flags.blueprints != "" {
		a.cfg.BlueprintsDir = flags.blueprints
	}

	opts := []logger.Option{
		logger.WithEnvironment(a.cfg.Environment, a.cfg.ServiceName),
		logger.WithOutput(logOutput),
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
	}
	if a.cfg.LogFormat != "" {
		opts = append(opts, logger.WithFormat(a.cfg.LogFormat))
	}
	if a.cfg.LogLevel != "" {
		level, err := logger.ParseLevel(a.cfg.LogLevel)
		if err != nil {
			return err
		}
		opts = append(opts, logger.WithLevel(level))
	}
	if flags.verbose {
		opts = append(opts, logger.WithLevel(slog.LevelDebug))
	}
	a.logger = logger.New(opts...)

	if a.cfg.Metrics {
		a.metrics = metrics.New()
	}

	var extra []i18n.TranslationAdapter
	if a.cfg.TranslationsDir != "" {
		extra = append(extra, i18n.NewDirectoryAdapter(a.cfg.TranslationsDir))
	}
	trOpts := []i18n.Option{
		i18n.WithDefaultLanguage(a.cfg.DefaultLanguage),
		i18n.WithLogger(a.logger),
		i18n.WithMissingKeyHandler(a.metrics.ObserveMissingTranslation),
	}
	if flags.verbose {
		trOpts = append(trOpts, i18n.WithMissingKeyLogging())
	}
	tr, err := i18n.NewDefaultTranslator(ctx, extra, trOpts...)
	if err != nil {
		return fmt.Errorf("failed to load translations: %w", err)
	}
	a.translator = tr

	a.registry = fieldtype.New(fieldtype.WithLogger(a.logger))

	storeOpts := []loader.Option{
		loader.WithFieldOperator(a.registry),
		loader.WithLogger(a.logger),
		loader.WithReloadHook(a.metrics.ObserveReload),
		loader.WithSchemaOptions(blueprint.WithMaxDepth(a.cfg.MaxDepth)),
	}
	if a.cfg.SiteConfig != "" {
		site, err := loader.LoadConfigFile(a.cfg.SiteConfig)
		if err != nil {
			return err
		}
		storeOpts = append(storeOpts, loader.WithConfig(site))
	}
	a.store = loader.NewDirectoryStore(a.cfg.BlueprintsDir, storeOpts...)
	return a.store.Load(ctx)
}

// schema returns the named blueprint with labels and messages in lang.
func (a *app) schema(name, lang string) (*blueprint.Schema, error) {
	schema, err := a.store.Get(name)
	if err != nil {
		return nil, err
	}
	if lang == "" {
		return schema, nil
	}
	loc := i18n.NewLocalizer(a.translator, lang)
	return schema.With(
		blueprint.WithLabeler(loc),
		blueprint.WithMessageFormatter(loc),
		blueprint.WithFieldOperator(a.registry.WithTranslator(loc)),
	), nil
}
