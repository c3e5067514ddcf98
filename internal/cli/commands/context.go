// Package commands implements the kustosql CLI subcommands.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kustosql/kustosql/internal/cli/config"
	"github.com/kustosql/kustosql/pkg/adapters/kusto"
)

// configKey is used to store config in context.
type configKey struct{}

// loggerKey is used to store the logger in context.
type loggerKey struct{}

// WithConfig stores the loaded config in the context.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// WithLogger stores the logger in the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// configFrom retrieves the loaded config from the context.
func configFrom(ctx context.Context) (*config.Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*config.Config)
	if !ok || cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	return cfg, nil
}

// loggerFrom retrieves the logger from the context, defaulting to discard.
func loggerFrom(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.New(slog.DiscardHandler)
}

// openEngine validates the config, builds the credential, and connects to
// the configured cluster. The caller owns the returned handle.
func openEngine(ctx context.Context) (*kusto.Adapter, error) {
	cfg, err := configFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cred, err := cfg.Credential()
	if err != nil {
		return nil, err
	}

	opts := []kusto.Option{
		kusto.WithLogger(loggerFrom(ctx)),
		kusto.WithScope(cfg.Scope),
	}
	if cfg.ODBCDriver != "" {
		opts = append(opts, kusto.WithConnectionOption("odbc_driver", cfg.ODBCDriver))
	}

	return kusto.BuildEngine(ctx, cfg.Cluster, cfg.Database, cred, opts...)
}

// outputFormat resolves the output format, preferring the per-command flag
// over the config default.
func outputFormat(ctx context.Context, flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if cfg, err := configFrom(ctx); err == nil && cfg.OutputFormat != "" {
		return cfg.OutputFormat
	}
	return "table"
}
