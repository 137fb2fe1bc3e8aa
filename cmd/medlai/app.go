package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/medlai"
	"github.com/ZaguanLabs/medlai/cache"
	"github.com/ZaguanLabs/medlai/internal/config"
	"github.com/ZaguanLabs/medlai/provider"
	"github.com/ZaguanLabs/medlai/structure"
)

// app holds everything a command needs, built from the loaded config.
type app struct {
	cfg       *config.Config
	logger    zerolog.Logger
	cache     cache.Enumerable
	engine    *structure.Engine
	resolver  *medlai.Resolver
	cacheFile string
	closers   []func() error
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger}
	a.cacheFile, _ = cmd.Flags().GetString("cache-file")

	if err := a.openCache(cmd.Context()); err != nil {
		return nil, err
	}

	retry := cfg.Translation.RetryConfig()
	chain := provider.NewChain(provider.ChainConfig{
		GoogleAPIKey:  cfg.Providers.GoogleAPIKey,
		DeepLAPIKey:   cfg.Providers.DeepLAPIKey,
		DeepLURL:      cfg.Providers.DeepLURL,
		OpenAIAPIKey:  cfg.Providers.OpenAIAPIKey,
		OpenAIModel:   cfg.Providers.OpenAIModel,
		OpenAIBaseURL: cfg.Providers.OpenAIBaseURL,
		LibreMirrors:  cfg.Providers.LibreMirrors(),
		LibreAPIKey:   cfg.Providers.LibreAPIKey,
		DisableLibre:  cfg.Providers.LibreDisabled,
		Retry:         &retry,
		Logger:        logger,
	})

	a.resolver = medlai.NewResolver(chain,
		medlai.WithSourceLang(cfg.Translation.SourceLang),
		medlai.WithCache(a.cache),
		medlai.WithRateLimit(cfg.Translation.RateLimitInterval),
		medlai.WithProviderTimeout(cfg.Translation.ProviderTimeout),
		medlai.WithConcurrency(cfg.Translation.Concurrency),
		medlai.WithLogger(logger),
	)
	a.engine = structure.NewEngine(structure.WithLogger(logger))

	logger.Debug().
		Strs("providers", a.resolver.Providers()).
		Str("source_lang", cfg.Translation.SourceLang).
		Msg("resolver ready")

	return a, nil
}

// newLogger builds the process logger from the log section.
func newLogger(cfg config.LogConfig, w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level: %w", err)
	}

	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}

// openCache selects Redis when a URL is configured and process memory
// otherwise, then warms it from the cache file when one exists.
func (a *app) openCache(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if url := a.cfg.Cache.RedisURL; url != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			URL:       url,
			TTL:       a.cfg.Cache.TTL,
			KeyPrefix: a.cfg.Cache.KeyPrefix,
			Logger:    a.logger,
		})
		if err != nil {
			return fmt.Errorf("redis cache: %w", err)
		}
		a.cache = rc
		a.closers = append(a.closers, rc.Close)
		a.logger.Debug().Msg("using redis translation cache")
	} else {
		a.cache = cache.NewInMemoryCache(a.cfg.Cache.TTL)
	}

	if a.cacheFile == "" {
		return nil
	}

	res, err := cache.NewImporter(a.cache).ImportFromFile(a.cacheFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading cache file: %w", err)
	}
	a.logger.Debug().
		Int("imported", res.Imported).
		Int("skipped", res.Skipped).
		Msg("translation cache warmed")
	return nil
}

// close saves the cache file when one was given and releases resources.
func (a *app) close() error {
	var errs []error
	if a.cacheFile != "" {
		n, err := cache.NewExporter(a.cache).ExportToFile(a.cacheFile, map[string]string{
			"source_lang": a.cfg.Translation.SourceLang,
			"version":     medlai.FullVersion(),
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("saving cache file: %w", err))
		} else {
			a.logger.Debug().Int("entries", n).Str("path", a.cacheFile).Msg("translation cache saved")
		}
	}
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// readInput returns the contents of the single path argument, or stdin.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0]) // #nosec G304 - CLI tool reads user-specified files
	if err != nil {
		return "", fmt.Errorf("reading file: %w", err)
	}
	return string(data), nil
}
