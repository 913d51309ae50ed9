// Command lingobridge runs the translation relay bot.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lingobridge/lingobridge"
	"github.com/lingobridge/lingobridge/archive"
	"github.com/lingobridge/lingobridge/cache"
	"github.com/lingobridge/lingobridge/detect"
	"github.com/lingobridge/lingobridge/provider"
	"github.com/lingobridge/lingobridge/store"
	"github.com/lingobridge/lingobridge/transport"
)

// Build-time variables (can be overridden with ldflags)
var (
	version   = lingobridge.Version
	commit    = lingobridge.GitCommit
	buildDate = lingobridge.BuildDate
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("lingobridge", flag.ContinueOnError)
	fs.SetOutput(stderr)

	showVersion := fs.Bool("version", false, "Show version")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintf(stdout, "%s %s\n", lingobridge.Name, version)
		if commit != "unknown" && commit != "" {
			fmt.Fprintf(stdout, "  commit:  %s\n", commit)
		}
		if buildDate != "unknown" && buildDate != "" {
			fmt.Fprintf(stdout, "  built:   %s\n", buildDate)
		}
		return nil
	}

	// Missing configuration is the one fault that aborts startup.
	cfg, err := lingobridge.LoadConfig()
	if err != nil {
		return err
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cfg.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.NewSQLiteStore(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer st.Close()

	// Startup maintenance: drop records past the retention window.
	deleted, err := st.DeleteOlderThan(ctx, cfg.Retention())
	if err != nil {
		logger.WithError(err).Warn("retention cleanup failed")
	} else {
		logger.WithField("deleted", deleted).Info("retention cleanup completed")
	}

	relayCache, err := buildCache(cfg)
	if err != nil {
		return err
	}

	var translator lingobridge.Translator = provider.NewLLMTranslator(provider.LLMConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.TranslationModel,
		BaseURL: cfg.APIBaseURL,
	})
	if cfg.RequestsPerMinute > 0 {
		translator = lingobridge.NewRateLimitedTranslator(translator, lingobridge.RateLimitConfig{
			RequestsPerMinute: cfg.RequestsPerMinute,
		})
	}
	translator = lingobridge.NewRetryableTranslator(translator, lingobridge.DefaultRetryConfig())

	tg, err := transport.NewTelegramTransport(cfg.BotToken, cfg.Debug, logger)
	if err != nil {
		return err
	}

	opts := []lingobridge.RelayOption{
		lingobridge.WithCache(relayCache),
		lingobridge.WithPivotLanguage(cfg.PivotLanguage),
		lingobridge.WithConfidenceThreshold(cfg.ConfidenceThreshold),
		lingobridge.WithLogger(logger),
	}

	if cfg.MongoURI != "" {
		sink, err := archive.NewMongoArchive(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
		if err != nil {
			// Analytics are optional; the relay runs without them.
			logger.WithError(err).Warn("message archive unavailable")
		} else {
			defer sink.Close(context.Background())
			opts = append(opts, lingobridge.WithArchive(sink))
			logger.WithField("database", cfg.MongoDatabase).Info("message archive enabled")
		}
	}

	relay := lingobridge.NewRelay(tg, translator, detect.NewDetector(), st, opts...)

	go sweepLoop(ctx, relayCache, cfg.CacheTTL, logger)

	logger.WithFields(logrus.Fields{
		"pivot_language":       cfg.PivotLanguage,
		"confidence_threshold": cfg.ConfidenceThreshold,
		"cache_max_size":       cfg.CacheMaxSize,
		"cache_ttl":            cfg.CacheTTL,
	}).Info("starting relay")

	if err := tg.Listen(ctx, relay); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Info("relay stopped")
	return nil
}

// buildCache selects the Redis cache when configured, the bounded memory
// cache otherwise.
func buildCache(cfg *lingobridge.Config) (cache.RecordCache, error) {
	if cfg.RedisURL != "" {
		return cache.NewRedisCache(cache.RedisConfig{
			URL: cfg.RedisURL,
			TTL: cfg.CacheTTL,
		})
	}
	return cache.NewMemoryCache(cfg.CacheMaxSize, cfg.CacheTTL), nil
}

// sweepLoop periodically evicts expired cache entries. Lazy expiry keeps the
// cache correct without it; this just bounds memory held by dead entries.
func sweepLoop(ctx context.Context, c cache.RecordCache, ttl time.Duration, logger *logrus.Logger) {
	interval := ttl / 2
	if interval < time.Minute {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if evicted := c.Sweep(); evicted > 0 {
				logger.WithField("evicted", evicted).Debug("cache sweep")
			}
		}
	}
}
