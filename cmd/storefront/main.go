package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"

	"storefront/internal/config"
	"storefront/internal/filestore"
	"storefront/internal/filestore/gcsstore"
	"storefront/internal/filestore/local"
	"storefront/internal/filestore/s3store"
	"storefront/internal/http-server/handlers/image/uploadImage"
	"storefront/internal/http-server/handlers/product/deleteProduct"
	"storefront/internal/http-server/handlers/status/greenStatus"
	"storefront/internal/http-server/router"
	"storefront/internal/janitor"
	"storefront/internal/kafka/consumer"
	"storefront/internal/kafka/producer"
	"storefront/internal/lib/encoder/jpegenc"
	"storefront/internal/lib/encoder/webpenc"
	"storefront/internal/lib/logger/handlers/slogpretty"
	"storefront/internal/lib/logger/sl"
	"storefront/internal/processor"
	"storefront/internal/storage/postgres"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

const (
	shutdownTimeout    = 10 * time.Second
	healthCheckTimeout = 3 * time.Second
)

// @title        Storefront API
// @version      1.0
// @description  Product catalog and image derivative pipeline.
// @BasePath     /
func main() {
	started := time.Now()

	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting storefront", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	storage, err := postgres.InitDB(&cfg.Database)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	store, static, closeStore, err := setupStore(ctx, &cfg.Storage)
	if err != nil {
		log.Error("failed to init file store", sl.Err(err))
		os.Exit(1)
	}

	enc, err := setupEncoder(&cfg.Derivatives)
	if err != nil {
		log.Error("failed to init encoder", sl.Err(err))
		os.Exit(1)
	}

	maxBytes, err := cfg.Upload.MaxBytes()
	if err != nil {
		log.Error("invalid upload limit", sl.Err(err))
		os.Exit(1)
	}

	opts := processorOptions(cfg)

	imageProcessor := processor.NewImageProcessor(log, store, enc, opts)
	imageJanitor := janitor.New(log, store, storage)

	var (
		cleanup       deleteProduct.CleanupScheduler = imageJanitor
		kafkaProducer *producer.Producer
		kafkaConsumer *consumer.Consumer
		consumerDone  <-chan struct{}
	)

	if cfg.Kafka.Enabled {
		kafkaProducer, err = producer.NewProducer(&cfg.Kafka, log)
		if err != nil {
			log.Error("failed to create kafka producer", sl.Err(err))
			os.Exit(1)
		}

		kafkaConsumer, err = consumer.NewConsumer(&cfg.Kafka, log)
		if err != nil {
			log.Error("failed to create kafka consumer", sl.Err(err))
			os.Exit(1)
		}

		cleanup = janitor.NewQueueScheduler(imageJanitor, kafkaProducer)

		consumerDone = kafkaConsumer.Start(ctx, imageJanitor.HandleMessage)
	}

	sweeper := janitor.NewSweeper(imageJanitor, store, opts.Field, cfg.Janitor.Grace)

	sweeps, err := sweeper.Start(ctx, cfg.Janitor.Schedule)
	if err != nil {
		log.Error("failed to schedule orphan sweeps", sl.Err(err))
		os.Exit(1)
	}

	handler := router.New(router.Deps{
		Log:       log,
		Catalog:   storage,
		Processor: imageProcessor,
		Cleanup:   cleanup,
		Limits: uploadImage.Limits{
			Field:        cfg.Upload.Field,
			MaxBytes:     maxBytes,
			AllowedTypes: cfg.Upload.AllowedTypes,
		},
		Static: static,
		Status: &router.Status{
			Settings: greenStatus.Settings{
				Format:         enc.Format(),
				Quality:        opts.Quality,
				Effort:         opts.Effort,
				Breakpoints:    opts.Breakpoints,
				MaxUploadBytes: maxBytes,
				CacheMaxAge:    cacheMaxAge(static),
				Started:        started,
			},
			Options:      opts,
			Database:     storage,
			Store:        store,
			CheckTimeout: healthCheckTimeout,
		},
	})

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      handler,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop()
		}
	}()

	<-ctx.Done()

	log.Info("application stopping")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to stop server", sl.Err(err))
	}

	if sweeps != nil {
		<-sweeps.Stop().Done()
	}

	if kafkaProducer != nil {
		if err = kafkaProducer.Close(); err != nil {
			log.Error("failed to close kafka producer", sl.Err(err))
		}
	}

	if kafkaConsumer != nil {
		// the handler may still be purging files
		<-consumerDone

		if err = kafkaConsumer.Close(); err != nil {
			log.Error("failed to close kafka consumer", sl.Err(err))
		}
		log.Info("kafka connection closed")
	}

	if err = closeStore(); err != nil {
		log.Error("failed to close file store", sl.Err(err))
	}

	if err = storage.Close(); err != nil {
		log.Error("failed to close database", sl.Err(err))
	}

	log.Info("postgres connection closed")

	log.Info("application stopped")
}

func setupStore(ctx context.Context, cfg *config.Storage) (filestore.Store, *router.Static, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Kind {
	case "local":
		s, err := local.New(cfg.Dir, cfg.PublicURL)
		if err != nil {
			return nil, nil, nil, err
		}

		return s, &router.Static{Prefix: cfg.PublicURL, Dir: s.Dir(), MaxAge: cfg.MaxAge}, noop, nil
	case "s3":
		sess, err := session.NewSession(&aws.Config{Region: aws.String(cfg.Region)})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("aws session: %w", err)
		}

		return s3store.New(sess, cfg.Bucket, cfg.PublicURL), nil, noop, nil
	case "gcs":
		s, err := gcsstore.New(ctx, cfg.Bucket, cfg.PublicURL)
		if err != nil {
			return nil, nil, nil, err
		}

		return s, nil, s.Close, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown storage kind %q", cfg.Kind)
	}
}

func cacheMaxAge(static *router.Static) time.Duration {
	if static == nil {
		return 0
	}

	return static.MaxAge
}

func setupEncoder(cfg *config.Derivatives) (processor.Encoder, error) {
	switch cfg.Format {
	case "webp":
		enc, err := webpenc.New(cfg.Quality, cfg.Effort)
		if err != nil {
			return nil, err
		}
		return enc, nil
	case "jpeg", "jpg":
		enc, err := jpegenc.New(cfg.Quality)
		if err != nil {
			return nil, err
		}
		return enc, nil
	default:
		return nil, fmt.Errorf("unknown derivative format %q", cfg.Format)
	}
}

func processorOptions(cfg *config.Config) processor.Options {
	opts := processor.DefaultOptions()

	opts.Field = cfg.Upload.Field
	opts.Quality = cfg.Derivatives.Quality
	opts.Effort = cfg.Derivatives.Effort

	if len(cfg.Derivatives.Breakpoints) > 0 {
		opts.Breakpoints = make([]processor.Breakpoint, 0, len(cfg.Derivatives.Breakpoints))
		for _, bp := range cfg.Derivatives.Breakpoints {
			opts.Breakpoints = append(opts.Breakpoints, processor.Breakpoint{Name: bp.Name, Width: bp.Width})
		}
	}

	return opts
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
