package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tuberelay/cmd/mainconfig"
	"tuberelay/internal/api/router"
	appconfig "tuberelay/internal/config"
	"tuberelay/internal/extract"
	"tuberelay/internal/http/handlers"
	"tuberelay/internal/messaging"
	"tuberelay/internal/observability/metrics"
	"tuberelay/internal/relay"
	"tuberelay/internal/storage"
	"tuberelay/pkg/logging"
)

func main() {
	// Load .env if present; real environments set variables directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting tuberelay API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	relayMetrics := metrics.NewRelayMetrics(prometheus.DefaultRegisterer)

	// Pick the public store: S3 when a bucket is configured, otherwise the
	// local media dir served by our own /audio route, otherwise none
	// (replies degrade to text).
	var uploader relay.Uploader
	var audioHandler *handlers.AudioFileHandler
	switch {
	case cfg.S3Bucket != "":
		awsCfg, err := mainconfig.LoadAWSConfig(context.Background(), cfg)
		if err != nil {
			logger.Error("failed to load AWS config", "error", err)
			os.Exit(1)
		}
		uploader = storage.NewS3Store(s3.NewFromConfig(awsCfg), cfg.S3Bucket, cfg.S3KeyPrefix, logger)
		logger.Info("publishing audio to S3", "bucket", cfg.S3Bucket)
	case cfg.MediaDir != "":
		localStore, err := storage.NewLocalDirStore(cfg.MediaDir, logger)
		if err != nil {
			logger.Error("failed to prepare media dir", "error", err)
			os.Exit(1)
		}
		uploader = localStore
		audioHandler = handlers.NewAudioFileHandler(localStore.Dir(), logger)
		logger.Info("publishing audio to local media dir", "dir", localStore.Dir())
	default:
		logger.Warn("no public store configured; successful extractions degrade to text replies")
	}

	extractor := extract.NewYtDlp(cfg.YtDlpPath, cfg.FFmpegPath, cfg.ExtractTimeout, logger)
	sender := messaging.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppNumber, logger)

	pipeline := relay.NewService(extractor, uploader, sender, relay.Options{
		PublicBaseURL: cfg.PublicBaseURL,
		FromNumber:    cfg.TwilioWhatsAppNumber,
		ScratchDir:    cfg.ScratchDir,
		AudioQuality:  cfg.AudioQuality,
	}, relayMetrics, logger)

	messagingHandler := messaging.NewHandler(pipeline, relayMetrics, logger)

	r := router.New(&router.Config{
		Logger:           logger,
		MessagingHandler: messagingHandler,
		AudioHandler:     audioHandler,
		MetricsHandler:   promhttp.Handler(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute, // extraction dominates request latency
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
