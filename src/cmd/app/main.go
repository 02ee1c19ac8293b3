package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"load-tracking-service/src/internal/config"
	"load-tracking-service/src/internal/metrics"
	"load-tracking-service/src/pkg/log"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {

	viperConfig := config.NewViper()
	viperConfig.SetDefault("log.level", "DEBUG")
	viperConfig.SetDefault("app.name", "LOAD_TRACKING_SERVICE")
	viperConfig.SetDefault("web.port", 8080)
	viperConfig.SetDefault("metrics.port", 9090)
	viperConfig.SetDefault("location.min_interval_seconds", 30)
	viperConfig.SetDefault("location.min_distance_meters", 25)
	log.InitLogger(viperConfig)
	logger := log.GetLogger()

	if viperConfig.GetString("jwt.secret") == "" {
		panic("jwt.secret is not configured")
	}

	if err := config.LoadRedisConfig(viperConfig); err != nil {
		logger.Error("main", fmt.Sprintf("redis init: %v", err), "main", "")
	}
	db := config.NewDatabase(viperConfig, logger)
	redisClient := config.NewRedis()
	producer := config.NewKafkaProducer(viperConfig, logger)
	objectStorage := config.NewObjectStorage(viperConfig, logger)
	signer := config.NewSigner(viperConfig)
	geoservice, err := config.NewGeoService(viperConfig)
	if err != nil {
		panic(err)
	}
	asynqClient := config.NewAsynqClient(viperConfig)
	asynqServer := config.NewAsynqServer(viperConfig)
	asynqMux := asynq.NewServeMux()
	validate := config.NewValidator(viperConfig)
	app := config.NewFiber(viperConfig)

	config.Bootstrap(&config.BootstrapConfig{
		DB:          db,
		App:         app,
		Log:         logger,
		Validate:    validate,
		Config:      viperConfig,
		Producer:    producer,
		Redis:       redisClient,
		Storage:     objectStorage,
		Geoservice:  geoservice,
		Signer:      signer,
		AsynqClient: asynqClient,
		Async:       asynqMux,
	})

	metrics.Register()
	go func() {
		metricsPort := viperConfig.GetInt("metrics.port")
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(fmt.Sprintf(":%d", metricsPort), mux); err != nil {
			logger.Error("main", fmt.Sprintf("metrics listener stopped: %v", err), "metrics", "")
		}
	}()

	go func() {
		if err := asynqServer.Run(asynqMux); err != nil {
			logger.Error("main", fmt.Sprintf("asynq server stopped: %v", err), "asynq", "")
		}
	}()

	done := make(chan bool)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)

	go func() {
		<-quit
		logger.Info("main", "Server load-tracking-service is shutting down...", "gracefull", "")

		_, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		asynqServer.Shutdown()
		if err := asynqClient.Close(); err != nil {
			logger.Error("main", fmt.Sprintf("Error closing asynq client: %v", err), "graceful", "")
		}
		if err := app.Shutdown(); err != nil {
			logger.Error("main", fmt.Sprintf("Error during shutdown: %v", err), "graceful", "")
		}
		close(done)
	}()

	webPort := viperConfig.GetInt("web.port")
	if err := app.Listen(fmt.Sprintf(":%d", webPort)); err != nil {
		logger.Error("main", fmt.Sprintf("Failed to start server: %v", err), "main", "")
	}

	<-done
	logger.Info("main", fmt.Sprintf("Server %s stopped", viperConfig.GetString("app.name")), "gracefull", "")
}
