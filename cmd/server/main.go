package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/config"
	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/db"
	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/notify"
	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/redis"
	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/scheduling"
)

const (
	mqttConnectTimeout = 10 * time.Second
	shutdownTimeout    = 10 * time.Second
)

func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Development() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db init")
	}
	defer conn.Close()

	if err := db.RunMigrations(ctx, conn, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}

	deps := Dependencies{Store: db.NewStore(conn)}

	if cfg.RedisAddress != "" {
		rdb, err := redis.NewClient(ctx, cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("redis init")
		}
		defer rdb.Close()

		cached := redis.NewCachedStore(deps.Store, rdb, cfg.CacheTTL)
		deps.Store = cached
		deps.Cache = cached
		log.Info().Str("address", cfg.RedisAddress).Dur("ttl", cfg.CacheTTL).Msg("schedule cache enabled")
	}

	if cfg.MQTTBrokerURL != "" {
		var client mqtt.Client
		client, err = notify.Connect(cfg.MQTTBrokerURL, cfg.MQTTClientID, mqttConnectTimeout)
		if err != nil {
			log.Fatal().Err(err).Msg("mqtt init")
		}
		defer notify.Disconnect(client)

		deps.Notifier = notify.NewBroadcaster(client)
	}

	opts := []scheduling.Option{scheduling.WithMaxTimelineSteps(cfg.TimelineMaxSteps)}
	if cfg.Location != nil {
		opts = append(opts, scheduling.WithLocation(cfg.Location))
	}
	deps.Engine = scheduling.NewEngine(deps.Store, opts...)

	if !cfg.Development() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	RegisterRoutes(r, cfg, deps)

	srv := &http.Server{Addr: cfg.ServerAddress, Handler: r}
	go func() {
		log.Info().Str("address", cfg.ServerAddress).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
