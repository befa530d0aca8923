package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/moneybooks/backend/internal/config"
	"github.com/moneybooks/backend/internal/events"
	"github.com/moneybooks/backend/internal/models"
	"github.com/moneybooks/backend/internal/router"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

//go:generate swag init --output api --outputTypes go

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration")
	}

	// gin uses debug as the default mode, we use release for
	// security reasons. The default is set in the configuration
	gin.SetMode(cfg.GinMode)

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	output := io.Writer(os.Stdout)
	if (cfg.LogFormat == "" && gin.IsDebugging()) || cfg.LogFormat == "human" {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	// Create data directory
	err = os.MkdirAll(cfg.DataDir, os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	err = models.Connect(cfg.DatabasePath())
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.AMQPURL != "" {
		publisher, err = events.DialAMQP(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Fatal().Msg(err.Error())
		}
		log.Info().Str("exchange", cfg.AMQPExchange).Msg("publishing events via AMQP")
	}

	r, teardown, err := router.Config(cfg)
	defer teardown()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	router.AttachRoutes(r.Group("/"), publisher)

	server := &http.Server{
		Addr:              cfg.Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("address", server.Addr).Msg("backend startup complete")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	if err != nil {
		log.Error().Err(err).Msg("server")
	}

	if err := publisher.Close(); err != nil {
		log.Error().Err(err).Msg("closing event publisher")
	}

	sqlDB, err := models.DB.DB()
	if err == nil {
		sqlDB.Close()
	}

	log.Info().Msg("backend stopped")
}
