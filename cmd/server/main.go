package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	router "github.com/dkeye/roomrelay/internal/adapters/http"
	"github.com/dkeye/roomrelay/internal/app"
	"github.com/dkeye/roomrelay/internal/config"
	"github.com/dkeye/roomrelay/internal/core"
	"github.com/dkeye/roomrelay/internal/domain"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	policy, err := core.PolicyByName(cfg.OverflowPolicy)
	if err != nil {
		log.Fatal().Err(err).Msg("bad overflow policy")
	}
	defaultRoom := domain.RoomName(cfg.DefaultRoom)
	reg := core.NewRegistry(defaultRoom, policy)
	relay := app.NewRelay(reg, app.NewRateLimiter(cfg.ChatRateLimit, cfg.ChatRateInterval), app.SessionConfig{
		DefaultRoom: defaultRoom,
		Pump: app.PumpConfig{
			QueueSize:  cfg.QueueSize,
			WriteWait:  cfg.WriteWait,
			PingPeriod: cfg.PingPeriod,
		},
		ReadTimeout: app.PongWait(cfg.PingPeriod),
	})

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router.SetupRouter(ctx, cfg, reg, relay),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.Addr).Str("room", cfg.DefaultRoom).Msg("room relay started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return reg.RunJanitor(gctx, cfg.JanitorInterval, cfg.RoomIdleTTL)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Server forced to shutdown")
		}
		if err := relay.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("sessions did not finish in time")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server error")
		os.Exit(1)
	}
	log.Info().Msg("Server exited gracefully")
}
