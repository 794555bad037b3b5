// Command tidefaced drives the tide face as a daemon: a 1 Hz tick loop feeds
// the refresh scheduler, and every recompute fans out to the configured
// renderers (console, optional MQTT) while a status server mirrors the face
// over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/seamarker/tideface/internal/clock"
	"github.com/seamarker/tideface/internal/config"
	"github.com/seamarker/tideface/internal/lunar"
	"github.com/seamarker/tideface/internal/mqtt"
	"github.com/seamarker/tideface/internal/render"
	"github.com/seamarker/tideface/internal/sched"
	"github.com/seamarker/tideface/internal/tide"
	"github.com/seamarker/tideface/internal/web"
)

func main() {
	cfg := config.LoadFromEnv()
	cfg.InitializeLogging()

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("tidefaced failed")
	}
}

func run(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	predictor, err := tide.NewPredictor(cfg.Tidal)
	if err != nil {
		return err
	}
	classifier, err := lunar.NewClassifier(cfg.Lunar)
	if err != nil {
		return err
	}
	engine, err := sched.New(predictor, classifier, cfg.RefreshIntervalSeconds)
	if err != nil {
		return err
	}

	renderers := render.Multi{render.Console{Out: os.Stdout}}
	if cfg.MQTTBroker != "" {
		publisher, err := mqtt.NewRealPublisher(cfg.MQTTBroker)
		if err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
		defer func() {
			if closeErr := publisher.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("closing mqtt publisher")
			}
		}()
		renderers = append(renderers, mqtt.Renderer{Pub: publisher})
		log.Info().Str("broker", cfg.MQTTBroker).Msg("publishing face state to mqtt")
	}

	clk := clock.System{}

	if cfg.HTTPAddr != "" {
		statusServer, err := web.NewServer(engine, clk, cfg.RefreshIntervalSeconds, cfg.ReportCacheSize)
		if err != nil {
			return fmt.Errorf("status server: %w", err)
		}
		httpServer := &http.Server{Addr: cfg.HTTPAddr, Handler: statusServer.Router()}
		go func() {
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("status server error")
			}
		}()
		defer func() {
			if shutdownErr := httpServer.Shutdown(context.Background()); shutdownErr != nil {
				log.Error().Err(shutdownErr).Msg("shutting down status server")
			}
		}()
		log.Info().Str("addr", cfg.HTTPAddr).Msg("status server listening")
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	log.Info().
		Int64("refresh_interval", cfg.RefreshIntervalSeconds).
		Int64("half_tide_period", cfg.Tidal.HalfTidePeriodSeconds).
		Int64("phase_shift", cfg.Tidal.PhaseShiftSeconds).
		Msg("tidefaced started")

	return runLoop(engine, renderers, clk, ticker.C, sigCh)
}

// runLoop is the tick handler: one goroutine, one comparison per tick, a full
// recompute only when the scheduler says so.
func runLoop(engine *sched.Scheduler, renderer render.Renderer, clk clock.Clock, tick <-chan time.Time, sig <-chan os.Signal) error {
	for {
		select {
		case <-tick:
			now := clk.Now()
			report, ok := engine.MaybeRecompute(now)
			if !ok {
				continue
			}
			log.Debug().
				Int64("epoch", int64(now)).
				Bool("next_high", report.NextIsHigh).
				Int64("seconds_until", report.SecondsUntil).
				Str("range", string(report.Range)).
				Msg("recomputed face")
			if err := renderer.Render(*report); err != nil {
				log.Error().Err(err).Msg("rendering report")
			}
		case s := <-sig:
			log.Info().Str("signal", s.String()).Msg("shutting down")
			return nil
		}
	}
}
