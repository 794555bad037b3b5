// Command tides prints the face report for a given moment as JSON. Useful for
// calibrating a deployment against a published tide table.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/seamarker/tideface/internal/astro"
	"github.com/seamarker/tideface/internal/clock"
	"github.com/seamarker/tideface/internal/config"
	"github.com/seamarker/tideface/internal/lunar"
	"github.com/seamarker/tideface/internal/models"
	"github.com/seamarker/tideface/internal/sched"
	"github.com/seamarker/tideface/internal/tide"
)

func main() {
	epochFlag := flag.Int64("epoch", 0, "epoch seconds to predict at (default: now)")
	deriveNewMoon := flag.Bool("derive-new-moon", false,
		"replace the configured reference new moon with the ephemeris new moon nearest the prediction instant")
	flag.Parse()

	// Only an explicit -epoch overrides "now"; epoch 0 itself is a valid
	// instant to query.
	epoch := clock.System{}.Now()
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "epoch" {
			epoch = models.EpochSeconds(*epochFlag)
		}
	})

	cfg := config.LoadFromEnv()
	cfg.InitializeLogging()

	if err := run(cfg, epoch, *deriveNewMoon, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("tides failed")
	}
}

func run(cfg *config.Config, epoch models.EpochSeconds, deriveNewMoon bool, out io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	if deriveNewMoon {
		ref := astro.NearestNewMoon(time.Unix(int64(epoch), 0).UTC())
		cfg.Lunar.ReferenceNewMoonEpoch = models.EpochSeconds(ref.Unix())
		log.Debug().Time("reference_new_moon", ref).Msg("derived reference new moon")
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

	report := engine.Compute(epoch)

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}
