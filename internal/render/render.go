// Package render carries a freshly computed face report out to display sinks.
// Renderers are pure consumers: nothing they do feeds back into the engine.
package render

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/seamarker/tideface/internal/models"
)

// Renderer consumes one face report per successful recompute.
type Renderer interface {
	Render(models.FaceReport) error
}

// Cells lays the report out the way the watch face does: weekday digits "TI",
// day digits "HI" or "1O" for the next event (the face has no proper L or W),
// the countdown as HH:MM, and the range class as a trailing mark.
func Cells(r models.FaceReport) string {
	day := "1O"
	if r.NextIsHigh {
		day = "HI"
	}
	mark := "NP"
	if r.Range == models.RangeSpring {
		mark = "SP"
	}
	return fmt.Sprintf("TI %s %02d:%02d %s", day, r.Hours, r.Minutes, mark)
}

// Console writes the rendered cells to Out, one line per recompute.
type Console struct {
	Out io.Writer
}

func (c Console) Render(r models.FaceReport) error {
	if _, err := fmt.Fprintln(c.Out, Cells(r)); err != nil {
		return fmt.Errorf("writing cells: %w", err)
	}
	return nil
}

// Multi fans a report out to several renderers. A failing renderer is logged
// and does not stop the others; the first error is returned.
type Multi []Renderer

func (m Multi) Render(r models.FaceReport) error {
	var firstErr error
	for _, renderer := range m {
		if err := renderer.Render(r); err != nil {
			log.Error().Err(err).Msg("renderer failed")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
