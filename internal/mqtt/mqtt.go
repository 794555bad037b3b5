// Package mqtt publishes face reports to a broker for headless deployments,
// with an abstraction for testing.
package mqtt

import (
	"github.com/seamarker/tideface/internal/models"
)

// StateTopic is the MQTT topic for face state reports.
const StateTopic = "marine/tideface/state"

// Publisher publishes face reports to MQTT.
type Publisher interface {
	// Publish sends a face report to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(report models.FaceReport) error

	// Close disconnects from the broker.
	Close() error
}

// Renderer adapts a Publisher to the render sink interface.
type Renderer struct {
	Pub Publisher
}

func (r Renderer) Render(report models.FaceReport) error {
	return r.Pub.Publish(report)
}
