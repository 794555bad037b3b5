package mqtt

import (
	"github.com/seamarker/tideface/internal/models"
)

// FakePublisher records published reports for tests.
type FakePublisher struct {
	Reports []models.FaceReport
	Err     error // returned from Publish when set
	Closed  bool
}

func (f *FakePublisher) Publish(report models.FaceReport) error {
	if f.Err != nil {
		return f.Err
	}
	f.Reports = append(f.Reports, report)
	return nil
}

func (f *FakePublisher) Close() error {
	f.Closed = true
	return nil
}
