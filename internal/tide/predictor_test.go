package tide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seamarker/tideface/internal/models"
)

// Reference deployment constants: half tide period 12 h 25 m, lunitidal
// interval 5 h 12 m.
var referenceConstants = models.TidalConstants{
	HalfTidePeriodSeconds: 44700,
	PhaseShiftSeconds:     18720,
}

func newReferencePredictor(t *testing.T) *Predictor {
	t.Helper()
	p, err := NewPredictor(referenceConstants)
	require.NoError(t, err)
	return p
}

func TestNewPredictorValidation(t *testing.T) {
	tests := []struct {
		name      string
		constants models.TidalConstants
		wantErr   bool
	}{
		{
			name:      "valid",
			constants: referenceConstants,
			wantErr:   false,
		},
		{
			name:      "negative phase shift allowed",
			constants: models.TidalConstants{HalfTidePeriodSeconds: 44700, PhaseShiftSeconds: -3600},
			wantErr:   false,
		},
		{
			name:      "zero period",
			constants: models.TidalConstants{HalfTidePeriodSeconds: 0},
			wantErr:   true,
		},
		{
			name:      "negative period",
			constants: models.TidalConstants{HalfTidePeriodSeconds: -44700},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPredictor(tt.constants)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid half tide period")
				return
			}
			require.NoError(t, err)
			require.NotNil(t, p)
		})
	}
}

func TestNextEventAtEpochZero(t *testing.T) {
	// At epoch 0 the reference deployment is 18 720 s into the cycle, past
	// the crest at 11 175 s, so the trough at 33 525 s comes next: low water
	// in 14 805 s, about 4 h 07 m away.
	p := newReferencePredictor(t)

	event := p.NextEvent(0)
	assert.False(t, event.IsHigh)
	assert.Equal(t, int64(14805), event.SecondsUntil)
	assert.Equal(t, 4, event.Hours())
	assert.Equal(t, 6, event.Minutes())
}

func TestNextEventBoundaries(t *testing.T) {
	p := newReferencePredictor(t)

	tests := []struct {
		name      string
		epoch     models.EpochSeconds
		wantHigh  bool
		wantUntil int64
	}{
		{
			// epoch + shift lands exactly a quarter cycle in: high water now.
			name:      "exactly high water",
			epoch:     37155,
			wantHigh:  true,
			wantUntil: 0,
		},
		{
			// epoch + shift lands exactly three quarters in: low water now.
			name:      "exactly low water",
			epoch:     14805,
			wantHigh:  false,
			wantUntil: 0,
		},
		{
			name:      "one second after high water",
			epoch:     37156,
			wantHigh:  false,
			wantUntil: 22349,
		},
		{
			name:      "one second before high water",
			epoch:     37154,
			wantHigh:  true,
			wantUntil: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := p.NextEvent(tt.epoch)
			assert.Equal(t, tt.wantHigh, event.IsHigh)
			assert.Equal(t, tt.wantUntil, event.SecondsUntil)
		})
	}
}

func TestNextEventBounds(t *testing.T) {
	// The countdown stays in [0, period) over the whole epoch range,
	// including times before the reference instant.
	p := newReferencePredictor(t)

	for epoch := int64(-4e12); epoch <= 4e12; epoch += 99999999977 {
		event := p.NextEvent(models.EpochSeconds(epoch))
		require.GreaterOrEqual(t, event.SecondsUntil, int64(0), "epoch %d", epoch)
		require.Less(t, event.SecondsUntil, int64(44700), "epoch %d", epoch)
	}
}

func TestNextEventPeriodicity(t *testing.T) {
	p := newReferencePredictor(t)

	epochs := []models.EpochSeconds{0, 1, -1, 12345, -987654321, 1700000000}
	for _, epoch := range epochs {
		first := p.NextEvent(epoch)
		second := p.NextEvent(epoch + 44700)
		assert.Equal(t, first.IsHigh, second.IsHigh, "epoch %d", epoch)
		assert.Equal(t, first.SecondsUntil, second.SecondsUntil, "epoch %d", epoch)
	}
}

func TestHeight(t *testing.T) {
	p := newReferencePredictor(t)

	// Full range bound.
	for epoch := int64(-200000); epoch <= 200000; epoch += 977 {
		h := p.Height(models.EpochSeconds(epoch))
		require.GreaterOrEqual(t, h, 0.0)
		require.LessOrEqual(t, h, 1.0)
	}

	// Crest and trough instants from TestNextEventBoundaries.
	assert.InDelta(t, 1.0, p.Height(37155), 1e-9)
	assert.InDelta(t, 0.0, p.Height(14805), 1e-9)
}

func TestRising(t *testing.T) {
	p := newReferencePredictor(t)

	// Heading toward low water at epoch 0, so falling.
	assert.False(t, p.Rising(0))
	// Just past low water the level turns around.
	assert.True(t, p.Rising(14806))
	// Just past high water it falls again.
	assert.False(t, p.Rising(37156))
}
