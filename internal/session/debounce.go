package session

import (
	"github.com/benbjohnson/clock"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/vburojevic/pirtimer/internal/hal"
)

// Debouncer turns noisy PIR reads into one stable motion reading
type Debouncer struct {
	sensor    hal.MotionSensor
	clock     clock.Clock
	log       *zap.Logger
	samples   int
	threshold int
}

// NewDebouncer creates a majority-of-three debouncer
func NewDebouncer(sensor hal.MotionSensor, clk clock.Clock, log *zap.Logger) *Debouncer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Debouncer{
		sensor:    sensor,
		clock:     clk,
		log:       log,
		samples:   SampleCount,
		threshold: MotionThreshold,
	}
}

// ReadStable samples the sensor SampleCount times, SampleInterval apart,
// and reports motion when at least MotionThreshold samples were high.
// A failed read counts as no motion.
func (d *Debouncer) ReadStable() bool {
	samples := make([]bool, d.samples)
	for i := range samples {
		v, err := d.sensor.ReadMotion()
		if err != nil {
			d.log.Debug("motion sensor read failed", zap.Int("sample", i), zap.Error(err))
			v = false
		}
		samples[i] = v
		d.clock.Sleep(SampleInterval)
	}
	return lo.Count(samples, true) >= d.threshold
}
