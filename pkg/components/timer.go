package components

import "math"

// SpawnTimer is a repeating cadence accumulator. It fires at most once per
// Tick call regardless of how many periods the delta spans; a long frame
// never produces catch-up bursts.
type SpawnTimer struct {
	Period  float64 // seconds between firings; <= 0 fires every tick
	Elapsed float64
}

// SetPeriod updates the cadence without disturbing accumulated time.
func (t *SpawnTimer) SetPeriod(period float64) {
	t.Period = period
}

// Tick advances the timer by delta seconds and reports whether it fired.
func (t *SpawnTimer) Tick(delta float64) bool {
	if t.Period <= 0 {
		t.Elapsed = 0
		return true
	}
	t.Elapsed += delta
	if t.Elapsed >= t.Period {
		t.Elapsed = math.Mod(t.Elapsed, t.Period)
		return true
	}
	return false
}
