package components

import (
	"math"

	"github.com/gonewx/ember/internal/effect"
)

// SpawnerState is the per-instance control state of one particle spawner.
type SpawnerState struct {
	// MaxParticles caps the store size; spawning is skipped while the
	// store holds at least this many particles.
	MaxParticles int
	// Active gates spawning. Existing particles keep simulating while
	// the spawner is inactive.
	Active bool
	// Timer drives the spawn cadence; its period tracks the effect's
	// SpawnRate every tick.
	Timer SpawnTimer
}

// NewSpawnerState returns the default control state: active, uncapped.
func NewSpawnerState() *SpawnerState {
	return &SpawnerState{
		MaxParticles: math.MaxInt,
		Active:       true,
	}
}

// OneShotMode selects what happens after a one-shot spawner's single burst.
type OneShotMode uint8

const (
	// OneShotDeactivate turns the spawner off after its first burst.
	OneShotDeactivate OneShotMode = iota
	// OneShotDespawn additionally removes the whole spawner entity once
	// it is inactive and its store has drained.
	OneShotDespawn
)

// OneShot tags a spawner to fire exactly one burst. Either mode
// deactivates the spawner immediately after that burst.
type OneShot struct {
	Mode OneShotMode
}

// EffectHandle references a shared effect definition by registry ID.
type EffectHandle struct {
	ID string
}

// EffectInstance is the spawner's private copy of its effect definition,
// created by copy-on-attach when the shared template resolves. Runtime
// edits to Def affect only this spawner.
type EffectInstance struct {
	Def *effect.Definition
}
