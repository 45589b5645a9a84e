package systems

import (
	"math/rand"
	"time"

	"github.com/gonewx/ember/internal/effect"
	"github.com/gonewx/ember/internal/vmath"
	"github.com/gonewx/ember/pkg/components"
	"github.com/gonewx/ember/pkg/ecs"
)

// ParticleSystem is the per-tick driver of every particle spawner: it
// schedules spawn bursts, advances live particles, refreshes their render
// instances, and prunes expired entries.
//
// Spawner entities are processed in parallel; each spawner exclusively
// owns its store and state, so workers share nothing mutable. Within one
// spawner the store is further split into disjoint slices processed
// concurrently, with a barrier before the retention pass.
type ParticleSystem struct {
	EntityManager *ecs.EntityManager

	// seed, when nonzero, makes particle sampling reproducible.
	seed int64
}

// NewParticleSystem creates the update engine over an entity manager.
func NewParticleSystem(em *ecs.EntityManager) *ParticleSystem {
	return &ParticleSystem{EntityManager: em}
}

// SetSeed pins the random sampling of spawned particles to a fixed seed.
// Zero restores wall-clock seeding.
func (ps *ParticleSystem) SetSeed(seed int64) {
	ps.seed = seed
}

// Update advances every spawner by dt seconds.
func (ps *ParticleSystem) Update(dt float64) {
	ids := ecs.GetEntitiesWith2[*components.ParticleStore, *components.SpawnerState](ps.EntityManager)

	seedBase := ps.seed
	if seedBase == 0 {
		seedBase = time.Now().UnixNano()
	}

	parallelChunksIndexed(len(ids), func(worker, start, end int) {
		rng := rand.New(rand.NewSource(seedBase + int64(worker+1)*0x9e3779b1))
		for i := start; i < end; i++ {
			ps.updateSpawner(ids[i], dt, rng)
		}
	})
}

// updateSpawner runs one spawner's full tick: spawn, advance, prune.
func (ps *ParticleSystem) updateSpawner(id ecs.EntityID, dt float64, rng *rand.Rand) {
	store, ok := ecs.GetComponent[*components.ParticleStore](ps.EntityManager, id)
	if !ok {
		return
	}
	state, ok := ecs.GetComponent[*components.SpawnerState](ps.EntityManager, id)
	if !ok {
		return
	}
	instance, ok := ecs.GetComponent[*components.EffectInstance](ps.EntityManager, id)
	if !ok || instance.Def == nil {
		// Definition not resolved yet; nothing to simulate.
		return
	}
	transform, ok := ecs.GetComponent[*components.Transform](ps.EntityManager, id)
	if !ok {
		transform = &components.Transform{}
	}

	def := instance.Def

	// Spawn scheduling. The cadence timer always tracks the effect's
	// current spawn rate and fires at most once per tick. Capacity is
	// checked before spawning and the burst clamped so the store never
	// exceeds MaxParticles after the tick.
	if store.Len() < state.MaxParticles {
		state.Timer.SetPeriod(def.SpawnRate)
		if state.Timer.Tick(dt) && state.Active {
			amount := def.SpawnAmount
			if remaining := state.MaxParticles - store.Len(); amount > remaining {
				amount = remaining
			}
			for i := 0; i < amount; i++ {
				p := spawnParticle(def, transform, rng)
				store.Push(p, newRenderInstance(&p))
			}
			if ecs.HasComponent[*components.OneShot](ps.EntityManager, id) {
				// Exactly one burst, regardless of one-shot mode.
				state.Active = false
			}
		}
	}

	ps.advanceStore(store, def, dt)

	store.Retain(func(p *components.Particle) bool {
		return p.DurationFraction < 1.0
	})
}

// advanceStore ages all particles and refreshes their render instances.
// One of four specialized closures is selected per tick from the curves
// the effect carries, keeping the per-particle loop branch-free. An empty
// curve counts as absent, holding the spawn-sampled value constant.
func (ps *ParticleSystem) advanceStore(store *components.ParticleStore, def *effect.Definition, delta float64) {
	scaleCurve := def.ScaleCurve
	if scaleCurve.IsEmpty() {
		scaleCurve = nil
	}
	colorCurve := def.ColorCurve
	if colorCurve.IsEmpty() {
		colorCurve = nil
	}

	var update func(e *components.ParticleEntry)
	switch {
	case scaleCurve == nil && colorCurve == nil:
		update = func(e *components.ParticleEntry) {
			p := &e.Particle
			p.DurationFraction += delta / p.Duration
			writePose(p, &e.Instance)
		}
	case scaleCurve == nil && colorCurve != nil:
		update = func(e *components.ParticleEntry) {
			p := &e.Particle
			p.DurationFraction += delta / p.Duration
			p.Color = colorCurve.Sample(p.DurationFraction)
			writePose(p, &e.Instance)
			e.Instance.Color = p.Color
		}
	case scaleCurve != nil && colorCurve == nil:
		update = func(e *components.ParticleEntry) {
			p := &e.Particle
			p.DurationFraction += delta / p.Duration
			p.Scale = scaleCurve.Sample(p.DurationFraction)
			writePose(p, &e.Instance)
		}
	default:
		update = func(e *components.ParticleEntry) {
			p := &e.Particle
			p.DurationFraction += delta / p.Duration
			p.Scale = scaleCurve.Sample(p.DurationFraction)
			p.Color = colorCurve.Sample(p.DurationFraction)
			writePose(p, &e.Instance)
			e.Instance.Color = p.Color
		}
	}

	entries := store.Entries
	parallelChunks(len(entries), func(start, end int) {
		for i := start; i < end; i++ {
			update(&entries[i])
		}
	})
}

// spawnParticle samples one particle from the effect definition at the
// spawner's current world transform. Every randomized field is drawn
// independently, once; fixed fields degenerate to their single value.
func spawnParticle(def *effect.Definition, transform *components.Transform, rng *rand.Rand) components.Particle {
	var direction vmath.Vec2
	if def.Direction != nil {
		direction = def.Direction.Sample(rng)
	}
	direction = direction.NormalizeOrZero().Rotate(transform.Right())

	var speed, angular, scale float64
	if def.LinearSpeed != nil {
		speed = def.LinearSpeed.Sample(rng)
	}
	if def.AngularSpeed != nil {
		angular = def.AngularSpeed.Sample(rng)
	}
	if def.Scale != nil {
		scale = def.Scale.Sample(rng)
	}

	var gravityDir vmath.Vec2
	if def.GravityDirection != nil {
		gravityDir = def.GravityDirection.Sample(rng)
	}
	gravityDir = gravityDir.NormalizeOrZero()
	var gravitySpeed float64
	if def.GravitySpeed != nil {
		gravitySpeed = def.GravitySpeed.Sample(rng)
	}

	var linearDamp, angularDamp, linearAccel, angularAccel float64
	if def.LinearDamp != nil {
		linearDamp = def.LinearDamp.Sample(rng)
	}
	if def.AngularDamp != nil {
		angularDamp = def.AngularDamp.Sample(rng)
	}
	if def.LinearAcceleration != nil {
		linearAccel = def.LinearAcceleration.Sample(rng)
	}
	if def.AngularAcceleration != nil {
		angularAccel = def.AngularAcceleration.Sample(rng)
	}

	startPos := transform.Position.Add(emissionOffset(def.EmissionShape, rng))

	duration := def.Lifetime.Sample(rng)
	if duration < effect.MinLifetime {
		duration = effect.MinLifetime
	}

	color := effect.White
	if def.Color != nil {
		color = def.Color.Sample(rng)
	}

	return components.Particle{
		StartPos:            startPos,
		Direction:           direction,
		Scale:               scale,
		Gravity:             gravityDir.Extend(0).Scale(gravitySpeed),
		Duration:            duration,
		DurationFraction:    0,
		Velocity:            vmath.Vec4{X: direction.X * speed, Y: direction.Y * speed, Z: 0, W: angular},
		Color:               color,
		Frame:               0,
		LinearAcceleration:  linearAccel,
		LinearDamp:          linearDamp,
		AngularAcceleration: angularAccel,
		AngularDamp:         angularDamp,
	}
}

// emissionOffset places a spawn inside the emission shape. The circle
// draw multiplies a normalized square sample by an independent uniform
// radial factor; the resulting center-biased distribution is intentional
// and must not be "corrected" to uniform area.
func emissionOffset(shape effect.EmissionShape, rng *rand.Rand) vmath.Vec3 {
	switch shape.Kind {
	case effect.ShapeCircle:
		dir := vmath.Vec2{X: rng.Float64() - 0.5, Y: rng.Float64() - 0.5}.NormalizeOrZero()
		return dir.Scale(shape.Radius * rng.Float64()).Extend(0)
	default:
		return vmath.Vec3{}
	}
}
