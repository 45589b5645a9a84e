package systems

import (
	"math"
	"testing"

	"github.com/gonewx/ember/internal/effect"
	"github.com/gonewx/ember/internal/vmath"
	"github.com/gonewx/ember/pkg/components"
	"github.com/gonewx/ember/pkg/ecs"
)

func rval(v float64) *effect.Rval {
	r := effect.Fixed(v)
	return &r
}

func rvec(x, y float64) *effect.RvalVec2 {
	r := effect.FixedVec2(vmath.Vec2{X: x, Y: y})
	return &r
}

// burstDef returns a one-burst-per-tick effect with fixed kinematics.
func burstDef(amount int, lifetime float64) *effect.Definition {
	return &effect.Definition{
		SpawnRate:   0,
		SpawnAmount: amount,
		Lifetime:    effect.Fixed(lifetime),
	}
}

func newSpawner(em *ecs.EntityManager, def *effect.Definition) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.ParticleStore{})
	em.AddComponent(id, components.NewSpawnerState())
	em.AddComponent(id, &components.EffectInstance{Def: def.Clone()})
	em.AddComponent(id, &components.Transform{})
	return id
}

func spawnerStore(t *testing.T, em *ecs.EntityManager, id ecs.EntityID) *components.ParticleStore {
	t.Helper()
	store, ok := ecs.GetComponent[*components.ParticleStore](em, id)
	if !ok {
		t.Fatal("spawner has no store")
	}
	return store
}

// TestParticleSystem_BurstSpawnsExactAmount tests the end-to-end spawn
// count: rate 0.1s, amount 1000, one 0.3s tick.
func TestParticleSystem_BurstSpawnsExactAmount(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em)
	ps.SetSeed(1)

	def := &effect.Definition{
		SpawnRate:   0.1,
		SpawnAmount: 1000,
		Lifetime:    effect.Fixed(1.0),
	}
	id := newSpawner(em, def)

	ps.Update(0.3)

	if got := spawnerStore(t, em, id).Len(); got != 1000 {
		t.Errorf("store length after first tick = %d, want 1000", got)
	}
}

// TestParticleSystem_CadenceFiresAtMostOncePerTick tests a delta spanning
// many periods still yields a single burst.
func TestParticleSystem_CadenceFiresAtMostOncePerTick(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em)
	ps.SetSeed(1)

	def := &effect.Definition{
		SpawnRate:   0.1,
		SpawnAmount: 1,
		Lifetime:    effect.Fixed(100),
	}
	id := newSpawner(em, def)

	ps.Update(1.0) // ten periods elapse in one tick

	if got := spawnerStore(t, em, id).Len(); got != 1 {
		t.Errorf("store length = %d, want 1 (no catch-up bursts)", got)
	}
}

// TestParticleSystem_AgeMonotonicAndExpiredPruned tests duration fraction
// growth and same-tick removal at 1.0.
func TestParticleSystem_AgeMonotonicAndExpiredPruned(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em)
	ps.SetSeed(1)

	def := burstDef(10, 1.0)
	id := newSpawner(em, def)
	em.AddComponent(id, &components.OneShot{Mode: components.OneShotDeactivate})
	store := spawnerStore(t, em, id)

	ps.Update(0.4)
	if store.Len() != 10 {
		t.Fatalf("store length after burst = %d, want 10", store.Len())
	}
	prev := make([]float64, store.Len())
	for i := range store.Entries {
		prev[i] = store.Entries[i].Particle.DurationFraction
	}

	ps.Update(0.4)
	for i := range store.Entries {
		f := store.Entries[i].Particle.DurationFraction
		if f < prev[i] {
			t.Errorf("particle %d fraction decreased: %v -> %v", i, prev[i], f)
		}
		if f >= 1.0 {
			t.Errorf("particle %d with fraction %v survived retention", i, f)
		}
	}

	ps.Update(0.4) // total age 1.2 > lifetime
	if store.Len() != 0 {
		t.Errorf("store length after lifetime elapsed = %d, want 0", store.Len())
	}
}

// TestParticleSystem_CapacityNeverExceeded tests the spawn-side cap.
func TestParticleSystem_CapacityNeverExceeded(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em)
	ps.SetSeed(1)

	id := newSpawner(em, burstDef(1000, 100))
	state, _ := ecs.GetComponent[*components.SpawnerState](em, id)
	state.MaxParticles = 100
	store := spawnerStore(t, em, id)

	for i := 0; i < 5; i++ {
		ps.Update(0.01)
		if store.Len() > 100 {
			t.Fatalf("store length %d exceeds MaxParticles 100 after tick %d", store.Len(), i)
		}
	}
	if store.Len() != 100 {
		t.Errorf("store length = %d, want exactly 100", store.Len())
	}

	// A full store stops spawning but keeps aging.
	before := store.Entries[0].Particle.DurationFraction
	ps.Update(0.01)
	if after := store.Entries[0].Particle.DurationFraction; after <= before {
		t.Errorf("full store stopped aging: fraction %v -> %v", before, after)
	}
}

// TestParticleSystem_ConstantVelocityDisplacement tests the closed-form
// formula with no damping, acceleration, or gravity.
func TestParticleSystem_ConstantVelocityDisplacement(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em)
	ps.SetSeed(1)

	def := burstDef(1, 10)
	def.Direction = rvec(1, 0)
	def.LinearSpeed = rval(10)
	id := newSpawner(em, def)
	em.AddComponent(id, &components.OneShot{Mode: components.OneShotDeactivate})
	store := spawnerStore(t, em, id)

	for i := 0; i < 3; i++ {
		ps.Update(0.5)
	}

	p := &store.Entries[0].Particle
	inst := &store.Entries[0].Instance
	age := p.DurationFraction * p.Duration
	wantX := 10 * age // direction * speed * t, exactly
	if math.Abs(inst.Translation.X-wantX) > 1e-9 {
		t.Errorf("Translation.X = %v, want %v", inst.Translation.X, wantX)
	}
	if math.Abs(inst.Translation.Y) > 1e-9 || math.Abs(inst.Translation.Z) > 1e-9 {
		t.Errorf("off-axis displacement = (%v, %v), want zero", inst.Translation.Y, inst.Translation.Z)
	}
	// Velocity is an initial condition; integration must never mutate it.
	if p.Velocity.X != 10 || p.Velocity.Y != 0 {
		t.Errorf("spawn velocity mutated: %+v", p.Velocity)
	}
}

// TestParticleSystem_GravityDisplacement tests -0.5*g*t² vertical motion
// with zero initial speed.
func TestParticleSystem_GravityDisplacement(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em)
	ps.SetSeed(1)

	const g = 9.8
	def := burstDef(1, 10)
	def.GravityDirection = rvec(0, -1)
	def.GravitySpeed = rval(g)
	id := newSpawner(em, def)
	em.AddComponent(id, &components.OneShot{Mode: components.OneShotDeactivate})
	store := spawnerStore(t, em, id)

	for i := 0; i < 4; i++ {
		ps.Update(0.25)
	}

	p := &store.Entries[0].Particle
	inst := &store.Entries[0].Instance
	age := p.DurationFraction * p.Duration
	wantY := -0.5 * g * age * age
	if math.Abs(inst.Translation.Y-wantY) > 1e-9 {
		t.Errorf("Translation.Y = %v, want %v at age %v", inst.Translation.Y, wantY, age)
	}
	if math.Abs(inst.Translation.X) > 1e-9 {
		t.Errorf("Translation.X = %v, want 0", inst.Translation.X)
	}
}

// TestParticleSystem_RotationFromAngularVelocity tests undamped spin
// accumulates as angVel * age.
func TestParticleSystem_RotationFromAngularVelocity(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em)
	ps.SetSeed(1)

	const w = 2.5
	def := burstDef(1, 10)
	def.AngularSpeed = rval(w)
	id := newSpawner(em, def)
	em.AddComponent(id, &components.OneShot{Mode: components.OneShotDeactivate})
	store := spawnerStore(t, em, id)

	ps.Update(0.5)
	ps.Update(0.5)

	p := &store.Entries[0].Particle
	inst := &store.Entries[0].Instance
	age := p.DurationFraction * p.Duration
	if math.Abs(inst.Rotation-w*age) > 1e-9 {
		t.Errorf("Rotation = %v, want %v", inst.Rotation, w*age)
	}
}

// TestParticleSystem_CurveDispatchIsolation tests that a color-only curve
// never touches scale and a scale-only curve never touches color.
func TestParticleSystem_CurveDispatchIsolation(t *testing.T) {
	t.Run("Color curve only", func(t *testing.T) {
		em := ecs.NewEntityManager()
		ps := NewParticleSystem(em)
		ps.SetSeed(1)

		def := burstDef(5, 1.0)
		def.Scale = rval(2.0)
		def.ColorCurve = &effect.ColorCurve{Points: []effect.ColorKeyframe{
			{Time: 0, Value: effect.RGBA{R: 1, A: 1}},
			{Time: 1, Value: effect.RGBA{B: 1, A: 0}},
		}}
		id := newSpawner(em, def)
		em.AddComponent(id, &components.OneShot{Mode: components.OneShotDeactivate})
		store := spawnerStore(t, em, id)

		ps.Update(0.3)
		ps.Update(0.3)

		for i := range store.Entries {
			e := &store.Entries[i]
			if e.Particle.Scale != 2.0 || e.Instance.Scale != 2.0 {
				t.Errorf("particle %d scale = %v/%v, want spawn value 2.0", i, e.Particle.Scale, e.Instance.Scale)
			}
			if e.Particle.Color == effect.White {
				t.Errorf("particle %d color not driven by curve", i)
			}
		}
	})

	t.Run("Scale curve only", func(t *testing.T) {
		em := ecs.NewEntityManager()
		ps := NewParticleSystem(em)
		ps.SetSeed(1)

		def := burstDef(5, 1.0)
		def.Color = &effect.RvalColor{
			Min: effect.RGBA{R: 1, A: 1},
			Max: effect.RGBA{R: 1, A: 1},
		}
		def.ScaleCurve = &effect.Curve{Points: []effect.Keyframe{
			{Time: 0, Value: 1},
			{Time: 1, Value: 0},
		}}
		id := newSpawner(em, def)
		em.AddComponent(id, &components.OneShot{Mode: components.OneShotDeactivate})
		store := spawnerStore(t, em, id)

		ps.Update(0.3)
		ps.Update(0.3)

		want := effect.RGBA{R: 1, A: 1}
		for i := range store.Entries {
			e := &store.Entries[i]
			if e.Particle.Color != want || e.Instance.Color != want {
				t.Errorf("particle %d color = %+v/%+v, want spawn value %+v", i, e.Particle.Color, e.Instance.Color, want)
			}
			if e.Particle.Scale >= 1 {
				t.Errorf("particle %d scale = %v, want curve-driven value < 1", i, e.Particle.Scale)
			}
		}
	})
}

// TestParticleSystem_EmptyCurveHoldsSpawnValue tests a present but
// keyframe-less curve behaves like no curve at all.
func TestParticleSystem_EmptyCurveHoldsSpawnValue(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em)
	ps.SetSeed(1)

	def := burstDef(3, 1.0)
	def.Scale = rval(1.5)
	def.ScaleCurve = &effect.Curve{} // malformed: no keyframes
	id := newSpawner(em, def)
	em.AddComponent(id, &components.OneShot{Mode: components.OneShotDeactivate})
	store := spawnerStore(t, em, id)

	ps.Update(0.25)

	for i := range store.Entries {
		if got := store.Entries[i].Particle.Scale; got != 1.5 {
			t.Errorf("particle %d scale = %v, want 1.5 held constant", i, got)
		}
	}
}

// TestParticleSystem_ZeroLifetimeClamped tests the guard against a
// non-finite duration fraction.
func TestParticleSystem_ZeroLifetimeClamped(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em)
	ps.SetSeed(1)

	id := newSpawner(em, burstDef(1, 0))
	store := spawnerStore(t, em, id)

	ps.Update(0.0001)

	// The particle may already have expired, but nothing may be
	// non-finite along the way.
	for i := range store.Entries {
		p := &store.Entries[i].Particle
		if p.Duration < effect.MinLifetime {
			t.Errorf("Duration = %v, want >= %v", p.Duration, effect.MinLifetime)
		}
		if math.IsInf(p.DurationFraction, 0) || math.IsNaN(p.DurationFraction) {
			t.Errorf("DurationFraction = %v, want finite", p.DurationFraction)
		}
	}
}

// TestParticleSystem_OneShotDeactivates tests exactly one burst fires.
func TestParticleSystem_OneShotDeactivates(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em)
	ps.SetSeed(1)

	id := newSpawner(em, burstDef(10, 100))
	em.AddComponent(id, &components.OneShot{Mode: components.OneShotDeactivate})
	state, _ := ecs.GetComponent[*components.SpawnerState](em, id)
	store := spawnerStore(t, em, id)

	ps.Update(0.1)
	if state.Active {
		t.Error("spawner still active after one-shot burst")
	}
	if store.Len() != 10 {
		t.Fatalf("store length = %d, want 10", store.Len())
	}

	for i := 0; i < 5; i++ {
		ps.Update(0.1)
	}
	if store.Len() != 10 {
		t.Errorf("store length = %d after further ticks, want 10", store.Len())
	}
}

// TestParticleSystem_MissingEffectIsNoop tests an unresolved definition
// never spawns and never crashes.
func TestParticleSystem_MissingEffectIsNoop(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em)

	id := em.CreateEntity()
	em.AddComponent(id, &components.ParticleStore{})
	em.AddComponent(id, components.NewSpawnerState())
	em.AddComponent(id, &components.Transform{})
	// No EffectInstance attached.

	ps.Update(0.1)

	if got := spawnerStore(t, em, id).Len(); got != 0 {
		t.Errorf("store length = %d, want 0 without a definition", got)
	}
}

// TestParticleSystem_CircleEmissionInsideDisc tests spawn offsets stay
// within the configured radius around the spawner.
func TestParticleSystem_CircleEmissionInsideDisc(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em)
	ps.SetSeed(42)

	const radius = 3.0
	def := burstDef(500, 100)
	def.EmissionShape = effect.EmissionShape{Kind: effect.ShapeCircle, Radius: radius}
	id := newSpawner(em, def)
	tr, _ := ecs.GetComponent[*components.Transform](em, id)
	tr.Position = vmath.Vec3{X: 50, Y: -20}
	store := spawnerStore(t, em, id)

	ps.Update(0.01)

	for i := range store.Entries {
		p := &store.Entries[i].Particle
		dx := p.StartPos.X - 50
		dy := p.StartPos.Y + 20
		if math.Hypot(dx, dy) > radius+1e-9 {
			t.Fatalf("particle %d spawned %.3f from center, radius %v", i, math.Hypot(dx, dy), radius)
		}
		if p.StartPos.Z != 0 {
			t.Fatalf("particle %d spawned off-plane at z=%v", i, p.StartPos.Z)
		}
	}
}

// TestParticleSystem_DirectionRotatedBySpawner tests the sampled
// direction follows the spawner's rightward axis.
func TestParticleSystem_DirectionRotatedBySpawner(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em)
	ps.SetSeed(1)

	def := burstDef(1, 100)
	def.Direction = rvec(1, 0)
	def.LinearSpeed = rval(1)
	id := newSpawner(em, def)
	tr, _ := ecs.GetComponent[*components.Transform](em, id)
	tr.Rotation = math.Pi / 2
	store := spawnerStore(t, em, id)

	ps.Update(0.01)

	dir := store.Entries[0].Particle.Direction
	if math.Abs(dir.X) > 1e-9 || math.Abs(dir.Y-1) > 1e-9 {
		t.Errorf("Direction = %+v, want rotated to {0 1}", dir)
	}
}

// TestParticleSystem_InstanceTracksFraction tests the render instance is
// rederived every tick from particle state.
func TestParticleSystem_InstanceTracksFraction(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em)
	ps.SetSeed(1)

	id := newSpawner(em, burstDef(1, 2.0))
	em.AddComponent(id, &components.OneShot{Mode: components.OneShotDeactivate})
	store := spawnerStore(t, em, id)

	ps.Update(0.5)
	e := &store.Entries[0]
	if e.Instance.DurationFraction != e.Particle.DurationFraction {
		t.Errorf("instance fraction %v != particle fraction %v",
			e.Instance.DurationFraction, e.Particle.DurationFraction)
	}
}
