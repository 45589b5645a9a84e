// Profiling:
// go build ./profile/sim
// go tool pprof -http=":8000" -nodefraction=0.001 ./sim cpu.pprof

package main

import (
	"flag"
	"log"

	"github.com/pkg/profile"

	"github.com/gonewx/ember/internal/effect"
	"github.com/gonewx/ember/pkg/components"
	"github.com/gonewx/ember/pkg/ecs"
	"github.com/gonewx/ember/pkg/systems"
)

var (
	spawnersFlag = flag.Int("spawners", 8, "number of spawner entities")
	amountFlag   = flag.Int("amount", 500, "particles per burst")
	framesFlag   = flag.Int("frames", 3600, "simulated frames")
	memFlag      = flag.Bool("mem", false, "profile allocations instead of CPU")
)

func fixed(v float64) *effect.Rval {
	r := effect.Fixed(v)
	return &r
}

// profiledEffect stresses every integration path: damped velocity,
// gravity, angular motion and both curves.
func profiledEffect(amount int) *effect.Definition {
	return &effect.Definition{
		SpawnRate:     0.05,
		SpawnAmount:   amount,
		EmissionShape: effect.EmissionShape{Kind: effect.ShapeCircle, Radius: 5},
		Lifetime:      effect.Rval{Min: 1, Max: 3},
		LinearSpeed:   &effect.Rval{Min: 20, Max: 80},
		AngularSpeed:  &effect.Rval{Min: -3, Max: 3},
		LinearDamp:    fixed(0.5),
		GravitySpeed:  fixed(9.8),
		Scale:         fixed(1),
		ScaleCurve: &effect.Curve{Points: []effect.Keyframe{
			{Time: 0, Value: 1}, {Time: 1, Value: 0},
		}},
		ColorCurve: &effect.ColorCurve{Points: []effect.ColorKeyframe{
			{Time: 0, Value: effect.RGBA{R: 1, G: 0.8, B: 0.2, A: 1}},
			{Time: 1, Value: effect.RGBA{R: 1, A: 0}},
		}},
	}
}

func main() {
	flag.Parse()

	mode := profile.CPUProfile
	if *memFlag {
		mode = profile.MemProfileAllocs
	}
	p := profile.Start(mode, profile.ProfilePath("."), profile.NoShutdownHook)
	run(*spawnersFlag, *amountFlag, *framesFlag)
	p.Stop()
}

func run(spawners, amount, frames int) {
	def := profiledEffect(amount)
	if err := def.Validate(); err != nil {
		log.Fatal(err)
	}

	em := ecs.NewEntityManager()
	ps := systems.NewParticleSystem(em)
	ps.SetSeed(1)
	bs := systems.NewBoundsSystem(em)

	for i := 0; i < spawners; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &components.ParticleStore{})
		em.AddComponent(id, components.NewSpawnerState())
		em.AddComponent(id, &components.EffectInstance{Def: def.Clone()})
		em.AddComponent(id, &components.Transform{})
	}

	const delta = 1.0 / 60.0
	for i := 0; i < frames; i++ {
		ps.Update(delta)
		bs.Update()
	}
}
