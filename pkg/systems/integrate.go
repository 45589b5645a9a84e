package systems

import (
	"math"

	"github.com/gonewx/ember/internal/vmath"
	"github.com/gonewx/ember/pkg/components"
)

// renderPose computes the particle's world translation and Z rotation in
// closed form from its absolute age.
//
// The instantaneous velocities are derived from the spawn-time velocity
// decayed exponentially, plus an acceleration term linear in age:
//
//	linVel' = linVel*exp(-linDamp*age) + dir*linAccel*age
//	angVel' = angVel*exp(-angDamp*age) + angAccel*age
//
// and the pose follows constant-acceleration kinematics from StartPos:
//
//	translation = startPos + linVel'*age + 0.5*gravity*age²
//	rotation    = angVel'*age
//
// Recomputing from absolute age each tick keeps the result independent of
// tick rate and free of accumulated floating-point drift, and lets any
// worker evaluate it without carrying mutable velocity state across ticks.
func renderPose(p *components.Particle) (vmath.Vec3, float64) {
	age := p.DurationFraction * p.Duration

	linVel := p.Velocity.XYZ()
	angVel := p.Velocity.W

	linDampFactor := math.Exp(-p.LinearDamp * age)
	angDampFactor := math.Exp(-p.AngularDamp * age)

	linAccel := p.LinearAcceleration * age
	angAccel := p.AngularAcceleration * age

	linVel = linVel.Scale(linDampFactor).Add(p.Direction.Extend(0).Scale(linAccel))
	angVel = angVel*angDampFactor + angAccel

	displacement := linVel.Scale(age).Add(p.Gravity.Scale(0.5 * age * age))
	return p.StartPos.Add(displacement), angVel * age
}

// writePose refreshes the pose-derived fields of the render instance.
func writePose(p *components.Particle, inst *components.RenderInstance) {
	inst.Translation, inst.Rotation = renderPose(p)
	inst.Scale = p.Scale
	inst.DurationFraction = p.DurationFraction
	inst.Frame = p.Frame
}

// newRenderInstance derives the initial render view of a freshly spawned
// particle.
func newRenderInstance(p *components.Particle) components.RenderInstance {
	var inst components.RenderInstance
	writePose(p, &inst)
	inst.Color = p.Color
	return inst
}
