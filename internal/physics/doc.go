// Package physics provides the point-mass world that drives the pendulum.
//
// A [World] holds [Body] values and [Constraint] values and advances them
// by a fixed step:
//
//   - integrate gravity and linear damping into each dynamic body
//   - project positions so every [DistanceConstraint] holds its length
//   - derive velocities from the corrected position change
//
// Static bodies never move and take no share of a constraint correction,
// which is how the pendulum anchor is expressed:
//
//	w := physics.NewWorld(mgl64.Vec3{0, -10, 0})
//	anchor := physics.NewStaticBody(mgl64.Vec3{})
//	bob := physics.NewBody(mgl64.Vec3{-10, 0, 0}, 2, 0.01)
//	w.AddBody(anchor)
//	w.AddBody(bob)
//	w.AddConstraint(physics.NewDistanceConstraint(anchor, bob))
//	w.Step(1.0 / 60)
package physics
