// Package dynamo provides the state and stepping primitives shared by the
// kinetics engine and its steppers.
//
// The package defines the fundamental interfaces for explicit integration
// of an autonomous ODE system dX/dt = f(X, t):
//
//   - [State]: vector of species concentrations, one slot per compound
//   - [System]: right-hand side of the ODE
//   - [Integrator]: a single fixed-size step of a numerical scheme
//
// # Example
//
//	rhs := kinetics.NewMassAction(sys)
//	step := integrators.NewEuler()
//	next := step.Step(rhs, sys.InitialState(), 0, 0.1)
//
// # Snapshot semantics
//
// Integrators must never write into the state they are given. Every Step
// returns a freshly allocated [State], so a caller holding a previous row
// of a trajectory observes it unchanged.
package dynamo
