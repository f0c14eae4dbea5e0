// Package kinetics integrates a reaction network under mass-action
// kinetics.
//
// [MassAction] is the ODE right-hand side: for a state c it evaluates
//
//	rate(r)   = k_r * prod_{reactants i of r} c[i]^coef_i
//	dc[j]/dt  = sum_r nu(j, r) * rate(r)
//
// where nu is -coef for each reactant occurrence and +coef for each product
// occurrence. [Integrator.Run] owns the stepping loop and returns the whole
// [Trajectory] in one call.
//
// Negative concentrations are not clamped. A time step that is large
// compared to the fastest reaction can drive values negative or to Inf;
// those values are returned as they are.
package kinetics
