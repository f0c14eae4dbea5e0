// Package analysis provides structural and numerical checks on reaction
// networks and their trajectories.
//
//   - [StoichiometryMatrix]: net stoichiometry N (compounds x reactions)
//   - [ConservationLaws]: number of independent linear conservation laws
//   - [ConservationBasis]: an orthonormal basis of the left null space of N
//   - [ConservedSeries]: a weighted sum of concentrations along a trajectory
//   - [ConvergenceStudy]: error of fixed-step runs as the step count doubles
//
// # Conservation
//
// Any weight vector w with w^T N = 0 is conserved by the exact ODE and by
// every explicit fixed-step scheme, so its drift on a trajectory measures
// rounding only:
//
//	basis := analysis.ConservationBasis(sys)
//	series := analysis.ConservedSeries(tr, basis[0])
package analysis
