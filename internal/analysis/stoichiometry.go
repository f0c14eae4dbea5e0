package analysis

import (
	"math"

	"github.com/san-kum/chemsim/internal/dynamo"
	"github.com/san-kum/chemsim/internal/reaction"
	"gonum.org/v1/gonum/mat"
)

// StoichiometryMatrix returns N with N[i][j] the net change of compound i
// per unit extent of reaction j. It returns nil for a system without
// compounds or reactions.
func StoichiometryMatrix(sys *reaction.System) *mat.Dense {
	n, m := sys.NumCompounds(), sys.NumReactions()
	if n == 0 || m == 0 {
		return nil
	}

	N := mat.NewDense(n, m, nil)
	for j := 0; j < m; j++ {
		r := sys.Reaction(j)
		for _, t := range r.ReactantTerms() {
			N.Set(t.Index, j, N.At(t.Index, j)-t.Coefficient)
		}
		for _, t := range r.ProductTerms() {
			N.Set(t.Index, j, N.At(t.Index, j)+t.Coefficient)
		}
	}
	return N
}

// Rank is the numerical rank of N.
func Rank(N mat.Matrix) int {
	if N == nil {
		return 0
	}
	var svd mat.SVD
	if !svd.Factorize(N, mat.SVDNone) {
		return 0
	}
	values := svd.Values(nil)
	return countAbove(values, rankTolerance(N, values))
}

func rankTolerance(N mat.Matrix, values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	r, c := N.Dims()
	return float64(max(r, c)) * values[0] * 1e-12
}

func countAbove(values []float64, tol float64) int {
	rank := 0
	for _, v := range values {
		if v > tol {
			rank++
		}
	}
	return rank
}

// ConservationLaws is the number of independent linear combinations of
// concentrations left constant by the network.
func ConservationLaws(sys *reaction.System) int {
	N := StoichiometryMatrix(sys)
	if N == nil {
		return sys.NumCompounds()
	}
	return sys.NumCompounds() - Rank(N)
}

// ConservationBasis returns an orthonormal basis of {w : w^T N = 0}, one
// weight vector per conservation law.
func ConservationBasis(sys *reaction.System) [][]float64 {
	n := sys.NumCompounds()
	N := StoichiometryMatrix(sys)
	if N == nil {
		basis := make([][]float64, n)
		for i := range basis {
			basis[i] = make([]float64, n)
			basis[i][i] = 1
		}
		return basis
	}

	var svd mat.SVD
	if !svd.Factorize(N, mat.SVDFull) {
		return nil
	}
	values := svd.Values(nil)
	rank := countAbove(values, rankTolerance(N, values))

	var u mat.Dense
	svd.UTo(&u)

	basis := make([][]float64, 0, n-rank)
	for col := rank; col < n; col++ {
		w := make([]float64, n)
		mat.Col(w, col, &u)
		basis = append(basis, w)
	}
	return basis
}

// IsConserved reports whether w^T N vanishes within a relative tolerance.
func IsConserved(sys *reaction.System, w []float64) bool {
	N := StoichiometryMatrix(sys)
	if N == nil {
		return true
	}
	if len(w) != sys.NumCompounds() {
		return false
	}

	var r mat.VecDense
	r.MulVec(N.T(), mat.NewVecDense(len(w), append([]float64(nil), w...)))

	scale := mat.Norm(N, math.Inf(1)) * dynamo.State(w).Norm()
	for i := 0; i < r.Len(); i++ {
		if math.Abs(r.AtVec(i)) > 1e-12*math.Max(scale, 1) {
			return false
		}
	}
	return true
}
