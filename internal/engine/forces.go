package engine

import (
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Aggregate evaluates every force term on the pair geometry and sums
// the projected contributions into one net 2D force per particle.
// Pure function of (geometry, kinds, radius, rng state); the rng is
// only consulted by terms carrying pairwise force noise.
func Aggregate(ens Ensemble, geo *Pairwise, terms []Term, radius float64, rng *rand.Rand) (fx, fy []float64) {
	n := geo.N
	fx = make([]float64, n)
	fy = make([]float64, n)
	if n < 2 {
		return fx, fy
	}

	// Scalar force matrix, rebuilt per term. f[i,j] is the magnitude
	// felt by i from j; pair noise makes it asymmetric on purpose.
	f := mat.NewDense(n, n, nil)

	for _, term := range terms {
		t := term
		f.Apply(func(i, j int, d float64) float64 {
			if i == j || !t.selects(ens, i, j) {
				return 0
			}
			if d < t.MinRange || (t.MaxRange > 0 && d > t.MaxRange) {
				return 0
			}
			if t.Mask != nil && !t.Mask(i, j) {
				return 0
			}
			v := t.Force(d, radius)
			if t.NoiseStdev > 0 && rng != nil {
				v += clip(rng.NormFloat64()*t.NoiseStdev, t.NoiseBound)
			}
			return v
		}, geo.Dist)

		for i := 0; i < n; i++ {
			row := f.RawRowView(i)
			fx[i] += floats.Dot(row, geo.UX.RawRowView(i))
			fy[i] += floats.Dot(row, geo.UY.RawRowView(i))
		}
	}
	return fx, fy
}

func clip(v, bound float64) float64 {
	if bound <= 0 {
		return v
	}
	if v > bound {
		return bound
	}
	if v < -bound {
		return -bound
	}
	return v
}
