package engine

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Pairwise holds the dense pair geometry for one configuration: the
// n x n Euclidean distance matrix and the unit displacement component
// matrices used to project scalar forces back into 2D.
//
// Dist is symmetric with a zero diagonal. UX and UY are antisymmetric:
// UX[i,j] is the x component of the unit vector pointing from particle
// j towards particle i, so a positive (repulsive) scalar force times
// (UX, UY) pushes i away from j. Unit vectors for coincident pairs and
// the diagonal are zero.
type Pairwise struct {
	N    int
	Dist *mat.Dense
	UX   *mat.Dense
	UY   *mat.Dense
}

// NewPairwise computes the full pair geometry from an n x 2 position
// matrix in one pass over the raw data. n=0 and n=1 are valid and
// yield no pairs.
func NewPairwise(pos *mat.Dense) *Pairwise {
	if pos == nil {
		return &Pairwise{}
	}
	n, _ := pos.Dims()
	p := &Pairwise{N: n}
	if n == 0 {
		return p
	}

	p.Dist = mat.NewDense(n, n, nil)
	p.UX = mat.NewDense(n, n, nil)
	p.UY = mat.NewDense(n, n, nil)

	raw := pos.RawMatrix()
	dist := p.Dist.RawMatrix().Data
	ux := p.UX.RawMatrix().Data
	uy := p.UY.RawMatrix().Data

	for i := 0; i < n; i++ {
		xi := raw.Data[i*raw.Stride]
		yi := raw.Data[i*raw.Stride+1]
		for j := i + 1; j < n; j++ {
			dx := xi - raw.Data[j*raw.Stride]
			dy := yi - raw.Data[j*raw.Stride+1]
			d := math.Hypot(dx, dy)

			dist[i*n+j] = d
			dist[j*n+i] = d
			if d > 0 {
				dx /= d
				dy /= d
				ux[i*n+j] = dx
				ux[j*n+i] = -dx
				uy[i*n+j] = dy
				uy[j*n+i] = -dy
			}
		}
	}
	return p
}
