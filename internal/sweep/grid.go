package sweep

import (
	"context"
	"math"
)

// Objective evaluates one parameter assignment and returns the value
// to minimize, typically a run metric.
type Objective func(ctx context.Context, params map[string]float64) (float64, error)

// Grid enumerates the cartesian product of parameter ranges and keeps
// the assignment with the smallest objective value.
type Grid struct {
	paramNames []string
	ranges     [][]float64
}

func NewGrid(params []string, ranges [][]float64) *Grid {
	return &Grid{paramNames: params, ranges: ranges}
}

// Search walks the full grid. Evaluations that fail are skipped; if
// every point fails or the grid is empty, best is +Inf and params nil.
func (g *Grid) Search(ctx context.Context, obj Objective) (map[string]float64, float64, error) {
	best := math.Inf(1)
	var bestParams map[string]float64

	err := g.searchRecursive(ctx, 0, make(map[string]float64), obj, &best, &bestParams)
	return bestParams, best, err
}

func (g *Grid) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	obj Objective,
	best *float64,
	bestParams *map[string]float64,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		val, err := obj(ctx, current)
		if err != nil {
			return nil
		}
		if val < *best {
			*best = val
			*bestParams = make(map[string]float64, len(current))
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	name := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := make(map[string]float64, len(current)+1)
		for k, v := range current {
			next[k] = v
		}
		next[name] = val

		if err := g.searchRecursive(ctx, depth+1, next, obj, best, bestParams); err != nil {
			return err
		}
	}
	return nil
}
