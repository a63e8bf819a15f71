package curves

import (
	"fmt"
	"math"
	"sort"
)

// Interpolator maps a query abscissa onto a value given sorted nodes.
// Queries outside the node range extrapolate flat at the boundary value.
type Interpolator interface {
	Interpolate(x float64, xs, ys []float64) (float64, error)
}

// LinearInterpolator interpolates values linearly between nodes.
type LinearInterpolator struct{}

func (LinearInterpolator) Interpolate(x float64, xs, ys []float64) (float64, error) {
	i, j, err := bracket(x, xs, ys)
	if err != nil {
		return 0, fmt.Errorf("LinearInterpolator: %w", err)
	}
	if i == j {
		return ys[i], nil
	}
	w := (x - xs[i]) / (xs[j] - xs[i])
	return ys[i] + w*(ys[j]-ys[i]), nil
}

// LogLinearInterpolator interpolates log-values linearly, the standard
// scheme for discount factors (piecewise-constant forward rates).
type LogLinearInterpolator struct{}

func (LogLinearInterpolator) Interpolate(x float64, xs, ys []float64) (float64, error) {
	i, j, err := bracket(x, xs, ys)
	if err != nil {
		return 0, fmt.Errorf("LogLinearInterpolator: %w", err)
	}
	if i == j {
		return ys[i], nil
	}
	fwd := math.Log(ys[i]/ys[j]) / (xs[j] - xs[i])
	return ys[i] * math.Exp(-fwd*(x-xs[i])), nil
}

// bracket returns the node indices surrounding x, or a doubled boundary
// index when x falls outside the node range.
func bracket(x float64, xs, ys []float64) (int, int, error) {
	if len(xs) == 0 || len(xs) != len(ys) {
		return 0, 0, fmt.Errorf("need matching non-empty nodes, got %d/%d", len(xs), len(ys))
	}
	if len(xs) == 1 {
		return 0, 0, nil
	}

	// First index with xs[i] >= x.
	i := sort.Search(len(xs), func(i int) bool { return xs[i] >= x })
	if i == 0 {
		return 0, 0, nil
	}
	if i == len(xs) {
		return len(xs) - 1, len(xs) - 1, nil
	}
	if xs[i] == x {
		return i, i, nil
	}
	return i - 1, i, nil
}
