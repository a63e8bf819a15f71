// Package solvers provides the bracketing root solver analytics lean on,
// together with its tunable configuration.
package solvers

import (
	"fmt"
	"math"
)

// Config holds root-solver parameters.
type Config struct {
	// Tolerance is the absolute convergence tolerance on the argument and
	// on the residual.
	Tolerance float64

	// MaxIterations caps the solver loop.
	MaxIterations int
}

// DefaultConfig matches the library-wide solver settings: 1e-6 tolerance,
// 100 iterations.
var DefaultConfig = Config{
	Tolerance:     1e-6,
	MaxIterations: 100,
}

// EvaluationError reports a solver failure: no bracket, no convergence, or
// an objective that could not be evaluated.
type EvaluationError struct {
	Msg string
}

func (e EvaluationError) Error() string {
	return fmt.Sprintf("evaluation failed: %s", e.Msg)
}

// Objective is a scalar function of one variable. It may fail, which aborts
// the solve.
type Objective func(x float64) (float64, error)

// Brent finds a root of f in [lo, hi] using Brent's method: bisection
// safeguarded inverse quadratic interpolation. The root must be bracketed:
// f(lo) and f(hi) must have opposite signs.
func Brent(f Objective, lo, hi float64, cfg Config) (float64, error) {
	if cfg.MaxIterations <= 0 {
		cfg = DefaultConfig
	}

	a, b := lo, hi
	fa, err := f(a)
	if err != nil {
		return 0, fmt.Errorf("Brent: %w", err)
	}
	fb, err := f(b)
	if err != nil {
		return 0, fmt.Errorf("Brent: %w", err)
	}

	if fa == 0 {
		return a, nil
	}
	if fb == 0 {
		return b, nil
	}
	if fa*fb > 0 {
		return 0, EvaluationError{Msg: fmt.Sprintf("root not bracketed in [%v, %v]", lo, hi)}
	}

	c, fc := a, fa
	d := b - a
	e := d

	for iter := 0; iter < cfg.MaxIterations; iter++ {
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}

		tol1 := 2.0*machineEps*math.Abs(b) + 0.5*cfg.Tolerance
		xm := 0.5 * (c - b)

		if math.Abs(xm) <= tol1 || fb == 0 {
			return b, nil
		}

		if math.Abs(e) >= tol1 && math.Abs(fa) > math.Abs(fb) {
			// Attempt inverse quadratic interpolation.
			s := fb / fa
			var p, q float64
			if a == c {
				p = 2.0 * xm * s
				q = 1.0 - s
			} else {
				q = fa / fc
				r := fb / fc
				p = s * (2.0*xm*q*(q-r) - (b-a)*(r-1.0))
				q = (q - 1.0) * (r - 1.0) * (s - 1.0)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)
			min1 := 3.0*xm*q - math.Abs(tol1*q)
			min2 := math.Abs(e * q)
			if 2.0*p < math.Min(min1, min2) {
				e = d
				d = p / q
			} else {
				d = xm
				e = d
			}
		} else {
			d = xm
			e = d
		}

		a, fa = b, fb
		if math.Abs(d) > tol1 {
			b += d
		} else {
			b += math.Copysign(tol1, xm)
		}
		fb, err = f(b)
		if err != nil {
			return 0, fmt.Errorf("Brent: %w", err)
		}
		if (fb > 0 && fc > 0) || (fb < 0 && fc < 0) {
			c, fc = a, fa
			d = b - a
			e = d
		}
	}

	return 0, EvaluationError{Msg: fmt.Sprintf("no convergence after %d iterations", cfg.MaxIterations)}
}

const machineEps = 2.220446049250313e-16
