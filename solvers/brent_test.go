package solvers_test

import (
	"errors"
	"math"
	"testing"

	"github.com/meenmo/rateslib/solvers"
)

func TestBrent_FindsRoot(t *testing.T) {
	t.Parallel()

	root, err := solvers.Brent(func(x float64) (float64, error) {
		return x*x - 4.0, nil
	}, 0, 10, solvers.DefaultConfig)
	if err != nil {
		t.Fatalf("Brent error: %v", err)
	}
	if math.Abs(root-2.0) > 1e-6 {
		t.Fatalf("root mismatch: got %.9f want 2", root)
	}
}

func TestBrent_ExactEndpoint(t *testing.T) {
	t.Parallel()

	root, err := solvers.Brent(func(x float64) (float64, error) {
		return x - 1.0, nil
	}, 1.0, 5.0, solvers.DefaultConfig)
	if err != nil {
		t.Fatalf("Brent error: %v", err)
	}
	if root != 1.0 {
		t.Fatalf("endpoint root mismatch: got %v", root)
	}
}

func TestBrent_TranscendentalRoot(t *testing.T) {
	t.Parallel()

	// cos(x) = x has its root near 0.7390851332.
	root, err := solvers.Brent(func(x float64) (float64, error) {
		return math.Cos(x) - x, nil
	}, 0, 1, solvers.DefaultConfig)
	if err != nil {
		t.Fatalf("Brent error: %v", err)
	}
	if math.Abs(root-0.7390851332) > 1e-6 {
		t.Fatalf("root mismatch: got %.10f", root)
	}
}

func TestBrent_NotBracketed(t *testing.T) {
	t.Parallel()

	_, err := solvers.Brent(func(x float64) (float64, error) {
		return x*x + 1.0, nil
	}, -1, 1, solvers.DefaultConfig)
	var ee solvers.EvaluationError
	if !errors.As(err, &ee) {
		t.Fatalf("expected EvaluationError, got %v", err)
	}
}

func TestBrent_ObjectiveErrorPropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("objective blew up")
	_, err := solvers.Brent(func(x float64) (float64, error) {
		return 0, boom
	}, 0, 1, solvers.DefaultConfig)
	if !errors.Is(err, boom) {
		t.Fatalf("expected objective error, got %v", err)
	}
}

func TestBrent_ZeroConfigFallsBackToDefault(t *testing.T) {
	t.Parallel()

	root, err := solvers.Brent(func(x float64) (float64, error) {
		return x - 3.0, nil
	}, 0, 10, solvers.Config{})
	if err != nil {
		t.Fatalf("Brent error: %v", err)
	}
	if math.Abs(root-3.0) > 1e-6 {
		t.Fatalf("root mismatch: got %.9f want 3", root)
	}
}
