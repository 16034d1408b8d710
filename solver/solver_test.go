package solver

import (
	"errors"
	"math"
	"testing"

	"vcrc/failure"
)

func TestFindRoot(t *testing.T) {
	cases := []struct {
		name string
		f    Func
		a, b float64
		want float64
	}{
		{"linear", func(x float64) (float64, error) { return 2*x - 3, nil }, 0, 10, 1.5},
		{"cubic", func(x float64) (float64, error) { return x*x*x - 2*x - 5, nil }, 2, 3, 2.0945514815423265},
		{"cos", func(x float64) (float64, error) { return math.Cos(x) - x, nil }, 0, 1, 0.7390851332151607},
		{"pressure scale", func(x float64) (float64, error) { return math.Log(x / 1.2e6), nil }, 2e5, 5e6, 1.2e6},
		{"reversed bounds", func(x float64) (float64, error) { return x - 4, nil }, 10, 0, 4},
	}
	for _, c := range cases {
		res, err := FindRoot(c.f, c.a, c.b, DefaultOptions())
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if math.Abs(res.X-c.want) > 1e-9*math.Max(1, math.Abs(c.want)) {
			t.Errorf("%s: got %.15g, want %.15g", c.name, res.X, c.want)
		}
	}
}

func TestFindRootNoSignChange(t *testing.T) {
	f := func(x float64) (float64, error) { return x*x + 1, nil }
	_, err := FindRoot(f, -1, 1, DefaultOptions())
	if !errors.Is(err, failure.ErrNoSolution) {
		t.Fatalf("expected ErrNoSolution, got %v", err)
	}
}

func TestFindRootIterationCap(t *testing.T) {
	calls := 0
	f := func(x float64) (float64, error) {
		calls++
		return math.Cbrt(x - 0.3), nil
	}
	_, err := FindRoot(f, 0, 1, Options{Tolerance: 1e-300, MaxIterations: 3})
	if !errors.Is(err, failure.ErrNoSolution) {
		t.Fatalf("expected ErrNoSolution, got %v", err)
	}
	if calls > 5 {
		t.Errorf("residual evaluated %d times, cap not honoured", calls)
	}
}

func TestFindRootPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	f := func(x float64) (float64, error) {
		if x > 0.5 {
			return 0, boom
		}
		return x - 0.75, nil
	}
	if _, err := FindRoot(f, 0, 1, DefaultOptions()); !errors.Is(err, boom) {
		t.Fatalf("expected residual error, got %v", err)
	}
	nan := func(x float64) (float64, error) { return math.NaN(), nil }
	if _, err := FindRoot(nan, 0, 1, DefaultOptions()); !errors.Is(err, failure.ErrInfeasible) {
		t.Fatalf("expected ErrInfeasible for NaN, got %v", err)
	}
}

func TestFixedPoint(t *testing.T) {
	res, err := FixedPoint(func(x float64) (float64, error) { return math.Sqrt(2 * x), nil }, 1, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(res.X-2) > 1e-10 {
		t.Errorf("got %v, want 2", res.X)
	}

	_, err = FixedPoint(func(x float64) (float64, error) { return -x + 1, nil }, 0, Options{MaxIterations: 10})
	if !errors.Is(err, failure.ErrNoSolution) {
		t.Fatalf("expected ErrNoSolution for an oscillating map, got %v", err)
	}
}
