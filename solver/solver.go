// Package solver implements the bounded one-dimensional searches used to close
// the implicit balances of the cycle engine.
package solver

import (
	"math"

	log "github.com/sirupsen/logrus"

	"vcrc/failure"
)

// Func is a residual evaluated at x. An error aborts the search.
type Func func(x float64) (float64, error)

// Options bounds a search.
type Options struct {
	Tolerance     float64 // relative tolerance on x
	MaxIterations int
}

// DefaultOptions returns the tolerance used by the published cycle fixtures.
func DefaultOptions() Options {
	return Options{Tolerance: 1e-12, MaxIterations: 200}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.Tolerance <= 0 {
		o.Tolerance = d.Tolerance
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = d.MaxIterations
	}
	return o
}

// Result of a converged search.
type Result struct {
	X          float64
	Residual   float64
	Iterations int
}

// FindRoot searches [a, b] for a zero of f with Brent's method.
// The residual must change sign over the interval, otherwise the search fails
// with failure.ErrNoSolution without iterating.
func FindRoot(f Func, a, b float64, opts Options) (Result, error) {
	opts = opts.normalized()
	if a > b {
		a, b = b, a
	}
	fa, err := eval(f, a)
	if err != nil {
		return Result{}, err
	}
	fb, err := eval(f, b)
	if err != nil {
		return Result{}, err
	}
	if fa == 0 {
		return Result{X: a}, nil
	}
	if fb == 0 {
		return Result{X: b}, nil
	}
	if (fa > 0) == (fb > 0) {
		return Result{}, failure.NoSolutionf(
			"residual does not change sign on [%g, %g] (%g, %g)", a, b, fa, fb)
	}

	tol := opts.Tolerance * math.Max(math.Abs(a), math.Abs(b))
	c, fc := b, fb
	d := b - a
	e := d
	for i := 1; i <= opts.MaxIterations; i++ {
		if (fb > 0) == (fc > 0) {
			c, fc = a, fa
			d = b - a
			e = d
		}
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}
		tol1 := 2*epsilon*math.Abs(b) + 0.5*tol
		xm := 0.5 * (c - b)
		if math.Abs(xm) <= tol1 || fb == 0 {
			log.WithFields(log.Fields{
				"x":          b,
				"residual":   fb,
				"iterations": i,
			}).Debug("root converged")
			return Result{X: b, Residual: fb, Iterations: i}, nil
		}
		if math.Abs(e) >= tol1 && math.Abs(fa) > math.Abs(fb) {
			var p, q float64
			s := fb / fa
			if a == c {
				// secant
				p = 2 * xm * s
				q = 1 - s
			} else {
				// inverse quadratic interpolation
				q = fa / fc
				r := fb / fc
				p = s * (2*xm*q*(q-r) - (b-a)*(r-1))
				q = (q - 1) * (r - 1) * (s - 1)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)
			if 2*p < math.Min(3*xm*q-math.Abs(tol1*q), math.Abs(e*q)) {
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
		if fb, err = eval(f, b); err != nil {
			return Result{}, err
		}
	}
	return Result{}, failure.NoSolutionf(
		"root search did not converge in %d iterations", opts.MaxIterations)
}

// FixedPoint iterates x = g(x) from x0 until two successive values agree
// within the relative tolerance.
func FixedPoint(g Func, x0 float64, opts Options) (Result, error) {
	opts = opts.normalized()
	x := x0
	for i := 1; i <= opts.MaxIterations; i++ {
		next, err := eval(g, x)
		if err != nil {
			return Result{}, err
		}
		delta := next - x
		x = next
		if math.Abs(delta) <= opts.Tolerance*math.Max(math.Abs(x), 1) {
			log.WithFields(log.Fields{
				"x":          x,
				"iterations": i,
			}).Debug("fixed point converged")
			return Result{X: x, Residual: delta, Iterations: i}, nil
		}
	}
	return Result{}, failure.NoSolutionf(
		"fixed point iteration did not converge in %d iterations", opts.MaxIterations)
}

const epsilon = 2.220446049250313e-16

func eval(f Func, x float64) (float64, error) {
	y, err := f(x)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, failure.Infeasiblef("residual is not finite at %g", x)
	}
	return y, nil
}
