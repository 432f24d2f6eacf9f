package lsq

import (
	"errors"
	"math"
	"slices"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNoProgress is returned when the damped normal equations stay
	// singular or no damping value yields a cost reduction.
	ErrNoProgress = errors.New("lsq: no well-conditioned update found")

	// ErrDiverged is returned when parameters or residuals become
	// non-finite during iteration.
	ErrDiverged = errors.New("lsq: diverged to non-finite values")
)

// Problem describes a nonlinear least-squares problem.
//
// Residuals fills out (length NumResiduals) with the residual vector at
// params. Jacobian fills jac (NumResiduals x len(params)) with the partial
// derivatives at params. Both must be pure functions of params.
type Problem struct {
	NumResiduals int
	Residuals    func(params, out []float64)
	Jacobian     func(params []float64, jac *mat.Dense)
}

// Settings control the iteration of Solve.
type Settings struct {
	// MaxIterations bounds the number of accepted steps. Default 50.
	MaxIterations int
	// StepTolerance stops iteration when the step norm drops below it.
	// Default 1e-12.
	StepTolerance float64
	// CostTolerance stops iteration when the relative cost improvement
	// drops below it. Default 1e-12.
	CostTolerance float64
	// InitialDamping is the starting Levenberg-Marquardt lambda.
	// Default 1e-3.
	InitialDamping float64
}

func (s *Settings) defaults() Settings {
	out := Settings{
		MaxIterations:  50,
		StepTolerance:  1e-12,
		CostTolerance:  1e-12,
		InitialDamping: 1e-3,
	}
	if s == nil {
		return out
	}
	if s.MaxIterations > 0 {
		out.MaxIterations = s.MaxIterations
	}
	if s.StepTolerance > 0 {
		out.StepTolerance = s.StepTolerance
	}
	if s.CostTolerance > 0 {
		out.CostTolerance = s.CostTolerance
	}
	if s.InitialDamping > 0 {
		out.InitialDamping = s.InitialDamping
	}
	return out
}

// Solve minimizes the sum of squared residuals starting from initial and
// returns the optimized parameters. initial is not mutated.
func Solve(p Problem, initial []float64, settings *Settings) ([]float64, error) {
	cfg := settings.defaults()
	dim := len(initial)
	m := p.NumResiduals
	if dim == 0 || m == 0 {
		return nil, ErrNoProgress
	}

	params := slices.Clone(initial)
	trial := make([]float64, dim)
	res := make([]float64, m)
	trialRes := make([]float64, m)
	jac := mat.NewDense(m, dim, nil)

	p.Residuals(params, res)
	cost := sumSquares(res)
	if !isFinite(cost) {
		return nil, ErrDiverged
	}
	if cost == 0 {
		// Already a perfect fit.
		return params, nil
	}

	lambda := cfg.InitialDamping

	for iter := 0; iter < cfg.MaxIterations; iter++ {
		p.Jacobian(params, jac)

		var jtj mat.SymDense
		jtj.SymOuterK(1, jac.T())

		jtr := make([]float64, dim)
		for k := 0; k < dim; k++ {
			var s float64
			for i := 0; i < m; i++ {
				s += jac.At(i, k) * res[i]
			}
			jtr[k] = s
		}

		accepted := false

		// Retry with increasing damping until a step reduces the cost.
		for attempt := 0; attempt < 10; attempt++ {
			step, ok := solveDamped(&jtj, jtr, lambda)
			if !ok {
				lambda *= 10
				continue
			}

			stepNorm := 0.0
			for k := 0; k < dim; k++ {
				trial[k] = params[k] + step[k]
				stepNorm += step[k] * step[k]
			}
			stepNorm = math.Sqrt(stepNorm)

			p.Residuals(trial, trialRes)
			trialCost := sumSquares(trialRes)

			if isFinite(trialCost) && trialCost < cost {
				improvement := (cost - trialCost) / math.Max(cost, 1)
				copy(params, trial)
				copy(res, trialRes)
				cost = trialCost
				lambda = math.Max(lambda/10, 1e-12)
				accepted = true

				if stepNorm < cfg.StepTolerance || improvement < cfg.CostTolerance {
					return params, nil
				}
				break
			}

			lambda *= 10
		}

		if !accepted {
			// Converged if we already improved at least once; otherwise the
			// problem never yielded a usable step.
			if iter > 0 {
				return params, nil
			}
			return nil, ErrNoProgress
		}

		if !finiteAll(params) {
			return nil, ErrDiverged
		}
	}

	return params, nil
}

// solveDamped solves (JtJ + lambda*diag(JtJ)) step = -jtr.
func solveDamped(jtj *mat.SymDense, jtr []float64, lambda float64) ([]float64, bool) {
	dim := len(jtr)

	damped := mat.NewSymDense(dim, nil)
	damped.CopySym(jtj)
	for k := 0; k < dim; k++ {
		d := jtj.At(k, k)
		if d == 0 {
			// Keep a zero diagonal solvable only through explicit damping.
			d = 1
		}
		damped.SetSym(k, k, jtj.At(k, k)+lambda*d)
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(damped); !ok {
		return nil, false
	}

	rhs := mat.NewVecDense(dim, nil)
	for k := 0; k < dim; k++ {
		rhs.SetVec(k, -jtr[k])
	}

	var step mat.VecDense
	if err := chol.SolveVecTo(&step, rhs); err != nil {
		return nil, false
	}

	out := make([]float64, dim)
	for k := 0; k < dim; k++ {
		v := step.AtVec(k)
		if !isFinite(v) {
			return nil, false
		}
		out[k] = v
	}
	return out, true
}

func sumSquares(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x * x
	}
	return s
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func finiteAll(v []float64) bool {
	for _, x := range v {
		if !isFinite(x) {
			return false
		}
	}
	return true
}
