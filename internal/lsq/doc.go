// Package lsq implements a small dense Levenberg-Marquardt solver for the
// nonlinear refinement step of sacfit models.
//
// The solver works on the damped normal equations
// (JtJ + lambda*diag(JtJ)) * step = -Jt*r and is sized for problems with a
// handful of parameters and up to a few hundred thousand residuals. It
// reports failure instead of guessing: callers are expected to fall back
// to their initial parameters when no well-conditioned update exists.
package lsq
