// Copyright 2026 The Mast-Multiphysics Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"

	"github.com/kooroshg1/mast-multiphysics/eig"
	"github.com/kooroshg1/mast-multiphysics/inp"
)

// ResFcn assembles fb with the negative of the residual: fb = -R(u)
type ResFcn func(fb, u []float64) error

// JacFcn assembles the Jacobian: Kb = ∂R/∂u
type JacFcn func(Kb [][]float64, u []float64) error

// NonlinearSolver finds u such that R(u) = 0, given residual and Jacobian
// callbacks and an initial guess. The converged solution replaces u in place;
// non-convergence is reported as an error, never masked.
type NonlinearSolver interface {
	Solve(u []float64, ffcn ResFcn, jfcn JacFcn) (err error)
}

// NewtonRaphson is the default NonlinearSolver
type NewtonRaphson struct {

	// control
	NmaxIt int     // max number of iterations
	FbTol  float64 // tolerance for convergence on fb, relative to the first iteration
	FbMin  float64 // minimum value of fb for absolute convergence
	Itol   float64 // tolerance for convergence on the RMS norm of δu
	Atol   float64 // absolute tolerance entering the RMS norm
	Rtol   float64 // relative tolerance entering the RMS norm
	CteTg  bool    // constant tangent (modified Newton)
	ShowR  bool    // show residuals

	// workspace
	fb, δu []float64
	zero   la.Vector
	kb     [][]float64
}

// NewNewtonRaphson allocates the solver for systems with ndof unknowns
func NewNewtonRaphson(ndof int, dat *inp.SolverData) (o *NewtonRaphson) {
	o = new(NewtonRaphson)
	o.NmaxIt = dat.NmaxIt
	o.FbTol = dat.FbTol
	o.FbMin = dat.FbMin
	o.Itol = dat.Itol
	o.Atol = dat.Atol
	o.Rtol = dat.Rtol
	o.CteTg = dat.CteTg
	o.ShowR = dat.ShowR
	o.fb = make([]float64, ndof)
	o.δu = make([]float64, ndof)
	o.zero = la.NewVector(ndof)
	o.kb = utl.Alloc(ndof, ndof)
	return
}

// Solve runs the iterations
func (o *NewtonRaphson) Solve(u []float64, ffcn ResFcn, jfcn JacFcn) (err error) {

	// auxiliary
	var it int
	var largFb, largFb0, Lδu float64

	// message
	if o.ShowR {
		io.Pf("%4s%23s%23s\n", "it", "largFb", "Lδu")
		defer func() {
			io.Pf("%4d%23.15e%23.15e\n", it, largFb, Lδu)
		}()
	}

	// iterations
	for it = 0; it < o.NmaxIt; it++ {

		// assemble fb with the negative of the residual
		if err = ffcn(o.fb, u); err != nil {
			return
		}

		// find largest absolute component of fb
		largFb = la.Vector(o.fb).Largest(1)

		// check convergence on fb
		if it == 0 {
			largFb0 = largFb
		} else {
			if largFb < o.FbTol*largFb0 { // converged on fb
				return
			}
			if largFb < o.FbMin { // converged with smallest value of fb
				return
			}
		}

		// assemble Jacobian matrix
		doAsmFact := it == 0 || !o.CteTg
		if doAsmFact {
			if err = jfcn(o.kb, u); err != nil {
				return
			}
		}

		// solve for δu
		if err = eig.DenSolve(o.δu, o.kb, o.fb); err != nil {
			return chk.Err("cannot solve linear system within iteration %d:\n%v", it, err)
		}

		// update unknowns
		for i := 0; i < len(u); i++ {
			u[i] += o.δu[i]
		}

		// compute RMS norm of δu and check convergence on δu
		Lδu = la.VecRmsError(o.δu, o.zero, o.Atol, o.Rtol, u)
		if o.ShowR {
			io.Pf("%4d%23.15e%23.15e\n", it, largFb, Lδu)
		}
		if Lδu < o.Itol {
			return
		}
	}

	// failure
	return chk.Err("max number of iterations reached: it = %d", it)
}
