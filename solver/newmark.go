// Copyright 2026 The Mast-Multiphysics Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"

	"github.com/kooroshg1/mast-multiphysics/asm"
	"github.com/kooroshg1/mast-multiphysics/eig"
	"github.com/kooroshg1/mast-multiphysics/inp"
)

// Newmark integrates a nonlinear second-order-in-time system with the
// implicit Newmark scheme. It keeps a two-deep history (current and previous
// accepted step) of displacement, velocity and acceleration, together with
// the corresponding first-order perturbation fields for linearized marching.
// Velocity and acceleration are always consistent with the Newmark relations
// across step boundaries; they are inconsistent only transiently inside one
// step's implicit iteration.
type Newmark struct {

	// configuration
	Dc DynCoefs

	// time data
	t  float64
	Δt float64

	// current accepted state
	U, V, A []float64

	// previous accepted state
	U0, V0, A0 []float64

	// perturbation state (current and previous)
	DU, DV, DA    []float64
	DU0, DV0, DA0 []float64

	// per-step scratch: incompatible-mode storage keyed by element id; not
	// valid across a time boundary
	incsol map[int][]float64

	// workspace
	utrial []float64
	rhs    []float64
	kb     [][]float64
	ndof   int
}

// NewNewmark allocates the integrator for systems with ndof unknowns
func NewNewmark(ndof int, dat *inp.SolverData) (o *Newmark, err error) {
	o = new(Newmark)
	o.ndof = ndof
	err = o.Dc.Init(dat)
	if err != nil {
		return nil, err
	}
	o.U = make([]float64, ndof)
	o.V = make([]float64, ndof)
	o.A = make([]float64, ndof)
	o.U0 = make([]float64, ndof)
	o.V0 = make([]float64, ndof)
	o.A0 = make([]float64, ndof)
	o.DU = make([]float64, ndof)
	o.DV = make([]float64, ndof)
	o.DA = make([]float64, ndof)
	o.DU0 = make([]float64, ndof)
	o.DV0 = make([]float64, ndof)
	o.DA0 = make([]float64, ndof)
	o.incsol = make(map[int][]float64)
	o.utrial = make([]float64, ndof)
	o.rhs = make([]float64, ndof)
	o.kb = utl.Alloc(ndof, ndof)
	return
}

// OdeOrder returns the highest time-derivative order handled by this scheme
func (o *Newmark) OdeOrder() int { return 2 }

// NitersToStore returns the number of steps whose state must be retained: the
// Newmark relations need the immediately previous step only, unlike multistep
// schemes with a longer history
func (o *Newmark) NitersToStore() int { return 2 }

// Time returns the current time value
func (o *Newmark) Time() float64 { return o.t }

// Ndof returns the number of unknowns
func (o *Newmark) Ndof() int { return o.ndof }

// SetIniState sets the initial accepted state (both history slots)
func (o *Newmark) SetIniState(u, v, a []float64) {
	copy(o.U0, u)
	copy(o.V0, v)
	copy(o.A0, a)
	copy(o.U, u)
	copy(o.V, v)
	copy(o.A, a)
}

// SetIniPerturbation sets the initial accepted perturbation state
func (o *Newmark) SetIniPerturbation(du, dv, da []float64) {
	copy(o.DU0, du)
	copy(o.DV0, dv)
	copy(o.DA0, da)
	copy(o.DU, du)
	copy(o.DV, dv)
	copy(o.DA, da)
}

// UpdateVelocity computes the velocity consistent with the Newmark relations
// for a newly accepted displacement u, given the previous step's full state
func (o *Newmark) UpdateVelocity(v, u []float64) {
	for i := 0; i < o.ndof; i++ {
		v[i] = o.Dc.α4*(u[i]-o.U0[i]) - o.Dc.α5*o.V0[i] - o.Dc.α6*o.A0[i]
	}
}

// UpdateAcceleration computes the acceleration consistent with the Newmark
// relations for a newly accepted displacement u
func (o *Newmark) UpdateAcceleration(a, u []float64) {
	for i := 0; i < o.ndof; i++ {
		a[i] = o.Dc.α1*(u[i]-o.U0[i]) - o.Dc.α2*o.V0[i] - o.Dc.α3*o.A0[i]
	}
}

// UpdateDeltaVelocity applies the velocity relation to the perturbation
// fields. The coefficients are exactly the ones used by UpdateVelocity so a
// linearized trajectory stays consistent with the primary one to first order.
func (o *Newmark) UpdateDeltaVelocity(dv, du []float64) {
	for i := 0; i < o.ndof; i++ {
		dv[i] = o.Dc.α4*(du[i]-o.DU0[i]) - o.Dc.α5*o.DV0[i] - o.Dc.α6*o.DA0[i]
	}
}

// UpdateDeltaAcceleration applies the acceleration relation to the
// perturbation fields
func (o *Newmark) UpdateDeltaAcceleration(da, du []float64) {
	for i := 0; i < o.ndof; i++ {
		da[i] = o.Dc.α1*(du[i]-o.DU0[i]) - o.Dc.α2*o.DV0[i] - o.Dc.α3*o.DA0[i]
	}
}

// Solve performs one implicit step from the previous accepted state: it finds
// the displacement at t+Δt such that the residual built from the
// Newmark-consistent velocity and acceleration vanishes, delegating the
// nonlinear solve. The integrator supplies the time-derivative residual and
// Jacobian terms; static/load terms come from the transient assembler.
// Failures of the delegated solve are propagated with no retry here.
func (o *Newmark) Solve(Δt float64, tra asm.Transient, nls NonlinearSolver) (err error) {

	// coefficients for this increment
	o.Δt = Δt
	if err = o.Dc.CalcBoth(Δt); err != nil {
		return
	}

	// inertia and damping operators
	M, C, err := tra.MassDamping()
	if err != nil {
		return
	}
	t1 := o.t + Δt

	// residual callback: fb = -R(u) with Newmark-consistent v(u), a(u)
	ffcn := func(fb, u []float64) (e error) {
		o.UpdateVelocity(o.V, u)
		o.UpdateAcceleration(o.A, u)
		la.Vector(fb).Fill(0)
		if e = tra.AddStaticToRhs(fb, t1, u); e != nil {
			return
		}
		for i := 0; i < o.ndof; i++ {
			for j := 0; j < o.ndof; j++ {
				fb[i] -= M[i][j]*o.A[j] + C[i][j]*o.V[j]
			}
		}
		return
	}

	// Jacobian callback: Kb = ∂R/∂u = K_static + α4·C + α1·M
	jfcn := func(kb [][]float64, u []float64) (e error) {
		for i := range kb {
			la.Vector(kb[i]).Fill(0)
		}
		if e = tra.AddStaticToKb(kb, t1, u); e != nil {
			return
		}
		for i := 0; i < o.ndof; i++ {
			for j := 0; j < o.ndof; j++ {
				kb[i][j] += o.Dc.α1*M[i][j] + o.Dc.α4*C[i][j]
			}
		}
		return
	}

	// initial guess: previous accepted displacement
	copy(o.utrial, o.U0)

	// delegated nonlinear solve
	if err = nls.Solve(o.utrial, ffcn, jfcn); err != nil {
		return chk.Err("time-step solve failed at t=%g:\n%v", t1, err)
	}

	// accept displacement and restore velocity/acceleration consistency
	copy(o.U, o.utrial)
	o.UpdateVelocity(o.V, o.U)
	o.UpdateAcceleration(o.A, o.U)
	return
}

// SolvePerturbation marches the linearized system in lockstep with the
// primary solution, using the same Jacobian coefficients as Solve:
//
//	(K_static + α4·C + α1·M)·δu = δf + M·(α1·δu₀+α2·δv₀+α3·δa₀) + C·(α4·δu₀+α5·δv₀+α6·δa₀)
//
// Solve must have been called for the current step first (the static tangent
// is evaluated at the accepted displacement).
func (o *Newmark) SolvePerturbation(tra asm.Transient, δf []float64) (err error) {
	M, C, err := tra.MassDamping()
	if err != nil {
		return
	}
	t1 := o.t + o.Δt

	// linearized operator at the accepted state
	for i := range o.kb {
		la.Vector(o.kb[i]).Fill(0)
	}
	if err = tra.AddStaticToKb(o.kb, t1, o.U); err != nil {
		return
	}
	for i := 0; i < o.ndof; i++ {
		for j := 0; j < o.ndof; j++ {
			o.kb[i][j] += o.Dc.α1*M[i][j] + o.Dc.α4*C[i][j]
		}
	}

	// right-hand side from the perturbation history
	for i := 0; i < o.ndof; i++ {
		o.rhs[i] = δf[i]
		for j := 0; j < o.ndof; j++ {
			o.rhs[i] += M[i][j]*(o.Dc.α1*o.DU0[j]+o.Dc.α2*o.DV0[j]+o.Dc.α3*o.DA0[j]) +
				C[i][j]*(o.Dc.α4*o.DU0[j]+o.Dc.α5*o.DV0[j]+o.Dc.α6*o.DA0[j])
		}
	}

	// delegated linear solve
	if err = eig.DenSolve(o.DU, o.kb, o.rhs); err != nil {
		return chk.Err("perturbation solve failed at t=%g:\n%v", t1, err)
	}
	o.UpdateDeltaVelocity(o.DV, o.DU)
	o.UpdateDeltaAcceleration(o.DA, o.DU)
	return
}

// AdvanceTimeStep shifts the current state into the previous-step slot,
// advances the time value and clears per-step scratch
func (o *Newmark) AdvanceTimeStep() {
	copy(o.U0, o.U)
	copy(o.V0, o.V)
	copy(o.A0, o.A)
	copy(o.DU0, o.DU)
	copy(o.DV0, o.DV)
	copy(o.DA0, o.DA)
	o.t += o.Δt
	for k := range o.incsol {
		delete(o.incsol, k)
	}
}

// IncSol returns the incompatible-mode scratch vector for element eid,
// allocating it with n entries on first use within the current step
func (o *Newmark) IncSol(eid, n int) []float64 {
	if s, ok := o.incsol[eid]; ok {
		return s
	}
	s := make([]float64, n)
	o.incsol[eid] = s
	return s
}

// NincSol returns the number of per-element scratch vectors currently stored
func (o *Newmark) NincSol() int { return len(o.incsol) }
