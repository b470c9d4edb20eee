// Copyright 2026 The Mast-Multiphysics Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package solver implements the implicit second-order (Newmark-family) time
// integration engine and the default Newton-Raphson nonlinear solver driving
// each step
package solver

import (
	"github.com/cpmech/gosl/chk"

	"github.com/kooroshg1/mast-multiphysics/inp"
)

// DynCoefs holds the Newmark-family coefficients for transient simulations.
// β and γ are fixed at initialisation; the α coefficients are recomputed for
// each time increment.
type DynCoefs struct {

	// input
	β, γ float64

	// derived
	α1, α2, α3, α4, α5, α6 float64
}

// Init initialises coefficients from input data (θ1 = γ, θ2 = 2·β)
func (o *DynCoefs) Init(dat *inp.SolverData) (err error) {
	o.γ, o.β = dat.Theta1, dat.Theta2/2.0
	if o.β < 1e-5 || o.β > 0.5 {
		return chk.Err("β=%g is out of range (0,1/2]", o.β)
	}
	if o.γ < 1e-5 || o.γ > 1.0 {
		return chk.Err("γ=%g is out of range (0,1]", o.γ)
	}
	return
}

// Beta returns β
func (o *DynCoefs) Beta() float64 { return o.β }

// Gamma returns γ
func (o *DynCoefs) Gamma() float64 { return o.γ }

// CalcBoth computes the α coefficients for a new time increment:
//
//	a(u) = α1·(u-u₀) - α2·v₀ - α3·a₀
//	v(u) = α4·(u-u₀) - α5·v₀ - α6·a₀
func (o *DynCoefs) CalcBoth(Δt float64) (err error) {
	if Δt < 1e-14 {
		return chk.Err("time increment is too small: Δt=%g", Δt)
	}
	o.α1 = 1.0 / (o.β * Δt * Δt)
	o.α2 = 1.0 / (o.β * Δt)
	o.α3 = 1.0/(2.0*o.β) - 1.0
	o.α4 = o.γ / (o.β * Δt)
	o.α5 = o.γ/o.β - 1.0
	o.α6 = Δt * (o.γ/(2.0*o.β) - 1.0)
	return
}
