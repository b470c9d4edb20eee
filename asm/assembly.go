// Copyright 2026 The Mast-Multiphysics Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package asm defines the capability contracts consumed by the flutter search
// and transient integration engines: reduced-operator assembly, element-level
// residual/Jacobian contributions, and discipline-side tracking of sensitivity
// parameters. Implementations live with the discretization layer, outside this
// module's core.
package asm

import (
	"github.com/kooroshg1/mast-multiphysics/par"
)

// Modal produces the full-order stiffness and mass operators of the undamped
// zero-flow structural system, used for basis construction
type Modal interface {
	StructMatrices() (K, M [][]float64, err error)
}

// FluidStructure produces the reduced mass/damping/stiffness operators of the
// aeroelastic system at the current value of the velocity parameter, and their
// partial derivatives with respect to a tracked parameter. The basis is held
// fixed during differentiation.
type FluidStructure interface {
	Matrices(b Basis) (M, C, K [][]float64, err error)
	MatricesDeriv(p *par.Param, b Basis) (dM, dC, dK [][]float64, err error)
}

// Transient produces the static residual and tangent contributions for the
// implicit transient step solve; the time-derivative terms are supplied by the
// integrator itself.
//
//	AddStaticToRhs:  fb -= r_static(t,u)
//	AddStaticToKb:   Kb += ∂r_static/∂u
//	MassDamping:     inertia and damping operators for the M·a + C·v terms
type Transient interface {
	AddStaticToRhs(fb []float64, t float64, u []float64) (err error)
	AddStaticToKb(Kb [][]float64, t float64, u []float64) (err error)
	MassDamping() (M, C [][]float64, err error)
}

// Discipline tracks which parameters are active for sensitivity computations.
// AddParameter and RemoveParameter calls must be paired within the scope of
// one sensitivity computation; leaked registrations contaminate subsequent
// analyses.
type Discipline interface {
	AddParameter(p *par.Param)
	RemoveParameter(p *par.Param)
	HasParameter(p *par.Param) bool
}
