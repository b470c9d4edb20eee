// Copyright 2026 The Mast-Multiphysics Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flutter

import (
	"math"
	"math/cmplx"

	"github.com/cpmech/gosl/chk"

	"github.com/kooroshg1/mast-multiphysics/par"
)

// CalculateSensitivity computes the analytic sensitivity of the converged
// critical root with respect to parameter p, using the left and right
// eigenvectors stored on the root:
//
//	dλ/dp = wᴴ·(dA/dp − λ·dB/dp)·v / (wᴴ·B·v)
//
// and the flutter-velocity sensitivity by implicit differentiation of the
// neutral-stability condition Re(λ)=0:
//
//	dV/dp = −Re(dλ/dp) / Re(dλ/dV)
//
// The velocity parameter and p are registered with the discipline for the
// duration of the call only; both registrations are removed before returning,
// also on the error paths.
func (o *Search) CalculateSensitivity(root *Root, p *par.Param) (err error) {

	// preconditions
	if o.state != Converged {
		chk.Panic("sensitivity requested without a converged flutter root")
	}

	// register parameters; removal is deferred so that a failing assembly
	// cannot leak registrations into later analyses
	o.Dis.AddParameter(o.vparam)
	o.Dis.AddParameter(p)
	defer o.Dis.RemoveParameter(p)
	defer o.Dis.RemoveParameter(o.vparam)

	// operators and derivatives at the critical velocity
	o.vparam.SetValue(root.V)
	M, C, K, err := o.Fsi.Matrices(o.basis)
	if err != nil {
		return chk.Err("sensitivity: assembly of reduced operators failed:\n%v", err)
	}
	dMp, dCp, dKp, err := o.Fsi.MatricesDeriv(p, o.basis)
	if err != nil {
		return chk.Err("sensitivity: derivative w.r.t. %q failed:\n%v", p.Name(), err)
	}
	dMv, dCv, dKv, err := o.Fsi.MatricesDeriv(o.vparam, o.basis)
	if err != nil {
		return chk.Err("sensitivity: derivative w.r.t. velocity failed:\n%v", err)
	}

	// state-space pair and its derivatives
	_, B := stateSpace(M, C, K)
	dAp, dBp := stateSpaceDeriv(dMp, dCp, dKp)
	dAv, dBv := stateSpaceDeriv(dMv, dCv, dKv)

	// normalisation wᴴ·B·v
	den := bilinear(root.VecL, B, root.VecR)
	if cmplx.Abs(den) < 1e-7 {
		return chk.Err("sensitivity: eigenvector normalisation wᴴ·B·v is numerically zero")
	}

	// eigenvalue sensitivities
	λ := root.Lam
	dλdp := (bilinear(root.VecL, dAp, root.VecR) - λ*bilinear(root.VecL, dBp, root.VecR)) / den
	dλdv := (bilinear(root.VecL, dAv, root.VecR) - λ*bilinear(root.VecL, dBv, root.VecR)) / den

	// velocity sensitivity from the neutral-stability condition
	if math.Abs(real(dλdv)) < 1e-14 {
		return chk.Err("sensitivity: zero damping slope Re(dλ/dV); flutter-velocity sensitivity is undefined")
	}
	root.LamSens = dλdp
	root.VSens = -real(dλdp) / real(dλdv)
	root.HasSens = true
	return
}

// bilinear computes wᴴ·A·v with a real matrix A and complex vectors
func bilinear(w []complex128, A [][]float64, v []complex128) (res complex128) {
	n := len(w)
	for i := 0; i < n; i++ {
		var row complex128
		for j := 0; j < n; j++ {
			row += complex(A[i][j], 0) * v[j]
		}
		res += cmplx.Conj(w[i]) * row
	}
	return
}
