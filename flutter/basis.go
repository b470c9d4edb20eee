// Copyright 2026 The Mast-Multiphysics Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flutter

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/kooroshg1/mast-multiphysics/asm"
	"github.com/kooroshg1/mast-multiphysics/eig"
)

// BuildBasis performs the zero-flow modal solve and collects up to nreq
// converged eigenvectors as the reduced basis. The exchanged pair M·φ = μ·K·φ
// is solved with the largest-magnitude criterion so the lowest structural
// modes come first. The structural eigenvalues are not retained; the natural
// frequencies are returned for diagnostics only.
func BuildBasis(mdl asm.Modal, nreq int) (b asm.Basis, freqs []float64, err error) {

	// check
	if nreq < 1 {
		err = chk.Err("at least one mode must be requested. nreq=%d is invalid", nreq)
		return
	}

	// structural operators
	K, M, err := mdl.StructMatrices()
	if err != nil {
		err = chk.Err("modal solve failed: cannot assemble structural operators:\n%v", err)
		return
	}

	// delegated eigen-decomposition on the exchanged pair
	μ, _, φ, nconv, err := eig.Gen(M, K, eig.LargestMagnitude)
	if err != nil {
		err = chk.Err("modal solve failed:\n%v", err)
		return
	}
	if nconv > nreq {
		nconv = nreq
	}

	// collect normalized eigenvectors; μ = 1/λ = 1/ω²
	ndof := len(K)
	b = make(asm.Basis, nconv)
	freqs = make([]float64, nconv)
	for i := 0; i < nconv; i++ {
		v := make([]float64, ndof)
		for j := 0; j < ndof; j++ {
			v[j] = real(φ[i][j])
		}
		nrm := la.Vector(v).Norm()
		if nrm < 1e-14 {
			err = chk.Err("modal solve failed: mode %d has a zero eigenvector", i)
			return
		}
		for j := 0; j < ndof; j++ {
			v[j] /= nrm
		}
		b[i] = v
		if real(μ[i]) > 0 {
			freqs[i] = math.Sqrt(1.0 / real(μ[i]))
		}
	}
	return
}
