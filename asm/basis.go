// Copyright 2026 The Mast-Multiphysics Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "github.com/cpmech/gosl/chk"

// Basis is an ordered set of full-order eigenvectors; the index is the mode
// number. Once populated for an analysis its size is fixed; a new modal solve
// may only reuse it if the converged count matches.
type Basis [][]float64

// Nmodes returns the number of modes spanning the reduced space
func (o Basis) Nmodes() int { return len(o) }

// Ndof returns the full-order dimension of the basis vectors
func (o Basis) Ndof() int {
	if len(o) == 0 {
		return 0
	}
	return len(o[0])
}

// CheckCompat asserts that a new modal solve with nconv converged pairs may
// reuse this basis. A mismatch is a fatal precondition failure.
func (o Basis) CheckCompat(nconv int) {
	if len(o) > 0 {
		chk.IntAssert(len(o), nconv)
	}
}
