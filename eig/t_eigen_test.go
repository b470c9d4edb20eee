// Copyright 2026 The Mast-Multiphysics Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eig

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// residNorm returns ‖A·v − λ·B·v‖ for one eigenpair
func residNorm(A, B [][]float64, λ complex128, v []complex128) (r float64) {
	n := len(A)
	for i := 0; i < n; i++ {
		var s complex128
		for j := 0; j < n; j++ {
			s += complex(A[i][j], 0)*v[j] - λ*complex(B[i][j], 0)*v[j]
		}
		r += cmplx.Abs(s) * cmplx.Abs(s)
	}
	return
}

// residNormL returns ‖wᴴ·A − λ·wᴴ·B‖ for one left eigenpair
func residNormL(A, B [][]float64, λ complex128, w []complex128) (r float64) {
	n := len(A)
	for j := 0; j < n; j++ {
		var s complex128
		for i := 0; i < n; i++ {
			s += cmplx.Conj(w[i])*complex(A[i][j], 0) - λ*cmplx.Conj(w[i])*complex(B[i][j], 0)
		}
		r += cmplx.Abs(s) * cmplx.Abs(s)
	}
	return
}

func Test_eigen01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("eigen01. diagonal pair and ordering")

	A := [][]float64{{2, 0}, {0, 3}}
	B := [][]float64{{1, 0}, {0, 1}}

	λ, w, v, nconv, err := Gen(A, B, LargestMagnitude)
	if err != nil {
		tst.Errorf("Gen failed:\n%v", err)
		return
	}
	chk.IntAssert(nconv, 2)
	chk.Float64(tst, "λ0", 1e-14, real(λ[0]), 3.0)
	chk.Float64(tst, "λ1", 1e-14, real(λ[1]), 2.0)

	// generalized: B=diag(2,1) halves the first eigenvalue
	B = [][]float64{{2, 0}, {0, 1}}
	λ, w, v, nconv, err = Gen(A, B, SmallestMagnitude)
	if err != nil {
		tst.Errorf("Gen failed:\n%v", err)
		return
	}
	chk.IntAssert(nconv, 2)
	chk.Float64(tst, "λ0", 1e-14, real(λ[0]), 1.0)
	chk.Float64(tst, "λ1", 1e-14, real(λ[1]), 3.0)
	for k := 0; k < nconv; k++ {
		chk.Float64(tst, io.Sf("‖A·v−λ·B·v‖ (mode %d)", k), 1e-12, residNorm(A, B, λ[k], v[k]), 0)
		chk.Float64(tst, io.Sf("‖wᴴ·A−λ·wᴴ·B‖ (mode %d)", k), 1e-12, residNormL(A, B, λ[k], w[k]), 0)
	}
}

func Test_eigen02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("eigen02. nonsymmetric pair with complex spectrum")

	// damped oscillator in state-space form: λ = -ζω ± iω√(1-ζ²)
	ω, ζ := 2.0, 0.1
	A := [][]float64{{0, 1}, {-ω * ω, -2 * ζ * ω}}
	B := [][]float64{{1, 0}, {0, 1}}

	λ, w, v, nconv, err := Gen(A, B, SmallestMagnitude)
	if err != nil {
		tst.Errorf("Gen failed:\n%v", err)
		return
	}
	chk.IntAssert(nconv, 2)
	for k := 0; k < nconv; k++ {
		chk.Float64(tst, io.Sf("Re(λ%d)", k), 1e-13, real(λ[k]), -ζ*ω)
		chk.Float64(tst, io.Sf("|Im(λ%d)|", k), 1e-13, math.Abs(imag(λ[k])), ω*math.Sqrt(1-ζ*ζ))
		chk.Float64(tst, io.Sf("right resid %d", k), 1e-12, residNorm(A, B, λ[k], v[k]), 0)
		chk.Float64(tst, io.Sf("left resid %d", k), 1e-12, residNormL(A, B, λ[k], w[k]), 0)
	}
}

func Test_densolve01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("densolve01. dense LU solve")

	K := [][]float64{{4, 1, 0}, {1, 3, 1}, {0, 1, 2}}
	b := []float64{6, 10, 7}
	x := make([]float64, 3)
	err := DenSolve(x, K, b)
	if err != nil {
		tst.Errorf("DenSolve failed:\n%v", err)
		return
	}

	// residual check
	for i := 0; i < 3; i++ {
		var s float64
		for j := 0; j < 3; j++ {
			s += K[i][j] * x[j]
		}
		chk.Float64(tst, io.Sf("(K·x)[%d]", i), 1e-13, s, b[i])
	}
}

