// Copyright 2026 The Mast-Multiphysics Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package eig delegates dense generalized eigen-decompositions and dense
// linear solves to an external numerical backend (gonum/LAPACK). The flutter
// and transient engines never factorize matrices themselves.
package eig

import (
	"math/cmplx"
	"sort"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// Ordering selects the eigenvalue ordering criterion
type Ordering int

const (

	// LargestMagnitude orders eigenvalues with the largest magnitude first
	LargestMagnitude Ordering = iota

	// SmallestMagnitude orders eigenvalues with the smallest magnitude first
	SmallestMagnitude
)

// Gen solves the generalized eigenproblem
//
//	A · v = λ · B · v
//
// for a real square pair (A,B), returning all eigenvalues λ with the left (w)
// and right (v) eigenvectors of the pair, ordered by the requested criterion.
// The left vectors satisfy wᴴ·A = λ·wᴴ·B. nconv reports the number of pairs
// actually available, which may be smaller than the dimension requested by
// the caller. Failures of the delegated factorization are propagated, never
// masked.
func Gen(A, B [][]float64, order Ordering) (λ []complex128, w, v [][]complex128, nconv int, err error) {

	// check
	n := len(A)
	if n < 1 {
		err = chk.Err("eigen decomposition needs at least a 1x1 pair")
		return
	}
	chk.IntAssert(len(B), n)

	// reduce to the standard problem C = B⁻¹·A
	am := denseOf(A)
	bm := denseOf(B)
	var c mat.Dense
	if e := c.Solve(bm, am); e != nil {
		err = chk.Err("eigen decomposition failed: cannot factorize B matrix:\n%v", e)
		return
	}

	// delegated factorization
	var eg mat.Eigen
	if !eg.Factorize(&c, mat.EigenBoth) {
		err = chk.Err("eigen decomposition failed: factorization did not converge")
		return
	}
	vals := eg.Values(nil)
	R := mat.NewCDense(n, n, nil)
	L := mat.NewCDense(n, n, nil)
	eg.VectorsTo(R)
	eg.LeftVectorsTo(L)

	// the left vectors u of the standard problem map onto the left vectors of
	// the pair through Bᵀ·w = u
	var bt mat.Dense
	bt.CloneFrom(bm.T())
	ure := mat.NewDense(n, n, nil)
	uim := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			x := L.At(i, j)
			ure.Set(i, j, real(x))
			uim.Set(i, j, imag(x))
		}
	}
	var wre, wim mat.Dense
	if e := wre.Solve(&bt, ure); e != nil {
		err = chk.Err("eigen decomposition failed: cannot map left eigenvectors:\n%v", e)
		return
	}
	if e := wim.Solve(&bt, uim); e != nil {
		err = chk.Err("eigen decomposition failed: cannot map left eigenvectors:\n%v", e)
		return
	}

	// collect
	nconv = n
	λ = make([]complex128, n)
	w = make([][]complex128, n)
	v = make([][]complex128, n)
	for k := 0; k < n; k++ {
		λ[k] = vals[k]
		w[k] = make([]complex128, n)
		v[k] = make([]complex128, n)
		for i := 0; i < n; i++ {
			w[k][i] = complex(wre.At(i, k), wim.At(i, k))
			v[k][i] = R.At(i, k)
		}
	}

	// order
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	switch order {
	case LargestMagnitude:
		sort.SliceStable(idx, func(a, b int) bool { return cabs(λ[idx[a]]) > cabs(λ[idx[b]]) })
	case SmallestMagnitude:
		sort.SliceStable(idx, func(a, b int) bool { return cabs(λ[idx[a]]) < cabs(λ[idx[b]]) })
	}
	λo := make([]complex128, n)
	wo := make([][]complex128, n)
	vo := make([][]complex128, n)
	for k, i := range idx {
		λo[k], wo[k], vo[k] = λ[i], w[i], v[i]
	}
	λ, w, v = λo, wo, vo
	return
}

// DenSolve solves the dense linear system K·x = b using a delegated LU
// factorization
func DenSolve(x []float64, K [][]float64, b []float64) (err error) {
	n := len(b)
	chk.IntAssert(len(K), n)
	var xv mat.VecDense
	if e := xv.SolveVec(denseOf(K), mat.NewVecDense(n, b)); e != nil {
		return chk.Err("linear solve failed:\n%v", e)
	}
	for i := 0; i < n; i++ {
		x[i] = xv.AtVec(i)
	}
	return
}

// denseOf copies a row-major slice-of-slices matrix into the backend format
func denseOf(A [][]float64) *mat.Dense {
	n, m := len(A), len(A[0])
	d := mat.NewDense(n, m, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			d.Set(i, j, A[i][j])
		}
	}
	return d
}

func cabs(z complex128) float64 { return cmplx.Abs(z) }
