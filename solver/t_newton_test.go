// Copyright 2026 The Mast-Multiphysics Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/kooroshg1/mast-multiphysics/inp"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// testSolverData returns solver control data with default tolerances
func testSolverData() *inp.SolverData {
	return &inp.SolverData{
		NmaxIt: 20,
		Atol:   1e-8,
		Rtol:   1e-8,
		FbTol:  1e-8,
		FbMin:  1e-10,
		Theta1: 0.5,
		Theta2: 0.5,
		Itol:   1.0,
	}
}

func Test_newton01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("newton01. cubic equation")

	// R(u) = u³ - 8 = 0  ⇒  u = 2
	ffcn := func(fb, u []float64) error {
		fb[0] = -(u[0]*u[0]*u[0] - 8.0)
		return nil
	}
	jfcn := func(kb [][]float64, u []float64) error {
		kb[0][0] = 3.0 * u[0] * u[0]
		return nil
	}

	nls := NewNewtonRaphson(1, testSolverData())
	u := []float64{3.0}
	err := nls.Solve(u, ffcn, jfcn)
	if err != nil {
		tst.Errorf("Solve failed:\n%v", err)
		return
	}
	chk.Float64(tst, "u", 1e-10, u[0], 2.0)

	// modified Newton takes more iterations but still converges
	nls = NewNewtonRaphson(1, testSolverData())
	nls.CteTg = true
	nls.NmaxIt = 100
	u[0] = 2.5
	err = nls.Solve(u, ffcn, jfcn)
	if err != nil {
		tst.Errorf("Solve (constant tangent) failed:\n%v", err)
		return
	}
	chk.Float64(tst, "u (constant tangent)", 1e-8, u[0], 2.0)
}

func Test_newton02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("newton02. iteration ceiling")

	ffcn := func(fb, u []float64) error {
		fb[0] = -(u[0]*u[0]*u[0] - 8.0)
		return nil
	}
	jfcn := func(kb [][]float64, u []float64) error {
		kb[0][0] = 3.0 * u[0] * u[0]
		return nil
	}

	nls := NewNewtonRaphson(1, testSolverData())
	nls.NmaxIt = 2
	u := []float64{100.0}
	err := nls.Solve(u, ffcn, jfcn)
	if err == nil {
		tst.Errorf("Solve must fail when the iteration ceiling is hit")
		return
	}
	io.Pf("expected failure: %v\n", err)
}
