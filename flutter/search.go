// Copyright 2026 The Mast-Multiphysics Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flutter

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"

	"github.com/kooroshg1/mast-multiphysics/asm"
	"github.com/kooroshg1/mast-multiphysics/eig"
	"github.com/kooroshg1/mast-multiphysics/par"
)

// State is the search engine state
type State int

const (

	// Idle: engine allocated or re-initialised; no roots evaluated yet
	Idle State = iota

	// Sweeping: evaluating equally spaced trial velocities
	Sweeping

	// Bracketed: a stable-to-unstable crossing was found between two
	// consecutive trial velocities
	Bracketed

	// Bisecting: refining the bracket towards the stability boundary
	Bisecting

	// Converged: the critical root is available
	Converged

	// Failed: no bracket exists, or an iteration limit / delegated solve
	// failure stopped the search
	Failed
)

// String returns the state name
func (o State) String() string {
	switch o {
	case Idle:
		return "idle"
	case Sweeping:
		return "sweeping"
	case Bracketed:
		return "bracketed"
	case Bisecting:
		return "bisecting"
	case Converged:
		return "converged"
	}
	return "failed"
}

// Search finds the critical flutter velocity: the lowest flow velocity at
// which any tracked mode's damping indicator crosses from decaying to
// growing. It owns the reduced basis reference and the table of all evaluated
// roots for the life of one analysis.
type Search struct {

	// collaborators
	Fsi asm.FluidStructure // reduced-operator assembly
	Dis asm.Discipline     // sensitivity-parameter tracking

	// control
	Verbose bool

	// configuration (see Init)
	vparam *par.Param
	vlo    float64
	vhi    float64
	ndiv   int
	basis  asm.Basis
	nmodes int

	// results
	state State
	roots []*Root // all evaluated roots
	crit  *Root   // converged critical root
}

// NewSearch allocates the engine with its external collaborators
func NewSearch(fsi asm.FluidStructure, dis asm.Discipline) (o *Search) {
	o = new(Search)
	o.Fsi = fsi
	o.Dis = dis
	o.state = Idle
	return
}

// Init configures one analysis: the velocity parameter driven during the
// sweep, the sweep interval, the number of divisions and the reduced basis.
// All roots from a previous analysis are discarded.
func (o *Search) Init(vparam *par.Param, vlo, vhi float64, ndiv int, basis asm.Basis) (err error) {
	if vhi <= vlo {
		return chk.Err("sweep interval is empty: V_lo=%g V_hi=%g", vlo, vhi)
	}
	if ndiv < 1 {
		return chk.Err("number of sweep divisions must be at least 1. ndiv=%d is invalid", ndiv)
	}
	o.vparam = vparam
	o.vlo = vlo
	o.vhi = vhi
	o.ndiv = ndiv
	o.basis = basis
	o.nmodes = basis.Nmodes()
	o.state = Idle
	o.roots = nil
	o.crit = nil
	return
}

// State returns the current engine state
func (o *Search) State() State { return o.state }

// CriticalRoot returns the converged critical root, or nil before convergence
func (o *Search) CriticalRoot() *Root { return o.crit }

// Roots returns the table of all evaluated roots, sorted by velocity
func (o *Search) Roots() []*Root { return o.roots }

// AnalyzeAndFindCriticalRoot runs the sweep, brackets the first
// stable-to-unstable crossing and bisects it down to tol. Flutter is taken to
// occur at the lowest velocity at which any mode becomes unstable. The search
// fails explicitly when no sign change exists in the sweep or when
// nmaxBisect iterations cannot shrink the bracket below tol.
func (o *Search) AnalyzeAndFindCriticalRoot(tol float64, nmaxBisect int) (root *Root, err error) {

	// preconditions
	if o.vparam == nil {
		chk.Panic("flutter search engine was not initialised")
	}
	if o.basis.Nmodes() < 1 {
		o.state = Failed
		return nil, chk.Err("sweep: reduced basis is empty")
	}

	// discard previous analysis roots
	o.roots = nil
	o.crit = nil

	// sweep over equally spaced trial velocities
	o.state = Sweeping
	vv := utl.LinSpace(o.vlo, o.vhi, o.ndiv+1)
	table := make([][]*Root, len(vv))
	for k, v := range vv {
		table[k], err = o.evalRoots(v)
		if err != nil {
			o.state = Failed
			return nil, chk.Err("sweep: evaluation at V=%g failed:\n%v", v, err)
		}
		o.roots = append(o.roots, table[k]...)
		if o.Verbose {
			io.Pf("sweep: V=%14.6f  g=%14.6e\n", v, table[k][0].Damping())
		}
	}

	// bracket: scan increasing velocity for the first sign change of the
	// damping indicator of the same physical mode
	var blo, bhi float64 // bracket velocities
	var glo, ghi float64 // damping indicator at the bracket ends
	var bmode int
	found := false
	for k := 0; k < len(vv)-1 && !found; k++ {
		nm := utl.Imin(len(table[k]), len(table[k+1]))
		for m := 0; m < nm; m++ {
			g0 := table[k][m].Damping()
			g1 := table[k+1][m].Damping()
			if g0 < 0 && (g1 > 0 || math.Abs(g1) <= tol) {
				blo, bhi = vv[k], vv[k+1]
				glo, ghi = g0, g1
				bmode = m
				found = true
				break
			}
		}
	}
	if !found {
		o.state = Failed
		o.sortRoots()
		return nil, chk.Err("bracket: no stable-to-unstable crossing found in sweep over [%g,%g]", o.vlo, o.vhi)
	}
	o.state = Bracketed
	if o.Verbose {
		io.Pf("bracket: mode=%d V=[%g,%g] g=[%g,%g]\n", bmode, blo, bhi, glo, ghi)
	}

	// bisection: halve the bracket, replacing the endpoint whose damping has
	// the same sign as the midpoint
	o.state = Bisecting
	var mid *Root
	converged := false
	for it := 0; it < nmaxBisect; it++ {
		vm := 0.5 * (blo + bhi)
		rr, e := o.evalRoots(vm)
		if e != nil {
			o.state = Failed
			o.sortRoots()
			return nil, chk.Err("bisection: evaluation at V=%g failed:\n%v", vm, e)
		}
		o.roots = append(o.roots, rr...)
		if bmode >= len(rr) {
			o.state = Failed
			o.sortRoots()
			return nil, chk.Err("bisection: mode %d disappeared at V=%g", bmode, vm)
		}
		mid = rr[bmode]
		gm := mid.Damping()
		if gm*glo > 0 {
			blo, glo = vm, gm
		} else {
			bhi, ghi = vm, gm
		}
		if o.Verbose {
			io.Pf("bisection: it=%2d V=[%.8f,%.8f] g=%14.6e\n", it, blo, bhi, gm)
		}
		if bhi-blo <= tol || math.Abs(gm) <= tol {
			converged = true
			break
		}
	}
	o.sortRoots()
	if !converged {
		o.state = Failed
		return nil, chk.Err("bisection: iteration limit reached without convergence (bracket=[%g,%g] damping=[%g,%g] tol=%g)", blo, bhi, glo, ghi, tol)
	}

	// converged: the last evaluated midpoint is the critical root
	o.crit = mid
	o.state = Converged
	return mid, nil
}

// evalRoots evaluates the aeroelastic roots of all tracked modes at one trial
// velocity: it sets the velocity parameter, asks the assembly for the reduced
// operators, builds the first-order pair and delegates the eigen-decomposition
func (o *Search) evalRoots(v float64) (res []*Root, err error) {

	// reduced operators at this velocity
	o.vparam.SetValue(v)
	M, C, K, err := o.Fsi.Matrices(o.basis)
	if err != nil {
		return nil, chk.Err("assembly of reduced operators failed:\n%v", err)
	}

	// delegated eigen-decomposition of the state-space pair
	A, B := stateSpace(M, C, K)
	λ, w, vr, nconv, err := eig.Gen(A, B, eig.SmallestMagnitude)
	if err != nil {
		return nil, err
	}

	// one root per physical mode: keep the member of each conjugate pair with
	// a non-negative imaginary part, ordered by frequency then by damping
	idx := make([]int, 0, nconv)
	for i := 0; i < nconv; i++ {
		if imag(λ[i]) >= 0 {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		fa, fb := math.Abs(imag(λ[idx[a]])), math.Abs(imag(λ[idx[b]]))
		if fa != fb {
			return fa < fb
		}
		return real(λ[idx[a]]) > real(λ[idx[b]])
	})
	if len(idx) > o.nmodes {
		idx = idx[:o.nmodes]
	}
	res = make([]*Root, len(idx))
	for m, i := range idx {
		res[m] = &Root{Mode: m, V: v, Lam: λ[i], VecL: w[i], VecR: vr[i]}
	}
	return
}

// sortRoots keeps the root table sorted by velocity, then by mode index
func (o *Search) sortRoots() {
	sort.SliceStable(o.roots, func(a, b int) bool {
		if o.roots[a].V != o.roots[b].V {
			return o.roots[a].V < o.roots[b].V
		}
		return o.roots[a].Mode < o.roots[b].Mode
	})
}

// stateSpace builds the first-order pair A·x = λ·B·x from the reduced
// second-order operators:
//
//	A = ⎡ 0   I ⎤    B = ⎡ I  0 ⎤
//	    ⎣-K  -C ⎦        ⎣ 0  M ⎦
func stateSpace(M, C, K [][]float64) (A, B [][]float64) {
	k := len(M)
	n := 2 * k
	A = utl.Alloc(n, n)
	B = utl.Alloc(n, n)
	for i := 0; i < k; i++ {
		A[i][k+i] = 1
		B[i][i] = 1
		for j := 0; j < k; j++ {
			A[k+i][j] = -K[i][j]
			A[k+i][k+j] = -C[i][j]
			B[k+i][k+j] = M[i][j]
		}
	}
	return
}

// stateSpaceDeriv builds the parameter-derivatives of the state-space pair
// from the reduced operator derivatives; the identity blocks do not depend on
// parameters
func stateSpaceDeriv(dM, dC, dK [][]float64) (dA, dB [][]float64) {
	k := len(dM)
	n := 2 * k
	dA = utl.Alloc(n, n)
	dB = utl.Alloc(n, n)
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			dA[k+i][j] = -dK[i][j]
			dA[k+i][k+j] = -dC[i][j]
			dB[k+i][k+j] = dM[i][j]
		}
	}
	return
}
