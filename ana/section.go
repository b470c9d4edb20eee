// Copyright 2026 The Mast-Multiphysics Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements models with analytical solutions
package ana

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"

	"github.com/kooroshg1/mast-multiphysics/asm"
	"github.com/kooroshg1/mast-multiphysics/par"
)

// Section is a quasi-steady aeroelastic section with a small number of
// structural degrees of freedom. The effective operators at flow velocity V
// and thickness th are
//
//	M = M0
//	C = C0
//	K = (th/th0)³·K0 − ½·ρ·V²·chord·G
//
// so that the stability boundary coincides with the singular point of K and
// the critical speed scales with (th/th0)^(3/2). It implements the modal,
// fluid-structure and discipline contracts of the flutter engine.
type Section struct {

	// driven parameters
	Vprm  *par.Param // flow velocity
	Thprm *par.Param // thickness
	th0   float64    // reference thickness

	// flow constants
	ρ     float64 // air density
	chord float64

	// full-order operators
	M0 [][]float64 // structural mass
	C0 [][]float64 // structural damping
	K0 [][]float64 // structural stiffness at reference thickness
	G  [][]float64 // aerodynamic stiffness shape

	// parameters tracked for sensitivity analysis
	tracked []*par.Param
}

// NewSection allocates a section model from its operators and parameter
// references
func NewSection(vprm, thprm *par.Param, th0, ρ, chord float64, M0, C0, K0, G [][]float64) (o *Section) {
	o = new(Section)
	o.Vprm = vprm
	o.Thprm = thprm
	o.th0 = th0
	o.ρ = ρ
	o.chord = chord
	o.M0 = M0
	o.C0 = C0
	o.K0 = K0
	o.G = G
	return
}

// NewPitchPlunge builds the two degree-of-freedom pitch-plunge section from
// input-deck parameters. Required names: m, Salp, Ialp, Kh, Kalp, rhoair,
// chord, ecc, clalpha, th, th0, V.
func NewPitchPlunge(prms *par.Set) (o *Section, err error) {
	get := func(name string) (val float64, ok bool) {
		p := prms.Find(name)
		if p == nil {
			return 0, false
		}
		return p.Value(), true
	}
	names := []string{"m", "Salp", "Ialp", "Kh", "Kalp", "rhoair", "chord", "ecc", "clalpha", "th", "th0"}
	vals := make(map[string]float64)
	for _, name := range names {
		v, ok := get(name)
		if !ok {
			return nil, chk.Err("pitch-plunge section: parameter %q is missing from input deck", name)
		}
		vals[name] = v
	}
	vprm := prms.Find("V")
	thprm := prms.Find("th")
	if vprm == nil || thprm == nil {
		return nil, chk.Err("pitch-plunge section: velocity and thickness parameters are missing from input deck")
	}
	caero := vals["clalpha"]
	ecc := vals["ecc"]
	M0 := [][]float64{
		{vals["m"], vals["Salp"]},
		{vals["Salp"], vals["Ialp"]},
	}
	K0 := [][]float64{
		{vals["Kh"], 0},
		{0, vals["Kalp"]},
	}
	G := [][]float64{
		{0, caero},
		{0, ecc * caero},
	}
	// light stiffness-proportional structural damping
	μk := 1e-4
	C0 := utl.Alloc(2, 2)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			C0[i][j] = μk * K0[i][j]
		}
	}
	return NewSection(vprm, thprm, vals["th0"], vals["rhoair"], vals["chord"], M0, C0, K0, G), nil
}

// PitchPlungeDivergenceSpeed returns the speed at which the effective pitch
// stiffness of the pitch-plunge section vanishes
func PitchPlungeDivergenceSpeed(prms *par.Set) float64 {
	Kalp := prms.Find("Kalp").Value()
	ρ := prms.Find("rhoair").Value()
	chord := prms.Find("chord").Value()
	ecc := prms.Find("ecc").Value()
	caero := prms.Find("clalpha").Value()
	th := prms.Find("th").Value()
	th0 := prms.Find("th0").Value()
	s := math.Pow(th/th0, 3.0)
	return math.Sqrt(2.0 * s * Kalp / (ρ * chord * ecc * caero))
}

// NewCantileverModal builds a three-mode decoupled modal model whose lowest
// mode loses stability at vcrit; the higher modes cross at 2.2·vcrit and
// 3.5·vcrit, outside any sweep around the first crossing
func NewCantileverModal(vprm, thprm *par.Param, th0, vcrit, ρ, chord float64) (o *Section) {
	gg := []float64{1.0, 0.8, 0.6}
	vv := []float64{vcrit, 2.2 * vcrit, 3.5 * vcrit}
	M0 := utl.Alloc(3, 3)
	C0 := utl.Alloc(3, 3)
	K0 := utl.Alloc(3, 3)
	G := utl.Alloc(3, 3)
	μk := 1e-4
	for i := 0; i < 3; i++ {
		M0[i][i] = 1.0
		K0[i][i] = 0.5 * ρ * vv[i] * vv[i] * chord * gg[i]
		G[i][i] = gg[i]
		C0[i][i] = μk * K0[i][i]
	}
	return NewSection(vprm, thprm, th0, ρ, chord, M0, C0, K0, G)
}

// Ndof returns the number of structural degrees of freedom
func (o *Section) Ndof() int { return len(o.M0) }

// thickScale returns the cubic thickness stiffness scaling and its derivative
// with respect to thickness
func (o *Section) thickScale() (s, dsdth float64) {
	r := o.Thprm.Value() / o.th0
	s = r * r * r
	dsdth = 3.0 * r * r / o.th0
	return
}

// StructMatrices returns the zero-flow structural stiffness and mass
// operators used for basis construction
func (o *Section) StructMatrices() (K, M [][]float64, err error) {
	n := o.Ndof()
	s, _ := o.thickScale()
	K = utl.Alloc(n, n)
	M = utl.Alloc(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			K[i][j] = s * o.K0[i][j]
			M[i][j] = o.M0[i][j]
		}
	}
	return
}

// Matrices returns the reduced aeroelastic operators at the current value of
// the velocity and thickness parameters
func (o *Section) Matrices(b asm.Basis) (M, C, K [][]float64, err error) {
	n := o.Ndof()
	s, _ := o.thickScale()
	V := o.Vprm.Value()
	q := 0.5 * o.ρ * V * V * o.chord
	Kf := utl.Alloc(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			Kf[i][j] = s*o.K0[i][j] - q*o.G[i][j]
		}
	}
	M = reduce(o.M0, b)
	C = reduce(o.C0, b)
	K = reduce(Kf, b)
	return
}

// MatricesDeriv returns the partial derivatives of the reduced operators with
// respect to a tracked parameter; the basis is held fixed. A derivative with
// respect to an untracked parameter is a precondition failure.
func (o *Section) MatricesDeriv(p *par.Param, b asm.Basis) (dM, dC, dK [][]float64, err error) {
	if !o.HasParameter(p) {
		return nil, nil, nil, chk.Err("parameter %q was not found among tracked sensitivity parameters", p.Name())
	}
	n := o.Ndof()
	dKf := utl.Alloc(n, n)
	switch p {
	case o.Vprm:
		V := o.Vprm.Value()
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				dKf[i][j] = -o.ρ * V * o.chord * o.G[i][j]
			}
		}
	case o.Thprm:
		_, dsdth := o.thickScale()
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				dKf[i][j] = dsdth * o.K0[i][j]
			}
		}
	}
	nz := utl.Alloc(n, n)
	dM = reduce(nz, b)
	dC = reduce(nz, b)
	dK = reduce(dKf, b)
	return
}

// AddParameter registers a parameter for sensitivity tracking
func (o *Section) AddParameter(p *par.Param) {
	o.tracked = append(o.tracked, p)
}

// RemoveParameter unregisters a previously tracked parameter
func (o *Section) RemoveParameter(p *par.Param) {
	for i, q := range o.tracked {
		if q == p {
			o.tracked = append(o.tracked[:i], o.tracked[i+1:]...)
			return
		}
	}
}

// HasParameter tells whether p is currently tracked
func (o *Section) HasParameter(p *par.Param) bool {
	for _, q := range o.tracked {
		if q == p {
			return true
		}
	}
	return false
}

// NtrackedParams returns the number of currently tracked parameters
func (o *Section) NtrackedParams() int { return len(o.tracked) }

// reduce projects a full-order operator onto the reduced basis
func reduce(A [][]float64, b asm.Basis) (r [][]float64) {
	nm := b.Nmodes()
	nd := b.Ndof()
	r = utl.Alloc(nm, nm)
	for i := 0; i < nm; i++ {
		for j := 0; j < nm; j++ {
			for m := 0; m < nd; m++ {
				for n := 0; n < nd; n++ {
					r[i][j] += b[i][m] * A[m][n] * b[j][n]
				}
			}
		}
	}
	return
}
