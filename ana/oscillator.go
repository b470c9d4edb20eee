// Copyright 2026 The Mast-Multiphysics Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"math"

	"github.com/cpmech/gosl/fun"
)

// Oscillator is the single degree-of-freedom system
//
//	m·ü + c·u̇ + k·u = f(t)
//
// implementing the transient assembly contract, with the exact free-vibration
// response available for accuracy checks
type Oscillator struct {
	M float64 // mass
	C float64 // viscous damping
	K float64 // stiffness
	F fun.Ss  // forcing; nil means unforced
}

// NewOscillator returns a new oscillator
func NewOscillator(m, c, k float64, f fun.Ss) *Oscillator {
	return &Oscillator{m, c, k, f}
}

// AddStaticToRhs adds −(k·u − f(t)) to the right-hand side
func (o *Oscillator) AddStaticToRhs(fb []float64, t float64, u []float64) (err error) {
	fb[0] -= o.K * u[0]
	if o.F != nil {
		fb[0] += o.F(t)
	}
	return
}

// AddStaticToKb adds the static tangent k
func (o *Oscillator) AddStaticToKb(Kb [][]float64, t float64, u []float64) (err error) {
	Kb[0][0] += o.K
	return
}

// MassDamping returns the inertia and damping operators
func (o *Oscillator) MassDamping() (M, C [][]float64, err error) {
	M = [][]float64{{o.M}}
	C = [][]float64{{o.C}}
	return
}

// FreeVibration returns the exact underdamped free-vibration response and its
// velocity at time t, from initial displacement u0 and velocity v0
func (o *Oscillator) FreeVibration(u0, v0, t float64) (u, v float64) {
	ωn := math.Sqrt(o.K / o.M)
	ζ := o.C / (2.0 * o.M * ωn)
	ωd := ωn * math.Sqrt(1.0-ζ*ζ)
	a := u0
	b := (v0 + ζ*ωn*u0) / ωd
	e := math.Exp(-ζ * ωn * t)
	s, c := math.Sin(ωd*t), math.Cos(ωd*t)
	u = e * (a*c + b*s)
	v = e*(-a*ωd*s+b*ωd*c) - ζ*ωn*u
	return
}
