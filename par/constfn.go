// Copyright 2026 The Mast-Multiphysics Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package par

import "github.com/cpmech/gosl/fun"

// ConstFn is a spatially constant field function bound to one parameter: it
// evaluates to the parameter's current value wherever and whenever sampled.
// There is no notification on mutation; consumers re-evaluate instead of
// caching.
type ConstFn struct {
	fname string
	p     *Param
}

// NewConstFn binds a field function named fname to parameter p (non-owning)
func NewConstFn(fname string, p *Param) *ConstFn {
	return &ConstFn{fname, p}
}

// Fname returns the field name this function provides; it may differ from the
// bound parameter's name
func (o *ConstFn) Fname() string { return o.fname }

// F returns the parameter's current value
func (o *ConstFn) F(t float64, x []float64) float64 { return o.p.Value() }

// G returns the first time-derivative: zero for a constant field
func (o *ConstFn) G(t float64, x []float64) float64 { return 0 }

// H returns the second time-derivative: zero for a constant field
func (o *ConstFn) H(t float64, x []float64) float64 { return 0 }

// Grad returns the spatial gradient: zero for a constant field
func (o *ConstFn) Grad(v []float64, t float64, x []float64) {
	for i := range v {
		v[i] = 0
	}
}

// TimeFn adapts the field function to a scalar function of time only
func (o *ConstFn) TimeFn() fun.Ss {
	return func(t float64) float64 { return o.p.Value() }
}
