// Copyright 2026 The Mast-Multiphysics Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package par implements named design/physical parameters and the constant
// field functions bound to them
package par

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// Param is a named scalar quantity shared by reference among all holders.
// Mutating the value is immediately visible to every dependent field function;
// holders must not cache evaluated values across a mutation boundary they do
// not control.
type Param struct {
	name  string
	value float64
}

// New returns a new parameter
func New(name string, value float64) *Param {
	return &Param{name, value}
}

// Name returns the stable name identifying this parameter
func (o *Param) Name() string { return o.name }

// Value returns the current value
func (o *Param) Value() float64 { return o.value }

// SetValue mutates the value; every dependent evaluation changes immediately
func (o *Param) SetValue(v float64) { o.value = v }

// Set owns all parameters of one analysis. Every other component holds
// non-owning references obtained from Find; discarding the Set discards all
// parameters at once.
type Set struct {
	all []*Param
}

// NewSet allocates a Set from input-deck parameter cards
func NewSet(cards utl.Params) (o *Set) {
	o = new(Set)
	for _, c := range cards {
		o.Add(c.N, c.V)
	}
	return
}

// Add appends a new parameter and returns it
func (o *Set) Add(name string, value float64) (p *Param) {
	for _, q := range o.all {
		if q.name == name {
			chk.Panic("parameter %q is defined twice", name)
		}
	}
	p = New(name, value)
	o.all = append(o.all, p)
	return
}

// Find returns the parameter with the given name, or nil. On a miss the list
// of valid names is printed to help locate input-deck mistakes.
func (o *Set) Find(name string) (p *Param) {
	for _, q := range o.all {
		if q.name == name {
			return q
		}
	}
	io.Pf("parameter not found by name: %q\nvalid names are:\n", name)
	for _, q := range o.all {
		io.Pf("   %s\n", q.name)
	}
	return nil
}

// Len returns the number of owned parameters
func (o *Set) Len() int { return len(o.all) }

// All returns the owned parameters in definition order
func (o *Set) All() []*Param { return o.all }
