// Copyright 2026 The Mast-Multiphysics Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package flutter implements the aeroelastic stability search engine: the
// velocity-sweep and bisection state machine locating the critical flutter
// velocity, and the analytic sensitivity of the critical root with respect to
// design parameters
package flutter

import "math"

// Root holds one evaluated aeroelastic root: a trial velocity with the
// state-space eigenvalue and mode shapes found there. Sensitivity fields are
// populated lazily, only when a sensitivity computation targets this root.
type Root struct {

	// solution
	Mode int          // physical mode index (frequency-ordered at each trial velocity)
	V    float64      // flow velocity at which this root was evaluated
	Lam  complex128   // state-space eigenvalue
	VecL []complex128 // left eigenvector of the state-space pair
	VecR []complex128 // right eigenvector of the state-space pair

	// sensitivity (lazy)
	LamSens complex128 // d(λ)/d(p) for the last sensitivity target
	VSens   float64    // d(V)/d(p) for the last sensitivity target
	HasSens bool       // sensitivity fields are valid
}

// Damping returns the damping indicator: the real part of the eigenvalue.
// The mode is unstable when this indicator is positive.
func (o *Root) Damping() float64 { return real(o.Lam) }

// Frequency returns the circular frequency |Im(λ)|
func (o *Root) Frequency() float64 { return math.Abs(imag(o.Lam)) }
