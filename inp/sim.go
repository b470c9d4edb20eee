// Copyright 2026 The Mast-Multiphysics Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON file
package inp

import (
	"encoding/json"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// Data holds global data for simulations
type Data struct {
	Desc    string `json:"desc"`    // description of simulation
	DirOut  string `json:"dirout"`  // directory for output; e.g. /tmp/mast
	OutFile string `json:"outfile"` // filename for the sorted-roots report
}

// FlutterData holds data controlling the flutter root search
type FlutterData struct {
	VParam     string   `json:"vparam"`     // name of the velocity parameter
	Vmin       float64  `json:"vmin"`       // lower bound of the velocity sweep
	Vmax       float64  `json:"vmax"`       // upper bound of the velocity sweep
	Ndiv       int      `json:"ndiv"`       // number of sweep divisions
	Nmodes     int      `json:"nmodes"`     // number of requested modes for the reduced basis
	Tol        float64  `json:"tol"`        // bisection tolerance on bracket width / damping
	NmaxBisect int      `json:"nmaxbisect"` // max number of bisection iterations
	SensPrms   []string `json:"sensprms"`   // names of sensitivity target parameters
}

// SolverData holds nonlinear/transient solver data
type SolverData struct {

	// nonlinear solver
	NmaxIt int     `json:"nmaxit"` // number of max iterations
	Atol   float64 `json:"atol"`   // absolute tolerance
	Rtol   float64 `json:"rtol"`   // relative tolerance
	FbTol  float64 `json:"fbtol"`  // tolerance for convergence on fb
	FbMin  float64 `json:"fbmin"`  // minimum value of fb
	CteTg  bool    `json:"ctetg"`  // use constant tangent (modified Newton) during iterations
	ShowR  bool    `json:"showr"`  // show residual

	// dynamics
	Theta1 float64 `json:"theta1"` // Newmark's method parameter: γ
	Theta2 float64 `json:"theta2"` // Newmark's method parameter: 2·β

	// derived
	Itol float64 // iterations tolerance
}

// TimeControl holds data defining the simulation time stepping
type TimeControl struct {
	Tf    float64 `json:"tf"`    // final time
	Dt    float64 `json:"dt"`    // time step size
	DtOut float64 `json:"dtout"` // time step size for output
}

// Simulation holds all input data
type Simulation struct {
	Data    Data        `json:"data"`    // global information
	Prms    utl.Params  `json:"prms"`    // parameter cards
	Flutter FlutterData `json:"flutter"` // flutter search control
	Solver  SolverData  `json:"solver"`  // solver control
	Control TimeControl `json:"control"` // time stepping control
}

// ReadSim reads a simulation input file
func ReadSim(simfilepath string) (o *Simulation, err error) {

	// read file
	if _, e := os.Stat(simfilepath); e != nil {
		err = chk.Err("cannot read simulation file %q:\n%v", simfilepath, e)
		return
	}
	b := io.ReadFile(simfilepath)

	// decode
	o = new(Simulation)
	o.SetDefaults()
	if e := json.Unmarshal(b, o); e != nil {
		o = nil
		err = chk.Err("cannot unmarshal simulation file %q:\n%v", simfilepath, e)
		return
	}

	// check and compute derived quantities
	err = o.Check()
	if err != nil {
		o = nil
	}
	return
}

// SetDefaults sets default values prior to decoding
func (o *Simulation) SetDefaults() {
	o.Data.DirOut = "/tmp/mast"
	o.Data.OutFile = "flutter_output.txt"
	o.Flutter.Ndiv = 10
	o.Flutter.Nmodes = 3
	o.Flutter.Tol = 1e-3
	o.Flutter.NmaxBisect = 50
	o.Solver.NmaxIt = 20
	o.Solver.Atol = 1e-8
	o.Solver.Rtol = 1e-8
	o.Solver.FbTol = 1e-8
	o.Solver.FbMin = 1e-10
	o.Solver.Theta1 = 0.5
	o.Solver.Theta2 = 0.5
	o.Solver.Itol = 1.0
}

// Check verifies decoded data
func (o *Simulation) Check() (err error) {
	if o.Flutter.Vmax <= o.Flutter.Vmin {
		return chk.Err("flutter sweep interval is empty: vmin=%g vmax=%g", o.Flutter.Vmin, o.Flutter.Vmax)
	}
	if o.Flutter.Ndiv < 1 {
		return chk.Err("number of sweep divisions must be at least 1. ndiv=%d is invalid", o.Flutter.Ndiv)
	}
	if o.Flutter.Nmodes < 1 {
		return chk.Err("number of requested modes must be at least 1. nmodes=%d is invalid", o.Flutter.Nmodes)
	}
	if o.Flutter.Tol <= 0 {
		return chk.Err("bisection tolerance must be positive. tol=%g is invalid", o.Flutter.Tol)
	}
	γ, β := o.Solver.Theta1, o.Solver.Theta2/2.0
	if β < 1e-5 || β > 0.5 {
		return chk.Err("Newmark parameter β=θ2/2=%g is out of range (0,1/2]", β)
	}
	if γ < 1e-5 || γ > 1.0 {
		return chk.Err("Newmark parameter γ=θ1=%g is out of range (0,1]", γ)
	}
	if o.Solver.Itol <= 0 {
		o.Solver.Itol = 1.0
	}
	return
}
