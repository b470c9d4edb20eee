// Copyright 2026 The Mast-Multiphysics Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_read01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("read01. flutter simulation file")

	sim, err := ReadSim("data/flutter.sim")
	if err != nil {
		tst.Errorf("ReadSim failed:\n%v", err)
		return
	}
	if chk.Verbose {
		io.Pforan("sim = %+v\n", sim)
	}

	chk.StrAssert(sim.Data.Desc, "pitch-plunge section with quasi-steady aerodynamics")
	chk.StrAssert(sim.Flutter.VParam, "V")
	chk.Float64(tst, "vmin", 1e-17, sim.Flutter.Vmin, 1000)
	chk.Float64(tst, "vmax", 1e-17, sim.Flutter.Vmax, 1200)
	chk.IntAssert(sim.Flutter.Ndiv, 10)
	chk.IntAssert(sim.Flutter.Nmodes, 2)
	chk.Float64(tst, "tol", 1e-17, sim.Flutter.Tol, 1e-3)
	chk.IntAssert(sim.Flutter.NmaxBisect, 50)
	chk.Strings(tst, "sensprms", sim.Flutter.SensPrms, []string{"th"})

	chk.IntAssert(len(sim.Prms), 12)
	chk.StrAssert(sim.Prms[0].N, "m")
	chk.Float64(tst, "Kalp", 1e-17, sim.Prms[4].V, 9.503e5)

	// defaults and derived values
	chk.IntAssert(sim.Solver.NmaxIt, 20)
	chk.Float64(tst, "theta1", 1e-17, sim.Solver.Theta1, 0.5)
	chk.Float64(tst, "theta2", 1e-17, sim.Solver.Theta2, 0.5)
	chk.Float64(tst, "itol", 1e-17, sim.Solver.Itol, 1.0)
	chk.Float64(tst, "dt", 1e-17, sim.Control.Dt, 0.01)
}

func Test_read02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("read02. invalid decks must not pass Check")

	sim := new(Simulation)
	sim.SetDefaults()
	sim.Flutter.Vmin, sim.Flutter.Vmax = 1200, 1000
	if err := sim.Check(); err == nil {
		tst.Errorf("empty sweep interval must be rejected\n")
		return
	}

	sim.SetDefaults()
	sim.Flutter.Vmin, sim.Flutter.Vmax = 1000, 1200
	sim.Solver.Theta2 = 1.2 // β > 1/2
	if err := sim.Check(); err == nil {
		tst.Errorf("out-of-range Newmark β must be rejected\n")
		return
	}

	sim.SetDefaults()
	sim.Flutter.Vmin, sim.Flutter.Vmax = 1000, 1200
	sim.Flutter.Ndiv = 0
	if err := sim.Check(); err == nil {
		tst.Errorf("zero sweep divisions must be rejected\n")
	}
}

func Test_read03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("read03. missing file")

	sim, err := ReadSim("data/__does_not_exist__.sim")
	if err == nil {
		tst.Errorf("ReadSim must fail for a missing file\n")
		return
	}
	if sim != nil {
		tst.Errorf("ReadSim must return nil on failure\n")
	}
}
