// Copyright 2026 The Mast-Multiphysics Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"

	"github.com/kooroshg1/mast-multiphysics/ana"
	"github.com/kooroshg1/mast-multiphysics/asm"
	"github.com/kooroshg1/mast-multiphysics/flutter"
	"github.com/kooroshg1/mast-multiphysics/inp"
	"github.com/kooroshg1/mast-multiphysics/par"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			if mpi.WorldRank() == 0 {
				io.PfRed("\nERROR: %v", err)
				io.Pf("See location of error below:\n")
				chk.Verbose = true
				for i := 5; i > 3; i-- {
					chk.CallerInfo(i)
				}
			}
		}
		mpi.Stop()
	}()
	mpi.Start()
	ctx := asm.NewExecContext(mpi.WorldRank(), mpi.WorldSize())

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "data/flutter", ".sim", true)
	verbose := io.ArgToBool(1, true)

	// message
	if ctx.Root && verbose {
		io.PfWhite("\nMast-Multiphysics -- Flutter Stability Analysis\n")
		io.Pf("Copyright 2026 The Mast-Multiphysics Authors. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n")
		io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"filename path", "fnamepath", fnamepath,
			"show messages", "verbose", verbose,
		))
	}

	// simulation input
	sim, err := inp.ReadSim(fnamepath)
	if err != nil {
		chk.Panic("cannot read simulation input:\n%v", err)
	}
	prms := par.NewSet(sim.Prms)

	// aeroelastic model
	sec, err := ana.NewPitchPlunge(prms)
	if err != nil {
		chk.Panic("cannot build aeroelastic model:\n%v", err)
	}
	vprm := prms.Find(sim.Flutter.VParam)
	if vprm == nil {
		chk.Panic("velocity parameter %q is not defined in input", sim.Flutter.VParam)
	}

	// reduced basis from the zero-flow modal solve
	nreq := sim.Flutter.Nmodes
	if nreq > sec.Ndof() {
		nreq = sec.Ndof()
	}
	basis, freqs, err := flutter.BuildBasis(sec, nreq)
	if err != nil {
		chk.Panic("modal solve failed:\n%v", err)
	}
	if ctx.Root && verbose {
		for i, f := range freqs {
			io.Pf("mode %d: ω = %23.15e\n", i, f)
		}
	}

	// flutter search
	s := flutter.NewSearch(sec, sec)
	s.Verbose = ctx.Root && verbose
	err = s.Init(vprm, sim.Flutter.Vmin, sim.Flutter.Vmax, sim.Flutter.Ndiv, basis)
	if err != nil {
		chk.Panic("cannot initialise flutter search:\n%v", err)
	}
	crit, err := s.AnalyzeAndFindCriticalRoot(sim.Flutter.Tol, sim.Flutter.NmaxBisect)
	if err != nil {
		chk.Panic("flutter search failed:\n%v", err)
	}
	if ctx.Root {
		io.Pfgreen("\ncritical velocity = %23.15e\n", crit.V)
		io.Pf("critical root     = %v\n", crit.Lam)
	}

	// sensitivities of the critical root
	for _, name := range sim.Flutter.SensPrms {
		p := prms.Find(name)
		if p == nil {
			chk.Panic("sensitivity parameter %q is not defined in input", name)
		}
		err = s.CalculateSensitivity(crit, p)
		if err != nil {
			chk.Panic("sensitivity w.r.t. %q failed:\n%v", name, err)
		}
		if ctx.Root {
			io.Pf("dλ/d%-8s = %v\n", name, crit.LamSens)
			io.Pf("dV/d%-8s = %23.15e\n", name, crit.VSens)
		}
	}

	// report
	s.PrintSortedRoots(ctx)
	if ctx.Root {
		s.SaveSortedRoots(sim.Data.DirOut, sim.Data.OutFile)
	}
}
