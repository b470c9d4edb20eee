// Copyright 2026 The Mast-Multiphysics Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flutter

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/kooroshg1/mast-multiphysics/ana"
	"github.com/kooroshg1/mast-multiphysics/asm"
	"github.com/kooroshg1/mast-multiphysics/par"
)

// cantilever builds the three-mode modal fixture with its first crossing at
// vcrit
func cantilever(vcrit float64) (vprm, thprm *par.Param, sec *ana.Section) {
	vprm = par.New("V", 0)
	thprm = par.New("th", 0.06)
	sec = ana.NewCantileverModal(vprm, thprm, 0.06, vcrit, 1.0, 1.0)
	return
}

type brokenDeriv struct {
	*ana.Section
}

func (o brokenDeriv) MatricesDeriv(p *par.Param, b asm.Basis) (dM, dC, dK [][]float64, err error) {
	return nil, nil, nil, chk.Err("operator derivatives are unavailable")
}

func Test_sens01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sens01. flutter-velocity sensitivity w.r.t. thickness")

	vprm, thprm, sec := cantilever(1100.0)
	b, _, err := BuildBasis(sec, 3)
	if err != nil {
		tst.Errorf("BuildBasis failed:\n%v", err)
		return
	}

	s := NewSearch(sec, sec)
	s.Init(vprm, 1000, 1200, 10, b)
	crit, err := s.AnalyzeAndFindCriticalRoot(1e-6, 60)
	if err != nil {
		tst.Errorf("search failed:\n%v", err)
		return
	}
	chk.Float64(tst, "Vcrit", 1e-3, crit.V, 1100.0)

	err = s.CalculateSensitivity(crit, thprm)
	if err != nil {
		tst.Errorf("sensitivity failed:\n%v", err)
		return
	}
	if !crit.HasSens {
		tst.Errorf("sensitivity fields were not populated")
		return
	}

	// cubic thickness scaling of the stiffness gives V ∝ (th/th0)^(3/2),
	// hence dV/dth = 1.5·V/th
	ref := 1.5 * crit.V / thprm.Value()
	io.Pf("dV/dth = %.6f  (analytical: %.6f)\n", crit.VSens, ref)
	chk.Float64(tst, "dV/dth", 1e-3*ref, crit.VSens, ref)

	// registrations must not leak past the computation
	chk.IntAssert(sec.NtrackedParams(), 0)
}

func Test_sens02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sens02. failing derivatives leave no tracked parameters")

	vprm, thprm, sec := cantilever(1100.0)
	b, _, err := BuildBasis(sec, 3)
	if err != nil {
		tst.Errorf("BuildBasis failed:\n%v", err)
		return
	}

	s := NewSearch(sec, sec)
	s.Init(vprm, 1000, 1200, 10, b)
	crit, err := s.AnalyzeAndFindCriticalRoot(1e-6, 60)
	if err != nil {
		tst.Errorf("search failed:\n%v", err)
		return
	}

	// swap in an assembly whose derivatives fail
	s.Fsi = brokenDeriv{sec}
	if e := s.CalculateSensitivity(crit, thprm); e == nil {
		tst.Errorf("sensitivity must fail when derivatives are unavailable")
		return
	}
	chk.IntAssert(sec.NtrackedParams(), 0)
	if crit.HasSens {
		tst.Errorf("failed sensitivity must not populate the root")
	}
}

func Test_sens03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sens03. sensitivity without convergence panics")

	defer func() {
		if recover() == nil {
			tst.Errorf("sensitivity on a non-converged engine must panic")
		}
	}()

	vprm, thprm, sec := cantilever(1100.0)
	b, _, err := BuildBasis(sec, 3)
	if err != nil {
		tst.Errorf("BuildBasis failed:\n%v", err)
		return
	}
	s := NewSearch(sec, sec)
	s.Init(vprm, 1000, 1200, 10, b)
	s.CalculateSensitivity(&Root{}, thprm)
}

func Test_report01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("report01. sorted root table")

	_, sec := pitchPlunge()
	b, _, err := BuildBasis(sec, 2)
	if err != nil {
		tst.Errorf("BuildBasis failed:\n%v", err)
		return
	}
	s := NewSearch(sec, sec)
	s.Init(sec.Vprm, 1000, 1200, 10, b)
	if _, e := s.AnalyzeAndFindCriticalRoot(1e-3, 50); e != nil {
		tst.Errorf("search failed:\n%v", e)
		return
	}

	l := s.ReportSortedRoots()
	nlines := 0
	for _, c := range l {
		if c == '\n' {
			nlines++
		}
	}
	chk.IntAssert(nlines, len(s.Roots())+1)

	// root-rank gating and file output
	s.PrintSortedRoots(asm.NewExecContext(0, 1))
	s.SaveSortedRoots("/tmp/mast", "roots.txt")
}
