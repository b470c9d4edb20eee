// Copyright 2026 The Mast-Multiphysics Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flutter

import (
	"bytes"

	"github.com/cpmech/gosl/io"

	"github.com/kooroshg1/mast-multiphysics/asm"
)

// ReportSortedRoots formats the table of all evaluated roots, sorted by
// velocity, one row per root
func (o *Search) ReportSortedRoots() (l string) {
	l = io.Sf("%5s%25s%25s%25s\n", "mode", "V", "Re(λ)", "Im(λ)")
	for _, r := range o.roots {
		l += io.Sf("%5d%25.13f%25.13f%25.13f\n", r.Mode, r.V, real(r.Lam), imag(r.Lam))
	}
	return
}

// PrintSortedRoots prints the root table on the root processor only
func (o *Search) PrintSortedRoots(ctx *asm.ExecContext) {
	if !ctx.Root {
		return
	}
	io.Pf("%s", o.ReportSortedRoots())
}

// SaveSortedRoots writes the root table to dirout/fname
func (o *Search) SaveSortedRoots(dirout, fname string) {
	var buf bytes.Buffer
	io.Ff(&buf, "%s", o.ReportSortedRoots())
	io.WriteFileVD(dirout, fname, &buf)
}
