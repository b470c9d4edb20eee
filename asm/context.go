// Copyright 2026 The Mast-Multiphysics Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

// ExecContext identifies this process within the parallel execution domain.
// It is passed explicitly to every component that needs rank information;
// there is no process-wide handle.
type ExecContext struct {
	Rank  int  // this processor's rank
	Nproc int  // number of processors
	Root  bool // rank == 0
	Distr bool // distributed run with more than one processor
}

// NewExecContext returns the context for rank within a domain of nproc
// processors
func NewExecContext(rank, nproc int) *ExecContext {
	return &ExecContext{rank, nproc, rank == 0, nproc > 1}
}
