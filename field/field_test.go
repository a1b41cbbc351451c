// Copyright 2026 The Oommf-Sub006 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/fangohr/oommf-sub006/cell"
	"github.com/fangohr/oommf-sub006/vec3"
)

type uniformApplied struct{ h vec3.V }

func (u uniformApplied) LocalH(i, k int) vec3.V { return u.h }

func TestNewDemagCoeffsSelfDemagMatchesNewell(t *testing.T) {
	dc, err := NewDemagCoeffs(2, 2, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	chk.Scalar(t, "cubic self-demag factor", 1e-9, dc.Self, 1.0/3.0)
	for i := 0; i < 4; i++ {
		chk.Scalar(t, "diagonal A entry", 1e-15, dc.A[i][i], dc.Self)
	}
}

func newTestCells(n int) []*cell.Cell {
	cells := make([]*cell.Cell, n)
	for i := range cells {
		cells[i] = &cell.Cell{Spin: vec3.New(0, 0, 1), Thickness: 1}
	}
	return cells
}

func TestHUpdateZeroThicknessCellGetsZeroField(t *testing.T) {
	dc, err := NewDemagCoeffs(2, 1, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	ev := NewEvaluator(2, 1, dc, nil)
	cells := newTestCells(2)
	cells[1].Thickness = 0
	h := make([]vec3.V, 2)
	hDemag := make([]vec3.V, 2)
	applied := uniformApplied{h: vec3.New(1, 0, 0)}
	if err := ev.HUpdate(cells, applied, h, hDemag); err != nil {
		t.Fatal(err)
	}
	if h[1] != (vec3.V{}) {
		t.Fatalf("expected zero field for zero-thickness cell, got %+v", h[1])
	}
}

func TestHFastUpdateReusesLastDemag(t *testing.T) {
	dc, err := NewDemagCoeffs(1, 1, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	ev := NewEvaluator(1, 1, dc, nil)
	cells := newTestCells(1)
	h := make([]vec3.V, 1)
	hDemag := make([]vec3.V, 1)
	applied := uniformApplied{}
	if err := ev.HUpdate(cells, applied, h, hDemag); err != nil {
		t.Fatal(err)
	}
	firstDemag := hDemag[0]
	// mutate spin but do not recompute demag via fast update
	cells[0].Spin = vec3.New(1, 0, 0)
	if err := ev.HFastUpdate(cells, applied, h, hDemag); err != nil {
		t.Fatal(err)
	}
	if hDemag[0] != firstDemag {
		t.Fatalf("HFastUpdate must not recompute hDemag: got %+v want %+v", hDemag[0], firstDemag)
	}
}

func TestHUpdateRejectsArrayLengthMismatch(t *testing.T) {
	dc, err := NewDemagCoeffs(1, 1, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	ev := NewEvaluator(1, 1, dc, nil)
	cells := newTestCells(1)
	h := make([]vec3.V, 2) // wrong length
	hDemag := make([]vec3.V, 1)
	if err := ev.HUpdate(cells, uniformApplied{}, h, hDemag); err == nil {
		t.Fatal("expected error for array length mismatch")
	}
}
