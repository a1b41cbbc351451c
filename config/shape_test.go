// Copyright 2026 The Oommf-Sub006 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestRectangleInsideBounds(t *testing.T) {
	chk.PrintTitle("shape inside/thickness predicates")
	s := &Sim{PartWidth: 10, PartHeight: 10, PartShape: Rectangle}
	if !s.Inside(5, 5) {
		t.Fatal("expected center to be inside rectangle")
	}
	if s.Inside(15, 5) {
		t.Fatal("expected point outside width to be excluded")
	}
}

func TestEllipseExcludesCorners(t *testing.T) {
	s := &Sim{PartWidth: 10, PartHeight: 10, PartShape: Ellipse}
	if !s.Inside(5, 5) {
		t.Fatal("expected center inside ellipse")
	}
	if s.Inside(0, 0) {
		t.Fatal("expected corner to be outside the inscribed ellipse")
	}
}

func TestPyramidTapersTowardEdge(t *testing.T) {
	s := &Sim{PartWidth: 10, PartHeight: 10, PartShape: Pyramid, ShapeParam: 1}
	center := s.ThicknessAt(5, 5)
	edge := s.ThicknessAt(9.9, 5)
	if !(center > edge) {
		t.Fatalf("expected center thickness > edge thickness, got center=%v edge=%v", center, edge)
	}
}

func TestMaskDelegatesToMaskFn(t *testing.T) {
	s := &Sim{PartWidth: 10, PartHeight: 10, PartShape: Mask, MaskFn: func(x, z float64) bool { return x < 5 }}
	if !s.Inside(1, 1) {
		t.Fatal("expected MaskFn(1,1)=true to pass through")
	}
	if s.Inside(9, 1) {
		t.Fatal("expected MaskFn(9,1)=false to pass through")
	}
}
