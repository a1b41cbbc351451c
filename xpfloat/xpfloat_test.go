// Copyright 2026 The Oommf-Sub006 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xpfloat

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestAccurateSumRecoversExactIntegerSum(t *testing.T) {
	chk.PrintTitle("AccurateSum recovers exact integer sum")
	terms := []float64{1e16, 1, -1e16}
	got := AccurateSum(terms)
	chk.Scalar(t, "sum", 1e-15, got, 1)
}

func TestAccurateSumOfEmptySliceIsZero(t *testing.T) {
	chk.Scalar(t, "sum", 1e-15, AccurateSum(nil), 0)
}

func TestXpfloatAddAndValue(t *testing.T) {
	var x Xpfloat
	x.Add(1e16)
	x.Add(1)
	x.Add(-1e16)
	chk.Scalar(t, "value", 1e-15, x.Value(), 1)
}

func TestXpfloatResetClearsAccumulator(t *testing.T) {
	var x Xpfloat
	x.Add(42)
	x.Reset()
	chk.Scalar(t, "value", 1e-15, x.Value(), 0)
}
