// Copyright 2026 The Oommf-Sub006 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package demagext defines the external demag plug-in interface of §6: a
// user-provided routine may replace field.Evaluator's InternalDemagCalc,
// receiving and returning the magnetization/field arrays through
// core-provided projection callbacks rather than owning the arrays
// itself. Grounded on the teacher's plug-in-style delegate interfaces in
// mdl/solid/model.go (a model is handed callbacks, not owning the mesh).
package demagext

import "github.com/fangohr/oommf-sub006/oxserr"

// WriteM projects one Cartesian component of the internal magnetization
// array into dst (sized [Nx][Nz]), in external-frame component numbering.
type WriteM func(component int, dst [][]float64)

// FillH projects one Cartesian component of src (sized [Nx][Nz]) back into
// the internal demag field array, in external-frame component numbering.
type FillH func(component int, src [][]float64)

// Routine is the external demag plug-in contract: Init is called once at
// grid construction, Calc once per full hUpdate, Destroy once at
// teardown.
type Routine interface {
	Init(nx, nz int, params []float64) error
	Destroy()
	Calc(writeM WriteM, fillH FillH) error
}

// ComponentToExternal converts an internal xzy component index (0=x,
// 1=z, 2=y) to the external xyz component index and sign flip the
// plug-in interface expects: 0->0, 1->2, 2->1 with the last carrying a
// sign flip (§6's "0→0, 1→2, 2→1 with sign flip on the last").
func ComponentToExternal(internal int) (external int, sign float64, err error) {
	switch internal {
	case 0:
		return 0, 1, nil
	case 1:
		return 2, 1, nil
	case 2:
		return 1, -1, nil
	}
	return 0, 0, oxserr.New(oxserr.ConfigurationInvalid, "demagext: invalid internal component index %d", internal)
}
