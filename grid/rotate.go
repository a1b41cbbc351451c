// Copyright 2026 The Oommf-Sub006 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import "github.com/fangohr/oommf-sub006/vec3"

// extToInt rotates an external-xyz vector (x,y in-plane, z out-of-plane)
// into internal xzy (x,z in-plane, y thickness), per §6:
// (x,y,z)_ext <-> (x,-z,y)_int.
func extToInt(v vec3.V) vec3.V {
	return vec3.V{X: v.X, Y: -v.Z, Z: v.Y}
}

// intToExt is extToInt's inverse, used when emitting output in external
// coordinates (OVF files, reported fields).
func intToExt(v vec3.V) vec3.V {
	return vec3.V{X: v.X, Y: v.Z, Z: -v.Y}
}
