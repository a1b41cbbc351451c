// Copyright 2026 The Oommf-Sub006 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ovf implements the OVF v1.0 rectangular-mesh output writer of
// §6. Grounded on the teacher's out/ package as the "results to a file"
// seam (out/printing.go's String() formatters feed io.Pf-style
// printing); here the target is a byte-exact external file format
// rather than a human-readable report, so the writer works directly
// against an io.Writer instead of building up an io.Pf string first.
//
// The binary checkvalue/float encoding (encoding/binary, bufio) has no
// gosl counterpart in the example pack - gosl/io's helpers (Pf, Sf) are
// text-formatting wrappers around fmt, not binary codecs - so this
// package is one of the few places this module reaches for the
// standard library on a concern the examples don't otherwise cover.
package ovf

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/cpmech/gosl/chk"

	"github.com/fangohr/oommf-sub006/oxserr"
	"github.com/fangohr/oommf-sub006/vec3"
)

// Encoding selects the OVF v1.0 data section format (§6).
type Encoding int

const (
	Text Encoding = iota
	Binary4
	Binary8
)

// checkvalue constants OVF binary sections lead with for endian
// detection, per §6.
const (
	checkvalue4 = float32(1234567.0)
	checkvalue8 = float64(123456789012345.0)
)

// MeshHeader carries the rectangular-mesh geometry fields of the OVF
// header: step sizes, node counts, value unit and multiplier.
type MeshHeader struct {
	Title            string
	Desc             string
	Xstepsize        float64
	Ystepsize        float64
	Zstepsize        float64
	Xnodes           int
	Ynodes           int
	Znodes           int
	ValueUnit        string
	ValueMultiplier  float64 // = Ms for magnetization files
	ValueRangeMinMag float64
	ValueRangeMaxMag float64
}

const defaultTextFormat = "%.17g"

// WriteVectorField writes one OVF v1.0 rectangular-mesh vector file.
// data is indexed data[i][k], each component already in internal xzy
// coordinates; WriteVectorField performs the xzy->xyz rotation and
// emits (mx, mz, -my) at every node, iterating k (inner), then i, per
// §6.
func WriteVectorField(w io.Writer, hdr MeshHeader, enc Encoding, textFormat string, data [][]vec3.V) error {
	if len(data) != hdr.Xnodes {
		return oxserr.New(oxserr.ConfigurationInvalid, "ovf: data has %d rows, header declares Xnodes=%d", len(data), hdr.Xnodes)
	}
	bw := bufio.NewWriter(w)
	if err := writeHeader(bw, hdr, enc); err != nil {
		return err
	}

	switch enc {
	case Binary4:
		if err := binary.Write(bw, binary.LittleEndian, checkvalue4); err != nil {
			return oxserr.New(oxserr.FileIO, "ovf: writing binary4 checkvalue: %v", err)
		}
	case Binary8:
		if err := binary.Write(bw, binary.LittleEndian, checkvalue8); err != nil {
			return oxserr.New(oxserr.FileIO, "ovf: writing binary8 checkvalue: %v", err)
		}
	case Text:
		// no checkvalue line in the text encoding
	default:
		chk.Panic("ovf: unknown encoding %v", enc)
	}

	format := textFormat
	if format == "" {
		format = defaultTextFormat
	}

	for i := 0; i < hdr.Xnodes; i++ {
		if len(data[i]) != hdr.Znodes {
			return oxserr.New(oxserr.ConfigurationInvalid, "ovf: row %d has %d cols, header declares Znodes=%d", i, len(data[i]), hdr.Znodes)
		}
		for k := 0; k < hdr.Znodes; k++ {
			mx, mz, negmy := rotate(data[i][k])
			var err error
			switch enc {
			case Binary4:
				err = writeBinary4Triple(bw, mx, mz, negmy)
			case Binary8:
				err = writeBinary8Triple(bw, mx, mz, negmy)
			case Text:
				_, err = fmt.Fprintf(bw, format+" "+format+" "+format+"\n", mx, mz, negmy)
			}
			if err != nil {
				return oxserr.New(oxserr.FileIO, "ovf: writing sample (%d,%d): %v", i, k, err)
			}
		}
	}

	if _, err := io.WriteString(bw, "# End: Data "+encodingName(enc)+"\n# End: Segment\n"); err != nil {
		return oxserr.New(oxserr.FileIO, "ovf: writing trailer: %v", err)
	}
	return bw.Flush()
}

// rotate applies the internal xzy -> external xyz emission rule of §6:
// the core emits (mx, mz, -my).
func rotate(v vec3.V) (mx, mz, negmy float64) {
	return v.X, v.Z, -v.Y
}

func writeBinary4Triple(w io.Writer, a, b, c float64) error {
	for _, v := range [3]float32{float32(a), float32(b), float32(c)} {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	return nil
}

func writeBinary8Triple(w io.Writer, a, b, c float64) error {
	for _, v := range [3]float64{a, b, c} {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	return nil
}

func writeHeader(w *bufio.Writer, hdr MeshHeader, enc Encoding) error {
	lines := []string{
		"# OOMMF OVF 1.0",
		"# Segment count: 1",
		"# Begin: Segment",
		"# Begin: Header",
		"# Title: " + hdr.Title,
		"# Desc: " + hdr.Desc,
		"# meshtype: rectangular",
		"# meshunit: m",
		fmt.Sprintf("# xstepsize: %.17g", hdr.Xstepsize),
		fmt.Sprintf("# ystepsize: %.17g", hdr.Ystepsize),
		fmt.Sprintf("# zstepsize: %.17g", hdr.Zstepsize),
		fmt.Sprintf("# xnodes: %d", hdr.Xnodes),
		fmt.Sprintf("# ynodes: %d", hdr.Ynodes),
		fmt.Sprintf("# znodes: %d", hdr.Znodes),
		"# ValueUnit: " + hdr.ValueUnit,
		fmt.Sprintf("# ValueMultiplier: %.17g", hdr.ValueMultiplier),
		fmt.Sprintf("# ValueRangeMinMag: %.17g", hdr.ValueRangeMinMag),
		fmt.Sprintf("# ValueRangeMaxMag: %.17g", hdr.ValueRangeMaxMag),
		"# End: Header",
		"# Begin: Data " + encodingName(enc),
	}
	for _, l := range lines {
		if _, err := w.WriteString(l + "\n"); err != nil {
			return oxserr.New(oxserr.FileIO, "ovf: writing header: %v", err)
		}
	}
	return nil
}

func encodingName(enc Encoding) string {
	switch enc {
	case Binary4:
		return "Binary 4"
	case Binary8:
		return "Binary 8"
	default:
		return "Text"
	}
}

// WritePPMEnergyDensity dumps a per-cell scalar field (typically demag
// energy density) as a PPM P3 image, per §6: negative values render
// red, positive values render blue, both scaled by contrast 255/max|v|
// so the largest-magnitude cell saturates its color channel. data is
// indexed data[i][k]; rows are emitted k (inner, left to right within a
// row maps to increasing k), i outer (top to bottom).
func WritePPMEnergyDensity(w io.Writer, data [][]float64) error {
	nx := len(data)
	if nx == 0 {
		return oxserr.New(oxserr.ConfigurationInvalid, "ovf: WritePPMEnergyDensity: empty data")
	}
	nz := len(data[0])

	maxAbs := 0.0
	for _, row := range data {
		if len(row) != nz {
			return oxserr.New(oxserr.ConfigurationInvalid, "ovf: WritePPMEnergyDensity: ragged rows")
		}
		for _, v := range row {
			if a := absFloat(v); a > maxAbs {
				maxAbs = a
			}
		}
	}
	contrast := 0.0
	if maxAbs > 0 {
		contrast = 255.0 / maxAbs
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", nz, nx); err != nil {
		return oxserr.New(oxserr.FileIO, "ovf: writing PPM header: %v", err)
	}
	for i := 0; i < nx; i++ {
		for k := 0; k < nz; k++ {
			v := data[i][k]
			intensity := int(absFloat(v) * contrast)
			if intensity > 255 {
				intensity = 255
			}
			var r, g, b int
			if v < 0 {
				r, g, b = intensity, 0, 0
			} else {
				r, g, b = 0, 0, intensity
			}
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", r, g, b); err != nil {
				return oxserr.New(oxserr.FileIO, "ovf: writing PPM sample (%d,%d): %v", i, k, err)
			}
		}
	}
	return bw.Flush()
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
