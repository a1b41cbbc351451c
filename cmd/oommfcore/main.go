// Copyright 2026 The Oommf-Sub006 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// command oommfcore is the batch driver for the micromagnetic core:
// it builds a Grid from flag-supplied sample parameters, relaxes it
// with the outer step controller, and dumps the final magnetization as
// an OVF file. Grounded on the teacher's main.go: flag.Parse for the
// input path, an io.PfWhite banner, chk.Panic on fatal setup errors,
// and a deferred recover that prints the error in red before exiting.
package main

import (
	"flag"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/fangohr/oommf-sub006/anis"
	"github.com/fangohr/oommf-sub006/config"
	"github.com/fangohr/oommf-sub006/grid"
	"github.com/fangohr/oommf-sub006/integrator"
	"github.com/fangohr/oommf-sub006/ovf"
	"github.com/fangohr/oommf-sub006/vec3"
)

func main() {
	width := flag.Float64("width", 200e-9, "part width, m")
	height := flag.Float64("height", 200e-9, "part height, m")
	thickness := flag.Float64("thickness", 10e-9, "part thickness, m")
	cellsize := flag.Float64("cellsize", 5e-9, "cell edge length, m")
	ms := flag.Float64("ms", 8.6e5, "saturation magnetization, A/m")
	aExch := flag.Float64("A", 1.3e-11, "exchange stiffness, J/m")
	k1 := flag.Float64("K1", 0, "anisotropy coefficient, J/m^3")
	damp := flag.Float64("damp", 0.5, "LLG damping coefficient")
	precession := flag.Bool("precession", true, "enable gyromagnetic precession")
	maginitName := flag.String("maginit", "random", "magnetization initialization pattern")
	randSeed := flag.Int64("seed", 1, "random seed (0 selects an environment seed)")
	torqueStop := flag.Float64("torque", 1e-5, "stop relaxation once max|m x h| falls at or below this value")
	maxSteps := flag.Int("maxsteps", 200000, "relaxation step ceiling")
	outPath := flag.String("out", "relaxed.ovf", "output OVF file path")
	textOut := flag.Bool("text", false, "write the OVF body as Text instead of Binary 4")
	verbose := flag.Bool("v", true, "print progress messages")
	flag.Parse()

	defer func() {
		if err := recover(); err != nil {
			io.Pfred("ERROR: %v\n", err)
			os.Exit(1)
		}
	}()

	if *verbose {
		io.PfWhite("\noommfcore -- 2D micromagnetic relaxation core\n\n")
	}

	cfg := config.Sim{
		Ms: *ms, A: *aExch, K1: *k1, EdgeK1: *k1,
		AnisType:      anis.Uniaxial,
		AnisDirA:      vec3.New(1, 0, 0),
		PartWidth:     *width,
		PartHeight:    *height,
		PartThickness: *thickness,
		CellSize:      *cellsize,
		PartShape:     config.Rectangle,
		MagInit:       config.MagInitSpec{Name: *maginitName},
		Precession:    *precession,
		GyRatio:       2.211e5,
		DampCoef:      *damp,
		InitIncrement: 1e-4,
		RandSeed:      *randSeed,
		MinStep:       1e-15,
		MaxStep:       1e-9,
		StopCriterion: config.StopCriterion{Kind: "torque", Value: *torqueStop},
	}

	g, err := grid.Build(cfg, nil, nil, *verbose)
	if err != nil {
		chk.Panic("oommfcore: grid construction failed: %v", err)
	}

	if err := g.UpdateH(false); err != nil {
		chk.Panic("oommfcore: initial field update failed: %v", err)
	}

	steps, errcode, err := relax(g, *maxSteps, cfg.StopCriterion, *verbose)
	if err != nil {
		chk.Panic("oommfcore: relaxation failed: %v", err)
	}
	if *verbose {
		io.Pf("oommfcore: relaxed after %d accepted steps (errorcode=%d)\n", steps, errcode)
	}

	if err := writeResult(g, cfg, *outPath, *textOut); err != nil {
		chk.Panic("oommfcore: writing output failed: %v", err)
	}
	if *verbose {
		io.Pf("oommfcore: wrote %s\n", *outPath)
	}
}

// relax drives StepOde/StepRungeKutta4 until the configured stop
// criterion is satisfied or maxSteps accepted steps have elapsed,
// mirroring the teacher's fem.Run solution-loop shape (advance, check,
// repeat) without its FE-specific time-stepping machinery. Only the
// "torque" criterion is checked; any other Kind runs to maxSteps.
func relax(g *grid.Grid, maxSteps int, stop config.StopCriterion, verbose bool) (steps, lastErrCode int, err error) {
	stepper := func(sys integrator.System, cfg integrator.Config, state *integrator.State) (bool, error) {
		return integrator.StepRungeKutta4(sys, cfg, state, false)
	}
	for steps = 0; steps < maxSteps; steps++ {
		errcode, stepErr := integrator.StepOde(g, g.IntCfg, &g.IntState, stepper, verbose)
		if stepErr != nil {
			return steps, errcode, stepErr
		}
		lastErrCode = errcode

		if stop.Kind == "torque" {
			torques := integrator.ComputeTorques(g.Spins(), g.H(), g.IntCfg.Alpha, g.IntCfg.Precession)
			mxh := integrator.MaxTorqueNorm(torques)
			if g.IntCfg.Precession {
				mxh = integrator.MxHInfNorm(torques, g.IntCfg.Alpha)
			}
			if mxh <= stop.Value {
				return steps + 1, lastErrCode, nil
			}
		}
	}
	return steps, lastErrCode, nil
}

// writeResult writes the grid's current magnetization as an OVF v1.0
// rectangular-mesh file (§6): internal spins are regrouped into the
// [i][k] shape ovf.WriteVectorField expects and emitted in the xyz
// frame by the writer's own rotation.
func writeResult(g *grid.Grid, cfg config.Sim, path string, text bool) error {
	nx, nz := g.Nx, g.Nz
	spins := g.Spins()
	data := make([][]vec3.V, nx)
	for i := 0; i < nx; i++ {
		data[i] = make([]vec3.V, nz)
		for k := 0; k < nz; k++ {
			data[i][k] = spins[i*nz+k]
		}
	}
	hdr := ovf.MeshHeader{
		Title: "oommfcore magnetization", Desc: "final relaxed state",
		Xstepsize: cfg.CellSize, Ystepsize: cfg.CellSize, Zstepsize: cfg.PartThickness,
		Xnodes: nx, Ynodes: 1, Znodes: nz,
		ValueUnit: "A/m", ValueMultiplier: cfg.Ms,
		ValueRangeMinMag: 0, ValueRangeMaxMag: cfg.Ms,
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := ovf.Binary4
	if text {
		enc = ovf.Text
	}
	return ovf.WriteVectorField(f, hdr, enc, "", data)
}
