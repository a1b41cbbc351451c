// Copyright 2026 The Oommf-Sub006 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrator

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/fangohr/oommf-sub006/vec3"
)

// fakeSystem is a minimal in-memory System used to exercise the steppers
// without depending on package grid (which itself depends on package
// integrator, so a direct dependency here would be circular).
type fakeSystem struct {
	spins  []vec3.V
	h      []vec3.V
	energy func([]vec3.V) float64
}

func (f *fakeSystem) NumCells() int          { return len(f.spins) }
func (f *fakeSystem) Spins() []vec3.V        { return f.spins }
func (f *fakeSystem) SetSpins(s []vec3.V)    { f.spins = s }
func (f *fakeSystem) H() []vec3.V            { return f.h }
func (f *fakeSystem) UpdateH(fast bool) error { return nil }
func (f *fakeSystem) Energy() (float64, error) {
	return f.energy(f.spins), nil
}
func (f *fakeSystem) PerturbAll(maxAngle float64) {
	for i := range f.spins {
		f.spins[i] = f.spins[i].Add(vec3.New(maxAngle, 0, 0)).PreciseNormalize()
	}
}

// uniaxialEnergy is the easy-plane energy m_z^2, lowest at m_z=0;
// newFakeSystem pairs it with the fixed field -2*m_z*z taken at the
// starting spin, which drives m_z (and so the energy) down.
func uniaxialEnergy(spins []vec3.V) float64 {
	var e float64
	for _, s := range spins {
		e += s.Z * s.Z
	}
	return e
}

func newFakeSystem() *fakeSystem {
	spin := vec3.New(1, 0, 0.01).PreciseNormalize()
	h := vec3.New(0, 0, -2*spin.Z)
	return &fakeSystem{spins: []vec3.V{spin}, h: []vec3.V{h}, energy: uniaxialEnergy}
}

func TestTorqueVanishesWhenAligned(t *testing.T) {
	m := vec3.New(0, 0, 1)
	h := vec3.New(0, 0, 5)
	tq := Torque(m, h, 0.5, true)
	chk.Scalar(t, "torque norm", 1e-12, tq.Norm(), 0)
}

func TestMxHInfNormMatchesScaledTorque(t *testing.T) {
	m := vec3.New(1, 0, 0)
	h := vec3.New(0, 1, 0)
	alpha := 0.1
	tq := Torque(m, h, alpha, true)
	torques := []vec3.V{tq}
	got := MxHInfNorm(torques, alpha)
	want := tq.Norm() / math.Sqrt(1+1/(alpha*alpha))
	chk.Scalar(t, "MxHInfNorm", 1e-12, got, want)
}

func TestStepEulerAcceptsSmallStep(t *testing.T) {
	sys := newFakeSystem()
	cfg := DefaultConfig(0.5, true, false)
	cfg.AllowedSpinError = 1.0 // generous, this test only checks mechanics not tight convergence
	state := &State{StepSize: 1e-4, InitialStepSize: 1e-4}
	ok, err := StepEuler(sys, cfg, state)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected StepEuler to accept a small step")
	}
	if state.StepTotal != 1 {
		t.Fatalf("expected StepTotal=1, got %d", state.StepTotal)
	}
	if !sys.spins[0].IsUnit(1e-9) {
		t.Fatalf("spin not renormalized: %+v", sys.spins[0])
	}
}

func TestStepRungeKutta4NeverAcceptsStepBelowMinStep(t *testing.T) {
	sys := newFakeSystem()
	cfg := DefaultConfig(0.5, true, false)
	state := &State{StepSize: 10, InitialStepSize: 10}
	cfg.MinStep = 1e-3
	ok, err := StepRungeKutta4(sys, cfg, state, false)
	if err != nil {
		t.Fatal(err)
	}
	if ok && state.StepSize < cfg.MinStep {
		t.Fatalf("accepted step below MinStep floor: %v", state.StepSize)
	}
}

func TestStepOdeClampsToMaxTorqueStep(t *testing.T) {
	sys := newFakeSystem()
	cfg := DefaultConfig(0.5, true, false)
	cfg.AllowedSpinError = 1.0
	state := &State{StepSize: 1e6, InitialStepSize: 1e6}
	maxTorque := MaxTorqueNorm(ComputeTorques(sys.Spins(), sys.H(), cfg.Alpha, cfg.Precession))
	code, err := StepOde(sys, cfg, state, StepEuler, false)
	if err != nil {
		t.Fatal(err)
	}
	if code > 0 {
		t.Fatalf("expected success or perturb-recovery, got errorcode=%d", code)
	}
	if state.StepSize*maxTorque > cfg.MaxTorqueStep*(1+1e-12) {
		t.Fatalf("step %v not clamped to MaxTorqueStep/maxTorque=%v", state.StepSize, cfg.MaxTorqueStep/maxTorque)
	}
}

func TestStepPredict2FallsBackToRK4WithoutHistory(t *testing.T) {
	sys := newFakeSystem()
	cfg := DefaultConfig(0.5, true, false)
	state := &State{StepSize: 1e-4, InitialStepSize: 1e-4, OdeIterCount: 0}
	ok, err := StepPredict2(sys, cfg, state)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected the RK4 fallback to accept a small step")
	}
}
