// Copyright 2026 The Oommf-Sub006 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrator

import "github.com/fangohr/oommf-sub006/vec3"

// Config holds the tunable step-controller constants named in §4.7.
type Config struct {
	Alpha                   float64 // damping coefficient
	Precession              bool
	AllowedSpinError        float64
	AllowedEnergyErrorRatio float64
	MinStep                 float64
	MaxTorqueStep           float64 // 0.0875 normal, 0.0175 "small steps" mode
	LowerCutRatio           float64 // 0.1
	UpperCutRatio           float64 // 0.8
	LowerIncreaseRatio      float64 // 0.5
	UpperIncreaseRatio      float64 // 1.2
	SafetyFactor            float64 // 0.8 (RK4)
	HeadRoom                float64 // 0.9 (RK4)
	PerturbationSize        float64 // 0.04
	PerturbRetries          int     // 2
	MaxTooSmallMsgs         int     // 5
}

// DefaultConfig returns the §4.7 default constants for the given damping
// coefficient and precession mode. smallSteps selects the 0.0175
// MaxTorqueStep variant (approximately 1 degree/step) instead of the
// default 0.0875 (approximately 5 degrees/step).
func DefaultConfig(alpha float64, precession, smallSteps bool) Config {
	maxTorqueStep := 0.0875
	if smallSteps {
		maxTorqueStep = 0.0175
	}
	return Config{
		Alpha:                   alpha,
		Precession:              precession,
		AllowedSpinError:        1e-8,
		AllowedEnergyErrorRatio: 0.05,
		MinStep:                 1e-15,
		MaxTorqueStep:           maxTorqueStep,
		LowerCutRatio:           0.1,
		UpperCutRatio:           0.8,
		LowerIncreaseRatio:      0.5,
		UpperIncreaseRatio:      1.2,
		SafetyFactor:            0.8,
		HeadRoom:                0.9,
		PerturbationSize:        0.04,
		PerturbRetries:          2,
		MaxTooSmallMsgs:         5,
	}
}

// AllowedSolverError is AllowedSpinError clamped by 0.2*stepsize*maxTorque,
// per StepPredict2's acceptance test in §4.7.
func (c Config) AllowedSolverError(stepSize, maxTorque float64) float64 {
	limit := 0.2 * stepSize * maxTorque
	if limit < c.AllowedSpinError {
		return limit
	}
	return c.AllowedSpinError
}

// State holds the per-system evolving step-controller variables named in
// §4.10's Grid struct (step_size, step_size0, ..., reject_position_count).
type State struct {
	StepSize            float64
	StepSize0           float64
	NextStepSize        float64
	InitialStepSize     float64
	OdeIterCount        int
	HUpdateCount        int
	StepTotal           int
	RejectTotal         int
	RejectEnergyCount   int
	RejectPositionCount int
	tooSmallMsgCount    int
	Torque0             []vec3.V // previous accepted step's torque array, used by StepPredict2
}

// Reset zeroes the step-controller counters and reseeds the step size
// from InitialStepSize, per GridCore.Reset (§4.10).
func (s *State) Reset() {
	s.StepSize = s.InitialStepSize
	s.StepSize0 = 0
	s.NextStepSize = s.InitialStepSize
	s.OdeIterCount = 0
	s.HUpdateCount = 0
	s.StepTotal = 0
	s.RejectTotal = 0
	s.RejectEnergyCount = 0
	s.RejectPositionCount = 0
	s.tooSmallMsgCount = 0
	s.Torque0 = nil
}
