// Copyright 2026 The Oommf-Sub006 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import "github.com/fangohr/oommf-sub006/xpfloat"

// Energy holds the per-term energy averages calculate_energy produces
// (§4.10): each is an average over the total thickness.
type Energy struct {
	Exchange   float64
	Anisotropy float64
	Demag      float64
	Zeeman     float64
	Total      float64
}

// CalculateEnergy sums the four energy contributions over every cell
// using xpfloat.Xpfloat compensated accumulators (§4.10's "prevents
// catastrophic cancellation" requirement), then divides by total
// thickness to report averages.
func (g *Grid) CalculateEnergy() (Energy, error) {
	if !g.hValid {
		if err := g.UpdateH(false); err != nil {
			return Energy{}, err
		}
	}
	var exch, anisE, demagE, zeemanE, totalThickness xpfloat.Xpfloat
	localApplied := g.localApplied()
	for idx, c := range g.cells {
		if c.Thickness <= 0 {
			continue
		}
		w := c.Thickness
		exch.Add(w * c.CalculateExchangeEnergy(g.cells))
		anisE.Add(w * c.AnisotropyEnergy())

		i, k := idx/g.Nz, idx%g.Nz
		hApplied := localApplied.LocalH(i, k)
		zeemanE.Add(-w * c.Spin.Dot(hApplied))
		demagE.Add(-0.5 * w * c.Spin.Dot(g.hDemag[idx]))

		totalThickness.Add(w)
	}
	tw := totalThickness.Value()
	if tw == 0 {
		return Energy{}, nil
	}
	e := Energy{
		Exchange:   exch.Value() / tw,
		Anisotropy: anisE.Value() / tw,
		Demag:      demagE.Value() / tw,
		Zeeman:     zeemanE.Value() / tw,
	}
	e.Total = e.Exchange + e.Anisotropy + e.Demag + e.Zeeman
	return e, nil
}
