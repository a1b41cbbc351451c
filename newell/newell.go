// Copyright 2026 The Oommf-Sub006 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package newell implements the closed-form analytic demagnetization
// tensor (§4.2): the Newell f and g integrals, the self-demag special
// case, and the six Nab components obtained as 27-term second differences
// of f (diagonal) or g (off-diagonal). Transcribed from
// oommf/app/oxs/ext/demagcoef.cc (Oxs_Newell_f, Oxs_Newell_g,
// Oxs_SelfDemagNx, Oxs_CalculateSDA00/01), routed through xpfloat's
// AccurateSum per the precision requirement in §4.2.
package newell

import (
	"math"

	"github.com/fangohr/oommf-sub006/oxserr"
	"github.com/fangohr/oommf-sub006/xpfloat"
)

func checkFinite(vals ...float64) error {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return oxserr.New(oxserr.NumericOverflow, "newell: non-finite input %v", v)
		}
	}
	return nil
}

// F evaluates the Newell f-integral (Oxs_Newell_f). Even in all three
// arguments. Always finite for finite inputs.
func F(x, y, z float64) float64 {
	x, y, z = math.Abs(x), math.Abs(y), math.Abs(z)
	xsq, ysq, zsq := x*x, y*y, z*z
	rsq := xsq + ysq + zsq
	if rsq <= 0 {
		return 0
	}
	r := math.Sqrt(rsq)

	piece := make([]float64, 0, 4)
	if z > 0 {
		piece = append(piece, 2*(2*xsq-ysq-zsq)*r)
		if t1 := x * y * z; t1 > 0 {
			piece = append(piece, -12*t1*math.Atan2(y*z, x*r))
		}
		if t2 := xsq + zsq; y > 0 && t2 > 0 {
			dummy := math.Log1p(2 * y * (y + r) / t2)
			piece = append(piece, 3*y*(zsq-xsq)*dummy)
		}
		if t3 := xsq + ysq; t3 > 0 {
			dummy := math.Log1p(2 * z * (z + r) / t3)
			piece = append(piece, 3*z*(ysq-xsq)*dummy)
		}
	} else {
		if x == y {
			k := 2*math.Sqrt2 - 6*math.Log(1+math.Sqrt2)
			piece = append(piece, k*xsq*x)
		} else {
			piece = append(piece, 2*(2*xsq-ysq)*r)
			if y > 0 && x > 0 {
				piece = append(piece, -3*y*xsq*math.Log1p(2*y*(y+r)/(x*x)))
			}
		}
	}
	return xpfloat.AccurateSum(piece) / 12.0
}

// G evaluates the Newell g-integral (Oxs_Newell_g). Odd in x and y, even
// in z.
func G(x, y, z float64) float64 {
	sign := 1.0
	if x < 0 {
		sign *= -1
	}
	if y < 0 {
		sign *= -1
	}
	x, y, z = math.Abs(x), math.Abs(y), math.Abs(z)
	xsq, ysq, zsq := x*x, y*y, z*z
	rsq := xsq + ysq + zsq
	if rsq <= 0 {
		return 0
	}
	r := math.Sqrt(rsq)

	piece := make([]float64, 0, 7)
	piece = append(piece, -2*x*y*r)
	if z > 0 {
		piece = append(piece, -z*zsq*math.Atan2(x*y, z*r))
		piece = append(piece, -3*z*ysq*math.Atan2(x*z, y*r))
		piece = append(piece, -3*z*xsq*math.Atan2(y*z, x*r))
		if t1 := xsq + ysq; t1 > 0 {
			piece = append(piece, 3*x*y*z*math.Log1p(2*z*(z+r)/t1))
		}
		if t2 := ysq + zsq; t2 > 0 {
			piece = append(piece, 0.5*y*(3*zsq-ysq)*math.Log1p(2*x*(x+r)/t2))
		}
		if t3 := xsq + zsq; t3 > 0 {
			piece = append(piece, 0.5*x*(3*zsq-xsq)*math.Log1p(2*y*(y+r)/t3))
		}
	} else {
		if y > 0 {
			piece = append(piece, -0.5*y*ysq*math.Log1p(2*x*(x+r)/(y*y)))
		}
		if x > 0 {
			piece = append(piece, -0.5*x*xsq*math.Log1p(2*y*(y+r)/(x*x)))
		}
	}
	return sign * xpfloat.AccurateSum(piece) / 6.0
}

// selfDemagNxFormula is the accurate rewritten (non-naive) self-demag
// closed form (Oxs_SelfDemagNx, post "NOTES V" rewrite): Nxx at r=0 for a
// prism of edge lengths (x,y,z).
func selfDemagNxFormula(x, y, z float64) float64 {
	if x <= 0 || y <= 0 || z <= 0 {
		return 0
	}
	if x == y && y == z {
		return 1.0 / 3.0
	}
	xsq, ysq, zsq := x*x, y*y, z*z
	R := math.Sqrt(xsq + ysq + zsq)
	Rxy := math.Sqrt(xsq + ysq)
	Rxz := math.Sqrt(xsq + zsq)
	Ryz := math.Sqrt(ysq + zsq)

	arr := make([]float64, 8)
	arr[0] = 2 * x * y * z *
		((x/(x+Rxy)+(2*xsq+ysq+zsq)/(R*Rxy+x*Rxz))/(x+Rxz)+
			(x/(x+Rxz)+(2*xsq+ysq+zsq)/(R*Rxz+x*Rxy))/(x+Rxy)) /
		((x + R) * (Rxy + Rxz + R))
	arr[1] = -1 * x * y * z *
		((y/(y+Rxy)+(2*ysq+xsq+zsq)/(R*Rxy+y*Ryz))/(y+Ryz)+
			(y/(y+Ryz)+(2*ysq+xsq+zsq)/(R*Ryz+y*Rxy))/(y+Rxy)) /
		((y + R) * (Rxy + Ryz + R))
	arr[2] = -1 * x * y * z *
		((z/(z+Rxz)+(2*zsq+xsq+ysq)/(R*Rxz+z*Ryz))/(z+Ryz)+
			(z/(z+Ryz)+(2*zsq+xsq+ysq)/(R*Ryz+z*Rxz))/(z+Rxz)) /
		((z + R) * (Rxz + Ryz + R))

	arr[3] = 6 * math.Atan2(y*z, x*R)

	piece4 := -y * zsq * (1/(x+Rxz) + y/(Rxy*Rxz+x*R)) / (Rxz * (y + Rxy))
	if piece4 > -0.5 {
		arr[4] = 3 * x * math.Log1p(piece4) / z
	} else {
		arr[4] = 3 * x * math.Log(x*(y+R)/(Rxz*(y+Rxy))) / z
	}

	piece5 := -ysq * z * (1/(x+Rxy) + z/(Rxy*Rxz+x*R)) / (Rxy * (z + Rxz))
	if piece5 > -0.5 {
		arr[5] = 3 * x * math.Log1p(piece5) / y
	} else {
		arr[5] = 3 * x * math.Log(x*(z+R)/(Rxy*(z+Rxz))) / y
	}

	piece6 := -xsq * z * (1/(y+Rxy) + z/(Rxy*Ryz+y*R)) / (Rxy * (z + Ryz))
	if piece6 > -0.5 {
		arr[6] = -3 * y * math.Log1p(piece6) / x
	} else {
		arr[6] = -3 * y * math.Log(y*(z+R)/(Rxy*(z+Ryz))) / x
	}

	piece7 := -xsq * y * (1/(z+Rxz) + y/(Rxz*Ryz+z*R)) / (Rxz * (y + Ryz))
	if piece7 > -0.5 {
		arr[7] = -3 * z * math.Log1p(piece7) / x
	} else {
		arr[7] = -3 * z * math.Log(z*(y+R)/(Rxz*(y+Ryz))) / x
	}

	return xpfloat.AccurateSum(arr) / (3 * math.Pi)
}

// SelfDemagNx, SelfDemagNy, SelfDemagNz return the three self-demag
// factors for one cell of edge lengths (dx,dy,dz). They are related by
// cyclic permutation of the formula's arguments and satisfy
// Nx+Ny+Nz=1 exactly.
func SelfDemagNx(dx, dy, dz float64) float64 { return selfDemagNxFormula(dx, dy, dz) }
func SelfDemagNy(dx, dy, dz float64) float64 { return selfDemagNxFormula(dy, dz, dx) }
func SelfDemagNz(dx, dy, dz float64) float64 { return selfDemagNxFormula(dz, dx, dy) }

// sda00 computes Nxx(x,y,z;dx,dy,dz) * 4*pi*dx*dy*dz (Oxs_CalculateSDA00)
func sda00(x, y, z, dx, dy, dz float64) float64 {
	if x == 0 && y == 0 && z == 0 {
		return SelfDemagNx(dx, dy, dz) * (4 * math.Pi * dx * dy * dz)
	}
	arr := [27]float64{
		-1 * F(x+dx, y+dy, z+dz),
		-1 * F(x+dx, y-dy, z+dz),
		-1 * F(x+dx, y-dy, z-dz),
		-1 * F(x+dx, y+dy, z-dz),
		-1 * F(x-dx, y+dy, z-dz),
		-1 * F(x-dx, y+dy, z+dz),
		-1 * F(x-dx, y-dy, z+dz),
		-1 * F(x-dx, y-dy, z-dz),

		2 * F(x, y-dy, z-dz),
		2 * F(x, y-dy, z+dz),
		2 * F(x, y+dy, z+dz),
		2 * F(x, y+dy, z-dz),
		2 * F(x+dx, y+dy, z),
		2 * F(x+dx, y, z+dz),
		2 * F(x+dx, y, z-dz),
		2 * F(x+dx, y-dy, z),
		2 * F(x-dx, y-dy, z),
		2 * F(x-dx, y, z+dz),
		2 * F(x-dx, y, z-dz),
		2 * F(x-dx, y+dy, z),

		-4 * F(x, y-dy, z),
		-4 * F(x, y+dy, z),
		-4 * F(x, y, z-dz),
		-4 * F(x, y, z+dz),
		-4 * F(x+dx, y, z),
		-4 * F(x-dx, y, z),

		8 * F(x, y, z),
	}
	return xpfloat.AccurateSum(arr[:])
}

// sda01 computes Nxy(x,y,z;l,h,e) * 4*pi*l*h*e (Oxs_CalculateSDA01).
// Nxy is odd in x, odd in y, even in z, so it is exactly zero whenever
// x==0 or y==0.
func sda01(x, y, z, l, h, e float64) float64 {
	if x == 0 || y == 0 {
		return 0
	}
	arr := [27]float64{
		-1 * G(x-l, y-h, z-e),
		-1 * G(x-l, y-h, z+e),
		-1 * G(x+l, y-h, z+e),
		-1 * G(x+l, y-h, z-e),
		-1 * G(x+l, y+h, z-e),
		-1 * G(x+l, y+h, z+e),
		-1 * G(x-l, y+h, z+e),
		-1 * G(x-l, y+h, z-e),

		2 * G(x, y+h, z-e),
		2 * G(x, y+h, z+e),
		2 * G(x, y-h, z+e),
		2 * G(x, y-h, z-e),
		2 * G(x-l, y-h, z),
		2 * G(x-l, y+h, z),
		2 * G(x-l, y, z-e),
		2 * G(x-l, y, z+e),
		2 * G(x+l, y, z+e),
		2 * G(x+l, y, z-e),
		2 * G(x+l, y-h, z),
		2 * G(x+l, y+h, z),

		-4 * G(x-l, y, z),
		-4 * G(x+l, y, z),
		-4 * G(x, y, z+e),
		-4 * G(x, y, z-e),
		-4 * G(x, y-h, z),
		-4 * G(x, y+h, z),

		8 * G(x, y, z),
	}
	return xpfloat.AccurateSum(arr[:])
}

// Nxx returns the xx demagnetization tensor component at offset (x,y,z)
// for a prism of edge lengths (dx,dy,dz). Fails with NumericOverflow if
// any input is not finite.
func Nxx(x, y, z, dx, dy, dz float64) (float64, error) {
	if err := checkFinite(x, y, z, dx, dy, dz); err != nil {
		return 0, err
	}
	return sda00(x, y, z, dx, dy, dz) / (4 * math.Pi * dx * dy * dz), nil
}

// Nxy returns the xy demagnetization tensor component (see Nxx)
func Nxy(x, y, z, dx, dy, dz float64) (float64, error) {
	if err := checkFinite(x, y, z, dx, dy, dz); err != nil {
		return 0, err
	}
	return sda01(x, y, z, dx, dy, dz) / (4 * math.Pi * dx * dy * dz), nil
}

// Nyy, Nzz, Nxz, Nyz obtain the remaining components from Nxx/Nxy by the
// coordinate-swap symmetries verified in §8's testable properties:
// Nyy(x,y,z;Δ) = Nxx(y,x,z;Δy,Δx,Δz), Nzz(x,y,z;Δ) = Nxx(z,y,x;Δz,Δy,Δx),
// and the analogous relations for the off-diagonal pair (xz,yz) obtained
// from Nxy by permuting the "even" axis.
func Nyy(x, y, z, dx, dy, dz float64) (float64, error) { return Nxx(y, x, z, dy, dx, dz) }
func Nzz(x, y, z, dx, dy, dz float64) (float64, error) { return Nxx(z, y, x, dz, dy, dx) }
func Nxz(x, y, z, dx, dy, dz float64) (float64, error) { return Nxy(x, z, y, dx, dz, dy) }
func Nyz(x, y, z, dx, dy, dz float64) (float64, error) { return Nxy(y, z, x, dy, dz, dx) }
