package LBM2D

import (
	"math"
)

// UpdateMacroscopic computes density and velocity from the distribution, density is floored at RhoFloor
func (c *LBM) UpdateMacroscopic() {
	var (
		cx, cy      = c.Lattice.CX, c.Lattice.CY
		rhoD        = c.Rho.DataP
		uxD, uyD    = c.Ux.DataP, c.Uy.DataP
		d           Diagnostics
		rho, mx, my float64
	)
	for ind := 0; ind < c.NX*c.NY; ind++ {
		f := c.F[ind*Q : (ind+1)*Q]
		rho, mx, my = 0, 0, 0
		for k := 0; k < Q; k++ {
			rho += f[k]
			mx += f[k] * float64(cx[k])
			my += f[k] * float64(cy[k])
		}
		// Negative and NaN densities are floored as well
		if !(rho >= RhoFloor) {
			rho = RhoFloor
			d.DensityFloors++
		}
		rhoD[ind] = rho
		uxD[ind] = mx / rho
		uyD[ind] = my / rho
	}
	c.window.Add(d)
	c.Diag.Add(d)
}

// ApplyInlet imposes (UInlet, 0) on the leftmost column of the velocity field
func (c *LBM) ApplyInlet() {
	c.Ux.SetCol(0, c.UInlet)
	c.Uy.SetCol(0, 0)
}

// Collide relaxes every population toward the local equilibrium (BGK)
func (c *LBM) Collide() {
	var (
		omega    = c.Omega
		rhoD     = c.Rho.DataP
		uxD, uyD = c.Ux.DataP, c.Uy.DataP
		feq      = c.feq[:]
	)
	for ind := 0; ind < c.NX*c.NY; ind++ {
		c.Lattice.Equilibrium(rhoD[ind], uxD[ind], uyD[ind], feq)
		f := c.F[ind*Q : (ind+1)*Q]
		for k := 0; k < Q; k++ {
			f[k] -= omega * (f[k] - feq[k])
		}
	}
}

// Stream shifts direction k by (cy_k, cx_k) with periodic wraparound
func (c *LBM) Stream() {
	var (
		nx, ny = c.NX, c.NY
		cx, cy = c.Lattice.CX, c.Lattice.CY
	)
	for j := 0; j < ny; j++ {
		for k := 0; k < Q; k++ {
			var (
				rowSrc = j * nx
				rowDst = ((j + cy[k] + ny) % ny) * nx
				shift  = cx[k]
			)
			for i := 0; i < nx; i++ {
				id := i + shift
				if id < 0 {
					id += nx
				} else if id >= nx {
					id -= nx
				}
				c.FNew[(rowDst+id)*Q+k] = c.F[(rowSrc+i)*Q+k]
			}
		}
	}
	c.F, c.FNew = c.FNew, c.F
}

// BounceBack reverses every population on airfoil cells, reading the cell's pre-bounce values
func (c *LBM) BounceBack() {
	var (
		opp = c.Lattice.Opposite
		pre [Q]float64
	)
	for _, ind := range c.solidCells {
		f := c.F[ind*Q : (ind+1)*Q]
		copy(pre[:], f)
		for k := 0; k < Q; k++ {
			f[k] = pre[opp[k]]
		}
	}
}

// Clamp bounds every population to [-FMax, FMax], NaN is reset to zero
func (c *LBM) Clamp() {
	var (
		d Diagnostics
	)
	for i, v := range c.F {
		switch {
		case math.IsNaN(v):
			c.F[i] = 0
			d.NonFinite++
		case v > FMax:
			c.F[i] = FMax
			d.ClampEvents++
		case v < -FMax:
			c.F[i] = -FMax
			d.ClampEvents++
		}
	}
	c.window.Add(d)
	c.Diag.Add(d)
}
