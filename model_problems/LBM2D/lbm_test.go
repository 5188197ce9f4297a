package LBM2D

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/golbm/InputParameters"
	"github.com/notargets/golbm/types"
	"github.com/notargets/golbm/utils"
)

func newTestLBM(t *testing.T, nx, ny, nSteps int, policy string) (c *LBM) {
	var err error
	ip := InputParameters.DefaultInputParametersLBM()
	ip.NX, ip.NY, ip.NSteps, ip.InitPolicy = nx, ny, nSteps, policy
	c, err = NewLBM(ip, false)
	require.NoError(t, err)
	return
}

func randomize(c *LBM, seed int64) {
	r := rand.New(rand.NewSource(seed))
	for i := range c.F {
		c.F[i] = 0.05 + 0.2*r.Float64()
	}
}

func TestInitialization(t *testing.T) {
	{ // No iterations returns the field of the initial distribution
		c := newTestLBM(t, 40, 20, 0, "ones")
		assert.Equal(t, types.DONE, c.State())
		c.Solve(&PlotMeta{ReportSteps: 1})
		assert.Equal(t, 0, c.Steps())
		rho, ux, uy := c.Macroscopic()
		for i := range rho.DataP {
			assert.Equal(t, 9., rho.DataP[i])
			assert.Equal(t, 0., ux.DataP[i])
			assert.Equal(t, 0., uy.DataP[i])
		}
		assert.Equal(t, 0., c.VelocityMagnitude().Max())
		assert.False(t, c.Diag.Any())
	}
	{ // Weighted initialization is unit density at rest
		c := newTestLBM(t, 16, 8, 0, "weights")
		rho, ux, _ := c.Macroscopic()
		for i := range rho.DataP {
			assert.InDelta(t, 1., rho.DataP[i], 1.e-15)
			assert.InDelta(t, 0., ux.DataP[i], 1.e-15)
		}
	}
	{ // Equilibrium initialization starts at the inlet velocity
		c := newTestLBM(t, 16, 8, 0, "equilibrium")
		rho, ux, uy := c.Macroscopic()
		for i := range rho.DataP {
			assert.InDelta(t, 1., rho.DataP[i], 1.e-14)
			assert.InDelta(t, c.UInlet, ux.DataP[i], 1.e-14)
			assert.InDelta(t, 0., uy.DataP[i], 1.e-14)
		}
	}
	{ // Invalid input is an error
		ip := InputParameters.DefaultInputParametersLBM()
		ip.Viscosity = -1
		_, err := NewLBM(ip, false)
		assert.ErrorIs(t, err, InputParameters.ErrInvalidInput)
	}
	{ // Solid cells mirror the geometry mask
		c := newTestLBM(t, 50, 30, 0, "ones")
		mask := c.Mask()
		require.Len(t, mask, 30)
		var n int
		for j := range mask {
			for i := range mask[j] {
				if mask[j][i] {
					assert.Equal(t, j*50+i, c.SolidCells()[n])
					n++
				}
			}
		}
		assert.Equal(t, n, len(c.SolidCells()))
		assert.True(t, n > 0)
	}
}

func TestStreaming(t *testing.T) {
	{ // Periodic shift conserves mass
		c := newTestLBM(t, 37, 23, 1, "ones")
		randomize(c, 1)
		before := c.TotalMass()
		c.Stream()
		assert.InDelta(t, before, c.TotalMass(), 1.e-10*before)
	}
	{ // Each direction moves one cell along its vector and wraps at the edges
		var (
			nx, ny = 6, 5
			c      = newTestLBM(t, nx, ny, 1, "ones")
			vs     = c.Lattice
		)
		for i := range c.F {
			c.F[i] = 0
		}
		for _, src := range [][2]int{{0, 0}, {2, 3}, {nx - 1, ny - 1}} {
			for i := range c.F {
				c.F[i] = 0
			}
			x, y := src[0], src[1]
			for k := 0; k < Q; k++ {
				c.F[(y*nx+x)*Q+k] = float64(k + 1)
			}
			c.Stream()
			for k := 0; k < Q; k++ {
				xd := (x + vs.CX[k] + nx) % nx
				yd := (y + vs.CY[k] + ny) % ny
				assert.Equal(t, float64(k+1), c.F[(yd*nx+xd)*Q+k], "direction %d from %v", k, src)
			}
			assert.InDelta(t, 45., c.TotalMass(), 1.e-12)
		}
	}
}

func TestBounceBack(t *testing.T) {
	c := newTestLBM(t, 60, 30, 1, "ones")
	randomize(c, 2)
	pre := make([]float64, len(c.F))
	copy(pre, c.F)
	c.BounceBack()
	solid := make(map[int]bool)
	for _, ind := range c.SolidCells() {
		solid[ind] = true
		f, p := c.F[ind*Q:(ind+1)*Q], pre[ind*Q:(ind+1)*Q]
		assert.Equal(t, p[0], f[0])
		for _, pair := range [][2]int{{1, 3}, {2, 4}, {5, 7}, {6, 8}} {
			a, b := pair[0], pair[1]
			assert.Equal(t, p[b], f[a])
			assert.Equal(t, p[a], f[b])
		}
	}
	for ind := 0; ind < c.NX*c.NY; ind++ {
		if !solid[ind] {
			assert.Equal(t, pre[ind*Q:(ind+1)*Q], c.F[ind*Q:(ind+1)*Q])
		}
	}
}

func TestCollision(t *testing.T) {
	{ // The equilibrium is a fixed point of the relaxation
		c := newTestLBM(t, 10, 6, 1, "ones")
		feq := make([]float64, Q)
		c.Lattice.Equilibrium(1.1, 0.05, 0.02, feq)
		for ind := 0; ind < c.NX*c.NY; ind++ {
			copy(c.F[ind*Q:(ind+1)*Q], feq)
		}
		c.UpdateMacroscopic()
		c.Collide()
		for ind := 0; ind < c.NX*c.NY; ind++ {
			for k := 0; k < Q; k++ {
				assert.InDelta(t, feq[k], c.F[ind*Q+k], 1.e-14)
			}
		}
	}
	{ // Relaxation conserves mass in every cell, with and without the inlet override
		c := newTestLBM(t, 10, 6, 1, "ones")
		randomize(c, 3)
		c.UpdateMacroscopic()
		rho := c.Rho.Copy()
		c.ApplyInlet()
		c.Collide()
		c.UpdateMacroscopic()
		for i := range rho.DataP {
			assert.InDelta(t, rho.DataP[i], c.Rho.DataP[i], 1.e-13)
		}
	}
}

func TestSafetyNets(t *testing.T) {
	{ // Vacuum cells are floored and reported
		c := newTestLBM(t, 8, 4, 1, "ones")
		for k := 0; k < Q; k++ {
			c.F[k] = 0
			c.F[Q+k] = -1
		}
		c.UpdateMacroscopic()
		assert.Equal(t, RhoFloor, c.Rho.DataP[0])
		assert.Equal(t, RhoFloor, c.Rho.DataP[1])
		assert.Equal(t, 0., c.Ux.DataP[0])
		assert.True(t, utils.IsFinite(c.Ux))
		assert.Equal(t, 2, c.Diag.DensityFloors)
	}
	{ // Divergent populations are clamped and reported
		c := newTestLBM(t, 8, 4, 1, "ones")
		c.F[0], c.F[1], c.F[2], c.F[3] = 1.e12, -1.e12, math.NaN(), math.Inf(1)
		c.Clamp()
		assert.Equal(t, FMax, c.F[0])
		assert.Equal(t, -FMax, c.F[1])
		assert.Equal(t, 0., c.F[2])
		assert.Equal(t, FMax, c.F[3])
		assert.Equal(t, 3, c.Diag.ClampEvents)
		assert.Equal(t, 1, c.Diag.NonFinite)
		assert.True(t, utils.IsFinite(c.F))
		assert.Equal(t, "WARNING: numerical safety net engaged through iteration 0: "+
			"density floors = 0, clamp events = 3, non-finite = 1", c.windowWarning())
		c.PrintUpdate(1, 0)
		assert.False(t, c.window.Any())
		assert.True(t, c.Diag.Any())
	}
}

func TestSimulation(t *testing.T) {
	{ // Short run: ordering, inlet, mass and finiteness
		c := newTestLBM(t, 80, 40, 50, "ones")
		mass := c.TotalMass()
		c.Solve(&PlotMeta{ReportSteps: 10})
		assert.Equal(t, types.DONE, c.State())
		assert.Equal(t, 50, c.Steps())
		if !c.Diag.Any() {
			assert.InDelta(t, mass, c.TotalMass(), 1.e-9*mass)
		}
		_, ux, uy := c.Macroscopic()
		assert.True(t, utils.IsFinite([3]utils.Matrix{c.Rho, ux, uy}))
		for j := 0; j < c.NY; j++ {
			assert.Equal(t, 0.1, ux.At(j, 0))
			assert.Equal(t, 0., uy.At(j, 0))
		}
		// Progress rows carry the iteration and the total mass
		line := c.progressLine(0)
		assert.True(t, strings.HasPrefix(line, fmt.Sprintf("%10d%12.2f", 50, 0.)))
		assert.True(t, strings.HasSuffix(line, fmt.Sprintf("%15.8e", c.TotalMass())))
		// A finished run does not iterate again
		c.Solve(nil)
		assert.Equal(t, 50, c.Steps())
	}
	{ // The reference case
		if testing.Short() {
			t.Skip("skipping the 10000 iteration reference case in short mode")
		}
		ip := InputParameters.DefaultInputParametersLBM()
		require.Equal(t, 400, ip.NX)
		require.Equal(t, 200, ip.NY)
		require.Equal(t, 10000, ip.NSteps)
		c, err := NewLBM(ip, false)
		require.NoError(t, err)
		c.Solve(&PlotMeta{})
		_, ux, uy := c.Macroscopic()
		assert.True(t, utils.IsFinite(ux))
		assert.True(t, utils.IsFinite(uy))
		assert.True(t, utils.IsFinite(c.VelocityMagnitude()))
		for j := 0; j < c.NY; j++ {
			assert.Equal(t, 0.1, ux.At(j, 0))
			assert.Equal(t, 0., uy.At(j, 0))
		}
	}
}
