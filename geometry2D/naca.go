package geometry2D

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"
)

// ParseNACA4 reads the thickness in percent of chord from a symmetric 4 digit code, "0012" is 12
func ParseNACA4(code string) (thicknessPct float64, err error) {
	var n int
	if len(code) != 4 {
		err = fmt.Errorf("NACA code must have 4 digits, have \"%s\"", code)
		return
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			err = fmt.Errorf("NACA code \"%s\" is not numeric", code)
			return
		}
	}
	if code[0] != '0' || code[1] != '0' {
		err = fmt.Errorf("only symmetric (00xx) sections are supported, have \"%s\"", code)
		return
	}
	if n, err = strconv.Atoi(code[2:]); err != nil {
		return
	}
	thicknessPct = float64(n)
	return
}

// NACA4Surface returns the upper and lower surface offsets at normalized chord
// position x for thickness fraction t
func NACA4Surface(x, t float64) (yUpper, yLower float64) {
	xs := math.Max(x, 0)
	yUpper = 5 * t * (0.2969*math.Sqrt(xs) -
		0.1260*x -
		0.3516*x*x +
		0.2843*x*x*x -
		0.1015*x*x*x*x)
	yLower = -yUpper
	return
}

func Linspace(start, end float64, num int) (x []float64) {
	x = make([]float64, num)
	switch num {
	case 0:
	case 1:
		x[0] = start
	default:
		floats.Span(x, start, end)
	}
	return
}

// Airfoil holds the rotated surfaces in normalized [0,1]x[0,1] coordinates
type Airfoil struct {
	ThicknessPct, AngleOfAttack float64 // percent chord, degrees
	X, YUpper, YLower           []float64
	XUpperRot, YUpperRot        []float64
	XLowerRot, YLowerRot        []float64
}

func NewAirfoil(thicknessPct, aoaDeg float64, nSamples int) (af *Airfoil) {
	var (
		t      = thicknessPct / 100.
		aoa    = aoaDeg * math.Pi / 180.
		x      = Linspace(0, 1, nSamples)
		yU     = make([]float64, nSamples)
		yL     = make([]float64, nSamples)
		cosA   = math.Cos(aoa)
		sinA   = math.Sin(aoa)
		xr, yr = make([]float64, nSamples), make([]float64, nSamples)
		xl, yl = make([]float64, nSamples), make([]float64, nSamples)
	)
	for i, xi := range x {
		yU[i], yL[i] = NACA4Surface(xi, t)
		xr[i], yr[i] = rotateAboutMid(xi, yU[i], cosA, sinA)
		xl[i], yl[i] = rotateAboutMid(xi, yL[i], cosA, sinA)
	}
	af = &Airfoil{
		ThicknessPct:  thicknessPct,
		AngleOfAttack: aoaDeg,
		X:             x,
		YUpper:        yU,
		YLower:        yL,
		XUpperRot:     xr,
		YUpperRot:     yr,
		XLowerRot:     xl,
		YLowerRot:     yl,
	}
	return
}

// Rotation is about (0.5, 0.5), the y offset is measured from 0.5 as well
func rotateAboutMid(x, y, cosA, sinA float64) (xr, yr float64) {
	xr = (x-0.5)*cosA - (y-0.5)*sinA + 0.5
	yr = (x-0.5)*sinA + (y-0.5)*cosA + 0.5
	return
}

// Mask rasterizes the rotated upper surface, indexed [row=y][col=x].
// Only the upper surface is marked, the lower surface is for display.
func (af *Airfoil) Mask(nx, ny int) (mask [][]bool) {
	mask = make([][]bool, ny)
	for j := range mask {
		mask[j] = make([]bool, nx)
	}
	for i := range af.XUpperRot {
		col := clip(int(af.XUpperRot[i]*float64(nx)), 0, nx-1)
		row := clip(int(af.YUpperRot[i]*float64(ny)), 0, ny-1)
		mask[row][col] = true
	}
	return
}

// Silhouette is the closed outline in grid index space: upper surface forward, lower surface back
func (af *Airfoil) Silhouette(nx, ny int) (x, y []float64) {
	var (
		n = len(af.XUpperRot)
	)
	x, y = make([]float64, 0, 2*n), make([]float64, 0, 2*n)
	for i := 0; i < n; i++ {
		x = append(x, af.XUpperRot[i]*float64(nx))
		y = append(y, af.YUpperRot[i]*float64(ny))
	}
	for i := n - 1; i >= 0; i-- {
		x = append(x, af.XLowerRot[i]*float64(nx))
		y = append(y, af.YLowerRot[i]*float64(ny))
	}
	return
}

// CreateAirfoilMask samples the chord at nx points and returns the (ny, nx) occupancy grid
func CreateAirfoilMask(nx, ny int, thicknessPct, aoaDeg float64) (mask [][]bool) {
	return NewAirfoil(thicknessPct, aoaDeg, nx).Mask(nx, ny)
}

func CountMask(mask [][]bool) (n int) {
	for _, row := range mask {
		for _, solid := range row {
			if solid {
				n++
			}
		}
	}
	return
}

func clip(i, imin, imax int) int {
	if i < imin {
		return imin
	}
	if i > imax {
		return imax
	}
	return i
}
