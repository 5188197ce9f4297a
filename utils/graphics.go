package utils

import (
	"fmt"
	"image/color"
	"math"

	"github.com/mazznoer/colorgrad"
	"gonum.org/v1/plot/palette"
)

type ColorName uint8

const (
	White ColorName = iota
	Gray
	Black
	Background
)

func GetColor(name ColorName) (c color.RGBA) {
	switch name {
	case White:
		c = color.RGBA{R: 220, G: 220, B: 220, A: 255}
	case Gray:
		c = color.RGBA{R: 128, G: 128, B: 128, A: 128}
	case Black:
		c = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	case Background:
		c = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	}
	return
}

// ColorRamp is a sampled colorgrad gradient, it satisfies the gonum plot palette.Palette interface
type ColorRamp struct {
	colors []color.Color
}

// NewColorRamp samples the Turbo gradient, a perceptual replacement for "jet"
func NewColorRamp(n int) (cr *ColorRamp) {
	if n < 2 {
		n = 2
	}
	cr = &ColorRamp{
		colors: colorgrad.Turbo().Colors(uint(n)),
	}
	return
}

func (cr *ColorRamp) Colors() []color.Color { return cr.colors }

// Index maps f within [fmin, fmax] onto the ramp, out of range values saturate
func (cr *ColorRamp) Index(f, fmin, fmax float64) (ind int) {
	var (
		n = len(cr.colors)
	)
	if fmax <= fmin || f != f {
		return 0
	}
	ind = int(float64(n-1) * (f - fmin) / (fmax - fmin))
	if ind < 0 {
		ind = 0
	}
	if ind > n-1 {
		ind = n - 1
	}
	return
}

// ColorMap spreads a ColorRamp over [min, max], it satisfies palette.ColorMap for plotter.ColorBar
type ColorMap struct {
	ramp            *ColorRamp
	min, max, alpha float64
}

func (cr *ColorRamp) ColorMap(min, max float64) (cm *ColorMap) {
	cm = &ColorMap{
		ramp:  cr,
		min:   min,
		max:   max,
		alpha: 1,
	}
	return
}

func (cm *ColorMap) At(v float64) (c color.Color, err error) {
	switch {
	case math.IsNaN(v):
		return nil, palette.ErrNaN
	case v < cm.min:
		return nil, palette.ErrUnderflow
	case v > cm.max:
		return nil, palette.ErrOverflow
	}
	c = cm.ramp.colors[cm.ramp.Index(v, cm.min, cm.max)]
	if cm.alpha != 1 {
		r, g, b, a := c.RGBA()
		c = color.RGBA64{
			R: uint16(float64(r) * cm.alpha),
			G: uint16(float64(g) * cm.alpha),
			B: uint16(float64(b) * cm.alpha),
			A: uint16(float64(a) * cm.alpha),
		}
	}
	return
}

func (cm *ColorMap) Max() float64       { return cm.max }
func (cm *ColorMap) SetMax(max float64) { cm.max = max }
func (cm *ColorMap) Min() float64       { return cm.min }
func (cm *ColorMap) SetMin(min float64) { cm.min = min }
func (cm *ColorMap) Alpha() float64     { return cm.alpha }

func (cm *ColorMap) SetAlpha(alpha float64) {
	if alpha < 0 || alpha > 1 {
		panic(fmt.Errorf("alpha must be within [0,1], have %g", alpha))
	}
	cm.alpha = alpha
}

func (cm *ColorMap) Palette(colors int) palette.Palette {
	return NewColorRamp(colors)
}
