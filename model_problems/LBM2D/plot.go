package LBM2D

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/notargets/golbm/utils"
)

// fieldGrid presents a NY x NX field to plotter.HeatMap with row 0 at the bottom
type fieldGrid struct {
	f utils.Matrix
}

func (g fieldGrid) Dims() (c, r int) {
	nr, nc := g.f.Dims()
	return nc, nr
}
func (g fieldGrid) Z(c, r int) float64 { return g.f.At(r, c) }
func (g fieldGrid) X(c int) float64    { return float64(c) }
func (g fieldGrid) Y(r int) float64    { return float64(r) }

// SaveHeatmap renders the velocity magnitude with the airfoil silhouette overlaid and a
// colorbar on the right, format follows the file extension
func (c *LBM) SaveHeatmap(fileName string, width, height int) (err error) {
	var (
		vm     = c.VelocityMagnitude()
		p      = plot.New()
		ramp   = utils.NewColorRamp(255)
		poly   *plotter.Polygon
		cw     vg.CanvasWriterTo
		file   *os.File
		w, h   = vg.Points(float64(width)), vg.Points(float64(height))
		barW   = vg.Points(80)
		format = strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	)
	p.Title.Text = "Final Flow Around Airfoil"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	hm := plotter.NewHeatMap(fieldGrid{vm}, ramp)
	if hm.Max <= hm.Min {
		hm.Max = hm.Min + 1
	}
	p.Add(hm)

	xs, ys := c.Airfoil.Silhouette(c.NX, c.NY)
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X, pts[i].Y = xs[i], ys[i]
	}
	if poly, err = plotter.NewPolygon(pts); err != nil {
		return
	}
	poly.Color = utils.GetColor(utils.Gray)
	poly.LineStyle.Width = vg.Points(0.5)
	poly.LineStyle.Color = utils.GetColor(utils.Black)
	p.Add(poly)
	p.X.Min, p.X.Max = -0.5, float64(c.NX)-0.5
	p.Y.Min, p.Y.Max = -0.5, float64(c.NY)-0.5

	bar, _ := newColorBar(hm, ramp)

	if cw, err = draw.NewFormattedCanvas(w, h, format); err != nil {
		return
	}
	dc := draw.New(cw)
	p.Draw(draw.Crop(dc, 0, -barW, 0, 0))
	// The bar starts below the title of the field plot
	titleH := p.Title.TextStyle.Rectangle(p.Title.Text).Size().Y + p.Title.Padding
	bar.Draw(draw.Crop(dc, w-barW, 0, 0, -titleH))

	if err = ensureDir(fileName); err != nil {
		return
	}
	if file, err = os.Create(fileName); err != nil {
		return
	}
	defer file.Close()
	fmt.Printf(" Plot>|u| min,max = %8.5f,%8.5f\n", vm.Min(), vm.Max())
	_, err = cw.WriteTo(file)
	return
}

// newColorBar builds the legend plot of a heatmap over the heatmap's value range
func newColorBar(hm *plotter.HeatMap, ramp *utils.ColorRamp) (bar *plot.Plot, cb *plotter.ColorBar) {
	bar = plot.New()
	bar.HideX()
	bar.Y.Label.Text = "Velocity Magnitude"
	cb = &plotter.ColorBar{
		ColorMap: ramp.ColorMap(hm.Min, hm.Max),
		Vertical: true,
	}
	bar.Add(cb)
	return
}

// SaveMaskImage writes the airfoil mask, solid cells light on a dark background, row 0 at the bottom
func (c *LBM) SaveMaskImage(fileName string) (err error) {
	var (
		img  = image.NewRGBA(image.Rect(0, 0, c.NX, c.NY))
		file *os.File
	)
	for j := 0; j < c.NY; j++ {
		for i := 0; i < c.NX; i++ {
			col := utils.GetColor(utils.Background)
			if c.mask[j][i] {
				col = utils.GetColor(utils.White)
			}
			img.Set(i, c.NY-1-j, col)
		}
	}
	if err = ensureDir(fileName); err != nil {
		return
	}
	if file, err = os.Create(fileName); err != nil {
		return
	}
	defer file.Close()
	return png.Encode(file, img)
}

// RecordFrame appends the current velocity magnitude as a paletted animation frame
func (c *LBM) RecordFrame() {
	if c.frameRamp == nil {
		c.frameRamp = utils.NewColorRamp(255)
	}
	var (
		vm         = c.VelocityMagnitude()
		fmin, fmax = 0., vm.Max()
		pal        = make(color.Palette, 0, 256)
	)
	pal = append(pal, c.frameRamp.Colors()...)
	pal = append(pal, utils.GetColor(utils.Black)) // Airfoil cells
	img := image.NewPaletted(image.Rect(0, 0, c.NX, c.NY), pal)
	for j := 0; j < c.NY; j++ {
		for i := 0; i < c.NX; i++ {
			ind := uint8(len(pal) - 1)
			if !c.mask[j][i] {
				ind = uint8(c.frameRamp.Index(vm.DataP[j*c.NX+i], fmin, fmax))
			}
			img.SetColorIndex(i, c.NY-1-j, ind)
		}
	}
	c.frames = append(c.frames, img)
}

func (c *LBM) Frames() int { return len(c.frames) }

func (c *LBM) SaveAnimation(fileName string, delay int) (err error) {
	var (
		file   *os.File
		delays = make([]int, len(c.frames))
	)
	if len(c.frames) == 0 {
		return fmt.Errorf("no animation frames recorded, set a frame cadence before solving")
	}
	for i := range delays {
		delays[i] = delay
	}
	if err = ensureDir(fileName); err != nil {
		return
	}
	if file, err = os.Create(fileName); err != nil {
		return
	}
	defer file.Close()
	return gif.EncodeAll(file, &gif.GIF{
		Image: c.frames,
		Delay: delays,
	})
}

func ensureDir(fileName string) (err error) {
	dir := filepath.Dir(fileName)
	if err = os.MkdirAll(dir, 0755); err != nil {
		err = fmt.Errorf("failed to create output directory: %w", err)
	}
	return
}
