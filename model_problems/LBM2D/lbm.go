package LBM2D

import (
	"fmt"
	"image"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/golbm/InputParameters"
	"github.com/notargets/golbm/geometry2D"
	"github.com/notargets/golbm/types"
	"github.com/notargets/golbm/utils"
)

/*
	Distribution storage is row major over cells with the Q populations of a
	cell contiguous: F[(j*NX+i)*Q+k] for row j (y), column i (x), direction k.
	Streaming writes into FNew and swaps, so every shift reads pre-step data.
*/
type LBM struct {
	// Input parameters
	Input         *InputParameters.InputParametersLBM
	NX, NY        int
	Viscosity     float64
	Tau, Omega    float64
	UInlet        float64
	AngleOfAttack float64
	NSteps        int
	InitPolicy    types.InitPolicy
	Lattice       *VelocitySet
	Airfoil       *geometry2D.Airfoil
	Diag          Diagnostics // Accumulated over the run
	mask          [][]bool
	solidCells    []int // Flat cell indices of the mask
	F, FNew       []float64
	// Macroscopic fields, NY x NX, recomputed every iteration
	Rho, Ux, Uy utils.Matrix
	feq         [Q]float64
	window      Diagnostics // Since the last progress report
	state       types.SimState
	steps       int
	verbose     bool
	frames      []*image.Paletted
	frameRamp   *utils.ColorRamp
}

type PlotMeta struct {
	ReportSteps int // Progress line every ReportSteps iterations, 0 reports only the last
	FrameSteps  int // Animation frame every FrameSteps iterations, 0 records none
}

func NewLBM(ip *InputParameters.InputParametersLBM, verbose bool) (c *LBM, err error) {
	if err = ip.Validate(); err != nil {
		return
	}
	var policy types.InitPolicy
	if policy, err = types.NewInitPolicy(ip.InitPolicy); err != nil {
		return
	}
	c = &LBM{
		Input:         ip,
		NX:            ip.NX,
		NY:            ip.NY,
		Viscosity:     ip.Viscosity,
		Tau:           ip.Tau(),
		Omega:         ip.Omega(),
		UInlet:        ip.UInlet,
		AngleOfAttack: ip.AngleOfAttack,
		NSteps:        ip.NSteps,
		InitPolicy:    policy,
		Lattice:       NewD2Q9(),
		F:             make([]float64, ip.NX*ip.NY*Q),
		FNew:          make([]float64, ip.NX*ip.NY*Q),
		Rho:           utils.NewMatrix(ip.NY, ip.NX),
		Ux:            utils.NewMatrix(ip.NY, ip.NX),
		Uy:            utils.NewMatrix(ip.NY, ip.NX),
		state:         types.RUNNING,
		verbose:       verbose,
	}
	c.Airfoil = geometry2D.NewAirfoil(ip.ThicknessPct, ip.AngleOfAttack, ip.NX)
	c.mask = c.Airfoil.Mask(c.NX, c.NY)
	for j, row := range c.mask {
		for i, solid := range row {
			if solid {
				c.solidCells = append(c.solidCells, j*c.NX+i)
			}
		}
	}
	c.InitializeDistribution()
	if verbose {
		fmt.Printf("Lattice Boltzmann D2Q9 in 2 Dimensions\n")
		fmt.Printf("Solving flow over NACA %s, thickness = %5.2f%%, angle of attack = %6.2f deg\n",
			nacaLabel(ip), ip.ThicknessPct, ip.AngleOfAttack)
		fmt.Printf("Grid = %d x %d, airfoil cells = %d\n", c.NX, c.NY, len(c.solidCells))
		fmt.Printf("Viscosity = %8.5f, Tau = %8.5f, Omega = %8.5f, Inlet Velocity = %8.5f\n",
			c.Viscosity, c.Tau, c.Omega, c.UInlet)
		fmt.Printf("Initial distribution: %s\n\n", c.InitPolicy.String())
	}
	return
}

func nacaLabel(ip *InputParameters.InputParametersLBM) string {
	if len(ip.NACA) != 0 {
		return ip.NACA
	}
	return fmt.Sprintf("00%02.0f", ip.ThicknessPct)
}

// InitializeDistribution sets the rest state and derives the macroscopic field from it, without inlet override
func (c *LBM) InitializeDistribution() {
	var (
		cell [Q]float64
	)
	switch c.InitPolicy {
	case types.INIT_Ones:
		for k := range cell {
			cell[k] = 1
		}
	case types.INIT_Weights:
		cell = c.Lattice.W
	case types.INIT_Equilibrium:
		c.Lattice.Equilibrium(1, c.UInlet, 0, cell[:])
	}
	for ind := 0; ind < c.NX*c.NY; ind++ {
		copy(c.F[ind*Q:(ind+1)*Q], cell[:])
	}
	c.UpdateMacroscopic()
	c.window, c.Diag = Diagnostics{}, Diagnostics{}
	c.steps = 0
	c.state = types.RUNNING
	if c.NSteps == 0 {
		c.state = types.DONE
	}
}

// Step performs one iteration: macroscopic, inlet, collision, streaming, bounce-back, clamp
func (c *LBM) Step() {
	c.UpdateMacroscopic()
	c.ApplyInlet()
	c.Collide()
	c.Stream()
	c.BounceBack()
	c.Clamp()
	c.steps++
}

func (c *LBM) Solve(pm *PlotMeta) {
	var (
		start   = time.Now()
		elapsed time.Duration
		wStart  = start
		wSteps  int
	)
	if pm == nil {
		pm = &PlotMeta{}
	}
	c.PrintInitialization()
	if pm.FrameSteps > 0 {
		c.RecordFrame()
	}
	for c.state == types.RUNNING {
		if c.steps >= c.NSteps {
			c.state = types.DONE
			break
		}
		c.Step()
		wSteps++
		if pm.FrameSteps > 0 && c.steps%pm.FrameSteps == 0 {
			c.RecordFrame()
		}
		last := c.steps == c.NSteps
		if last || (pm.ReportSteps > 0 && c.steps%pm.ReportSteps == 0) {
			now := time.Now()
			c.PrintUpdate(wSteps, now.Sub(wStart))
			wStart, wSteps = now, 0
		}
	}
	elapsed = time.Since(start)
	c.PrintFinal(elapsed)
}

func (c *LBM) State() types.SimState { return c.state }
func (c *LBM) Steps() int            { return c.steps }
func (c *LBM) Mask() [][]bool        { return c.mask }
func (c *LBM) SolidCells() []int     { return c.solidCells }

// Macroscopic returns the fields of the last macroscopic update, the inlet column carries the imposed velocity
func (c *LBM) Macroscopic() (rho, ux, uy utils.Matrix) {
	return c.Rho, c.Ux, c.Uy
}

func (c *LBM) VelocityMagnitude() utils.Matrix {
	return c.Ux.Hypot(c.Uy)
}

// TotalMass sums every population over the grid
func (c *LBM) TotalMass() float64 {
	return floats.Sum(c.F)
}

func (c *LBM) PrintInitialization() {
	if !c.verbose {
		return
	}
	fmt.Printf("Solving for %d iterations\n", c.NSteps)
	fmt.Printf("      iter     steps/s")
	fmt.Printf("    rho_min    rho_max    |u|_max           mass\n")
}

func (c *LBM) PrintUpdate(windowSteps int, windowTime time.Duration) {
	if c.verbose {
		var rate float64
		if windowTime > 0 {
			rate = float64(windowSteps) / windowTime.Seconds()
		}
		fmt.Printf("%s\n", c.progressLine(rate))
	}
	if c.window.Any() {
		fmt.Printf("%s\n", c.windowWarning())
	}
	c.window = Diagnostics{}
}

// progressLine is one row of the progress table, mass is the sum of every population
func (c *LBM) progressLine(rate float64) string {
	format := "%11.4e"
	return fmt.Sprintf("%10d%12.2f"+format+format+format+"%15.8e",
		c.steps, rate, c.Rho.Min(), c.Rho.Max(), c.VelocityMagnitude().Max(), c.TotalMass())
}

func (c *LBM) windowWarning() string {
	return fmt.Sprintf("WARNING: numerical safety net engaged through iteration %d: %s",
		c.steps, c.window.String())
}

func (c *LBM) PrintFinal(elapsed time.Duration) {
	if c.verbose && c.steps > 0 {
		rate := float64(elapsed.Microseconds()) / float64(c.NX*c.NY*c.steps)
		fmt.Printf("\nRate of execution = %8.5f us/(cell*iteration) over %d iterations\n", rate, c.steps)
		fmt.Printf("%s\n", utils.GetMemUsage())
	}
	if c.Diag.Any() {
		fmt.Printf("WARNING: result may be physically meaningless, %s\n", c.Diag.String())
	}
}
