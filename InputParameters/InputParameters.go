package InputParameters

import (
	"errors"
	"fmt"

	"github.com/ghodss/yaml"

	"github.com/notargets/golbm/geometry2D"
	"github.com/notargets/golbm/types"
)

var ErrInvalidInput = errors.New("invalid input parameters")

// Parameters obtained from the YAML input file
type InputParametersLBM struct {
	Title         string  `json:"Title"`
	NX            int     `json:"NX"`
	NY            int     `json:"NY"`
	Viscosity     float64 `json:"Viscosity"`
	UInlet        float64 `json:"UInlet"`
	NACA          string  `json:"NACA"`          // 4 digit code, 00xx only; overrides ThicknessPct when present
	ThicknessPct  float64 `json:"ThicknessPct"`  // Thickness as percent of chord
	AngleOfAttack float64 `json:"AngleOfAttack"` // Degrees
	NSteps        int     `json:"NSteps"`
	InitPolicy    string  `json:"InitPolicy"`
	ReportSteps   int     `json:"ReportSteps"`
	FrameSteps    int     `json:"FrameSteps"`
}

func DefaultInputParametersLBM() (ip *InputParametersLBM) {
	ip = &InputParametersLBM{
		Title:         "NACA 0012 at 10 degrees",
		NX:            400,
		NY:            200,
		Viscosity:     0.02,
		UInlet:        0.1,
		NACA:          "0012",
		ThicknessPct:  12,
		AngleOfAttack: 10,
		NSteps:        10000,
		InitPolicy:    "ones",
		ReportSteps:   500,
	}
	return
}

// Parse overlays the YAML document onto the receiver, fields absent from the document keep their value
func (ip *InputParametersLBM) Parse(data []byte) (err error) {
	var present struct {
		NACA         *string  `json:"NACA"`
		ThicknessPct *float64 `json:"ThicknessPct"`
	}
	if err = yaml.Unmarshal(data, &present); err != nil {
		return
	}
	if err = yaml.Unmarshal(data, ip); err != nil {
		return
	}
	switch {
	case present.NACA != nil:
		err = ip.SetNACA(*present.NACA)
	case present.ThicknessPct != nil:
		ip.NACA = ""
	}
	return
}

// SetNACA sets the section code and the thickness it encodes
func (ip *InputParametersLBM) SetNACA(code string) (err error) {
	var t float64
	if t, err = geometry2D.ParseNACA4(code); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	ip.NACA, ip.ThicknessPct = code, t
	return
}

func (ip *InputParametersLBM) Validate() (err error) {
	switch {
	case ip.NX < 2 || ip.NY < 2:
		err = fmt.Errorf("%w: grid must be at least 2x2, have %dx%d", ErrInvalidInput, ip.NX, ip.NY)
	case ip.Viscosity <= 0:
		err = fmt.Errorf("%w: viscosity must be positive, have %g", ErrInvalidInput, ip.Viscosity)
	case ip.ThicknessPct < 0 || ip.ThicknessPct > 100:
		err = fmt.Errorf("%w: thickness must be within [0,100] percent of chord, have %g",
			ErrInvalidInput, ip.ThicknessPct)
	case ip.NSteps < 0:
		err = fmt.Errorf("%w: iteration count must not be negative, have %d", ErrInvalidInput, ip.NSteps)
	case ip.ReportSteps < 0 || ip.FrameSteps < 0:
		err = fmt.Errorf("%w: report and frame cadence must not be negative", ErrInvalidInput)
	}
	if err != nil {
		return
	}
	if _, err = types.NewInitPolicy(ip.InitPolicy); err != nil {
		err = fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return
}

func (ip *InputParametersLBM) Tau() float64   { return 3*ip.Viscosity + 0.5 }
func (ip *InputParametersLBM) Omega() float64 { return 1. / ip.Tau() }

func (ip *InputParametersLBM) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%d x %d]\t\t= Grid (NX x NY)\n", ip.NX, ip.NY)
	fmt.Printf("%8.5f\t\t= Viscosity\n", ip.Viscosity)
	fmt.Printf("%8.5f\t\t= Tau\n", ip.Tau())
	fmt.Printf("%8.5f\t\t= Omega\n", ip.Omega())
	fmt.Printf("%8.5f\t\t= Inlet Velocity\n", ip.UInlet)
	fmt.Printf("%8.5f\t\t= Thickness (percent chord)\n", ip.ThicknessPct)
	fmt.Printf("%8.5f\t\t= Angle of Attack (deg)\n", ip.AngleOfAttack)
	fmt.Printf("[%d]\t\t\t= Iterations\n", ip.NSteps)
	fmt.Printf("[%s]\t\t\t= Init Policy\n", ip.InitPolicy)
}
