package InputParameters

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputParameters(t *testing.T) {
	{ // Defaults reproduce the reference case
		ip := DefaultInputParametersLBM()
		require.NoError(t, ip.Validate())
		assert.Equal(t, 400, ip.NX)
		assert.Equal(t, 200, ip.NY)
		assert.Equal(t, 10000, ip.NSteps)
		assert.InDelta(t, 0.56, ip.Tau(), 1.e-12)
		assert.InDelta(t, 1./0.56, ip.Omega(), 1.e-12)
	}
	{ // Parse overlays the file onto the defaults
		fileInput := []byte(`
Title: Test Case
NX: 64
NY: 32
NACA: "0015"
AngleOfAttack: 5.
NSteps: 20
InitPolicy: weights
`)
		ip := DefaultInputParametersLBM()
		require.NoError(t, ip.Parse(fileInput))
		assert.Equal(t, "Test Case", ip.Title)
		assert.Equal(t, 64, ip.NX)
		assert.Equal(t, 32, ip.NY)
		assert.Equal(t, 15., ip.ThicknessPct)
		assert.Equal(t, 5., ip.AngleOfAttack)
		assert.Equal(t, 0.02, ip.Viscosity)
		assert.Equal(t, "weights", ip.InitPolicy)
		assert.NoError(t, ip.Validate())
		ip.Print()
	}
	{ // An explicit thickness replaces the default section code
		ip := DefaultInputParametersLBM()
		require.NoError(t, ip.Parse([]byte("ThicknessPct: 9.5\n")))
		assert.Equal(t, 9.5, ip.ThicknessPct)
		assert.Equal(t, "", ip.NACA)
	}
	{ // Bad input is reported, not panicked
		ip := DefaultInputParametersLBM()
		err := ip.Parse([]byte("NACA: \"2412\"\n"))
		assert.True(t, errors.Is(err, ErrInvalidInput))

		bad := []func(ip *InputParametersLBM){
			func(ip *InputParametersLBM) { ip.NX = 1 },
			func(ip *InputParametersLBM) { ip.Viscosity = 0 },
			func(ip *InputParametersLBM) { ip.NSteps = -1 },
			func(ip *InputParametersLBM) { ip.ThicknessPct = 120 },
			func(ip *InputParametersLBM) { ip.FrameSteps = -2 },
			func(ip *InputParametersLBM) { ip.InitPolicy = "zeros" },
		}
		for _, mutate := range bad {
			ip = DefaultInputParametersLBM()
			mutate(ip)
			err = ip.Validate()
			assert.True(t, errors.Is(err, ErrInvalidInput), "%v", err)
		}
	}
}
