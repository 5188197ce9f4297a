package LBM2D

import "fmt"

const (
	RhoFloor = 1.e-10 // density floor applied before dividing momentum
	FMax     = 1.e10  // populations are clamped to [-FMax, FMax] after every iteration
)

// Diagnostics counts the events where the numerics needed a safety net.
// A non zero count means the result is suspect, the run still completes.
type Diagnostics struct {
	DensityFloors int // cells whose density was raised to RhoFloor
	ClampEvents   int // populations saturated at +/-FMax
	NonFinite     int // populations that were NaN and reset to zero
}

func (d *Diagnostics) Add(o Diagnostics) {
	d.DensityFloors += o.DensityFloors
	d.ClampEvents += o.ClampEvents
	d.NonFinite += o.NonFinite
}

func (d Diagnostics) Any() bool {
	return d.DensityFloors != 0 || d.ClampEvents != 0 || d.NonFinite != 0
}

func (d Diagnostics) String() string {
	return fmt.Sprintf("density floors = %d, clamp events = %d, non-finite = %d",
		d.DensityFloors, d.ClampEvents, d.NonFinite)
}
