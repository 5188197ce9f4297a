package LBM2D

import "fmt"

// Q is the number of discrete velocities of the D2Q9 scheme
const Q = 9

/*
	Direction ordering (cx, cy):
		0:( 0, 0)
		1:( 1, 0)  2:( 0, 1)  3:(-1, 0)  4:( 0,-1)
		5:( 1, 1)  6:(-1, 1)  7:(-1,-1)  8:( 1,-1)
	The bounce-back partner of each direction is derived from the vectors,
	for this ordering it is {0, 3, 4, 1, 2, 7, 8, 5, 6}
*/
type VelocitySet struct {
	CX, CY   [Q]int
	W        [Q]float64
	Opposite [Q]int
}

func NewD2Q9() (vs *VelocitySet) {
	vs = &VelocitySet{
		CX: [Q]int{0, 1, 0, -1, 0, 1, -1, -1, 1},
		CY: [Q]int{0, 0, 1, 0, -1, 1, 1, -1, -1},
		W: [Q]float64{4. / 9,
			1. / 9, 1. / 9, 1. / 9, 1. / 9,
			1. / 36, 1. / 36, 1. / 36, 1. / 36},
	}
	vs.Opposite = deriveOpposite(vs.CX, vs.CY)
	return
}

func deriveOpposite(cx, cy [Q]int) (opp [Q]int) {
	for i := 0; i < Q; i++ {
		opp[i] = -1
		for j := 0; j < Q; j++ {
			if cx[j] == -cx[i] && cy[j] == -cy[i] {
				opp[i] = j
				break
			}
		}
		if opp[i] == -1 {
			panic(fmt.Errorf("lattice direction %d (%d,%d) has no opposite", i, cx[i], cy[i]))
		}
	}
	return
}

// Equilibrium fills feq with the second order BGK equilibrium for density rho and velocity (ux, uy)
func (vs *VelocitySet) Equilibrium(rho, ux, uy float64, feq []float64) {
	var (
		usq = 1.5 * (ux*ux + uy*uy)
	)
	for i := 0; i < Q; i++ {
		cu := 3 * (float64(vs.CX[i])*ux + float64(vs.CY[i])*uy)
		feq[i] = rho * vs.W[i] * (1 + cu + 0.5*cu*cu - usq)
	}
}
