package types

import (
	"fmt"
	"strings"
)

// InitPolicy selects the starting state of the distribution field
type InitPolicy uint8

const (
	INIT_Ones        InitPolicy = iota // every population equal to 1
	INIT_Weights                       // every population equal to its lattice weight, rho = 1
	INIT_Equilibrium                   // equilibrium at rho = 1 and the inlet velocity
)

var (
	InitPolicyNames = map[string]InitPolicy{
		"ones":        INIT_Ones,
		"weights":     INIT_Weights,
		"equilibrium": INIT_Equilibrium,
		"feq":         INIT_Equilibrium,
	}
	InitPolicyPrintNames = []string{"Uniform Ones", "Lattice Weights", "Inlet Equilibrium"}
)

func NewInitPolicy(label string) (ip InitPolicy, err error) {
	var ok bool
	if len(label) == 0 {
		return INIT_Ones, nil
	}
	if ip, ok = InitPolicyNames[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unable to use init policy named %s, must be one of [ones, weights, equilibrium]",
			label)
	}
	return
}

func (ip InitPolicy) String() string {
	if int(ip) < len(InitPolicyPrintNames) {
		return InitPolicyPrintNames[ip]
	}
	return fmt.Sprintf("InitPolicy(%d)", ip)
}

// SimState is the driver state machine: RUNNING until the configured iteration count is reached
type SimState uint8

const (
	RUNNING SimState = iota
	DONE
)

func (s SimState) String() string {
	switch s {
	case RUNNING:
		return "RUNNING"
	case DONE:
		return "DONE"
	}
	return fmt.Sprintf("SimState(%d)", s)
}
