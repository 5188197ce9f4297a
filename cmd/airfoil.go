/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/golbm/InputParameters"
	"github.com/notargets/golbm/model_problems/LBM2D"
)

type ModelLBM struct {
	ICFile        string
	OutputDir     string
	Width, Height int
	Profile       bool
	FrameDelay    int // Hundredths of a second between animation frames
}

// AirfoilCmd represents the airfoil command
var AirfoilCmd = &cobra.Command{
	Use:   "airfoil",
	Short: "Lattice Boltzmann solution of the flow around a NACA 00xx airfoil",
	Long: `
Runs the D2Q9 lattice Boltzmann solver for a fixed number of iterations and writes
heatmap.png, mask.png and fields.bin to the output directory, plus flow.gif when
frameSteps is set. Flags that are set explicitly override the input file.

golbm airfoil -I case.yaml --nSteps 2000`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
			ip  *InputParameters.InputParametersLBM
		)
		mlbm := &ModelLBM{}
		mlbm.ICFile, _ = cmd.Flags().GetString("inputConditionsFile")
		mlbm.Profile, _ = cmd.Flags().GetBool("profile")
		mlbm.FrameDelay, _ = cmd.Flags().GetInt("frameDelay")
		mlbm.OutputDir = viper.GetString("outputDir")
		mlbm.Width, mlbm.Height = viper.GetInt("width"), viper.GetInt("height")
		if ip, err = processInput(cmd, mlbm.ICFile); err != nil {
			exitOnError(err)
		}
		if err = RunAirfoil(mlbm, ip); err != nil {
			exitOnError(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(AirfoilCmd)
	addCaseFlags(AirfoilCmd)
	AirfoilCmd.Flags().Bool("profile", false, "write a CPU profile to the output directory")
	AirfoilCmd.Flags().Int("frameDelay", 10, "hundredths of a second between animation frames")
}

// addCaseFlags adds one flag per case parameter, defaults are those of the reference case
func addCaseFlags(cmd *cobra.Command) {
	def := InputParameters.DefaultInputParametersLBM()
	cmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- NX, NY\n\t- Viscosity\n\t- NACA")
	cmd.Flags().Int("nx", def.NX, "number of lattice cells in x")
	cmd.Flags().Int("ny", def.NY, "number of lattice cells in y")
	cmd.Flags().Float64("viscosity", def.Viscosity, "kinematic viscosity in lattice units")
	cmd.Flags().Float64("uInlet", def.UInlet, "inlet velocity in lattice units")
	cmd.Flags().String("naca", def.NACA, "symmetric 4 digit NACA section, e.g. 0012")
	cmd.Flags().Float64("thicknessPct", def.ThicknessPct, "thickness in percent of chord, replaces the NACA code")
	cmd.Flags().Float64P("angleOfAttack", "a", def.AngleOfAttack, "angle of attack in degrees")
	cmd.Flags().IntP("nSteps", "n", def.NSteps, "number of iterations")
	cmd.Flags().String("init", def.InitPolicy, "initial distribution: ones, weights or equilibrium")
	cmd.Flags().IntP("reportSteps", "s", def.ReportSteps, "iterations between progress lines")
	cmd.Flags().Int("frameSteps", def.FrameSteps, "iterations between animation frames, 0 for no animation")
}

/*
	Precedence, lowest first: reference case defaults, config file / GOLBM_ environment,
	the input conditions file, then flags set on the command line.
*/
func processInput(cmd *cobra.Command, icFile string) (ip *InputParameters.InputParametersLBM, err error) {
	ip = InputParameters.DefaultInputParametersLBM()
	if viper.IsSet("reportSteps") {
		ip.ReportSteps = viper.GetInt("reportSteps")
	}
	if len(icFile) != 0 {
		var data []byte
		if data, err = os.ReadFile(icFile); err != nil {
			return
		}
		if err = ip.Parse(data); err != nil {
			err = fmt.Errorf("unable to parse %s: %w", icFile, err)
			return
		}
	}
	if err = applyFlags(cmd, ip); err != nil {
		return
	}
	err = ip.Validate()
	return
}

func applyFlags(cmd *cobra.Command, ip *InputParameters.InputParametersLBM) (err error) {
	f := cmd.Flags()
	if f.Changed("nx") {
		ip.NX, _ = f.GetInt("nx")
	}
	if f.Changed("ny") {
		ip.NY, _ = f.GetInt("ny")
	}
	if f.Changed("viscosity") {
		ip.Viscosity, _ = f.GetFloat64("viscosity")
	}
	if f.Changed("uInlet") {
		ip.UInlet, _ = f.GetFloat64("uInlet")
	}
	switch {
	case f.Changed("thicknessPct"):
		ip.ThicknessPct, _ = f.GetFloat64("thicknessPct")
		ip.NACA = ""
	case f.Changed("naca"):
		code, _ := f.GetString("naca")
		if err = ip.SetNACA(code); err != nil {
			return
		}
	}
	if f.Changed("angleOfAttack") {
		ip.AngleOfAttack, _ = f.GetFloat64("angleOfAttack")
	}
	if f.Changed("nSteps") {
		ip.NSteps, _ = f.GetInt("nSteps")
	}
	if f.Changed("init") {
		ip.InitPolicy, _ = f.GetString("init")
	}
	if f.Changed("reportSteps") {
		ip.ReportSteps, _ = f.GetInt("reportSteps")
	}
	if f.Changed("frameSteps") {
		ip.FrameSteps, _ = f.GetInt("frameSteps")
	}
	return
}

func RunAirfoil(mlbm *ModelLBM, ip *InputParameters.InputParametersLBM) (err error) {
	var (
		c *LBM2D.LBM
	)
	if mlbm.Profile {
		if err = os.MkdirAll(mlbm.OutputDir, 0755); err != nil {
			return
		}
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(mlbm.OutputDir)).Stop()
	}
	ip.Print()
	if c, err = LBM2D.NewLBM(ip, true); err != nil {
		return
	}
	pm := &LBM2D.PlotMeta{
		ReportSteps: ip.ReportSteps,
		FrameSteps:  ip.FrameSteps,
	}
	c.Solve(pm)
	out := func(name string) string { return filepath.Join(mlbm.OutputDir, name) }
	if err = c.SaveHeatmap(out("heatmap.png"), mlbm.Width, mlbm.Height); err != nil {
		return
	}
	if err = c.SaveMaskImage(out("mask.png")); err != nil {
		return
	}
	if err = c.SaveFields(out("fields.bin")); err != nil {
		return
	}
	if c.Frames() > 0 {
		if err = c.SaveAnimation(out("flow.gif"), mlbm.FrameDelay); err != nil {
			return
		}
	}
	return
}

func exitOnError(err error) {
	fmt.Printf("error: %s\n", err.Error())
	os.Exit(1)
}
