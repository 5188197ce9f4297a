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
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/golbm/InputParameters"
	"github.com/notargets/golbm/geometry2D"
	"github.com/notargets/golbm/model_problems/LBM2D"
)

// MaskCmd represents the mask command
var MaskCmd = &cobra.Command{
	Use:   "mask",
	Short: "Rasterize the airfoil onto the lattice without solving",
	Long: `
Writes mask.png for the case geometry and prints the number of airfoil cells.

golbm mask --nx 400 --ny 200 --naca 0012 -a 10`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
			ip  *InputParameters.InputParametersLBM
			n   int
		)
		icFile, _ := cmd.Flags().GetString("inputConditionsFile")
		if ip, err = processInput(cmd, icFile); err != nil {
			exitOnError(err)
		}
		if n, err = RunMask(viper.GetString("outputDir"), ip); err != nil {
			exitOnError(err)
		}
		fmt.Printf("%d airfoil cells of %d\n", n, ip.NX*ip.NY)
	},
}

func init() {
	rootCmd.AddCommand(MaskCmd)
	addCaseFlags(MaskCmd)
}

func RunMask(outputDir string, ip *InputParameters.InputParametersLBM) (n int, err error) {
	var (
		c *LBM2D.LBM
	)
	geom := *ip
	geom.NSteps = 0
	if c, err = LBM2D.NewLBM(&geom, false); err != nil {
		return
	}
	if err = c.SaveMaskImage(filepath.Join(outputDir, "mask.png")); err != nil {
		return
	}
	n = geometry2D.CountMask(c.Mask())
	return
}
