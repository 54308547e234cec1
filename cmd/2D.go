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
	"io/ioutil"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gomacflow/InputParameters"
	"github.com/notargets/gomacflow/model_problems/NavierStokes2D"
)

type Model2D struct {
	ICFile     string
	OutputFile string
	PlotSteps  int
	Verbose    bool
}

const exampleFile = `
########################################
Title: "Room with a fan"
Lx: 4.2
Ly: 2.4
Dell: 0.1
DelT: 0.01
FinalTime: 0.5
Rho: 1.2
Mu: 1.82e-5
V0: 5.0
Inlet: [[1, 3], [1, 4]] # Ux samples in the left wall pinned to V0
Eps: 1.e-8
Omega: 1.7
MaxIterations: 10000
########################################
`

// TwoDCmd represents the 2D command
var TwoDCmd = &cobra.Command{
	Use:   "2D",
	Short: "Two dimensional incompressible room flow, reads an input file and outputs the final solution",
	Long:  `Two dimensional incompressible room flow, reads an input file and outputs the final solution`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			ip *InputParameters.InputParametersNS2D
		)
		m2d := &Model2D{
			ICFile:     viper.GetString("2D.inputConditionsFile"),
			OutputFile: viper.GetString("2D.outputFile"),
			PlotSteps:  viper.GetInt("2D.plotSteps"),
			Verbose:    viper.GetBool("2D.verbose"),
		}
		if ip, err = processInput(m2d.ICFile); err != nil {
			return
		}
		if m2d.Verbose {
			ip.Print()
		}
		return Run2D(m2d, ip)
	},
}

func processInput(icFile string) (ip *InputParameters.InputParametersNS2D, err error) {
	var data []byte
	if len(icFile) == 0 {
		fmt.Printf("Example File:%s\n", exampleFile)
		err = fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile) in YAML format")
		return
	}
	if data, err = ioutil.ReadFile(icFile); err != nil {
		return
	}
	ip = InputParameters.NewInputParametersNS2D()
	if err = ip.Parse(data); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", icFile, err)
	}
	return
}

func newSolver(ip *InputParameters.InputParametersNS2D) (ns *NavierStokes2D.NavierStokes, err error) {
	var cfg NavierStokes2D.Config
	if cfg, err = ip.ToConfig(); err != nil {
		return
	}
	if dn := cfg.DiffusionNumber(); dn > 0.5 {
		log.WithFields(log.Fields{
			"diffusionNumber": dn,
			"delt":            cfg.DelT,
			"mu":              cfg.Mu,
			"rho":             cfg.Rho,
		}).Warn("explicit diffusion is unstable above 0.5, reduce DelT")
	}
	return NavierStokes2D.NewNavierStokes(cfg)
}

func init() {
	rootCmd.AddCommand(TwoDCmd)
	TwoDCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- Lx, Ly, Dell (room and cell size)\n\t- Inlet, V0 (fan position and speed)")
	TwoDCmd.Flags().StringP("outputFile", "o", "", "YAML file to write the final solution to")
	TwoDCmd.Flags().IntP("plotSteps", "s", 1, "number of steps between progress lines")
	TwoDCmd.Flags().BoolP("verbose", "v", true, "print the input parameters and a progress table")
	for _, name := range []string{"inputConditionsFile", "outputFile", "plotSteps", "verbose"} {
		viper.BindPFlag("2D."+name, TwoDCmd.Flags().Lookup(name))
	}
}

func Run2D(m2d *Model2D, ip *InputParameters.InputParametersNS2D) (err error) {
	var (
		ns   *NavierStokes2D.NavierStokes
		file *os.File
	)
	if ns, err = newSolver(ip); err != nil {
		return
	}
	if err = ns.Solve(&NavierStokes2D.SolveMeta{
		Verbose:          m2d.Verbose,
		StepsBeforePrint: m2d.PlotSteps,
	}); err != nil {
		return
	}
	if len(m2d.OutputFile) == 0 {
		return
	}
	if file, err = os.Create(m2d.OutputFile); err != nil {
		return
	}
	defer file.Close()
	if err = ns.Snapshot().WriteYAML(file); err != nil {
		return
	}
	return file.Sync()
}
