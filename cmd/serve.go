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
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gomacflow/InputParameters"
	"github.com/notargets/gomacflow/model_problems/NavierStokes2D"
	"github.com/notargets/gomacflow/server"
)

type ModelServe struct {
	ICFile     string
	Addr       string
	FrameSteps int
	Delay      time.Duration
}

// ServeCmd represents the serve command
var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a 2D room flow and stream snapshots to websocket clients",
	Long: `Run a 2D room flow and stream snapshots to websocket clients connected on /ws.
The server keeps running after the solution finishes until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			ip *InputParameters.InputParametersNS2D
		)
		ms := &ModelServe{
			ICFile:     viper.GetString("serve.inputConditionsFile"),
			Addr:       viper.GetString("serve.addr"),
			FrameSteps: viper.GetInt("serve.frameSteps"),
			Delay:      time.Duration(viper.GetInt("serve.delay")) * time.Millisecond,
		}
		if ip, err = processInput(ms.ICFile); err != nil {
			return
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return RunServe(ctx, ms, ip)
	},
}

func init() {
	rootCmd.AddCommand(ServeCmd)
	ServeCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters")
	ServeCmd.Flags().StringP("addr", "a", ":8080", "address to listen on")
	ServeCmd.Flags().IntP("frameSteps", "s", 1, "number of steps between streamed snapshots")
	ServeCmd.Flags().IntP("delay", "d", 0, "milliseconds of delay between streamed snapshots")
	for _, name := range []string{"inputConditionsFile", "addr", "frameSteps", "delay"} {
		viper.BindPFlag("serve."+name, ServeCmd.Flags().Lookup(name))
	}
}

func RunServe(ctx context.Context, ms *ModelServe, ip *InputParameters.InputParametersNS2D) (err error) {
	var (
		ns     *NavierStokes2D.NavierStokes
		hub    = server.NewHub()
		srvErr = make(chan error, 1)
	)
	if ns, err = newSolver(ip); err != nil {
		return
	}
	if ms.FrameSteps < 1 {
		ms.FrameSteps = 1
	}
	go hub.Run(ctx)
	go func() { srvErr <- server.NewServer(ms.Addr, hub).Serve(ctx) }()

	err = ns.Solve(&NavierStokes2D.SolveMeta{
		OnStep: func(rep NavierStokes2D.StepReport) (err error) {
			select {
			case err = <-srvErr:
				return
			default:
			}
			if rep.Step%ms.FrameSteps != 0 {
				return
			}
			if err = hub.Broadcast(ctx, ns.Snapshot()); err != nil {
				return
			}
			if ms.Delay > 0 {
				select {
				case <-time.After(ms.Delay):
				case <-ctx.Done():
					err = ctx.Err()
				}
			}
			return
		},
	})
	if err != nil {
		if ctx.Err() != nil {
			// Interrupted, the hub is already closing its clients
			log.WithFields(log.Fields{"step": ns.Steps()}).Info("simulation interrupted")
			return nil
		}
		log.WithFields(log.Fields{"step": ns.Steps(), "err": err}).Warn("simulation stopped")
		finish(ctx, hub, err.Error())
		return
	}
	finish(ctx, hub, "final time reached")
	select {
	case <-ctx.Done():
		return nil
	case err = <-srvErr:
		return
	}
}

func finish(ctx context.Context, hub *server.Hub, content string) {
	if err := hub.Finish(ctx, content); err != nil {
		log.WithFields(log.Fields{"err": err}).Warn("could not notify clients that the run ended")
	}
}
