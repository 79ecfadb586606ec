package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/robotalks/ambar.go/pkg/cli/sh"
	"github.com/robotalks/ambar.go/pkg/export"
	fx "github.com/robotalks/ambar.go/pkg/framework"
	"github.com/robotalks/ambar.go/pkg/l0/comm"
	"github.com/robotalks/ambar.go/pkg/l0/env"
	"github.com/robotalks/ambar.go/pkg/player"
)

var (
	stepCount  int
	stepEvery  time.Duration
	outputFile string
)

var playCmd = &cobra.Command{
	Use:   "play <notes>...",
	Short: "Play notes synchronously",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		link, err := env.Default().NewLink(nil)
		if err != nil {
			return err
		}
		defer link.Close()
		return player.Default().NewPlayer(link).Play(strings.Join(args, " "))
	},
}

var stepCmd = &cobra.Command{
	Use:   "step <notes>...",
	Short: "Send one note per tick",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		link, err := env.Default().NewLink(nil)
		if err != nil {
			return err
		}
		defer link.Close()
		p := player.Default().NewPlayer(link)
		ctx := fx.NewRunner().HandleSignals().Context
		return runSteps(ctx, p, strings.Join(args, " "), stepCount, stepEvery)
	},
}

var sendCmd = &cobra.Command{
	Use:   "send <channel> <value>",
	Short: "Send a raw value on a channel",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		ch, err := comm.ParseChannel(args[0])
		if err != nil {
			return err
		}
		value, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid value %q: %w", args[1], err)
		}
		link, err := env.Default().NewLink(nil)
		if err != nil {
			return err
		}
		defer link.Close()
		return link.Force(ch, value)
	},
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Print frames received from the device",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		link, err := env.Default().NewLink(comm.HandleFrameFunc(func(_ context.Context, f comm.Frame) {
			fmt.Printf("%s %d\n", f.Channel, f.Value)
		}))
		if err != nil {
			return err
		}
		runner := fx.NewRunner().HandleSignals()
		runner.Go(fx.NamedRun("link", fx.RunFunc(func(ctx context.Context) error {
			return fx.RunWithContextCloser(ctx, link, func() error {
				return link.Run(ctx)
			})
		})))
		err = runner.Wait()
		if dropped := link.Dropped(); dropped > 0 {
			glog.Warningf("dropped %d malformed frames", dropped)
		}
		return err
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <notes>...",
	Short: "Write notes as a MIDI file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		conf := player.Default()
		opts := export.DefaultOptions()
		opts.Key = conf.Key
		opts.Timing = conf.Timing()
		opts.Channel = uint8(conf.Channel)
		opts.Gap = int(player.DefaultGap / time.Millisecond)

		out := os.Stdout
		if outputFile != "" && outputFile != "-" {
			f, err := os.Create(outputFile)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}
		return export.WriteSMF(out, strings.Join(args, " "), opts)
	},
}

var shellCmd = &cobra.Command{
	Use:   "shell [command]...",
	Short: "Interactive shell",
	RunE: func(_ *cobra.Command, args []string) error {
		sh.Main(args...)
		return nil
	},
}

func init() {
	stepCmd.Flags().IntVar(&stepCount, "count", 0, "Number of steps, 0 steps until the end of notes.")
	stepCmd.Flags().DurationVar(&stepEvery, "every", 500*time.Millisecond, "Interval between steps.")
	exportCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output .mid file path, - for stdout.")
}

// runSteps sends one step per interval until count steps are sent, or the
// end of notes is reached when count is 0. Silence is forced on every exit,
// including cancellation. Empty notes send nothing.
func runSteps(ctx context.Context, p *player.Player, notes string, count int, every time.Duration) (err error) {
	if notes == "" {
		return nil
	}
	var stepper player.Stepper
	var sendErr error
	defer func() {
		ferr := p.Sender.Force(p.Channel, 0)
		if err == nil {
			err = ferr
		} else if ferr != nil {
			glog.Warningf("silence channel %s: %v", p.Channel, ferr)
		}
	}()
	loop := fx.NewLoop(every).AddController(fx.ControlFunc(func(cc fx.ControlContext) error {
		step, err := p.Step(&stepper, notes)
		if err != nil {
			sendErr = err
			cc.Stop()
			return err
		}
		glog.V(4).Infof("step %d: %+v", stepper.Index(), step)
		if (count <= 0 && step.End) || (count > 0 && cc.Tick()+1 >= count) {
			cc.Stop()
		}
		return nil
	}))
	if err = loop.Run(ctx); err != nil {
		return err
	}
	return sendErr
}
