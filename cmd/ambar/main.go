package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/robotalks/ambar.go/pkg/cli/sh"
	"github.com/robotalks/ambar.go/pkg/l0/env"
	"github.com/robotalks/ambar.go/pkg/player"
)

var rootCmd = &cobra.Command{
	Use:   "ambar",
	Short: "Play ABC notation on a microcontroller over the L0 link",
	Long: `ambar sends note frequencies to a microcontroller as L0 frames.

Examples:
  ambar play "GABc d2 z2 |"
  ambar step --every 250ms "CDEF"
  ambar send a 440
  ambar listen
  ambar export "GABc" -o tune.mid
  ambar shell`,
	SilenceUsage: true,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		// marks flag.CommandLine parsed for glog, values are already set by cobra
		return flag.CommandLine.Parse(nil)
	},
}

func init() {
	env.SetupFlags()
	player.SetupFlags()
	sh.SetupFlags()
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	rootCmd.AddCommand(playCmd, stepCmd, sendCmd, listenCmd, exportCmd, shellCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
