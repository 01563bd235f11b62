package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func RootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "finsearch",
		Short: "Deep Q-learning trader over single-stock close prices",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// .env values fill in anything not set on the command line
			godotenv.Load()
			UpdateFlags(cmd)
			flags.Record()
		},
	}
	AddFlags(cmd)

	cmd.AddCommand(
		FetchCommand(),
		TrainCommand(),
		ForecastCommand(),
	)

	return cmd
}

// signalContext returns a context cancelled on interrupt or when the
// returned done function is called.
func signalContext() (context.Context, func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt) // channel for interrupts from os

	doneCh := make(chan struct{}) // channel for done signal from application

	ctx, cancel := context.WithCancel(context.Background())
	go func() { // start a go-routine
		select { // can wait on multiple channels
		case <-sigCh:
		case <-doneCh:
		}
		cancel()
	}()
	return ctx, func() { close(doneCh) }
}
