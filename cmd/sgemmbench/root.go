package main

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app carries the state shared by all subcommands
type app struct {
	out    io.Writer
	errOut io.Writer

	logLevel string
	logger   zerolog.Logger
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut, logger: zerolog.Nop()}
	opts := defaultRunOptions()

	root := &cobra.Command{
		Use:   "sgemmbench",
		Short: "Measure single-precision matrix multiply throughput",
		Long: `sgemmbench multiplies two random N×N float32 matrices a fixed number of
times, prints the average throughput in GFLOPS and writes A, B and the
last product C to text files in the data directory.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setupLogger()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(opts)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&a.logLevel, "log-level", zerolog.InfoLevel.String(),
		"Log level for diagnostics on stderr (trace, debug, info, warn, error, disabled)")
	opts.addFlags(root)

	root.AddCommand(
		newRunCmd(a),
		newVerifyCmd(a),
		newVersionCmd(a),
	)
	return root
}

func (a *app) setupLogger() error {
	level, err := zerolog.ParseLevel(a.logLevel)
	if err != nil {
		return err
	}
	a.logger = zerolog.New(zerolog.ConsoleWriter{Out: a.errOut, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger()
	return nil
}
