package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/LynnColeArt/sgemmbench"
	"github.com/LynnColeArt/sgemmbench/compute"
)

type runOptions struct {
	cfg        sgemmbench.Config
	noSave     bool
	recordDir  string
	cpuProfile string
}

func defaultRunOptions() *runOptions {
	return &runOptions{cfg: sgemmbench.DefaultConfig()}
}

func (o *runOptions) addFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&o.cfg.Size, "size", o.cfg.Size, "Dimension N of the N×N operands")
	f.IntVar(&o.cfg.Runs, "runs", o.cfg.Runs, "Number of timed multiplies")
	f.IntVar(&o.cfg.Threads, "threads", o.cfg.Threads, "Threads the backend may use")
	f.StringVar(&o.cfg.Backend, "backend", o.cfg.Backend, fmt.Sprintf("Multiply backend %v", compute.Names()))
	f.StringVar(&o.cfg.DataDir, "data-dir", o.cfg.DataDir, "Directory receiving A.txt, B.txt and C.txt")
	f.BoolVar(&o.cfg.CreateDataDir, "create-data-dir", o.cfg.CreateDataDir, "Create the data directory if it does not exist")
	f.BoolVar(&o.noSave, "no-save", false, "Skip writing the matrices")
	f.StringVar(&o.recordDir, "record-dir", "", "Append a JSON run record to a session file in this directory")
	f.StringVar(&o.cpuProfile, "cpuprofile", "", "Write a CPU profile of the benchmark to this file")
}

// onExit registers handlers run by atexit.Exit when main returns its code.
var onExit = func(handler func()) { atexit.Register(handler) }

func newRunCmd(a *app) *cobra.Command {
	opts := defaultRunOptions()
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the benchmark (default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(opts)
		},
	}
	opts.addFlags(cmd)
	return cmd
}

func (a *app) run(o *runOptions) error {
	cfg := o.cfg
	cfg.Save = !o.noSave
	if err := cfg.Validate(); err != nil {
		return err
	}

	var recorder *sgemmbench.RunRecorder
	if o.recordDir != "" {
		var err error
		if recorder, err = sgemmbench.NewRunRecorder(o.recordDir); err != nil {
			return err
		}
		a.logger.Debug().Str("path", recorder.Path()).Msg("recording runs")
	}

	if o.cpuProfile != "" {
		prof, err := startCPUProfile(o.cpuProfile, &a.logger)
		if err != nil {
			return err
		}
		onExit(prof.Stop)
	}

	res, err := sgemmbench.RunConfig(cfg, &a.logger)
	if err != nil {
		if recorder != nil {
			if rerr := recorder.RecordFailure(cfg, err); rerr != nil {
				a.logger.Warn().Err(rerr).Msg("recording failure")
			}
		}
		return err
	}

	fmt.Fprintf(a.out, "GFLOPS:  %v\n", res.GFLOPS)

	if recorder != nil {
		if err := recorder.Record(res); err != nil {
			a.logger.Warn().Err(err).Str("path", recorder.Path()).Msg("recording run")
		}
	}

	if !cfg.Save {
		return nil
	}
	if err := sgemmbench.SaveOperands(cfg.DataDir, cfg.CreateDataDir, res.A, res.B, res.C); err != nil {
		return err
	}
	a.logger.Info().Str("dir", cfg.DataDir).Msg("matrices written")
	return nil
}
