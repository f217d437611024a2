package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LynnColeArt/sgemmbench"
	"github.com/LynnColeArt/sgemmbench/compute"
)

var errVerifyFailed = errors.New("product does not match operands")

type verifyOptions struct {
	dataDir string
	relTol  float32
	absTol  float32

	// timing a fresh multiply of the loaded operands
	time    bool
	backend string
	threads int
}

func newVerifyCmd(a *app) *cobra.Command {
	o := &verifyOptions{}
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that the saved C equals the saved A×B",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.verify(cmd, o)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.dataDir, "data-dir", sgemmbench.DefaultDataDir, "Directory holding A.txt, B.txt and C.txt")
	f.Float32Var(&o.relTol, "rel-tol", sgemmbench.ProductTolerance(1).RelTol, "Relative tolerance per element")
	f.Float32Var(&o.absTol, "abs-tol", 0, "Absolute tolerance per element (default scales with the inner dimension)")
	f.BoolVar(&o.time, "time", false, "Also time one multiply of the loaded operands and print GFLOP/s")
	f.StringVar(&o.backend, "backend", sgemmbench.DefaultBackend, fmt.Sprintf("Multiply backend for --time %v", compute.Names()))
	f.IntVar(&o.threads, "threads", sgemmbench.DefaultThreads, "Threads the --time backend may use")
	return cmd
}

func (a *app) verify(cmd *cobra.Command, o *verifyOptions) error {
	ma, mb, mc, err := sgemmbench.LoadOperands(o.dataDir)
	if err != nil {
		return err
	}
	tol := sgemmbench.ProductTolerance(ma.Cols)
	if cmd.Flags().Changed("rel-tol") {
		tol.RelTol = o.relTol
	}
	if cmd.Flags().Changed("abs-tol") {
		tol.AbsTol = o.absTol
	}

	if o.time {
		if err := a.timeProduct(o, ma, mb); err != nil {
			return err
		}
	}

	res, err := sgemmbench.VerifyProduct(ma, mb, mc, tol)
	if err != nil {
		return err
	}
	a.logger.Info().
		Str("dir", o.dataDir).
		Int("rows", mc.Rows).
		Int("cols", mc.Cols).
		Int("mismatches", res.NumErrors).
		Msg("verification finished")

	fmt.Fprintln(a.out, res.String())
	if !res.Passed() {
		return errVerifyFailed
	}
	return nil
}

// timeProduct reports the throughput of a single multiply of a by b.
func (a *app) timeProduct(o *verifyOptions, ma, mb *sgemmbench.Matrix) error {
	backend, err := compute.New(o.backend, o.threads)
	if err != nil {
		if errors.Is(err, compute.ErrNotImplemented) {
			return sgemmbench.NewNotImplementedError("verify", "backend "+o.backend, err)
		}
		return &sgemmbench.BenchError{Type: sgemmbench.ErrTypeInvalidArg, Op: "verify", Message: "backend " + o.backend, Err: err}
	}
	defer backend.Close()

	bench := sgemmbench.Benchmark{Backend: backend, Runs: 1, Logger: &a.logger}
	res, err := bench.Run(ma, mb)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%v GFLOP/s\n", res.GFLOPS)
	return nil
}
