package sgemmbench

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/LynnColeArt/sgemmbench/compute"
)

// Clock supplies the timestamps around each multiply.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// Now returns time.Now, whose reading carries the monotonic clock; Sub
// between two readings is unaffected by wall-clock adjustments.
func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the default monotonic clock.
var SystemClock Clock = systemClock{}

// Benchmark times repeated products of the same operands.
type Benchmark struct {
	Backend compute.Backend
	Runs    int

	// Clock defaults to SystemClock
	Clock Clock
	// Logger defaults to a disabled logger
	Logger *zerolog.Logger
}

// Result holds the timing of a benchmark and the matrices involved.
type Result struct {
	Backend string
	Threads int

	Samples []time.Duration
	Total   time.Duration
	// AverageSeconds is Total in seconds divided by the number of runs
	AverageSeconds float64
	Flops          int64
	GFLOPS         float64

	A, B *Matrix
	// C is the product from the last run
	C *Matrix
}

// Run multiplies a by b exactly Runs times, timing each product including
// the allocation of its result. The first failure aborts the loop.
func (bm *Benchmark) Run(a, b *Matrix) (*Result, error) {
	if bm.Backend == nil {
		return nil, NewInvalidArgError("Benchmark", "no backend")
	}
	if bm.Runs < 1 {
		return nil, NewInvalidArgError("Benchmark", fmt.Sprintf("runs must be positive, got %d", bm.Runs))
	}
	if a.Cols != b.Rows {
		return nil, fmt.Errorf("%dx%d times %dx%d: %w", a.Rows, a.Cols, b.Rows, b.Cols, ErrShapeMismatch)
	}
	clock := bm.Clock
	if clock == nil {
		clock = SystemClock
	}
	logger := bm.Logger
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	res := &Result{
		Backend: bm.Backend.Name(),
		Threads: bm.Backend.Threads(),
		Samples: make([]time.Duration, 0, bm.Runs),
		Flops:   FlopCount(a.Rows, a.Cols, b.Cols),
		A:       a,
		B:       b,
	}

	for i := 0; i < bm.Runs; i++ {
		start := clock.Now()
		c, err := Multiply(bm.Backend, a, b)
		end := clock.Now()
		if err != nil {
			return nil, fmt.Errorf("run %d of %d: %w", i+1, bm.Runs, err)
		}
		elapsed := end.Sub(start)
		res.Samples = append(res.Samples, elapsed)
		res.Total += elapsed
		res.C = c

		logger.Debug().
			Int("run", i+1).
			Dur("elapsed", elapsed).
			Float64("gflops", GFLOPS(res.Flops, elapsed.Seconds())).
			Msg("multiply finished")
	}

	res.AverageSeconds = res.Total.Seconds() / float64(bm.Runs)
	res.GFLOPS = GFLOPS(res.Flops, res.AverageSeconds)

	logger.Info().
		Str("backend", res.Backend).
		Int("threads", res.Threads).
		Int("runs", bm.Runs).
		Dur("total", res.Total).
		Float64("avg_seconds", res.AverageSeconds).
		Float64("gflops", res.GFLOPS).
		Msg("benchmark complete")

	return res, nil
}

// RunConfig builds the configured backend, generates fresh random operands
// and runs the benchmark. The backend is closed before returning.
func RunConfig(cfg Config, logger *zerolog.Logger) (res *Result, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	backend, err := compute.New(cfg.Backend, cfg.Threads)
	if err != nil {
		if errors.Is(err, compute.ErrNotImplemented) {
			return nil, NewNotImplementedError("RunConfig", "backend "+cfg.Backend, err)
		}
		return nil, &BenchError{Type: ErrTypeInvalidArg, Op: "RunConfig", Message: "backend " + cfg.Backend, Err: err}
	}
	defer func() {
		if cerr := backend.Close(); cerr != nil && err == nil {
			err = NewExecutionError("RunConfig", "closing backend", cerr)
		}
	}()

	logger.Info().
		Str("backend", backend.Name()).
		Int("threads", backend.Threads()).
		Int("size", cfg.Size).
		Int("runs", cfg.Runs).
		Str("cpu", compute.CPUInfo()).
		Msg("starting benchmark")

	gen := NewGenerator()
	a, err := gen.Matrix(cfg.Size, cfg.Size)
	if err != nil {
		return nil, err
	}
	b, err := gen.Matrix(cfg.Size, cfg.Size)
	if err != nil {
		return nil, err
	}

	bench := Benchmark{Backend: backend, Runs: cfg.Runs, Logger: logger}
	return bench.Run(a, b)
}
