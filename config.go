// Package sgemmbench configuration
package sgemmbench

import (
	"fmt"

	"github.com/LynnColeArt/sgemmbench/compute"
)

// Problem defaults
const (
	// Operand dimension; both matrices are DefaultSize×DefaultSize
	DefaultSize = 2048

	// Number of timed multiplies
	DefaultRuns = 10

	// Backend threads; one thread measures single-core throughput
	DefaultThreads = 1

	// Backend used when none is named
	DefaultBackend = compute.NameNative
)

// Persistence defaults
const (
	// Output directory, relative to the working directory
	DefaultDataDir = "data"

	// Digits after the decimal point in saved matrices
	ValueDigits = 6

	FileA = "A.txt"
	FileB = "B.txt"
	FileC = "C.txt"
)

// Config describes one benchmark invocation.
type Config struct {
	Size    int
	Runs    int
	Threads int
	Backend string

	// DataDir receives A.txt, B.txt and C.txt when Save is set.
	DataDir string
	// CreateDataDir creates DataDir if missing. When false a missing
	// directory is an error.
	CreateDataDir bool
	Save          bool
}

// DefaultConfig returns the standard 2048×2048, ten-run, single-thread setup.
func DefaultConfig() Config {
	return Config{
		Size:    DefaultSize,
		Runs:    DefaultRuns,
		Threads: DefaultThreads,
		Backend: DefaultBackend,
		DataDir: DefaultDataDir,
		Save:    true,
	}
}

// Validate checks the numeric fields.
func (c Config) Validate() error {
	if c.Size < 1 {
		return NewInvalidArgError("Config", fmt.Sprintf("size must be positive, got %d", c.Size))
	}
	if c.Runs < 1 {
		return NewInvalidArgError("Config", fmt.Sprintf("runs must be positive, got %d", c.Runs))
	}
	if c.Threads < 1 {
		return NewInvalidArgError("Config", fmt.Sprintf("threads must be positive, got %d", c.Threads))
	}
	if c.Save && c.DataDir == "" {
		return NewInvalidArgError("Config", "data directory must be set when saving")
	}
	return nil
}
