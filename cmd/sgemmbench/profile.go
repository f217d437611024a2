package main

import (
	"os"
	"runtime/pprof"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/rs/zerolog"

	"github.com/LynnColeArt/sgemmbench"
)

// cpuProfile wraps a running CPU profile. It runs until the process exits
// through atexit; Stop may be called more than once.
type cpuProfile struct {
	path   string
	f      *os.File
	logger *zerolog.Logger
	once   sync.Once
}

func startCPUProfile(path string, logger *zerolog.Logger) (*cpuProfile, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, sgemmbench.NewIOError("cpuprofile", "creating "+path, err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, sgemmbench.NewExecutionError("cpuprofile", "starting profile", err)
	}
	return &cpuProfile{path: path, f: f, logger: logger}, nil
}

func (p *cpuProfile) Stop() {
	p.once.Do(func() {
		pprof.StopCPUProfile()
		if err := p.f.Close(); err != nil {
			p.logger.Warn().Err(err).Str("path", p.path).Msg("closing profile")
			return
		}
		samples, dur, err := summarizeProfile(p.path)
		if err != nil {
			p.logger.Warn().Err(err).Str("path", p.path).Msg("reading profile")
			return
		}
		p.logger.Info().
			Str("path", p.path).
			Int("samples", samples).
			Dur("duration", dur).
			Msg("cpu profile written")
	})
}

// summarizeProfile returns the sample count and wall duration of a profile.
func summarizeProfile(path string) (int, time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	prof, err := profile.Parse(f)
	if err != nil {
		return 0, 0, err
	}
	return len(prof.Sample), time.Duration(prof.DurationNanos), nil
}
