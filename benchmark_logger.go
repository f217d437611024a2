package sgemmbench

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/LynnColeArt/sgemmbench/compute"
)

// RunRecord captures one benchmark invocation. GFLOPS is null in the JSON
// when the average time was zero.
type RunRecord struct {
	Session        string    `json:"session"`
	Timestamp      time.Time `json:"timestamp"`
	Backend        string    `json:"backend"`
	Threads        int       `json:"threads"`
	Rows           int       `json:"rows"`
	Inner          int       `json:"inner"`
	Cols           int       `json:"cols"`
	Runs           int       `json:"runs"`
	SamplesNs      []int64   `json:"samples_ns"`
	AverageSeconds float64   `json:"avg_seconds"`
	Flops          int64     `json:"flops"`
	GFLOPS         *float64  `json:"gflops"`
	CPU            string    `json:"cpu"`
	Error          string    `json:"error,omitempty"`
}

// RunRecorder appends run records to a JSON file named after its session
type RunRecorder struct {
	mu      sync.Mutex
	session string
	path    string
	records []RunRecord
}

// NewRunRecorder starts a session in dir, creating dir if needed.
func NewRunRecorder(dir string) (*RunRecorder, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, NewIOError("NewRunRecorder", "creating record directory", err)
	}
	session := uuid.NewString()
	rr := &RunRecorder{
		session: session,
		path:    filepath.Join(dir, session+".json"),
	}
	if err := rr.write(nil); err != nil {
		return nil, err
	}
	return rr, nil
}

// Session returns the session identifier.
func (rr *RunRecorder) Session() string { return rr.session }

// Path returns the file the records are written to.
func (rr *RunRecorder) Path() string { return rr.path }

// Record appends the outcome of a benchmark and writes the file.
func (rr *RunRecorder) Record(res *Result) error {
	samples := make([]int64, len(res.Samples))
	for i, s := range res.Samples {
		samples[i] = s.Nanoseconds()
	}
	return rr.append(RunRecord{
		Backend:        res.Backend,
		Threads:        res.Threads,
		Rows:           res.A.Rows,
		Inner:          res.A.Cols,
		Cols:           res.B.Cols,
		Runs:           len(res.Samples),
		SamplesNs:      samples,
		AverageSeconds: res.AverageSeconds,
		Flops:          res.Flops,
		GFLOPS:         finite(res.GFLOPS),
	})
}

// RecordFailure appends a failed invocation.
func (rr *RunRecorder) RecordFailure(cfg Config, runErr error) error {
	return rr.append(RunRecord{
		Backend: cfg.Backend,
		Threads: cfg.Threads,
		Rows:    cfg.Size,
		Inner:   cfg.Size,
		Cols:    cfg.Size,
		Runs:    cfg.Runs,
		Error:   runErr.Error(),
	})
}

func (rr *RunRecorder) append(rec RunRecord) error {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	rec.Session = rr.session
	rec.Timestamp = time.Now()
	rec.CPU = compute.CPUInfo()

	// Written to disk immediately so a crash keeps earlier runs. A record
	// that cannot be written is not kept.
	records := append(rr.records[:len(rr.records):len(rr.records)], rec)
	if err := rr.write(records); err != nil {
		return err
	}
	rr.records = records
	return nil
}

// write replaces the session file with records
func (rr *RunRecorder) write(records []RunRecord) error {
	if records == nil {
		records = []RunRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}
	if err := os.WriteFile(rr.path, data, 0o644); err != nil {
		return NewIOError("RunRecorder", "writing "+rr.path, err)
	}
	return nil
}

func finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

// ReadRunRecords loads a session file written by RunRecorder.
func ReadRunRecords(path string) ([]RunRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewIOError("ReadRunRecords", "reading "+path, err)
	}
	var records []RunRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return records, nil
}
