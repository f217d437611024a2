package compute

import (
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"
)

// CPUFeatures tracks the instruction set extensions relevant to sgemm
type CPUFeatures struct {
	Arch       string
	HasSSE4    bool
	HasAVX     bool
	HasAVX2    bool
	HasFMA     bool
	HasAVX512F bool // Foundation
	HasASIMD   bool // arm64 Advanced SIMD
	HasSVE     bool
}

var cpuFeatures CPUFeatures

func init() {
	detectCPUFeatures()
}

// detectCPUFeatures populates the global cpuFeatures struct
func detectCPUFeatures() {
	cpuFeatures = CPUFeatures{
		Arch:       runtime.GOARCH,
		HasSSE4:    cpu.X86.HasSSE41 || cpu.X86.HasSSE42,
		HasAVX:     cpu.X86.HasAVX,
		HasAVX2:    cpu.X86.HasAVX2,
		HasFMA:     cpu.X86.HasFMA,
		HasAVX512F: cpu.X86.HasAVX512F,
		HasASIMD:   cpu.ARM64.HasASIMD,
		HasSVE:     cpu.ARM64.HasSVE,
	}
}

// DetectedCPUFeatures returns the features found at startup.
func DetectedCPUFeatures() CPUFeatures {
	return cpuFeatures
}

// CPUInfo returns a string describing available CPU features
func CPUInfo() string {
	return cpuFeatures.String()
}

func (f CPUFeatures) String() string {
	features := []string{}

	if f.HasSSE4 {
		features = append(features, "SSE4")
	}
	if f.HasAVX {
		features = append(features, "AVX")
	}
	if f.HasAVX2 {
		features = append(features, "AVX2")
	}
	if f.HasFMA {
		features = append(features, "FMA")
	}
	if f.HasAVX512F {
		features = append(features, "AVX512F")
	}
	if f.HasASIMD {
		features = append(features, "ASIMD")
	}
	if f.HasSVE {
		features = append(features, "SVE")
	}

	if len(features) == 0 {
		return f.Arch + ": scalar"
	}
	return f.Arch + ": " + strings.Join(features, ", ")
}
