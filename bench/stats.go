package bench

import (
	"runtime"
	"time"

	"github.com/klauspost/cpuid/v2"
)

// Stats describes the machine the benchmarks ran on.
type Stats struct {
	Time          time.Time `json:"time"`
	CPUBrandName  string    `json:"cpu_brand_name"`
	LogicalCores  int       `json:"logical_cores"`
	PhysicalCores int       `json:"physical_cores"`
	GoVersion     string    `json:"go_version"`
	MaxProcs      int       `json:"max_procs"`
}

// FetchStats collects the stats of the current machine.
func FetchStats() Stats {
	return Stats{
		Time:          time.Now(),
		CPUBrandName:  cpuid.CPU.BrandName,
		LogicalCores:  cpuid.CPU.LogicalCores,
		PhysicalCores: cpuid.CPU.PhysicalCores,
		GoVersion:     runtime.Version(),
		MaxProcs:      runtime.GOMAXPROCS(0),
	}
}
