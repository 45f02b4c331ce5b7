package config

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// DefaultWorkers returns the number of logical CPUs
func DefaultWorkers() int {
	counts, err := cpu.Counts(true)
	if err != nil || counts < 1 {
		return runtime.NumCPU()
	}
	return counts
}

// SystemInfo describes the machine a render runs on
type SystemInfo struct {
	CPUName  string
	Cores    int
	ClockGHz float64
	TotalGB  uint64
}

// String formats the info for logs
func (s SystemInfo) String() string {
	return fmt.Sprintf("%s (%d logical cores @ %.2f GHz), %d GB RAM", s.CPUName, s.Cores, s.ClockGHz, s.TotalGB)
}

// GetSystemInfo collects CPU and memory information
func GetSystemInfo() (SystemInfo, error) {
	cpuInfo, err := cpu.Info()
	if err != nil {
		return SystemInfo{}, fmt.Errorf("failed to read CPU info: %w", err)
	}
	if len(cpuInfo) == 0 {
		return SystemInfo{}, fmt.Errorf("no CPU information available")
	}

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		return SystemInfo{}, fmt.Errorf("failed to read memory info: %w", err)
	}

	return SystemInfo{
		CPUName:  cpuInfo[0].ModelName,
		Cores:    DefaultWorkers(),
		ClockGHz: cpuInfo[0].Mhz / 1000, // Convert MHz to GHz
		TotalGB:  memInfo.Total / (1024 * 1024 * 1024),
	}, nil
}
