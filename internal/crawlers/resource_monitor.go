package crawlers

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// ResourceMonitor sizes worker pools from system memory and CPU, and warns
// before expensive launches when the machine is short on either.
type ResourceMonitor struct {
	config ResourceMonitorConfig

	mu            sync.RWMutex
	totalMemory   uint64
	availMemory   uint64
	cpuUsage      float64
	lastSampledAt time.Time
}

// ResourceMonitorConfig holds the thresholds. Memory values are bytes.
type ResourceMonitorConfig struct {
	SafetyThreshold  int64 // free memory to leave untouched
	CPULoadThreshold int   // percent; >= 200 disables the CPU check
	MaxWorkersLimit  int
	WorkerMemory     int64 // estimated memory per worker
}

// DefaultResourceMonitorConfig suits image downloads.
func DefaultResourceMonitorConfig() ResourceMonitorConfig {
	return ResourceMonitorConfig{
		SafetyThreshold:  500 * 1024 * 1024,
		CPULoadThreshold: 90,
		MaxWorkersLimit:  8,
		WorkerMemory:     20 * 1024 * 1024,
	}
}

// NewResourceMonitor creates a monitor and takes a first sample.
func NewResourceMonitor(config ResourceMonitorConfig) *ResourceMonitor {
	if config.WorkerMemory <= 0 {
		config.WorkerMemory = 20 * 1024 * 1024
	}
	if config.MaxWorkersLimit <= 0 {
		config.MaxWorkersLimit = 8
	}
	rm := &ResourceMonitor{config: config}
	rm.Sample()
	return rm
}

// Sample refreshes memory and CPU readings. Failed readings fall back to
// 4GB total memory and 0% CPU.
func (rm *ResourceMonitor) Sample() {
	var total, avail uint64
	vm, err := mem.VirtualMemory()
	if err != nil {
		log.Warn().Err(err).Msg("reading system memory failed, assuming 4GB")
		total = 4 * 1024 * 1024 * 1024
		avail = total / 2
	} else {
		total = vm.Total
		avail = vm.Available
	}

	usage := 0.0
	if pct, err := cpu.Percent(100*time.Millisecond, false); err != nil {
		log.Warn().Err(err).Msg("reading CPU usage failed")
	} else if len(pct) > 0 {
		usage = pct[0]
	}

	rm.mu.Lock()
	rm.totalMemory = total
	rm.availMemory = avail
	rm.cpuUsage = usage
	rm.lastSampledAt = time.Now()
	rm.mu.Unlock()
}

// CalculateMaxWorkers returns a worker count between 1 and MaxWorkersLimit
// bounded by spare memory and the number of CPUs.
func (rm *ResourceMonitor) CalculateMaxWorkers() int {
	rm.mu.RLock()
	avail := int64(rm.availMemory)
	rm.mu.RUnlock()

	byMemory := 1
	if surplus := avail - rm.config.SafetyThreshold; surplus > 0 {
		byMemory = int(surplus / rm.config.WorkerMemory)
	}

	result := min(byMemory, runtime.NumCPU(), rm.config.MaxWorkersLimit)
	return max(result, 1)
}

// CheckResourceAvailability reports whether there is room for more work and,
// if not, why.
func (rm *ResourceMonitor) CheckResourceAvailability() (bool, string) {
	rm.mu.RLock()
	avail := int64(rm.availMemory)
	usage := rm.cpuUsage
	rm.mu.RUnlock()

	if avail < rm.config.SafetyThreshold {
		return false, fmt.Sprintf("low memory (%dMB available)", avail/(1024*1024))
	}
	if rm.config.CPULoadThreshold < 200 && usage > float64(rm.config.CPULoadThreshold) {
		return false, fmt.Sprintf("high CPU load (%.1f%%)", usage)
	}
	return true, ""
}

// MemoryStatus is a snapshot for logging.
type MemoryStatus struct {
	TotalMemory     uint64
	AvailableMemory uint64
	CPUUsage        float64
	SampledAt       time.Time
}

// Status returns the latest sample.
func (rm *ResourceMonitor) Status() MemoryStatus {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return MemoryStatus{
		TotalMemory:     rm.totalMemory,
		AvailableMemory: rm.availMemory,
		CPUUsage:        rm.cpuUsage,
		SampledAt:       rm.lastSampledAt,
	}
}
