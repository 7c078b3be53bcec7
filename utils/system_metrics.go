package utils

import (
	"log"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// SystemSnapshot is the health endpoint payload.
type SystemSnapshot struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	MemoryUsedMB  uint64  `json:"memory_used_mb"`
	UptimeSeconds uint64  `json:"uptime_seconds"`
}

// GetCPUUsage returns the current CPU usage as a percentage
func GetCPUUsage() float64 {
	percentage, err := cpu.Percent(time.Second, false)
	if err != nil {
		log.Printf("Error getting CPU usage: %v", err)
		return 0
	}
	if len(percentage) > 0 {
		return percentage[0]
	}
	return 0
}

// GetSystemSnapshot collects a point-in-time view of host resources.
func GetSystemSnapshot() SystemSnapshot {
	snapshot := SystemSnapshot{CPUPercent: GetCPUUsage()}

	if vm, err := mem.VirtualMemory(); err != nil {
		log.Printf("Error getting memory usage: %v", err)
	} else {
		snapshot.MemoryPercent = vm.UsedPercent
		snapshot.MemoryUsedMB = vm.Used / 1024 / 1024
	}

	if uptime, err := host.Uptime(); err != nil {
		log.Printf("Error getting host uptime: %v", err)
	} else {
		snapshot.UptimeSeconds = uptime
	}

	return snapshot
}
