// Package system raises process resource limits and reports host/runtime
// health for the stats endpoint.
package system

import (
	"log"
	"runtime"
	"syscall"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// InitResourceLimits raises the open-file limit so a large gallery of images
// and page caches can be served without hitting the default soft cap.
func InitResourceLimits() {
	var rLimit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Printf("system: could not read file limit: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	if err := syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Printf("system: could not raise file limit: %v", err)
	}
}

// Report is a point-in-time host and process snapshot.
type Report struct {
	CPUCount      int     `json:"cpuCount"`
	MemTotalMB    uint64  `json:"memTotalMB"`
	MemUsedPct    float64 `json:"memUsedPct"`
	ProcessRSSMB  uint64  `json:"processRssMB"`
	Goroutines    int     `json:"goroutines"`
	OpenSessions  int     `json:"openSessions"`
	GalleryImages int     `json:"galleryImages"`
}

// Collect gathers a Report. Probe failures leave the corresponding fields
// zero rather than failing the endpoint.
func Collect(openSessions, galleryImages int) Report {
	r := Report{
		Goroutines:    runtime.NumGoroutine(),
		OpenSessions:  openSessions,
		GalleryImages: galleryImages,
	}

	if n, err := cpu.Counts(true); err == nil {
		r.CPUCount = n
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		r.MemTotalMB = vm.Total / (1024 * 1024)
		r.MemUsedPct = vm.UsedPercent
	}
	if p, err := process.NewProcess(int32(syscall.Getpid())); err == nil {
		if mi, err := p.MemoryInfo(); err == nil {
			r.ProcessRSSMB = mi.RSS / (1024 * 1024)
		}
	}
	return r
}
