package main

import (
	"fmt"
	"runtime"
	"strconv"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"
)

type SysInfo struct {
	Arch     string
	Hostname string
	Platform string
	CPUCount int
	CPUFreq  float64
	RAM      float64
}

func HostStat() SysInfo {
	hostStat, _ := host.Info()
	cpuStat, _ := cpu.Info()
	vmStat, _ := mem.VirtualMemory()
	info := SysInfo{
		Arch:     runtime.GOARCH,
		Hostname: hostStat.Hostname,
		Platform: hostStat.Platform,
		CPUCount: len(cpuStat),
		RAM:      float64(vmStat.Total) / 1024 / 1024 / 1024,
	}
	if len(cpuStat) > 0 {
		totalFreq := 0.0
		for _, cpu := range cpuStat {
			totalFreq += cpu.Mhz
		}
		info.CPUFreq = totalFreq / float64(len(cpuStat)) * 1000
	}
	return info
}

// HostMeta flattens the host description into output metadata keys.
func (info SysInfo) HostMeta() map[string]string {
	return map[string]string{
		"arch":     info.Arch,
		"hostname": info.Hostname,
		"platform": info.Platform,
		"cpu":      strconv.Itoa(info.CPUCount),
		"freq":     fmt.Sprintf("%v", info.CPUFreq),
		"ram":      fmt.Sprintf("%v", info.RAM),
	}
}
