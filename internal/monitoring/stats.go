// Package monitoring collects process and host stats for the ops
// status endpoint.
package monitoring

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	"gym-frontend/internal/backend"
)

type Collector struct {
	client    *backend.Client
	startedAt time.Time
}

type OpsStats struct {
	BackendStatus string  `json:"backend_status"`
	ResponseTime  int64   `json:"response_time_ms"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	MemoryUsed    string  `json:"memory_used"`
	MemoryTotal   string  `json:"memory_total"`
	DiskPercent   float64 `json:"disk_percent"`
	DiskUsed      string  `json:"disk_used"`
	DiskTotal     string  `json:"disk_total"`
	Uptime        string  `json:"uptime"`
}

func NewCollector(client *backend.Client) *Collector {
	return &Collector{client: client, startedAt: time.Now()}
}

func (c *Collector) Collect() OpsStats {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := c.client.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	backendStatus := "healthy"
	if err != nil {
		backendStatus = "unhealthy"
	}

	cpuPercents, _ := cpu.Percent(time.Second, false)
	cpuPercent := 0.0
	if len(cpuPercents) > 0 {
		cpuPercent = cpuPercents[0]
	}

	memStats, _ := mem.VirtualMemory()
	diskStats, _ := disk.Usage("/")

	return OpsStats{
		BackendStatus: backendStatus,
		ResponseTime:  responseTime,
		CPUPercent:    cpuPercent,
		MemoryPercent: memStats.UsedPercent,
		MemoryUsed:    formatBytes(memStats.Used),
		MemoryTotal:   formatBytes(memStats.Total),
		DiskPercent:   diskStats.UsedPercent,
		DiskUsed:      formatBytes(diskStats.Used),
		DiskTotal:     formatBytes(diskStats.Total),
		Uptime:        formatUptime(int(time.Since(c.startedAt).Seconds())),
	}
}

func formatBytes(bytes uint64) string {
	gb := float64(bytes) / (1024 * 1024 * 1024)
	if gb < 1 {
		mb := float64(bytes) / (1024 * 1024)
		return fmt.Sprintf("%.1f MB", mb)
	}
	return fmt.Sprintf("%.1f GB", gb)
}

func formatUptime(seconds int) string {
	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh", days, hours)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
