package collector

import (
	"context"

	"taskview/models"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Gathers the mean per-cpu usage and RAM usage
func collectSummary(ctx context.Context) (models.Summary, error) {
	var summary models.Summary

	percpu, err := cpu.PercentWithContext(ctx, 0, true)
	if err != nil {
		return summary, errors.Wrap(err, "cpu percent")
	}
	summary.CPUPercent = mean(percpu)

	memInfo, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return summary, errors.Wrap(err, "virtual memory")
	}
	summary.MemoryUsed = memInfo.Used
	summary.MemoryTotal = memInfo.Total

	return summary, nil
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
