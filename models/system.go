package models

// Summary is the performance panel above the table.
type Summary struct {
	CPUPercent  float64 `json:"cpuPercent"` // mean of the per-cpu percentages
	MemoryUsed  uint64  `json:"memoryUsed"`
	MemoryTotal uint64  `json:"memoryTotal"`
}
