// Package view turns snapshots into table rows.
package view

import (
	"fmt"
	"strconv"
	"strings"

	"taskview/models"

	"github.com/pkg/errors"
)

// Kind selects which table is shown.
type Kind int

const (
	Processes Kind = iota
	Services
	Containers
)

var kindNames = []string{"processes", "services", "containers"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Title is the tab label.
func (k Kind) Title() string {
	s := k.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseKind accepts the names above, case-insensitively.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(i), nil
		}
	}
	return Processes, errors.Errorf("unknown view %q", s)
}

// Column describes one table column.
type Column struct {
	Title   string
	Width   int
	Numeric bool
}

var columns = map[Kind][]Column{
	Processes: {
		{Title: "PID", Width: 8, Numeric: true},
		{Title: "Name", Width: 24},
		{Title: "Memory", Width: 12, Numeric: true},
		{Title: "CPU", Width: 9, Numeric: true},
		{Title: "Local IP", Width: 16},
		{Title: "Local Port", Width: 10, Numeric: true},
		{Title: "Remote IP", Width: 16},
		{Title: "Remote Port", Width: 11, Numeric: true},
	},
	Services: {
		{Title: "Service Name", Width: 28},
		{Title: "Display Name", Width: 44},
		{Title: "Status", Width: 10},
		{Title: "Start Type", Width: 10},
	},
	Containers: {
		{Title: "ID", Width: 12},
		{Title: "Name", Width: 24},
		{Title: "Image", Width: 30},
		{Title: "State", Width: 10},
		{Title: "Status", Width: 24},
	},
}

// Columns returns a copy of the column set of k.
func Columns(k Kind) []Column {
	return append([]Column(nil), columns[k]...)
}

// ColumnIndex finds a column by title, ignoring case and spaces, or by
// its zero-based position.
func ColumnIndex(k Kind, name string) (int, error) {
	cols := columns[k]
	if n, err := strconv.Atoi(name); err == nil {
		if n >= 0 && n < len(cols) {
			return n, nil
		}
		return 0, errors.Errorf("column %d out of range", n)
	}
	key := squash(name)
	for i, c := range cols {
		if squash(c.Title) == key {
			return i, nil
		}
	}
	return 0, errors.Errorf("no column %q in %s", name, k)
}

func squash(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, " ", ""))
}

// FormatMemory renders bytes as mebibytes with two decimals.
func FormatMemory(bytes uint64) string {
	return fmt.Sprintf("%.2f MB", float64(bytes)/(1024*1024))
}

// FormatCPU renders a percentage with two decimals.
func FormatCPU(percent float64) string {
	return fmt.Sprintf("%.2f%%", percent)
}

func formatPort(p uint32) string {
	if p == 0 {
		return ""
	}
	return strconv.FormatUint(uint64(p), 10)
}

// ProcessRows renders one row per process. Processes without a
// connection get empty endpoint cells.
func ProcessRows(procs []models.ProcessInfo) [][]string {
	rows := make([][]string, 0, len(procs))
	for _, p := range procs {
		row := []string{
			strconv.Itoa(int(p.PID)),
			p.Name,
			FormatMemory(p.RSS),
			FormatCPU(p.CPU),
			"", "", "", "",
		}
		if !p.Conn.IsZero() {
			row[4] = p.Conn.LocalIP
			row[5] = formatPort(p.Conn.LocalPort)
			row[6] = p.Conn.RemoteIP
			row[7] = formatPort(p.Conn.RemotePort)
		}
		rows = append(rows, row)
	}
	return rows
}

func ServiceRows(services []models.ServiceInfo) [][]string {
	rows := make([][]string, 0, len(services))
	for _, s := range services {
		rows = append(rows, []string{s.Name, s.DisplayName, s.Status, s.StartType})
	}
	return rows
}

func ContainerRows(containers []models.ContainerInfo) [][]string {
	rows := make([][]string, 0, len(containers))
	for _, c := range containers {
		rows = append(rows, []string{c.ID, c.Name, c.Image, c.State, c.Status})
	}
	return rows
}

// SummaryLines renders the performance panel.
func SummaryLines(s models.Summary) (cpu, memory string) {
	cpu = FormatCPU(s.CPUPercent)
	memory = fmt.Sprintf("Used: %.2f MB, Total: %.2f MB",
		float64(s.MemoryUsed)/(1024*1024), float64(s.MemoryTotal)/(1024*1024))
	return cpu, memory
}
