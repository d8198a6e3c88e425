package tui

import (
	"fmt"
	"strings"
	"time"

	"taskview/models"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
)

type detailTab int

const (
	filesTab detailTab = iota
	libsTab
)

// detailPane shows the open files and libraries of one process. Panes
// live in a paneRegistry so reopening a pid brings back the same pane.
type detailPane struct {
	pid     int32
	name    string
	started time.Time
	tab     detailTab

	files    table.Model
	libs     table.Model
	filesErr error
	libsErr  error
	err      error

	loading bool
	loaded  bool
}

func newDetailPane(pid int32, name string) *detailPane {
	return &detailPane{
		pid:   pid,
		name:  name,
		files: newPathTable(),
		libs:  newPathTable(),
	}
}

func newPathTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{{Title: "Path", Width: 76}}),
		table.WithFocused(true),
		table.WithHeight(20),
	)
	t.SetStyles(tableStyles())
	return t
}

func (d *detailPane) resize(width, height int) {
	pathWidth := width - 4
	if pathWidth < 20 {
		pathWidth = 76
	}
	for _, t := range []*table.Model{&d.files, &d.libs} {
		t.SetColumns([]table.Column{{Title: "Path", Width: pathWidth}})
		t.SetHeight(height)
	}
}

func (d *detailPane) apply(details models.ProcessDetails, err error) {
	d.loading = false
	d.loaded = true
	d.err = err
	if err != nil {
		return
	}
	if details.Name != "" {
		d.name = details.Name
	}
	d.started = details.Started
	d.filesErr = details.FilesErr
	d.libsErr = details.LibsErr
	d.files.SetRows(pathRows(details.Files))
	d.libs.SetRows(pathRows(details.Libraries))
}

func pathRows(paths []string) []table.Row {
	rows := make([]table.Row, 0, len(paths))
	for _, p := range paths {
		rows = append(rows, table.Row{p})
	}
	return rows
}

func (d *detailPane) toggleTab() {
	if d.tab == filesTab {
		d.tab = libsTab
	} else {
		d.tab = filesTab
	}
}

func (d *detailPane) active() *table.Model {
	if d.tab == libsTab {
		return &d.libs
	}
	return &d.files
}

func (d *detailPane) update(msg tea.Msg) tea.Cmd {
	t := d.active()
	var cmd tea.Cmd
	*t, cmd = t.Update(msg)
	return cmd
}

func (d *detailPane) view() string {
	var b strings.Builder

	title := fmt.Sprintf("Process Details - PID: %d", d.pid)
	if d.name != "" {
		title += " (" + d.name + ")"
	}
	b.WriteString(titleStyle.Render(title))
	if !d.started.IsZero() {
		b.WriteString(mutedStyle.Render("  started " + humanize.Time(d.started)))
	}
	b.WriteString("\n\n")

	tabs := []struct {
		tab   detailTab
		label string
		count int
	}{
		{filesTab, "Files", len(d.files.Rows())},
		{libsTab, "Libraries", len(d.libs.Rows())},
	}
	for _, t := range tabs {
		style := inactiveTab
		if t.tab == d.tab {
			style = activeTab
		}
		b.WriteString(style.Render(fmt.Sprintf("%s (%d)", t.label, t.count)) + " ")
	}
	b.WriteString("\n\n")

	tabErr := d.filesErr
	if d.tab == libsTab {
		tabErr = d.libsErr
	}

	switch {
	case d.loading && !d.loaded:
		b.WriteString("Loading...\n")
	case d.err != nil:
		b.WriteString(errorStyle.Render(d.err.Error()) + "\n")
	case tabErr != nil:
		b.WriteString(errorStyle.Render(tabErr.Error()) + "\n")
	default:
		b.WriteString(baseStyle.Render(d.active().View()) + "\n")
	}

	b.WriteString(mutedStyle.Render("\n  tab: files/libraries • r: reload • esc: close • q: quit") + "\n")
	return b.String()
}

// paneRegistry maps pid to its details pane.
type paneRegistry map[int32]*detailPane

// prune drops panes whose process is gone and returns their pids.
func (r paneRegistry) prune(alive map[int32]struct{}) []int32 {
	var gone []int32
	for pid := range r {
		if _, ok := alive[pid]; !ok {
			gone = append(gone, pid)
			delete(r, pid)
		}
	}
	return gone
}
