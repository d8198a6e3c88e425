// Package tui is the interactive terminal front end of taskview.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"taskview/logging"
	"taskview/models"
	"taskview/view"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type inputFocus int

const (
	focusTable inputFocus = iota
	focusFilter
	focusInterval
)

// Options are the start-up settings of the UI.
type Options struct {
	View        view.Kind
	AutoRefresh bool
	Interval    int // seconds
	SnapshotDir string
}

type tickMsg struct{ gen int }

type (
	processesMsg  []models.ProcessInfo
	servicesMsg   []models.ServiceInfo
	containersMsg []models.ContainerInfo
	summaryMsg    models.Summary
)

type detailsMsg struct {
	pid     int32
	details models.ProcessDetails
	err     error
}

type loadErrMsg struct {
	what string
	err  error
}

type actionMsg struct {
	kind view.Kind
	done string
	err  error
}

type statusMsg struct {
	text string
	err  error
}

type pendingAction struct {
	kind view.Kind
	id   string
}

func (p pendingAction) prompt() string {
	switch p.kind {
	case view.Processes:
		return fmt.Sprintf("End task PID %s? [y/n]", p.id)
	case view.Services:
		return fmt.Sprintf("Stop service %s? [y/n]", p.id)
	default:
		return fmt.Sprintf("Stop container %s? [y/n]", p.id)
	}
}

// Model is the bubbletea model of the main window.
type Model struct {
	ctx  context.Context
	src  Source
	ctl  Controller
	opts Options

	kinds    []view.Kind
	kind     view.Kind
	table    table.Model
	filter   textinput.Model
	interval textinput.Model
	focus    inputFocus
	sortCol  int
	sortAsc  bool

	processes  []models.ProcessInfo
	services   []models.ServiceInfo
	containers []models.ContainerInfo
	summary    models.Summary

	auto      bool
	autoEvery time.Duration
	tickGen   int

	confirm *pendingAction
	panes   paneRegistry
	open    *detailPane

	status    string
	statusErr bool
	width     int
	height    int
}

// New builds the main window. The containers tab is only offered when
// src reports docker as available.
func New(ctx context.Context, src Source, ctl Controller, opts Options) Model {
	kinds := []view.Kind{view.Processes, view.Services}
	if src.DockerAvailable() {
		kinds = append(kinds, view.Containers)
	}

	kind := view.Processes
	for _, k := range kinds {
		if k == opts.View {
			kind = k
		}
	}

	filter := textinput.New()
	filter.Placeholder = "Filter..."
	filter.CharLimit = 64
	filter.Width = 30

	interval := textinput.New()
	interval.Placeholder = "Refresh Interval (seconds)"
	interval.CharLimit = 5
	interval.Width = 28
	interval.Validate = digitsOnly
	if opts.Interval > 0 {
		interval.SetValue(strconv.Itoa(opts.Interval))
	}

	m := Model{
		ctx:      ctx,
		src:      src,
		ctl:      ctl,
		opts:     opts,
		kinds:    kinds,
		kind:     kind,
		filter:   filter,
		interval: interval,
		sortAsc:  true,
		panes:    make(paneRegistry),
		auto:     opts.AutoRefresh,
	}
	m.autoEvery = parseInterval(m.interval.Value())
	m.rebuildTable()
	return m
}

func (m Model) Init() tea.Cmd {
	if m.auto {
		return tea.Batch(m.refresh(), tick(m.tickGen, m.autoEvery))
	}
	return m.refresh()
}

func tick(gen int, every time.Duration) tea.Cmd {
	return tea.Tick(every, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// parseInterval reads the interval input. Empty or invalid means one second.
func parseInterval(s string) time.Duration {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		n = 1
	}
	return time.Duration(n) * time.Second
}

// refresh reloads the current table and the summary.
func (m Model) refresh() tea.Cmd {
	return tea.Batch(m.load(m.kind), m.loadSummary())
}

func (m Model) load(kind view.Kind) tea.Cmd {
	ctx, src := m.ctx, m.src
	switch kind {
	case view.Services:
		return func() tea.Msg {
			services, err := src.Services(ctx)
			if err != nil {
				return loadErr("services", err)
			}
			return servicesMsg(services)
		}
	case view.Containers:
		return func() tea.Msg {
			containers, err := src.Containers(ctx)
			if err != nil {
				return loadErr("containers", err)
			}
			return containersMsg(containers)
		}
	default:
		return func() tea.Msg {
			procs, err := src.Processes(ctx)
			if err != nil {
				return loadErr("processes", err)
			}
			return processesMsg(procs)
		}
	}
}

func (m Model) loadSummary() tea.Cmd {
	ctx, src := m.ctx, m.src
	return func() tea.Msg {
		s, err := src.Summary(ctx)
		if err != nil {
			return loadErr("summary", err)
		}
		return summaryMsg(s)
	}
}

func (m Model) loadDetails(pid int32) tea.Cmd {
	ctx, src := m.ctx, m.src
	return func() tea.Msg {
		d, err := src.Details(ctx, pid)
		if err != nil {
			log().WithError(err).WithField("pid", pid).Warn("details failed")
		}
		return detailsMsg{pid: pid, details: d, err: err}
	}
}

func loadErr(what string, err error) loadErrMsg {
	log().WithError(err).Warnf("updating the %s table failed", what)
	return loadErrMsg{what: what, err: err}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetHeight(m.tableHeight())
		for _, p := range m.panes {
			p.resize(m.width, m.tableHeight())
		}
		return m, nil

	case tickMsg:
		if !m.auto || msg.gen != m.tickGen {
			return m, nil
		}
		return m, tea.Batch(m.refresh(), tick(m.tickGen, m.autoEvery))

	case processesMsg:
		m.processes = msg
		m.pruneDetails()
		if m.kind == view.Processes {
			m.updateRows()
		}
		return m, nil

	case servicesMsg:
		m.services = msg
		if m.kind == view.Services {
			m.updateRows()
		}
		return m, nil

	case containersMsg:
		m.containers = msg
		if m.kind == view.Containers {
			m.updateRows()
		}
		return m, nil

	case summaryMsg:
		m.summary = models.Summary(msg)
		return m, nil

	case detailsMsg:
		if p, ok := m.panes[msg.pid]; ok {
			p.apply(msg.details, msg.err)
		}
		return m, nil

	case loadErrMsg:
		m.setStatus(fmt.Sprintf("An error occurred while updating the %s: %v", msg.what, msg.err), true)
		return m, nil

	case actionMsg:
		if msg.err != nil {
			m.setStatus(msg.err.Error(), true)
			return m, nil
		}
		m.setStatus(msg.done, false)
		if msg.kind == m.kind {
			return m, m.load(m.kind)
		}
		return m, nil

	case statusMsg:
		if msg.err != nil {
			m.setStatus(msg.err.Error(), true)
		} else {
			m.setStatus(msg.text, false)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// cursor blinks and the like
	var cmd tea.Cmd
	switch m.focus {
	case focusFilter:
		m.filter, cmd = m.filter.Update(msg)
	case focusInterval:
		m.interval, cmd = m.interval.Update(msg)
	default:
		m.table, cmd = m.table.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.confirm != nil {
		return m.handleConfirm(msg)
	}
	switch m.focus {
	case focusFilter:
		return m.handleFilterKey(msg)
	case focusInterval:
		return m.handleIntervalKey(msg)
	}
	if m.open != nil {
		return m.handleDetailsKey(msg)
	}

	switch key := msg.String(); key {
	case "q":
		return m, tea.Quit
	case "1", "2", "3":
		idx := int(key[0] - '1')
		if idx < len(m.kinds) {
			return m.switchView(m.kinds[idx])
		}
		return m, nil
	case "tab":
		for i, k := range m.kinds {
			if k == m.kind {
				return m.switchView(m.kinds[(i+1)%len(m.kinds)])
			}
		}
		return m, nil
	case "r", "f5":
		return m, m.refresh()
	case "a":
		return m.toggleAuto()
	case "i":
		m.focus = focusInterval
		return m, m.interval.Focus()
	case "/":
		m.focus = focusFilter
		return m, m.filter.Focus()
	case "s":
		m.sortCol = (m.sortCol + 1) % len(view.Columns(m.kind))
		m.sortAsc = true
		m.rebuildTable()
		return m, nil
	case "S":
		m.sortAsc = !m.sortAsc
		m.rebuildTable()
		return m, nil
	case "x", "delete":
		if row := m.table.SelectedRow(); len(row) > 0 {
			m.confirm = &pendingAction{kind: m.kind, id: row[0]}
		}
		return m, nil
	case "enter":
		return m.openDetails()
	case "e":
		return m, m.exportSnapshot()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) handleConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		action := *m.confirm
		m.confirm = nil
		return m, m.runAction(action)
	case "n", "N", "esc":
		m.confirm = nil
	}
	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.focus = focusTable
		m.filter.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.updateRows()
	return m, cmd
}

// handleIntervalKey keeps the input digits only. Leaving the input while
// auto refresh is on restarts the timer with the new interval.
func (m Model) handleIntervalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.focus = focusTable
		m.interval.Blur()
		if !m.auto {
			return m, nil
		}
		m.tickGen++
		m.autoEvery = parseInterval(m.interval.Value())
		return m, tick(m.tickGen, m.autoEvery)
	}
	prev, pos := m.interval.Value(), m.interval.Position()
	var cmd tea.Cmd
	m.interval, cmd = m.interval.Update(msg)
	if m.interval.Err != nil {
		m.interval.SetValue(prev)
		m.interval.SetCursor(pos)
	}
	return m, cmd
}

func digitsOnly(s string) error {
	for _, r := range s {
		if r < '0' || r > '9' {
			return errors.Errorf("%q is not a number of seconds", s)
		}
	}
	return nil
}

func (m Model) handleDetailsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		m.open = nil
		return m, nil
	case "tab":
		m.open.toggleTab()
		return m, nil
	case "r", "f5":
		m.open.loading = true
		return m, m.loadDetails(m.open.pid)
	}
	return m, m.open.update(msg)
}

func (m Model) switchView(k view.Kind) (tea.Model, tea.Cmd) {
	m.kind = k
	m.sortCol = 0
	m.sortAsc = true
	m.filter.SetValue("")
	m.rebuildTable()
	return m, m.refresh()
}

func (m Model) toggleAuto() (tea.Model, tea.Cmd) {
	// pending ticks of the previous generation are dropped
	m.tickGen++
	if m.auto {
		m.auto = false
		m.setStatus("Auto refresh off", false)
		return m, nil
	}
	m.auto = true
	m.autoEvery = parseInterval(m.interval.Value())
	m.setStatus(fmt.Sprintf("Auto refresh every %s", m.autoEvery), false)
	return m, tick(m.tickGen, m.autoEvery)
}

// openDetails shows the pane of the selected process, reusing an existing
// pane for the same pid.
func (m Model) openDetails() (tea.Model, tea.Cmd) {
	if m.kind != view.Processes {
		return m, nil
	}
	row := m.table.SelectedRow()
	if len(row) < 2 {
		return m, nil
	}
	pid64, err := strconv.ParseInt(row[0], 10, 32)
	if err != nil {
		return m, nil
	}
	pid := int32(pid64)

	if p, ok := m.panes[pid]; ok {
		m.open = p
		return m, nil
	}

	p := newDetailPane(pid, row[1])
	p.resize(m.width, m.tableHeight())
	p.loading = true
	m.panes[pid] = p
	m.open = p
	return m, m.loadDetails(pid)
}

func (m *Model) pruneDetails() {
	alive := make(map[int32]struct{}, len(m.processes))
	for _, p := range m.processes {
		alive[p.PID] = struct{}{}
	}
	for _, pid := range m.panes.prune(alive) {
		if m.open != nil && m.open.pid == pid {
			m.open = nil
			m.setStatus(fmt.Sprintf("Process %d exited, details closed", pid), false)
		}
	}
}

func (m Model) runAction(a pendingAction) tea.Cmd {
	ctx, ctl := m.ctx, m.ctl
	return func() tea.Msg {
		switch a.kind {
		case view.Processes:
			pid, err := strconv.ParseInt(a.id, 10, 32)
			if err != nil {
				return actionMsg{kind: a.kind, err: errors.Wrapf(err, "bad pid %q", a.id)}
			}
			if err := ctl.TerminateProcess(ctx, int32(pid)); err != nil {
				return actionMsg{kind: a.kind, err: err}
			}
			return actionMsg{kind: a.kind, done: "Terminated process with PID: " + a.id}
		case view.Services:
			if err := ctl.StopService(ctx, a.id); err != nil {
				return actionMsg{kind: a.kind, err: err}
			}
			return actionMsg{kind: a.kind, done: "Stopped service " + a.id}
		default:
			if err := ctl.StopContainer(ctx, a.id); err != nil {
				return actionMsg{kind: a.kind, err: err}
			}
			return actionMsg{kind: a.kind, done: "Stopped container " + a.id}
		}
	}
}

func (m Model) exportSnapshot() tea.Cmd {
	cols := view.Columns(m.kind)
	rows := make([][]string, 0, len(m.table.Rows()))
	for _, r := range m.table.Rows() {
		rows = append(rows, []string(r))
	}
	kind, dir := m.kind, m.opts.SnapshotDir
	return func() tea.Msg {
		path, err := writeSnapshot(dir, kind, cols, rows, time.Now())
		if err != nil {
			return statusMsg{err: err}
		}
		return statusMsg{text: "Snapshot saved to " + path}
	}
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m Model) tableHeight() int {
	if m.height == 0 {
		return 20
	}
	h := m.height - 17
	if h < 5 {
		h = 5
	}
	return h
}

func (m *Model) rebuildTable() {
	cols := view.Columns(m.kind)
	tcols := make([]table.Column, len(cols))
	for i, c := range cols {
		title := c.Title
		if i == m.sortCol {
			if m.sortAsc {
				title += " ↑"
			} else {
				title += " ↓"
			}
		}
		tcols[i] = table.Column{Title: title, Width: c.Width}
	}

	t := table.New(
		table.WithColumns(tcols),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
	)
	t.SetStyles(tableStyles())
	m.table = t
	m.updateRows()
}

func (m *Model) updateRows() {
	var rows [][]string
	switch m.kind {
	case view.Processes:
		rows = view.ProcessRows(m.processes)
	case view.Services:
		rows = view.ServiceRows(m.services)
	case view.Containers:
		rows = view.ContainerRows(m.containers)
	}

	cols := view.Columns(m.kind)
	rows = view.Filter(rows, cols, m.filter.Value())
	view.Sort(rows, cols, m.sortCol, m.sortAsc)

	trows := make([]table.Row, len(rows))
	for i, r := range rows {
		trows[i] = table.Row(r)
	}
	m.table.SetRows(trows)
	if n := len(trows); n > 0 && m.table.Cursor() >= n {
		m.table.SetCursor(n - 1)
	}
}

func (m Model) View() string {
	if m.open != nil {
		return m.open.view()
	}

	var b strings.Builder

	title := "Task Manager"
	if m.auto {
		title += fmt.Sprintf(" (auto refresh every %s)", m.autoEvery)
	}
	b.WriteString(titleStyle.Render(title) + "\n\n")

	for i, k := range m.kinds {
		style := inactiveTab
		if k == m.kind {
			style = activeTab
		}
		b.WriteString(style.Render(fmt.Sprintf("[%d] %s", i+1, k.Title())) + " ")
	}
	cols := view.Columns(m.kind)
	if m.sortCol < len(cols) {
		b.WriteString(mutedStyle.Render("  Sort: [s] " + cols[m.sortCol].Title))
	}
	b.WriteString("\n\n")

	cpu, mem := view.SummaryLines(m.summary)
	b.WriteString(labelStyle.Render("CPU Usage: ") + cpu + "\n")
	b.WriteString(labelStyle.Render("Memory Usage: ") + mem + "\n\n")

	check := "[ ]"
	if m.auto {
		check = "[x]"
	}
	b.WriteString(fmt.Sprintf(" %s Auto Refresh [a]   Interval [i]: %s", check, m.interval.View()))
	switch {
	case m.focus == focusFilter:
		b.WriteString("   " + titleStyle.Render("/ ") + m.filter.View())
	case m.filter.Value() != "":
		b.WriteString(mutedStyle.Render("   Filter: " + m.filter.Value()))
	}
	b.WriteString("\n")

	b.WriteString(baseStyle.Render(m.table.View()) + "\n")

	switch {
	case m.confirm != nil:
		b.WriteString(promptStyle.Render(m.confirm.prompt()) + "\n")
	case m.status != "" && m.statusErr:
		b.WriteString(errorStyle.Render(m.status) + "\n")
	case m.status != "":
		b.WriteString(bannerStyle.Render(m.status) + "\n")
	default:
		b.WriteString("\n")
	}

	end := "end task"
	switch m.kind {
	case view.Services:
		end = "stop service"
	case view.Containers:
		end = "stop container"
	}
	help := fmt.Sprintf("\n  q: quit • 1-%d/tab: views • r: refresh • a: auto • i: interval • /: filter • s/S: sort • x: %s • e: export",
		len(m.kinds), end)
	if m.kind == view.Processes {
		help += " • enter: details"
	}
	b.WriteString(mutedStyle.Render(help) + "\n")

	return b.String()
}

// Run starts the UI and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, src Source, ctl Controller, opts Options) error {
	p := tea.NewProgram(New(ctx, src, ctl, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return errors.Wrap(err, "run ui")
	}
	return nil
}

func log() *logrus.Entry {
	return logging.WithComponent("tui")
}
