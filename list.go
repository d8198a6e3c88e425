package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"taskview/logging"
	"taskview/models"
	"taskview/view"

	"github.com/dustin/go-humanize"
)

// lister is what the list command reads from.
type lister interface {
	Processes(ctx context.Context) ([]models.ProcessInfo, error)
	Services(ctx context.Context) ([]models.ServiceInfo, error)
	Containers(ctx context.Context) ([]models.ContainerInfo, error)
	Summary(ctx context.Context) (models.Summary, error)
}

func (c *cli) runList(ctx context.Context, w io.Writer, src lister) error {
	kind, err := view.ParseKind(c.listKind)
	if err != nil {
		return err
	}
	cols := view.Columns(kind)

	sortCol := 0
	if c.listSort != "" {
		if sortCol, err = view.ColumnIndex(kind, c.listSort); err != nil {
			return err
		}
	}

	var rows [][]string
	switch kind {
	case view.Processes:
		procs, err := sampleProcesses(ctx, src, c.listSample)
		if err != nil {
			return err
		}
		rows = view.ProcessRows(procs)
	case view.Services:
		services, err := src.Services(ctx)
		if err != nil {
			return err
		}
		rows = view.ServiceRows(services)
	case view.Containers:
		containers, err := src.Containers(ctx)
		if err != nil {
			return err
		}
		rows = view.ContainerRows(containers)
	}

	rows = view.Filter(rows, cols, c.listFilter)
	view.Sort(rows, cols, sortCol, !c.listDesc)

	if kind == view.Processes && !c.listMarkdown {
		if s, err := src.Summary(ctx); err != nil {
			logging.WithComponent("main").WithError(err).Warn("performance summary unavailable")
		} else {
			cpu, mem := view.SummaryLines(s)
			fmt.Fprintf(w, "CPU Usage: %s\nMemory Usage: %s\n\n", cpu, mem)
		}
	}

	view.Render(w, cols, rows, c.listMarkdown)
	if !c.listMarkdown {
		fmt.Fprintf(w, "\n%s %s\n", humanize.Comma(int64(len(rows))), kind)
	}
	return nil
}

// sampleProcesses reads the table twice so cpu percentages cover window.
func sampleProcesses(ctx context.Context, src lister, window time.Duration) ([]models.ProcessInfo, error) {
	if window <= 0 {
		return src.Processes(ctx)
	}
	if _, err := src.Processes(ctx); err != nil {
		return nil, err
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(window):
	}
	return src.Processes(ctx)
}
