package tui

import (
	"context"

	"taskview/models"
)

// Source is the read side the UI polls.
type Source interface {
	Processes(ctx context.Context) ([]models.ProcessInfo, error)
	Services(ctx context.Context) ([]models.ServiceInfo, error)
	Containers(ctx context.Context) ([]models.ContainerInfo, error)
	Summary(ctx context.Context) (models.Summary, error)
	Details(ctx context.Context, pid int32) (models.ProcessDetails, error)
	DockerAvailable() bool
}

// Controller carries out end-task and stop requests.
type Controller interface {
	TerminateProcess(ctx context.Context, pid int32) error
	StopService(ctx context.Context, name string) error
	StopContainer(ctx context.Context, id string) error
}
