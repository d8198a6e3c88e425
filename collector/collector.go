// Package collector reads process, service and container snapshots from
// the host. It holds no state beyond what gopsutil needs to compute cpu
// deltas and a lazily opened docker client.
package collector

import (
	"context"
	"runtime"
	"sync"

	"taskview/logging"
	"taskview/models"

	"github.com/docker/docker/client"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	// ErrUnsupported is returned for platforms without a service backend.
	ErrUnsupported = errors.New("not supported on this platform")
	// ErrNoDocker is returned when containers are requested without a daemon.
	ErrNoDocker = errors.New("docker is not available")
)

// Collector is the read side of taskview.
type Collector struct {
	goos     string
	docker   bool
	sampler  *processSampler
	dockerMu sync.Mutex
	dockerC  *client.Client
}

// Option customises a Collector.
type Option func(*Collector)

// WithDocker enables or disables the containers source.
func WithDocker(enabled bool) Option {
	return func(c *Collector) { c.docker = enabled }
}

// New returns a collector for the running OS.
func New(opts ...Option) *Collector {
	c := &Collector{
		goos:    runtime.GOOS,
		docker:  true,
		sampler: newProcessSampler(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Processes returns every process visible to the caller.
func (c *Collector) Processes(ctx context.Context) ([]models.ProcessInfo, error) {
	return c.sampler.sample(ctx, collectEndpoints(ctx))
}

// Services returns the OS services.
func (c *Collector) Services(ctx context.Context) ([]models.ServiceInfo, error) {
	return collectServices(ctx, c.goos)
}

// Summary returns the performance panel values.
func (c *Collector) Summary(ctx context.Context) (models.Summary, error) {
	return collectSummary(ctx)
}

// DockerAvailable reports whether the containers source can be used.
func (c *Collector) DockerAvailable() bool {
	return c.docker && DetectCapabilities().HasDockerSocket
}

// Close releases the docker client, if one was opened.
func (c *Collector) Close() error {
	c.dockerMu.Lock()
	defer c.dockerMu.Unlock()
	if c.dockerC == nil {
		return nil
	}
	err := c.dockerC.Close()
	c.dockerC = nil
	return err
}

func log() *logrus.Entry {
	return logging.WithComponent("collector")
}
