package collector

import (
	"context"
	"strings"

	"taskview/models"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/pkg/errors"
)

const dockerSocket = "/var/run/docker.sock"

// DockerClient returns the shared docker client, connecting on first use.
func (c *Collector) DockerClient() (*client.Client, error) {
	if !c.DockerAvailable() {
		return nil, ErrNoDocker
	}

	c.dockerMu.Lock()
	defer c.dockerMu.Unlock()
	if c.dockerC != nil {
		return c.dockerC, nil
	}

	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, errors.Wrap(err, "docker client")
	}
	c.dockerC = cli
	return cli, nil
}

// Containers lists all containers, running and stopped. Without a docker
// daemon the list is empty.
func (c *Collector) Containers(ctx context.Context) ([]models.ContainerInfo, error) {
	cli, err := c.DockerClient()
	if errors.Is(err, ErrNoDocker) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	list, err := cli.ContainerList(ctx, container.ListOptions{All: true})
	if err != nil {
		return nil, errors.Wrap(err, "docker list")
	}

	result := make([]models.ContainerInfo, 0, len(list))
	for _, ctr := range list {
		name := ""
		if len(ctr.Names) > 0 {
			name = strings.TrimPrefix(ctr.Names[0], "/")
		}

		result = append(result, models.ContainerInfo{
			ID:     shortID(ctr.ID),
			Name:   name,
			Image:  ctr.Image,
			State:  string(ctr.State),
			Status: ctr.Status,
		})
	}

	return result, nil
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
