package collector

import (
	"context"

	"taskview/models"

	gopsnet "github.com/shirou/gopsutil/v3/net"
)

// Gathers one endpoint pair per pid from the system-wide socket table.
func collectEndpoints(ctx context.Context) map[int32]models.Endpoint {
	conns, err := gopsnet.ConnectionsWithContext(ctx, "inet")
	if err != nil {
		log().WithError(err).Debug("connections unavailable")
		return nil
	}
	return endpointsByPID(conns)
}

// endpointsByPID keeps, per pid, the last connection that has both a
// local and a remote address. Listening sockets have no remote side and
// are ignored.
func endpointsByPID(conns []gopsnet.ConnectionStat) map[int32]models.Endpoint {
	result := make(map[int32]models.Endpoint)
	for _, c := range conns {
		if c.Pid == 0 || c.Laddr.IP == "" || c.Raddr.IP == "" {
			continue
		}
		result[c.Pid] = models.Endpoint{
			LocalIP:    c.Laddr.IP,
			LocalPort:  c.Laddr.Port,
			RemoteIP:   c.Raddr.IP,
			RemotePort: c.Raddr.Port,
		}
	}
	return result
}
