package models

// Endpoint is a connection seen from the owning process.
// Zero ports mean the process has no connection with both ends set.
type Endpoint struct {
	LocalIP    string `json:"localIp"`
	LocalPort  uint32 `json:"localPort"`
	RemoteIP   string `json:"remoteIp"`
	RemotePort uint32 `json:"remotePort"`
}

func (e Endpoint) IsZero() bool {
	return e.LocalIP == "" && e.RemoteIP == ""
}
