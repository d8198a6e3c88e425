package models

import "time"

// ProcessInfo is one row of the process table.
type ProcessInfo struct {
	PID  int32    `json:"pid"`
	Name string   `json:"name"`
	RSS  uint64   `json:"rss"`
	CPU  float64  `json:"cpu"`
	Conn Endpoint `json:"conn"`
}

// ProcessDetails holds what the details pane shows for one pid.
type ProcessDetails struct {
	PID       int32     `json:"pid"`
	Name      string    `json:"name"`
	Started   time.Time `json:"started"`
	Files     []string  `json:"files"`
	FilesErr  error     `json:"-"`
	Libraries []string  `json:"libraries"`
	LibsErr   error     `json:"-"`
}
