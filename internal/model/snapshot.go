package model

import "time"

// LoopSnapshot is the point-in-time state of a running sync loop, served by
// the daemon status endpoint.
type LoopSnapshot struct {
	RunID              string     `json:"run_id"`
	Source             string     `json:"source"`
	Replica            string     `json:"replica"`
	StartedAt          time.Time  `json:"started_at"`
	Cycles             int        `json:"cycles"`
	Copied             int        `json:"copied"`
	Removed            int        `json:"removed"`
	BytesCopied        int64      `json:"bytes_copied"`
	PermissionFailures int        `json:"permission_failures"`
	LastCycle          *time.Time `json:"last_cycle,omitempty"`
}
