package model

import "time"

type EventType string

const (
	EventCreate EventType = "CREATE"
	EventWrite  EventType = "WRITE"
	EventRemove EventType = "REMOVE"
	EventRename EventType = "RENAME"
)

// FileEvent is a change notification from the source tree watcher. Watch mode
// only uses events as a trigger to run a cycle early, so Path is informational.
type FileEvent struct {
	Type      EventType
	Path      string
	Timestamp time.Time
}
