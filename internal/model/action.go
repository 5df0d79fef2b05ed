package model

import (
	"time"

	"gorm.io/gorm"
)

type ActionOp string

const (
	OpCopy   ActionOp = "COPY"
	OpRemove ActionOp = "REMOVE"
)

type EntryKind string

const (
	KindFile   EntryKind = "FILE"
	KindFolder EntryKind = "FOLDER"
)

// Action is one applied reconciliation step: a copy or removal of a single
// file or of a whole subtree. Path is relative to the sync roots, so the same
// value addresses the entry under both source and replica.
type Action struct {
	gorm.Model
	RunID     string    `gorm:"index"`
	Cycle     int       `gorm:"not null"`
	Op        ActionOp  `gorm:"not null"`
	Kind      EntryKind `gorm:"not null"`
	Path      string    `gorm:"not null"`
	Bytes     int64
	AppliedAt time.Time `gorm:"not null"`
}
