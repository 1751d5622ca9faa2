package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkerStatus is the pipeline state of one application.
type WorkerStatus string

const (
	StatusPending   WorkerStatus = "pending"
	StatusInProcess WorkerStatus = "in_process"
	StatusApproved  WorkerStatus = "approved"
	StatusRejected  WorkerStatus = "rejected"
	StatusHired     WorkerStatus = "hired"
)

// AllWorkerStatuses lists every pipeline state, in pipeline order.
var AllWorkerStatuses = []WorkerStatus{
	StatusPending,
	StatusInProcess,
	StatusApproved,
	StatusRejected,
	StatusHired,
}

// Valid reports whether s is a known pipeline state.
func (s WorkerStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProcess, StatusApproved, StatusRejected, StatusHired:
		return true
	}
	return false
}

// Final reports whether s terminates the evaluation phase of an
// application (the worker dashboard counts these as "finalizadas").
func (s WorkerStatus) Final() bool {
	switch s {
	case StatusApproved, StatusRejected, StatusHired:
		return true
	}
	return false
}

// WorkerProcess is one worker's application to one selection process.
// At most one application exists per (worker, process) pair.
type WorkerProcess struct {
	ID          string       `gorm:"type:uuid;primaryKey" json:"id"`
	WorkerID    string       `gorm:"type:uuid;not null;uniqueIndex:idx_worker_processes_worker_process,priority:1" json:"worker_id"`
	ProcessID   string       `gorm:"type:uuid;not null;uniqueIndex:idx_worker_processes_worker_process,priority:2" json:"process_id"`
	Status      WorkerStatus `gorm:"not null;default:'pending';index" json:"status"`
	AppliedAt   time.Time    `json:"applied_at"`
	EvaluatedAt *time.Time   `json:"evaluated_at,omitempty"`
	Notes       *string      `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (wp *WorkerProcess) BeforeCreate(tx *gorm.DB) error {
	if wp.ID == "" {
		wp.ID = uuid.NewString()
	}
	return nil
}
