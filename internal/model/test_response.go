package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TestResponse is one candidate's attempt at one test within one
// application. At most one response exists per (test, worker process)
// pair; the unique index backs the idempotent start-test behavior.
type TestResponse struct {
	ID              string       `gorm:"type:uuid;primaryKey" json:"id"`
	TestID          string       `gorm:"type:uuid;not null;uniqueIndex:idx_responses_test_worker_process,priority:1" json:"test_id"`
	Test            Test         `gorm:"foreignKey:TestID" json:"test,omitempty"`
	WorkerProcessID string       `gorm:"type:uuid;not null;uniqueIndex:idx_responses_test_worker_process,priority:2" json:"worker_process_id"`
	StartedAt       time.Time    `json:"started_at"`
	CompletedAt     *time.Time   `json:"completed_at,omitempty"`
	IsCompleted     bool         `gorm:"not null;default:false" json:"is_completed"`
	Score           *int         `json:"score,omitempty"`
	MaxScore        *int         `json:"max_score,omitempty"`
	Passed          bool         `gorm:"not null;default:false" json:"passed"`
	EvaluatorNotes  *string      `gorm:"type:text" json:"evaluator_notes,omitempty"`
	Answers         []TestAnswer `gorm:"foreignKey:TestResponseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"answers,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

func (r *TestResponse) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
