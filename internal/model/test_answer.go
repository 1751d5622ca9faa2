package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TestAnswer holds the submitted value for one question within a response.
// At most one answer exists per (response, question) pair; resubmitting a
// question overwrites the existing row.
type TestAnswer struct {
	ID               string      `gorm:"type:uuid;primaryKey" json:"id"`
	TestResponseID   string      `gorm:"type:uuid;not null;uniqueIndex:idx_answers_response_question,priority:1" json:"test_response_id"`
	QuestionID       string      `gorm:"type:uuid;not null;uniqueIndex:idx_answers_response_question,priority:2" json:"question_id"`
	Question         Question    `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
	Value            AnswerValue `gorm:"type:jsonb" json:"value"`
	Score            *int        `json:"score,omitempty"`
	IsCorrect        bool        `gorm:"not null;default:false" json:"is_correct"`
	EvaluatorComment *string     `gorm:"type:text" json:"evaluator_comment,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

func (a *TestAnswer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
