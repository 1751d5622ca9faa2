package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Question is one item in a test. A nil CorrectAnswers means the question
// has no authoritative key and can only be graded by an evaluator.
type Question struct {
	ID             string     `gorm:"type:uuid;primaryKey" json:"id"`
	TestID         string     `gorm:"type:uuid;not null;uniqueIndex:idx_questions_test_order,priority:1" json:"test_id"`
	Text           string     `gorm:"type:text;not null" json:"text"`
	Order          int        `gorm:"column:question_order;not null;uniqueIndex:idx_questions_test_order,priority:2" json:"order"`
	Points         int        `gorm:"not null" json:"points"`
	CorrectAnswers StringList `gorm:"type:jsonb" json:"correct_answers,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (Question) TableName() string { return "test_questions" }

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}
