package dto

import (
	"time"

	"github.com/nvalenzuela/selekta/internal/model"
)

// QuestionCreateDTO describes one question inside a test create/update
// request. Question order is taken from the slice position, so the payload
// carries no order field. Omitting correct_answers marks the question as
// manually graded.
type QuestionCreateDTO struct {
	Text           string   `json:"text" binding:"required"`
	Points         int      `json:"points"`
	CorrectAnswers []string `json:"correct_answers"`
}

// TestCreateDTO creates a test together with its full question set.
type TestCreateDTO struct {
	Title                string              `json:"title" binding:"required"`
	Description          string              `json:"description,omitempty"`
	Type                 model.TestType      `json:"type" binding:"required,oneof=knowledge skills psychological"`
	RequiresManualReview bool                `json:"requires_manual_review"`
	PassingScore         *int                `json:"passing_score"`
	Questions            []QuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
}

// TestUpdateDTO patches scalar test fields. A non-nil Questions slice
// replaces the entire question set; nil leaves the questions untouched.
type TestUpdateDTO struct {
	Title                *string             `json:"title"`
	Description          *string             `json:"description"`
	Type                 *model.TestType     `json:"type" binding:"omitempty,oneof=knowledge skills psychological"`
	RequiresManualReview *bool               `json:"requires_manual_review"`
	PassingScore         *int                `json:"passing_score"`
	Questions            []QuestionCreateDTO `json:"questions" binding:"omitempty,dive"`
}

type QuestionDTO struct {
	ID             string   `json:"id"`
	TestID         string   `json:"test_id"`
	Text           string   `json:"text"`
	Order          int      `json:"order"`
	Points         int      `json:"points"`
	CorrectAnswers []string `json:"correct_answers,omitempty"`
}

type TestDTO struct {
	ID                   string         `json:"id"`
	Title                string         `json:"title"`
	Description          string         `json:"description,omitempty"`
	Type                 model.TestType `json:"type"`
	IsActive             bool           `json:"is_active"`
	RequiresManualReview bool           `json:"requires_manual_review"`
	PassingScore         *int           `json:"passing_score,omitempty"`
	Questions            []QuestionDTO  `json:"questions,omitempty"`
	CreatedAt            time.Time      `json:"created_at"`
}
