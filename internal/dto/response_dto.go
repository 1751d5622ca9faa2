package dto

import (
	"time"

	"github.com/nvalenzuela/selekta/internal/model"
)

// StartTestDTO opens (or re-fetches) a response for a test within an
// application.
type StartTestDTO struct {
	TestID          string `json:"test_id" binding:"required,uuid"`
	WorkerProcessID string `json:"worker_process_id" binding:"required,uuid"`
}

// SubmitAnswerDTO is one (question, value) pair within a submission. The
// value is either a JSON scalar or an array of strings; question identity
// is the upsert key, submission order is irrelevant.
type SubmitAnswerDTO struct {
	QuestionID string            `json:"question_id" binding:"required,uuid"`
	Value      model.AnswerValue `json:"value"`
}

// SubmitTestDTO carries the full set of answers for a response.
type SubmitTestDTO struct {
	Answers []SubmitAnswerDTO `json:"answers" binding:"required,min=1,dive"`
}

// EvaluateAnswerDTO is an evaluator's manual grade for a single answer.
type EvaluateAnswerDTO struct {
	Score            int     `json:"score"`
	IsCorrect        bool    `json:"is_correct"`
	EvaluatorComment *string `json:"evaluator_comment"`
}

type AnswerDTO struct {
	ID               string            `json:"id"`
	TestResponseID   string            `json:"test_response_id"`
	QuestionID       string            `json:"question_id"`
	Question         *QuestionDTO      `json:"question,omitempty"`
	Value            model.AnswerValue `json:"value"`
	Score            *int              `json:"score,omitempty"`
	IsCorrect        bool              `json:"is_correct"`
	EvaluatorComment *string           `json:"evaluator_comment,omitempty"`
}

type TestResponseDTO struct {
	ID              string      `json:"id"`
	TestID          string      `json:"test_id"`
	TestTitle       string      `json:"test_title,omitempty"`
	WorkerProcessID string      `json:"worker_process_id"`
	StartedAt       time.Time   `json:"started_at"`
	CompletedAt     *time.Time  `json:"completed_at,omitempty"`
	IsCompleted     bool        `json:"is_completed"`
	Score           *int        `json:"score,omitempty"`
	MaxScore        *int        `json:"max_score,omitempty"`
	Passed          bool        `json:"passed"`
	Answers         []AnswerDTO `json:"answers,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}
