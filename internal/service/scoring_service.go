package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/nvalenzuela/selekta/internal/dto"
	"github.com/nvalenzuela/selekta/internal/model"
	"github.com/nvalenzuela/selekta/internal/repository"
)

// ScoringService grades answers and keeps response totals consistent.
// RecalculateScore is the single source of truth for score/maxScore/passed
// and must run after any answer score mutation.
type ScoringService interface {
	AutoEvaluate(ctx context.Context, responseID string) (*dto.TestResponseDTO, error)
	EvaluateAnswer(ctx context.Context, answerID string, req dto.EvaluateAnswerDTO) (*dto.AnswerDTO, error)
	RecalculateScore(ctx context.Context, responseID string) (*dto.TestResponseDTO, error)
}

type scoringService struct {
	responseRepo repository.TestResponseRepository
	answerRepo   repository.TestAnswerRepository
}

func NewScoringService(
	responseRepo repository.TestResponseRepository,
	answerRepo repository.TestAnswerRepository,
) ScoringService {
	return &scoringService{responseRepo: responseRepo, answerRepo: answerRepo}
}

// AnswerIsCorrect applies the answer equality rule. A multi-choice value
// is correct iff it has the same length as the key and matches it as a
// set, with repeated values earning no extra credit. A scalar is correct
// iff its string form is a member of the key. A question without a key
// cannot be auto-graded and is never correct here.
func AnswerIsCorrect(value model.AnswerValue, key model.StringList) bool {
	if len(key) == 0 {
		return false
	}
	if value.IsMulti {
		if len(value.Multi) != len(key) {
			return false
		}
		remaining := make(map[string]int, len(key))
		for _, k := range key {
			remaining[k]++
		}
		for _, v := range value.Multi {
			if remaining[v] == 0 {
				return false
			}
			remaining[v]--
		}
		return true
	}
	return key.Contains(value.Scalar)
}

// AutoEvaluate grades every answer whose question carries an answer key.
// maxScore accumulates the points of all answered questions, gradable or
// not; unanswered questions contribute to neither sum.
func (s *scoringService) AutoEvaluate(ctx context.Context, responseID string) (*dto.TestResponseDTO, error) {
	response, err := s.responseRepo.FindByIDWithDetails(ctx, responseID)
	if err != nil {
		log.Error().Err(err).Str("responseID", responseID).Msg("AutoEvaluate: response lookup failed")
		return nil, fmt.Errorf("auto evaluate response %s: %w", responseID, err)
	}

	totalScore := 0
	maxScore := 0
	var graded []*model.TestAnswer

	for i := range response.Answers {
		answer := &response.Answers[i]
		question := answer.Question
		maxScore += question.Points

		if len(question.CorrectAnswers) > 0 {
			answer.IsCorrect = AnswerIsCorrect(answer.Value, question.CorrectAnswers)
			score := 0
			if answer.IsCorrect {
				score = question.Points
			}
			answer.Score = &score
			totalScore += score
			graded = append(graded, answer)
		}
	}

	response.Score = &totalScore
	response.MaxScore = &maxScore
	response.Passed = response.Test.PassingScore != nil && totalScore >= *response.Test.PassingScore

	if err := s.responseRepo.SaveScores(ctx, response, graded); err != nil {
		log.Error().Err(err).Str("responseID", responseID).Msg("AutoEvaluate: failed to persist scores")
		return nil, fmt.Errorf("persist auto evaluation for response %s: %w", responseID, err)
	}

	log.Info().
		Str("responseID", responseID).
		Int("score", totalScore).
		Int("maxScore", maxScore).
		Bool("passed", response.Passed).
		Msg("response auto-evaluated")

	return toResponseDTO(response), nil
}

// EvaluateAnswer overwrites an answer's grade with the evaluator's verdict
// and recomputes the owning response's totals in the same transaction.
// The score is deliberately not clamped to the question's point value.
func (s *scoringService) EvaluateAnswer(ctx context.Context, answerID string, req dto.EvaluateAnswerDTO) (*dto.AnswerDTO, error) {
	answer, err := s.answerRepo.FindByID(ctx, answerID)
	if err != nil {
		return nil, fmt.Errorf("evaluate answer %s: %w", answerID, err)
	}

	response, err := s.responseRepo.FindByIDWithDetails(ctx, answer.TestResponseID)
	if err != nil {
		return nil, fmt.Errorf("evaluate answer %s: load response: %w", answerID, err)
	}

	score := req.Score
	for i := range response.Answers {
		if response.Answers[i].ID == answerID {
			response.Answers[i].Score = &score
			response.Answers[i].IsCorrect = req.IsCorrect
			response.Answers[i].EvaluatorComment = req.EvaluatorComment
			answer = &response.Answers[i]
			break
		}
	}

	recalculate(response)

	if err := s.responseRepo.SaveScores(ctx, response, []*model.TestAnswer{answer}); err != nil {
		log.Error().Err(err).Str("answerID", answerID).Msg("EvaluateAnswer: failed to persist evaluation")
		return nil, fmt.Errorf("persist evaluation of answer %s: %w", answerID, err)
	}

	log.Info().
		Str("answerID", answerID).
		Str("responseID", response.ID).
		Int("score", score).
		Bool("isCorrect", req.IsCorrect).
		Msg("answer evaluated manually")

	return toAnswerDTO(answer), nil
}

// RecalculateScore recomputes the response totals from its current
// answers, auto- and manually graded alike.
func (s *scoringService) RecalculateScore(ctx context.Context, responseID string) (*dto.TestResponseDTO, error) {
	response, err := s.responseRepo.FindByIDWithDetails(ctx, responseID)
	if err != nil {
		return nil, fmt.Errorf("recalculate response %s: %w", responseID, err)
	}

	recalculate(response)

	if err := s.responseRepo.SaveScores(ctx, response, nil); err != nil {
		log.Error().Err(err).Str("responseID", responseID).Msg("RecalculateScore: failed to persist totals")
		return nil, fmt.Errorf("persist recalculated response %s: %w", responseID, err)
	}

	return toResponseDTO(response), nil
}

// recalculate folds the stored answers into fresh totals: maxScore over
// every answered question, score over every answer (nil counts as 0).
func recalculate(response *model.TestResponse) {
	totalScore := 0
	maxScore := 0
	for i := range response.Answers {
		answer := &response.Answers[i]
		maxScore += answer.Question.Points
		if answer.Score != nil {
			totalScore += *answer.Score
		}
	}
	response.Score = &totalScore
	response.MaxScore = &maxScore
	response.Passed = response.Test.PassingScore != nil && totalScore >= *response.Test.PassingScore
}
