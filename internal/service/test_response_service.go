package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/nvalenzuela/selekta/internal/apperr"
	"github.com/nvalenzuela/selekta/internal/dto"
	"github.com/nvalenzuela/selekta/internal/model"
	"github.com/nvalenzuela/selekta/internal/repository"
)

// TestResponseService owns the response lifecycle:
// NotStarted -> InProgress -> Completed, with no way back.
type TestResponseService interface {
	StartTest(ctx context.Context, req dto.StartTestDTO) (*dto.TestResponseDTO, error)
	SubmitTest(ctx context.Context, responseID string, req dto.SubmitTestDTO) (*dto.TestResponseDTO, error)
	GetResponse(ctx context.Context, id string) (*dto.TestResponseDTO, error)
	FindByWorkerProcess(ctx context.Context, workerProcessID string) ([]dto.TestResponseDTO, error)
	FindByTest(ctx context.Context, testID string) ([]dto.TestResponseDTO, error)
}

type testResponseService struct {
	testRepo          repository.TestRepository
	questionRepo      repository.QuestionRepository
	responseRepo      repository.TestResponseRepository
	answerRepo        repository.TestAnswerRepository
	workerProcessRepo repository.WorkerProcessRepository
	scoring           ScoringService
	clock             Clock
}

func NewTestResponseService(
	testRepo repository.TestRepository,
	questionRepo repository.QuestionRepository,
	responseRepo repository.TestResponseRepository,
	answerRepo repository.TestAnswerRepository,
	workerProcessRepo repository.WorkerProcessRepository,
	scoring ScoringService,
	clock Clock,
) TestResponseService {
	return &testResponseService{
		testRepo:          testRepo,
		questionRepo:      questionRepo,
		responseRepo:      responseRepo,
		answerRepo:        answerRepo,
		workerProcessRepo: workerProcessRepo,
		scoring:           scoring,
		clock:             clock,
	}
}

// StartTest is idempotent: an existing in-progress response is returned
// unchanged, a completed one is rejected, otherwise a new response is
// created. The unique index on (test_id, worker_process_id) closes the
// duplicate-start race; on conflict the winner's row is fetched instead.
func (s *testResponseService) StartTest(ctx context.Context, req dto.StartTestDTO) (*dto.TestResponseDTO, error) {
	existing, err := s.responseRepo.FindByTestAndWorkerProcess(ctx, req.TestID, req.WorkerProcessID)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return nil, fmt.Errorf("start test %s: %w", req.TestID, err)
	}
	if existing != nil {
		if existing.IsCompleted {
			return nil, fmt.Errorf("start test %s: %w", req.TestID, apperr.ErrAlreadyCompleted)
		}
		return toResponseDTO(existing), nil
	}

	if _, err := s.testRepo.FindByID(ctx, req.TestID); err != nil {
		return nil, fmt.Errorf("start test %s: %w", req.TestID, err)
	}
	if _, err := s.workerProcessRepo.FindByID(ctx, req.WorkerProcessID); err != nil {
		return nil, fmt.Errorf("start test %s: %w", req.TestID, err)
	}

	response := &model.TestResponse{
		TestID:          req.TestID,
		WorkerProcessID: req.WorkerProcessID,
		StartedAt:       s.clock(),
		IsCompleted:     false,
	}
	if err := s.responseRepo.Create(ctx, response); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			// Lost the race: a concurrent start created the row first.
			winner, findErr := s.responseRepo.FindByTestAndWorkerProcess(ctx, req.TestID, req.WorkerProcessID)
			if findErr != nil {
				return nil, fmt.Errorf("start test %s: fetch concurrent response: %w", req.TestID, findErr)
			}
			if winner.IsCompleted {
				return nil, fmt.Errorf("start test %s: %w", req.TestID, apperr.ErrAlreadyCompleted)
			}
			return toResponseDTO(winner), nil
		}
		log.Error().Err(err).Str("testID", req.TestID).Str("workerProcessID", req.WorkerProcessID).Msg("StartTest: failed to create response")
		return nil, fmt.Errorf("start test %s: %w", req.TestID, err)
	}

	log.Info().
		Str("responseID", response.ID).
		Str("testID", req.TestID).
		Str("workerProcessID", req.WorkerProcessID).
		Msg("test response started")

	return toResponseDTO(response), nil
}

// SubmitTest upserts every submitted answer by question identity, runs
// auto-evaluation when the test allows it, and marks the response
// completed. Resubmitting a completed response always fails and leaves
// stored answers untouched.
func (s *testResponseService) SubmitTest(ctx context.Context, responseID string, req dto.SubmitTestDTO) (*dto.TestResponseDTO, error) {
	response, err := s.responseRepo.FindByIDWithDetails(ctx, responseID)
	if err != nil {
		return nil, fmt.Errorf("submit test response %s: %w", responseID, err)
	}
	if response.IsCompleted {
		return nil, fmt.Errorf("submit test response %s: %w", responseID, apperr.ErrAlreadyCompleted)
	}

	questions, err := s.questionRepo.FindByTestID(ctx, response.TestID)
	if err != nil {
		return nil, fmt.Errorf("submit test response %s: load questions: %w", responseID, err)
	}
	questionByID := make(map[string]*model.Question, len(questions))
	for i := range questions {
		questionByID[questions[i].ID] = &questions[i]
	}
	answerByQuestion := make(map[string]*model.TestAnswer, len(response.Answers))
	for i := range response.Answers {
		answerByQuestion[response.Answers[i].QuestionID] = &response.Answers[i]
	}

	// Question identity is the upsert key: repeated entries for the same
	// question within one submission collapse last-wins.
	batchByQuestion := make(map[string]*model.TestAnswer, len(req.Answers))
	var batch []*model.TestAnswer
	for _, submitted := range req.Answers {
		if _, ok := questionByID[submitted.QuestionID]; !ok {
			return nil, apperr.Validationf("question %s does not belong to test %s", submitted.QuestionID, response.TestID)
		}
		if pending, ok := batchByQuestion[submitted.QuestionID]; ok {
			pending.Value = submitted.Value
			continue
		}
		answer, ok := answerByQuestion[submitted.QuestionID]
		if ok {
			answer.Value = submitted.Value
		} else {
			answer = &model.TestAnswer{
				TestResponseID: responseID,
				QuestionID:     submitted.QuestionID,
				Value:          submitted.Value,
			}
		}
		batchByQuestion[submitted.QuestionID] = answer
		batch = append(batch, answer)
	}

	if err := s.answerRepo.SaveBatch(ctx, batch); err != nil {
		log.Error().Err(err).Str("responseID", responseID).Msg("SubmitTest: failed to persist answers")
		return nil, fmt.Errorf("submit test response %s: persist answers: %w", responseID, err)
	}

	manualReview := response.Test.RequiresManualReview
	if !manualReview {
		if _, err := s.scoring.AutoEvaluate(ctx, responseID); err != nil {
			return nil, fmt.Errorf("submit test response %s: %w", responseID, err)
		}
	}

	// Reload so completion is stamped on top of whatever the evaluation
	// just persisted.
	response, err = s.responseRepo.FindByID(ctx, responseID)
	if err != nil {
		return nil, fmt.Errorf("submit test response %s: reload: %w", responseID, err)
	}
	now := s.clock()
	response.IsCompleted = true
	response.CompletedAt = &now
	if err := s.responseRepo.Save(ctx, response); err != nil {
		log.Error().Err(err).Str("responseID", responseID).Msg("SubmitTest: failed to mark response completed")
		return nil, fmt.Errorf("submit test response %s: mark completed: %w", responseID, err)
	}

	log.Info().
		Str("responseID", responseID).
		Int("answerCount", len(batch)).
		Bool("manualReview", manualReview).
		Msg("test response submitted")

	detailed, err := s.responseRepo.FindByIDWithDetails(ctx, responseID)
	if err != nil {
		return nil, fmt.Errorf("submit test response %s: reload details: %w", responseID, err)
	}
	return toResponseDTO(detailed), nil
}

func (s *testResponseService) GetResponse(ctx context.Context, id string) (*dto.TestResponseDTO, error) {
	response, err := s.responseRepo.FindByIDWithDetails(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("test response %s: %w", id, err)
	}
	return toResponseDTO(response), nil
}

func (s *testResponseService) FindByWorkerProcess(ctx context.Context, workerProcessID string) ([]dto.TestResponseDTO, error) {
	responses, err := s.responseRepo.FindByWorkerProcess(ctx, workerProcessID)
	if err != nil {
		return nil, fmt.Errorf("responses for worker process %s: %w", workerProcessID, err)
	}
	return toResponseDTOs(responses), nil
}

func (s *testResponseService) FindByTest(ctx context.Context, testID string) ([]dto.TestResponseDTO, error) {
	responses, err := s.responseRepo.FindByTest(ctx, testID)
	if err != nil {
		return nil, fmt.Errorf("responses for test %s: %w", testID, err)
	}
	return toResponseDTOs(responses), nil
}

func toResponseDTOs(responses []model.TestResponse) []dto.TestResponseDTO {
	out := make([]dto.TestResponseDTO, len(responses))
	for i := range responses {
		out[i] = *toResponseDTO(&responses[i])
	}
	return out
}
