package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/nvalenzuela/selekta/internal/apperr"
	"github.com/nvalenzuela/selekta/internal/dto"
	"github.com/nvalenzuela/selekta/internal/model"
	"github.com/nvalenzuela/selekta/internal/repository"
)

// TestCatalogService owns test definitions and their question sets.
type TestCatalogService interface {
	CreateTest(ctx context.Context, req dto.TestCreateDTO) (*dto.TestDTO, error)
	UpdateTest(ctx context.Context, id string, req dto.TestUpdateDTO) (*dto.TestDTO, error)
	ToggleActive(ctx context.Context, id string) (*dto.TestDTO, error)
	GetTest(ctx context.Context, id string) (*dto.TestDTO, error)
	ListTests(ctx context.Context) ([]dto.TestDTO, error)
	ListByType(ctx context.Context, testType model.TestType) ([]dto.TestDTO, error)
	DeleteTest(ctx context.Context, id string) error
}

type testCatalogService struct {
	testRepo repository.TestRepository
}

func NewTestCatalogService(testRepo repository.TestRepository) TestCatalogService {
	return &testCatalogService{testRepo: testRepo}
}

// buildQuestions validates the incoming set and assigns contiguous order
// values from the input order, starting at 0, for deterministic replay.
func buildQuestions(reqs []dto.QuestionCreateDTO) ([]model.Question, error) {
	questions := make([]model.Question, len(reqs))
	for i, q := range reqs {
		if q.Points < 0 {
			return nil, apperr.Validationf("question %d has negative points (%d)", i, q.Points)
		}
		questions[i] = model.Question{
			Text:           q.Text,
			Order:          i,
			Points:         q.Points,
			CorrectAnswers: model.StringList(q.CorrectAnswers),
		}
	}
	return questions, nil
}

func (s *testCatalogService) CreateTest(ctx context.Context, req dto.TestCreateDTO) (*dto.TestDTO, error) {
	questions, err := buildQuestions(req.Questions)
	if err != nil {
		return nil, err
	}

	test := &model.Test{
		Title:                req.Title,
		Description:          req.Description,
		Type:                 req.Type,
		IsActive:             true,
		RequiresManualReview: req.RequiresManualReview,
		PassingScore:         req.PassingScore,
		Questions:            questions,
	}
	if err := s.testRepo.Create(ctx, test); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("CreateTest: failed to create test")
		return nil, fmt.Errorf("create test: %w", err)
	}

	created, err := s.testRepo.FindByIDWithQuestions(ctx, test.ID)
	if err != nil {
		return nil, fmt.Errorf("create test: reload %s: %w", test.ID, err)
	}
	log.Info().Str("testID", created.ID).Int("questionCount", len(created.Questions)).Msg("test created")
	return toTestDTO(created), nil
}

// UpdateTest patches the named scalar fields only. When a question set is
// supplied it replaces the previous one wholesale; individual questions
// cannot be patched.
func (s *testCatalogService) UpdateTest(ctx context.Context, id string, req dto.TestUpdateDTO) (*dto.TestDTO, error) {
	if _, err := s.testRepo.FindByID(ctx, id); err != nil {
		return nil, fmt.Errorf("update test %s: %w", id, err)
	}

	fields := map[string]any{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Type != nil {
		fields["type"] = *req.Type
	}
	if req.RequiresManualReview != nil {
		fields["requires_manual_review"] = *req.RequiresManualReview
	}
	if req.PassingScore != nil {
		fields["passing_score"] = *req.PassingScore
	}
	if len(fields) > 0 {
		if err := s.testRepo.UpdateFields(ctx, id, fields); err != nil {
			return nil, fmt.Errorf("update test %s: %w", id, err)
		}
	}

	if req.Questions != nil {
		questions, err := buildQuestions(req.Questions)
		if err != nil {
			return nil, err
		}
		if err := s.testRepo.ReplaceQuestions(ctx, id, questions); err != nil {
			log.Error().Err(err).Str("testID", id).Msg("UpdateTest: failed to replace question set")
			return nil, fmt.Errorf("update test %s: replace questions: %w", id, err)
		}
	}

	updated, err := s.testRepo.FindByIDWithQuestions(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update test %s: reload: %w", id, err)
	}
	return toTestDTO(updated), nil
}

// ToggleActive flips visibility in the catalog. Existing responses are
// unaffected.
func (s *testCatalogService) ToggleActive(ctx context.Context, id string) (*dto.TestDTO, error) {
	test, err := s.testRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("toggle test %s: %w", id, err)
	}
	if err := s.testRepo.UpdateFields(ctx, id, map[string]any{"is_active": !test.IsActive}); err != nil {
		return nil, fmt.Errorf("toggle test %s: %w", id, err)
	}
	updated, err := s.testRepo.FindByIDWithQuestions(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("toggle test %s: reload: %w", id, err)
	}
	return toTestDTO(updated), nil
}

func (s *testCatalogService) GetTest(ctx context.Context, id string) (*dto.TestDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("test %s: %w", id, err)
	}
	return toTestDTO(test), nil
}

func (s *testCatalogService) ListTests(ctx context.Context) ([]dto.TestDTO, error) {
	tests, err := s.testRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tests: %w", err)
	}
	return toTestDTOs(tests), nil
}

func (s *testCatalogService) ListByType(ctx context.Context, testType model.TestType) ([]dto.TestDTO, error) {
	tests, err := s.testRepo.FindActiveByType(ctx, testType)
	if err != nil {
		return nil, fmt.Errorf("list tests of type %s: %w", testType, err)
	}
	return toTestDTOs(tests), nil
}

func (s *testCatalogService) DeleteTest(ctx context.Context, id string) error {
	if err := s.testRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete test %s: %w", id, err)
	}
	log.Info().Str("testID", id).Msg("test deleted")
	return nil
}

func toTestDTOs(tests []model.Test) []dto.TestDTO {
	out := make([]dto.TestDTO, len(tests))
	for i := range tests {
		out[i] = *toTestDTO(&tests[i])
	}
	return out
}
