package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nvalenzuela/selekta/internal/model"
)

type TestResponseRepository interface {
	Create(ctx context.Context, response *model.TestResponse) error
	FindByID(ctx context.Context, id string) (*model.TestResponse, error)
	FindByIDWithDetails(ctx context.Context, id string) (*model.TestResponse, error)
	FindByTestAndWorkerProcess(ctx context.Context, testID, workerProcessID string) (*model.TestResponse, error)
	FindByWorkerProcess(ctx context.Context, workerProcessID string) ([]model.TestResponse, error)
	FindByTest(ctx context.Context, testID string) ([]model.TestResponse, error)
	Save(ctx context.Context, response *model.TestResponse) error
	// SaveScores persists a response's recomputed totals together with
	// its regraded answers in one transaction, so a concurrent evaluation
	// never observes totals that disagree with the stored answers.
	SaveScores(ctx context.Context, response *model.TestResponse, answers []*model.TestAnswer) error
}

type testResponseRepository struct {
	db *gorm.DB
}

func NewTestResponseRepository(db *gorm.DB) TestResponseRepository {
	return &testResponseRepository{db: db}
}

func (r *testResponseRepository) Create(ctx context.Context, response *model.TestResponse) error {
	return wrapError(r.db.WithContext(ctx).Create(response).Error)
}

func (r *testResponseRepository) FindByID(ctx context.Context, id string) (*model.TestResponse, error) {
	var response model.TestResponse
	if err := r.db.WithContext(ctx).First(&response, "id = ?", id).Error; err != nil {
		return nil, wrapError(err)
	}
	return &response, nil
}

func (r *testResponseRepository) FindByIDWithDetails(ctx context.Context, id string) (*model.TestResponse, error) {
	var response model.TestResponse
	err := r.db.WithContext(ctx).
		Preload("Test").
		Preload("Test.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("test_questions.question_order ASC")
		}).
		Preload("Answers.Question").
		First(&response, "id = ?", id).Error
	if err != nil {
		return nil, wrapError(err)
	}
	return &response, nil
}

func (r *testResponseRepository) FindByTestAndWorkerProcess(ctx context.Context, testID, workerProcessID string) (*model.TestResponse, error) {
	var response model.TestResponse
	err := r.db.WithContext(ctx).
		Where("test_id = ? AND worker_process_id = ?", testID, workerProcessID).
		First(&response).Error
	if err != nil {
		return nil, wrapError(err)
	}
	return &response, nil
}

func (r *testResponseRepository) FindByWorkerProcess(ctx context.Context, workerProcessID string) ([]model.TestResponse, error) {
	var responses []model.TestResponse
	err := r.db.WithContext(ctx).
		Where("worker_process_id = ?", workerProcessID).
		Preload("Test").
		Preload("Answers").
		Order("created_at DESC").
		Find(&responses).Error
	return responses, wrapError(err)
}

func (r *testResponseRepository) FindByTest(ctx context.Context, testID string) ([]model.TestResponse, error) {
	var responses []model.TestResponse
	err := r.db.WithContext(ctx).
		Where("test_id = ?", testID).
		Preload("Answers").
		Order("created_at DESC").
		Find(&responses).Error
	return responses, wrapError(err)
}

func (r *testResponseRepository) Save(ctx context.Context, response *model.TestResponse) error {
	return wrapError(r.db.WithContext(ctx).Omit("Answers", "Test").Save(response).Error)
}

func (r *testResponseRepository) SaveScores(ctx context.Context, response *model.TestResponse, answers []*model.TestAnswer) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, answer := range answers {
			if err := tx.Omit("Question").Save(answer).Error; err != nil {
				return err
			}
		}
		return tx.Omit("Answers", "Test").Save(response).Error
	})
	return wrapError(err)
}
