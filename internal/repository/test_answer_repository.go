package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nvalenzuela/selekta/internal/model"
)

type TestAnswerRepository interface {
	FindByID(ctx context.Context, id string) (*model.TestAnswer, error)
	FindByResponse(ctx context.Context, responseID string) ([]model.TestAnswer, error)
	// SaveBatch applies one submission's upserts atomically so a mid-batch
	// failure never leaves some answers updated and others not.
	SaveBatch(ctx context.Context, answers []*model.TestAnswer) error
}

type testAnswerRepository struct {
	db *gorm.DB
}

func NewTestAnswerRepository(db *gorm.DB) TestAnswerRepository {
	return &testAnswerRepository{db: db}
}

func (r *testAnswerRepository) FindByID(ctx context.Context, id string) (*model.TestAnswer, error) {
	var answer model.TestAnswer
	err := r.db.WithContext(ctx).
		Preload("Question").
		First(&answer, "id = ?", id).Error
	if err != nil {
		return nil, wrapError(err)
	}
	return &answer, nil
}

func (r *testAnswerRepository) FindByResponse(ctx context.Context, responseID string) ([]model.TestAnswer, error) {
	var answers []model.TestAnswer
	err := r.db.WithContext(ctx).
		Where("test_response_id = ?", responseID).
		Preload("Question").
		Find(&answers).Error
	return answers, wrapError(err)
}

func (r *testAnswerRepository) SaveBatch(ctx context.Context, answers []*model.TestAnswer) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, answer := range answers {
			if err := tx.Omit("Question").Save(answer).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return wrapError(err)
}
