package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nvalenzuela/selekta/internal/model"
)

type QuestionRepository interface {
	FindByID(ctx context.Context, id string) (*model.Question, error)
	FindByTestID(ctx context.Context, testID string) ([]model.Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) FindByID(ctx context.Context, id string) (*model.Question, error) {
	var question model.Question
	if err := r.db.WithContext(ctx).First(&question, "id = ?", id).Error; err != nil {
		return nil, wrapError(err)
	}
	return &question, nil
}

func (r *questionRepository) FindByTestID(ctx context.Context, testID string) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.WithContext(ctx).
		Where("test_id = ?", testID).
		Order("question_order ASC").
		Find(&questions).Error
	return questions, wrapError(err)
}
