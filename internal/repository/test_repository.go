package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nvalenzuela/selekta/internal/model"
)

type TestRepository interface {
	Create(ctx context.Context, test *model.Test) error
	FindByID(ctx context.Context, id string) (*model.Test, error)
	FindByIDWithQuestions(ctx context.Context, id string) (*model.Test, error)
	FindAll(ctx context.Context) ([]model.Test, error)
	FindActiveByType(ctx context.Context, testType model.TestType) ([]model.Test, error)
	UpdateFields(ctx context.Context, id string, fields map[string]any) error
	ReplaceQuestions(ctx context.Context, testID string, questions []model.Question) error
	Delete(ctx context.Context, id string) error
}

type testRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

func (r *testRepository) Create(ctx context.Context, test *model.Test) error {
	// Association insert: questions are created in the same transaction.
	return wrapError(r.db.WithContext(ctx).Create(test).Error)
}

func (r *testRepository) FindByID(ctx context.Context, id string) (*model.Test, error) {
	var test model.Test
	if err := r.db.WithContext(ctx).First(&test, "id = ?", id).Error; err != nil {
		return nil, wrapError(err)
	}
	return &test, nil
}

func (r *testRepository) FindByIDWithQuestions(ctx context.Context, id string) (*model.Test, error) {
	var test model.Test
	err := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("test_questions.question_order ASC")
		}).
		First(&test, "id = ?", id).Error
	if err != nil {
		return nil, wrapError(err)
	}
	return &test, nil
}

func (r *testRepository) FindAll(ctx context.Context) ([]model.Test, error) {
	var tests []model.Test
	err := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("test_questions.question_order ASC")
		}).
		Order("created_at DESC").
		Find(&tests).Error
	return tests, wrapError(err)
}

func (r *testRepository) FindActiveByType(ctx context.Context, testType model.TestType) ([]model.Test, error) {
	var tests []model.Test
	err := r.db.WithContext(ctx).
		Where("type = ? AND is_active = ?", testType, true).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("test_questions.question_order ASC")
		}).
		Order("created_at DESC").
		Find(&tests).Error
	return tests, wrapError(err)
}

func (r *testRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&model.Test{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return wrapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return wrapError(gorm.ErrRecordNotFound)
	}
	return nil
}

// ReplaceQuestions swaps the entire question set of a test in one
// transaction. Partial patches of individual questions are not supported.
func (r *testRepository) ReplaceQuestions(ctx context.Context, testID string, questions []model.Question) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("test_id = ?", testID).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].TestID = testID
		}
		if len(questions) == 0 {
			return nil
		}
		return tx.Create(&questions).Error
	})
	return wrapError(err)
}

func (r *testRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("test_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Test{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return wrapError(err)
}
