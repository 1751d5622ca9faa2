package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nvalenzuela/selekta/internal/model"
)

// WorkerRepository and CompanyRepository expose the collaborator entities
// that applications and processes reference. Their CRUD lives outside
// this core; the services only need existence lookups so references to
// fabricated IDs are rejected.

type WorkerRepository interface {
	FindByID(ctx context.Context, id string) (*model.Worker, error)
}

type workerRepository struct {
	db *gorm.DB
}

func NewWorkerRepository(db *gorm.DB) WorkerRepository {
	return &workerRepository{db: db}
}

func (r *workerRepository) FindByID(ctx context.Context, id string) (*model.Worker, error) {
	var worker model.Worker
	if err := r.db.WithContext(ctx).First(&worker, "id = ?", id).Error; err != nil {
		return nil, wrapError(err)
	}
	return &worker, nil
}

type CompanyRepository interface {
	FindByID(ctx context.Context, id string) (*model.Company, error)
}

type companyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) FindByID(ctx context.Context, id string) (*model.Company, error) {
	var company model.Company
	if err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error; err != nil {
		return nil, wrapError(err)
	}
	return &company, nil
}
