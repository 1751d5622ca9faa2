package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/nvalenzuela/selekta/internal/model"
)

// SelectionProcessRepository covers the counting queries the dashboards
// need. Process CRUD itself is owned elsewhere.
type SelectionProcessRepository interface {
	FindByID(ctx context.Context, id string) (*model.SelectionProcess, error)
	CountByStatus(ctx context.Context, status model.ProcessStatus) (int64, error)
	CountByStatusIn(ctx context.Context, status model.ProcessStatus, ids []string) (int64, error)
	CountByCompanyAndStatus(ctx context.Context, companyID string, status model.ProcessStatus) (int64, error)
	CountByCompanyAndStatusCreatedBefore(ctx context.Context, companyID string, status model.ProcessStatus, cutoff time.Time) (int64, error)
	CountByCompanyAndStatusUpdatedAfter(ctx context.Context, companyID string, status model.ProcessStatus, cutoff time.Time) (int64, error)
}

type selectionProcessRepository struct {
	db *gorm.DB
}

func NewSelectionProcessRepository(db *gorm.DB) SelectionProcessRepository {
	return &selectionProcessRepository{db: db}
}

func (r *selectionProcessRepository) FindByID(ctx context.Context, id string) (*model.SelectionProcess, error) {
	var process model.SelectionProcess
	if err := r.db.WithContext(ctx).First(&process, "id = ?", id).Error; err != nil {
		return nil, wrapError(err)
	}
	return &process, nil
}

func (r *selectionProcessRepository) CountByStatus(ctx context.Context, status model.ProcessStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.SelectionProcess{}).
		Where("status = ?", status).
		Count(&n).Error
	return n, wrapError(err)
}

func (r *selectionProcessRepository) CountByStatusIn(ctx context.Context, status model.ProcessStatus, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var n int64
	err := r.db.WithContext(ctx).Model(&model.SelectionProcess{}).
		Where("status = ? AND id IN ?", status, ids).
		Count(&n).Error
	return n, wrapError(err)
}

func (r *selectionProcessRepository) CountByCompanyAndStatus(ctx context.Context, companyID string, status model.ProcessStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.SelectionProcess{}).
		Where("company_id = ? AND status = ?", companyID, status).
		Count(&n).Error
	return n, wrapError(err)
}

func (r *selectionProcessRepository) CountByCompanyAndStatusCreatedBefore(ctx context.Context, companyID string, status model.ProcessStatus, cutoff time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.SelectionProcess{}).
		Where("company_id = ? AND status = ? AND created_at < ?", companyID, status, cutoff).
		Count(&n).Error
	return n, wrapError(err)
}

func (r *selectionProcessRepository) CountByCompanyAndStatusUpdatedAfter(ctx context.Context, companyID string, status model.ProcessStatus, cutoff time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.SelectionProcess{}).
		Where("company_id = ? AND status = ? AND updated_at > ?", companyID, status, cutoff).
		Count(&n).Error
	return n, wrapError(err)
}
