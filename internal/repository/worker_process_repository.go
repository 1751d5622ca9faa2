package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/nvalenzuela/selekta/internal/model"
)

type WorkerProcessRepository interface {
	Create(ctx context.Context, wp *model.WorkerProcess) error
	FindByID(ctx context.Context, id string) (*model.WorkerProcess, error)
	FindByWorkerAndProcess(ctx context.Context, workerID, processID string) (*model.WorkerProcess, error)
	FindByWorker(ctx context.Context, workerID string) ([]model.WorkerProcess, error)
	FindByProcess(ctx context.Context, processID string) ([]model.WorkerProcess, error)
	UpdateFields(ctx context.Context, id string, fields map[string]any) error

	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status model.WorkerStatus) (int64, error)
	CountByWorker(ctx context.Context, workerID string) (int64, error)
	CountByWorkerAndStatuses(ctx context.Context, workerID string, statuses []model.WorkerStatus) (int64, error)
	AppliedProcessIDs(ctx context.Context, workerID string) ([]string, error)

	CountByCompany(ctx context.Context, companyID string) (int64, error)
	CountByCompanyCreatedBefore(ctx context.Context, companyID string, cutoff time.Time) (int64, error)
	CountByCompanyAndStatus(ctx context.Context, companyID string, status model.WorkerStatus) (int64, error)
}

type workerProcessRepository struct {
	db *gorm.DB
}

func NewWorkerProcessRepository(db *gorm.DB) WorkerProcessRepository {
	return &workerProcessRepository{db: db}
}

func (r *workerProcessRepository) Create(ctx context.Context, wp *model.WorkerProcess) error {
	return wrapError(r.db.WithContext(ctx).Create(wp).Error)
}

func (r *workerProcessRepository) FindByID(ctx context.Context, id string) (*model.WorkerProcess, error) {
	var wp model.WorkerProcess
	if err := r.db.WithContext(ctx).First(&wp, "id = ?", id).Error; err != nil {
		return nil, wrapError(err)
	}
	return &wp, nil
}

func (r *workerProcessRepository) FindByWorkerAndProcess(ctx context.Context, workerID, processID string) (*model.WorkerProcess, error) {
	var wp model.WorkerProcess
	err := r.db.WithContext(ctx).
		Where("worker_id = ? AND process_id = ?", workerID, processID).
		First(&wp).Error
	if err != nil {
		return nil, wrapError(err)
	}
	return &wp, nil
}

func (r *workerProcessRepository) FindByWorker(ctx context.Context, workerID string) ([]model.WorkerProcess, error) {
	var wps []model.WorkerProcess
	err := r.db.WithContext(ctx).
		Where("worker_id = ?", workerID).
		Order("created_at DESC").
		Find(&wps).Error
	return wps, wrapError(err)
}

func (r *workerProcessRepository) FindByProcess(ctx context.Context, processID string) ([]model.WorkerProcess, error) {
	var wps []model.WorkerProcess
	err := r.db.WithContext(ctx).
		Where("process_id = ?", processID).
		Order("created_at DESC").
		Find(&wps).Error
	return wps, wrapError(err)
}

func (r *workerProcessRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&model.WorkerProcess{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return wrapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return wrapError(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *workerProcessRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.WorkerProcess{}).Count(&n).Error
	return n, wrapError(err)
}

func (r *workerProcessRepository) CountByStatus(ctx context.Context, status model.WorkerStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.WorkerProcess{}).
		Where("status = ?", status).
		Count(&n).Error
	return n, wrapError(err)
}

func (r *workerProcessRepository) CountByWorker(ctx context.Context, workerID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.WorkerProcess{}).
		Where("worker_id = ?", workerID).
		Count(&n).Error
	return n, wrapError(err)
}

func (r *workerProcessRepository) CountByWorkerAndStatuses(ctx context.Context, workerID string, statuses []model.WorkerStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.WorkerProcess{}).
		Where("worker_id = ? AND status IN ?", workerID, statuses).
		Count(&n).Error
	return n, wrapError(err)
}

func (r *workerProcessRepository) AppliedProcessIDs(ctx context.Context, workerID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&model.WorkerProcess{}).
		Where("worker_id = ?", workerID).
		Pluck("process_id", &ids).Error
	return ids, wrapError(err)
}

func (r *workerProcessRepository) CountByCompany(ctx context.Context, companyID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.WorkerProcess{}).
		Joins("JOIN selection_processes ON selection_processes.id = worker_processes.process_id").
		Where("selection_processes.company_id = ?", companyID).
		Count(&n).Error
	return n, wrapError(err)
}

func (r *workerProcessRepository) CountByCompanyCreatedBefore(ctx context.Context, companyID string, cutoff time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.WorkerProcess{}).
		Joins("JOIN selection_processes ON selection_processes.id = worker_processes.process_id").
		Where("selection_processes.company_id = ? AND worker_processes.created_at < ?", companyID, cutoff).
		Count(&n).Error
	return n, wrapError(err)
}

func (r *workerProcessRepository) CountByCompanyAndStatus(ctx context.Context, companyID string, status model.WorkerStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.WorkerProcess{}).
		Joins("JOIN selection_processes ON selection_processes.id = worker_processes.process_id").
		Where("selection_processes.company_id = ? AND worker_processes.status = ?", companyID, status).
		Count(&n).Error
	return n, wrapError(err)
}
