package dto

import (
	"time"

	"github.com/nvalenzuela/selekta/internal/model"
)

// ApplyDTO applies a worker to a selection process.
type ApplyDTO struct {
	WorkerID  string  `json:"worker_id" binding:"required,uuid"`
	ProcessID string  `json:"process_id" binding:"required,uuid"`
	Notes     *string `json:"notes"`
}

// UpdateApplicationStatusDTO moves an application to a new pipeline state.
type UpdateApplicationStatusDTO struct {
	Status model.WorkerStatus `json:"status" binding:"required,oneof=pending in_process approved rejected hired"`
	Notes  *string            `json:"notes"`
}

type ApplicationDTO struct {
	ID          string             `json:"id"`
	WorkerID    string             `json:"worker_id"`
	ProcessID   string             `json:"process_id"`
	Status      model.WorkerStatus `json:"status"`
	AppliedAt   time.Time          `json:"applied_at"`
	EvaluatedAt *time.Time         `json:"evaluated_at,omitempty"`
	Notes       *string            `json:"notes,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// ApplicationStatsDTO is the global pipeline breakdown. Each count comes
// from an independent query, so the figures are only mutually consistent
// under a single consistent read.
type ApplicationStatsDTO struct {
	Total    int64                        `json:"total"`
	ByStatus map[model.WorkerStatus]int64 `json:"by_status"`
}

// WorkerDashboardDTO mirrors the candidate-facing dashboard card figures.
type WorkerDashboardDTO struct {
	Aplicadas   int64 `json:"aplicadas"`
	EnProceso   int64 `json:"enProceso"`
	Finalizadas int64 `json:"finalizadas"`
	Disponibles int64 `json:"disponibles"`
}

// DashboardMetricDTO is one company dashboard card: a point-in-time total,
// the delta since the previous period (may be negative, surfaced as-is)
// and the display text for that delta.
type DashboardMetricDTO struct {
	Total  int64  `json:"total"`
	Nuevos int64  `json:"nuevos"`
	Texto  string `json:"texto"`
}

// ApprovalMetricDTO is the approved-candidates card.
type ApprovalMetricDTO struct {
	Total          int64  `json:"total"`
	TasaAprobacion string `json:"tasaAprobacion"`
}

// CompletedMetricDTO is the processes-completed-this-month card.
type CompletedMetricDTO struct {
	Total int64  `json:"total"`
	Texto string `json:"texto"`
}

type CompanyDashboardDTO struct {
	ProcesosActivos     DashboardMetricDTO `json:"procesosActivos"`
	Candidatos          DashboardMetricDTO `json:"candidatos"`
	CandidatosAprobados ApprovalMetricDTO  `json:"candidatosAprobados"`
	ProcesosCompletados CompletedMetricDTO `json:"procesosCompletados"`
}
