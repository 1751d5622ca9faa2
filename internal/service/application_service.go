package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nvalenzuela/selekta/internal/apperr"
	"github.com/nvalenzuela/selekta/internal/dto"
	"github.com/nvalenzuela/selekta/internal/model"
	"github.com/nvalenzuela/selekta/internal/repository"
)

// ApplicationService owns the candidate-application aggregate and its
// pipeline status, plus the dashboard aggregates derived from it.
//
// Status transitions are deliberately permissive: any status may be set
// by an authorized evaluator, and callers pick legal transitions.
type ApplicationService interface {
	Apply(ctx context.Context, req dto.ApplyDTO) (*dto.ApplicationDTO, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateApplicationStatusDTO) (*dto.ApplicationDTO, error)
	GetApplication(ctx context.Context, id string) (*dto.ApplicationDTO, error)
	ListByWorker(ctx context.Context, workerID string) ([]dto.ApplicationDTO, error)
	ListByProcess(ctx context.Context, processID string) ([]dto.ApplicationDTO, error)
	Stats(ctx context.Context) (*dto.ApplicationStatsDTO, error)
	WorkerDashboard(ctx context.Context, workerID string) (*dto.WorkerDashboardDTO, error)
	CompanyDashboard(ctx context.Context, companyID string) (*dto.CompanyDashboardDTO, error)
}

type applicationService struct {
	workerProcessRepo repository.WorkerProcessRepository
	processRepo       repository.SelectionProcessRepository
	workerRepo        repository.WorkerRepository
	companyRepo       repository.CompanyRepository
	clock             Clock
}

func NewApplicationService(
	workerProcessRepo repository.WorkerProcessRepository,
	processRepo repository.SelectionProcessRepository,
	workerRepo repository.WorkerRepository,
	companyRepo repository.CompanyRepository,
	clock Clock,
) ApplicationService {
	return &applicationService{
		workerProcessRepo: workerProcessRepo,
		processRepo:       processRepo,
		workerRepo:        workerRepo,
		companyRepo:       companyRepo,
		clock:             clock,
	}
}

// Apply creates the application in the initial state. The unique index on
// (worker_id, process_id) backs the lookup so two concurrent applies
// cannot both succeed.
func (s *applicationService) Apply(ctx context.Context, req dto.ApplyDTO) (*dto.ApplicationDTO, error) {
	if _, err := s.workerRepo.FindByID(ctx, req.WorkerID); err != nil {
		return nil, fmt.Errorf("apply worker %s to process %s: %w", req.WorkerID, req.ProcessID, err)
	}
	if _, err := s.processRepo.FindByID(ctx, req.ProcessID); err != nil {
		return nil, fmt.Errorf("apply worker %s to process %s: %w", req.WorkerID, req.ProcessID, err)
	}

	existing, err := s.workerProcessRepo.FindByWorkerAndProcess(ctx, req.WorkerID, req.ProcessID)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return nil, fmt.Errorf("apply worker %s to process %s: %w", req.WorkerID, req.ProcessID, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("apply worker %s to process %s: %w", req.WorkerID, req.ProcessID, apperr.ErrDuplicateApplication)
	}

	wp := &model.WorkerProcess{
		WorkerID:  req.WorkerID,
		ProcessID: req.ProcessID,
		Status:    model.StatusPending,
		AppliedAt: s.clock(),
		Notes:     req.Notes,
	}
	if err := s.workerProcessRepo.Create(ctx, wp); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, fmt.Errorf("apply worker %s to process %s: %w", req.WorkerID, req.ProcessID, apperr.ErrDuplicateApplication)
		}
		log.Error().Err(err).Str("workerID", req.WorkerID).Str("processID", req.ProcessID).Msg("Apply: failed to create application")
		return nil, fmt.Errorf("apply worker %s to process %s: %w", req.WorkerID, req.ProcessID, err)
	}

	log.Info().Str("applicationID", wp.ID).Str("workerID", req.WorkerID).Str("processID", req.ProcessID).Msg("worker applied to process")
	return toApplicationDTO(wp), nil
}

// UpdateStatus overwrites status and notes through a whitelist and stamps
// evaluatedAt. It has no side effect on any test response.
func (s *applicationService) UpdateStatus(ctx context.Context, id string, req dto.UpdateApplicationStatusDTO) (*dto.ApplicationDTO, error) {
	if !req.Status.Valid() {
		return nil, apperr.Validationf("unknown application status %q", req.Status)
	}
	if _, err := s.workerProcessRepo.FindByID(ctx, id); err != nil {
		return nil, fmt.Errorf("update application %s: %w", id, err)
	}

	fields := map[string]any{
		"status":       req.Status,
		"evaluated_at": s.clock(),
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}
	if err := s.workerProcessRepo.UpdateFields(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("update application %s: %w", id, err)
	}

	updated, err := s.workerProcessRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update application %s: reload: %w", id, err)
	}
	log.Info().Str("applicationID", id).Str("status", string(req.Status)).Msg("application status updated")
	return toApplicationDTO(updated), nil
}

func (s *applicationService) GetApplication(ctx context.Context, id string) (*dto.ApplicationDTO, error) {
	wp, err := s.workerProcessRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("application %s: %w", id, err)
	}
	return toApplicationDTO(wp), nil
}

func (s *applicationService) ListByWorker(ctx context.Context, workerID string) ([]dto.ApplicationDTO, error) {
	wps, err := s.workerProcessRepo.FindByWorker(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("applications of worker %s: %w", workerID, err)
	}
	return toApplicationDTOs(wps), nil
}

func (s *applicationService) ListByProcess(ctx context.Context, processID string) ([]dto.ApplicationDTO, error) {
	wps, err := s.workerProcessRepo.FindByProcess(ctx, processID)
	if err != nil {
		return nil, fmt.Errorf("applications of process %s: %w", processID, err)
	}
	return toApplicationDTOs(wps), nil
}

// Stats runs one count per status. The figures are only mutually
// consistent under a single consistent read; concurrent writes may skew
// them against each other, which is acceptable for dashboard use.
func (s *applicationService) Stats(ctx context.Context) (*dto.ApplicationStatsDTO, error) {
	total, err := s.workerProcessRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("application stats: %w", err)
	}
	byStatus := make(map[model.WorkerStatus]int64, len(model.AllWorkerStatuses))
	for _, status := range model.AllWorkerStatuses {
		n, err := s.workerProcessRepo.CountByStatus(ctx, status)
		if err != nil {
			return nil, fmt.Errorf("application stats: count %s: %w", status, err)
		}
		byStatus[status] = n
	}
	return &dto.ApplicationStatsDTO{Total: total, ByStatus: byStatus}, nil
}

// WorkerDashboard summarizes a candidate's pipeline: applications made,
// in process, finalized, and active processes still open to them.
func (s *applicationService) WorkerDashboard(ctx context.Context, workerID string) (*dto.WorkerDashboardDTO, error) {
	if _, err := s.workerRepo.FindByID(ctx, workerID); err != nil {
		return nil, fmt.Errorf("worker dashboard %s: %w", workerID, err)
	}

	aplicadas, err := s.workerProcessRepo.CountByWorker(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("worker dashboard %s: %w", workerID, err)
	}
	enProceso, err := s.workerProcessRepo.CountByWorkerAndStatuses(ctx, workerID, []model.WorkerStatus{model.StatusInProcess})
	if err != nil {
		return nil, fmt.Errorf("worker dashboard %s: %w", workerID, err)
	}
	finalizadas, err := s.workerProcessRepo.CountByWorkerAndStatuses(ctx, workerID, finalStatuses())
	if err != nil {
		return nil, fmt.Errorf("worker dashboard %s: %w", workerID, err)
	}

	appliedIDs, err := s.workerProcessRepo.AppliedProcessIDs(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("worker dashboard %s: %w", workerID, err)
	}
	totalActive, err := s.processRepo.CountByStatus(ctx, model.ProcessActive)
	if err != nil {
		return nil, fmt.Errorf("worker dashboard %s: %w", workerID, err)
	}
	appliedActive, err := s.processRepo.CountByStatusIn(ctx, model.ProcessActive, appliedIDs)
	if err != nil {
		return nil, fmt.Errorf("worker dashboard %s: %w", workerID, err)
	}

	return &dto.WorkerDashboardDTO{
		Aplicadas:   aplicadas,
		EnProceso:   enProceso,
		Finalizadas: finalizadas,
		Disponibles: totalActive - appliedActive,
	}, nil
}

// CompanyDashboard derives the company's card figures from point-in-time
// counts. "Nuevos" deltas are current minus count-as-of-cutoff and may be
// negative; they are surfaced as-is.
func (s *applicationService) CompanyDashboard(ctx context.Context, companyID string) (*dto.CompanyDashboardDTO, error) {
	if _, err := s.companyRepo.FindByID(ctx, companyID); err != nil {
		return nil, fmt.Errorf("company dashboard %s: %w", companyID, err)
	}

	now := s.clock()
	oneMonthAgo := now.AddDate(0, -1, 0)
	oneWeekAgo := now.Add(-7 * 24 * time.Hour)
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	procesosActivos, err := s.processRepo.CountByCompanyAndStatus(ctx, companyID, model.ProcessActive)
	if err != nil {
		return nil, fmt.Errorf("company dashboard %s: %w", companyID, err)
	}
	activosMesAnterior, err := s.processRepo.CountByCompanyAndStatusCreatedBefore(ctx, companyID, model.ProcessActive, oneMonthAgo)
	if err != nil {
		return nil, fmt.Errorf("company dashboard %s: %w", companyID, err)
	}
	procesosNuevos := procesosActivos - activosMesAnterior

	candidatosTotales, err := s.workerProcessRepo.CountByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("company dashboard %s: %w", companyID, err)
	}
	candidatosSemanaAnterior, err := s.workerProcessRepo.CountByCompanyCreatedBefore(ctx, companyID, oneWeekAgo)
	if err != nil {
		return nil, fmt.Errorf("company dashboard %s: %w", companyID, err)
	}
	candidatosNuevos := candidatosTotales - candidatosSemanaAnterior

	candidatosAprobados, err := s.workerProcessRepo.CountByCompanyAndStatus(ctx, companyID, model.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("company dashboard %s: %w", companyID, err)
	}
	tasa := 0.0
	if candidatosTotales > 0 {
		tasa = float64(candidatosAprobados) / float64(candidatosTotales) * 100
	}

	procesosCompletados, err := s.processRepo.CountByCompanyAndStatusUpdatedAfter(ctx, companyID, model.ProcessCompleted, startOfMonth)
	if err != nil {
		return nil, fmt.Errorf("company dashboard %s: %w", companyID, err)
	}

	return &dto.CompanyDashboardDTO{
		ProcesosActivos: dto.DashboardMetricDTO{
			Total:  procesosActivos,
			Nuevos: procesosNuevos,
			Texto:  monthDeltaText(procesosNuevos),
		},
		Candidatos: dto.DashboardMetricDTO{
			Total:  candidatosTotales,
			Nuevos: candidatosNuevos,
			Texto:  weekDeltaText(candidatosNuevos),
		},
		CandidatosAprobados: dto.ApprovalMetricDTO{
			Total:          candidatosAprobados,
			TasaAprobacion: fmt.Sprintf("%.1f%% tasa de aprobación", tasa),
		},
		ProcesosCompletados: dto.CompletedMetricDTO{
			Total: procesosCompletados,
			Texto: "Este mes",
		},
	}, nil
}

func finalStatuses() []model.WorkerStatus {
	var out []model.WorkerStatus
	for _, status := range model.AllWorkerStatuses {
		if status.Final() {
			out = append(out, status)
		}
	}
	return out
}

func monthDeltaText(delta int64) string {
	switch {
	case delta > 0:
		return fmt.Sprintf("+%d desde el mes pasado", delta)
	case delta < 0:
		return fmt.Sprintf("%d desde el mes pasado", delta)
	default:
		return "Sin cambios este mes"
	}
}

func weekDeltaText(delta int64) string {
	if delta > 0 {
		return fmt.Sprintf("+%d esta semana", delta)
	}
	return "Sin nuevos esta semana"
}

func toApplicationDTOs(wps []model.WorkerProcess) []dto.ApplicationDTO {
	out := make([]dto.ApplicationDTO, len(wps))
	for i := range wps {
		out[i] = *toApplicationDTO(&wps[i])
	}
	return out
}
