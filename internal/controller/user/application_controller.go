package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/nvalenzuela/selekta/internal/controller"
	"github.com/nvalenzuela/selekta/internal/dto"
	"github.com/nvalenzuela/selekta/internal/service"
)

// ApplicationController exposes the candidate-application pipeline.
type ApplicationController struct {
	applications service.ApplicationService
}

func NewApplicationController(applications service.ApplicationService) *ApplicationController {
	return &ApplicationController{applications: applications}
}

// Apply godoc
// @Summary Apply a worker to a selection process
// @Tags Applications
// @Accept json
// @Produce json
// @Param application body dto.ApplyDTO true "Worker and process identifiers"
// @Success 201 {object} dto.ApplicationDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /applications [post]
func (c *ApplicationController) Apply(ctx *gin.Context) {
	var req dto.ApplyDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}

	application, err := c.applications.Apply(ctx.Request.Context(), req)
	if err != nil {
		log.Warn().Err(err).Str("workerID", req.WorkerID).Str("processID", req.ProcessID).Msg("Apply: service error")
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, application)
}

// UpdateStatus godoc
// @Summary Update an application's pipeline status
// @Tags Applications
// @Accept json
// @Produce json
// @Param id path string true "Application ID"
// @Param status body dto.UpdateApplicationStatusDTO true "New status and optional notes"
// @Success 200 {object} dto.ApplicationDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /applications/{id}/status [patch]
func (c *ApplicationController) UpdateStatus(ctx *gin.Context) {
	var req dto.UpdateApplicationStatusDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}

	application, err := c.applications.UpdateStatus(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		log.Warn().Err(err).Str("applicationID", ctx.Param("id")).Msg("UpdateStatus: service error")
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, application)
}

// GetApplication godoc
// @Summary Get one application
// @Tags Applications
// @Produce json
// @Param id path string true "Application ID"
// @Success 200 {object} dto.ApplicationDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /applications/{id} [get]
func (c *ApplicationController) GetApplication(ctx *gin.Context) {
	application, err := c.applications.GetApplication(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, application)
}

// ListByWorker godoc
// @Summary List a worker's applications, newest first
// @Tags Applications
// @Produce json
// @Param workerId path string true "Worker ID"
// @Success 200 {array} dto.ApplicationDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /applications/worker/{workerId} [get]
func (c *ApplicationController) ListByWorker(ctx *gin.Context) {
	applications, err := c.applications.ListByWorker(ctx.Request.Context(), ctx.Param("workerId"))
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, applications)
}

// ListByProcess godoc
// @Summary List a process's applications, newest first
// @Tags Applications
// @Produce json
// @Param processId path string true "Process ID"
// @Success 200 {array} dto.ApplicationDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /applications/process/{processId} [get]
func (c *ApplicationController) ListByProcess(ctx *gin.Context) {
	applications, err := c.applications.ListByProcess(ctx.Request.Context(), ctx.Param("processId"))
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, applications)
}

// Stats godoc
// @Summary Global application counts per status
// @Tags Applications
// @Produce json
// @Success 200 {object} dto.ApplicationStatsDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /applications/stats [get]
func (c *ApplicationController) Stats(ctx *gin.Context) {
	stats, err := c.applications.Stats(ctx.Request.Context())
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

// WorkerDashboard godoc
// @Summary Candidate dashboard figures
// @Tags Applications
// @Produce json
// @Param workerId path string true "Worker ID"
// @Success 200 {object} dto.WorkerDashboardDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /applications/worker/{workerId}/dashboard [get]
func (c *ApplicationController) WorkerDashboard(ctx *gin.Context) {
	dashboard, err := c.applications.WorkerDashboard(ctx.Request.Context(), ctx.Param("workerId"))
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dashboard)
}

// CompanyDashboard godoc
// @Summary Company dashboard figures
// @Description Point-in-time counts; "nuevos" deltas may be negative and are not clamped.
// @Tags Applications
// @Produce json
// @Param companyId path string true "Company ID"
// @Success 200 {object} dto.CompanyDashboardDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /applications/company/{companyId}/dashboard [get]
func (c *ApplicationController) CompanyDashboard(ctx *gin.Context) {
	dashboard, err := c.applications.CompanyDashboard(ctx.Request.Context(), ctx.Param("companyId"))
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dashboard)
}
