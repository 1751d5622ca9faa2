package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/nvalenzuela/selekta/internal/controller"
	"github.com/nvalenzuela/selekta/internal/dto"
	"github.com/nvalenzuela/selekta/internal/service"
)

// ResponseController exposes the candidate-facing test-taking operations.
type ResponseController struct {
	responses service.TestResponseService
}

func NewResponseController(responses service.TestResponseService) *ResponseController {
	return &ResponseController{responses: responses}
}

// StartTest godoc
// @Summary Start a test for an application
// @Description Returns the existing in-progress response if one exists; fails if the test was already completed.
// @Tags Test Responses
// @Accept json
// @Produce json
// @Param start_data body dto.StartTestDTO true "Test and application identifiers"
// @Success 200 {object} dto.TestResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /test-responses/start [post]
func (c *ResponseController) StartTest(ctx *gin.Context) {
	var req dto.StartTestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}

	response, err := c.responses.StartTest(ctx.Request.Context(), req)
	if err != nil {
		log.Warn().Err(err).Str("testID", req.TestID).Msg("StartTest: service error")
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response)
}

// SubmitTest godoc
// @Summary Submit answers for a response
// @Description Upserts answers by question identity, auto-grades when allowed and marks the response completed.
// @Tags Test Responses
// @Accept json
// @Produce json
// @Param id path string true "Test response ID"
// @Param submission body dto.SubmitTestDTO true "Answers"
// @Success 200 {object} dto.TestResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /test-responses/{id}/submit [post]
func (c *ResponseController) SubmitTest(ctx *gin.Context) {
	var req dto.SubmitTestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}

	response, err := c.responses.SubmitTest(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		log.Warn().Err(err).Str("responseID", ctx.Param("id")).Msg("SubmitTest: service error")
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response)
}

// GetResponse godoc
// @Summary Get a response with its answers
// @Tags Test Responses
// @Produce json
// @Param id path string true "Test response ID"
// @Success 200 {object} dto.TestResponseDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /test-responses/{id} [get]
func (c *ResponseController) GetResponse(ctx *gin.Context) {
	response, err := c.responses.GetResponse(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response)
}

// ListByWorkerProcess godoc
// @Summary List an application's responses, newest first
// @Tags Test Responses
// @Produce json
// @Param id path string true "Application (worker process) ID"
// @Success 200 {array} dto.TestResponseDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /test-responses/worker-process/{id} [get]
func (c *ResponseController) ListByWorkerProcess(ctx *gin.Context) {
	responses, err := c.responses.FindByWorkerProcess(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, responses)
}

// ListByTest godoc
// @Summary List a test's responses, newest first
// @Tags Test Responses
// @Produce json
// @Param testId path string true "Test ID"
// @Success 200 {array} dto.TestResponseDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /test-responses/test/{testId} [get]
func (c *ResponseController) ListByTest(ctx *gin.Context) {
	responses, err := c.responses.FindByTest(ctx.Request.Context(), ctx.Param("testId"))
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, responses)
}
