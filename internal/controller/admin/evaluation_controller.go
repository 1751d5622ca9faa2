package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/nvalenzuela/selekta/internal/controller"
	"github.com/nvalenzuela/selekta/internal/dto"
	"github.com/nvalenzuela/selekta/internal/service"
)

// EvaluationController exposes the evaluator-facing grading operations.
type EvaluationController struct {
	scoring service.ScoringService
}

func NewEvaluationController(scoring service.ScoringService) *EvaluationController {
	return &EvaluationController{scoring: scoring}
}

// AutoEvaluate godoc
// @Summary (Evaluator) Auto-grade a response against its answer keys
// @Tags Evaluator - Scoring
// @Produce json
// @Param id path string true "Test response ID"
// @Success 200 {object} dto.TestResponseDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /test-responses/{id}/evaluate [post]
func (c *EvaluationController) AutoEvaluate(ctx *gin.Context) {
	response, err := c.scoring.AutoEvaluate(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		log.Error().Err(err).Str("responseID", ctx.Param("id")).Msg("AutoEvaluate: service error")
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response)
}

// EvaluateAnswer godoc
// @Summary (Evaluator) Manually grade one answer
// @Description Overwrites the answer's score, verdict and comment, then recalculates the response totals.
// @Tags Evaluator - Scoring
// @Accept json
// @Produce json
// @Param id path string true "Answer ID"
// @Param evaluation body dto.EvaluateAnswerDTO true "Evaluator verdict"
// @Success 200 {object} dto.AnswerDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /answers/{id}/evaluate [patch]
func (c *EvaluationController) EvaluateAnswer(ctx *gin.Context) {
	var req dto.EvaluateAnswerDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}

	answer, err := c.scoring.EvaluateAnswer(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		log.Error().Err(err).Str("answerID", ctx.Param("id")).Msg("EvaluateAnswer: service error")
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, answer)
}

// RecalculateScore godoc
// @Summary (Evaluator) Recompute a response's totals from its answers
// @Tags Evaluator - Scoring
// @Produce json
// @Param id path string true "Test response ID"
// @Success 200 {object} dto.TestResponseDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /test-responses/{id}/recalculate [post]
func (c *EvaluationController) RecalculateScore(ctx *gin.Context) {
	response, err := c.scoring.RecalculateScore(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response)
}
