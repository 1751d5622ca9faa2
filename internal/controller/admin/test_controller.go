package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/nvalenzuela/selekta/internal/controller"
	"github.com/nvalenzuela/selekta/internal/dto"
	"github.com/nvalenzuela/selekta/internal/model"
	"github.com/nvalenzuela/selekta/internal/service"
)

type TestController struct {
	catalog service.TestCatalogService
}

func NewTestController(catalog service.TestCatalogService) *TestController {
	return &TestController{catalog: catalog}
}

// CreateTest godoc
// @Summary (Admin) Create a test with its question set
// @Description Creates a test and all its questions atomically. Question order follows payload order.
// @Tags Admin - Tests
// @Accept json
// @Produce json
// @Param test_data body dto.TestCreateDTO true "Test definition with questions"
// @Success 201 {object} dto.TestDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/tests [post]
func (c *TestController) CreateTest(ctx *gin.Context) {
	var req dto.TestCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateTest: failed to bind JSON")
		controller.BindError(ctx, err)
		return
	}

	test, err := c.catalog.CreateTest(ctx.Request.Context(), req)
	if err != nil {
		log.Error().Err(err).Msg("Admin CreateTest: service error")
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, test)
}

// UpdateTest godoc
// @Summary (Admin) Update a test
// @Description Patches scalar fields; a provided questions array replaces the whole question set.
// @Tags Admin - Tests
// @Accept json
// @Produce json
// @Param id path string true "Test ID"
// @Param test_data body dto.TestUpdateDTO true "Fields to update"
// @Success 200 {object} dto.TestDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/tests/{id} [put]
func (c *TestController) UpdateTest(ctx *gin.Context) {
	var req dto.TestUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}

	test, err := c.catalog.UpdateTest(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		log.Error().Err(err).Str("testID", ctx.Param("id")).Msg("Admin UpdateTest: service error")
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, test)
}

// ToggleActive godoc
// @Summary (Admin) Toggle a test's active flag
// @Tags Admin - Tests
// @Produce json
// @Param id path string true "Test ID"
// @Success 200 {object} dto.TestDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/tests/{id}/toggle-active [patch]
func (c *TestController) ToggleActive(ctx *gin.Context) {
	test, err := c.catalog.ToggleActive(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, test)
}

// GetTest godoc
// @Summary (Admin) Get a test with its questions
// @Tags Admin - Tests
// @Produce json
// @Param id path string true "Test ID"
// @Success 200 {object} dto.TestDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/tests/{id} [get]
func (c *TestController) GetTest(ctx *gin.Context) {
	test, err := c.catalog.GetTest(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, test)
}

// ListTests godoc
// @Summary (Admin) List all tests
// @Tags Admin - Tests
// @Produce json
// @Success 200 {array} dto.TestDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/tests [get]
func (c *TestController) ListTests(ctx *gin.Context) {
	tests, err := c.catalog.ListTests(ctx.Request.Context())
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, tests)
}

// ListByType godoc
// @Summary (Admin) List active tests of a type
// @Tags Admin - Tests
// @Produce json
// @Param type path string true "Test type" Enums(knowledge, skills, psychological)
// @Success 200 {array} dto.TestDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/tests/type/{type} [get]
func (c *TestController) ListByType(ctx *gin.Context) {
	tests, err := c.catalog.ListByType(ctx.Request.Context(), model.TestType(ctx.Param("type")))
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, tests)
}

// DeleteTest godoc
// @Summary (Admin) Delete a test and its questions
// @Tags Admin - Tests
// @Param id path string true "Test ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/tests/{id} [delete]
func (c *TestController) DeleteTest(ctx *gin.Context) {
	if err := c.catalog.DeleteTest(ctx.Request.Context(), ctx.Param("id")); err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
