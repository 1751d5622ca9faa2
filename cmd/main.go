package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/nvalenzuela/selekta/config"
	"github.com/nvalenzuela/selekta/database"
	_ "github.com/nvalenzuela/selekta/docs" // swagger docs, generated by swag
	"github.com/nvalenzuela/selekta/internal/auth"
	adminctrl "github.com/nvalenzuela/selekta/internal/controller/admin"
	userctrl "github.com/nvalenzuela/selekta/internal/controller/user"
	"github.com/nvalenzuela/selekta/internal/logger"
	"github.com/nvalenzuela/selekta/internal/model"
	"github.com/nvalenzuela/selekta/internal/repository"
	"github.com/nvalenzuela/selekta/internal/service"
)

// @title Selekta Hiring Pipeline API
// @version 1.0
// @description Selection processes: candidate applications, test taking, automatic and manual grading.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
			auth.NewHeaderRoleChecker,
			service.SystemClock,
		),

		fx.Provide(
			repository.NewTestRepository,
			repository.NewQuestionRepository,
			repository.NewTestResponseRepository,
			repository.NewTestAnswerRepository,
			repository.NewWorkerProcessRepository,
			repository.NewSelectionProcessRepository,
			repository.NewWorkerRepository,
			repository.NewCompanyRepository,
		),

		fx.Provide(
			service.NewTestCatalogService,
			service.NewScoringService,
			service.NewTestResponseService,
			service.NewApplicationService,
		),

		fx.Provide(
			adminctrl.NewTestController,
			adminctrl.NewEvaluationController,
			userctrl.NewResponseController,
			userctrl.NewApplicationController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Principal-Role"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer wires the API routes and manages the HTTP
// server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	roles auth.RoleChecker,
	testCtrl *adminctrl.TestController,
	evalCtrl *adminctrl.EvaluationController,
	responseCtrl *userctrl.ResponseController,
	applicationCtrl *userctrl.ApplicationController,
) {
	api := router.Group("/api/v1")

	adminGroup := api.Group("/admin", auth.RequireRoles(roles, auth.RoleAdmin))
	{
		tests := adminGroup.Group("/tests")
		tests.POST("", testCtrl.CreateTest)
		tests.GET("", testCtrl.ListTests)
		tests.GET("/:id", testCtrl.GetTest)
		tests.PUT("/:id", testCtrl.UpdateTest)
		tests.DELETE("/:id", testCtrl.DeleteTest)
		tests.PATCH("/:id/toggle-active", testCtrl.ToggleActive)
		tests.GET("/type/:type", testCtrl.ListByType)
	}

	responses := api.Group("/test-responses")
	{
		responses.POST("/start", auth.RequireRoles(roles, auth.RoleWorker, auth.RoleEvaluator, auth.RoleAdmin), responseCtrl.StartTest)
		responses.POST("/:id/submit", auth.RequireRoles(roles, auth.RoleWorker, auth.RoleEvaluator, auth.RoleAdmin), responseCtrl.SubmitTest)
		responses.GET("/:id", auth.RequireRoles(roles, auth.RoleWorker, auth.RoleEvaluator, auth.RoleCompany, auth.RoleAdmin), responseCtrl.GetResponse)
		responses.GET("/worker-process/:id", auth.RequireRoles(roles, auth.RoleEvaluator, auth.RoleCompany, auth.RoleAdmin), responseCtrl.ListByWorkerProcess)
		responses.GET("/test/:testId", auth.RequireRoles(roles, auth.RoleEvaluator, auth.RoleAdmin), responseCtrl.ListByTest)

		evaluators := auth.RequireRoles(roles, auth.RoleEvaluator, auth.RoleAdmin)
		responses.POST("/:id/evaluate", evaluators, evalCtrl.AutoEvaluate)
		responses.POST("/:id/recalculate", evaluators, evalCtrl.RecalculateScore)
	}
	api.PATCH("/answers/:id/evaluate", auth.RequireRoles(roles, auth.RoleEvaluator, auth.RoleAdmin), evalCtrl.EvaluateAnswer)

	applications := api.Group("/applications")
	{
		applications.POST("", auth.RequireRoles(roles, auth.RoleWorker, auth.RoleAdmin), applicationCtrl.Apply)
		applications.PATCH("/:id/status", auth.RequireRoles(roles, auth.RoleEvaluator, auth.RoleCompany, auth.RoleAdmin), applicationCtrl.UpdateStatus)
		applications.GET("/stats", auth.RequireRoles(roles, auth.RoleAdmin), applicationCtrl.Stats)
		applications.GET("/:id", auth.RequireRoles(roles, auth.RoleWorker, auth.RoleEvaluator, auth.RoleCompany, auth.RoleAdmin), applicationCtrl.GetApplication)
		applications.GET("/worker/:workerId", auth.RequireRoles(roles, auth.RoleWorker, auth.RoleAdmin), applicationCtrl.ListByWorker)
		applications.GET("/worker/:workerId/dashboard", auth.RequireRoles(roles, auth.RoleWorker, auth.RoleAdmin), applicationCtrl.WorkerDashboard)
		applications.GET("/process/:processId", auth.RequireRoles(roles, auth.RoleCompany, auth.RoleEvaluator, auth.RoleAdmin), applicationCtrl.ListByProcess)
		applications.GET("/company/:companyId/dashboard", auth.RequireRoles(roles, auth.RoleCompany, auth.RoleAdmin), applicationCtrl.CompanyDashboard)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Selekta API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Company{},
		&model.Worker{},
		&model.SelectionProcess{},
		&model.Test{},
		&model.Question{},
		&model.WorkerProcess{},
		&model.TestResponse{},
		&model.TestAnswer{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
