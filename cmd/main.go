package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/qcmforge/config"
	"github.com/lshigami/qcmforge/database"
	_ "github.com/lshigami/qcmforge/docs" // Swagger docs
	"github.com/lshigami/qcmforge/internal/controller"
	adminctrl "github.com/lshigami/qcmforge/internal/controller/admin"
	publicctrl "github.com/lshigami/qcmforge/internal/controller/public"
	"github.com/lshigami/qcmforge/internal/logger"
	"github.com/lshigami/qcmforge/internal/model"
	"github.com/lshigami/qcmforge/internal/repository"
	"github.com/lshigami/qcmforge/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title QCM Forge API
// @version 1.0
// @description Quiz authoring and administration backend: LLM-drafted MCQs, admin review, share links, candidate attempts and scoring.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
		),

		// Repositories Layer
		fx.Provide(
			repository.NewQcmRepository,
			repository.NewQuestionRepository,
			repository.NewInviteRepository,
			repository.NewAttemptRepository,
			repository.NewAnswerRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewQuestionExtractor,
			service.NewGeminiQuizService,
			service.NewGenerationService,
			service.NewInviteService,
			service.NewAdminQcmService,
			service.NewPublicQcmService,
			service.NewAttemptService,
		),

		// API Controllers Layer
		fx.Provide(
			adminctrl.NewAdminQcmController,
			publicctrl.NewPublicQcmController,
			controller.NewHealthController,
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

	// Request logging through the global zerolog instance.
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
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	adminQcmCtrl *adminctrl.AdminQcmController,
	publicQcmCtrl *publicctrl.PublicQcmController,
	healthCtrl *controller.HealthController,
) {
	api := router.Group("/api/v1")
	{
		api.GET("/healthz", healthCtrl.Healthz)
		api.GET("/diag", healthCtrl.Diag)

		// Admin surface: authoring, publishing, results review.
		qcmGroup := api.Group("/qcm")
		qcmGroup.POST("/create_draft_from_jd", adminQcmCtrl.CreateDraftFromJD)
		qcmGroup.GET("/:qcm_id/admin", adminQcmCtrl.GetQcm)
		qcmGroup.POST("/:qcm_id/question/:question_id/regenerate", adminQcmCtrl.RegenerateQuestion)
		qcmGroup.POST("/:qcm_id/publish", adminQcmCtrl.Publish)

		adminGroup := api.Group("/admin")
		adminGroup.GET("/qcm/:qcm_id/results", adminQcmCtrl.GetResults)
		adminGroup.GET("/attempts/:attempt_id", adminQcmCtrl.GetAttemptDetail)

		// Candidate surface: token-gated quiz access and attempts.
		api.GET("/public/qcm/:token", publicQcmCtrl.GetQcmByToken)

		attemptGroup := api.Group("/attempts")
		attemptGroup.POST("/start", publicQcmCtrl.StartAttempt)
		attemptGroup.POST("/:attempt_id/answer", publicQcmCtrl.SaveAnswer)
		attemptGroup.POST("/:attempt_id/finish", publicQcmCtrl.FinishAttempt)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("QCM Forge API server starting on port %s", cfg.Server.Port)
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
		&model.Qcm{},
		&model.Question{},
		&model.Option{},
		&model.Invite{},
		&model.Attempt{},
		&model.Answer{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
