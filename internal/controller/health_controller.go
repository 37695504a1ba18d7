package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/qcmforge/internal/service"
	"gorm.io/gorm"
)

// HealthController serves liveness and dependency diagnostics.
type HealthController struct {
	db        *gorm.DB
	generator service.QuizGeneratorService
}

func NewHealthController(db *gorm.DB, generator service.QuizGeneratorService) *HealthController {
	return &HealthController{db: db, generator: generator}
}

// Healthz godoc
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /healthz [get]
func (c *HealthController) Healthz(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

// Diag godoc
// @Summary Dependency diagnostics
// @Description Reports whether the LLM client is configured and the database reachable.
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /diag [get]
func (c *HealthController) Diag(ctx *gin.Context) {
	dbOK := true
	if sqlDB, err := c.db.DB(); err != nil || sqlDB.Ping() != nil {
		dbOK = false
	}
	ctx.JSON(http.StatusOK, gin.H{
		"gemini_ready": c.generator.Ready(),
		"db_ok":        dbOK,
	})
}
