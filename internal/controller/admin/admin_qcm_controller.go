package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/qcmforge/internal/controller"
	"github.com/lshigami/qcmforge/internal/dto"
	"github.com/lshigami/qcmforge/internal/service"
	"github.com/rs/zerolog/log"
)

type AdminQcmController struct {
	generationSvc service.GenerationService
	adminSvc      service.AdminQcmService
	inviteSvc     service.InviteService
}

func NewAdminQcmController(
	generationSvc service.GenerationService,
	adminSvc service.AdminQcmService,
	inviteSvc service.InviteService,
) *AdminQcmController {
	return &AdminQcmController{
		generationSvc: generationSvc,
		adminSvc:      adminSvc,
		inviteSvc:     inviteSvc,
	}
}

// CreateDraftFromJD godoc
// @Summary (Admin) Generate a draft quiz from a job description
// @Description Uses the LLM to infer skills and generate MCQs, then persists the draft atomically. Nothing is stored when generation fails.
// @Tags Admin - QCM
// @Accept json
// @Produce json
// @Param request body dto.CreateDraftRequest true "Job description, language and question count"
// @Success 201 {object} dto.CreateDraftResponse
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid input"
// @Failure 502 {object} dto.ErrorResponse "LLM unavailable or unusable output"
// @Router /qcm/create_draft_from_jd [post]
func (c *AdminQcmController) CreateDraftFromJD(ctx *gin.Context) {
	var req dto.CreateDraftRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateDraftFromJD: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "INVALID_INPUT", Message: err.Error()})
		return
	}

	resp, err := c.generationSvc.CreateDraftFromJD(ctx.Request.Context(), req)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// GetQcm godoc
// @Summary (Admin) Get a quiz with correctness and explanations
// @Tags Admin - QCM
// @Produce json
// @Param qcm_id path string true "Qcm ID"
// @Success 200 {object} dto.AdminQcmResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /qcm/{qcm_id}/admin [get]
func (c *AdminQcmController) GetQcm(ctx *gin.Context) {
	resp, err := c.adminSvc.GetQcm(ctx.Param("qcm_id"))
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// RegenerateQuestion godoc
// @Summary (Admin) Regenerate one question in place
// @Description Replaces text, explanation and options while keeping the question id. Sibling questions are untouched.
// @Tags Admin - QCM
// @Produce json
// @Param qcm_id path string true "Qcm ID"
// @Param question_id path string true "Question ID"
// @Success 200 {object} dto.RegenerateQuestionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse "LLM unavailable or unusable output"
// @Router /qcm/{qcm_id}/question/{question_id}/regenerate [post]
func (c *AdminQcmController) RegenerateQuestion(ctx *gin.Context) {
	resp, err := c.generationSvc.RegenerateQuestion(ctx.Request.Context(), ctx.Param("qcm_id"), ctx.Param("question_id"))
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Publish godoc
// @Summary (Admin) Publish a draft quiz and mint its share token
// @Description One-way draft to published transition. A second publish fails and leaves the existing token unchanged.
// @Tags Admin - QCM
// @Produce json
// @Param qcm_id path string true "Qcm ID"
// @Success 200 {object} dto.PublishResponse
// @Failure 400 {object} dto.ErrorResponse "Quiz is not in draft"
// @Failure 404 {object} dto.ErrorResponse
// @Router /qcm/{qcm_id}/publish [post]
func (c *AdminQcmController) Publish(ctx *gin.Context) {
	resp, err := c.inviteSvc.PublishQcm(ctx.Param("qcm_id"))
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetResults godoc
// @Summary (Admin) List attempts and scores for a quiz
// @Tags Admin - Results
// @Produce json
// @Param qcm_id path string true "Qcm ID"
// @Success 200 {object} dto.QcmResultsResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/qcm/{qcm_id}/results [get]
func (c *AdminQcmController) GetResults(ctx *gin.Context) {
	resp, err := c.adminSvc.GetResults(ctx.Param("qcm_id"))
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetAttemptDetail godoc
// @Summary (Admin) Get one attempt with per-answer correctness
// @Tags Admin - Results
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptDetailResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/attempts/{attempt_id} [get]
func (c *AdminQcmController) GetAttemptDetail(ctx *gin.Context) {
	resp, err := c.adminSvc.GetAttemptDetail(ctx.Param("attempt_id"))
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
