package public

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/qcmforge/internal/controller"
	"github.com/lshigami/qcmforge/internal/dto"
	"github.com/lshigami/qcmforge/internal/service"
	"github.com/rs/zerolog/log"
)

type PublicQcmController struct {
	publicSvc  service.PublicQcmService
	attemptSvc service.AttemptService
}

func NewPublicQcmController(publicSvc service.PublicQcmService, attemptSvc service.AttemptService) *PublicQcmController {
	return &PublicQcmController{publicSvc: publicSvc, attemptSvc: attemptSvc}
}

// GetQcmByToken godoc
// @Summary (Candidate) Fetch a published quiz through a share token
// @Description Returns the sanitized quiz: no correctness flags, no explanations. Unknown and expired tokens both yield 404.
// @Tags Public - QCM
// @Produce json
// @Param token path string true "Share token"
// @Success 200 {object} dto.PublicQcmResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /public/qcm/{token} [get]
func (c *PublicQcmController) GetQcmByToken(ctx *gin.Context) {
	resp, err := c.publicSvc.GetByToken(ctx.Param("token"))
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// StartAttempt godoc
// @Summary (Candidate) Start an attempt against a share token
// @Description Requires a currently-valid invite; consumes one use when the invite is capped.
// @Tags Public - Attempts
// @Accept json
// @Produce json
// @Param request body dto.StartAttemptRequest true "Share token and optional candidate email"
// @Success 201 {object} dto.StartAttemptResponse
// @Failure 404 {object} dto.ErrorResponse "Unknown, expired or exhausted token"
// @Router /attempts/start [post]
func (c *PublicQcmController) StartAttempt(ctx *gin.Context) {
	var req dto.StartAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("StartAttempt: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "INVALID_INPUT", Message: err.Error()})
		return
	}

	resp, err := c.attemptSvc.Start(req)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// SaveAnswer godoc
// @Summary (Candidate) Record the chosen option for a question
// @Description Upserts the answer for (attempt, question); a later call with a different option overwrites. No correctness feedback is returned.
// @Tags Public - Attempts
// @Accept json
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Param request body dto.SaveAnswerRequest true "Question and option ids"
// @Success 200 {object} dto.SaveAnswerResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ids or attempt already finished"
// @Failure 404 {object} dto.ErrorResponse
// @Router /attempts/{attempt_id}/answer [post]
func (c *PublicQcmController) SaveAnswer(ctx *gin.Context) {
	var req dto.SaveAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SaveAnswer: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "INVALID_INPUT", Message: err.Error()})
		return
	}

	resp, err := c.attemptSvc.SaveAnswer(ctx.Param("attempt_id"), req)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// FinishAttempt godoc
// @Summary (Candidate) Finish an attempt and compute the score
// @Description Legal exactly once; a second finish fails and the original score stays.
// @Tags Public - Attempts
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Success 200 {object} dto.FinishAttemptResponse
// @Failure 400 {object} dto.ErrorResponse "Attempt already finished"
// @Failure 404 {object} dto.ErrorResponse
// @Router /attempts/{attempt_id}/finish [post]
func (c *PublicQcmController) FinishAttempt(ctx *gin.Context) {
	resp, err := c.attemptSvc.Finish(ctx.Param("attempt_id"))
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
