package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/qcmforge/internal/dto"
	"github.com/lshigami/qcmforge/internal/service"
)

// WriteError maps service sentinel errors to HTTP status codes. Anything
// the service layer did not classify is a 500.
func WriteError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, service.ErrStateConflict):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "STATE_CONFLICT", Message: err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "INVALID_INPUT", Message: err.Error()})
	case errors.Is(err, service.ErrGenerationFailed):
		ctx.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: "GENERATION_FAILED", Message: err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "INTERNAL", Message: err.Error()})
	}
}
