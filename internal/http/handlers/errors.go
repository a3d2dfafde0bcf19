package handlers

import (
	"net/http"

	"shop-backend/internal/domain"
	"shop-backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, code, message string) {
	if code == "" {
		code = http.StatusText(status)
	}
	payload := gin.H{
		"message": message,
		"code":    code,
	}
	if reqID := middleware.GetRequestID(c); reqID != "" {
		payload["request_id"] = reqID
	}
	c.JSON(status, payload)
}

// RespondDomainError maps domain errors to HTTP responses. Validation
// failures carry their own machine-readable message; anything
// unrecognized becomes an opaque 500.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error())
	case domain.IsTimeout(err):
		respondError(c, http.StatusServiceUnavailable, "timeout", err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "Internal server error")
	}
}
