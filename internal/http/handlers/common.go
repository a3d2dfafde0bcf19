package handlers

import (
	"net/http"

	intconfig "shop-backend/internal/config"
	"shop-backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

var (
	jwtSecret  []byte
	uploadDir  string
	uploadPath string
)

// Configure hands the handlers package the pieces of the environment it
// needs. Called once from the router.
func Configure(env intconfig.Env) {
	jwtSecret = []byte(env.JWTSecret)
	uploadDir = env.UploadDir
	uploadPath = env.UploadPath
}

// RespondError sends standard error payload with request_id included.
// Keeps a machine-readable "message" in every error body.
func RespondError(c *gin.Context, status int, message string, err error) {
	reqID := middleware.GetRequestID(c)
	payload := gin.H{
		"message":    message,
		"request_id": reqID,
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "Request body is empty", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid request payload", err)
		return false
	}
	return true
}
