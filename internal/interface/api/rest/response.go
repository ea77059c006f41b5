package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"user-registry-api/internal/interface/api/rest/middleware"
)

const (
	timestampLayout = "2006-01-02T15:04:05.000Z07:00"

	msgInternalError  = "Erro interno do servidor"
	msgInvalidRequest = "Corpo da requisição inválido"
)

type (
	Metadata struct {
		Timestamp string `json:"timestamp"`
		RequestID string `json:"requestId,omitempty"`
	}
	// Envelope is the shape of every /api response.
	Envelope struct {
		Success      bool     `json:"success"`
		Data         any      `json:"data,omitempty"`
		ErrorMessage string   `json:"errorMessage,omitempty"`
		Metadata     Metadata `json:"metadata"`
	}
	Health struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
	}
)

func metadata(c *gin.Context) Metadata {
	return Metadata{
		Timestamp: now(),
		RequestID: c.GetString(middleware.KeyRequestID),
	}
}

func respondOK(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{
		Success:  true,
		Data:     data,
		Metadata: metadata(c),
	})
}

func respondError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Envelope{
		Success:      false,
		ErrorMessage: msg,
		Metadata:     metadata(c),
	})
}

// RecoveryHandler answers a recovered panic with the 500 envelope.
func RecoveryHandler(c *gin.Context, _ any) {
	respondError(c, http.StatusInternalServerError, msgInternalError)
}

func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, Health{Status: "ok", Timestamp: now()})
}

func now() string { return time.Now().UTC().Format(timestampLayout) }
