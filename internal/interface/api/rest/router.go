package rest

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"user-registry-api/internal/interface/api/rest/middleware"
)

// NewRouter builds the engine with the middleware chain every route shares.
func NewRouter(logger *zap.Logger, mCounter *prometheus.CounterVec) *gin.Engine {
	r := gin.New()
	r.Use(ginzap.CustomRecoveryWithZap(logger, true, RecoveryHandler))
	r.Use(middleware.RequestID())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Content-Type", middleware.KeyRequestID},
		ExposeHeaders:   []string{middleware.KeyRequestID},
		MaxAge:          12 * time.Hour,
	}))
	r.Use(middleware.RequestLogGin(logger, mCounter))

	return r
}
