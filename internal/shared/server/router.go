package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voice-backend/internal/analyses"
	"voice-backend/internal/services/health"
	"voice-backend/internal/shared/config"
	"voice-backend/internal/shared/metrics"
	"voice-backend/internal/shared/server/middleware"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config, analysisHandler *analyses.Handler, healthSvc *health.Service) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)
	r.MaxMultipartMemory = 8 << 20

	analysisHandler.RegisterRoutes(r)

	r.GET("/health", func(c *gin.Context) {
		status := healthSvc.Check(c.Request.Context())
		code := http.StatusOK
		if !status.Healthy() {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"success":  status.Healthy(),
			"ai":       status.AI,
			"database": status.Database,
		})
	})
	r.GET("/metrics", metrics.Handler())

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
