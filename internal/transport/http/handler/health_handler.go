package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db      *gorm.DB
	env     string
	version string
}

func NewHealthHandler(db *gorm.DB, env, version string) *HealthHandler {
	return &HealthHandler{db: db, env: env, version: version}
}

// Check reports liveness plus store connectivity; a failed ping degrades
// the response to 503 for the load balancer.
func (h *HealthHandler) Check(c *gin.Context) {
	dbStatus := "healthy"
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		dbStatus = "unhealthy"
	}

	status := http.StatusOK
	overall := "ok"
	if dbStatus != "healthy" {
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}
	c.JSON(status, gin.H{
		"status":      overall,
		"timestamp":   time.Now().Format(time.RFC3339),
		"environment": h.env,
		"version":     h.version,
		"checks":      gin.H{"database": dbStatus},
	})
}
