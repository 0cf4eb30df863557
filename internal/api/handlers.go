package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/alchemorsel-favourites/backend/internal/database"
	"github.com/pageza/alchemorsel-favourites/backend/internal/types"
)

const readinessTimeout = 2 * time.Second

// HealthCheck godoc
// @Summary  Liveness check
// @Tags     health
// @Produce  json
// @Success  200  {object}  types.HealthResponse
// @Router   /health [get]
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, types.HealthResponse{
		Message: "Server is running",
		Status:  "success",
	})
}

// ReadinessHandler reports whether the backing services are reachable
type ReadinessHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewReadinessHandler creates a ReadinessHandler; redisClient may be nil
func NewReadinessHandler(db *gorm.DB, redisClient *redis.Client) *ReadinessHandler {
	return &ReadinessHandler{db: db, redis: redisClient}
}

// Ready godoc
// @Summary  Readiness check
// @Tags     health
// @Produce  json
// @Success  200  {object}  types.ReadinessResponse
// @Failure  503  {object}  types.ReadinessResponse
// @Router   /ready [get]
func (h *ReadinessHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	resp := types.ReadinessResponse{Status: "ready", Checks: map[string]string{}}

	if err := database.HealthCheck(ctx, h.db); err != nil {
		resp.Checks["database"] = "unavailable"
		resp.Error = err.Error()
	} else {
		resp.Checks["database"] = "ok"
	}

	switch {
	case h.redis == nil:
		resp.Checks["cache"] = "disabled"
	case h.redis.Ping(ctx).Err() != nil:
		resp.Checks["cache"] = "unavailable"
		if resp.Error == "" {
			resp.Error = "cache ping failed"
		}
	default:
		resp.Checks["cache"] = "ok"
	}

	if resp.Error != "" {
		resp.Status = "unavailable"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}
