package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/alchemorsel-favourites/backend/internal/service"
)

// RegisterRoutes registers all API routes under /api
func RegisterRoutes(router *gin.Engine, db *gorm.DB, redisClient *redis.Client, favourites service.IFavouriteService) {
	apiGroup := router.Group("/api")

	// Liveness never touches the database
	apiGroup.GET("/health", HealthCheck)
	apiGroup.GET("/ready", NewReadinessHandler(db, redisClient).Ready)

	NewFavouriteHandler(favourites).RegisterRoutes(apiGroup)
}
