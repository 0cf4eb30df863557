package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/pageza/alchemorsel-favourites/backend/config"
	_ "github.com/pageza/alchemorsel-favourites/backend/docs"
	"github.com/pageza/alchemorsel-favourites/backend/internal/api"
	"github.com/pageza/alchemorsel-favourites/backend/internal/middleware"
	"github.com/pageza/alchemorsel-favourites/backend/internal/service"
)

// SetupRouter configures the application routes
func SetupRouter(
	cfg *config.Config,
	db *gorm.DB,
	redisClient *redis.Client,
	favourites service.IFavouriteService,
) *gin.Engine {
	gin.SetMode(cfg.Environment.GinMode())

	router := gin.New()
	router.Use(middleware.RequestID())
	if gin.Mode() != gin.TestMode {
		router.Use(gin.Logger())
	}
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	if len(cfg.CORSOrigins) > 0 {
		router.Use(middleware.CORS(cfg.CORSOrigins))
	}

	router.NoRoute(middleware.NotFound)

	// API documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api.RegisterRoutes(router, db, redisClient, favourites)

	return router
}
