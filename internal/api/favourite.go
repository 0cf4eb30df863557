package api

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/alchemorsel-favourites/backend/internal/middleware"
	"github.com/pageza/alchemorsel-favourites/backend/internal/model"
	"github.com/pageza/alchemorsel-favourites/backend/internal/service"
	"github.com/pageza/alchemorsel-favourites/backend/internal/types"
)

type FavouriteHandler struct {
	favourites service.IFavouriteService
}

func NewFavouriteHandler(favourites service.IFavouriteService) *FavouriteHandler {
	return &FavouriteHandler{
		favourites: favourites,
	}
}

func (h *FavouriteHandler) RegisterRoutes(router *gin.RouterGroup) {
	favourites := router.Group("/favourites")
	{
		favourites.POST("", h.AddFavourite)
		favourites.GET("/:userId", h.ListFavourites)
		favourites.DELETE("/:userId/:recipeId", h.RemoveFavourite)
	}
}

// AddFavourite godoc
// @Summary      Save a recipe as a favourite
// @Tags         favourites
// @Accept       json
// @Produce      json
// @Param        favourite  body      types.CreateFavouriteRequest  true  "Favourite to save"
// @Success      201        {object}  types.FavouriteResponse
// @Failure      400        {object}  types.ErrorResponse
// @Failure      500        {object}  types.ErrorResponse
// @Router       /favourites [post]
func (h *FavouriteHandler) AddFavourite(c *gin.Context) {
	var req types.CreateFavouriteRequest
	// An empty body is treated as an empty object and fails validation below
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid request body", Details: err.Error()})
		return
	}

	fav, missing := req.Validate()
	if missing != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Missing required fields", Fields: missing})
		return
	}

	created, err := h.favourites.AddFavourite(c.Request.Context(), fav)
	if err != nil {
		log.Printf("Error adding favourite (request %s): %v", middleware.GetRequestID(c), err)
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to add favourite", Details: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, types.FavouriteResponse{
		Message: "Favourite added successfully",
		Data:    *created,
	})
}

// RemoveFavourite godoc
// @Summary      Remove a favourite
// @Description  Deletes every favourite the user saved for the recipe and returns the first one.
// @Tags         favourites
// @Produce      json
// @Param        userId    path      string  true  "User id"
// @Param        recipeId  path      int     true  "Recipe id"
// @Success      200       {object}  types.RemoveFavouriteResponse
// @Failure      400       {object}  types.ErrorResponse
// @Failure      404       {object}  types.ErrorResponse
// @Failure      500       {object}  types.ErrorResponse
// @Router       /favourites/{userId}/{recipeId} [delete]
func (h *FavouriteHandler) RemoveFavourite(c *gin.Context) {
	userID := c.Param("userId")
	recipeParam := c.Param("recipeId")
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(recipeParam) == "" {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Missing required parameters"})
		return
	}

	recipeID, err := strconv.ParseInt(recipeParam, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid recipeId parameter"})
		return
	}

	deleted, err := h.favourites.RemoveFavourite(c.Request.Context(), userID, recipeID)
	if errors.Is(err, service.ErrFavouriteNotFound) {
		c.JSON(http.StatusNotFound, types.ErrorResponse{Error: "Favourite not found"})
		return
	}
	if err != nil {
		log.Printf("Error removing favourite (request %s): %v", middleware.GetRequestID(c), err)
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to remove favourite", Details: err.Error()})
		return
	}

	c.JSON(http.StatusOK, types.RemoveFavouriteResponse{
		Message:      "Favourite removed successfully",
		Data:         deleted[0],
		DeletedCount: len(deleted),
	})
}

// ListFavourites godoc
// @Summary      List a user's favourites
// @Tags         favourites
// @Produce      json
// @Param        userId  path      string  true  "User id"
// @Success      200     {object}  types.FavouriteListResponse
// @Failure      400     {object}  types.ErrorResponse
// @Failure      500     {object}  types.ErrorResponse
// @Router       /favourites/{userId} [get]
func (h *FavouriteHandler) ListFavourites(c *gin.Context) {
	userID := c.Param("userId")
	if strings.TrimSpace(userID) == "" {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Missing required parameter: userId"})
		return
	}

	favs, err := h.favourites.ListFavourites(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Error fetching favourites (request %s): %v", middleware.GetRequestID(c), err)
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to fetch favourites", Details: err.Error()})
		return
	}
	if favs == nil {
		favs = []model.Favourite{}
	}

	c.JSON(http.StatusOK, types.FavouriteListResponse{
		Message: "Favourites retrieved successfully",
		Data:    favs,
		Count:   len(favs),
	})
}
