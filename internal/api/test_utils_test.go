package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/alchemorsel-favourites/backend/internal/middleware"
	"github.com/pageza/alchemorsel-favourites/backend/internal/mocks"
	"github.com/pageza/alchemorsel-favourites/backend/internal/service"
	"github.com/pageza/alchemorsel-favourites/backend/internal/testhelpers"
)

// SetupTestRouter wires the API over a real favourite service backed by an
// in-memory database
func SetupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDatabase(t)
	router := gin.New()
	router.Use(middleware.RequestID())
	RegisterRoutes(router, db, nil, service.NewFavouriteService(db, nil, nil))
	return router, db
}

// SetupMockRouter wires the API over a mocked favourite service
func SetupMockRouter(t *testing.T) (*gin.Engine, *mocks.MockFavouriteService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	favourites := &mocks.MockFavouriteService{}
	router := gin.New()
	RegisterRoutes(router, testhelpers.SetupTestDatabase(t), nil, favourites)
	t.Cleanup(func() { favourites.AssertExpectations(t) })
	return router, favourites
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
