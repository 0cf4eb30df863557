package mocks

import (
	"context"

	"github.com/pageza/alchemorsel-favourites/backend/internal/model"
	"github.com/stretchr/testify/mock"
)

// MockFavouriteService is a mock implementation of the favourite service
type MockFavouriteService struct {
	mock.Mock
}

// AddFavourite mocks the AddFavourite method
func (m *MockFavouriteService) AddFavourite(ctx context.Context, fav *model.Favourite) (*model.Favourite, error) {
	args := m.Called(ctx, fav)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Favourite), args.Error(1)
}

// RemoveFavourite mocks the RemoveFavourite method
func (m *MockFavouriteService) RemoveFavourite(ctx context.Context, userID string, recipeID int64) ([]model.Favourite, error) {
	args := m.Called(ctx, userID, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Favourite), args.Error(1)
}

// ListFavourites mocks the ListFavourites method
func (m *MockFavouriteService) ListFavourites(ctx context.Context, userID string) ([]model.Favourite, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Favourite), args.Error(1)
}

// MockFavouriteCache is a mock implementation of the favourite cache
type MockFavouriteCache struct {
	mock.Mock
}

// Get mocks the Get method
func (m *MockFavouriteCache) Get(ctx context.Context, userID string) ([]model.Favourite, bool, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]model.Favourite), args.Bool(1), args.Error(2)
}

// Version mocks the Version method
func (m *MockFavouriteCache) Version(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// Set mocks the Set method
func (m *MockFavouriteCache) Set(ctx context.Context, userID string, version int64, favs []model.Favourite) error {
	args := m.Called(ctx, userID, version, favs)
	return args.Error(0)
}

// Invalidate mocks the Invalidate method
func (m *MockFavouriteCache) Invalidate(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
