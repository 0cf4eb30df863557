package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/pageza/alchemorsel-favourites/backend/internal/database"
	"github.com/pageza/alchemorsel-favourites/backend/internal/events"
	"github.com/pageza/alchemorsel-favourites/backend/internal/mocks"
	"github.com/pageza/alchemorsel-favourites/backend/internal/model"
	"github.com/pageza/alchemorsel-favourites/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newFavourite(userID string, recipeID int64, title string) *model.Favourite {
	return &model.Favourite{UserID: userID, RecipeID: recipeID, Title: title}
}

func TestAddFavourite(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewFavouriteService(db, nil, nil)
	ctx := context.Background()

	image := "https://example.com/casserole.jpg"
	fav := newFavourite("user_1", 52772, "Teriyaki Chicken Casserole")
	fav.Image = &image
	fav.CookTime = model.NewText("45 minutes")

	created, err := svc.AddFavourite(ctx, fav)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, "user_1", created.UserID)
	assert.Equal(t, int64(52772), created.RecipeID)
	assert.Equal(t, "Teriyaki Chicken Casserole", created.Title)

	var stored model.Favourite
	require.NoError(t, db.First(&stored, created.ID).Error)
	require.NotNil(t, stored.Image)
	assert.Equal(t, image, *stored.Image)
	assert.Equal(t, model.NewText("45 minutes"), stored.CookTime)
	assert.False(t, stored.Servings.Valid)
}

func TestAddFavouriteAllowsDuplicates(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewFavouriteService(db, nil, nil)
	ctx := context.Background()

	first, err := svc.AddFavourite(ctx, newFavourite("user_1", 1, "Soup"))
	require.NoError(t, err)
	second, err := svc.AddFavourite(ctx, newFavourite("user_1", 1, "Soup"))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	favs, err := svc.ListFavourites(ctx, "user_1")
	require.NoError(t, err)
	assert.Len(t, favs, 2)
}

func TestRemoveFavourite(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewFavouriteService(db, nil, nil)
	ctx := context.Background()

	_, err := svc.AddFavourite(ctx, newFavourite("user_1", 10, "Pie"))
	require.NoError(t, err)
	_, err = svc.AddFavourite(ctx, newFavourite("user_1", 11, "Cake"))
	require.NoError(t, err)
	_, err = svc.AddFavourite(ctx, newFavourite("user_2", 10, "Pie"))
	require.NoError(t, err)

	deleted, err := svc.RemoveFavourite(ctx, "user_1", 10)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, "Pie", deleted[0].Title)
	assert.Equal(t, "user_1", deleted[0].UserID)

	// Second delete of the same pair finds nothing
	_, err = svc.RemoveFavourite(ctx, "user_1", 10)
	assert.ErrorIs(t, err, ErrFavouriteNotFound)

	// Other rows are untouched
	favs, err := svc.ListFavourites(ctx, "user_1")
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, int64(11), favs[0].RecipeID)

	favs, err = svc.ListFavourites(ctx, "user_2")
	require.NoError(t, err)
	assert.Len(t, favs, 1)
}

func TestRemoveFavouriteDeletesAllDuplicates(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewFavouriteService(db, nil, nil)
	ctx := context.Background()

	first, err := svc.AddFavourite(ctx, newFavourite("user_1", 5, "Stew"))
	require.NoError(t, err)
	_, err = svc.AddFavourite(ctx, newFavourite("user_1", 5, "Stew"))
	require.NoError(t, err)

	deleted, err := svc.RemoveFavourite(ctx, "user_1", 5)
	require.NoError(t, err)
	require.Len(t, deleted, 2)
	assert.Equal(t, first.ID, deleted[0].ID)
	assert.Less(t, deleted[0].ID, deleted[1].ID)

	favs, err := svc.ListFavourites(ctx, "user_1")
	require.NoError(t, err)
	assert.Empty(t, favs)
}

func TestRemoveFavouriteNeverCreated(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewFavouriteService(db, nil, nil)

	deleted, err := svc.RemoveFavourite(context.Background(), "nobody", 404)
	assert.ErrorIs(t, err, ErrFavouriteNotFound)
	assert.Nil(t, deleted)
}

func TestListFavourites(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewFavouriteService(db, nil, nil)
	ctx := context.Background()

	// Empty list is a non-nil, empty slice
	favs, err := svc.ListFavourites(ctx, "user_1")
	require.NoError(t, err)
	assert.NotNil(t, favs)
	assert.Empty(t, favs)

	for i, title := range []string{"A", "B", "C"} {
		_, err := svc.AddFavourite(ctx, newFavourite("user_1", int64(i+1), title))
		require.NoError(t, err)
	}
	_, err = svc.AddFavourite(ctx, newFavourite("user_2", 99, "Other"))
	require.NoError(t, err)

	favs, err = svc.ListFavourites(ctx, "user_1")
	require.NoError(t, err)
	require.Len(t, favs, 3)
	for i, fav := range favs {
		assert.Equal(t, "user_1", fav.UserID)
		assert.Equal(t, int64(i+1), fav.RecipeID)
	}

	// Repeated reads without writes are identical
	again, err := svc.ListFavourites(ctx, "user_1")
	require.NoError(t, err)
	assert.Equal(t, favs, again)
}

func TestFavouriteServiceDatabaseError(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewFavouriteService(db, nil, nil)
	ctx := context.Background()
	require.NoError(t, database.Close(db))

	_, err := svc.AddFavourite(ctx, newFavourite("user_1", 1, "X"))
	assert.Error(t, err)

	_, err = svc.RemoveFavourite(ctx, "user_1", 1)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrFavouriteNotFound)

	_, err = svc.ListFavourites(ctx, "user_1")
	assert.Error(t, err)
}

func TestListFavouritesCacheHit(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	cache := &mocks.MockFavouriteCache{}
	svc := NewFavouriteService(db, cache, nil)

	cached := []model.Favourite{{ID: 1, UserID: "user_1", RecipeID: 7, Title: "Cached"}}
	cache.On("Get", mock.Anything, "user_1").Return(cached, true, nil)

	favs, err := svc.ListFavourites(context.Background(), "user_1")
	require.NoError(t, err)
	assert.Equal(t, cached, favs)
	cache.AssertNotCalled(t, "Version", mock.Anything, mock.Anything)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListFavouritesCacheMissPopulates(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	ctx := context.Background()
	require.NoError(t, db.Create(newFavourite("user_1", 3, "Curry")).Error)

	cache := &mocks.MockFavouriteCache{}
	svc := NewFavouriteService(db, cache, nil)

	cache.On("Get", mock.Anything, "user_1").Return(nil, false, nil)
	cache.On("Version", mock.Anything, "user_1").Return(int64(3), nil)
	cache.On("Set", mock.Anything, "user_1", int64(3), mock.MatchedBy(func(favs []model.Favourite) bool {
		return len(favs) == 1 && favs[0].Title == "Curry"
	})).Return(nil)

	favs, err := svc.ListFavourites(ctx, "user_1")
	require.NoError(t, err)
	assert.Len(t, favs, 1)
	cache.AssertExpectations(t)
}

func TestListFavouritesCacheErrorFallsBack(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	ctx := context.Background()
	require.NoError(t, db.Create(newFavourite("user_1", 3, "Curry")).Error)

	cache := &mocks.MockFavouriteCache{}
	svc := NewFavouriteService(db, cache, nil)

	cache.On("Get", mock.Anything, "user_1").Return(nil, false, errors.New("connection refused"))
	cache.On("Version", mock.Anything, "user_1").Return(int64(0), nil)
	cache.On("Set", mock.Anything, "user_1", int64(0), mock.Anything).Return(errors.New("connection refused"))

	favs, err := svc.ListFavourites(ctx, "user_1")
	require.NoError(t, err)
	assert.Len(t, favs, 1)
}

func TestListFavouritesVersionErrorSkipsSet(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	require.NoError(t, db.Create(newFavourite("user_1", 3, "Curry")).Error)

	cache := &mocks.MockFavouriteCache{}
	svc := NewFavouriteService(db, cache, nil)

	cache.On("Get", mock.Anything, "user_1").Return(nil, false, nil)
	cache.On("Version", mock.Anything, "user_1").Return(int64(0), errors.New("connection refused"))

	favs, err := svc.ListFavourites(context.Background(), "user_1")
	require.NoError(t, err)
	assert.Len(t, favs, 1)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// memoryCache is a versioned in-process FavouriteCache. beforeSet runs inside
// Set, after the reader's query and before the version check, to interleave
// a concurrent write.
type memoryCache struct {
	mu        sync.Mutex
	lists     map[string][]model.Favourite
	versions  map[string]int64
	beforeSet func()
}

func newMemoryCache() *memoryCache {
	return &memoryCache{lists: map[string][]model.Favourite{}, versions: map[string]int64{}}
}

func (c *memoryCache) Get(_ context.Context, userID string) ([]model.Favourite, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	favs, ok := c.lists[userID]
	return favs, ok, nil
}

func (c *memoryCache) Version(_ context.Context, userID string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.versions[userID], nil
}

func (c *memoryCache) Set(_ context.Context, userID string, version int64, favs []model.Favourite) error {
	if hook := c.beforeSet; hook != nil {
		c.beforeSet = nil
		hook()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.versions[userID] != version {
		return nil
	}
	c.lists[userID] = favs
	return nil
}

func (c *memoryCache) Invalidate(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.versions[userID]++
	delete(c.lists, userID)
	return nil
}

func TestListFavouritesDoesNotCacheListOverwrittenByWrite(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	ctx := context.Background()
	cache := newMemoryCache()
	svc := NewFavouriteService(db, cache, nil)

	// A create commits after the reader queried but before it fills the cache
	cache.beforeSet = func() {
		_, err := svc.AddFavourite(ctx, newFavourite("user_1", 1, "Pie"))
		require.NoError(t, err)
	}

	favs, err := svc.ListFavourites(ctx, "user_1")
	require.NoError(t, err)
	assert.Empty(t, favs)

	favs, err = svc.ListFavourites(ctx, "user_1")
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, "Pie", favs[0].Title)
}

func TestListFavouritesDoesNotCacheListOverwrittenByDelete(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	ctx := context.Background()
	require.NoError(t, db.Create(newFavourite("user_1", 1, "Pie")).Error)

	cache := newMemoryCache()
	svc := NewFavouriteService(db, cache, nil)
	cache.beforeSet = func() {
		_, err := svc.RemoveFavourite(ctx, "user_1", 1)
		require.NoError(t, err)
	}

	favs, err := svc.ListFavourites(ctx, "user_1")
	require.NoError(t, err)
	assert.Len(t, favs, 1)

	favs, err = svc.ListFavourites(ctx, "user_1")
	require.NoError(t, err)
	assert.Empty(t, favs)
}

func TestWritesInvalidateCache(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	ctx := context.Background()

	cache := &mocks.MockFavouriteCache{}
	svc := NewFavouriteService(db, cache, nil)
	cache.On("Invalidate", mock.Anything, "user_1").Return(nil)

	_, err := svc.AddFavourite(ctx, newFavourite("user_1", 8, "Tacos"))
	require.NoError(t, err)
	_, err = svc.RemoveFavourite(ctx, "user_1", 8)
	require.NoError(t, err)

	cache.AssertNumberOfCalls(t, "Invalidate", 2)

	// A failed delete leaves the cache alone
	_, err = svc.RemoveFavourite(ctx, "user_1", 8)
	assert.ErrorIs(t, err, ErrFavouriteNotFound)
	cache.AssertNumberOfCalls(t, "Invalidate", 2)
}

func TestWritesPublishEvents(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	ctx := context.Background()

	publisher := &mocks.RecordingPublisher{}
	svc := NewFavouriteService(db, nil, publisher)

	_, err := svc.AddFavourite(ctx, newFavourite("user_1", 21, "Ramen"))
	require.NoError(t, err)
	_, err = svc.RemoveFavourite(ctx, "user_1", 21)
	require.NoError(t, err)

	published := publisher.Published()
	require.Len(t, published, 2)
	assert.Equal(t, events.FavouriteAdded, published[0].Type)
	assert.Equal(t, events.FavouriteRemoved, published[1].Type)
	assert.Equal(t, "user_1", published[1].UserID)
	assert.Equal(t, int64(21), published[1].RecipeID)
	assert.Equal(t, "Ramen", published[1].Title)
}

func TestPublishFailureDoesNotFailWrite(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	publisher := &mocks.RecordingPublisher{Err: errors.New("broker down")}
	svc := NewFavouriteService(db, nil, publisher)

	created, err := svc.AddFavourite(context.Background(), newFavourite("user_1", 1, "Toast"))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Len(t, publisher.Published(), 1)
}
