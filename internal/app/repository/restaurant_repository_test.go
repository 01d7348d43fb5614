package repository

import (
	"testing"

	"github.com/foodreco/foodreco-backend/internal/app/model"
	"github.com/foodreco/foodreco-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRestaurantTest(t *testing.T) RestaurantRepository {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })
	return NewRestaurantRepository(testDB)
}

func TestRestaurantRepository_StaticAndCustom(t *testing.T) {
	repo := setupRestaurantTest(t)

	static := []model.Restaurant{
		{Name: "Chez Luigi", Latitude: 48.85, Longitude: 2.35},
		{Name: "Nowhere"},
	}
	require.NoError(t, repo.BulkCreate(static, 1))
	require.NoError(t, repo.Create(&model.Restaurant{Name: "My Place", IsCustom: true}))

	got, err := repo.FindStatic()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Chez Luigi", got[0].Name)

	custom, err := repo.FindCustom()
	require.NoError(t, err)
	require.Len(t, custom, 1)
	assert.Equal(t, "My Place", custom[0].Name)

	total, located, err := repo.CountStatic()
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, int64(1), located)
}

func TestRestaurantRepository_FindByID(t *testing.T) {
	repo := setupRestaurantTest(t)

	r := &model.Restaurant{Name: "Sushi Bar"}
	require.NoError(t, repo.Create(r))

	found, err := repo.FindByID(r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sushi Bar", found.Name)

	_, err = repo.FindByID(9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRestaurantRepository_ReplaceStaticKeepsCustom(t *testing.T) {
	repo := setupRestaurantTest(t)

	require.NoError(t, repo.BulkCreate([]model.Restaurant{{Name: "A"}, {Name: "B"}}, 10))
	require.NoError(t, repo.Create(&model.Restaurant{Name: "Mine", IsCustom: true}))

	require.NoError(t, repo.ReplaceStatic([]model.Restaurant{{Name: "C", Latitude: 1, Longitude: 1}}, 10))

	static, err := repo.FindStatic()
	require.NoError(t, err)
	require.Len(t, static, 1)
	assert.Equal(t, "C", static[0].Name)

	custom, err := repo.FindCustom()
	require.NoError(t, err)
	assert.Len(t, custom, 1)
}

func TestRestaurantRepository_ReplaceStaticRollsBack(t *testing.T) {
	repo := setupRestaurantTest(t)

	require.NoError(t, repo.BulkCreate([]model.Restaurant{{Name: "A"}, {Name: "B"}}, 10))
	mine := &model.Restaurant{Name: "Mine", IsCustom: true}
	require.NoError(t, repo.Create(mine))

	// The second row reuses the custom row's primary key, so the insert fails
	// after the delete already ran inside the transaction.
	err := repo.ReplaceStatic([]model.Restaurant{
		{ID: mine.ID + 100, Name: "C", Latitude: 1, Longitude: 1},
		{ID: mine.ID, Name: "Clash", Latitude: 1, Longitude: 1},
	}, 10)
	require.Error(t, err)

	static, err := repo.FindStatic()
	require.NoError(t, err)
	require.Len(t, static, 2)
	assert.Equal(t, "A", static[0].Name)
	assert.Equal(t, "B", static[1].Name)
}

func TestInteractionRepository_AppendAndAll(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	defer db.CleanupTestDB(testDB)

	repo := NewInteractionRepository(testDB)
	require.NoError(t, repo.Append(&model.Interaction{UserID: "u1", RestaurantID: "1", Cuisine: "pizza", Action: model.ActionView, Timestamp: 1}))
	require.NoError(t, repo.Append(&model.Interaction{UserID: "u1", RestaurantID: "2", Cuisine: "sushi", Action: model.ActionClick, Timestamp: 2}))
	require.NoError(t, repo.Append(&model.Interaction{UserID: "u2", RestaurantID: "3", Cuisine: "kebab", Action: model.ActionCall, Timestamp: 3}))

	events, err := repo.All("u1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "1", events[0].RestaurantID)
	assert.Equal(t, model.ActionClick, events[1].Action)
}
