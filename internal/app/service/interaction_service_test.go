package service

import (
	"errors"
	"testing"
	"time"

	"github.com/foodreco/foodreco-backend/internal/app/model"
	"github.com/foodreco/foodreco-backend/internal/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type interactionFixture struct {
	service         InteractionService
	habits          HabitService
	interactionRepo repository.InteractionRepository
	clickedRepo     repository.ClickedRepository
	restaurants     []model.Restaurant
}

func setupInteractionService(t *testing.T) interactionFixture {
	testDB := setupTestDB(t)

	restaurants := []model.Restaurant{
		{Name: "Chez Luigi", Cuisines: "pizza,italien", Type: "restaurant", Latitude: 48.85, Longitude: 2.35},
		{Name: "Sushi Bar", Cuisines: "sushi", Type: "restaurant", Latitude: 48.86, Longitude: 2.34},
	}
	require.NoError(t, testDB.Create(&restaurants).Error)

	interactionRepo := repository.NewInteractionRepository(testDB)
	clickedRepo := repository.NewClickedRepository(testDB)
	restaurantRepo := repository.NewRestaurantRepository(testDB)

	svc := NewInteractionService(interactionRepo, clickedRepo, restaurantRepo).(*interactionService)
	svc.now = func() time.Time { return time.UnixMilli(1_700_000_000_000) }

	return interactionFixture{
		service:         svc,
		habits:          NewHabitService(interactionRepo),
		interactionRepo: interactionRepo,
		clickedRepo:     clickedRepo,
		restaurants:     restaurants,
	}
}

func TestInteractionService_Append(t *testing.T) {
	f := setupInteractionService(t)

	require.NoError(t, f.service.Append("", "1", "", "VIEW"))

	events, err := f.interactionRepo.All(model.DefaultUserID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, model.UnknownCuisine, events[0].Cuisine)
	assert.Equal(t, model.ActionView, events[0].Action)
	assert.Equal(t, int64(1_700_000_000_000), events[0].Timestamp)
}

func TestInteractionService_AppendValidation(t *testing.T) {
	f := setupInteractionService(t)

	assert.ErrorIs(t, f.service.Append("u1", "1", "pizza", "like"), ErrInvalidAction)
	assert.ErrorIs(t, f.service.Append("u1", " ", "pizza", "click"), ErrInvalidRestaurantID)

	events, err := f.interactionRepo.All("u1")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestInteractionService_EveryActionFeedsRing(t *testing.T) {
	f := setupInteractionService(t)
	luigi := f.restaurants[0]
	sushi := f.restaurants[1]

	require.NoError(t, f.service.Append("u1", sushi.IDString(), "sushi", "view"))
	ring, err := f.clickedRepo.Recent("u1", 0)
	require.NoError(t, err)
	require.Len(t, ring, 1, "a view is an interaction too")
	assert.Equal(t, sushi.ID, ring[0].RestaurantID)

	require.NoError(t, f.service.Append("u1", luigi.IDString(), "", "call"))
	require.NoError(t, f.service.Append("u1", "999", "kebab", "website"))
	require.NoError(t, f.service.Append("u1", "osm-node-42", "kebab", "route"))

	ring, err = f.clickedRepo.Recent("u1", 0)
	require.NoError(t, err)
	require.Len(t, ring, 3)
	assert.Equal(t, uint(999), ring[0].RestaurantID)
	assert.Equal(t, "kebab", ring[0].Cuisines)
	assert.Equal(t, luigi.ID, ring[1].RestaurantID)
	assert.Equal(t, "pizza,italien", ring[1].Cuisines)
	assert.Equal(t, "restaurant", ring[1].Type)
	assert.Equal(t, sushi.ID, ring[2].RestaurantID)
}

type failingInteractionRepo struct{}

func (failingInteractionRepo) Append(event *model.Interaction) error {
	return errors.New("disk full")
}

func (failingInteractionRepo) All(userID string) ([]model.Interaction, error) {
	return nil, errors.New("corrupted log")
}

func TestInteractionService_StorageFailureIsSwallowed(t *testing.T) {
	f := setupInteractionService(t)
	svc := NewInteractionService(failingInteractionRepo{}, f.clickedRepo, nil)

	assert.NoError(t, svc.Append("u1", "1", "pizza", "click"))

	ring, err := f.clickedRepo.Recent("u1", 0)
	require.NoError(t, err)
	assert.Empty(t, ring, "a dropped event does not reach the ring")

	habits := NewHabitService(failingInteractionRepo{})
	assert.Equal(t, HabitTable{}, habits.ComputeHabits("u1"))
	assert.Equal(t, PopularityTable{}, habits.ComputePopularity("u1"))
	assert.Empty(t, habits.TrendingIDs("u1", 3))
}

func TestHabitService_Additivity(t *testing.T) {
	f := setupInteractionService(t)

	before := f.habits.ComputeHabits("u1")
	const n = 4
	for i := 0; i < n; i++ {
		require.NoError(t, f.service.Append("u1", "1", "pizza,italien", "view"))
	}
	after := f.habits.ComputeHabits("u1")

	assert.Equal(t, before["pizza"]+n, after["pizza"])
	assert.Equal(t, before["italien"]+n, after["italien"])
}

func TestAggregateHabits(t *testing.T) {
	events := []model.Interaction{
		{Cuisine: "Pizza, Italien", Action: model.ActionView},
		{Cuisine: "pizza,,", Action: model.ActionClick},
		{Cuisine: "unknown", Action: model.ActionCall},
		{Cuisine: " ", Action: model.ActionCall},
	}

	habits := AggregateHabits(events)
	assert.Equal(t, HabitTable{"pizza": 2, "italien": 1, "unknown": 1}, habits)
}

func TestAggregatePopularity(t *testing.T) {
	events := []model.Interaction{
		{RestaurantID: "1", Action: model.ActionView},
		{RestaurantID: "1", Action: model.ActionClick},
		{RestaurantID: "1", Action: model.ActionCall},
		{RestaurantID: "2", Action: model.ActionRoute},
		{RestaurantID: "abc", Action: model.ActionWebsite},
		{RestaurantID: "3", Action: model.ActionView},
	}

	popularity := AggregatePopularity(events)
	assert.Equal(t, PopularityTable{1: 2, 2: 1}, popularity)
}

func TestHabitService_TrendingIDs(t *testing.T) {
	f := setupInteractionService(t)

	for _, id := range []string{"5", "3", "5", "3", "7", "5"} {
		require.NoError(t, f.service.Append("u1", id, "x", "click"))
	}
	require.NoError(t, f.service.Append("u2", "7", "x", "click"))

	assert.Equal(t, []uint64{5, 3, 7}, f.habits.TrendingIDs("u1", 0))
	assert.Equal(t, []uint64{5, 3}, f.habits.TrendingIDs("u1", 2))
	assert.Equal(t, []uint64{7}, f.habits.TrendingIDs("u2", 5))
}
