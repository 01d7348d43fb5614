package service

import (
	"strings"
	"testing"
	"time"

	"github.com/foodreco/foodreco-backend/internal/app/model"
	"github.com/foodreco/foodreco-backend/internal/app/repository"
	"github.com/foodreco/foodreco-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "profile-test-secret"

func setupProfileService(t *testing.T) ProfileService {
	testDB := setupTestDB(t)
	return NewProfileService(repository.NewProfileRepository(testDB), testJWTSecret, time.Hour)
}

func TestProfileService_Create(t *testing.T) {
	svc := setupProfileService(t)

	session, err := svc.Create(ProfileInput{Name: "  Alice "})
	require.NoError(t, err)
	assert.NotEmpty(t, session.Profile.ID)
	assert.Equal(t, "Alice", session.Profile.Name)
	assert.Equal(t, "default", session.Profile.Avatar)
	assert.Equal(t, 1, session.Profile.Level)

	claims, err := util.ValidateToken(session.Token, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, session.Profile.ID, claims.ProfileID)

	tests := []struct {
		name  string
		input ProfileInput
	}{
		{name: "empty name", input: ProfileInput{Name: " "}},
		{name: "long name", input: ProfileInput{Name: strings.Repeat("a", 101)}},
		{name: "long avatar", input: ProfileInput{Name: "Bob", Avatar: strings.Repeat("x", 51)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(tt.input)
			assert.ErrorIs(t, err, ErrInvalidProfile)
		})
	}
}

func TestProfileService_ListGetUpdateDelete(t *testing.T) {
	svc := setupProfileService(t)

	alice, err := svc.Create(ProfileInput{Name: "Alice", Avatar: "chef"})
	require.NoError(t, err)
	_, err = svc.Create(ProfileInput{Name: "Bob"})
	require.NoError(t, err)

	assert.Len(t, svc.List(), 2)

	updated, err := svc.Update(alice.Profile.ID, ProfileInput{Name: "Alicia"})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.Name)
	assert.Equal(t, "chef", updated.Avatar)

	got, err := svc.Get(alice.Profile.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alicia", got.Name)

	session, err := svc.Activate(alice.Profile.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)

	require.NoError(t, svc.Delete(alice.Profile.ID))
	assert.ErrorIs(t, svc.Delete(alice.Profile.ID), ErrProfileNotFound)
	_, err = svc.Get(alice.Profile.ID)
	assert.ErrorIs(t, err, ErrProfileNotFound)
	_, err = svc.Update("missing", ProfileInput{Name: "x"})
	assert.ErrorIs(t, err, ErrProfileNotFound)
	assert.Len(t, svc.List(), 1)
}

func TestProfileService_AddXP(t *testing.T) {
	svc := setupProfileService(t)
	session, err := svc.Create(ProfileInput{Name: "Alice"})
	require.NoError(t, err)
	id := session.Profile.ID

	_, err = svc.AddXP(id, 0)
	assert.ErrorIs(t, err, ErrInvalidXP)

	p, err := svc.AddXP(id, 150)
	require.NoError(t, err)
	assert.Equal(t, 150, p.XP)
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 50, p.LevelProgress())

	p, err = svc.AddXP(id, 5000)
	require.NoError(t, err)
	assert.Equal(t, model.MaxLevel, p.Level)

	_, err = svc.AddXP("missing", 10)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestPreferencesService(t *testing.T) {
	testDB := setupTestDB(t)
	svc := NewPreferencesService(repository.NewPreferencesRepository(testDB))

	defaults := svc.Get("u1")
	assert.Equal(t, model.DietNone, defaults.Diet)
	assert.Empty(t, defaults.PreferredTypes)
	assert.False(t, svc.HasCompletedOnboarding("u1"))

	saved := svc.Save("u1", PreferencesInput{
		PreferredTypes:    []string{"restaurant", " restaurant", "cafe"},
		Cuisines:          []string{"Pizza", "pizza", "Sushi"},
		Diet:              "Végétarien",
		TakeawayPreferred: true,
	})
	assert.Equal(t, model.StringArray{"restaurant", "cafe"}, saved.PreferredTypes)
	assert.Equal(t, model.StringArray{"pizza", "sushi"}, saved.Cuisines)
	assert.Equal(t, model.DietVegetarian, saved.Diet)

	got := svc.Get("u1")
	assert.Equal(t, saved.Cuisines, got.Cuisines)
	assert.True(t, got.TakeawayPreferred)
	assert.False(t, got.OnboardingDone)

	done := svc.CompleteOnboarding("u1", PreferencesInput{Diet: "vegan strict"})
	assert.True(t, done.OnboardingDone)
	assert.Equal(t, model.DietVegan, done.Diet)
	assert.True(t, svc.HasCompletedOnboarding("u1"))

	// Saving later keeps the onboarding flag.
	svc.Save("u1", PreferencesInput{})
	assert.True(t, svc.HasCompletedOnboarding("u1"))

	assert.Equal(t, model.DietNone, svc.Get("").Diet)
	assert.Equal(t, model.DefaultUserID, svc.Get("").UserID)
}
