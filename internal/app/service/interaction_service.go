package service

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/foodreco/foodreco-backend/internal/app/model"
	"github.com/foodreco/foodreco-backend/internal/app/repository"
	"github.com/foodreco/foodreco-backend/internal/metrics"
	"github.com/foodreco/foodreco-backend/pkg/logger"
)

var (
	ErrInvalidAction       = errors.New("invalid interaction action")
	ErrInvalidRestaurantID = errors.New("invalid restaurant id")
)

type InteractionService interface {
	// Append records one interaction. Only invalid input is reported; a
	// storage failure is logged and the event is dropped.
	Append(userID, restaurantID, cuisine, action string) error
}

type interactionService struct {
	interactionRepo repository.InteractionRepository
	clickedRepo     repository.ClickedRepository
	restaurantRepo  repository.RestaurantRepository
	now             func() time.Time
}

func NewInteractionService(
	interactionRepo repository.InteractionRepository,
	clickedRepo repository.ClickedRepository,
	restaurantRepo repository.RestaurantRepository,
) InteractionService {
	return &interactionService{
		interactionRepo: interactionRepo,
		clickedRepo:     clickedRepo,
		restaurantRepo:  restaurantRepo,
		now:             time.Now,
	}
}

func (s *interactionService) Append(userID, restaurantID, cuisine, action string) error {
	userID = normalizeUserID(userID)
	restaurantID = strings.TrimSpace(restaurantID)
	if restaurantID == "" {
		return ErrInvalidRestaurantID
	}

	kind, ok := model.ParseActionKind(action)
	if !ok {
		logger.Warn("Rejected interaction with unknown action", map[string]interface{}{
			"user_id": userID,
			"action":  action,
		})
		return ErrInvalidAction
	}

	cuisine = strings.TrimSpace(cuisine)
	if cuisine == "" {
		cuisine = model.UnknownCuisine
	}

	event := &model.Interaction{
		UserID:       userID,
		RestaurantID: restaurantID,
		Cuisine:      cuisine,
		Action:       kind,
		Timestamp:    s.now().UnixMilli(),
	}

	if err := s.interactionRepo.Append(event); err != nil {
		metrics.InteractionWriteFailures.Inc()
		logger.Error("Interaction dropped after storage failure", err, map[string]interface{}{
			"user_id":       userID,
			"restaurant_id": restaurantID,
			"action":        kind,
		})
		return nil
	}
	metrics.InteractionsRecorded.WithLabelValues(string(kind)).Inc()

	s.registerClick(userID, restaurantID, cuisine)
	return nil
}

// registerClick feeds the recommendation ring with any kind of interaction,
// views included. Catalog data wins over the
// cuisine carried by the event; ids outside the catalog keep the event's.
func (s *interactionService) registerClick(userID, restaurantID, cuisine string) {
	id, err := strconv.ParseUint(restaurantID, 10, 64)
	if err != nil || id == 0 {
		return
	}

	entry := &model.ClickedRestaurant{
		UserID:       userID,
		RestaurantID: uint(id),
	}
	if cuisine != model.UnknownCuisine {
		entry.Cuisines = cuisine
	}
	if restaurant, err := s.restaurantRepo.FindByID(uint(id)); err == nil {
		entry.Cuisines = restaurant.Cuisines
		entry.Type = restaurant.Type
	}

	if err := s.clickedRepo.Register(entry); err != nil {
		logger.Error("Failed to update clicked restaurants", err, map[string]interface{}{
			"user_id":       userID,
			"restaurant_id": id,
		})
	}
}

func normalizeUserID(userID string) string {
	if userID = strings.TrimSpace(userID); userID == "" {
		return model.DefaultUserID
	}
	return userID
}
