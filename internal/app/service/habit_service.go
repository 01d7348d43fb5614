package service

import (
	"sort"
	"strconv"
	"strings"

	"github.com/foodreco/foodreco-backend/internal/app/model"
	"github.com/foodreco/foodreco-backend/internal/app/repository"
	"github.com/foodreco/foodreco-backend/pkg/logger"
)

// HabitTable maps a lowercase cuisine tag to the number of events that
// carried it.
type HabitTable map[string]int

// PopularityTable maps a restaurant id to its number of engaging events.
type PopularityTable map[uint64]int

type HabitService interface {
	ComputeHabits(userID string) HabitTable
	ComputePopularity(userID string) PopularityTable
	TrendingIDs(userID string, n int) []uint64
}

type habitService struct {
	interactionRepo repository.InteractionRepository
}

func NewHabitService(interactionRepo repository.InteractionRepository) HabitService {
	return &habitService{interactionRepo: interactionRepo}
}

func (s *habitService) ComputeHabits(userID string) HabitTable {
	events, err := s.interactionRepo.All(normalizeUserID(userID))
	if err != nil {
		logger.Error("Habits unavailable, returning empty table", err, map[string]interface{}{
			"user_id": userID,
		})
		return HabitTable{}
	}
	return AggregateHabits(events)
}

func (s *habitService) ComputePopularity(userID string) PopularityTable {
	events, err := s.interactionRepo.All(normalizeUserID(userID))
	if err != nil {
		logger.Error("Popularity unavailable, returning empty table", err, map[string]interface{}{
			"user_id": userID,
		})
		return PopularityTable{}
	}
	return AggregatePopularity(events)
}

// TrendingIDs returns the n most engaged restaurant ids, ties broken by
// ascending id.
func (s *habitService) TrendingIDs(userID string, n int) []uint64 {
	popularity := s.ComputePopularity(userID)

	ids := make([]uint64, 0, len(popularity))
	for id := range popularity {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if popularity[ids[i]] != popularity[ids[j]] {
			return popularity[ids[i]] > popularity[ids[j]]
		}
		return ids[i] < ids[j]
	})

	if n > 0 && len(ids) > n {
		ids = ids[:n]
	}
	return ids
}

// AggregateHabits counts every comma-separated tag of every event once.
func AggregateHabits(events []model.Interaction) HabitTable {
	habits := HabitTable{}
	for _, e := range events {
		for _, piece := range strings.Split(e.Cuisine, ",") {
			tag := strings.ToLower(strings.TrimSpace(piece))
			if tag == "" {
				continue
			}
			habits[tag]++
		}
	}
	return habits
}

// AggregatePopularity counts engaging events per numeric restaurant id.
// Views and non-numeric ids are ignored.
func AggregatePopularity(events []model.Interaction) PopularityTable {
	popularity := PopularityTable{}
	for _, e := range events {
		if !e.Action.IsEngaging() {
			continue
		}
		id, err := strconv.ParseUint(strings.TrimSpace(e.RestaurantID), 10, 64)
		if err != nil {
			continue
		}
		popularity[id]++
	}
	return popularity
}
