package service

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/foodreco/foodreco-backend/internal/app/model"
	"github.com/foodreco/foodreco-backend/internal/app/repository"
	"github.com/foodreco/foodreco-backend/pkg/logger"
	"github.com/foodreco/foodreco-backend/pkg/util"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidProfile  = errors.New("invalid profile")
	ErrInvalidXP       = errors.New("xp amount must be positive")
)

const (
	defaultAvatar     = "default"
	maxProfileNameLen = 100
	maxAvatarLen      = 50
)

type ProfileInput struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// ProfileSession is a profile with a token identifying it on later calls.
type ProfileSession struct {
	Profile model.Profile `json:"profile"`
	Token   string        `json:"token"`
}

type ProfileService interface {
	Create(input ProfileInput) (*ProfileSession, error)
	List() []model.Profile
	Get(id string) (*model.Profile, error)
	Update(id string, input ProfileInput) (*model.Profile, error)
	Delete(id string) error
	AddXP(id string, amount int) (*model.Profile, error)
	// Activate issues a new token for an existing profile.
	Activate(id string) (*ProfileSession, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
	jwtSecret   string
	tokenExpiry time.Duration
}

func NewProfileService(profileRepo repository.ProfileRepository, jwtSecret string, tokenExpiry time.Duration) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		jwtSecret:   jwtSecret,
		tokenExpiry: tokenExpiry,
	}
}

func (s *profileService) Create(input ProfileInput) (*ProfileSession, error) {
	name, avatar, err := validateProfileInput(input)
	if err != nil {
		return nil, err
	}

	profile := &model.Profile{
		ID:     uuid.NewString(),
		Name:   name,
		Avatar: avatar,
		Level:  1,
		XP:     0,
	}
	if err := s.profileRepo.Create(profile); err != nil {
		return nil, err
	}

	logger.Info("Profile created", map[string]interface{}{
		"profile_id": profile.ID,
		"name":       profile.Name,
	})
	return s.session(profile)
}

func (s *profileService) List() []model.Profile {
	profiles, err := s.profileRepo.FindAll()
	if err != nil {
		return []model.Profile{}
	}
	return profiles
}

func (s *profileService) Get(id string) (*model.Profile, error) {
	profile, err := s.profileRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		logger.Error("Failed to find profile", err, map[string]interface{}{
			"profile_id": id,
		})
		return nil, err
	}
	return profile, nil
}

func (s *profileService) Update(id string, input ProfileInput) (*model.Profile, error) {
	profile, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Name) == "" {
		input.Name = profile.Name
	}
	if strings.TrimSpace(input.Avatar) == "" {
		input.Avatar = profile.Avatar
	}
	name, avatar, err := validateProfileInput(input)
	if err != nil {
		return nil, err
	}

	profile.Name = name
	profile.Avatar = avatar
	if err := s.profileRepo.Update(profile); err != nil {
		return nil, err
	}

	logger.Info("Profile updated", map[string]interface{}{
		"profile_id": id,
	})
	return profile, nil
}

func (s *profileService) Delete(id string) error {
	deleted, err := s.profileRepo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrProfileNotFound
	}

	logger.Info("Profile deleted", map[string]interface{}{
		"profile_id": id,
	})
	return nil
}

// AddXP credits xp and recomputes the level: one level per 100 XP, capped
// at model.MaxLevel.
func (s *profileService) AddXP(id string, amount int) (*model.Profile, error) {
	if amount <= 0 {
		return nil, ErrInvalidXP
	}

	profile, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	previousLevel := profile.Level
	profile.XP += amount
	profile.Level = model.LevelForXP(profile.XP)

	if err := s.profileRepo.Update(profile); err != nil {
		return nil, err
	}

	logger.Info("XP added to profile", map[string]interface{}{
		"profile_id": id,
		"amount":     amount,
		"xp":         profile.XP,
		"level":      profile.Level,
		"level_up":   profile.Level > previousLevel,
	})
	return profile, nil
}

func (s *profileService) Activate(id string) (*ProfileSession, error) {
	profile, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	return s.session(profile)
}

func (s *profileService) session(profile *model.Profile) (*ProfileSession, error) {
	token, err := util.GenerateProfileToken(profile.ID, profile.Name, s.jwtSecret, s.tokenExpiry)
	if err != nil {
		logger.Error("Failed to issue profile token", err, map[string]interface{}{
			"profile_id": profile.ID,
		})
		return nil, err
	}
	return &ProfileSession{Profile: *profile, Token: token}, nil
}

func validateProfileInput(input ProfileInput) (string, string, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || utf8.RuneCountInString(name) > maxProfileNameLen {
		return "", "", ErrInvalidProfile
	}

	avatar := strings.TrimSpace(input.Avatar)
	if avatar == "" {
		avatar = defaultAvatar
	}
	if len(avatar) > maxAvatarLen {
		return "", "", ErrInvalidProfile
	}
	return name, avatar, nil
}
