package services

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"metabolic-care/models"
)

const dateLayout = "2006-01-02"

type CheckInInput struct {
	Date         string `json:"date"` // YYYY-MM-DD, defaults to today
	FollowedPlan bool   `json:"followed_plan"`
	ActualMeals  string `json:"actual_meals"`
}

type CheckInResult struct {
	CheckIn *models.CheckIn `json:"checkin"`
	Tips    []string        `json:"tips,omitempty"`
}

type CheckInService struct {
	db       *gorm.DB
	profiles *ProfileService
	coach    Coach
	now      func() time.Time
}

func NewCheckInService(db *gorm.DB, profiles *ProfileService, coach Coach) *CheckInService {
	return &CheckInService{db: db, profiles: profiles, coach: coach, now: time.Now}
}

// Add stores a check-in. Repeated dates are kept as separate rows.
func (s *CheckInService) Add(ctx context.Context, userKey string, in CheckInInput) (*CheckInResult, error) {
	profile, err := s.profiles.Active(ctx, userKey)
	if err != nil {
		return nil, err
	}

	now := s.now()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if in.Date != "" {
		day, err = time.Parse(dateLayout, in.Date)
		if err != nil {
			return nil, validationf("date must be YYYY-MM-DD")
		}
	}

	c := &models.CheckIn{
		UserKey:      userKey,
		CheckInDate:  day,
		FollowedPlan: in.FollowedPlan,
		CreatedAt:    now,
	}
	if !in.FollowedPlan {
		c.ActualMeals = strings.TrimSpace(in.ActualMeals)
	}
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}

	res := &CheckInResult{CheckIn: c}
	if !c.FollowedPlan {
		res.Tips = s.coach.Tips(ctx, c.ActualMeals+" | Profile: "+ContextString(profile))
	}
	return res, nil
}

// List returns check-ins ordered by date; reading needs no active profile.
func (s *CheckInService) List(ctx context.Context, userKey string) ([]models.CheckIn, error) {
	var out []models.CheckIn
	err := s.db.WithContext(ctx).
		Where("user_key = ?", userKey).
		Order("check_in_date ASC, id ASC").
		Find(&out).Error
	return out, err
}
