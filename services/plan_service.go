package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"metabolic-care/models"
	"metabolic-care/planner"
)

// PlanRequest carries the form choices. PreferDesi defaults to true.
type PlanRequest struct {
	PreferDesi *bool `json:"prefer_desi"`
	VegOnly    bool  `json:"veg_only"`
}

type PlanService struct {
	db       *gorm.DB
	planner  *planner.Planner
	profiles *ProfileService
	coach    Coach
}

func NewPlanService(db *gorm.DB, p *planner.Planner, profiles *ProfileService, coach Coach) *PlanService {
	return &PlanService{db: db, planner: p, profiles: profiles, coach: coach}
}

// Generate replaces the stored plan with a fresh week.
func (s *PlanService) Generate(ctx context.Context, userKey string, req PlanRequest) (*models.MealPlan, error) {
	profile, err := s.profiles.Active(ctx, userKey)
	if err != nil {
		return nil, err
	}

	prefs := planner.Preferences{
		PreferDesi:         req.PreferDesi == nil || *req.PreferDesi,
		VegOnly:            req.VegOnly,
		HasHypertension:    profile.HasHypertension,
		HasHighCholesterol: profile.HasHighCholesterol,
	}
	week := s.planner.GenerateWeek(prefs)

	var plan models.MealPlan
	err = s.db.WithContext(ctx).Where("user_key = ?", userKey).First(&plan).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	plan.UserKey = userKey
	plan.Preferences = prefs
	plan.Week = week
	if err := s.db.WithContext(ctx).Save(&plan).Error; err != nil {
		return nil, fmt.Errorf("save plan: %w", err)
	}
	return &plan, nil
}

func (s *PlanService) Current(ctx context.Context, userKey string) (*models.MealPlan, error) {
	var plan models.MealPlan
	err := s.db.WithContext(ctx).Where("user_key = ?", userKey).First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// Swaps asks the coach for alternatives to one day's main meals.
func (s *PlanService) Swaps(ctx context.Context, userKey string, day int) ([]string, error) {
	if day < 1 || day > planner.DaysPerPlan {
		return nil, ErrInvalidDay
	}
	if _, err := s.profiles.Active(ctx, userKey); err != nil {
		return nil, err
	}
	plan, err := s.Current(ctx, userKey)
	if err != nil {
		return nil, err
	}
	d, ok := plan.Day(day)
	if !ok {
		return nil, ErrPlanNotFound
	}
	return s.coach.Swaps(ctx, DayMealText(d)), nil
}

// DayMealText joins breakfast, lunch and dinner names.
func DayMealText(d planner.DayPlan) string {
	return strings.Join([]string{d.Breakfast.Name, d.Lunch.Name, d.Dinner.Name}, "; ")
}
