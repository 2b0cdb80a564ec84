package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"metabolic-care/models"
	"metabolic-care/triage"
)

const maxGlucoseValue = 600

const (
	AlertCodeGlucoseVeryHigh = "glucose_very_high"
	AlertCodeGlucoseLow      = "glucose_low"
)

type GlucoseInput struct {
	MeasuredAt  *time.Time `json:"measured_at"`
	ReadingType string     `json:"reading_type"`
	Value       float64    `json:"value"`
	MealNote    string     `json:"meal_note"`
}

// ParseReadingType accepts the display labels, e.g. "Post-meal (1–2h)".
func ParseReadingType(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "fasting":
		return models.ReadingFasting, true
	case s == "pre-meal" || s == "premeal":
		return models.ReadingPreMeal, true
	case strings.HasPrefix(s, "post-meal") || s == "postmeal":
		return models.ReadingPostMeal, true
	case s == "bedtime":
		return models.ReadingBedtime, true
	}
	return "", false
}

type GlucoseService struct {
	db       *gorm.DB
	profiles *ProfileService
	alerts   *AlertService
	th       triage.Thresholds
	now      func() time.Time
}

func NewGlucoseService(db *gorm.DB, profiles *ProfileService, alerts *AlertService, th triage.Thresholds) *GlucoseService {
	return &GlucoseService{db: db, profiles: profiles, alerts: alerts, th: th, now: time.Now}
}

// Add appends a reading and raises an alert for very high or low values.
func (s *GlucoseService) Add(ctx context.Context, userKey string, in GlucoseInput) (*models.GlucoseLog, error) {
	if _, err := s.profiles.Active(ctx, userKey); err != nil {
		return nil, err
	}
	rt, ok := ParseReadingType(in.ReadingType)
	if !ok {
		return nil, validationf("reading_type must be one of Fasting, Pre-meal, Post-meal, Bedtime")
	}
	if in.Value <= 0 || in.Value > maxGlucoseValue {
		return nil, validationf("value must be in (0, %d] mg/dL", maxGlucoseValue)
	}

	now := s.now()
	measured := now
	if in.MeasuredAt != nil && !in.MeasuredAt.IsZero() {
		measured = *in.MeasuredAt
	}
	g := &models.GlucoseLog{
		UserKey:     userKey,
		MeasuredAt:  measured,
		LoggedAt:    now,
		ReadingType: rt,
		Value:       in.Value,
		MealNote:    strings.TrimSpace(in.MealNote),
	}
	if err := s.db.WithContext(ctx).Create(g).Error; err != nil {
		return nil, err
	}

	if s.alerts != nil {
		switch {
		case g.Value >= s.th.VeryHigh:
			s.alerts.Emit(ctx, userKey, models.AlertWarning, AlertCodeGlucoseVeryHigh,
				fmt.Sprintf("Very high reading (%.0f mg/dL). %s", g.Value, WarningVeryHigh))
		case g.Value < s.th.Hypo:
			s.alerts.Emit(ctx, userKey, models.AlertWarning, AlertCodeGlucoseLow,
				fmt.Sprintf("Low reading (%.0f mg/dL). %s", g.Value, WarningLow))
		}
	}
	return g, nil
}

// List returns readings ordered by measurement time.
func (s *GlucoseService) List(ctx context.Context, userKey string) ([]models.GlucoseLog, error) {
	var out []models.GlucoseLog
	err := s.db.WithContext(ctx).
		Where("user_key = ?", userKey).
		Order("measured_at ASC, id ASC").
		Find(&out).Error
	return out, err
}
