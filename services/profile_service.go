package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"metabolic-care/models"
	"metabolic-care/triage"
	"metabolic-care/utils"
)

const maxFastingReadings = 3

// ProfileInput is the onboarding form. Vitals feed triage and are discarded.
type ProfileInput struct {
	Name                string   `json:"name"`
	Age                 int      `json:"age"`
	Gender              string   `json:"gender"`
	DiabetesType        string   `json:"diabetes_type"`
	HeightCm            float64  `json:"height_cm"`
	WeightKg            float64  `json:"weight_kg"`
	FamilyHistory       []string `json:"family_history"`
	HasHypertension     bool     `json:"has_hypertension"`
	HasHighCholesterol  bool     `json:"has_high_cholesterol"`
	OtherMajorCondition bool     `json:"other_major_condition"`

	Systolic         float64   `json:"systolic"`
	Diastolic        float64   `json:"diastolic"`
	HbA1c            float64   `json:"hba1c"`
	TotalCholesterol float64   `json:"total_cholesterol"`
	Fasting          []float64 `json:"fasting"`
}

const (
	maxNameLen   = 120
	maxGenderLen = 32
	maxFasting   = 600
)

type bound struct {
	name  string
	value float64
	max   float64
}

// Validate rejects out-of-range form values; zero means not provided.
func (in ProfileInput) Validate() error {
	if in.Age < 0 || in.Age > 120 {
		return validationf("age must be between 0 and 120")
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.Name)) > maxNameLen {
		return validationf("name must be at most %d characters", maxNameLen)
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.Gender)) > maxGenderLen {
		return validationf("gender must be at most %d characters", maxGenderLen)
	}
	for _, b := range []bound{
		{"systolic", in.Systolic, 300},
		{"diastolic", in.Diastolic, 200},
		{"hba1c", in.HbA1c, 20},
		{"total_cholesterol", in.TotalCholesterol, 600},
		{"height_cm", in.HeightCm, 250},
		{"weight_kg", in.WeightKg, 400},
	} {
		if b.value < 0 || b.value > b.max {
			return validationf("%s must be between 0 and %g", b.name, b.max)
		}
	}
	for _, v := range in.Fasting {
		if v > maxFasting {
			return validationf("fasting readings must be at most %d", maxFasting)
		}
	}
	return nil
}

// Vitals drops non-positive fasting readings and keeps the first three.
func (in ProfileInput) Vitals() triage.Vitals {
	var fasting []float64
	for _, v := range in.Fasting {
		if v > 0 && len(fasting) < maxFastingReadings {
			fasting = append(fasting, v)
		}
	}
	return triage.Vitals{
		Systolic:         in.Systolic,
		Diastolic:        in.Diastolic,
		HbA1c:            in.HbA1c,
		TotalCholesterol: in.TotalCholesterol,
		Fasting:          fasting,
	}
}

// Flags returns the comorbidity answers as triage input.
func (in ProfileInput) Flags() triage.ProfileFlags {
	return triage.ProfileFlags{
		DiabetesType:        triage.ParseDiabetesType(in.DiabetesType),
		HasHypertension:     in.HasHypertension,
		HasHighCholesterol:  in.HasHighCholesterol,
		OtherMajorCondition: in.OtherMajorCondition,
	}
}

type ProfileResult struct {
	Profile           *models.HealthProfile `json:"profile"`
	Triage            triage.Result         `json:"triage"`
	BMICategory       string                `json:"bmi_category,omitempty"`
	FamilyHistoryNote string                `json:"family_history_note,omitempty"`
}

type ProfileService struct {
	db     *gorm.DB
	engine *triage.Engine
}

func NewProfileService(db *gorm.DB, engine *triage.Engine) *ProfileService {
	return &ProfileService{db: db, engine: engine}
}

// Save triages the submission and upserts the profile with the cached result.
func (s *ProfileService) Save(ctx context.Context, userKey string, in ProfileInput) (*ProfileResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var bmi *float64
	var category string
	if in.HeightCm > 0 && in.WeightKg > 0 {
		v, err := utils.CalculateBMI(in.HeightCm, in.WeightKg)
		if err != nil {
			return nil, validationf("%v", err)
		}
		v = round2(v)
		bmi = &v
		category = utils.BMICategory(v)
	}

	var p models.HealthProfile
	err := s.db.WithContext(ctx).Where("user_key = ?", userKey).First(&p).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	p.UserKey = userKey
	p.Name = strings.TrimSpace(in.Name)
	p.Age = in.Age
	p.Gender = strings.TrimSpace(in.Gender)
	p.DiabetesType = triage.ParseDiabetesType(in.DiabetesType)
	p.HeightCm = in.HeightCm
	p.WeightKg = in.WeightKg
	p.BMI = bmi
	p.FamilyHistory = in.FamilyHistory
	p.HasHypertension = in.HasHypertension
	p.HasHighCholesterol = in.HasHighCholesterol
	p.OtherMajorCondition = in.OtherMajorCondition

	res := s.engine.Evaluate(p.ProfileFlags(), in.Vitals())
	p.TriageTier = res.Tier
	p.TriageFlags = res.Flags
	p.TriagedAt = time.Now()

	if err := s.db.WithContext(ctx).Save(&p).Error; err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	return &ProfileResult{
		Profile:           &p,
		Triage:            res,
		BMICategory:       category,
		FamilyHistoryNote: familyHistoryNote(in.FamilyHistory),
	}, nil
}

func (s *ProfileService) Get(ctx context.Context, userKey string) (*models.HealthProfile, error) {
	var p models.HealthProfile
	err := s.db.WithContext(ctx).Where("user_key = ?", userKey).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileRequired
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Active returns the profile when the user may use gated features.
func (s *ProfileService) Active(ctx context.Context, userKey string) (*models.HealthProfile, error) {
	p, err := s.Get(ctx, userKey)
	if err != nil {
		return nil, err
	}
	if p.TriageTier == triage.Red {
		return nil, ErrTriageBlocked
	}
	return p, nil
}

// ContextString summarises the profile for coaching prompts.
func ContextString(p *models.HealthProfile) string {
	bmi := "n/a"
	if p.BMI != nil {
		bmi = fmt.Sprintf("%.1f", *p.BMI)
	}
	return fmt.Sprintf("Age: %d, Gender: %s, Height_cm: %g, Weight_kg: %g, BMI: %s, FamilyHistory: %v",
		p.Age, p.Gender, p.HeightCm, p.WeightKg, bmi, p.FamilyHistory)
}

func familyHistoryNote(fh []string) string {
	if len(fh) == 0 {
		return ""
	}
	return "Family history noted: " + strings.Join(fh, ", ") +
		". This tool supports habit-building; follow clinician guidance for targets."
}
