package models

import (
	"time"

	"metabolic-care/triage"
)

// HealthProfile is the persisted onboarding answer set. Lab values entered
// during triage are not stored; only the resulting tier and flags are.
type HealthProfile struct {
	ID                  uint                `gorm:"primaryKey" json:"-"`
	UserKey             string              `gorm:"size:64;uniqueIndex;not null" json:"-"`
	Name                string              `gorm:"size:120" json:"name"`
	Age                 int                 `json:"age"`
	Gender              string              `gorm:"size:32" json:"gender"`
	DiabetesType        triage.DiabetesType `gorm:"size:16" json:"diabetes_type"`
	HeightCm            float64             `json:"height_cm"`
	WeightKg            float64             `json:"weight_kg"`
	BMI                 *float64            `json:"bmi"`
	FamilyHistory       []string            `gorm:"serializer:json" json:"family_history"`
	HasHypertension     bool                `json:"has_hypertension"`
	HasHighCholesterol  bool                `json:"has_high_cholesterol"`
	OtherMajorCondition bool                `json:"other_major_condition"`
	TriageTier          triage.Tier         `gorm:"size:8" json:"triage_tier"`
	TriageFlags         []string            `gorm:"serializer:json" json:"triage_flags"`
	TriagedAt           time.Time           `json:"triaged_at"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

// ProfileFlags returns the comorbidity answers the triage engine reads.
func (p *HealthProfile) ProfileFlags() triage.ProfileFlags {
	return triage.ProfileFlags{
		DiabetesType:        p.DiabetesType,
		HasHypertension:     p.HasHypertension,
		HasHighCholesterol:  p.HasHighCholesterol,
		OtherMajorCondition: p.OtherMajorCondition,
	}
}
