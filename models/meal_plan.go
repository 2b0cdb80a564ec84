package models

import (
	"time"

	"metabolic-care/planner"
)

// MealPlan holds the latest generated week for a user; regeneration
// overwrites it.
type MealPlan struct {
	ID          uint                `gorm:"primaryKey" json:"-"`
	UserKey     string              `gorm:"size:64;uniqueIndex;not null" json:"-"`
	Preferences planner.Preferences `gorm:"serializer:json" json:"preferences"`
	Week        planner.WeekPlan    `gorm:"serializer:json" json:"days"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// Day returns the plan day with the given 1-based number.
func (p *MealPlan) Day(n int) (planner.DayPlan, bool) {
	for _, d := range p.Week {
		if d.Day == n {
			return d, true
		}
	}
	return planner.DayPlan{}, false
}
