package models

import "time"

// CheckIn records whether the plan was followed on a date. Several rows for
// the same date are allowed and each one counts toward adherence.
type CheckIn struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserKey      string    `gorm:"size:64;index;not null" json:"-"`
	CheckInDate  time.Time `gorm:"type:date;index" json:"checkin_date"`
	FollowedPlan bool      `json:"followed_plan"`
	ActualMeals  string    `gorm:"type:text" json:"actual_meals"`
	CreatedAt    time.Time `json:"created_at"`
}
