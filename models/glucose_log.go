package models

import "time"

const (
	ReadingFasting  = "Fasting"
	ReadingPreMeal  = "Pre-meal"
	ReadingPostMeal = "Post-meal"
	ReadingBedtime  = "Bedtime"
)

// GlucoseLog rows are append only. MeasuredAt is user supplied, LoggedAt is
// set by the server.
type GlucoseLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserKey     string    `gorm:"size:64;index;not null" json:"-"`
	MeasuredAt  time.Time `gorm:"index" json:"measured_at"`
	LoggedAt    time.Time `json:"logged_at"`
	ReadingType string    `gorm:"size:40;not null" json:"reading_type"`
	Value       float64   `gorm:"not null" json:"value"` // mg/dL
	MealNote    string    `gorm:"type:text" json:"meal_note"`
}
