package models

import "time"

type Alert struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserKey   string    `gorm:"size:64;index" json:"-"`
	Type      string    `gorm:"size:20" json:"type"` // "warning" | "info"
	Code      string    `gorm:"size:40" json:"code"`
	Message   string    `gorm:"type:text" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	AlertWarning = "warning"
	AlertInfo    = "info"
)
