package services

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"metabolic-care/models"
)

// AlertService stores an alert and fans it out. Both rt and push may be nil.
type AlertService struct {
	db   *gorm.DB
	rt   *RealtimeHub
	push Pusher
}

func NewAlertService(db *gorm.DB, rt *RealtimeHub, push Pusher) *AlertService {
	return &AlertService{db: db, rt: rt, push: push}
}

// Emit is best effort: failures are logged, never returned.
func (s *AlertService) Emit(ctx context.Context, userKey, typ, code, message string) *models.Alert {
	a := &models.Alert{UserKey: userKey, Type: typ, Code: code, Message: message, CreatedAt: time.Now()}
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		log.Error().Err(err).Str("code", code).Msg("persist alert")
	}

	if s.rt != nil {
		s.rt.Broadcast(userKey, map[string]any{
			"kind":  "alert.created",
			"alert": a,
		})
	}
	if s.push != nil {
		s.push.PushToUser(ctx, userKey, "New Alert", message, map[string]string{
			"type": typ, "code": code, "alertId": strconv.FormatUint(uint64(a.ID), 10),
		})
	}
	return a
}

// List returns the newest alerts first.
func (s *AlertService) List(ctx context.Context, userKey string, limit int) ([]models.Alert, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var out []models.Alert
	err := s.db.WithContext(ctx).
		Where("user_key = ?", userKey).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}
