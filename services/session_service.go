package services

import (
	"errors"
	"time"

	"metabolic-care/utils"
)

// SessionService turns a phone number into a pseudonymous user key and a
// signed session token. The phone number itself is never stored.
type SessionService struct {
	pepper string
	secret []byte
	ttl    time.Duration
}

func NewSessionService(pepper string, secret []byte, ttl time.Duration) *SessionService {
	return &SessionService{pepper: pepper, secret: secret, ttl: ttl}
}

type Session struct {
	Token   string `json:"token"`
	UserKey string `json:"user_key"`
}

func (s *SessionService) Start(phone string) (*Session, error) {
	key, err := utils.DeriveUserKey(phone, s.pepper)
	if errors.Is(err, utils.ErrInvalidPhone) {
		return nil, validationf("%v", err)
	}
	if err != nil {
		return nil, err
	}
	tok, err := utils.GenerateJWT(key, s.secret, s.ttl)
	if err != nil {
		return nil, err
	}
	return &Session{Token: tok, UserKey: key}, nil
}

// Resolve validates a token and returns its user key.
func (s *SessionService) Resolve(token string) (string, error) {
	return utils.ParseJWT(token, s.secret)
}
