package service

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_booking/internal/schedule"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

const adminSubject = "admin"

// AdminAuthService вход администратора по общему паролю
type AdminAuthService struct {
	password []byte
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

func NewAdminAuthService(password, secret string, ttl time.Duration, logger *zap.Logger) *AdminAuthService {
	return &AdminAuthService{
		password: []byte(password),
		secret:   []byte(secret),
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
}

// Login проверяет пароль и выдаёт токен
func (s *AdminAuthService) Login(password string) (string, time.Time, error) {
	if len(s.password) == 0 || subtle.ConstantTimeCompare([]byte(password), s.password) != 1 {
		s.logger.Warn("Admin login rejected")
		return "", time.Time{}, schedule.Unauthorized("Invalid password")
	}

	now := s.now()
	expires := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   adminSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign admin token: %w", err)
	}

	s.logger.Info("Admin logged in", zap.Time("expires_at", expires))
	return token, expires, nil
}

// Verify проверяет подпись и срок действия токена
func (s *AdminAuthService) Verify(raw string) error {
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	_, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		var verr *jwt.ValidationError
		if errors.As(err, &verr) && verr.Errors&jwt.ValidationErrorExpired != 0 {
			return schedule.Unauthorized("Token expired")
		}
		return schedule.Unauthorized("Invalid token")
	}
	if claims.Subject != adminSubject {
		return schedule.Unauthorized("Invalid token")
	}
	return nil
}
