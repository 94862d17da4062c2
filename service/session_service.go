package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"stargrid/models"

	"gorm.io/gorm"
)

var (
	// ErrUnauthorized means the presented credentials or session token are
	// missing, wrong or expired.
	ErrUnauthorized = errors.New("unauthorized")
)

// SessionService implements admin login: a shared secret (or a named operator
// account) is exchanged for an opaque bearer token with expiry. Expired
// sessions are purged lazily on lookup; a periodic sweep handles the rest.
type SessionService struct {
	db            *gorm.DB
	adminPassword string
	ttl           time.Duration
	users         *UserService

	// now is swappable in tests
	now func() time.Time
}

// NewSessionService constructs a session service
func NewSessionService(db *gorm.DB, adminPassword string, ttl time.Duration, users *UserService) *SessionService {
	return &SessionService{
		db:            db,
		adminPassword: adminPassword,
		ttl:           ttl,
		users:         users,
		now:           time.Now,
	}
}

// Login checks credentials and creates a session on success. With an empty
// username the password is compared against the shared admin secret in
// constant time; with a username it is checked against that operator's
// bcrypt hash.
func (s *SessionService) Login(username, password string) (*models.Session, error) {
	if username != "" {
		if err := s.users.CheckPassword(username, password); err != nil {
			return nil, ErrUnauthorized
		}
	} else {
		if subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword)) != 1 {
			return nil, ErrUnauthorized
		}
	}

	token, err := newSessionToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	now := s.now()
	session := models.Session{
		Token:     token,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if err := s.db.Create(&session).Error; err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return &session, nil
}

// Validate looks up a session by token. An absent token fails closed; an
// expired session is deleted on detection and also fails closed.
func (s *SessionService) Validate(token string) error {
	if token == "" {
		return ErrUnauthorized
	}

	var session models.Session
	if err := s.db.First(&session, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnauthorized
		}
		return fmt.Errorf("failed to look up session: %w", err)
	}

	if session.Expired(s.now()) {
		if err := s.db.Where("token = ?", token).Delete(&models.Session{}).Error; err != nil {
			return fmt.Errorf("failed to purge expired session: %w", err)
		}
		return ErrUnauthorized
	}
	return nil
}

// Logout deletes the session for a token. Unknown tokens are a no-op.
func (s *SessionService) Logout(token string) error {
	if token == "" {
		return nil
	}
	if err := s.db.Where("token = ?", token).Delete(&models.Session{}).Error; err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// CleanExpired deletes every session past its expiry and returns the count.
func (s *SessionService) CleanExpired() (int64, error) {
	res := s.db.Where("expires_at < ?", s.now()).Delete(&models.Session{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to clean expired sessions: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// newSessionToken returns 32 random bytes hex-encoded.
func newSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
