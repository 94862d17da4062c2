package service

import (
	"errors"
	"testing"
	"time"

	"stargrid/models"
)

func newTestSessionService(t *testing.T) *SessionService {
	t.Helper()
	db := newTestDB(t)
	return NewSessionService(db, "9999", 24*time.Hour, NewUserService(db))
}

func TestSessionService_LoginWrongPassword(t *testing.T) {
	svc := newTestSessionService(t)

	if _, err := svc.Login("", "wrong"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestSessionService_LoginCreatesValidSession(t *testing.T) {
	svc := newTestSessionService(t)

	session, err := svc.Login("", "9999")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if len(session.Token) != 64 {
		t.Fatalf("expected 64-char hex token, got %d chars", len(session.Token))
	}
	if got := session.ExpiresAt.Sub(session.CreatedAt); got != 24*time.Hour {
		t.Fatalf("expected 24h lifetime, got %v", got)
	}

	if err := svc.Validate(session.Token); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestSessionService_ValidateUnknownToken(t *testing.T) {
	svc := newTestSessionService(t)

	if err := svc.Validate("deadbeef"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for unknown token, got %v", err)
	}
	if err := svc.Validate(""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for empty token, got %v", err)
	}
}

func TestSessionService_ExpiryPurgesLazily(t *testing.T) {
	svc := newTestSessionService(t)

	base := time.Now()
	svc.now = func() time.Time { return base }

	session, err := svc.Login("", "9999")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	// Valid one hour in
	svc.now = func() time.Time { return base.Add(time.Hour) }
	if err := svc.Validate(session.Token); err != nil {
		t.Fatalf("expected valid session at T+1h: %v", err)
	}

	// Invalid and purged at T+25h
	svc.now = func() time.Time { return base.Add(25 * time.Hour) }
	if err := svc.Validate(session.Token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized at T+25h, got %v", err)
	}

	var count int64
	svc.db.Model(&models.Session{}).Where("token = ?", session.Token).Count(&count)
	if count != 0 {
		t.Fatalf("expected expired session purged on detection, found %d rows", count)
	}
}

func TestSessionService_Logout(t *testing.T) {
	svc := newTestSessionService(t)

	session, err := svc.Login("", "9999")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := svc.Logout(session.Token); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if err := svc.Validate(session.Token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected session gone after logout, got %v", err)
	}

	// Logging out an unknown token is a no-op
	if err := svc.Logout("unknown"); err != nil {
		t.Fatalf("Logout unknown token: %v", err)
	}
}

func TestSessionService_CleanExpired(t *testing.T) {
	svc := newTestSessionService(t)

	base := time.Now()
	svc.now = func() time.Time { return base }

	if _, err := svc.Login("", "9999"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := svc.Login("", "9999"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	// Nothing expired yet
	n, err := svc.CleanExpired()
	if err != nil {
		t.Fatalf("CleanExpired: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 swept, got %d", n)
	}

	svc.now = func() time.Time { return base.Add(25 * time.Hour) }
	n, err = svc.CleanExpired()
	if err != nil {
		t.Fatalf("CleanExpired: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 swept, got %d", n)
	}
}

func TestSessionService_OperatorLogin(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	svc := NewSessionService(db, "9999", 24*time.Hour, users)

	if _, err := users.Create(models.UserCreate{Username: "alice", Password: "s3cret"}); err != nil {
		t.Fatalf("Create user: %v", err)
	}

	if _, err := svc.Login("alice", "s3cret"); err != nil {
		t.Fatalf("operator login: %v", err)
	}
	if _, err := svc.Login("alice", "wrong"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for wrong operator password, got %v", err)
	}
	if _, err := svc.Login("bob", "s3cret"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for unknown operator, got %v", err)
	}
}
