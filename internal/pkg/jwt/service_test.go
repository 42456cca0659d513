package jwt

import (
	"errors"
	"testing"
	"time"
)

func TestHMACService_AccessRoundTrip(t *testing.T) {
	s := NewHMACService("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	tok, err := s.GenerateAccessToken(Subject{UserID: 42, Email: "a@b.com", UserType: "jobseeker"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	c, err := s.ValidateToken(tok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if c.UserID != 42 || c.Email != "a@b.com" || c.UserType != "jobseeker" {
		t.Fatalf("unexpected claims: %+v", c)
	}
	if s.IsRefreshToken(c) {
		t.Fatalf("access token reported as refresh")
	}
	if c.Subject != "42" {
		t.Fatalf("expected subject 42, got %q", c.Subject)
	}
}

func TestHMACService_RefreshToken(t *testing.T) {
	s := NewHMACService("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	tok, err := s.GenerateRefreshToken(7)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	c, err := s.ValidateToken(tok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !s.IsRefreshToken(c) || c.UserID != 7 {
		t.Fatalf("unexpected claims: %+v", c)
	}
}

func TestHMACService_Expired(t *testing.T) {
	s := NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour)
	issued := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issued }

	tok, err := s.GenerateAccessToken(Subject{UserID: 1})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	s.now = func() time.Time { return issued.Add(2 * time.Minute) }
	if _, err := s.ValidateToken(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestHMACService_ForeignSecret(t *testing.T) {
	a := NewHMACService("one", "two", time.Hour, time.Hour)
	b := NewHMACService("three", "four", time.Hour, time.Hour)

	tok, err := a.GenerateAccessToken(Subject{UserID: 1})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := b.ValidateToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestHMACService_RejectsMissingUser(t *testing.T) {
	s := NewHMACService("access-secret", "refresh-secret", time.Hour, time.Hour)
	if _, err := s.GenerateAccessToken(Subject{}); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
