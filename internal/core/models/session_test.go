package models

import (
	"testing"
	"time"
)

func TestSessionValidation(t *testing.T) {
	tests := []struct {
		name    string
		session Session
		wantErr bool
	}{
		{
			name: "valid session",
			session: Session{
				ID:        "0b7c1f0e-1111-4c8e-9d59-3a3b1f0c2a10",
				User:      &User{ID: "farmer-1", Email: "amina@example.com"},
				IssuedAt:  time.Now(),
				ExpiresAt: time.Now().Add(time.Hour),
			},
			wantErr: false,
		},
		{
			name:    "missing user",
			session: Session{ID: "abc"},
			wantErr: true,
		},
		{
			name:    "missing user id",
			session: Session{User: &User{Email: "amina@example.com"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.session.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSessionExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{"no expiry", time.Time{}, false},
		{"future", now.Add(time.Minute), false},
		{"exactly now", now, true},
		{"past", now.Add(-time.Minute), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Session{ExpiresAt: tt.expiresAt}
			if got := s.Expired(now); got != tt.want {
				t.Errorf("Expired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserOf(t *testing.T) {
	if UserOf(nil) != nil {
		t.Error("UserOf(nil) should be nil")
	}
	u := &User{ID: "farmer-1"}
	if got := UserOf(&Session{User: u}); got != u {
		t.Errorf("UserOf() = %v, want %v", got, u)
	}
}

func TestAnalysisStateString(t *testing.T) {
	if AnalysisRunning.String() != "analyzing" {
		t.Errorf("got %q", AnalysisRunning.String())
	}
	if AnalysisState(42).String() != "unknown" {
		t.Errorf("got %q", AnalysisState(42).String())
	}
}
