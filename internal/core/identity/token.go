package identity

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/neilberkman/farmedge/internal/core/models"
)

const emailClaim = "email"

// IssueToken signs an HS256 session token for user, valid for ttl from now.
func IssueToken(secret []byte, user models.User, ttl time.Duration, now time.Time) (string, *models.Session, error) {
	if user.ID == "" {
		return "", nil, errors.New("user id is required")
	}
	if len(secret) == 0 {
		return "", nil, errors.New("signing secret is empty")
	}

	sess := &models.Session{
		ID:        uuid.NewString(),
		User:      &models.User{ID: user.ID, Email: user.Email},
		IssuedAt:  now.Truncate(time.Second),
		ExpiresAt: now.Add(ttl).Truncate(time.Second),
	}

	tok, err := jwt.NewBuilder().
		JwtID(sess.ID).
		Subject(user.ID).
		IssuedAt(sess.IssuedAt).
		Expiration(sess.ExpiresAt).
		Claim(emailClaim, user.Email).
		Build()
	if err != nil {
		return "", nil, fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256, secret))
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	return string(signed), sess, nil
}

// ParseToken verifies raw and returns the session it carries.
// Expired tokens return ErrTokenExpired; anything else that fails
// verification returns ErrInvalidToken.
func ParseToken(secret []byte, raw []byte, now time.Time) (*models.Session, error) {
	tok, err := jwt.Parse(raw,
		jwt.WithKey(jwa.HS256, secret),
		jwt.WithValidate(true),
		jwt.WithClock(jwt.ClockFunc(func() time.Time { return now })),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired()) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if tok.Subject() == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	user := &models.User{ID: tok.Subject()}
	if v, ok := tok.Get(emailClaim); ok {
		if email, ok := v.(string); ok {
			user.Email = email
		}
	}

	return &models.Session{
		ID:        tok.JwtID(),
		User:      user,
		IssuedAt:  tok.IssuedAt(),
		ExpiresAt: tok.Expiration(),
	}, nil
}
