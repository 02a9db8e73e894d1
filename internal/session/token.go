package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a presented session token fails
// signature or claim validation. Callers mint a fresh anonymous session.
var ErrInvalidToken = errors.New("invalid session token")

// NewSID returns a cryptographically random session identifier.
func NewSID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// IssueToken builds and signs an HS256 JWT carrying the session claims.
// The sid claim keys the server-side cart; sub/actor/name/email carry the
// identity established at login (empty for anonymous sessions).
func IssueToken(secret string, s Session, ttlMin int) (string, time.Time, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sid":   s.SID,
		"actor": s.Actor,
		"sub":   s.ID,
		"name":  s.Name,
		"email": s.Email,
		"exp":   exp.Unix(),
		"iat":   time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseToken validates a session token and rebuilds the Session from its
// claims. Any parse or shape failure yields ErrInvalidToken.
func ParseToken(secret, raw string) (Session, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Session{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Session{}, ErrInvalidToken
	}
	s := Session{
		SID:   claimString(claims, "sid"),
		Actor: claimString(claims, "actor"),
		ID:    claimUint(claims, "sub"),
		Name:  claimString(claims, "name"),
		Email: claimString(claims, "email"),
	}
	if s.SID == "" {
		return Session{}, ErrInvalidToken
	}
	return s, nil
}

func claimString(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

// claimUint handles the float64 JSON numbers the jwt library decodes, plus
// numeric strings for robustness.
func claimUint(claims jwt.MapClaims, key string) uint64 {
	switch v := claims[key].(type) {
	case float64:
		return uint64(v)
	case string:
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
	}
	return 0
}
