package utils // package utils provides helpers for token creation and hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// AccessToken represents a signed JWT along with its expiry. The Token field
// contains the serialized JWT string sent to the client as a bearer
// credential. Tokens are deliberately long-lived (TTL measured in hours or
// days): this is a low-churn internal tool and no server-side session state
// is kept, so the client simply discards the token to "log out".
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// Claims are the verified contents of an access token. The role is a
// snapshot taken at issuance; authorization uses this snapshot rather than a
// fresh account lookup, so role changes never affect tokens already issued.
type Claims struct {
	AccountID uint64 // subject (accounts.id)
	Role      string // role at issuance time
}

// ErrInvalidToken is returned by ParseAccessToken for any token that is
// malformed, tampered with, signed with the wrong key or expired. Callers
// get no further detail on purpose.
var ErrInvalidToken = errors.New("invalid token")

// NewAccessToken builds and signs an HS256 JWT for an account. The JWT
// carries standard claims: subject (sub), role, expiration (exp) and issued
// at (iat). ttlHours controls the expiry horizon.
func NewAccessToken(secret string, accountID uint64, role string, ttlHours int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlHours) * time.Hour)
	claims := jwt.MapClaims{
		"sub":  accountID,
		"role": role,
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies signature and expiry and returns the embedded
// claims. Only HMAC-signed tokens are accepted; anything else is rejected
// with ErrInvalidToken.
func ParseAccessToken(secret, raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	// Numeric JSON claims decode as float64.
	sub, ok := mc["sub"].(float64)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	role, ok := mc["role"].(string)
	if !ok || role == "" {
		return Claims{}, ErrInvalidToken
	}
	return Claims{AccountID: uint64(sub), Role: role}, nil
}
