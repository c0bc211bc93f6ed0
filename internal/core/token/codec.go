// Package token implements the signed identity token codec. Tokens are
// stateless HS256 JWTs with a fixed time-to-live; there is no revocation
// list — once issued, a token stays valid until it expires.
package token

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTTL = time.Hour

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Claims is the payload carried by every identity token.
type Claims struct {
	Identity string `json:"identity"`
	Role     string `json:"role"`
	ClientID *uint  `json:"client_id,omitempty"`
	jwt.RegisteredClaims
}

// SubjectID parses the registered subject back into a numeric id.
// 0 is the master sentinel; negative values identify tenant-name logins.
func (c *Claims) SubjectID() int64 {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// Codec issues and verifies identity tokens.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec builds a Codec. A missing signing key is a fatal startup
// condition, not a per-call error.
func NewCodec(secret string, ttl time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("token: signing key is not configured")
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl}, nil
}

// Issue signs a token for the given subject. tenantID may be nil for
// actors not bound to a tenant.
func (c *Codec) Issue(subjectID int64, identity, role string, tenantID *uint) (string, error) {
	now := time.Now()
	claims := Claims{
		Identity: identity,
		Role:     role,
		ClientID: tenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(subjectID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Verify parses and validates a token string. Tokens signed with a
// different key or algorithm fail with ErrInvalidToken; an elapsed
// expiration fails with ErrExpiredToken.
func (c *Codec) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
