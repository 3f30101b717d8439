package security

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	uuid "github.com/google/uuid"
)

var (
	// ErrCredentialMissing indicates no credential was supplied at all.
	ErrCredentialMissing = errors.New("session credential missing")
	// ErrCredentialInvalid indicates the credential is malformed or its signature does not verify.
	ErrCredentialInvalid = errors.New("session credential invalid")
	// ErrCredentialExpired indicates the credential's expiry timestamp has passed.
	ErrCredentialExpired = errors.New("session credential expired")
)

// SessionClaims is the payload carried by a signed session credential.
type SessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// CredentialCodec signs and verifies session credentials with a keyed hash.
// The secret is an explicit constructor argument; there is no ambient key
// material, so tests can run isolated codecs with distinct keys.
type CredentialCodec struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

const defaultCredentialTTL = 24 * time.Hour

// NewCredentialCodec constructs a codec for the supplied secret and issuer.
func NewCredentialCodec(secret, issuer string, ttl time.Duration) (*CredentialCodec, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("credential secret is required")
	}
	if strings.TrimSpace(issuer) == "" {
		return nil, fmt.Errorf("credential issuer is required")
	}
	if ttl <= 0 {
		ttl = defaultCredentialTTL
	}

	return &CredentialCodec{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}, nil
}

// TTL returns the lifetime stamped into issued credentials.
func (c *CredentialCodec) TTL() time.Duration {
	return c.ttl
}

// Sign issues a signed credential asserting the subject and role.
func (c *CredentialCodec) Sign(subjectID, role string) (string, error) {
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" {
		return "", fmt.Errorf("subject id is required")
	}

	now := time.Now().UTC()
	claims := SessionClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign credential: %w", err)
	}

	return signed, nil
}

// Verify validates a raw credential string and returns its claims. Failures
// collapse into the three-way taxonomy: missing, expired, invalid. Expiry is
// judged against the credential's own expiresAt with no skew compensation.
func (c *CredentialCodec) Verify(raw string) (*SessionClaims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrCredentialMissing
	}

	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithIssuer(c.issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrCredentialExpired
		}
		return nil, ErrCredentialInvalid
	}

	if parsed == nil || !parsed.Valid {
		return nil, ErrCredentialInvalid
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, ErrCredentialInvalid
	}

	return claims, nil
}
