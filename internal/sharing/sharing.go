package sharing

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for tokens that are malformed, tampered with or expired.
var ErrInvalidToken = errors.New("invalid share token")

const audience = "meal-plan-share"

// Claims identify a shared plan.
type Claims struct {
	PlanID string `json:"pid"`
	jwt.RegisteredClaims
}

// Signer issues and verifies signed, expiring share tokens.
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSigner creates a Signer for HS256 tokens valid for ttl.
func NewSigner(secret string, ttl time.Duration) (*Signer, error) {
	if secret == "" {
		return nil, fmt.Errorf("share secret is empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("share ttl must be positive, got %v", ttl)
	}
	return &Signer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue returns a token for planID and its expiry.
func (s *Signer) Issue(planID string) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		PlanID: planID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			Audience:  jwt.ClaimStrings{audience},
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign share token: %w", err)
	}
	return signed, exp, nil
}

// Parse verifies token and returns the plan ID it grants access to.
func (s *Signer) Parse(token string) (string, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.PlanID == "" {
		return "", fmt.Errorf("%w: missing plan id", ErrInvalidToken)
	}
	return claims.PlanID, nil
}
