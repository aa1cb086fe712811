package auth

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ecdsaMethods are the only signing algorithms the policy accepts. The key is
// an EC key, so HMAC and RSA tokens are rejected outright.
var ecdsaMethods = []string{
	jwt.SigningMethodES256.Alg(),
	jwt.SigningMethodES384.Alg(),
	jwt.SigningMethodES512.Alg(),
}

// TokenValidationPolicy holds the immutable bearer-token validation rules for
// a product instance: signature validation against the imported EC key,
// issuer validation against the configured issuer, audience validation
// disabled, and a clock-skew leeway for time-based claims. It is built once
// during service registration and shared read-only by all requests.
type TokenValidationPolicy struct {
	key       *ecdsa.PublicKey
	issuer    string
	clockSkew time.Duration
	parser    *jwt.Parser
}

// NewPolicy builds a validation policy from an imported key. The issuer must
// be non-empty; a non-positive clock skew disables leeway.
func NewPolicy(key *ecdsa.PublicKey, issuer string, clockSkew time.Duration) (*TokenValidationPolicy, error) {
	if key == nil {
		return nil, errors.New("auth: verification key is required")
	}
	if issuer == "" {
		return nil, errors.New("auth: issuer is required")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods(ecdsaMethods),
		jwt.WithIssuer(issuer),
	}
	if clockSkew > 0 {
		opts = append(opts, jwt.WithLeeway(clockSkew))
	}

	return &TokenValidationPolicy{
		key:       key,
		issuer:    issuer,
		clockSkew: clockSkew,
		parser:    jwt.NewParser(opts...),
	}, nil
}

// Issuer returns the issuer accepted by this policy.
func (p *TokenValidationPolicy) Issuer() string { return p.issuer }

// ClockSkew returns the configured leeway for time-based claims.
func (p *TokenValidationPolicy) ClockSkew() time.Duration { return p.clockSkew }

// Verify validates a bearer token string against the policy and returns its
// claims. Results are never cached; callers verify every request.
func (p *TokenValidationPolicy) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := p.parser.ParseWithClaims(tokenString, claims, p.keyFunc)
	if err != nil {
		return nil, fmt.Errorf("auth: verify token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("auth: invalid token")
	}
	return claims, nil
}

// keyFunc supplies the verification key during parsing.
func (p *TokenValidationPolicy) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodECDSA); !ok {
		return nil, fmt.Errorf("auth: unexpected signing method: %s", token.Method.Alg())
	}
	return p.key, nil
}
