package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/timetrack/auth-service/internal/core/domain"
)

// hmacMinKeyLen is the minimum signing secret length for HS256: anything
// shorter than the hash output weakens the MAC.
const hmacMinKeyLen = 32

// clockSkew is the leeway applied to expiry checks on verification.
const clockSkew = 30 * time.Second

// Claims is the claims set embedded in every issued token. The unique_name
// and name claims duplicate the subject for consumers that read either.
type Claims struct {
	UniqueName string `json:"unique_name"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

// TokenConfig carries the token-signing configuration, read once at startup.
type TokenConfig struct {
	Secret     string
	Issuer     string
	Audience   string
	Expiration time.Duration
}

// TokenService issues and verifies stateless HS256-signed tokens. Any
// process holding the shared secret can verify independently; no session
// state is kept anywhere.
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

// NewTokenService validates the signing configuration and returns the
// service. A secret shorter than the HS256 minimum is a fatal configuration
// error, not something to discover per request.
func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if len(cfg.Secret) < hmacMinKeyLen {
		return nil, fmt.Errorf("token: signing secret must be at least %d bytes, got %d", hmacMinKeyLen, len(cfg.Secret))
	}
	if cfg.Issuer == "" || cfg.Audience == "" {
		return nil, errors.New("token: issuer and audience are required")
	}
	return &TokenService{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		ttl:      cfg.Expiration,
	}, nil
}

// CreateToken signs a claims set asserting the user's identity and role.
// Expiration is absolute UTC: now + the configured lifetime.
func (s *TokenService) CreateToken(user *domain.User) (*domain.AuthResponse, error) {
	now := time.Now().UTC()
	expires := now.Add(s.ttl)

	claims := Claims{
		UniqueName: user.Username,
		Name:       user.Username,
		Role:       user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("token: sign: %w", err)
	}

	return &domain.AuthResponse{
		AccessToken:  signed,
		Username:     user.Username,
		Role:         user.Role,
		ExpiresAtUTC: expires,
	}, nil
}

// Verify parses the token and checks signature, signing method, issuer,
// audience, and expiry (with clock-skew leeway) against the configuration
// the token was issued under. Returns the extracted claims on success.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(clockSkew),
	)
	if err != nil {
		return nil, fmt.Errorf("token: verify: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("token: verify: token not valid")
	}
	return claims, nil
}
