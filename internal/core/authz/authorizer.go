// Package authz makes the per-request allow/deny decision: it verifies the
// bearer token, extracts the claims, and checks the caller's role against
// the policy declared by the endpoint.
package authz

import (
	"fmt"

	"github.com/timetrack/auth-service/internal/core/domain"
	"github.com/timetrack/auth-service/internal/core/service"
)

// Policy names understood by Authorize. Policies are static configuration,
// not persisted entities.
const (
	// PolicyAdmin admits Admin only.
	PolicyAdmin = "AdminPolicy"
	// PolicyUser admits User and Admin.
	PolicyUser = "UserPolicy"
	// PolicyAuthenticated admits any caller with a valid token.
	PolicyAuthenticated = "Authenticated"
)

// TokenVerifier checks a token's signature, issuer, audience, and expiry and
// returns its claims. Satisfied by *service.TokenService.
type TokenVerifier interface {
	Verify(tokenString string) (*service.Claims, error)
}

// Authorizer evaluates verified claims against named policies. The policy
// table is fixed at construction; evaluation is pure and non-blocking.
type Authorizer struct {
	verifier TokenVerifier
	policies map[string][]string
}

func NewAuthorizer(verifier TokenVerifier) *Authorizer {
	return &Authorizer{
		verifier: verifier,
		policies: map[string][]string{
			PolicyAdmin:         {domain.RoleAdmin},
			PolicyUser:          {domain.RoleUser, domain.RoleAdmin},
			PolicyAuthenticated: nil, // any authenticated role
		},
	}
}

// Authorize runs the full decision for one request: authentication first,
// then the role check. A missing or invalid token yields
// domain.ErrUnauthenticated; a valid token whose role is outside the
// policy's allowed set yields domain.ErrForbidden. There is no partial
// grant: the declared policy is satisfied in full or the request is denied.
func (a *Authorizer) Authorize(tokenString, policyName string) (*service.Claims, error) {
	if tokenString == "" {
		return nil, domain.ErrUnauthenticated
	}

	claims, err := a.verifier.Verify(tokenString)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}

	// A role outside the fixed set can only come from a token this service
	// never issued; even the default policy must not admit it.
	if !domain.KnownRole(claims.Role) {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrUnauthenticated, claims.Role)
	}

	allowed, ok := a.policies[policyName]
	if !ok {
		return nil, fmt.Errorf("authz: unknown policy %q", policyName)
	}
	if allowed == nil {
		return claims, nil
	}
	for _, role := range allowed {
		if claims.Role == role {
			return claims, nil
		}
	}
	return nil, fmt.Errorf("%w: role %q does not satisfy policy %q", domain.ErrForbidden, claims.Role, policyName)
}
