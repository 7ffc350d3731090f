package usecase

import (
	"strings"

	"storefront-core/internal/pkg/jwt"
)

// Identity is the authenticated caller. Email is the owner key of their own cart.
type Identity struct {
	Email string
	Role  string
	Admin bool
}

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (Identity, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
	adminRole  string
}

func NewTokenValidator(jwtService *jwt.Service, adminRole string) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
		adminRole:  adminRole,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (Identity, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return Identity{}, err
	}

	return Identity{
		Email: claims.Email,
		Role:  claims.Role,
		Admin: t.adminRole != "" && strings.EqualFold(claims.Role, t.adminRole),
	}, nil
}
