//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"storefront-core/internal/pkg/config"
	"storefront-core/internal/pkg/jwt"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// JWTHelper signs tokens the way the identity backend does.
type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, email, role string) string {
	t.Helper()
	return h.sign(t, email, role, time.Now().Add(time.Hour))
}

func (h *JWTHelper) GenerateAdminToken(t *testing.T, email string) string {
	t.Helper()
	return h.sign(t, email, h.cfg.AdminRole, time.Now().Add(time.Hour))
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, email, role string) string {
	t.Helper()
	return h.sign(t, email, role, time.Now().Add(-time.Minute))
}

func (h *JWTHelper) sign(t *testing.T, email, role string, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: gojwt.RegisteredClaims{
			IssuedAt:  gojwt.NewNumericDate(time.Now()),
			ExpiresAt: gojwt.NewNumericDate(expiresAt),
		},
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(h.cfg.Secret))
	require.NoError(t, err)
	return token
}
