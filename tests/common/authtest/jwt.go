//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"store-pickup/internal/domain/user"
	"store-pickup/internal/pkg/config"
	"store-pickup/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, actor user.Actor) string {
	t.Helper()
	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	token, err := jwt.NewService(h.cfg.Secret, duration).GenerateToken(actor)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CustomerToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	actor, err := user.NewActor(userID, user.RoleCustomer, nil)
	require.NoError(t, err)
	return h.GenerateToken(t, actor)
}

func (h *JWTHelper) OperatorToken(t *testing.T, userID, storeID uuid.UUID) string {
	t.Helper()
	actor, err := user.NewActor(userID, user.RoleOperator, &storeID)
	require.NoError(t, err)
	return h.GenerateToken(t, actor)
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	actor, err := user.NewActor(userID, user.RoleCustomer, nil)
	require.NoError(t, err)
	token, err := jwt.NewService(h.cfg.Secret, time.Millisecond).GenerateToken(actor)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}
