//go:build unit

package user_test

import (
	"testing"

	"store-pickup/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRole(t *testing.T) {
	for _, s := range []string{"customer", "operator", "admin"} {
		role, err := user.NewRole(s)
		require.NoError(t, err)
		assert.Equal(t, s, role.String())
	}

	_, err := user.NewRole("viewer")
	assert.ErrorIs(t, err, user.ErrInvalidRole)
}

func TestActor(t *testing.T) {
	storeID := uuid.New()
	otherStore := uuid.New()

	t.Run("operator requires store", func(t *testing.T) {
		_, err := user.NewActor(uuid.New(), user.RoleOperator, nil)
		assert.ErrorIs(t, err, user.ErrOperatorWithoutStore)
	})

	t.Run("store permissions", func(t *testing.T) {
		operator, err := user.NewActor(uuid.New(), user.RoleOperator, &storeID)
		require.NoError(t, err)
		admin, err := user.NewActor(uuid.New(), user.RoleAdmin, nil)
		require.NoError(t, err)
		customer, err := user.NewActor(uuid.New(), user.RoleCustomer, nil)
		require.NoError(t, err)

		assert.True(t, operator.CanOperateStore(storeID))
		assert.False(t, operator.CanOperateStore(otherStore))
		assert.True(t, admin.CanOperateStore(otherStore))
		assert.False(t, customer.CanOperateStore(storeID))
		assert.True(t, operator.IsStaff())
		assert.False(t, customer.IsStaff())
	})
}
