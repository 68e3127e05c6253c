package user

import (
	"errors"

	"github.com/google/uuid"
)

var ErrOperatorWithoutStore = errors.New("operator must be assigned to a store")

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID  uuid.UUID
	Role    Role
	StoreID *uuid.UUID
}

func NewActor(userID uuid.UUID, role Role, storeID *uuid.UUID) (Actor, error) {
	if !role.IsValid() {
		return Actor{}, ErrInvalidRole
	}
	if role == RoleOperator && storeID == nil {
		return Actor{}, ErrOperatorWithoutStore
	}
	return Actor{UserID: userID, Role: role, StoreID: storeID}, nil
}

func (a Actor) IsStaff() bool {
	return a.Role == RoleOperator || a.Role == RoleAdmin
}

// CanOperateStore reports whether the actor may fulfil orders of storeID.
func (a Actor) CanOperateStore(storeID uuid.UUID) bool {
	switch a.Role {
	case RoleAdmin:
		return true
	case RoleOperator:
		return a.StoreID != nil && *a.StoreID == storeID
	default:
		return false
	}
}
