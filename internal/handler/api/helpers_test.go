//go:build unit

package api_test

import (
	"net/http"

	"store-pickup/internal/domain/user"
	"store-pickup/internal/handler/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const bearer = "bearer-token"

// fakeAuth stands in for RequireAuth: any Authorization header authenticates as actor.
func fakeAuth(actor *user.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		middleware.SetActor(c, *actor)
		c.Next()
	}
}

func customer() user.Actor {
	return user.Actor{UserID: uuid.New(), Role: user.RoleCustomer}
}

func operatorOf(storeID uuid.UUID) user.Actor {
	return user.Actor{UserID: uuid.New(), Role: user.RoleOperator, StoreID: &storeID}
}
