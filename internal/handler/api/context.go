package api

import (
	"errors"
	"net/http"
	"strconv"

	"store-pickup/internal/domain/user"
	"store-pickup/internal/handler/httperr"
	"store-pickup/internal/handler/middleware"
	"store-pickup/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// only reachable when a route is registered without RequireAuth
var errNoActor = errors.New("authenticated actor missing from request context")

func requireActor(c *gin.Context) (user.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoActor, "Unauthorized", nil)
		return user.Actor{}, false
	}
	return actor, true
}

func requireUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoActor, "Unauthorized", nil)
		return uuid.Nil, false
	}
	return userID, true
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}

type listParams struct {
	filter queries.OrderFilter
	cursor *queries.Cursor
	limit  int
}

// parseListParams reads ?status=, ?after= and ?limit=.
func parseListParams(c *gin.Context) (listParams, bool) {
	filter, err := queries.ParseOrderFilter(c.Query("status"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid status filter", nil)
		return listParams{}, false
	}

	p := listParams{filter: filter}
	if after := c.Query("after"); after != "" {
		p.cursor = &queries.Cursor{After: after}
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			if err == nil {
				err = errors.New("limit must be positive")
			}
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid limit", nil)
			return listParams{}, false
		}
		p.limit = limit
	}
	return p, true
}
