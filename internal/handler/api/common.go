package api

import (
	"net/http"

	"academy-booking/internal/handler/httperr"
	"academy-booking/internal/handler/middleware"
	"academy-booking/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// actorOrAbort returns the authenticated caller, aborting with 401 when the
// route was mounted without RequireAuth.
func actorOrAbort(c *gin.Context) (shared.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, shared.ErrPermissionDenied, "Unauthorized", nil)
		return shared.Actor{}, false
	}
	return actor, true
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}

func abortInternal(c *gin.Context, err error) {
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
}
