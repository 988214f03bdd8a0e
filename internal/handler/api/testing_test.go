//go:build unit

package api_test

import (
	"academy-booking/internal/handler/middleware"
	"academy-booking/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

// actAs stands in for RequireAuth: it places *actor on the context when set.
func actAs(actor *shared.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		if actor != nil {
			middleware.SetActor(c, *actor)
		}
		c.Next()
	}
}
