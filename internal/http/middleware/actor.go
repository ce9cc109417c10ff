package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Nihar360/admin/internal/shared/apperr"
)

const (
	// HeaderAdminID carries the authenticated administrator id, set by the
	// auth gateway in front of this service. The core never authenticates,
	// it only records the actor it is given.
	HeaderAdminID = "X-Admin-ID"
	CtxKeyActorID = "actor_id"
)

func AdminActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(HeaderAdminID)
		if raw == "" {
			Fail(c, apperr.UnauthorizedErr("Authentication required."))
			return
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			Fail(c, apperr.UnauthorizedErr("Invalid administrator identity."))
			return
		}

		c.Set(CtxKeyActorID, id)
		c.Next()
	}
}

func ActorID(c *gin.Context) (int64, bool) {
	if v, ok := c.Get(CtxKeyActorID); ok {
		if id, ok := v.(int64); ok {
			return id, true
		}
	}
	return 0, false
}
