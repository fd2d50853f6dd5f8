package middleware

import (
	"errors"

	"github.com/raimis707/bookshelf/logger"
	"github.com/raimis707/bookshelf/web/auth"
	"github.com/raimis707/bookshelf/web/service"
	"github.com/raimis707/bookshelf/web/session"

	"github.com/gin-gonic/gin"
)

// ResolvePrincipal loads the user bound to the session once per request and
// stores the principal on the context. Requests without a valid session get
// the anonymous principal; a session pointing at a deleted user is cleared.
func ResolvePrincipal() gin.HandlerFunc {
	userService := service.UserService{}

	return func(c *gin.Context) {
		id := session.GetLoginUserId(c)
		if id == 0 {
			session.SetPrincipal(c, auth.Anonymous())
			c.Next()
			return
		}

		user, err := userService.GetUser(id)
		if err != nil {
			if !errors.Is(err, service.ErrNotFound) {
				logger.Warning("resolve principal failed:", err)
			} else if err := session.ClearSession(c); err != nil {
				logger.Warning("clear stale session failed:", err)
			}
			session.SetPrincipal(c, auth.Anonymous())
			c.Next()
			return
		}

		session.SetPrincipal(c, auth.FromUser(user))
		c.Next()
	}
}
