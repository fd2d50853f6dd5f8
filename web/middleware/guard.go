package middleware

import (
	"net/http"
	"net/url"

	"github.com/raimis707/bookshelf/web/auth"
	"github.com/raimis707/bookshelf/web/entity"
	"github.com/raimis707/bookshelf/web/locale"
	"github.com/raimis707/bookshelf/web/session"

	"github.com/gin-gonic/gin"
)

// LoginRequired lets only signed-in principals through. Page requests are
// sent to the sign-in form with the requested URI kept in "next"; XHR
// requests get 401.
func LoginRequired() gin.HandlerFunc {
	return Require(auth.RequireLogin)
}

// AdminRequired lets only administrators through. Everyone else gets 403,
// never a redirect.
func AdminRequired() gin.HandlerFunc {
	return Require(auth.RequireAdmin)
}

func Require(r auth.Requirement) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := auth.Check(session.GetPrincipal(c), r)
		switch err {
		case nil:
			c.Next()
		case auth.ErrNotAuthenticated:
			if isAjax(c) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, entity.Msg{
					Msg: locale.Localize(c, "pages.signIn.loginAgain"),
				})
				return
			}
			target := c.GetString("base_path") + "sign_in?next=" + url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusTemporaryRedirect, target)
			c.Abort()
		default:
			c.AbortWithStatusJSON(http.StatusForbidden, entity.Msg{
				Msg: locale.Localize(c, "pages.admin.forbidden"),
			})
		}
	}
}

func isAjax(c *gin.Context) bool {
	return c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}
