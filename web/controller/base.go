// Package controller provides the HTTP handlers of the bookshelf server. Each
// controller registers its routes on a gin router group and answers with the
// entity.Msg JSON envelope.
package controller

import (
	"github.com/raimis707/bookshelf/web/auth"
	"github.com/raimis707/bookshelf/web/locale"
	"github.com/raimis707/bookshelf/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides helpers shared by all controllers.
type BaseController struct{}

// principal returns the principal resolved for this request.
func (a *BaseController) principal(c *gin.Context) *auth.Principal {
	return session.GetPrincipal(c)
}

// I18nWeb retrieves a message in the language negotiated for the request.
func I18nWeb(c *gin.Context, name string, params ...string) string {
	return locale.Localize(c, name, params...)
}
