package controller

import (
	"github.com/raimis707/bookshelf/web/auth"
	"github.com/raimis707/bookshelf/web/entity"
	"github.com/raimis707/bookshelf/web/middleware"
	"github.com/raimis707/bookshelf/web/service"
	"github.com/raimis707/bookshelf/web/session"

	"github.com/gin-gonic/gin"
)

// AccountController lets a signed-in user edit their own account.
type AccountController struct {
	BaseController

	userService service.UserService
}

func NewAccountController(g *gin.RouterGroup) *AccountController {
	a := &AccountController{}
	a.initRouter(g)
	return a
}

func (a *AccountController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/update_account_information", middleware.LoginRequired())

	g.GET("", a.accountForm)
	g.POST("", a.updateAccount)
}

func (a *AccountController) accountForm(c *gin.Context) {
	user, err := a.userService.GetUser(a.principal(c).Id)
	if err != nil {
		handleError(c, err)
		return
	}
	jsonObj(c, entity.UpdateAccountForm{
		EmailAddress: user.EmailAddress,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
	}, nil)
}

func (a *AccountController) updateAccount(c *gin.Context) {
	var form entity.UpdateAccountForm
	if err := c.ShouldBind(&form); err != nil {
		formError(c, "", "pages.forms.invalid")
		return
	}
	user, err := a.userService.UpdateAccount(a.principal(c).Id, form)
	if err != nil {
		handleError(c, err)
		return
	}
	session.SetPrincipal(c, auth.FromUser(user))
	respondRedirect(c, "/update_account_information", I18nWeb(c, "pages.account.updated"))
}
