package controller

import (
	"net/http"

	"github.com/raimis707/bookshelf/database/model"
	"github.com/raimis707/bookshelf/logger"
	"github.com/raimis707/bookshelf/web/auth"
	"github.com/raimis707/bookshelf/web/entity"
	"github.com/raimis707/bookshelf/web/service"
	"github.com/raimis707/bookshelf/web/session"

	"github.com/gin-gonic/gin"
)

// IndexController handles the home page, registration and sign-in routes.
type IndexController struct {
	BaseController

	settingService service.SettingService
	userService    service.UserService
	auditService   service.AuditLogService
}

// NewIndexController creates a new IndexController and initializes its routes.
func NewIndexController(g *gin.RouterGroup) *IndexController {
	a := &IndexController{}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.GET("/sign_up", a.signUpForm)
	g.POST("/sign_up", a.signUp)
	g.GET("/sign_in", a.signInForm)
	g.POST("/sign_in", a.signIn)
	g.GET("/sign_out", a.signOut)
}

func (a *IndexController) home(c *gin.Context, p *auth.Principal) gin.H {
	greeting := I18nWeb(c, "pages.home.anonymous")
	if p.IsAuthenticated() {
		greeting = I18nWeb(c, "pages.home.greeting", "Name=="+p.FirstName)
	}
	return getContext(gin.H{
		"principal": p,
		"greeting":  greeting,
	})
}

func (a *IndexController) index(c *gin.Context) {
	jsonObj(c, a.home(c, a.principal(c)), nil)
}

func (a *IndexController) signUpForm(c *gin.Context) {
	jsonObj(c, entity.SignUpForm{}, nil)
}

func (a *IndexController) signUp(c *gin.Context) {
	var form entity.SignUpForm
	if err := c.ShouldBind(&form); err != nil {
		formError(c, "", "pages.forms.invalid")
		return
	}

	user, err := a.userService.SignUp(form)
	if err != nil {
		handleError(c, err)
		return
	}
	logger.Infof("%s signed up, Ip Address: %s", user.EmailAddress, getRemoteIp(c))

	if err := a.login(c, user); err != nil {
		handleError(c, err)
		return
	}
	respondRedirect(c, "/", I18nWeb(c, "pages.signIn.welcome", "Name=="+user.FirstName))
}

func (a *IndexController) signInForm(c *gin.Context) {
	jsonObj(c, gin.H{
		"form": entity.SignInForm{},
		"next": localPath(c.Query("next")),
	}, nil)
}

func (a *IndexController) signIn(c *gin.Context) {
	var form entity.SignInForm
	if err := c.ShouldBind(&form); err != nil {
		formError(c, "", "pages.forms.invalid")
		return
	}
	if form.EmailAddress == "" {
		formError(c, "email_address", "pages.signIn.emptyEmail")
		return
	}
	if form.Password == "" {
		formError(c, "password", "pages.signIn.emptyPassword")
		return
	}

	user := a.userService.CheckUser(form.EmailAddress, form.Password)
	if user == nil {
		logger.Warningf("wrong email or password: \"%s\", IP: \"%s\"", form.EmailAddress, getRemoteIp(c))
		formError(c, "", "pages.signIn.wrongCredentials")
		return
	}

	if err := a.login(c, user); err != nil {
		handleError(c, err)
		return
	}
	if err := a.auditService.LogAction(service.AuditEntry{
		UserID:     user.Id,
		Username:   user.EmailAddress,
		Action:     service.ActionSignIn,
		Resource:   service.ResourceUser,
		ResourceID: user.Id,
		IP:         getRemoteIp(c),
		UserAgent:  c.GetHeader("User-Agent"),
	}); err != nil {
		logger.Warning("Unable to record sign in:", err)
	}
	logger.Infof("%s signed in successfully, Ip Address: %s", user.EmailAddress, getRemoteIp(c))

	welcome := I18nWeb(c, "pages.signIn.welcome", "Name=="+user.FirstName)
	next := localPath(c.Query("next"))
	if next == "" {
		next = localPath(c.PostForm("next"))
	}
	if next != "" {
		redirectTo(c, next, welcome)
		return
	}
	respondRedirect(c, "/", welcome)
}

// login binds the session to user for the configured lifetime.
func (a *IndexController) login(c *gin.Context, user *model.User) error {
	sessionMaxAge, err := a.settingService.GetSessionMaxAge()
	if err != nil || sessionMaxAge <= 0 {
		logger.Warning("Unable to get session's max age from DB")
		sessionMaxAge = 60
	}
	return session.SetLoginUser(c, user, sessionMaxAge*60)
}

func (a *IndexController) signOut(c *gin.Context) {
	p := a.principal(c)
	if p.IsAuthenticated() {
		if err := a.auditService.LogAction(service.AuditEntry{
			UserID:     p.Id,
			Username:   p.EmailAddress,
			Action:     service.ActionSignOut,
			Resource:   service.ResourceUser,
			ResourceID: p.Id,
			IP:         getRemoteIp(c),
			UserAgent:  c.GetHeader("User-Agent"),
		}); err != nil {
			logger.Warning("Unable to record sign out:", err)
		}
		logger.Infof("%s signed out", p.EmailAddress)
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("Unable to save session after clearing:", err)
	}
	c.JSON(http.StatusOK, entity.Msg{
		Success: true,
		Msg:     I18nWeb(c, "pages.signOut.goodbye"),
		Obj:     a.home(c, auth.Anonymous()),
	})
}
