// Package session binds the login session to the gin request: the session
// cookie carries the user id, and the resolved principal is kept on the
// request context for the handlers.
package session

import (
	"github.com/raimis707/bookshelf/database/model"
	"github.com/raimis707/bookshelf/web/auth"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	// CookieName is the name of the session cookie.
	CookieName = "bookshelf"

	loginUser    = "LOGIN_USER"
	principalKey = "principal"
)

var cookieOptions = sessions.Options{
	Path:     "/",
	HttpOnly: true,
}

// SetCookieOptions records the options the session store was configured
// with. SetLoginUser and ClearSession start from them.
func SetCookieOptions(opts sessions.Options) {
	cookieOptions = opts
}

func optionsWithMaxAge(maxAge int) sessions.Options {
	opts := cookieOptions
	opts.MaxAge = maxAge
	return opts
}

// SetLoginUser binds a new session, valid for maxAge seconds, to the user's
// identity. The session the request arrived with is dropped first, so its
// token never authenticates.
func SetLoginUser(c *gin.Context, user *model.User, maxAge int) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(optionsWithMaxAge(-1))
	if err := s.Save(); err != nil {
		return err
	}
	s.Options(optionsWithMaxAge(maxAge))
	s.Set(loginUser, user.Id)
	if err := s.Save(); err != nil {
		return err
	}
	SetPrincipal(c, auth.FromUser(user))
	return nil
}

// GetLoginUserId returns the user id bound to the session, or 0.
func GetLoginUserId(c *gin.Context) int {
	s := sessions.Default(c)
	if obj := s.Get(loginUser); obj != nil {
		if id, ok := obj.(int); ok {
			return id
		}
	}
	return 0
}

// ClearSession drops the session server-side and expires the cookie.
func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(optionsWithMaxAge(-1))
	SetPrincipal(c, auth.Anonymous())
	return s.Save()
}

// SetPrincipal stores the resolved principal for the rest of the request.
func SetPrincipal(c *gin.Context, p *auth.Principal) {
	c.Set(principalKey, p)
}

// GetPrincipal returns the request principal, or the anonymous placeholder
// when none was resolved. It never returns nil.
func GetPrincipal(c *gin.Context) *auth.Principal {
	if obj, ok := c.Get(principalKey); ok {
		if p, ok := obj.(*auth.Principal); ok && p != nil {
			return p
		}
	}
	return auth.Anonymous()
}

func IsLogin(c *gin.Context) bool {
	return GetPrincipal(c).IsAuthenticated()
}
