package controller

import (
	"strconv"

	"github.com/raimis707/bookshelf/logger"
	"github.com/raimis707/bookshelf/web/service"

	"github.com/gin-gonic/gin"
)

// AdminController serves the administrator views. Its group is expected to
// be guarded by middleware.AdminRequired.
type AdminController struct {
	BaseController

	userAdminService service.UserAdminService
	bookService      service.BookService
	auditService     service.AuditLogService
}

func NewAdminController(g *gin.RouterGroup) *AdminController {
	a := &AdminController{}
	a.initRouter(g)
	return a
}

func (a *AdminController) initRouter(g *gin.RouterGroup) {
	g.GET("/users", a.listUsers)
	g.POST("/users/:id/admin", a.setAdmin)
	g.GET("/books", a.listBooks)
	g.GET("/authors", a.listAuthors)
	g.POST("/authors", a.addAuthor)
	g.GET("/history", a.history)
	g.GET("/logs", a.logs)
}

func (a *AdminController) listUsers(c *gin.Context) {
	users, err := a.userAdminService.ListUsers()
	if err != nil {
		handleError(c, err)
		return
	}
	jsonObj(c, users, nil)
}

type setAdminForm struct {
	IsAdmin bool `json:"isAdmin" form:"isAdmin"`
}

func (a *AdminController) setAdmin(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		handleError(c, service.ErrNotFound)
		return
	}
	var form setAdminForm
	if err := c.ShouldBind(&form); err != nil {
		formError(c, "isAdmin", "pages.forms.invalid")
		return
	}
	user, err := a.userAdminService.SetAdmin(a.principal(c).Id, id, form.IsAdmin)
	if err != nil {
		handleError(c, err)
		return
	}
	logger.Infof("%s set admin=%v on user %d", a.principal(c).EmailAddress, form.IsAdmin, id)
	jsonMsgObj(c, I18nWeb(c, "pages.admin.userUpdated"), user, nil)
}

func (a *AdminController) listBooks(c *gin.Context) {
	books, err := a.bookService.ListAvailable()
	if err != nil {
		handleError(c, err)
		return
	}
	jsonObj(c, books, nil)
}

func (a *AdminController) listAuthors(c *gin.Context) {
	authors, err := a.bookService.ListAuthors()
	if err != nil {
		handleError(c, err)
		return
	}
	jsonObj(c, authors, nil)
}

type addAuthorForm struct {
	Name string `json:"name" form:"name"`
}

func (a *AdminController) addAuthor(c *gin.Context) {
	var form addAuthorForm
	if err := c.ShouldBind(&form); err != nil {
		formError(c, "name", "pages.forms.invalid")
		return
	}
	author, err := a.bookService.AddAuthor(form.Name, a.principal(c).Id)
	if err != nil {
		handleError(c, err)
		return
	}
	jsonMsgObj(c, I18nWeb(c, "pages.admin.authorAdded"), author, nil)
}

// history lists audit entries newest first. With book_id it returns the
// lending history of that book instead, oldest first.
func (a *AdminController) history(c *gin.Context) {
	if bookId, err := strconv.Atoi(c.Query("book_id")); err == nil && bookId > 0 {
		logs, err := a.auditService.LendingHistory(bookId)
		if err != nil {
			handleError(c, err)
			return
		}
		jsonObj(c, gin.H{"logs": logs, "total": len(logs)}, nil)
		return
	}

	userId, _ := strconv.Atoi(c.Query("user_id"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	if limit <= 0 || limit > 1000 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	logs, total, err := a.auditService.GetAuditLogs(userId, c.Query("action"), c.Query("resource"), limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}
	jsonObj(c, gin.H{
		"logs":  logs,
		"total": total,
	}, nil)
}

// logs returns the most recent server log lines at or above level.
func (a *AdminController) logs(c *gin.Context) {
	count, err := strconv.Atoi(c.DefaultQuery("count", "100"))
	if err != nil || count <= 0 {
		count = 100
	}
	level := c.DefaultQuery("level", "info")
	jsonObj(c, logger.GetLogs(count, level), nil)
}
