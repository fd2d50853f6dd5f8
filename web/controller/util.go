package controller

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/raimis707/bookshelf/config"
	"github.com/raimis707/bookshelf/logger"
	"github.com/raimis707/bookshelf/web/entity"
	"github.com/raimis707/bookshelf/web/service"

	"github.com/gin-gonic/gin"
)

// getRemoteIp extracts the real IP address from the request headers or remote address.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		ips := strings.Split(value, ",")
		return strings.TrimSpace(ips[0])
	}
	addr := c.Request.RemoteAddr
	ip, _, _ := net.SplitHostPort(addr)
	return ip
}

// jsonMsg sends a JSON response with a message and error status.
func jsonMsg(c *gin.Context, msg string, err error) {
	jsonMsgObj(c, msg, nil, err)
}

// jsonObj sends a JSON response with an object and error status.
func jsonObj(c *gin.Context, obj any, err error) {
	jsonMsgObj(c, "", obj, err)
}

// jsonMsgObj sends a JSON response with a message, object, and error status.
func jsonMsgObj(c *gin.Context, msg string, obj any, err error) {
	m := entity.Msg{
		Obj: obj,
	}
	if err == nil {
		m.Success = true
		if msg != "" {
			m.Msg = msg
		}
	} else {
		m.Success = false
		m.Msg = msg + " (" + err.Error() + ")"
		logger.Warning(msg+" "+I18nWeb(c, "fail")+": ", err)
	}
	c.JSON(http.StatusOK, m)
}

// pureJsonMsg sends a pure JSON message response with custom status code.
func pureJsonMsg(c *gin.Context, statusCode int, success bool, msg string) {
	c.JSON(statusCode, entity.Msg{
		Success: success,
		Msg:     msg,
	})
}

// formError answers a rejected form submission with the message and the
// field it belongs to, so the client can show the form again.
func formError(c *gin.Context, field string, key string) {
	c.JSON(http.StatusOK, entity.Msg{
		Success: false,
		Msg:     I18nWeb(c, key),
		Field:   field,
	})
}

// handleError maps a service error onto the response for it.
func handleError(c *gin.Context, err error) {
	if ve, ok := service.IsValidation(err); ok {
		formError(c, ve.Field, ve.Key)
		return
	}
	switch {
	case errors.Is(err, service.ErrNotFound):
		pureJsonMsg(c, http.StatusNotFound, false, I18nWeb(c, "pages.books.notFound"))
	case errors.Is(err, service.ErrConflict):
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "fail"))
	default:
		logger.Warning(c.Request.Method, c.Request.URL.Path, I18nWeb(c, "fail")+":", err)
		pureJsonMsg(c, http.StatusInternalServerError, false, I18nWeb(c, "fail"))
	}
}

// respondRedirect finishes a successful mutation by sending the client to
// path under the base path.
func respondRedirect(c *gin.Context, path string, msg string) {
	redirectTo(c, c.GetString("base_path")+strings.TrimPrefix(path, "/"), msg)
}

// redirectTo sends page requests to target with 303. XHR requests get the
// target in the envelope instead.
func redirectTo(c *gin.Context, target string, msg string) {
	if isAjax(c) {
		c.JSON(http.StatusOK, entity.Msg{
			Success: true,
			Msg:     msg,
			Obj:     gin.H{"redirect": target},
		})
		return
	}
	c.Redirect(http.StatusSeeOther, target)
}

// localPath returns next when it is a path on this server, "" otherwise.
func localPath(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return ""
	}
	return next
}

// idParam parses the named path parameter as a positive id.
func idParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// getContext adds the server version to h.
func getContext(h gin.H) gin.H {
	a := gin.H{
		"cur_ver": config.GetVersion(),
	}
	for key, value := range h {
		a[key] = value
	}
	return a
}

// isAjax checks if the request is an AJAX request.
func isAjax(c *gin.Context) bool {
	return c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}
