package locale

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestI18n(t *testing.T) {
	require.NoError(t, InitLocalizer())

	en := i18n.NewLocalizer(i18nBundle, "en-US")
	assert.Equal(t, "Welcome, Ada", I18n(en, "pages.signIn.welcome", "Name==Ada"))
	assert.Equal(t, "Goodbye, see you next time", I18n(en, "pages.signOut.goodbye"))

	lt := i18n.NewLocalizer(i18nBundle, "lt-LT")
	assert.Equal(t, "Sveiki, Ada", I18n(lt, "pages.signIn.welcome", "Name==Ada"))

	assert.Equal(t, "pages.missing", I18n(en, "pages.missing"))
	assert.Equal(t, "pages.signOut.goodbye", I18n(nil, "pages.signOut.goodbye"))
}

func TestLocalizerMiddlewarePrefersCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(LocalizerMiddleware())
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, Localize(c, "pages.signOut.goodbye"))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en-US")
	req.AddCookie(&http.Cookie{Name: "lang", Value: "lt-LT"})
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, "Viso gero, iki kito karto", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "fr-FR")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, "Goodbye, see you next time", w.Body.String())
}
