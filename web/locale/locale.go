// Package locale translates user-facing messages with go-i18n. Translations
// are TOML files embedded from the translation directory.
package locale

import (
	"embed"
	"io/fs"
	"strings"

	"github.com/raimis707/bookshelf/logger"

	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

//go:embed translation/*
var i18nFS embed.FS

const localizerKey = "localizer"

var i18nBundle *i18n.Bundle

// InitLocalizer parses the embedded translations. It is safe to call again;
// the bundle is rebuilt each time.
func InitLocalizer() error {
	bundle := i18n.NewBundle(language.MustParse("en-US"))
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	if err := parseTranslationFiles(i18nFS, bundle); err != nil {
		return err
	}
	i18nBundle = bundle
	return nil
}

func createTemplateData(params []string, seperator ...string) map[string]any {
	var sep string = "=="
	if len(seperator) > 0 {
		sep = seperator[0]
	}

	templateData := make(map[string]any)
	for _, param := range params {
		parts := strings.SplitN(param, sep, 2)
		if len(parts) != 2 {
			continue
		}
		templateData[parts[0]] = parts[1]
	}

	return templateData
}

// I18n localizes key with the given "name==value" parameters. A nil
// localizer or an unknown key yields the key itself.
func I18n(localizer *i18n.Localizer, key string, params ...string) string {
	if localizer == nil {
		return key
	}
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: createTemplateData(params),
	})
	if err != nil {
		logger.Warningf("Failed to localize message %q: %v", key, err)
		return key
	}
	return msg
}

// LocalizerMiddleware picks the request language from the "lang" cookie or
// the Accept-Language header.
func LocalizerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if i18nBundle == nil {
			if err := InitLocalizer(); err != nil {
				logger.Warning("i18n init failed:", err)
			}
		}
		var lang string
		if cookie, err := c.Request.Cookie("lang"); err == nil {
			lang = cookie.Value
		} else {
			lang = c.GetHeader("Accept-Language")
		}

		if i18nBundle != nil {
			c.Set(localizerKey, i18n.NewLocalizer(i18nBundle, lang))
		}
		c.Next()
	}
}

// Localize translates key for the language chosen for this request.
func Localize(c *gin.Context, key string, params ...string) string {
	var localizer *i18n.Localizer
	if obj, ok := c.Get(localizerKey); ok {
		localizer, _ = obj.(*i18n.Localizer)
	}
	return I18n(localizer, key, params...)
}

func parseTranslationFiles(i18nFS embed.FS, bundle *i18n.Bundle) error {
	return fs.WalkDir(i18nFS, "translation",
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			data, err := i18nFS.ReadFile(path)
			if err != nil {
				return err
			}
			_, err = bundle.ParseMessageFileBytes(data, path)
			return err
		})
}
