package controller

import (
	"github.com/raimis707/bookshelf/logger"
	"github.com/raimis707/bookshelf/web/entity"
	"github.com/raimis707/bookshelf/web/service"

	"github.com/gin-gonic/gin"
)

// SettingController reads and updates the runtime settings.
type SettingController struct {
	BaseController

	settingService service.SettingService
}

// NewSettingController creates a new SettingController and initializes its routes.
func NewSettingController(g *gin.RouterGroup) *SettingController {
	a := &SettingController{}
	a.initRouter(g)
	return a
}

func (a *SettingController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/settings")

	g.GET("", a.getAllSetting)
	g.POST("", a.updateSetting)
}

func (a *SettingController) getAllSetting(c *gin.Context) {
	allSetting, err := a.settingService.GetAllSetting()
	if err != nil {
		jsonMsg(c, I18nWeb(c, "fail"), err)
		return
	}
	jsonObj(c, allSetting, nil)
}

// updateSetting stores all settings at once. Changes to the listen address,
// port, certificates and base path take effect after a restart.
func (a *SettingController) updateSetting(c *gin.Context) {
	allSetting := &entity.AllSetting{}
	err := c.ShouldBind(allSetting)
	if err != nil {
		jsonMsg(c, I18nWeb(c, "pages.forms.invalid"), err)
		return
	}
	err = a.settingService.UpdateAllSetting(allSetting)
	if err == nil {
		logger.Infof("settings updated by %s", a.principal(c).EmailAddress)
	}
	jsonMsg(c, I18nWeb(c, "pages.admin.settingsSaved"), err)
}
