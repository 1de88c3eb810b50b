package routes

import (
	"github.com/gin-gonic/gin"

	"issuedesk/internal/infrastructure/permission"
	settinghandlers "issuedesk/internal/interfaces/http/handlers/setting"
	"issuedesk/internal/interfaces/http/middleware"
)

// SettingRouteConfig holds the configuration for setting routes
type SettingRouteConfig struct {
	Handler              *settinghandlers.SettingHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupSettingRoutes configures system setting admin routes
func SetupSettingRoutes(engine *gin.Engine, config *SettingRouteConfig) {
	settings := engine.Group("/settings")
	settings.Use(config.AuthMiddleware.RequireAuth())
	{
		settings.GET("/sla",
			config.PermissionMiddleware.RequirePermission(permission.ResourceSetting, permission.ActionRead),
			config.Handler.GetSLASettings)
		settings.PUT("/sla",
			config.PermissionMiddleware.RequirePermission(permission.ResourceSetting, permission.ActionWrite),
			config.Handler.UpdateSLASettings)
	}
}
