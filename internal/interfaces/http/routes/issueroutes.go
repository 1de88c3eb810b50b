package routes

import (
	"github.com/gin-gonic/gin"

	"issuedesk/internal/infrastructure/permission"
	issuehandlers "issuedesk/internal/interfaces/http/handlers/issue"
	"issuedesk/internal/interfaces/http/middleware"
)

type IssueRouteConfig struct {
	IssueHandler         *issuehandlers.IssueHandler
	AttachmentHandler    *issuehandlers.AttachmentHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupIssueRoutes(engine *gin.Engine, config *IssueRouteConfig) {
	can := config.PermissionMiddleware.RequirePermission

	issues := engine.Group("/issues")
	issues.Use(config.AuthMiddleware.RequireAuth())
	{
		// IMPORTANT: Register specific paths BEFORE parameterized paths to avoid route conflicts

		issues.POST("",
			can(permission.ResourceIssue, permission.ActionCreate),
			config.IssueHandler.CreateIssue)
		issues.GET("",
			can(permission.ResourceIssue, permission.ActionRead),
			config.IssueHandler.ListIssues)

		issues.PATCH("/:id/status",
			can(permission.ResourceIssue, permission.ActionStatus),
			config.IssueHandler.UpdateStatus)
		issues.POST("/:id/comments",
			can(permission.ResourceIssue, permission.ActionComment),
			config.IssueHandler.AddComment)
		issues.PATCH("/:id/comments/:commentId",
			can(permission.ResourceIssue, permission.ActionComment),
			config.IssueHandler.EditComment)
		issues.POST("/:id/merge",
			can(permission.ResourceIssue, permission.ActionMerge),
			config.IssueHandler.MergeIssues)
		issues.POST("/:id/unmerge",
			can(permission.ResourceIssue, permission.ActionMerge),
			config.IssueHandler.UnmergeIssue)

		issues.GET("/:id",
			can(permission.ResourceIssue, permission.ActionRead),
			config.IssueHandler.GetIssue)
		// field level checks happen inside the use case
		issues.PATCH("/:id",
			can(permission.ResourceIssue, permission.ActionUpdate),
			config.IssueHandler.UpdateIssue)
		issues.DELETE("/:id",
			can(permission.ResourceIssue, permission.ActionDelete),
			config.IssueHandler.DeleteIssue)
	}

	engine.POST("/attachments",
		config.AuthMiddleware.RequireAuth(),
		can(permission.ResourceIssue, permission.ActionCreate),
		config.AttachmentHandler.RegisterAttachment)
}
