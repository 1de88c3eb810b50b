package routes

import (
	"github.com/gin-gonic/gin"

	issuehandlers "issuedesk/internal/interfaces/http/handlers/issue"
	"issuedesk/internal/interfaces/http/middleware"
)

type PublicRouteConfig struct {
	PublicIssueHandler *issuehandlers.PublicIssueHandler
	AttachmentHandler  *issuehandlers.AttachmentHandler
	RateLimiter        *middleware.RateLimiter
}

// SetupPublicRoutes registers the unauthenticated customer endpoints. Each
// one is rate limited per client IP.
func SetupPublicRoutes(engine *gin.Engine, config *PublicRouteConfig) {
	public := engine.Group("/public")
	public.Use(config.RateLimiter.Limit("public"))
	{
		public.POST("/issues", config.PublicIssueHandler.SubmitIssue)
		public.POST("/attachments", config.AttachmentHandler.RegisterAttachment)

		public.POST("/issues/:code/comments", config.PublicIssueHandler.AddReply)
		public.GET("/issues/:code", config.PublicIssueHandler.GetByTrackingCode)
	}
}
