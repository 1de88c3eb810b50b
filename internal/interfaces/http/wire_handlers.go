package http

import (
	healthHandlers "issuedesk/internal/interfaces/http/handlers/health"
	issueHandlers "issuedesk/internal/interfaces/http/handlers/issue"
	settingHandlers "issuedesk/internal/interfaces/http/handlers/setting"
)

const serviceName = "issuedesk"

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	healthHandler      *healthHandlers.HealthHandler
	issueHandler       *issueHandlers.IssueHandler
	publicIssueHandler *issueHandlers.PublicIssueHandler
	attachmentHandler  *issueHandlers.AttachmentHandler
	settingHandler     *settingHandlers.SettingHandler
}

func (c *Container) newHandlers() *allHandlers {
	ucs := c.ucs

	var cache healthHandlers.Pinger
	if c.redis != nil {
		cache = redisPinger{c.redis}
	}

	issueHandler := issueHandlers.NewIssueHandler(
		ucs.createIssueUC,
		ucs.updateIssueUC,
		ucs.updateStatusUC,
		ucs.deleteIssueUC,
		ucs.getIssueUC,
		ucs.listIssuesUC,
		ucs.addCommentUC,
		ucs.editCommentUC,
		ucs.mergeIssuesUC,
		ucs.unmergeIssueUC,
		c.log,
	)

	return &allHandlers{
		healthHandler:      healthHandlers.NewHealthHandler(c.sqlDB, cache, serviceName),
		issueHandler:       issueHandler,
		publicIssueHandler: issueHandlers.NewPublicIssueHandler(ucs.createIssueUC, ucs.getIssueUC, ucs.addCommentUC, c.log),
		attachmentHandler:  issueHandlers.NewAttachmentHandler(ucs.registerAttachmentUC, c.log),
		settingHandler:     settingHandlers.NewSettingHandler(ucs.getSLASettingsUC, ucs.updateSLASettingsUC, c.log),
	}
}
