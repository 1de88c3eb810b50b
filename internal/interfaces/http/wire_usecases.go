package http

import (
	issueUsecases "issuedesk/internal/application/issue/usecases"
	settingUsecases "issuedesk/internal/application/setting/usecases"
	"issuedesk/internal/domain/issue"
	"issuedesk/internal/shared/db"
	"issuedesk/internal/shared/services/markdown"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Issue lifecycle
	createIssueUC  *issueUsecases.CreateIssueUseCase
	updateIssueUC  *issueUsecases.UpdateIssueUseCase
	updateStatusUC *issueUsecases.UpdateStatusUseCase
	deleteIssueUC  *issueUsecases.DeleteIssueUseCase
	getIssueUC     *issueUsecases.GetIssueUseCase
	listIssuesUC   *issueUsecases.ListIssuesUseCase

	// Timeline
	addCommentUC         *issueUsecases.AddCommentUseCase
	editCommentUC        *issueUsecases.EditCommentUseCase
	registerAttachmentUC *issueUsecases.RegisterAttachmentUseCase

	// Consolidation
	mergeIssuesUC  *issueUsecases.MergeIssuesUseCase
	unmergeIssueUC *issueUsecases.UnmergeIssueUseCase

	// Settings
	slaProvider         *settingUsecases.SLASettingProvider
	getSLASettingsUC    *settingUsecases.GetSLASettingsUseCase
	updateSLASettingsUC *settingUsecases.UpdateSLASettingsUseCase
}

func (c *Container) newUseCases() *allUseCases {
	repos := c.repos
	txMgr := db.NewTransactionManager(c.db)
	renderer := markdown.NewRenderer()
	slaProvider := settingUsecases.NewSLASettingProvider(repos.settingRepo, c.cfg.SLA, c.log)

	return &allUseCases{
		createIssueUC:  issueUsecases.NewCreateIssueUseCase(repos.issueRepo, repos.attachmentRepo, issue.NewTrackingCodeGenerator(), slaProvider, txMgr, c.log),
		updateIssueUC:  issueUsecases.NewUpdateIssueUseCase(repos.issueRepo, repos.commentRepo, c.enforcer, txMgr, c.log),
		updateStatusUC: issueUsecases.NewUpdateStatusUseCase(repos.issueRepo, repos.commentRepo, txMgr, c.log),
		deleteIssueUC:  issueUsecases.NewDeleteIssueUseCase(repos.issueRepo, repos.commentRepo, repos.attachmentRepo, txMgr, c.log),
		getIssueUC:     issueUsecases.NewGetIssueUseCase(repos.issueRepo, repos.commentRepo, repos.attachmentRepo, renderer, c.log),
		listIssuesUC:   issueUsecases.NewListIssuesUseCase(repos.issueRepo, slaProvider, c.log),

		addCommentUC:         issueUsecases.NewAddCommentUseCase(repos.issueRepo, repos.commentRepo, repos.attachmentRepo, txMgr, c.log),
		editCommentUC:        issueUsecases.NewEditCommentUseCase(repos.issueRepo, repos.commentRepo, renderer, c.log),
		registerAttachmentUC: issueUsecases.NewRegisterAttachmentUseCase(repos.attachmentRepo, c.log),

		mergeIssuesUC:  issueUsecases.NewMergeIssuesUseCase(repos.issueRepo, repos.commentRepo, txMgr, c.log),
		unmergeIssueUC: issueUsecases.NewUnmergeIssueUseCase(repos.issueRepo, repos.commentRepo, txMgr, c.log),

		slaProvider:         slaProvider,
		getSLASettingsUC:    settingUsecases.NewGetSLASettingsUseCase(slaProvider),
		updateSLASettingsUC: settingUsecases.NewUpdateSLASettingsUseCase(repos.settingRepo, slaProvider, c.log),
	}
}
