package usecases

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"issuedesk/internal/domain/issue"
	vo "issuedesk/internal/domain/issue/valueobjects"
	"issuedesk/internal/domain/setting"
	"issuedesk/internal/infrastructure/persistence/testutil"
	"issuedesk/internal/infrastructure/repository"
	"issuedesk/internal/shared/authorization"
	"issuedesk/internal/shared/db"
	"issuedesk/internal/shared/logger"
	"issuedesk/internal/shared/services/markdown"
)

var (
	adminActor   = issue.NewActor(1, "alice", authorization.RoleAdmin)
	devActor     = issue.NewActor(2, "dmitri", authorization.RoleDeveloper)
	supportActor = issue.NewActor(3, "sam", authorization.RoleSupport)
	userActor    = issue.NewActor(4, "uma", authorization.RoleUser)
	otherUser    = issue.NewActor(5, "olga", authorization.RoleUser)
	guestActor   = issue.Guest("Walk-in Customer")
)

var errStoreDown = errors.New("store unavailable")

type mockSLAProvider struct {
	targetDays  int
	warningDays int
}

func (m *mockSLAProvider) TargetDays(ctx context.Context) setting.ConfigValue {
	return setting.ConfigValue{Value: m.targetDays, Source: setting.SourceConfig}
}

func (m *mockSLAProvider) WarningDays(ctx context.Context) setting.ConfigValue {
	return setting.ConfigValue{Value: m.warningDays, Source: setting.SourceConfig}
}

type mockFieldAuthorizer struct {
	DeniedFieldsFunc func(role authorization.UserRole, fields []string) ([]string, error)
}

func (m *mockFieldAuthorizer) DeniedFields(role authorization.UserRole, fields []string) ([]string, error) {
	if m.DeniedFieldsFunc != nil {
		return m.DeniedFieldsFunc(role, fields)
	}
	return nil, nil
}

type mockTrackingCodeGenerator struct {
	GenerateFunc func(ctx context.Context) (string, error)
	seq          int
}

func (m *mockTrackingCodeGenerator) Generate(ctx context.Context) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx)
	}
	m.seq++
	return fmt.Sprintf("TEST%08d", m.seq), nil
}

type mockIssueRepository struct {
	issue.Repository
	GetByIDFunc func(ctx context.Context, id uint) (*issue.Issue, error)
	ListFunc    func(ctx context.Context, filter issue.Filter) ([]*issue.Issue, int64, error)
}

func (m *mockIssueRepository) GetByID(ctx context.Context, id uint) (*issue.Issue, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, issue.ErrIssueNotFound
}

func (m *mockIssueRepository) List(ctx context.Context, filter issue.Filter) ([]*issue.Issue, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

// failingCommentRepo lets writes reach the store until CreateErr is set.
type failingCommentRepo struct {
	*repository.CommentRepository
	CreateErr error
	creates   int
	failAfter int
}

func (r *failingCommentRepo) Create(ctx context.Context, c *issue.Comment) error {
	r.creates++
	if r.CreateErr != nil && r.creates > r.failAfter {
		return r.CreateErr
	}
	return r.CommentRepository.Create(ctx, c)
}

// txRecordingIssueRepo notes whether each read ran inside a transaction.
type txRecordingIssueRepo struct {
	*repository.IssueRepository
	reads   []string
	outside []string
}

func (r *txRecordingIssueRepo) record(ctx context.Context, op string) {
	r.reads = append(r.reads, op)
	if !db.InTransaction(ctx) {
		r.outside = append(r.outside, op)
	}
}

func (r *txRecordingIssueRepo) GetByID(ctx context.Context, id uint) (*issue.Issue, error) {
	r.record(ctx, "GetByID")
	return r.IssueRepository.GetByID(ctx, id)
}

func (r *txRecordingIssueRepo) GetByIDs(ctx context.Context, ids []uint) ([]*issue.Issue, error) {
	r.record(ctx, "GetByIDs")
	return r.IssueRepository.GetByIDs(ctx, ids)
}

func (r *txRecordingIssueRepo) ParentsAmong(ctx context.Context, ids []uint) (map[uint]bool, error) {
	r.record(ctx, "ParentsAmong")
	return r.IssueRepository.ParentsAmong(ctx, ids)
}

type failingAttachmentRepo struct {
	*repository.AttachmentRepository
	LinkErr error
}

func (r *failingAttachmentRepo) LinkToIssue(ctx context.Context, ids []uint, issueID uint) error {
	if r.LinkErr != nil {
		return r.LinkErr
	}
	return r.AttachmentRepository.LinkToIssue(ctx, ids, issueID)
}

// testEnv wires every use case against one in-memory database.
type testEnv struct {
	gormDB      *gorm.DB
	txMgr       *db.TransactionManager
	issues      *repository.IssueRepository
	comments    *repository.CommentRepository
	attachments *repository.AttachmentRepository
	sla         *mockSLAProvider
	codes       *mockTrackingCodeGenerator
	renderer    markdown.Renderer
	log         logger.Interface
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb := testutil.NewSQLiteDB(t)
	log := logger.NewNopLogger()
	return &testEnv{
		gormDB:      gdb,
		txMgr:       db.NewTransactionManager(gdb),
		issues:      repository.NewIssueRepository(gdb, log),
		comments:    repository.NewCommentRepository(gdb, log),
		attachments: repository.NewAttachmentRepository(gdb, log),
		sla:         &mockSLAProvider{targetDays: issue.DefaultSLATargetDays, warningDays: issue.DefaultSLAWarningDays},
		codes:       &mockTrackingCodeGenerator{},
		renderer:    markdown.NewRenderer(),
		log:         log,
	}
}

func (e *testEnv) createUseCase() *CreateIssueUseCase {
	return NewCreateIssueUseCase(e.issues, e.attachments, e.codes, e.sla, e.txMgr, e.log)
}

func (e *testEnv) statusUseCase() *UpdateStatusUseCase {
	return NewUpdateStatusUseCase(e.issues, e.comments, e.txMgr, e.log)
}

func (e *testEnv) updateUseCase(auth FieldAuthorizer) *UpdateIssueUseCase {
	return NewUpdateIssueUseCase(e.issues, e.comments, auth, e.txMgr, e.log)
}

func (e *testEnv) addCommentUseCase() *AddCommentUseCase {
	return NewAddCommentUseCase(e.issues, e.comments, e.attachments, e.txMgr, e.log)
}

func (e *testEnv) editCommentUseCase() *EditCommentUseCase {
	return NewEditCommentUseCase(e.issues, e.comments, e.renderer, e.log)
}

func (e *testEnv) deleteUseCase() *DeleteIssueUseCase {
	return NewDeleteIssueUseCase(e.issues, e.comments, e.attachments, e.txMgr, e.log)
}

func (e *testEnv) mergeUseCase() *MergeIssuesUseCase {
	return NewMergeIssuesUseCase(e.issues, e.comments, e.txMgr, e.log)
}

func (e *testEnv) unmergeUseCase() *UnmergeIssueUseCase {
	return NewUnmergeIssueUseCase(e.issues, e.comments, e.txMgr, e.log)
}

func (e *testEnv) getUseCase() *GetIssueUseCase {
	return NewGetIssueUseCase(e.issues, e.comments, e.attachments, e.renderer, e.log)
}

func (e *testEnv) listUseCase() *ListIssuesUseCase {
	return NewListIssuesUseCase(e.issues, e.sla, e.log)
}

// newIssue submits a minimal valid issue as actor and returns its ID.
func (e *testEnv) newIssue(t *testing.T, actor issue.Actor, title string) uint {
	t.Helper()
	res, err := e.createUseCase().Execute(context.Background(), CreateIssueCommand{
		Actor:        actor,
		Title:        title,
		Description:  "steps to reproduce " + title,
		ModelID:      7,
		ReporterName: actor.DisplayName(),
	})
	require.NoError(t, err)
	return res.IssueID
}

func (e *testEnv) newAttachment(t *testing.T, filename string) uint {
	t.Helper()
	a, err := issue.NewAttachment(filename, "uploads/"+filename, "application/octet-stream", 128)
	require.NoError(t, err)
	require.NoError(t, e.attachments.Create(context.Background(), a))
	return a.ID()
}

func (e *testEnv) listAttachments(t *testing.T, issueID uint) []*issue.Attachment {
	t.Helper()
	atts, err := e.attachments.ListByIssue(context.Background(), issueID)
	require.NoError(t, err)
	return atts
}

func (e *testEnv) reload(t *testing.T, id uint) *issue.Issue {
	t.Helper()
	i, err := e.issues.GetByID(context.Background(), id)
	require.NoError(t, err)
	return i
}

func (e *testEnv) commentsOf(t *testing.T, issueID uint) []*issue.Comment {
	t.Helper()
	comments, err := e.comments.ListByIssue(context.Background(), issueID)
	require.NoError(t, err)
	return comments
}

func commentsOfType(comments []*issue.Comment, t vo.CommentType) []*issue.Comment {
	var out []*issue.Comment
	for _, c := range comments {
		if c.Type() == t {
			out = append(out, c)
		}
	}
	return out
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func uintPtr(u uint) *uint { return &u }
