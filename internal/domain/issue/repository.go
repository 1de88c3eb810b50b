package issue

import (
	"context"
	"time"

	vo "issuedesk/internal/domain/issue/valueobjects"
)

// Repository persists issues. Methods join the transaction carried by ctx.
type Repository interface {
	Create(ctx context.Context, issue *Issue) error
	Update(ctx context.Context, issue *Issue) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Issue, error)
	GetByTrackingCode(ctx context.Context, code string) (*Issue, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*Issue, error)
	List(ctx context.Context, filter Filter) ([]*Issue, int64, error)
	ListChildren(ctx context.Context, parentID uint) ([]*Issue, error)
	// ParentsAmong returns the subset of ids that have at least one child.
	ParentsAmong(ctx context.Context, ids []uint) (map[uint]bool, error)
	DetachChildren(ctx context.Context, parentID uint) (int64, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	Update(ctx context.Context, comment *Comment) error
	GetByID(ctx context.Context, id uint) (*Comment, error)
	ListByIssue(ctx context.Context, issueID uint) ([]*Comment, error)
	IDsByIssue(ctx context.Context, issueID uint) ([]uint, error)
	DeleteByIssue(ctx context.Context, issueID uint) error
}

type AttachmentRepository interface {
	Create(ctx context.Context, attachment *Attachment) error
	// LinkToIssue associates unlinked attachments with an issue only. It
	// fails with ErrAttachmentUnavailable unless every id was unlinked.
	LinkToIssue(ctx context.Context, ids []uint, issueID uint) error
	// LinkToComment binds attachments to a comment and sets their visibility.
	// Only unlinked attachments, or ones attached directly to the same issue,
	// qualify; anything else fails with ErrAttachmentUnavailable.
	LinkToComment(ctx context.Context, ids []uint, issueID, commentID uint, isInternal bool) error
	ListByIssue(ctx context.Context, issueID uint) ([]*Attachment, error)
	DeleteByIssueOrComments(ctx context.Context, issueID uint, commentIDs []uint) (int64, error)
}

// SortKey selects list ordering. Each key has a fixed direction.
type SortKey string

const (
	SortByCreatedAt SortKey = "createdAt"
	SortByPriority  SortKey = "priority"
	SortBySeverity  SortKey = "severity"
)

func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortByPriority, SortBySeverity:
		return SortKey(s)
	default:
		return SortByCreatedAt
	}
}

// Filter combines conjunctively. Empty slices and nil pointers are ignored.
// PageSize -1 returns every match.
type Filter struct {
	Statuses   []vo.IssueStatus
	ModelIDs   []uint
	Search     string
	SubmitFrom *time.Time
	SubmitTo   *time.Time
	CreatorID  *uint
	ParentID   *uint
	SortBy     SortKey
	Page       int
	PageSize   int
}
