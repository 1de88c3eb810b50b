package issue

import (
	"fmt"
	"strings"
	"time"

	vo "issuedesk/internal/domain/issue/valueobjects"
	"issuedesk/internal/shared/biztime"
)

const maxCommentLength = 10000

// Comment is one entry of an issue's timeline. Only MESSAGE content may
// change after creation.
type Comment struct {
	id          uint
	issueID     uint
	commentType vo.CommentType
	authorName  string
	authorType  vo.AuthorType
	content     string
	isInternal  bool
	oldStatus   string
	newStatus   string
	attachments []*Attachment
	createdAt   time.Time
	updatedAt   time.Time
}

func newComment(issueID uint, t vo.CommentType, authorName string, authorType vo.AuthorType, content string, internal bool) (*Comment, error) {
	if issueID == 0 {
		return nil, fmt.Errorf("issue ID is required")
	}
	if authorName == "" {
		authorName = "System"
	}
	now := biztime.NowUTC()
	return &Comment{
		issueID:     issueID,
		commentType: t,
		authorName:  authorName,
		authorType:  authorType,
		content:     content,
		isInternal:  internal,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// NewMessageComment is a human reply. hasAttachments allows an empty body.
// Only MESSAGE bodies are length-capped; generated entries embed field values
// that are bounded by their own limits.
func NewMessageComment(issueID uint, author Actor, content string, isInternal bool, hasAttachments bool) (*Comment, error) {
	if strings.TrimSpace(content) == "" && !hasAttachments {
		return nil, ErrEmptyComment
	}
	if len(content) > maxCommentLength {
		return nil, fmt.Errorf("content exceeds maximum length of %d characters", maxCommentLength)
	}
	return newComment(issueID, vo.CommentTypeMessage, author.DisplayName(), author.AuthorType(), content, isInternal)
}

// NewStatusChangeComment records a real transition. It is public so that
// reporters can follow progress.
func NewStatusChangeComment(issueID uint, actor Actor, oldStatus, newStatus vo.IssueStatus) (*Comment, error) {
	content := fmt.Sprintf("Status changed from %s to %s", oldStatus, newStatus)
	c, err := newComment(issueID, vo.CommentTypeStatusChange, actor.DisplayName(), actor.AuthorType(), content, false)
	if err != nil {
		return nil, err
	}
	c.oldStatus = oldStatus.String()
	c.newStatus = newStatus.String()
	return c, nil
}

// NewFieldChangeComment wraps an audit entry. Always internal.
func NewFieldChangeComment(issueID uint, actor Actor, change FieldChange) (*Comment, error) {
	payload, err := change.Payload()
	if err != nil {
		return nil, err
	}
	return newComment(issueID, vo.CommentTypeFieldChange, actor.DisplayName(), actor.AuthorType(), payload, true)
}

// NewSystemComment records a consolidation event.
func NewSystemComment(issueID uint, actor Actor, content string, isInternal bool) (*Comment, error) {
	return newComment(issueID, vo.CommentTypeSystem, actor.DisplayName(), actor.AuthorType(), content, isInternal)
}

// ReconstructCommentParams mirrors the persisted columns.
type ReconstructCommentParams struct {
	ID          uint
	IssueID     uint
	Type        vo.CommentType
	AuthorName  string
	AuthorType  vo.AuthorType
	Content     string
	IsInternal  bool
	OldStatus   string
	NewStatus   string
	Attachments []*Attachment
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func ReconstructComment(p ReconstructCommentParams) (*Comment, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("comment ID cannot be zero")
	}
	if !p.Type.IsValid() {
		return nil, fmt.Errorf("invalid comment type: %s", p.Type)
	}
	return &Comment{
		id:          p.ID,
		issueID:     p.IssueID,
		commentType: p.Type,
		authorName:  p.AuthorName,
		authorType:  p.AuthorType,
		content:     p.Content,
		isInternal:  p.IsInternal,
		oldStatus:   p.OldStatus,
		newStatus:   p.NewStatus,
		attachments: p.Attachments,
		createdAt:   p.CreatedAt,
		updatedAt:   p.UpdatedAt,
	}, nil
}

func (c *Comment) ID() uint                  { return c.id }
func (c *Comment) IssueID() uint             { return c.issueID }
func (c *Comment) Type() vo.CommentType      { return c.commentType }
func (c *Comment) AuthorName() string        { return c.authorName }
func (c *Comment) AuthorType() vo.AuthorType { return c.authorType }
func (c *Comment) Content() string           { return c.content }
func (c *Comment) IsInternal() bool          { return c.isInternal }
func (c *Comment) OldStatus() string         { return c.oldStatus }
func (c *Comment) NewStatus() string         { return c.newStatus }
func (c *Comment) CreatedAt() time.Time      { return c.createdAt }
func (c *Comment) UpdatedAt() time.Time      { return c.updatedAt }

func (c *Comment) Attachments() []*Attachment {
	out := make([]*Attachment, len(c.attachments))
	copy(out, c.attachments)
	return out
}

func (c *Comment) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("comment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("comment ID cannot be zero")
	}
	c.id = id
	return nil
}

// SetAttachments replaces the loaded attachment list.
func (c *Comment) SetAttachments(atts []*Attachment) {
	c.attachments = atts
}

// EditContent replaces a MESSAGE body in place. Edits are not audited.
func (c *Comment) EditContent(content string) error {
	if !c.commentType.IsEditable() {
		return ErrCommentNotEditable
	}
	if strings.TrimSpace(content) == "" && len(c.attachments) == 0 {
		return ErrEmptyComment
	}
	if len(content) > maxCommentLength {
		return fmt.Errorf("content exceeds maximum length of %d characters", maxCommentLength)
	}
	c.content = content
	c.updatedAt = biztime.NowUTC()
	return nil
}

// FieldChange decodes the payload of a FIELD_CHANGE comment.
func (c *Comment) FieldChange() (FieldChange, bool) {
	if c.commentType != vo.CommentTypeFieldChange {
		return FieldChange{}, false
	}
	fc, err := ParseFieldChange(c.content)
	if err != nil {
		return FieldChange{}, false
	}
	return fc, true
}
