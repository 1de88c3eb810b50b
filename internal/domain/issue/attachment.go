package issue

import (
	"fmt"
	"time"

	vo "issuedesk/internal/domain/issue/valueobjects"
	"issuedesk/internal/shared/biztime"
)

// Attachment is file metadata owned by the storage collaborator. The core
// only manages its links to an issue and comment and its visibility.
type Attachment struct {
	id         uint
	filename   string
	path       string
	mimeType   string
	size       int64
	kind       vo.AttachmentKind
	isInternal bool
	issueID    *uint
	commentID  *uint
	createdAt  time.Time
}

// NewAttachment registers an upload. New attachments are unlinked.
func NewAttachment(filename, path, mimeType string, size int64) (*Attachment, error) {
	if filename == "" {
		return nil, fmt.Errorf("filename is required")
	}
	if path == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if size < 0 {
		return nil, fmt.Errorf("size cannot be negative")
	}
	return &Attachment{
		filename:  filename,
		path:      path,
		mimeType:  mimeType,
		size:      size,
		kind:      vo.DetectAttachmentKind(filename, mimeType),
		createdAt: biztime.NowUTC(),
	}, nil
}

type ReconstructAttachmentParams struct {
	ID         uint
	Filename   string
	Path       string
	MimeType   string
	Size       int64
	Kind       vo.AttachmentKind
	IsInternal bool
	IssueID    *uint
	CommentID  *uint
	CreatedAt  time.Time
}

func ReconstructAttachment(p ReconstructAttachmentParams) *Attachment {
	kind := p.Kind
	if !kind.IsValid() {
		kind = vo.AttachmentKindOther
	}
	return &Attachment{
		id:         p.ID,
		filename:   p.Filename,
		path:       p.Path,
		mimeType:   p.MimeType,
		size:       p.Size,
		kind:       kind,
		isInternal: p.IsInternal,
		issueID:    p.IssueID,
		commentID:  p.CommentID,
		createdAt:  p.CreatedAt,
	}
}

func (a *Attachment) ID() uint                { return a.id }
func (a *Attachment) Filename() string        { return a.filename }
func (a *Attachment) Path() string            { return a.path }
func (a *Attachment) MimeType() string        { return a.mimeType }
func (a *Attachment) Size() int64             { return a.size }
func (a *Attachment) Kind() vo.AttachmentKind { return a.kind }
func (a *Attachment) IsInternal() bool        { return a.isInternal }
func (a *Attachment) IssueID() *uint          { return a.issueID }
func (a *Attachment) CommentID() *uint        { return a.commentID }
func (a *Attachment) CreatedAt() time.Time    { return a.createdAt }

func (a *Attachment) SetID(id uint) {
	a.id = id
}
