package models

import (
	"time"

	"gorm.io/datatypes"

	"issuedesk/internal/shared/constants"
)

// IssueModel is the persistence shape of an issue. Relations are plain id
// columns without foreign keys; integrity is enforced by the use cases.
type IssueModel struct {
	ID           uint           `gorm:"primarykey"`
	TrackingCode string         `gorm:"uniqueIndex;not null;size:32"`
	Title        string         `gorm:"not null;size:200"`
	Description  string         `gorm:"type:text;not null"`
	Status       string         `gorm:"not null;size:20;index"`
	Severity     int            `gorm:"not null;default:2"`
	Priority     string         `gorm:"not null;size:2;default:P2"`
	CategoryID   *uint          `gorm:"index"`
	ModelID      uint           `gorm:"not null;index"`
	ParentID     *uint          `gorm:"index"`
	TargetDate   *time.Time
	CustomData   datatypes.JSON `gorm:"type:text"`
	Tags         datatypes.JSON `gorm:"type:text"`
	CreatorID    *uint          `gorm:"index"`
	ReporterName string         `gorm:"not null;size:100"`
	Assignee     string         `gorm:"size:100"`
	OccurredAt   *time.Time
	Frequency    string         `gorm:"size:100"`
	CustomerName string         `gorm:"size:200"`
	Contact      string         `gorm:"size:200"`
	Phenomenon   string         `gorm:"type:text"`
	ErrorCode    string         `gorm:"size:100"`
	Environment  string         `gorm:"type:text"`
	Location     string         `gorm:"size:200"`
	SubmitDate   time.Time      `gorm:"not null;index"`
	CreatedAt    time.Time      `gorm:"index"`
	UpdatedAt    time.Time
}

func (IssueModel) TableName() string {
	return constants.TableIssues
}

// CommentModel stores one timeline entry.
type CommentModel struct {
	ID          uint   `gorm:"primarykey"`
	IssueID     uint   `gorm:"not null;index"`
	CommentType string `gorm:"not null;size:20"`
	AuthorName  string `gorm:"not null;size:100"`
	AuthorType  string `gorm:"not null;size:20"`
	Content     string `gorm:"type:text"`
	IsInternal  bool   `gorm:"not null;default:false"`
	OldStatus   string `gorm:"size:20"`
	NewStatus   string `gorm:"size:20"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (CommentModel) TableName() string {
	return constants.TableComments
}

// AttachmentModel is an uploaded file reference. A row with both ids nil has
// been uploaded but not yet linked.
type AttachmentModel struct {
	ID         uint   `gorm:"primarykey"`
	Filename   string `gorm:"not null;size:255"`
	Path       string `gorm:"not null;size:500"`
	MimeType   string `gorm:"size:100"`
	Size       int64  `gorm:"not null;default:0"`
	Kind       string `gorm:"not null;size:20"`
	IsInternal bool   `gorm:"not null;default:false"`
	IssueID    *uint  `gorm:"index"`
	CommentID  *uint  `gorm:"index"`
	CreatedAt  time.Time
}

func (AttachmentModel) TableName() string {
	return constants.TableAttachments
}
