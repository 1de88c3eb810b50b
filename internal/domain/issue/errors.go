package issue

import "errors"

var (
	ErrIssueNotFound      = errors.New("issue not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrAttachmentNotFound = errors.New("attachment not found")

	// ErrAttachmentUnavailable means a requested attachment does not exist or
	// is already bound elsewhere.
	ErrAttachmentUnavailable = errors.New("attachment not found or already linked")

	ErrCommentNotEditable = errors.New("only MESSAGE comments can be edited")
	ErrEmptyComment       = errors.New("comment needs content or at least one attachment")

	ErrSelfMerge        = errors.New("an issue cannot be merged into itself")
	ErrParentIsChild    = errors.New("merge target is itself merged into another issue")
	ErrChildHasChildren = errors.New("issue with merged children cannot become a child")
	ErrNotMerged        = errors.New("issue is not merged into a parent")
)
