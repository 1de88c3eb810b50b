package issue

import "issuedesk/internal/shared/authorization"

// FilterVisible strips internal-only comments and attachments for viewers
// whose role is not internal. Attachments nested in visible comments are
// filtered too. Internal viewers get the inputs back unchanged.
//
// Apply this once, when building a read response. Writes persist the
// isInternal flag exactly as given.
func FilterVisible(comments []*Comment, attachments []*Attachment, role authorization.UserRole) ([]*Comment, []*Attachment) {
	if role.IsInternal() {
		return comments, attachments
	}

	visibleComments := make([]*Comment, 0, len(comments))
	for _, c := range comments {
		if c.isInternal {
			continue
		}
		if len(c.attachments) > 0 {
			cp := *c
			cp.attachments = filterAttachments(c.attachments)
			c = &cp
		}
		visibleComments = append(visibleComments, c)
	}

	return visibleComments, filterAttachments(attachments)
}

func filterAttachments(attachments []*Attachment) []*Attachment {
	visible := make([]*Attachment, 0, len(attachments))
	for _, a := range attachments {
		if !a.isInternal {
			visible = append(visible, a)
		}
	}
	return visible
}

// ResolveCommentVisibility decides the isInternal flag of a new comment.
// Internal authors choose freely and default to internal; everyone else is
// forced to public.
func ResolveCommentVisibility(role authorization.UserRole, requested *bool) bool {
	if !role.IsInternal() {
		return false
	}
	if requested == nil {
		return true
	}
	return *requested
}
