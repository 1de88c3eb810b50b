package issue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "issuedesk/internal/domain/issue/valueobjects"
	"issuedesk/internal/shared/authorization"
)

func comment(t *testing.T, id uint, internal bool, atts ...*Attachment) *Comment {
	t.Helper()
	c, err := ReconstructComment(ReconstructCommentParams{
		ID:          id,
		IssueID:     1,
		Type:        vo.CommentTypeMessage,
		AuthorName:  "a",
		AuthorType:  vo.AuthorTypeAdmin,
		Content:     "body",
		IsInternal:  internal,
		Attachments: atts,
	})
	require.NoError(t, err)
	return c
}

func attachment(id uint, internal bool) *Attachment {
	return ReconstructAttachment(ReconstructAttachmentParams{ID: id, Filename: "f.log", IsInternal: internal})
}

func TestFilterVisible(t *testing.T) {
	comments := []*Comment{
		comment(t, 1, false, attachment(10, false), attachment(11, true)),
		comment(t, 2, true, attachment(12, true)),
		comment(t, 3, false),
	}
	attachments := []*Attachment{attachment(20, false), attachment(21, true)}

	roles := []struct {
		role         authorization.UserRole
		wantComments int
		wantAtts     int
	}{
		{authorization.RoleAdmin, 3, 2},
		{authorization.RoleDeveloper, 3, 2},
		{authorization.RoleSupport, 2, 1},
		{authorization.RoleUser, 2, 1},
		{authorization.RoleGuest, 2, 1},
		{"", 2, 1},
	}

	for _, tt := range roles {
		t.Run(string(tt.role), func(t *testing.T) {
			cs, as := FilterVisible(comments, attachments, tt.role)
			assert.Len(t, cs, tt.wantComments)
			assert.Len(t, as, tt.wantAtts)

			if tt.role.IsInternal() {
				return
			}
			for _, c := range cs {
				assert.False(t, c.IsInternal())
				for _, a := range c.Attachments() {
					assert.False(t, a.IsInternal())
				}
			}
			for _, a := range as {
				assert.False(t, a.IsInternal())
			}
		})
	}
}

func TestFilterVisible_DoesNotMutateInput(t *testing.T) {
	c := comment(t, 1, false, attachment(10, false), attachment(11, true))

	FilterVisible([]*Comment{c}, nil, authorization.RoleUser)

	assert.Len(t, c.Attachments(), 2)
}

func TestResolveCommentVisibility(t *testing.T) {
	yes, no := true, false

	tests := []struct {
		name      string
		role      authorization.UserRole
		requested *bool
		want      bool
	}{
		{"admin default internal", authorization.RoleAdmin, nil, true},
		{"admin explicit public", authorization.RoleAdmin, &no, false},
		{"developer explicit internal", authorization.RoleDeveloper, &yes, true},
		{"support forced public", authorization.RoleSupport, &yes, false},
		{"user forced public", authorization.RoleUser, nil, false},
		{"guest forced public", authorization.RoleGuest, &yes, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveCommentVisibility(tt.role, tt.requested))
		})
	}
}
