package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"issuedesk/internal/domain/issue"
	"issuedesk/internal/infrastructure/persistence/models"
	apperrors "issuedesk/internal/shared/errors"
)

func TestDeleteIssueUseCase_Cascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	issueFile := env.newAttachment(t, "photo.jpg")
	res, err := env.createUseCase().Execute(ctx, CreateIssueCommand{
		Actor:         supportActor,
		Title:         "Hinge cracked",
		Description:   "Cracks after a week",
		ModelID:       3,
		ReporterName:  "Store 4",
		AttachmentIDs: []uint{issueFile},
	})
	require.NoError(t, err)
	parent := res.IssueID

	c1 := env.newIssue(t, userActor, "Hinge loose")
	c2 := env.newIssue(t, userActor, "Hinge squeaks")
	_, err = env.mergeUseCase().Execute(ctx, MergeIssuesCommand{ParentID: parent, ChildIDs: []uint{c1, c2}, Actor: devActor})
	require.NoError(t, err)

	commentFile := env.newAttachment(t, "hinge.log")
	_, err = env.addCommentUseCase().Execute(ctx, AddCommentCommand{
		IssueID:       parent,
		Actor:         devActor,
		Content:       "stress test log",
		AttachmentIDs: []uint{commentFile},
	})
	require.NoError(t, err)
	survivor := env.newAttachment(t, "unrelated.txt")

	result, err := env.deleteUseCase().Execute(ctx, DeleteIssueCommand{IssueID: parent, Actor: adminActor})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.DetachedChildren)
	assert.Equal(t, int64(2), result.DeletedAttachments)

	_, err = env.issues.GetByID(ctx, parent)
	assert.ErrorIs(t, err, issue.ErrIssueNotFound)
	assert.Empty(t, env.commentsOf(t, parent))

	for _, c := range []uint{c1, c2} {
		assert.Nil(t, env.reload(t, c).ParentID(), "children survive as standalone issues")
		assert.NotEmpty(t, env.commentsOf(t, c), "children keep their own timeline")
	}

	var remaining []models.AttachmentModel
	require.NoError(t, env.gormDB.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, survivor, remaining[0].ID)
}

func TestDeleteIssueUseCase_NotFound(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.deleteUseCase().Execute(context.Background(), DeleteIssueCommand{IssueID: 404, Actor: adminActor})

	assert.Nil(t, result)
	assert.True(t, apperrors.IsNotFoundError(err), "got %v", err)
}
