package usecases

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"issuedesk/internal/domain/issue"
	vo "issuedesk/internal/domain/issue/valueobjects"
	apperrors "issuedesk/internal/shared/errors"
)

func TestMergeIssuesUseCase_LinksChildrenAndLeavesNotes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	parent := env.newIssue(t, userActor, "Battery swelling")
	c1 := env.newIssue(t, otherUser, "Battery bulges")
	c2 := env.newIssue(t, guestActor, "Back cover lifting")

	result, err := env.mergeUseCase().Execute(ctx, MergeIssuesCommand{
		ParentID: parent,
		ChildIDs: []uint{c1, c2, c1},
		Actor:    devActor,
	})
	require.NoError(t, err)
	assert.Equal(t, []uint{c1, c2}, result.ChildIDs)

	for _, c := range []uint{c1, c2} {
		child := env.reload(t, c)
		require.NotNil(t, child.ParentID())
		assert.Equal(t, parent, *child.ParentID())

		notes := commentsOfType(env.commentsOf(t, c), vo.CommentTypeSystem)
		require.Len(t, notes, 1)
		assert.False(t, notes[0].IsInternal(), "child note explains the new routing to the reporter")
		assert.Contains(t, notes[0].Content(), fmt.Sprintf("#%d", parent))
	}

	parentNotes := commentsOfType(env.commentsOf(t, parent), vo.CommentTypeSystem)
	require.Len(t, parentNotes, 1)
	assert.True(t, parentNotes[0].IsInternal())
	assert.Contains(t, parentNotes[0].Content(), fmt.Sprintf("#%d, #%d", c1, c2))

	assert.Nil(t, env.reload(t, parent).ParentID())
}

func TestMergeIssuesUseCase_Rejects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.newIssue(t, userActor, "A")
	b := env.newIssue(t, userActor, "B")
	c := env.newIssue(t, userActor, "C")
	d := env.newIssue(t, userActor, "D")

	// a <- b
	_, err := env.mergeUseCase().Execute(ctx, MergeIssuesCommand{ParentID: a, ChildIDs: []uint{b}, Actor: devActor})
	require.NoError(t, err)

	tests := []struct {
		name    string
		cmd     MergeIssuesCommand
		checkFn func(error) bool
	}{
		{"no children", MergeIssuesCommand{ParentID: c, ChildIDs: []uint{0}}, apperrors.IsValidationError},
		{"self merge", MergeIssuesCommand{ParentID: c, ChildIDs: []uint{d, c}}, apperrors.IsValidationError},
		{"unknown parent", MergeIssuesCommand{ParentID: 9090, ChildIDs: []uint{c}}, apperrors.IsNotFoundError},
		{"unknown child", MergeIssuesCommand{ParentID: c, ChildIDs: []uint{d, 9091}}, apperrors.IsNotFoundError},
		{"parent is a child", MergeIssuesCommand{ParentID: b, ChildIDs: []uint{c}}, apperrors.IsConflictError},
		{"child has children", MergeIssuesCommand{ParentID: c, ChildIDs: []uint{a}}, apperrors.IsConflictError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cmd.Actor = devActor
			result, err := env.mergeUseCase().Execute(ctx, tt.cmd)
			assert.Nil(t, result)
			assert.True(t, tt.checkFn(err), "got %v", err)
		})
	}

	assert.Nil(t, env.reload(t, c).ParentID())
	assert.Nil(t, env.reload(t, d).ParentID())
	assert.Nil(t, env.reload(t, a).ParentID())
}

func TestMergeIssuesUseCase_ReparentsChild(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p1 := env.newIssue(t, userActor, "First parent")
	p2 := env.newIssue(t, userActor, "Second parent")
	child := env.newIssue(t, userActor, "Child")

	_, err := env.mergeUseCase().Execute(ctx, MergeIssuesCommand{ParentID: p1, ChildIDs: []uint{child}, Actor: devActor})
	require.NoError(t, err)
	_, err = env.mergeUseCase().Execute(ctx, MergeIssuesCommand{ParentID: p2, ChildIDs: []uint{child}, Actor: devActor})
	require.NoError(t, err)

	assert.Equal(t, p2, *env.reload(t, child).ParentID())

	children, err := env.issues.ListChildren(ctx, p1)
	require.NoError(t, err)
	assert.Empty(t, children)
}

func TestMergeIssuesUseCase_RollsBackOnFailure(t *testing.T) {
	env := newTestEnv(t)
	parent := env.newIssue(t, userActor, "Parent")
	c1 := env.newIssue(t, userActor, "C1")
	c2 := env.newIssue(t, userActor, "C2")

	comments := &failingCommentRepo{CommentRepository: env.comments, CreateErr: errStoreDown, failAfter: 2}
	uc := NewMergeIssuesUseCase(env.issues, comments, env.txMgr, env.log)

	_, err := uc.Execute(context.Background(), MergeIssuesCommand{ParentID: parent, ChildIDs: []uint{c1, c2}, Actor: devActor})
	require.Error(t, err)

	for _, id := range []uint{c1, c2} {
		assert.Nil(t, env.reload(t, id).ParentID())
		assert.Empty(t, env.commentsOf(t, id))
	}
}

func TestConsolidationReadsRunInsideTransaction(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	parent := env.newIssue(t, userActor, "Parent")
	child := env.newIssue(t, userActor, "Child")
	other := env.newIssue(t, userActor, "Other")

	repo := &txRecordingIssueRepo{IssueRepository: env.issues}
	resolved := vo.StatusResolved

	steps := []struct {
		name string
		run  func() error
	}{
		{"merge", func() error {
			_, err := NewMergeIssuesUseCase(repo, env.comments, env.txMgr, env.log).
				Execute(ctx, MergeIssuesCommand{ParentID: parent, ChildIDs: []uint{child}, Actor: devActor})
			return err
		}},
		{"rejected merge", func() error {
			_, err := NewMergeIssuesUseCase(repo, env.comments, env.txMgr, env.log).
				Execute(ctx, MergeIssuesCommand{ParentID: other, ChildIDs: []uint{parent}, Actor: devActor})
			if !apperrors.IsConflictError(err) {
				return fmt.Errorf("want conflict, got %v", err)
			}
			return nil
		}},
		{"unmerge", func() error {
			_, err := NewUnmergeIssueUseCase(repo, env.comments, env.txMgr, env.log).
				Execute(ctx, UnmergeIssueCommand{IssueID: child, Actor: adminActor})
			return err
		}},
		{"status change", func() error {
			_, err := NewUpdateStatusUseCase(repo, env.comments, env.txMgr, env.log).
				Execute(ctx, UpdateStatusCommand{IssueID: parent, NewStatus: resolved, Actor: devActor})
			return err
		}},
		{"field update", func() error {
			_, err := NewUpdateIssueUseCase(repo, env.comments, nil, env.txMgr, env.log).
				Execute(ctx, UpdateIssueCommand{IssueID: other, Patch: issue.IssuePatch{Assignee: strPtr("dmitri")}, Actor: devActor})
			return err
		}},
	}

	for _, step := range steps {
		t.Run(step.name, func(t *testing.T) {
			repo.reads, repo.outside = nil, nil
			require.NoError(t, step.run())
			assert.NotEmpty(t, repo.reads)
			assert.Empty(t, repo.outside, "reads feeding a write must share its transaction")
		})
	}

	assert.Nil(t, env.reload(t, parent).ParentID(), "rejected merge leaves the parent standalone")
	assert.Empty(t, commentsOfType(env.commentsOf(t, other), vo.CommentTypeSystem))
}

func TestUnmergeIssueUseCase(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	parent := env.newIssue(t, userActor, "Parent")
	child := env.newIssue(t, userActor, "Child")

	_, err := env.mergeUseCase().Execute(ctx, MergeIssuesCommand{ParentID: parent, ChildIDs: []uint{child}, Actor: devActor})
	require.NoError(t, err)

	result, err := env.unmergeUseCase().Execute(ctx, UnmergeIssueCommand{IssueID: child, Actor: adminActor})
	require.NoError(t, err)
	assert.Equal(t, parent, result.FormerParentID)
	assert.Nil(t, env.reload(t, child).ParentID())

	parentNotes := commentsOfType(env.commentsOf(t, parent), vo.CommentTypeSystem)
	require.Len(t, parentNotes, 2)
	assert.Equal(t, issue.UnmergeParentNote(child), parentNotes[1].Content())
	assert.True(t, parentNotes[1].IsInternal())

	childNotes := commentsOfType(env.commentsOf(t, child), vo.CommentTypeSystem)
	require.Len(t, childNotes, 2)
	assert.Equal(t, issue.UnmergeChildNote(parent), childNotes[1].Content())
	assert.False(t, childNotes[1].IsInternal())

	t.Run("second unmerge conflicts", func(t *testing.T) {
		_, err := env.unmergeUseCase().Execute(ctx, UnmergeIssueCommand{IssueID: child, Actor: adminActor})
		assert.True(t, apperrors.IsConflictError(err), "got %v", err)
	})

	t.Run("standalone issue conflicts", func(t *testing.T) {
		_, err := env.unmergeUseCase().Execute(ctx, UnmergeIssueCommand{IssueID: parent, Actor: adminActor})
		assert.True(t, apperrors.IsConflictError(err), "got %v", err)
	})

	t.Run("unknown issue", func(t *testing.T) {
		_, err := env.unmergeUseCase().Execute(ctx, UnmergeIssueCommand{IssueID: 31337, Actor: adminActor})
		assert.True(t, apperrors.IsNotFoundError(err), "got %v", err)
	})
}
