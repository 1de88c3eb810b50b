package issue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateOf(t *testing.T) {
	assert.Equal(t, StateStandalone, StateOf(persistedIssue(t, 1, nil), 0))
	assert.Equal(t, StateParent, StateOf(persistedIssue(t, 1, nil), 2))
	assert.Equal(t, StateChild, StateOf(persistedIssue(t, 1, uintPtr(4)), 0))
}

func TestValidateMerge(t *testing.T) {
	parent := persistedIssue(t, 1, nil)
	child := persistedIssue(t, 2, nil)
	reparented := persistedIssue(t, 3, uintPtr(9))

	tests := []struct {
		name    string
		parent  *Issue
		kids    []*Issue
		parents map[uint]bool
		wantErr error
	}{
		{"standalone children", parent, []*Issue{child}, nil, nil},
		{"re-parenting an existing child is allowed", parent, []*Issue{reparented}, nil, nil},
		{"self merge", parent, []*Issue{parent}, nil, ErrSelfMerge},
		{"parent is a child", reparented, []*Issue{child}, nil, ErrParentIsChild},
		{"child has children", parent, []*Issue{child}, map[uint]bool{2: true}, ErrChildHasChildren},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMerge(tt.parent, tt.kids, tt.parents)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDedupeIDs(t *testing.T) {
	assert.Equal(t, []uint{3, 1, 2}, DedupeIDs([]uint{3, 1, 3, 0, 2, 1}))
	assert.Empty(t, DedupeIDs(nil))
}

func TestMergeNotes(t *testing.T) {
	assert.Equal(t, "Merged issues #4, #5 into this issue", MergeParentNote([]uint{4, 5}))
	assert.Contains(t, MergeChildNote(7), "#7")
	assert.Contains(t, UnmergeParentNote(4), "#4")
	assert.Contains(t, UnmergeChildNote(7), "#7")
}
