package issue

import (
	"fmt"
	"strconv"
	"strings"
)

// ConsolidationState is an issue's position in the merge graph.
type ConsolidationState string

const (
	StateStandalone ConsolidationState = "STANDALONE"
	StateParent     ConsolidationState = "PARENT"
	StateChild      ConsolidationState = "CHILD"
)

// StateOf derives the state from the parent link and the child count.
func StateOf(i *Issue, childCount int64) ConsolidationState {
	switch {
	case i.parentID != nil:
		return StateChild
	case childCount > 0:
		return StateParent
	default:
		return StateStandalone
	}
}

// ValidateMerge enforces single-level consolidation: the parent must not be
// a child, no child may be the parent itself, and no child may have
// children of its own. parentsWithChildren holds the ids among children
// that currently have at least one child.
func ValidateMerge(parent *Issue, children []*Issue, parentsWithChildren map[uint]bool) error {
	if parent.parentID != nil {
		return fmt.Errorf("%w: issue %d has parent %d", ErrParentIsChild, parent.id, *parent.parentID)
	}
	for _, c := range children {
		if c.id == parent.id {
			return ErrSelfMerge
		}
		if parentsWithChildren[c.id] {
			return fmt.Errorf("%w: issue %d", ErrChildHasChildren, c.id)
		}
	}
	return nil
}

// DedupeIDs keeps the first occurrence of each non-zero id.
func DedupeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// MergeParentNote is the internal note left on the parent.
func MergeParentNote(childIDs []uint) string {
	return "Merged issues " + joinIDs(childIDs) + " into this issue"
}

// MergeChildNote is the public note left on each child.
func MergeChildNote(parentID uint) string {
	return fmt.Sprintf("This issue has been merged into issue #%d and will be tracked there", parentID)
}

// UnmergeParentNote is the internal note left on the former parent.
func UnmergeParentNote(childID uint) string {
	return fmt.Sprintf("Issue #%d was unmerged from this issue", childID)
}

// UnmergeChildNote is the public note left on the released child.
func UnmergeChildNote(parentID uint) string {
	return fmt.Sprintf("This issue was unmerged from issue #%d and is tracked on its own again", parentID)
}

func joinIDs(ids []uint) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = "#" + strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ", ")
}
