package valueobjects

import "fmt"

// IssueStatus has no transition graph: any status may move to any other.
type IssueStatus string

const (
	StatusPending    IssueStatus = "PENDING"
	StatusProcessing IssueStatus = "PROCESSING"
	StatusNeedInfo   IssueStatus = "NEED_INFO"
	StatusResolved   IssueStatus = "RESOLVED"
	StatusClosed     IssueStatus = "CLOSED"
)

var validIssueStatuses = map[IssueStatus]bool{
	StatusPending:    true,
	StatusProcessing: true,
	StatusNeedInfo:   true,
	StatusResolved:   true,
	StatusClosed:     true,
}

func (s IssueStatus) String() string {
	return string(s)
}

func (s IssueStatus) IsValid() bool {
	return validIssueStatuses[s]
}

// IsFinished is true for RESOLVED and CLOSED; SLA tracking stops there.
func (s IssueStatus) IsFinished() bool {
	return s == StatusResolved || s == StatusClosed
}

func NewIssueStatus(s string) (IssueStatus, error) {
	st := IssueStatus(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid issue status: %s", s)
	}
	return st, nil
}
