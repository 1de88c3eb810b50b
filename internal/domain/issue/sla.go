package issue

import (
	"time"

	vo "issuedesk/internal/domain/issue/valueobjects"
	"issuedesk/internal/shared/biztime"
)

const (
	DefaultSLATargetDays  = 5
	DefaultSLAWarningDays = 1
)

// SLAState summarises an issue's due-date standing for list views.
type SLAState string

const (
	SLAOnTrack SLAState = "ON_TRACK"
	SLAWarning SLAState = "WARNING"
	SLAOverdue SLAState = "OVERDUE"
	SLAMet     SLAState = "MET"
	SLANone    SLAState = "NONE"
)

// ComputeTargetDate applies the working-day calculator in the business time
// zone, so weekends are the reporter's weekends, and returns UTC.
func ComputeTargetDate(submitDate time.Time, slaDays int) time.Time {
	return biztime.AddWorkingDays(biztime.ToBizTimezone(submitDate), slaDays).UTC()
}

// EvaluateSLA classifies an issue at now. Finished issues are MET; open
// issues past their target are OVERDUE; open issues whose target falls
// within warningDays working days are WARNING.
func EvaluateSLA(status vo.IssueStatus, targetDate *time.Time, now time.Time, warningDays int) SLAState {
	if targetDate == nil {
		return SLANone
	}
	if status.IsFinished() {
		return SLAMet
	}
	if now.After(*targetDate) {
		return SLAOverdue
	}
	horizon := biztime.AddWorkingDays(biztime.ToBizTimezone(now), warningDays)
	if !horizon.Before(*targetDate) {
		return SLAWarning
	}
	return SLAOnTrack
}
