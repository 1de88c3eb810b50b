package valueobjects

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverityInput_Resolve(t *testing.T) {
	tests := []struct {
		name string
		json string
		want Severity
	}{
		{"label upper", `"HIGH"`, SeverityHigh},
		{"label lower", `"critical"`, SeverityCritical},
		{"label padded", `" low "`, SeverityLow},
		{"integer", `3`, SeverityHigh},
		{"numeric string", `"4"`, SeverityCritical},
		{"out of range integer", `9`, SeverityMedium},
		{"unknown label", `"URGENT"`, SeverityMedium},
		{"boolean", `true`, SeverityMedium},
		{"null", `null`, SeverityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body struct {
				Severity SeverityInput `json:"severity"`
			}
			require.NoError(t, json.Unmarshal([]byte(`{"severity":`+tt.json+`}`), &body))
			assert.Equal(t, tt.want, body.Severity.Resolve())
		})
	}
}

func TestSeverityInput_Absent(t *testing.T) {
	var body struct {
		Severity SeverityInput `json:"severity"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &body))

	assert.False(t, body.Severity.IsSet())
	assert.Equal(t, DefaultSeverity, body.Severity.Resolve())
	_, ok := body.Severity.ResolveStrict()
	assert.False(t, ok)
}

func TestSeverityInput_ResolveStrict(t *testing.T) {
	s, ok := NewSeverityInput("medium").ResolveStrict()
	assert.True(t, ok)
	assert.Equal(t, SeverityMedium, s)

	_, ok = NewSeverityInput("5").ResolveStrict()
	assert.False(t, ok)
}

func TestSeverity_Label(t *testing.T) {
	assert.Equal(t, "CRITICAL", SeverityCritical.Label())
	assert.Equal(t, "", Severity(0).Label())
	assert.False(t, Severity(5).IsValid())
}

func TestPriority(t *testing.T) {
	assert.Less(t, PriorityP0.Rank(), PriorityP3.Rank())
	assert.Equal(t, PriorityP2, DefaultPriority)

	_, err := NewPriority("P9")
	assert.Error(t, err)
	p, err := NewPriority("P1")
	require.NoError(t, err)
	assert.Equal(t, PriorityP1, p)
}

func TestIssueStatus(t *testing.T) {
	for _, s := range []string{"PENDING", "PROCESSING", "NEED_INFO", "RESOLVED", "CLOSED"} {
		_, err := NewIssueStatus(s)
		assert.NoError(t, err, s)
	}
	_, err := NewIssueStatus("pending")
	assert.Error(t, err)

	assert.True(t, StatusResolved.IsFinished())
	assert.True(t, StatusClosed.IsFinished())
	assert.False(t, StatusNeedInfo.IsFinished())
}

func TestCommentType_IsEditable(t *testing.T) {
	assert.True(t, CommentTypeMessage.IsEditable())
	assert.False(t, CommentTypeStatusChange.IsEditable())
	assert.False(t, CommentTypeFieldChange.IsEditable())
	assert.False(t, CommentTypeSystem.IsEditable())
}

func TestDetectAttachmentKind(t *testing.T) {
	tests := []struct {
		filename, mime string
		want           AttachmentKind
	}{
		{"photo.jpg", "image/jpeg", AttachmentKindImage},
		{"clip.mp4", "video/mp4", AttachmentKindVideo},
		{"capture.pcapng", "application/octet-stream", AttachmentKindPcap},
		{"device.log", "application/octet-stream", AttachmentKindLog},
		{"dump", "text/plain", AttachmentKindLog},
		{"firmware.bin", "", AttachmentKindBinary},
		{"blob", "application/octet-stream", AttachmentKindBinary},
		{"report.pdf", "application/pdf", AttachmentKindOther},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectAttachmentKind(tt.filename, tt.mime))
		})
	}
}
