package valueobjects

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Severity is the publicly visible impact level, 1 (low) to 4 (critical).
type Severity int

const (
	SeverityLow      Severity = 1
	SeverityMedium   Severity = 2
	SeverityHigh     Severity = 3
	SeverityCritical Severity = 4

	DefaultSeverity = SeverityMedium
)

var severityLabels = map[Severity]string{
	SeverityLow:      "LOW",
	SeverityMedium:   "MEDIUM",
	SeverityHigh:     "HIGH",
	SeverityCritical: "CRITICAL",
}

var upper = cases.Upper(language.Und)

func (s Severity) IsValid() bool {
	return s >= SeverityLow && s <= SeverityCritical
}

func (s Severity) Int() int {
	return int(s)
}

func (s Severity) Label() string {
	return severityLabels[s]
}

func (s Severity) String() string {
	return strconv.Itoa(int(s))
}

// ParseSeverityLabel accepts LOW, MEDIUM, HIGH or CRITICAL in any case, or a
// decimal 1..4.
func ParseSeverityLabel(raw string) (Severity, bool) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		s := Severity(n)
		return s, s.IsValid()
	}
	label := upper.String(raw)
	for s, l := range severityLabels {
		if l == label {
			return s, true
		}
	}
	return 0, false
}

// SeverityInput is the severity as sent by clients: a label string or an
// integer. Anything it cannot resolve becomes MEDIUM.
type SeverityInput struct {
	raw string
	set bool
}

func NewSeverityInput(raw string) SeverityInput {
	return SeverityInput{raw: raw, set: true}
}

func (in *SeverityInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*in = SeverityInput{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*in = SeverityInput{raw: s, set: true}
		return nil
	}
	// numbers and anything else unparseable keep their literal text
	*in = SeverityInput{raw: string(data), set: true}
	return nil
}

func (in SeverityInput) MarshalJSON() ([]byte, error) {
	if !in.set {
		return []byte("null"), nil
	}
	return json.Marshal(in.raw)
}

// IsSet reports whether the client supplied any value.
func (in SeverityInput) IsSet() bool {
	return in.set
}

// Resolve never fails; unresolvable input falls back to DefaultSeverity.
func (in SeverityInput) Resolve() Severity {
	if !in.set {
		return DefaultSeverity
	}
	if s, ok := ParseSeverityLabel(in.raw); ok {
		return s
	}
	return DefaultSeverity
}

// ResolveStrict is used by updates, where an unknown value is rejected
// instead of silently replaced.
func (in SeverityInput) ResolveStrict() (Severity, bool) {
	if !in.set {
		return 0, false
	}
	return ParseSeverityLabel(in.raw)
}
