// Package decision normalizes the heterogeneous outcome of one resume
// evaluation into a single display verdict.
package decision

import (
	"regexp"
	"strings"

	"github.com/hireova/screening-desk/internal/models"
)

// Decision is the normalized verdict for one resume.
type Decision string

const (
	Shortlisted Decision = "Shortlisted"
	Rejected    Decision = "Rejected"
	Error       Decision = "Error"
	Unknown     Decision = "-"
)

// Signal identifies which field of the result produced the verdict, so each
// branch of the fallback chain can be asserted independently.
type Signal int

const (
	// SignalNone means no usable field was present.
	SignalNone Signal = iota
	// SignalExplicit means the structured decision field was used.
	SignalExplicit
	// SignalReport means the verdict was inferred from the free-text report.
	SignalReport
	// SignalError means only the error field was present.
	SignalError
)

// decisionLine matches "Decision: <verdict>" in a free-text report. The
// service decorates verdicts with marker symbols (✅, ❌) which carry no
// information and are stripped before matching.
var decisionLine = regexp.MustCompile(`Decision:\s*([^\n]+)`)

// Normalize maps one evaluation result to a verdict. Priority order: the
// explicit decision field wins over the free-text report, which wins over the
// bare error field. An unrecognized explicit decision is trusted verbatim,
// not coerced to Unknown.
func Normalize(res models.EvaluationResult) (Decision, Signal) {
	if res.Decision != "" && res.Decision != "-" {
		switch {
		case strings.Contains(res.Decision, "Shortlist"):
			return Shortlisted, SignalExplicit
		case strings.Contains(res.Decision, "Reject"):
			return Rejected, SignalExplicit
		default:
			return Decision(res.Decision), SignalExplicit
		}
	}

	if res.ResultText != "" {
		if m := decisionLine.FindStringSubmatch(res.ResultText); m != nil {
			verdict := stripMarkers(m[1])
			switch {
			case strings.Contains(verdict, "Shortlist"):
				return Shortlisted, SignalReport
			case strings.Contains(verdict, "Reject"):
				return Rejected, SignalReport
			}
		}
	}

	if res.Error != "" {
		return Error, SignalError
	}

	return Unknown, SignalNone
}

// FromHistory normalizes a history entry through the same chain. History rows
// carry no report text, so only the explicit field and absence apply.
func FromHistory(entry models.HistoryEntry) (Decision, Signal) {
	return Normalize(models.EvaluationResult{Decision: entry.Decision})
}

// stripMarkers drops decorative symbols so only letters, digits and spaces
// take part in verdict matching.
func stripMarkers(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == ' ' {
			return r
		}
		return -1
	}, s)
}
