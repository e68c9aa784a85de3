package decision

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hireova/screening-desk/internal/models"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		result     models.EvaluationResult
		want       Decision
		wantSignal Signal
	}{
		{
			name:       "Explicit shortlist",
			result:     models.EvaluationResult{Decision: "Shortlist"},
			want:       Shortlisted,
			wantSignal: SignalExplicit,
		},
		{
			name:       "Explicit shortlist with marker",
			result:     models.EvaluationResult{Decision: "✅ Shortlist"},
			want:       Shortlisted,
			wantSignal: SignalExplicit,
		},
		{
			name:       "Explicit reject",
			result:     models.EvaluationResult{Decision: "❌ Reject"},
			want:       Rejected,
			wantSignal: SignalExplicit,
		},
		{
			name:       "Explicit field wins over conflicting report",
			result:     models.EvaluationResult{Decision: "Shortlist", ResultText: "Decision: ❌ Reject"},
			want:       Shortlisted,
			wantSignal: SignalExplicit,
		},
		{
			name:       "Explicit field wins over error",
			result:     models.EvaluationResult{Decision: "Shortlisted", Error: "timeout"},
			want:       Shortlisted,
			wantSignal: SignalExplicit,
		},
		{
			name:       "Unrecognized explicit decision passes through verbatim",
			result:     models.EvaluationResult{Decision: "On Hold"},
			want:       Decision("On Hold"),
			wantSignal: SignalExplicit,
		},
		{
			name:       "Placeholder decision falls through to report",
			result:     models.EvaluationResult{Decision: "-", ResultText: "Match %: 80\nDecision: Reject"},
			want:       Rejected,
			wantSignal: SignalReport,
		},
		{
			name:       "Report shortlist with marker",
			result:     models.EvaluationResult{ResultText: "Match %: 91\nDecision: ✅ Shortlist\nReason (if Rejected): -"},
			want:       Shortlisted,
			wantSignal: SignalReport,
		},
		{
			name:       "Report decision wins over error",
			result:     models.EvaluationResult{ResultText: "Decision: ✅ Shortlist", Error: "partial failure"},
			want:       Shortlisted,
			wantSignal: SignalReport,
		},
		{
			name:       "Report without decision line falls through to error",
			result:     models.EvaluationResult{ResultText: "Match %: 55", Error: "truncated"},
			want:       Error,
			wantSignal: SignalError,
		},
		{
			name:       "Error only",
			result:     models.EvaluationResult{Error: "timeout"},
			want:       Error,
			wantSignal: SignalError,
		},
		{
			name:       "All fields absent",
			result:     models.EvaluationResult{Filename: "cv.pdf"},
			want:       Unknown,
			wantSignal: SignalNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, signal := Normalize(tt.result)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantSignal, signal)
		})
	}
}

func TestFromHistory(t *testing.T) {
	got, signal := FromHistory(models.HistoryEntry{Decision: "Shortlisted"})
	assert.Equal(t, Shortlisted, got)
	assert.Equal(t, SignalExplicit, signal)

	got, signal = FromHistory(models.HistoryEntry{Decision: "-"})
	assert.Equal(t, Unknown, got)
	assert.Equal(t, SignalNone, signal)
}

func TestStripMarkers(t *testing.T) {
	assert.Equal(t, " Shortlist", stripMarkers("✅ Shortlist"))
	assert.Equal(t, " Reject", stripMarkers("❌ Reject"))
	assert.Equal(t, "Reject", stripMarkers("Reject"))
}
