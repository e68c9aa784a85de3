package models

// EvaluationResult is the per-file outcome returned by the screening service.
// Fields other than Filename are optional: a row can carry a full report, an
// error, or both. MatchPercent is a pointer so an absent value renders as "-"
// rather than 0%.
type EvaluationResult struct {
	Filename     string   `json:"filename"`
	MatchPercent *float64 `json:"match_percent,omitempty"`
	Decision     string   `json:"decision,omitempty"`
	ResultText   string   `json:"result_text,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// EvaluationResponse is the envelope of POST /analyze-resumes/.
type EvaluationResponse struct {
	Results []EvaluationResult `json:"results"`
}

// RecruiterSummaryRow is one recruiter's rollup in the MIS summary.
type RecruiterSummaryRow struct {
	RecruiterName string         `json:"recruiter_name"`
	Uploads       int            `json:"uploads"`
	Resumes       int            `json:"resumes"`
	Shortlisted   int            `json:"shortlisted"`
	Rejected      int            `json:"rejected"`
	History       []HistoryEntry `json:"history"`
}

// HistoryEntry is one previously evaluated resume in a recruiter's history.
// FileID is the only handle for document preview; when empty the preview
// affordance is disabled.
type HistoryEntry struct {
	ResumeName   string   `json:"resume_name"`
	FileID       string   `json:"file_id,omitempty"`
	HiringType   string   `json:"hiring_type"`
	Level        string   `json:"level"`
	MatchPercent *float64 `json:"match_percent,omitempty"`
	Decision     string   `json:"decision"`
	UploadDate   string   `json:"upload_date"`
	CountsPerDay int      `json:"counts_per_day"`
	Details      string   `json:"details"`
}

// MISSummaryResponse is the envelope of GET /mis-summary.
type MISSummaryResponse struct {
	Summary []RecruiterSummaryRow `json:"summary"`
}

// ReportRow is one recruiter's line in a daily report.
type ReportRow struct {
	RecruiterName string `json:"recruiter_name"`
	TotalResumes  int    `json:"total_resumes"`
	Shortlisted   int    `json:"shortlisted"`
	Rejected      int    `json:"rejected"`
}

// ReportResponse is the envelope of GET /reports/{date}.
type ReportResponse struct {
	Reports []ReportRow `json:"reports"`
}

// ResumeFile is the encoded payload of GET /view-resume/{fileId}.
// Content is base64 of the stored file bytes.
type ResumeFile struct {
	ContentType string `json:"content_type"`
	Content     string `json:"content"`
	Size        int64  `json:"size"`
}

// LoginResponse is the payload of a successful POST /login.
type LoginResponse struct {
	AccessToken   string `json:"access_token"`
	RecruiterName string `json:"recruiter_name"`
}

// VerifyResetTokenResponse is the payload of GET /verify-reset-token/{token}.
type VerifyResetTokenResponse struct {
	Email string `json:"email"`
}

// MessageResponse is the generic success payload used by register,
// forgot-password and reset-password.
type MessageResponse struct {
	Message string `json:"message"`
}
