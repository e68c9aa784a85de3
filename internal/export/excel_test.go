package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/hireova/screening-desk/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func TestExportResults_AddsXlsxExtension(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "results")

	results := []models.EvaluationResult{
		{Filename: "a.pdf", MatchPercent: floatPtr(81), ResultText: "Match %: 81\nDecision: ✅ Shortlist"},
		{Filename: "b.pdf", Error: "Unsupported file type"},
	}
	require.NoError(t, ExportResults(results, "Build data pipelines", outputPath))

	_, err := os.Stat(outputPath + ".xlsx")
	assert.NoError(t, err)
}

func TestExportResults_Cells(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "results.xlsx")

	results := []models.EvaluationResult{
		{Filename: "a.pdf", MatchPercent: floatPtr(81), Decision: "Shortlist"},
		{Filename: "b.pdf"},
	}
	require.NoError(t, ExportResults(results, "JD", outputPath))

	f, err := excelize.OpenFile(outputPath)
	require.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue("Results", "A2")
	require.NoError(t, err)
	assert.Equal(t, "a.pdf", name)

	match, err := f.GetCellValue("Results", "B2")
	require.NoError(t, err)
	assert.Equal(t, "81%", match)

	verdict, err := f.GetCellValue("Results", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Shortlisted", verdict)

	// Absent match percent renders as "-", not 0%.
	match, err = f.GetCellValue("Results", "B3")
	require.NoError(t, err)
	assert.Equal(t, "-", match)
}

func TestExportSummary(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "summary.xlsx")

	rows := []models.RecruiterSummaryRow{
		{
			RecruiterName: "Asha",
			Uploads:       2,
			Resumes:       5,
			Shortlisted:   2,
			Rejected:      3,
			History: []models.HistoryEntry{
				{ResumeName: "a.pdf", HiringType: "2", Level: "1", MatchPercent: floatPtr(90), Decision: "Shortlisted", UploadDate: "2026-08-20", CountsPerDay: 4},
			},
		},
	}
	require.NoError(t, ExportSummary(rows, outputPath))

	f, err := excelize.OpenFile(outputPath)
	require.NoError(t, err)
	defer f.Close()

	recruiter, err := f.GetCellValue("MIS Summary", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Asha", recruiter)

	hiring, err := f.GetCellValue("History", "C2")
	require.NoError(t, err)
	assert.Equal(t, "IT", hiring)

	level, err := f.GetCellValue("History", "D2")
	require.NoError(t, err)
	assert.Equal(t, "Fresher", level)

	perDay, err := f.GetCellValue("History", "H2")
	require.NoError(t, err)
	assert.Equal(t, "4", perDay)
}
