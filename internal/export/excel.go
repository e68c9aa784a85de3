// Package export writes evaluation results and MIS summaries to Excel files.
package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/hireova/screening-desk/internal/decision"
	"github.com/hireova/screening-desk/internal/models"
)

// ExportResults writes the current evaluation batch to an Excel file.
func ExportResults(results []models.EvaluationResult, jobDescription, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Results"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := headerStyle(f)
	if err != nil {
		return err
	}

	f.SetColWidth(sheet, "A", "A", 35)
	f.SetColWidth(sheet, "B", "C", 12)
	f.SetColWidth(sheet, "D", "D", 80)

	headers := []string{"Resume", "Match %", "Decision", "Details"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	f.SetCellStyle(sheet, "A1", "D1", headerStyle)

	for i, res := range results {
		row := i + 2
		verdict, _ := decision.Normalize(res)

		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), res.Filename)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), matchLabel(res.MatchPercent))
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), string(verdict))
		details := res.ResultText
		if details == "" {
			details = res.Error
		}
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), details)
	}

	// Job description on its own sheet so the results stay scannable.
	jdSheet := "Job Description"
	f.NewSheet(jdSheet)
	f.SetColWidth(jdSheet, "A", "A", 120)
	f.SetCellValue(jdSheet, "A1", "Job Description")
	f.SetCellStyle(jdSheet, "A1", "A1", headerStyle)
	f.SetCellValue(jdSheet, "A2", jobDescription)
	f.SetCellValue(jdSheet, "A4", "Generated: "+time.Now().Format("2006-01-02 15:04:05"))

	return save(f, outputPath)
}

// ExportSummary writes the MIS summary, one sheet of totals and one sheet of
// flattened history.
func ExportSummary(rows []models.RecruiterSummaryRow, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	hs, err := headerStyle(f)
	if err != nil {
		return err
	}

	sheet := "MIS Summary"
	f.SetSheetName("Sheet1", sheet)
	f.SetColWidth(sheet, "A", "A", 25)
	f.SetColWidth(sheet, "B", "E", 12)

	for i, h := range []string{"Recruiter", "Uploads", "Resumes", "Shortlisted", "Rejected"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	f.SetCellStyle(sheet, "A1", "E1", hs)

	for i, row := range rows {
		r := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", r), row.RecruiterName)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", r), row.Uploads)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", r), row.Resumes)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", r), row.Shortlisted)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", r), row.Rejected)
	}

	histSheet := "History"
	f.NewSheet(histSheet)
	f.SetColWidth(histSheet, "A", "B", 25)
	f.SetColWidth(histSheet, "C", "H", 14)

	for i, h := range []string{"Recruiter", "Resume", "Hiring Type", "Level", "Match %", "Decision", "Upload Date", "Per Day"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(histSheet, cell, h)
	}
	f.SetCellStyle(histSheet, "A1", "H1", hs)

	r := 2
	for _, row := range rows {
		for _, entry := range row.History {
			verdict, _ := decision.FromHistory(entry)
			f.SetCellValue(histSheet, fmt.Sprintf("A%d", r), row.RecruiterName)
			f.SetCellValue(histSheet, fmt.Sprintf("B%d", r), entry.ResumeName)
			f.SetCellValue(histSheet, fmt.Sprintf("C%d", r), models.HiringTypeLabel(entry.HiringType))
			f.SetCellValue(histSheet, fmt.Sprintf("D%d", r), models.LevelLabel(entry.Level))
			f.SetCellValue(histSheet, fmt.Sprintf("E%d", r), matchLabel(entry.MatchPercent))
			f.SetCellValue(histSheet, fmt.Sprintf("F%d", r), string(verdict))
			f.SetCellValue(histSheet, fmt.Sprintf("G%d", r), entry.UploadDate)
			f.SetCellValue(histSheet, fmt.Sprintf("H%d", r), entry.CountsPerDay)
			r++
		}
	}

	return save(f, outputPath)
}

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
}

// matchLabel renders an absent match percentage as "-", never 0%.
func matchLabel(p *float64) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", *p)
}

// save writes the workbook, ensuring an .xlsx extension and falling back to a
// buffered write when a direct save fails.
func save(f *excelize.File, outputPath string) error {
	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath = outputPath + ".xlsx"
	}
	outputPath = filepath.Clean(outputPath)

	if err := f.SaveAs(outputPath); err != nil {
		var buf bytes.Buffer
		if writeErr := f.Write(&buf); writeErr != nil {
			return fmt.Errorf("failed to save Excel file: direct save failed (%v), buffer write also failed: %w", err, writeErr)
		}
		if fileErr := os.WriteFile(outputPath, buf.Bytes(), 0644); fileErr != nil {
			return fmt.Errorf("failed to save Excel file: direct save failed (%v), file write failed: %w", err, fileErr)
		}
	}
	return nil
}
