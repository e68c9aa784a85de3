package gui

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/hireova/screening-desk/internal/decision"
	"github.com/hireova/screening-desk/internal/evaluate"
	"github.com/hireova/screening-desk/internal/export"
	"github.com/hireova/screening-desk/internal/models"
)

// createEvaluateTab builds the batch evaluation screen: request fields and
// the staged file list on the left, results on the right.
func (a *App) createEvaluateTab() fyne.CanvasObject {
	jobDescEntry := widget.NewMultiLineEntry()
	jobDescEntry.SetPlaceHolder("Paste the job description here...")
	jobDescEntry.Wrapping = fyne.TextWrapWord

	hiringSelect := widget.NewSelect(models.HiringTypeOptions(), nil)
	hiringSelect.SetSelectedIndex(0)
	levelSelect := widget.NewSelect(models.LevelOptions(), nil)
	levelSelect.SetSelectedIndex(0)

	stagedBox := container.NewVBox()
	stagedCount := widget.NewLabel("No resumes staged")

	progressLabel := widget.NewLabel("")
	resultsTable, refreshResults := a.resultsTable()

	var submitBtn, exportBtn *widget.Button

	refreshStaged := func() {
		staged := a.batch.Staged()
		stagedBox.RemoveAll()
		for _, sf := range staged {
			id := sf.ID
			removeBtn := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
				a.batch.Unstage(id)
				a.refreshEvaluate()
			})
			row := container.NewBorder(nil, nil, nil, removeBtn,
				widget.NewLabel(sf.Name))
			stagedBox.Add(row)
		}
		if len(staged) == 0 {
			stagedCount.SetText("No resumes staged")
		} else {
			stagedCount.SetText(fmt.Sprintf("%d resume(s) staged", len(staged)))
		}
		stagedBox.Refresh()
	}

	addBtn := widget.NewButtonWithIcon("Add Resumes", theme.ContentAddIcon(), func() {
		fd := dialog.NewFileOpen(func(uc fyne.URIReadCloser, err error) {
			if err != nil || uc == nil {
				return
			}
			defer uc.Close()
			data, err := io.ReadAll(uc)
			if err != nil {
				dialog.ShowError(fmt.Errorf("failed to read %s: %w", uc.URI().Name(), err), a.mainWindow)
				return
			}
			a.batch.Stage(uc.URI().Name(), data)
			refreshStaged()
		}, a.mainWindow)
		fd.SetFilter(storage.NewExtensionFileFilter([]string{".pdf", ".docx"}))
		fd.Show()
	})

	submitBtn = widget.NewButtonWithIcon("Evaluate", theme.MailSendIcon(), func() {
		req := evaluate.Request{
			JobDescription: jobDescEntry.Text,
			HiringType:     models.HiringTypeCode(hiringSelect.Selected),
			Level:          models.LevelCode(levelSelect.Selected),
		}
		submitBtn.Disable()
		go func() {
			err := a.batch.Submit(context.Background(), req)
			fyne.Do(func() {
				submitBtn.Enable()
				progressLabel.SetText("")
				refreshStaged()
				refreshResults()
				if err != nil {
					a.showServiceError(err)
				}
			})
		}()
	})
	submitBtn.Importance = widget.HighImportance

	a.batch.SetProgressCallback(func(message string) {
		fyne.Do(func() {
			progressLabel.SetText(message)
		})
	})

	exportBtn = widget.NewButtonWithIcon("Export Results", theme.DocumentSaveIcon(), func() {
		a.exportResults(jobDescEntry.Text)
	})

	a.evaluateRefresh = func() {
		refreshStaged()
		refreshResults()
	}
	refreshStaged()
	refreshResults()

	left := container.NewVBox(
		widget.NewLabelWithStyle("Job Description", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewGridWrap(fyne.NewSize(380, 160), jobDescEntry),
		container.NewGridWithColumns(2, hiringSelect, levelSelect),
		container.NewBorder(nil, nil, addBtn, nil, stagedCount),
		stagedBox,
		submitBtn,
		progressLabel,
	)

	right := container.NewBorder(
		widget.NewLabelWithStyle("Results", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		exportBtn, nil, nil, resultsTable)

	return container.NewHSplit(container.NewVScroll(left), right)
}

// refreshEvaluate re-renders the staged list and results table in place.
func (a *App) refreshEvaluate() {
	if a.evaluateRefresh != nil {
		a.evaluateRefresh()
	}
}

// resultsTable renders the current evaluation results. Selecting a row opens
// the full report text.
func (a *App) resultsTable() (fyne.CanvasObject, func()) {
	headers := []string{"Resume", "Match %", "Decision"}
	var rows []models.EvaluationResult

	table := widget.NewTable(
		func() (int, int) { return len(rows) + 1, len(headers) },
		func() fyne.CanvasObject {
			lbl := widget.NewLabel("")
			lbl.Truncation = fyne.TextTruncateEllipsis
			return lbl
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			lbl := obj.(*widget.Label)
			lbl.TextStyle = fyne.TextStyle{}
			if id.Row == 0 {
				lbl.TextStyle = fyne.TextStyle{Bold: true}
				lbl.SetText(headers[id.Col])
				return
			}
			res := rows[id.Row-1]
			switch id.Col {
			case 0:
				lbl.SetText(res.Filename)
			case 1:
				if res.MatchPercent != nil {
					lbl.SetText(fmt.Sprintf("%.0f%%", *res.MatchPercent))
				} else {
					lbl.SetText("-")
				}
			case 2:
				verdict, _ := decision.Normalize(res)
				lbl.SetText(string(verdict))
			}
		},
	)
	table.SetColumnWidth(0, 260)
	table.SetColumnWidth(1, 90)
	table.SetColumnWidth(2, 120)

	table.OnSelected = func(id widget.TableCellID) {
		defer table.UnselectAll()
		if id.Row == 0 || id.Row-1 >= len(rows) {
			return
		}
		res := rows[id.Row-1]
		a.showResultDetails(res)
	}

	refresh := func() {
		rows = a.batch.Results()
		table.Refresh()
	}
	return table, refresh
}

func (a *App) showResultDetails(res models.EvaluationResult) {
	body := res.ResultText
	if body == "" {
		body = res.Error
	}
	if body == "" {
		body = "No details returned for this resume."
	}
	text := widget.NewLabel(body)
	text.Wrapping = fyne.TextWrapWord

	d := dialog.NewCustom(res.Filename, "Close",
		container.NewVScroll(text), a.mainWindow)
	d.Resize(fyne.NewSize(600, 500))
	d.Show()
}

func (a *App) exportResults(jobDescription string) {
	results := a.batch.Results()
	if len(results) == 0 {
		dialog.ShowError(fmt.Errorf("no results to export"), a.mainWindow)
		return
	}
	dialog.ShowFileSave(func(uc fyne.URIWriteCloser, err error) {
		if err != nil || uc == nil {
			return
		}
		outputPath := uc.URI().Path()
		uc.Close()
		if err := export.ExportResults(results, jobDescription, outputPath); err != nil {
			dialog.ShowError(fmt.Errorf("failed to export: %w", err), a.mainWindow)
			return
		}
		dialog.ShowInformation("Success", "Results exported to "+filepath.Base(outputPath), a.mainWindow)
	}, a.mainWindow)
}
