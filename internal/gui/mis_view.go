package gui

import (
	"context"
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/hireova/screening-desk/internal/export"
	"github.com/hireova/screening-desk/internal/models"
)

// createSummaryTab builds the MIS screen: per-recruiter rollups with
// expandable history, plus the daily report lookup.
func (a *App) createSummaryTab() fyne.CanvasObject {
	rowsBox := container.NewVBox()
	statusLabel := widget.NewLabel("Press Refresh to load the summary")

	refresh := func() {
		rows := a.summary.Rows()
		rowsBox.RemoveAll()
		for _, row := range rows {
			rowsBox.Add(a.summaryRow(row))
		}
		if len(rows) > 0 {
			statusLabel.SetText(fmt.Sprintf("%d recruiter(s)", len(rows)))
		}
		rowsBox.Refresh()
	}
	a.summaryRefresh = refresh

	var refreshBtn *widget.Button
	refreshBtn = widget.NewButtonWithIcon("Refresh", theme.ViewRefreshIcon(), func() {
		refreshBtn.Disable()
		statusLabel.SetText("Loading summary...")
		go func() {
			err := a.summary.Fetch(context.Background())
			fyne.Do(func() {
				refreshBtn.Enable()
				if err != nil {
					statusLabel.SetText("")
					a.showServiceError(err)
					return
				}
				refresh()
			})
		}()
	})

	exportBtn := widget.NewButtonWithIcon("Export Summary", theme.DocumentSaveIcon(), func() {
		a.exportSummary()
	})

	reportBtn := widget.NewButtonWithIcon("Daily Report", theme.HistoryIcon(), func() {
		a.promptDailyReport()
	})

	toolbar := container.NewHBox(refreshBtn, exportBtn, reportBtn, statusLabel)
	return container.NewBorder(toolbar, nil, nil, nil, container.NewVScroll(rowsBox))
}

// summaryRow renders one recruiter rollup. The header toggles the history
// view; each history entry carries its own details toggle and, when the
// service stored the file, a preview action.
func (a *App) summaryRow(row models.RecruiterSummaryRow) fyne.CanvasObject {
	recruiter := row.RecruiterName
	expanded := a.summary.RowExpanded(recruiter)

	icon := theme.MenuExpandIcon()
	if expanded {
		icon = theme.MenuDropDownIcon()
	}
	header := widget.NewButtonWithIcon(
		fmt.Sprintf("%s — %d uploads, %d resumes, %d shortlisted, %d rejected",
			recruiter, row.Uploads, row.Resumes, row.Shortlisted, row.Rejected),
		icon, func() {
			a.summary.ToggleRow(recruiter)
			a.summaryRefresh()
		})
	header.Alignment = widget.ButtonAlignLeading

	if !expanded {
		return header
	}

	history := container.NewVBox()
	for i, entry := range row.History {
		history.Add(a.historyEntry(recruiter, i, entry))
	}
	if len(row.History) == 0 {
		history.Add(widget.NewLabel("No history for this recruiter"))
	}

	return container.NewVBox(header, container.NewPadded(history))
}

func (a *App) historyEntry(recruiter string, index int, entry models.HistoryEntry) fyne.CanvasObject {
	match := "-"
	if entry.MatchPercent != nil {
		match = fmt.Sprintf("%.0f%%", *entry.MatchPercent)
	}
	line := fmt.Sprintf("%s | %s / %s | %s | %s | %s (%d that day)",
		entry.ResumeName,
		models.HiringTypeLabel(entry.HiringType),
		models.LevelLabel(entry.Level),
		match, entry.Decision, entry.UploadDate, entry.CountsPerDay)

	detailsBtn := widget.NewButton("Details", func() {
		a.summary.ToggleEntry(recruiter, index)
		a.summaryRefresh()
	})

	actions := container.NewHBox(detailsBtn)
	if entry.FileID != "" {
		fileID := entry.FileID
		previewBtn := widget.NewButtonWithIcon("Preview", theme.FileIcon(), func() {
			a.openPreview(fileID, entry.ResumeName)
		})
		actions.Add(previewBtn)
	}

	head := container.NewBorder(nil, nil, nil, actions, widget.NewLabel(line))
	if !a.summary.EntryExpanded(recruiter, index) {
		return head
	}

	details := entry.Details
	if details == "" {
		details = "No evaluation details stored"
	}
	detailsLabel := widget.NewLabel(details)
	detailsLabel.Wrapping = fyne.TextWrapWord
	return container.NewVBox(head, container.NewPadded(detailsLabel))
}

func (a *App) exportSummary() {
	rows := a.summary.Rows()
	if len(rows) == 0 {
		dialog.ShowError(fmt.Errorf("no summary to export, refresh first"), a.mainWindow)
		return
	}
	dialog.ShowFileSave(func(uc fyne.URIWriteCloser, err error) {
		if err != nil || uc == nil {
			return
		}
		outputPath := uc.URI().Path()
		uc.Close()
		if err := export.ExportSummary(rows, outputPath); err != nil {
			dialog.ShowError(fmt.Errorf("failed to export: %w", err), a.mainWindow)
			return
		}
		dialog.ShowInformation("Success", "Summary exported to "+filepath.Base(outputPath), a.mainWindow)
	}, a.mainWindow)
}

// promptDailyReport asks for a date and shows that day's per-recruiter
// counts.
func (a *App) promptDailyReport() {
	dateEntry := widget.NewEntry()
	dateEntry.SetPlaceHolder("YYYY-MM-DD")

	dialog.ShowForm("Daily Report", "Fetch", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Date", dateEntry)},
		func(ok bool) {
			if !ok || dateEntry.Text == "" {
				return
			}
			date := dateEntry.Text
			go func() {
				reports, err := a.summary.DailyReport(context.Background(), date)
				fyne.Do(func() {
					if err != nil {
						a.showServiceError(err)
						return
					}
					a.showDailyReport(date, reports)
				})
			}()
		}, a.mainWindow)
}

func (a *App) showDailyReport(date string, reports []models.ReportRow) {
	if len(reports) == 0 {
		dialog.ShowInformation("Daily Report", "No activity on "+date, a.mainWindow)
		return
	}
	rows := container.NewVBox()
	for _, r := range reports {
		rows.Add(widget.NewLabel(fmt.Sprintf("%s — %d resumes, %d shortlisted, %d rejected",
			r.RecruiterName, r.TotalResumes, r.Shortlisted, r.Rejected)))
	}
	d := dialog.NewCustom("Daily Report "+date, "Close",
		container.NewVScroll(rows), a.mainWindow)
	d.Resize(fyne.NewSize(480, 360))
	d.Show()
}
