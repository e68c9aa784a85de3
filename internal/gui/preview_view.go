package gui

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/hireova/screening-desk/internal/preview"
)

// openPreview opens the document viewer for one stored resume. The dialog is
// driven by the preview controller: opening another document or closing the
// dialog releases whatever resource the previous preview held.
func (a *App) openPreview(fileID, resumeName string) {
	body := container.NewStack(container.NewCenter(container.NewVBox(
		widget.NewLabel("Loading "+resumeName+"..."),
		widget.NewProgressBarInfinite(),
	)))

	d := dialog.NewCustom(resumeName, "Close", body, a.mainWindow)
	d.Resize(fyne.NewSize(720, 560))
	d.SetOnClosed(func() {
		a.previews.Close()
	})

	a.previews.OnChange(func(p preview.Preview) {
		fyne.Do(func() {
			if p.FileID != fileID {
				return
			}
			switch p.Phase {
			case preview.PhaseReady:
				body.RemoveAll()
				body.Add(a.previewContent(p, resumeName))
				body.Refresh()
			case preview.PhaseFailed:
				errLabel := widget.NewLabel("Could not load preview: " + p.Err)
				errLabel.Wrapping = fyne.TextWrapWord
				errLabel.Importance = widget.DangerImportance
				body.RemoveAll()
				body.Add(container.NewCenter(errLabel))
				body.Refresh()
			}
		})
	})

	d.Show()
	go a.previews.Open(context.Background(), fileID)
}

func (a *App) previewContent(p preview.Preview, resumeName string) fyne.CanvasObject {
	meta := widget.NewLabel(fmt.Sprintf("%s • %d bytes", p.ContentType, p.Size))
	downloadBtn := widget.NewButtonWithIcon("Download", theme.DownloadIcon(), func() {
		a.downloadResume(p.FileID, resumeName)
	})
	footer := container.NewBorder(nil, nil, meta, downloadBtn)

	switch p.Kind {
	case preview.KindPDF:
		text := widget.NewLabel(p.Text)
		text.Wrapping = fyne.TextWrapWord
		if p.Text == "" {
			text.SetText("No extractable text in this PDF.")
		}
		pages := widget.NewLabel(fmt.Sprintf("%d page(s)", p.PageCount))

		filePath := p.FilePath
		openBtn := widget.NewButtonWithIcon("Open externally", theme.DocumentIcon(), func() {
			if err := a.fyneApp.OpenURL(&url.URL{Scheme: "file", Path: filePath}); err != nil {
				dialog.ShowError(fmt.Errorf("failed to open PDF: %w", err), a.mainWindow)
			}
		})
		top := container.NewBorder(nil, nil, pages, openBtn)
		return container.NewBorder(top, footer, nil, nil, container.NewVScroll(text))

	case preview.KindImage:
		img := canvas.NewImageFromReader(bytes.NewReader(p.ImageData), resumeName)
		img.FillMode = canvas.ImageFillContain
		return container.NewBorder(nil, footer, nil, nil, img)

	default:
		note := widget.NewLabel("No inline preview for this file type. Use Download to save it locally.")
		note.Wrapping = fyne.TextWrapWord
		return container.NewBorder(nil, footer, nil, nil, container.NewCenter(note))
	}
}

// downloadResume streams the original file to a user-chosen path.
func (a *App) downloadResume(fileID, resumeName string) {
	d := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
		if err != nil || uc == nil {
			return
		}
		dstPath := uc.URI().Path()
		uc.Close()
		go func() {
			err := a.previews.Download(context.Background(), fileID, dstPath)
			fyne.Do(func() {
				if err != nil {
					if a.workflow.SessionExpired(err) {
						return
					}
					dialog.ShowError(fmt.Errorf("download failed: %w", err), a.mainWindow)
					return
				}
				dialog.ShowInformation("Success",
					"Saved to "+filepath.Base(dstPath), a.mainWindow)
			})
		}()
	}, a.mainWindow)
	d.SetFileName(resumeName)
	if a.config.DownloadsDir != "" {
		if lister, err := storage.ListerForURI(storage.NewFileURI(a.config.DownloadsDir)); err == nil {
			d.SetLocation(lister)
		}
	}
	d.Show()
}
