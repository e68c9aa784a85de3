// Package preview fetches a stored resume's encoded payload and turns it
// into something the client can render, owning the lifetime of any local
// resource it creates along the way.
package preview

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/ledongthuc/pdf"

	"github.com/hireova/screening-desk/internal/logger"
	"github.com/hireova/screening-desk/internal/models"
)

// Phase is the preview state machine position.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseFailed
)

// Kind says how a ready preview is rendered.
type Kind int

const (
	// KindPDF renders extracted text inline and offers the decoded temp
	// file for external viewing.
	KindPDF Kind = iota
	// KindImage renders directly from the decoded bytes; no resource
	// handle exists.
	KindImage
	// KindOther shows metadata only and relies on download.
	KindOther
)

// Preview is an observable snapshot of the controller.
type Preview struct {
	Phase       Phase
	FileID      string
	ContentType string
	Size        int64
	Kind        Kind

	// PDF fields. FilePath is the renderable handle: a temp file owned by
	// the controller and removed on close or supersession.
	FilePath  string
	PageCount int
	Text      string

	// Image bytes, decoded, for direct rendering.
	ImageData []byte

	Err string
}

// Service is the slice of the API client the controller needs.
type Service interface {
	ViewResume(ctx context.Context, fileID string) (models.ResumeFile, error)
	DownloadResume(ctx context.Context, fileID string, dst io.Writer) (int64, error)
}

// Controller drives one preview pane. A new Open supersedes any prior or
// in-flight preview: the stale response is discarded and the stale resource
// released, so the pane only ever reflects the most recent request.
type Controller struct {
	mu       sync.Mutex
	svc      Service
	gen      uint64
	cur      Preview
	onChange func(Preview)
}

// NewController creates a preview controller over the given service.
func NewController(svc Service) *Controller {
	return &Controller{svc: svc}
}

// OnChange registers a listener notified after every state change.
func (c *Controller) OnChange(fn func(Preview)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// Current returns the current snapshot.
func (c *Controller) Current() Preview {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cur
}

// Open fetches and decodes the file behind fileID. It blocks until the
// preview is ready or failed, so callers run it off the UI thread. A
// concurrent Open for another file wins by generation: whichever call is
// newest owns the pane, and older results are dropped on arrival.
func (c *Controller) Open(ctx context.Context, fileID string) {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.releaseLocked()
	c.cur = Preview{Phase: PhaseLoading, FileID: fileID}
	listener, snapshot := c.onChange, c.cur
	c.mu.Unlock()
	notify(listener, snapshot)

	file, err := c.svc.ViewResume(ctx, fileID)
	if err != nil {
		c.apply(gen, Preview{Phase: PhaseFailed, FileID: fileID, Err: err.Error()}, "")
		return
	}

	next, tempPath, err := build(fileID, file)
	if err != nil {
		c.apply(gen, Preview{Phase: PhaseFailed, FileID: fileID, Err: err.Error()}, "")
		return
	}
	c.apply(gen, next, tempPath)
}

// apply installs a fetched preview unless a newer Open superseded it, in
// which case any resource built for the stale response is released instead.
func (c *Controller) apply(gen uint64, next Preview, tempPath string) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		if tempPath != "" {
			removeTemp(tempPath)
		}
		return
	}
	c.cur = next
	listener, snapshot := c.onChange, c.cur
	c.mu.Unlock()
	notify(listener, snapshot)
}

// Close releases any held resource and returns to PhaseIdle. Safe to call at any
// time, including as the teardown hook when the enclosing window goes away.
func (c *Controller) Close() {
	c.mu.Lock()
	c.gen++ // in-flight opens become stale
	c.releaseLocked()
	c.cur = Preview{Phase: PhaseIdle}
	listener, snapshot := c.onChange, c.cur
	c.mu.Unlock()
	notify(listener, snapshot)
}

// Download streams the raw file to dstPath, independent of the preview
// state. A partial file is removed on failure.
func (c *Controller) Download(ctx context.Context, fileID, dstPath string) error {
	f, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dstPath, err)
	}

	if _, err := c.svc.DownloadResume(ctx, fileID, f); err != nil {
		f.Close()
		os.Remove(dstPath)
		return fmt.Errorf("download failed: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to finish writing %s: %w", dstPath, err)
	}
	return nil
}

// releaseLocked removes the current renderable handle, if any. Callers hold
// the mutex.
func (c *Controller) releaseLocked() {
	if c.cur.FilePath != "" {
		removeTemp(c.cur.FilePath)
		c.cur.FilePath = ""
	}
}

func notify(listener func(Preview), snapshot Preview) {
	if listener != nil {
		listener(snapshot)
	}
}

func removeTemp(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Get().Warn().Err(err).Str("path", path).Msg("could not remove preview temp file")
	}
}

// build decodes the payload and prepares the render form for its content
// type. Only the PDF branch creates a resource that needs releasing; its
// temp path is returned separately so a superseded build can be cleaned up.
func build(fileID string, file models.ResumeFile) (Preview, string, error) {
	next := Preview{
		Phase:       PhaseReady,
		FileID:      fileID,
		ContentType: file.ContentType,
		Size:        file.Size,
	}

	switch {
	case file.ContentType == "application/pdf":
		raw, err := base64.StdEncoding.DecodeString(file.Content)
		if err != nil {
			return Preview{}, "", fmt.Errorf("failed to decode file payload: %w", err)
		}
		tmp, err := os.CreateTemp("", "screendesk-preview-*.pdf")
		if err != nil {
			return Preview{}, "", fmt.Errorf("failed to create preview file: %w", err)
		}
		if _, err := tmp.Write(raw); err != nil {
			tmp.Close()
			removeTemp(tmp.Name())
			return Preview{}, "", fmt.Errorf("failed to write preview file: %w", err)
		}
		if err := tmp.Close(); err != nil {
			removeTemp(tmp.Name())
			return Preview{}, "", fmt.Errorf("failed to write preview file: %w", err)
		}

		next.Kind = KindPDF
		next.FilePath = tmp.Name()
		next.PageCount, next.Text = extractPDFText(raw)
		return next, tmp.Name(), nil

	case strings.HasPrefix(file.ContentType, "image/"):
		raw, err := base64.StdEncoding.DecodeString(file.Content)
		if err != nil {
			return Preview{}, "", fmt.Errorf("failed to decode file payload: %w", err)
		}
		next.Kind = KindImage
		next.ImageData = raw
		return next, "", nil

	default:
		next.Kind = KindOther
		return next, "", nil
	}
}

// extractPDFText pulls plain text out of the decoded PDF for the inline
// pane. Extraction is best-effort: pages that fail are skipped, and a
// document that cannot be parsed at all previews with no text.
func extractPDFText(raw []byte) (int, string) {
	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		logger.Get().Warn().Err(err).Msg("could not parse PDF for inline preview")
		return 0, ""
	}

	var sb strings.Builder
	total := reader.NumPage()
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n\n")
	}
	return total, sb.String()
}
