// Package evaluate manages one evaluation batch: staging resume files,
// submitting them with a job description, and holding the returned results.
package evaluate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/hireova/screening-desk/internal/api"
	"github.com/hireova/screening-desk/internal/logger"
	"github.com/hireova/screening-desk/internal/models"
)

// Validation failures, raised locally before any network call.
var (
	ErrNoJobDescription = errors.New("job description must not be empty")
	ErrNoFiles          = errors.New("no resumes staged for evaluation")
	ErrInFlight         = errors.New("an evaluation is already in progress")
)

// StagedFile is one selected-but-not-yet-submitted resume. ID is a stable
// synthetic identity assigned at stage time, so removal addresses the entry
// itself and not a position that may have shifted.
type StagedFile struct {
	ID   string
	Name string
	Data []byte
}

// Request is the evaluation submission. HiringType and Level carry the
// service's numeric codes.
type Request struct {
	JobDescription string
	HiringType     string
	Level          string
}

// Service is the slice of the API client the controller needs.
type Service interface {
	AnalyzeResumes(ctx context.Context, jobDescription, hiringType, level string, files []api.Upload) ([]models.EvaluationResult, error)
}

// ProgressCallback is called to report submission progress for the status
// line.
type ProgressCallback func(message string)

// Controller owns the staged file set and the most recent result set.
// Submissions are single-flight per controller.
type Controller struct {
	mu         sync.Mutex
	svc        Service
	staged     []StagedFile
	results    []models.EvaluationResult
	busy       bool
	progressCb ProgressCallback
}

// NewController creates a batch controller over the given service.
func NewController(svc Service) *Controller {
	return &Controller{svc: svc}
}

// SetProgressCallback sets the progress callback function.
func (c *Controller) SetProgressCallback(cb ProgressCallback) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.progressCb = cb
}

func (c *Controller) reportProgress(message string) {
	c.mu.Lock()
	cb := c.progressCb
	c.mu.Unlock()
	if cb != nil {
		cb(message)
	}
}

// Stage appends one file to the batch in insertion order. Duplicate names are
// kept: two files may legitimately share a name.
func (c *Controller) Stage(name string, data []byte) StagedFile {
	f := StagedFile{ID: uuid.NewString(), Name: name, Data: data}

	c.mu.Lock()
	c.staged = append(c.staged, f)
	c.mu.Unlock()
	return f
}

// StageFromPaths reads files from disk and stages them in the given order.
// It stops at the first unreadable file, staging nothing from it onward.
func (c *Controller) StageFromPaths(paths ...string) error {
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}
		c.Stage(filepath.Base(p), data)
	}
	return nil
}

// Unstage removes the entry with the given identity. Sibling order is
// preserved. It reports whether an entry was removed.
func (c *Controller) Unstage(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, f := range c.staged {
		if f.ID == id {
			c.staged = append(c.staged[:i], c.staged[i+1:]...)
			return true
		}
	}
	return false
}

// Staged returns a copy of the staged set in insertion order.
func (c *Controller) Staged() []StagedFile {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]StagedFile, len(c.staged))
	copy(out, c.staged)
	return out
}

// Results returns a copy of the most recent result set in service order.
func (c *Controller) Results() []models.EvaluationResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.EvaluationResult, len(c.results))
	copy(out, c.results)
	return out
}

// Busy reports whether a submission is in flight.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Submit sends the staged batch for evaluation. On success the result set is
// replaced and the staged set cleared, so the next evaluation starts empty.
// On failure the staged set is kept for retry and any previous results are
// dropped.
func (c *Controller) Submit(ctx context.Context, req Request) error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ErrInFlight
	}
	if req.JobDescription == "" {
		c.mu.Unlock()
		return ErrNoJobDescription
	}
	if len(c.staged) == 0 {
		c.mu.Unlock()
		return ErrNoFiles
	}
	c.busy = true
	uploads := make([]api.Upload, len(c.staged))
	for i, f := range c.staged {
		uploads[i] = api.Upload{Name: f.Name, Data: f.Data}
	}
	c.mu.Unlock()

	c.reportProgress(fmt.Sprintf("Evaluating %d resumes...", len(uploads)))

	results, err := c.svc.AnalyzeResumes(ctx, req.JobDescription, req.HiringType, req.Level, uploads)

	c.mu.Lock()
	c.busy = false
	if err != nil {
		// Staged files survive a failed submission so the user can retry
		// without re-choosing them.
		c.results = nil
		c.mu.Unlock()
		c.reportProgress("Evaluation failed")
		return err
	}
	c.results = results
	c.staged = nil
	c.mu.Unlock()

	if len(results) != len(uploads) {
		logger.Get().Warn().
			Int("submitted", len(uploads)).
			Int("returned", len(results)).
			Msg("result count does not match submission count")
	}
	c.reportProgress(fmt.Sprintf("Evaluated %d resumes", len(results)))
	return nil
}

// Reset drops staged files and results. Called on logout so one recruiter's
// batch never survives into another's session.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.staged = nil
	c.results = nil
}
