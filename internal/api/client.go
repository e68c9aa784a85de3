// Package api is the typed HTTP client for the remote screening service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hireova/screening-desk/internal/models"
)

// TokenProvider supplies the bearer token attached to authenticated requests.
// An empty token means no Authorization header is sent.
type TokenProvider interface {
	Token() string
}

// Client talks to the screening service. All methods take a context and
// return the service's declared error detail on failure.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenProvider
}

// Config holds the configuration for the service client.
type Config struct {
	BaseURL string
	Tokens  TokenProvider
	Timeout time.Duration
}

// NewClient creates a new service client with the provided configuration.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		// Batch evaluation waits on the service's model calls.
		timeout = 5 * time.Minute
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		tokens:     cfg.Tokens,
	}
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, username, password string) (models.LoginResponse, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login",
		strings.NewReader(form.Encode()))
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("failed to build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var resp models.LoginResponse
	if err := c.do(req, &resp); err != nil {
		return models.LoginResponse{}, err
	}
	return resp, nil
}

// Register creates a new recruiter account.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	return c.postJSON(ctx, "/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, nil)
}

// ForgotPassword requests a password-reset mail. The service answers with the
// same generic message whether or not the address exists.
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	var resp models.MessageResponse
	if err := c.postJSON(ctx, "/forgot-password", map[string]string{"email": email}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// VerifyResetToken checks a recovery token and returns the account email it
// belongs to.
func (c *Client) VerifyResetToken(ctx context.Context, token string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/verify-reset-token/"+url.PathEscape(token), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build verify request: %w", err)
	}

	var resp models.VerifyResetTokenResponse
	if err := c.do(req, &resp); err != nil {
		return "", err
	}
	return resp.Email, nil
}

// ResetPassword consumes a recovery token and sets a new password.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	return c.postJSON(ctx, "/reset-password", map[string]string{
		"token":        token,
		"new_password": newPassword,
	}, nil)
}

// Upload is one file of an evaluation batch.
type Upload struct {
	Name string
	Data []byte
}

// AnalyzeResumes submits a job description and a batch of resume files for
// evaluation. Results come back in submission order, one per file.
func (c *Client) AnalyzeResumes(ctx context.Context, jobDescription, hiringType, level string, files []Upload) ([]models.EvaluationResult, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if err := mw.WriteField("job_description", jobDescription); err != nil {
		return nil, fmt.Errorf("failed to write form field: %w", err)
	}
	if err := mw.WriteField("hiring_type", hiringType); err != nil {
		return nil, fmt.Errorf("failed to write form field: %w", err)
	}
	if err := mw.WriteField("level", level); err != nil {
		return nil, fmt.Errorf("failed to write form field: %w", err)
	}
	for _, f := range files {
		part, err := mw.CreateFormFile("files", f.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to create form file %s: %w", f.Name, err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, fmt.Errorf("failed to write form file %s: %w", f.Name, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze-resumes/", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build evaluation request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var resp models.EvaluationResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// MISSummary fetches the full recruiter activity rollup.
func (c *Client) MISSummary(ctx context.Context) ([]models.RecruiterSummaryRow, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/mis-summary", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build summary request: %w", err)
	}

	var resp models.MISSummaryResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return resp.Summary, nil
}

// DailyReport fetches the per-recruiter totals for one date (YYYY-MM-DD).
func (c *Client) DailyReport(ctx context.Context, date string) ([]models.ReportRow, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/reports/"+url.PathEscape(date), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build report request: %w", err)
	}

	var resp models.ReportResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return resp.Reports, nil
}

// ViewResume fetches the encoded payload of a stored resume for preview.
func (c *Client) ViewResume(ctx context.Context, fileID string) (models.ResumeFile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/view-resume/"+url.PathEscape(fileID), nil)
	if err != nil {
		return models.ResumeFile{}, fmt.Errorf("failed to build view request: %w", err)
	}

	var resp models.ResumeFile
	if err := c.do(req, &resp); err != nil {
		return models.ResumeFile{}, err
	}
	return resp, nil
}

// DownloadResume streams a stored resume into dst and reports the byte count.
func (c *Client) DownloadResume(ctx context.Context, fileID string, dst io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/download-resume/"+url.PathEscape(fileID), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build download request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, decodeError(resp)
	}

	n, err := io.Copy(dst, resp.Body)
	if err != nil {
		return n, fmt.Errorf("failed to stream file: %w", err)
	}
	return n, nil
}

// postJSON sends a JSON body and optionally decodes a JSON response into out.
func (c *Client) postJSON(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

// do attaches the bearer token, executes the request and decodes the JSON
// response into out when out is non-nil.
func (c *Client) do(req *http.Request, out any) error {
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.tokens == nil {
		return
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}
