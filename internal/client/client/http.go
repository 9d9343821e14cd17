package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/smartmeet/internal/client/models"
	"github.com/dmitrijs2005/smartmeet/internal/common"
	"github.com/dmitrijs2005/smartmeet/internal/logging"
)

const (
	userAgent       = "smartmeet-cli/1.0"
	requestIDHeader = "X-Request-ID"
	maxErrorBody    = 64 << 10
)

// HTTPClient talks to the smartmeet backend over HTTP/JSON.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient returns a client for the backend at baseURL. A missing scheme
// defaults to http. timeout bounds each request; zero means no limit.
func NewHTTPClient(baseURL string, timeout time.Duration, logger logging.Logger) *HTTPClient {
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// BaseURL returns the normalized backend address.
func (c *HTTPClient) BaseURL() string { return c.baseURL }

// Login posts the form fields username and password.
func (c *HTTPClient) Login(ctx context.Context, identifier, secret string) (*models.LoginResponse, error) {
	form := url.Values{}
	form.Set("username", identifier)
	form.Set("password", secret)

	var out models.LoginResponse
	if err := c.doForm(ctx, http.MethodPost, "/api/auth/login", "", form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Register(ctx context.Context, reg models.Registration) (*models.User, error) {
	var out models.User
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", "", reg, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the user the token belongs to.
func (c *HTTPClient) Me(ctx context.Context, token string) (*models.User, error) {
	var out models.User
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/me", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Ping checks that the backend answers its health endpoint.
func (c *HTTPClient) Ping(ctx context.Context) error {
	var out struct {
		Status string `json:"status"`
	}
	return c.doJSON(ctx, http.MethodGet, "/health", "", nil, &out)
}

func (c *HTTPClient) ListMeetings(ctx context.Context, token string, skip, limit int) ([]models.Meeting, error) {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))

	var out []models.Meeting
	if err := c.doJSON(ctx, http.MethodGet, "/api/meetings/?"+q.Encode(), token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetMeeting(ctx context.Context, token, id string) (*models.Meeting, error) {
	var out models.Meeting
	if err := c.doJSON(ctx, http.MethodGet, "/api/meetings/"+url.PathEscape(id), token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateMeeting posts a meeting without an audio file.
func (c *HTTPClient) CreateMeeting(ctx context.Context, token string, m models.MeetingCreate) (*models.Meeting, error) {
	form := url.Values{}
	form.Set("title", m.Title)
	if m.Description != "" {
		form.Set("description", m.Description)
	}

	var out models.Meeting
	if err := c.doForm(ctx, http.MethodPost, "/api/meetings/", token, form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListActionItems lists the caller's action items. An empty status lists all.
func (c *HTTPClient) ListActionItems(ctx context.Context, token string, status models.TaskStatus, skip, limit int) ([]models.ActionItem, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", string(status))
	}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))

	var out []models.ActionItem
	if err := c.doJSON(ctx, http.MethodGet, "/api/tasks/?"+q.Encode(), token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) ListMeetingActionItems(ctx context.Context, token, meetingID string) ([]models.ActionItem, error) {
	var out []models.ActionItem
	path := "/api/tasks/meeting/" + url.PathEscape(meetingID)
	if err := c.doJSON(ctx, http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path, token string, body, target any) error {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		r = bytes.NewReader(data)
	}
	req, err := c.newRequest(ctx, method, path, token, r)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, target)
}

func (c *HTTPClient) doForm(ctx context.Context, method, path, token string, form url.Values, target any) error {
	req, err := c.newRequest(ctx, method, path, token, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, target)
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path, token string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set(requestIDHeader, uuid.NewString())
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerScheme+" "+token)
	}
	return req, nil
}

func (c *HTTPClient) do(req *http.Request, target any) error {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return ctxErr
		}
		c.logger.Debug(req.Context(), "request failed", "method", req.Method, "path", req.URL.Path, "err", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.logger.Debug(req.Context(), "request done",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"request_id", req.Header.Get(requestIDHeader),
		"elapsed", time.Since(start),
	)

	return parseResponse(resp, target)
}

// parseResponse decodes a successful body into target or turns an error
// status into an *APIError.
func parseResponse(resp *http.Response, target any) error {
	if resp.StatusCode >= http.StatusBadRequest {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{StatusCode: resp.StatusCode, Detail: errorDetail(raw)}
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorDetail extracts the "detail" field of an error body. String details
// are returned unquoted; anything else is returned as raw JSON.
func errorDetail(raw []byte) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(body.Detail, &s); err == nil {
		return s
	}
	return string(body.Detail)
}

// IsUnavailable reports whether err means the backend could not be reached.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
