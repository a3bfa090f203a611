package backend

import (
	"activitydash/internal/models"
	"activitydash/internal/providers"
	"activitydash/internal/structures"
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

const maxResponseSize = 4 << 20 // 4 MB

type ClientInterface interface {
	Me(ctx context.Context, s Session) (*models.User, error)
	Profiles(ctx context.Context, s Session) ([]models.Profile, error)
	Posts(ctx context.Context, s Session, limit int) ([]models.Post, error)
	Notifications(ctx context.Context, s Session, limit int) ([]models.Notification, error)
	UnreadCount(ctx context.Context, s Session) (int, error)
	EmailSettings(ctx context.Context, s Session) (*models.EmailSettings, error)
	LinkedInSettings(ctx context.Context, s Session) (*models.LinkedInSettings, error)
	Health(ctx context.Context) (*models.Health, error)

	CreateProfile(ctx context.Context, s Session, input models.ProfileInput) (*models.Profile, error)
	DeleteProfile(ctx context.Context, s Session, id int64) error
	UploadCSV(ctx context.Context, s Session, filename string, file io.Reader) (*models.UploadResult, error)
	MarkRead(ctx context.Context, s Session, id int64) error
	MarkAllRead(ctx context.Context, s Session) error
	SaveEmailSettings(ctx context.Context, s Session, settings models.EmailSettings) error
	TriggerJob(ctx context.Context, s Session) (*models.Message, error)
}

type Client struct {
	baseURL    string
	cookieName string
	timeout    time.Duration
	jobTimeout time.Duration
	httpClient *http.Client
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
}

func NewClient(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) ClientInterface {
	return &Client{
		baseURL:    strings.TrimRight(conf.Backend.BaseURL, "/"),
		cookieName: conf.Backend.SessionCookie,
		timeout:    conf.Backend.Timeout,
		jobTimeout: conf.Backend.JobTimeout,
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     60 * time.Second,
			},
		},
		logger:  logger,
		metrics: metrics,
	}
}

type request struct {
	resource    string
	method      string
	path        string
	body        io.Reader
	contentType string
	timeout     time.Duration
}

// do performs one backend round trip and returns the status and body. A
// transport failure is reported as status 0 with a non-nil error.
func (c *Client) do(ctx context.Context, s Session, req request) (int, []byte, error) {
	timeout := req.timeout
	if timeout <= 0 {
		timeout = c.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, req.body)
	if err != nil {
		return 0, nil, err
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	if s.Token != "" {
		httpReq.AddCookie(&http.Cookie{Name: c.cookieName, Value: s.Token})
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	c.metrics.ObserveBackendDuration(req.resource, time.Since(start))
	if err != nil {
		c.metrics.IncBackendCalls(req.resource, 0)
		c.logger.Errorf(providers.TypeBackend, "%s %s failed: %s", req.method, req.path, err)
		return 0, nil, err
	}
	defer resp.Body.Close()
	c.metrics.IncBackendCalls(req.resource, resp.StatusCode)

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		c.logger.Errorf(providers.TypeBackend, "%s %s: reading body: %s", req.method, req.path, err)
		return resp.StatusCode, nil, err
	}
	c.logger.Debugf(providers.TypeBackend, "%s %s -> %d (%d bytes)", req.method, req.path, resp.StatusCode, len(data))
	return resp.StatusCode, data, nil
}

// read fetches a resource and decodes it into out. Every failure becomes a
// LoadError.
func (c *Client) read(ctx context.Context, s Session, resource, path string) ([]byte, error) {
	status, data, err := c.do(ctx, s, request{resource: resource, method: http.MethodGet, path: path})
	if err != nil {
		return nil, &LoadError{Resource: resource, Err: err}
	}
	if status < 200 || status >= 300 {
		return nil, &LoadError{Resource: resource, Err: apiError(status, data)}
	}
	return data, nil
}

func (c *Client) readObject(ctx context.Context, s Session, resource, path string, out any) error {
	data, err := c.read(ctx, s, resource, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &LoadError{Resource: resource, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}

// send performs a mutation. Non-2xx answers become APIError; transport
// failures are returned wrapped.
func (c *Client) send(ctx context.Context, s Session, req request, out any) error {
	status, data, err := c.do(ctx, s, req)
	if err != nil {
		return fmt.Errorf("%s: %w", req.resource, err)
	}
	if status < 200 || status >= 300 {
		return apiError(status, data)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: decode: %w", req.resource, err)
	}
	return nil
}

// apiError extracts the detail string. Validation failures carry a list in
// detail, which is not user-facing and is dropped.
func apiError(status int, body []byte) *APIError {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	apiErr := &APIError{Status: status}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return apiErr
	}
	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err == nil {
		apiErr.Detail = detail
	}
	return apiErr
}

// decodeRecords decodes a JSON array one element at a time so that a single
// malformed record is dropped instead of failing the whole collection.
func decodeRecords[T any](logger providers.Logger, resource string, data []byte) ([]T, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &LoadError{Resource: resource, Err: fmt.Errorf("decode: %w", err)}
	}
	records := make([]T, 0, len(raw))
	for i, item := range raw {
		var record T
		if err := json.Unmarshal(item, &record); err != nil {
			logger.Warnf(providers.TypeBackend, "Dropping %s record #%d: %s", resource, i, err)
			continue
		}
		if err := models.ValidateRecord(&record); err != nil {
			logger.Warnf(providers.TypeBackend, "Dropping %s record #%d: %s", resource, i, err)
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func (c *Client) Me(ctx context.Context, s Session) (*models.User, error) {
	status, data, err := c.do(ctx, s, request{resource: "me", method: http.MethodGet, path: "/api/me"})
	if err != nil {
		return nil, &LoadError{Resource: "me", Err: err}
	}
	if status == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}
	if status < 200 || status >= 300 {
		return nil, &LoadError{Resource: "me", Err: apiError(status, data)}
	}
	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, &LoadError{Resource: "me", Err: fmt.Errorf("decode: %w", err)}
	}
	return &user, nil
}

func (c *Client) Profiles(ctx context.Context, s Session) ([]models.Profile, error) {
	data, err := c.read(ctx, s, "profiles", "/profiles")
	if err != nil {
		return nil, err
	}
	return decodeRecords[models.Profile](c.logger, "profiles", data)
}

func (c *Client) Posts(ctx context.Context, s Session, limit int) ([]models.Post, error) {
	data, err := c.read(ctx, s, "posts", "/posts?limit="+strconv.Itoa(limit))
	if err != nil {
		return nil, err
	}
	return decodeRecords[models.Post](c.logger, "posts", data)
}

func (c *Client) Notifications(ctx context.Context, s Session, limit int) ([]models.Notification, error) {
	data, err := c.read(ctx, s, "notifications", "/notifications?limit="+strconv.Itoa(limit))
	if err != nil {
		return nil, err
	}
	return decodeRecords[models.Notification](c.logger, "notifications", data)
}

func (c *Client) UnreadCount(ctx context.Context, s Session) (int, error) {
	var out models.UnreadCount
	if err := c.readObject(ctx, s, "unread-count", "/notifications/unread-count", &out); err != nil {
		return 0, err
	}
	if err := models.ValidateRecord(&out); err != nil {
		return 0, &LoadError{Resource: "unread-count", Err: err}
	}
	return out.Count, nil
}

func (c *Client) EmailSettings(ctx context.Context, s Session) (*models.EmailSettings, error) {
	var out models.EmailSettings
	if err := c.readObject(ctx, s, "email-settings", "/settings/email", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) LinkedInSettings(ctx context.Context, s Session) (*models.LinkedInSettings, error) {
	var out models.LinkedInSettings
	if err := c.readObject(ctx, s, "linkedin-settings", "/settings/linkedin", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Health(ctx context.Context) (*models.Health, error) {
	var out models.Health
	if err := c.readObject(ctx, Session{}, "health", "/health", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProfile(ctx context.Context, s Session, input models.ProfileInput) (*models.Profile, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}
	var out models.Profile
	err = c.send(ctx, s, request{
		resource:    "create-profile",
		method:      http.MethodPost,
		path:        "/profiles",
		body:        bytes.NewReader(body),
		contentType: "application/json",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProfile(ctx context.Context, s Session, id int64) error {
	return c.send(ctx, s, request{
		resource: "delete-profile",
		method:   http.MethodDelete,
		path:     "/profiles/" + strconv.FormatInt(id, 10),
	}, nil)
}

func (c *Client) UploadCSV(ctx context.Context, s Session, filename string, file io.Reader) (*models.UploadResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("upload-csv: reading file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var out models.UploadResult
	err = c.send(ctx, s, request{
		resource:    "upload-csv",
		method:      http.MethodPost,
		path:        "/profiles/upload-csv",
		body:        &buf,
		contentType: mw.FormDataContentType(),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MarkRead(ctx context.Context, s Session, id int64) error {
	return c.send(ctx, s, request{
		resource: "mark-read",
		method:   http.MethodPost,
		path:     "/notifications/mark-read/" + strconv.FormatInt(id, 10),
	}, nil)
}

func (c *Client) MarkAllRead(ctx context.Context, s Session) error {
	return c.send(ctx, s, request{
		resource: "mark-all-read",
		method:   http.MethodPost,
		path:     "/notifications/mark-all-read",
	}, nil)
}

func (c *Client) SaveEmailSettings(ctx context.Context, s Session, settings models.EmailSettings) error {
	body, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return c.send(ctx, s, request{
		resource:    "save-email-settings",
		method:      http.MethodPost,
		path:        "/settings/email",
		body:        bytes.NewReader(body),
		contentType: "application/json",
	}, nil)
}

func (c *Client) TriggerJob(ctx context.Context, s Session) (*models.Message, error) {
	var out models.Message
	err := c.send(ctx, s, request{
		resource: "trigger-job",
		method:   http.MethodPost,
		path:     "/trigger-job",
		timeout:  c.jobTimeout,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
