// Package gateway is the typed REST client for the planner backend.
// Every method issues exactly one network call: no retries, no
// caching, no batching.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"tableflip.dev/dayplan/pkg/config"
	"tableflip.dev/dayplan/pkg/logging"
	"tableflip.dev/dayplan/pkg/model"
)

// RequestFailed is the uniform remote-failure error. The message comes
// from the server's detail field when present, else the transport error.
type RequestFailed struct {
	Message string
}

func (e *RequestFailed) Error() string { return e.Message }

// Client talks to one backend instance.
type Client struct {
	base    string
	http    *http.Client
	timeout time.Duration
	log     *logrus.Logger
}

// New builds a client from config. The logger may be nil.
func New(cfg config.Config, log *logrus.Logger) *Client {
	if log == nil {
		log = logging.Discard()
	}
	return &Client{
		base:    strings.TrimRight(cfg.BaseURL(), "/"),
		http:    &http.Client{},
		timeout: cfg.Timeout(),
		log:     log,
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.base + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("gateway: encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("gateway: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	entry := c.log.WithFields(logrus.Fields{
		"component": "gateway",
		"method":    method,
		"path":      path,
	})
	entry.Debug("issuing request")

	resp, err := c.http.Do(req)
	if err != nil {
		entry.WithError(err).Debug("transport failure")
		return &RequestFailed{Message: err.Error()}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestFailed{Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		entry.WithField("status", resp.StatusCode).Debug("request rejected")
		return &RequestFailed{Message: serverDetail(payload, resp)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return &RequestFailed{Message: fmt.Sprintf("decode response: %v", err)}
	}
	return nil
}

// serverDetail pulls the backend's {"detail": "..."} message when the
// error body carries one.
func serverDetail(payload []byte, resp *http.Response) string {
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(payload, &body); err == nil && body.Detail != "" {
		return body.Detail
	}
	return fmt.Sprintf("%s %s: %s", resp.Request.Method, resp.Request.URL.Path, resp.Status)
}

// ---------- users ----------

func (c *Client) CreateUser(ctx context.Context, in model.UserCreate) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodPost, "/users/", nil, in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) GetUser(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.do(ctx, http.MethodGet, "/users/", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) UpdateUser(ctx context.Context, id int64, in model.UserCreate) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), nil, in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil, nil)
}

// ---------- tasks ----------

func (c *Client) CreateTask(ctx context.Context, in model.TaskCreate) (*model.Task, error) {
	var task model.Task
	if err := c.do(ctx, http.MethodPost, "/tasks/", nil, in, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) GetTask(ctx context.Context, id int64) (*model.Task, error) {
	var task model.Task
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tasks/%d", id), nil, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) TasksByUser(ctx context.Context, userID int64) ([]model.Task, error) {
	var tasks []model.Task
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tasks/user/%d", userID), nil, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) TasksInRange(ctx context.Context, userID int64, start, end model.Date) ([]model.Task, error) {
	var tasks []model.Task
	path := fmt.Sprintf("/tasks/range/%d/%s/%s", userID, start, end)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// TasksFiltered asks the server for tasks due on one date with the
// given finished state.
func (c *Client) TasksFiltered(ctx context.Context, userID int64, date model.Date, finished bool) ([]model.Task, error) {
	var tasks []model.Task
	path := fmt.Sprintf("/tasks/filter/%d/%s/%t", userID, date, finished)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) UpdateTask(ctx context.Context, id int64, patch model.TaskPatch) (*model.Task, error) {
	var task model.Task
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", id), nil, patch, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, nil, nil)
}

// CleanupTasks deletes the user's tasks older than the given age.
func (c *Client) CleanupTasks(ctx context.Context, userID int64, days int) error {
	path := fmt.Sprintf("/tasks/cleanup/%d/%d", userID, days)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// ---------- notes ----------

func (c *Client) CreateNote(ctx context.Context, in model.NoteCreate) (*model.Note, error) {
	var note model.Note
	if err := c.do(ctx, http.MethodPost, "/notes/", nil, in, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) GetNote(ctx context.Context, id int64) (*model.Note, error) {
	var note model.Note
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/notes/%d", id), nil, nil, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) NotesByUser(ctx context.Context, userID int64) ([]model.Note, error) {
	var notes []model.Note
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/notes/user/%d", userID), nil, nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *Client) UpdateNote(ctx context.Context, id int64, patch model.NotePatch) (*model.Note, error) {
	var note model.Note
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/notes/%d", id), nil, patch, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) DeleteNote(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/notes/%d", id), nil, nil, nil)
}

// CleanupNotes mirrors CleanupTasks for notes.
func (c *Client) CleanupNotes(ctx context.Context, userID int64, days int) error {
	path := fmt.Sprintf("/notes/cleanup/%d/%d", userID, days)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// ---------- reports ----------

// ReportFilters narrows the task completion report. Nil fields are
// left off the query string entirely.
type ReportFilters struct {
	Finished   *bool
	Importance *int
}

func (c *Client) TaskCompletionReport(ctx context.Context, userID int64, start, end model.Date, filters ReportFilters) (*model.TaskCompletionReport, error) {
	query := url.Values{}
	query.Set("user_id", fmt.Sprintf("%d", userID))
	query.Set("start_date", start.String())
	query.Set("end_date", end.String())
	if filters.Finished != nil {
		query.Set("finished", fmt.Sprintf("%t", *filters.Finished))
	}
	if filters.Importance != nil {
		query.Set("importance", fmt.Sprintf("%d", *filters.Importance))
	}

	var report model.TaskCompletionReport
	if err := c.do(ctx, http.MethodGet, "/reports/tasks/completion", query, nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *Client) NoteActivityReport(ctx context.Context, userID int64, start, end model.Date) (*model.NoteActivityReport, error) {
	query := url.Values{}
	query.Set("user_id", fmt.Sprintf("%d", userID))
	query.Set("start_date", start.String())
	query.Set("end_date", end.String())

	var report model.NoteActivityReport
	if err := c.do(ctx, http.MethodGet, "/reports/notes/activity", query, nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
