package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Client reads collections from the directory API.
type Client struct {
	baseURL string
	http    *http.Client
	metrics *Metrics
	logger  *zap.Logger
}

// Options configure a Client. Zero values are usable.
type Options struct {
	// Timeout of zero leaves requests unbounded.
	Timeout    time.Duration
	HTTPClient *http.Client
	Metrics    *Metrics
	Logger     *zap.Logger
}

func NewClient(baseURL string, opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    hc,
		metrics: opts.Metrics,
		logger:  logger,
	}
}

// Students fetches GET /students in server order.
func (c *Client) Students(ctx context.Context) ([]Student, error) {
	return getList[Student](ctx, c, StudentsPath)
}

// Courses fetches GET /courses in server order.
func (c *Client) Courses(ctx context.Context) ([]Course, error) {
	return getList[Course](ctx, c, CoursesPath)
}

// Endpoint is a collection source bound to one path.
type Endpoint[T any] struct {
	client *Client
	path   string
}

func StudentsEndpoint(c *Client) Endpoint[Student] { return Endpoint[Student]{client: c, path: StudentsPath} }

func CoursesEndpoint(c *Client) Endpoint[Course] { return Endpoint[Course]{client: c, path: CoursesPath} }

func (e Endpoint[T]) Fetch(ctx context.Context) ([]T, error) {
	return getList[T](ctx, e.client, e.path)
}

func (e Endpoint[T]) Path() string { return e.path }

func getList[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	start := time.Now()
	items, outcome, err := fetchList[T](ctx, c, path)
	c.metrics.observe(path, outcome, time.Since(start))
	return items, err
}

func fetchList[T any](ctx context.Context, c *Client, path string) ([]T, string, error) {
	reqID := uuid.NewString()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, OutcomeTransport, &FetchError{Path: path, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, OutcomeTransport, &FetchError{Path: path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, OutcomeTransport, &FetchError{Path: path, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, OutcomeStatus, &FetchError{Path: path, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", http.StatusText(resp.StatusCode))}
	}

	items, err := decodeList[T](body)
	if err != nil {
		return nil, OutcomeMalformed, &FetchError{Path: path, StatusCode: resp.StatusCode, Err: err}
	}
	c.logger.Debug("fetched collection",
		zap.String("path", path),
		zap.String("request_id", reqID),
		zap.Int("records", len(items)),
	)
	return items, OutcomeOK, nil
}

// decodeList requires a JSON array whose elements decode into T, and nothing
// after it. Field values are not checked; zero ids and empty names pass.
func decodeList[T any](body []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errors.New("malformed body: expected JSON array")
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	var items []T
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("malformed body: %w", err)
	}
	if dec.More() {
		return nil, errors.New("malformed body: trailing data after array")
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
