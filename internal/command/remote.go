package command

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/MrSnakeDoc/seeyoulater/internal/config"
	"github.com/MrSnakeDoc/seeyoulater/internal/domain"
	"github.com/MrSnakeDoc/seeyoulater/internal/logger"
)

// maxErrorBody bounds how much of a failed response is read.
const maxErrorBody = 64 << 10

// Remote runs commands against a seeyoulater server over HTTP.
// Requests are synchronous and never retried.
type Remote struct {
	baseURL    *url.URL
	username   string
	password   string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        logger.Logger
}

var _ Commands = (*Remote)(nil)

// RemoteOption configures a Remote.
type RemoteOption func(*Remote)

// WithHTTPClient replaces the default client, whose timeout is the
// configured request timeout.
func WithHTTPClient(hc *http.Client) RemoteOption {
	return func(r *Remote) {
		r.httpClient = hc
	}
}

// NewRemote builds a client for the server at cfg.URL. A cfg.RateLimit of
// zero leaves requests unpaced.
func NewRemote(cfg config.RemoteConfig, timeout time.Duration, log logger.Logger, opts ...RemoteOption) (*Remote, error) {
	base, err := url.Parse(strings.TrimRight(cfg.URL, "/"))
	if err != nil {
		return nil, domain.InvalidArgument("remote url %q: %v", cfg.URL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, domain.InvalidArgument("remote url %q: scheme must be http or https", cfg.URL)
	}
	if log == nil {
		log = logger.NewNop()
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}

	r := &Remote{
		baseURL:    base,
		username:   cfg.Username,
		password:   cfg.Password,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(limit, 1),
		log:        log.With(logger.String("remote", base.Host)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func (r *Remote) Add(ctx context.Context, req domain.AddRequest) (*domain.AddResult, error) {
	var b domain.Bookmark
	status, err := r.do(ctx, "add", http.MethodPost, PathBookmark, nil, req, &b)
	if err != nil {
		return nil, err
	}
	return &domain.AddResult{Bookmark: b, Created: status == http.StatusCreated}, nil
}

func (r *Remote) Find(ctx context.Context, q domain.SearchQuery) ([]domain.Bookmark, error) {
	out := []domain.Bookmark{}
	if _, err := r.do(ctx, "search", http.MethodGet, PathSearch, EncodeSearch(q), nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Bookmark{}
	}
	return out, nil
}

func (r *Remote) Tags(ctx context.Context, q domain.TagsQuery) ([]domain.TagCount, error) {
	out := []domain.TagCount{}
	if _, err := r.do(ctx, "list tags", http.MethodGet, PathTags, EncodeTags(q), nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.TagCount{}
	}
	return out, nil
}

func (r *Remote) RenameTag(ctx context.Context, from, to string) (int64, error) {
	v := url.Values{}
	v.Set("from", from)
	v.Set("to", to)

	var n int64
	if _, err := r.do(ctx, "rename tag", http.MethodPatch, PathTags, v, nil, &n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *Remote) Delete(ctx context.Context, q domain.SearchQuery) (int64, error) {
	var n int64
	if _, err := r.do(ctx, "delete", http.MethodDelete, PathSearch, EncodeSearch(q), nil, &n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *Remote) Close() error {
	r.httpClient.CloseIdleConnections()
	return nil
}

// do sends one request and decodes a 2xx JSON body into out. It returns
// the response status code.
func (r *Remote) do(ctx context.Context, op, method, path string, query url.Values, in, out any) (int, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return 0, &domain.TransportError{Op: op, Err: fmt.Errorf("rate limiter: %w", err)}
	}

	var body io.Reader = http.NoBody
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return 0, &domain.SerializationError{Op: op + ": encode request", Err: err}
		}
		body = bytes.NewReader(data)
	}

	u := *r.baseURL
	u.Path += path
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return 0, &domain.TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(HeaderUsername, r.username)
	req.Header.Set(HeaderPassword, r.password)

	start := time.Now()
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return 0, &domain.TransportError{Op: op, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	r.log.Debug("remote call",
		logger.String("method", method),
		logger.String("path", path),
		logger.Int("status", resp.StatusCode),
		logger.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, responseError(op, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) && netErr.Timeout() {
			return resp.StatusCode, &domain.TransportError{Op: op, Err: err}
		}
		return resp.StatusCode, &domain.SerializationError{Op: op + ": decode response", Err: err}
	}
	return resp.StatusCode, nil
}

// responseError maps a non-2xx response back onto the error kinds the
// local backend would have returned.
func responseError(op string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: %s", domain.ErrUnauthorized, strings.TrimSpace(string(raw)))
	}

	var body ErrorBody
	if err := json.Unmarshal(raw, &body); err != nil || body.Kind == "" {
		return &domain.TransportError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        errors.New(strings.TrimSpace(string(raw))),
		}
	}

	remote := errors.New(body.Message)
	switch body.Kind {
	case KindStorage:
		return &domain.StorageError{Op: op, Err: remote}
	case KindSchema:
		return &domain.SchemaError{Version: "remote", Err: remote}
	case KindInvalid:
		return domain.InvalidArgument("%s", strings.TrimPrefix(body.Message, domain.ErrInvalidArgument.Error()+": "))
	case KindSerialization:
		return &domain.SerializationError{Op: op, Err: remote}
	default:
		return &domain.TransportError{Op: op, StatusCode: resp.StatusCode, Err: remote}
	}
}
