package xclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/time/rate"

	"github.com/zach-sndr/agentic-social/internal/logging"
	"github.com/zach-sndr/agentic-social/internal/metrics"
	"github.com/zach-sndr/agentic-social/internal/oauth1"
)

const (
	DefaultBaseURL = "https://api.x.com"
	DefaultTimeout = 30 * time.Second

	userAgent = "agentic-social/xapi"
)

// credentialEnv names each credential after the environment variable that supplies it.
var credentialEnv = map[string]string{
	"ConsumerKey":    "X_API_KEY",
	"ConsumerSecret": "X_API_SECRET",
	"AccessToken":    "X_ACCESS_TOKEN",
	"AccessSecret":   "X_ACCESS_SECRET",
}

var validate = validator.New()

// Client executes signed requests against the X API v2.
// Each Do call performs exactly one HTTP exchange.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	limiter    *rate.Limiter
	// sign builds the Authorization header; replaced in tests.
	sign func(method, rawURL string, params url.Values) (string, error)
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLimiter sets the pacing limiter; nil disables pacing.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// WithTimeout sets the per-request timeout. It applies to a copy of the HTTP
// client, so a shared client passed to WithHTTPClient is left untouched.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// NewClient returns a Client for creds. All four credentials must be non-empty,
// otherwise an *AuthError is returned.
func NewClient(creds oauth1.Credentials, opts ...Option) (*Client, error) {
	if err := checkCredentials(creds); err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		sign:       oauth1.NewSigner(creds).Header,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c, nil
}

func checkCredentials(creds oauth1.Credentials) error {
	err := validate.Struct(creds)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &AuthError{Missing: []string{err.Error()}}
	}
	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name, ok := credentialEnv[fe.StructField()]
		if !ok {
			name = fe.StructField()
		}
		missing = append(missing, name)
	}
	return &AuthError{Missing: missing}
}

// Request is one logical API call.
type Request struct {
	// Name labels the call in logs and metrics, e.g. "create_tweet".
	Name   string
	Method string
	// Path is appended to the base URL, e.g. "/2/tweets".
	Path string
	// Query is sent on the URL and always enters the signature.
	Query url.Values
	// JSON is marshalled as the request body. It never enters the signature.
	JSON any
	// Multipart, when set, replaces JSON. Its fields never enter the signature.
	Multipart *Multipart
}

// Multipart describes a form with plain fields and at most one file.
type Multipart struct {
	Fields      map[string]string
	FileField   string
	FileName    string
	ContentType string
	File        io.Reader
}

func (r Request) label() string {
	if r.Name != "" {
		return r.Name
	}
	return strings.ToLower(r.Method)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func (m *Multipart) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range m.Fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}
	if m.File != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(m.FileField), quoteEscaper.Replace(m.FileName)))
		ct := m.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, m.File); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func (r Request) body() (io.Reader, string, error) {
	switch {
	case r.Multipart != nil:
		return r.Multipart.encode()
	case r.JSON != nil:
		b, err := json.Marshal(r.JSON)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(b), "application/json", nil
	}
	return nil, "", nil
}

// Do signs and sends r, then decodes a successful JSON response into out.
// out may be nil. Non-2xx responses map to *RateLimitError or *APIError and
// network failures to *TransportError.
func (c *Client) Do(ctx context.Context, r Request, out any) error {
	name := r.label()
	endpoint := c.baseURL + r.Path

	body, contentType, err := r.body()
	if err != nil {
		return &TransportError{Op: name, URL: endpoint, Err: fmt.Errorf("encode body: %w", err)}
	}

	reqURL := endpoint
	if len(r.Query) > 0 {
		reqURL += "?" + r.Query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, r.Method, reqURL, body)
	if err != nil {
		return &TransportError{Op: name, URL: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &TransportError{Op: name, URL: endpoint, Err: err}
		}
	}
	// sign after pacing so the timestamp and nonce are fresh when sent
	auth, err := c.sign(r.Method, endpoint, r.Query)
	if err != nil {
		return &TransportError{Op: name, URL: endpoint, Err: err}
	}
	req.Header.Set("Authorization", auth)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveRequest(name, 0, time.Since(start))
		logging.Warn("xapi_request_failed", map[string]any{"endpoint": name, "error": err.Error()})
		return &TransportError{Op: name, URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	metrics.ObserveRequest(name, resp.StatusCode, time.Since(start))
	if err != nil {
		return &TransportError{Op: name, URL: endpoint, Err: fmt.Errorf("read body: %w", err)}
	}
	logging.Debug("xapi_request", map[string]any{
		"endpoint":    name,
		"method":      r.Method,
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		metrics.IncRateLimited(name)
		return &RateLimitError{Endpoint: name, Reset: parseRateLimitReset(resp.Header.Get("x-rate-limit-reset"))}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return newAPIError(resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &APIError{StatusCode: resp.StatusCode, Title: "invalid JSON response", Detail: err.Error()}
	}
	return nil
}
