package diagnostic

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

	"go.uber.org/zap"
)

// QuotaPrompt is sent to generateContent; the reply is discarded.
const QuotaPrompt = "Say 'Test successful' in one word"

const maxBodyBytes = 64 * 1024

// Prober runs the network probes against the Gemini API.
type Prober interface {
	Connectivity(ctx context.Context, key string) ProbeResult
	Quota(ctx context.Context, key string) ProbeResult
}

type ClientConfig struct {
	BaseURL             string
	Model               string
	ConnectivityTimeout time.Duration
	QuotaTimeout        time.Duration
	Logger              *zap.SugaredLogger
}

type Client struct {
	baseURL             string
	model               string
	connectivityTimeout time.Duration
	quotaTimeout        time.Duration
	logger              *zap.SugaredLogger

	newHTTPClient func(timeout time.Duration) *http.Client
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Client{
		baseURL:             strings.TrimRight(cfg.BaseURL, "/"),
		model:               cfg.Model,
		connectivityTimeout: cfg.ConnectivityTimeout,
		quotaTimeout:        cfg.QuotaTimeout,
		logger:              logger,
		newHTTPClient: func(timeout time.Duration) *http.Client {
			return &http.Client{Timeout: timeout}
		},
	}
}

// probeMessages holds the per-probe wording for each outcome.
type probeMessages struct {
	ok           string
	unauthorized string
	forbidden    string
	rateLimited  string
	timeout      string
	connection   string
}

type probeDef struct {
	name     string
	timeout  time.Duration
	messages probeMessages

	// quotaAware enables reclassifying HTTP 400 as quota exhaustion.
	quotaAware bool

	newRequest func(ctx context.Context, key string) (*http.Request, error)
}

var connectivityMessages = probeMessages{
	ok:           "✅ API connectivity test PASSED",
	unauthorized: "❌ AUTHENTICATION FAILED: Invalid or leaked API key",
	forbidden:    "❌ FORBIDDEN: API key doesn't have required permissions",
	rateLimited:  "⚠️  QUOTA EXCEEDED: Rate limit reached",
	timeout:      "❌ CONNECTION TIMEOUT: Unable to reach Gemini API",
	connection:   "❌ CONNECTION ERROR: Check your internet connection",
}

var quotaMessages = probeMessages{
	ok:           "✅ Content generation test PASSED",
	unauthorized: "❌ AUTHENTICATION FAILED: API key is invalid or leaked",
	forbidden:    "❌ QUOTA EXCEEDED or PERMISSION DENIED",
	rateLimited:  "⚠️  RATE LIMIT EXCEEDED: Too many requests",
	timeout:      "❌ TIMEOUT: Request took too long to complete",
	connection:   "❌ CONNECTION ERROR: Unable to reach API",
}

// Connectivity lists models: GET {base}/models:list?key=...
func (c *Client) Connectivity(ctx context.Context, key string) ProbeResult {
	return c.run(ctx, key, probeDef{
		name:     ProbeConnectivity,
		timeout:  c.connectivityTimeout,
		messages: connectivityMessages,
		newRequest: func(ctx context.Context, key string) (*http.Request, error) {
			u, err := c.endpoint("/models:list", key)
			if err != nil {
				return nil, err
			}
			return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		},
	})
}

type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// Quota asks the model for a one-word answer:
// POST {base}/models/{model}:generateContent?key=...
func (c *Client) Quota(ctx context.Context, key string) ProbeResult {
	return c.run(ctx, key, probeDef{
		name:       ProbeQuota,
		timeout:    c.quotaTimeout,
		messages:   quotaMessages,
		quotaAware: true,
		newRequest: func(ctx context.Context, key string) (*http.Request, error) {
			u, err := c.endpoint("/models/"+url.PathEscape(c.model)+":generateContent", key)
			if err != nil {
				return nil, err
			}
			payload, err := json.Marshal(generateContentRequest{
				Contents: []content{{Parts: []part{{Text: QuotaPrompt}}}},
			})
			if err != nil {
				return nil, err
			}
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
			if err != nil {
				return nil, err
			}
			req.Header.Set("Content-Type", "application/json")
			return req, nil
		},
	})
}

func (c *Client) endpoint(path, key string) (string, error) {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid base url %q", c.baseURL)
	}
	q := u.Query()
	q.Set("key", key)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Client) run(ctx context.Context, key string, def probeDef) (res ProbeResult) {
	start := time.Now()
	c.logger.Debugw("probe_started", "probe", def.name, "timeout", def.timeout.String())

	defer func() {
		if r := recover(); r != nil {
			res = failed(def.name, StatusUnexpectedError, unexpectedMessage(fmt.Sprint(r), key))
		}
		elapsed := time.Since(start)
		res.DurationMS = elapsed.Milliseconds()
		c.logger.Infow(
			"probe_finished",
			"probe", def.name,
			"success", res.Success,
			"status", string(res.Status),
			"http_status", res.HTTPStatus,
			"duration", elapsed.Round(time.Millisecond).String(),
		)
	}()

	req, err := def.newRequest(ctx, key)
	if err != nil {
		return failed(def.name, StatusUnexpectedError, unexpectedMessage(err.Error(), key))
	}

	resp, err := c.newHTTPClient(def.timeout).Do(req)
	if err != nil {
		c.logger.Debugw("probe_transport_error", "probe", def.name, "err", redact(err.Error(), key))
		return transportResult(def, err, key)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		res = passed(def.name, def.messages.ok)
		res.HTTPStatus = resp.StatusCode
		return res
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		res = transportResult(def, err, key)
		res.HTTPStatus = resp.StatusCode
		return res
	}

	res = interpretStatus(def, resp.StatusCode, body)
	res.Message = redact(res.Message, key)
	res.HTTPStatus = resp.StatusCode
	return res
}

func interpretStatus(def probeDef, code int, body []byte) ProbeResult {
	m := def.messages
	switch code {
	case http.StatusOK:
		return passed(def.name, m.ok)
	case http.StatusUnauthorized:
		return failed(def.name, StatusAuthFailure, m.unauthorized)
	case http.StatusForbidden:
		return failed(def.name, StatusForbidden, m.forbidden)
	case http.StatusTooManyRequests:
		return failed(def.name, StatusRateLimited, m.rateLimited)
	}

	if code == http.StatusBadRequest && def.quotaAware {
		msg := errorMessage(body, "Bad request")
		if isQuotaExhausted(msg) {
			return failed(def.name, StatusQuotaExceeded, "⚠️  QUOTA EXCEEDED: "+msg)
		}
		return failed(def.name, StatusBadRequest, "❌ BAD REQUEST: "+msg)
	}

	msg := errorMessage(body, "Unknown error")
	return failed(def.name, StatusHTTPError, fmt.Sprintf("❌ ERROR (%d): %s", code, msg))
}

func transportResult(def probeDef, err error, key string) ProbeResult {
	switch classifyTransportError(err) {
	case transportTimeout:
		return failed(def.name, StatusTimeout, def.messages.timeout)
	case transportConnection:
		return failed(def.name, StatusConnectionError, def.messages.connection)
	}
	if errors.Is(err, context.Canceled) {
		return failed(def.name, StatusUnexpectedError, unexpectedMessage("request canceled", key))
	}
	return failed(def.name, StatusUnexpectedError, unexpectedMessage(err.Error(), key))
}

func unexpectedMessage(detail, key string) string {
	return "❌ UNEXPECTED ERROR: " + redact(detail, key)
}

var _ Prober = (*Client)(nil)
