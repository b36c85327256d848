package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestTimeout = 15 * time.Second

// TokenSource hands out the current credential. The client reads it fresh on
// every call and never caches it, so a sign-out is effective immediately.
type TokenSource interface {
	Token() string
}

// Client wraps all outbound calls to the backend. A 401 response is resolved
// centrally: the onAuthFailure callback runs (the host clears the session
// and navigates to login) and the call returns ErrSessionExpired. Every
// other failure is surfaced to the caller as a typed error; there is no
// retry policy.
type Client struct {
	baseURL       string
	tokens        TokenSource
	onAuthFailure func()
	logger        *zap.SugaredLogger
	httpClient    *http.Client
}

func NewClient(baseURL string, tokens TokenSource, onAuthFailure func(), logger *zap.SugaredLogger) *Client {
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		tokens:        tokens,
		onAuthFailure: onAuthFailure,
		logger:        logger,
		httpClient:    &http.Client{Timeout: requestTimeout},
	}
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload interface{}, out interface{}) error {
	var body io.Reader
	contentType := ""

	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
		contentType = "application/json"
	}

	return c.do(ctx, method, path, body, contentType, out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-ID", uuid.New().String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		netErr := &NetworkError{URL: url, Err: err, Timeout: isTimeout(ctx, err)}
		c.logger.Warnw("request failed", "method", method, "url", url, "error", err)
		return netErr
	}
	defer resp.Body.Close()

	respBody, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{URL: url, Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.logger.Warnw("authentication rejected", "method", method, "url", url)
		if c.onAuthFailure != nil {
			c.onAuthFailure()
		}
		return ErrSessionExpired
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &RequestError{StatusCode: resp.StatusCode, Message: serverMessage(respBody)}
	}

	if out != nil && len(respBody) > 0 {
		err = json.Unmarshal(respBody, out)
		if err != nil {
			return fmt.Errorf("cant unpack result json: %s", err)
		}
	}

	return nil
}

func isTimeout(ctx context.Context, err error) bool {
	if ctx.Err() == context.DeadlineExceeded {
		return true
	}

	netErr, ok := err.(net.Error)

	return ok && netErr.Timeout()
}

func serverMessage(body []byte) string {
	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}

	err := json.Unmarshal(body, &payload)
	if err == nil {
		if payload.Detail != "" {
			return payload.Detail
		}
		if payload.Message != "" {
			return payload.Message
		}
	}

	return "unexpected server error"
}
