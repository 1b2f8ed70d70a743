package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	MethodGet = "GET"

	// StatusNotFound mirrors net/http so callers don't need both packages.
	StatusNotFound = http.StatusNotFound
)

// StatusError is returned when the server answers with anything but 200 OK.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request to %s failed with status: %d", e.URL, e.Code)
}

// NotFound reports whether the server answered 404.
func (e *StatusError) NotFound() bool {
	return e.Code == StatusNotFound
}

type Client struct {
	HttpClient *http.Client
	UserAgent  string
}

// NewHttpClient returns a client whose requests are bounded by timeout.
// A zero timeout means no limit.
func NewHttpClient(timeout time.Duration, userAgent string) *Client {
	return &Client{
		HttpClient: &http.Client{Timeout: timeout},
		UserAgent:  userAgent,
	}
}

// SendRequest issues the request and returns the response when the status is 200.
// The caller must close the body.
func (hc *Client) SendRequest(ctx context.Context, method string, url string, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}

	if hc.UserAgent != "" {
		req.Header.Set("User-Agent", hc.UserAgent)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := hc.HttpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &StatusError{Code: resp.StatusCode, URL: url}
	}

	return resp, nil
}

// SendRequestAndDecode issues the request and decodes the JSON body into v.
func (hc *Client) SendRequestAndDecode(ctx context.Context, v any, method string, url string, headers map[string]string) error {
	resp, err := hc.SendRequest(ctx, method, url, headers)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", url, err)
	}

	return nil
}
