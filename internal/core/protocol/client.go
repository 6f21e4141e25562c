// Package protocol performs the HTTP requests against the Strava V3 API,
// threading every call through credential validation and quota throttling.
package protocol

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/paceline/paceline/internal/core"
	"github.com/paceline/paceline/internal/core/auth"
	"github.com/paceline/paceline/internal/core/limiter"
	"github.com/paceline/paceline/internal/core/page"
)

const (
	// DefaultBaseURL is the API root for all resource requests.
	DefaultBaseURL = "https://www.strava.com/api/v3"

	// DefaultTokenURL is the OAuth token exchange endpoint. Requests to it
	// bypass credential validation to avoid refresh recursion.
	DefaultTokenURL = "https://www.strava.com/oauth/token"

	// DefaultAuthorizeURL is the browser-facing authorization endpoint.
	DefaultAuthorizeURL = "https://www.strava.com/oauth/authorize"
)

// Client is the outbound request path. Every completed response feeds the
// throttle; every resource request consults the token manager first.
type Client struct {
	BaseURL    string
	TokenURL   string
	HTTPClient *http.Client
	Tokens     *auth.TokenManager
	Throttle   *limiter.Throttle
	Log        *zap.Logger

	// Sleep blocks for the throttle-computed cool-down. Injectable so
	// tests never wait in real time. Nil means a context-aware sleep.
	Sleep func(ctx context.Context, d time.Duration) error

	// OnUsage, when set, receives every parsed usage snapshot, e.g. for
	// persistence.
	OnUsage func(entry core.UsageEntry)
}

// NewClient returns a client with defaults applied.
func NewClient() *Client {
	return &Client{
		BaseURL:  DefaultBaseURL,
		TokenURL: DefaultTokenURL,
	}
}

// GetJSON issues a GET for path with query params and decodes the JSON
// response into v. A nil v discards the body.
func (c *Client) GetJSON(ctx context.Context, path string, params url.Values, v any) error {
	body, err := c.do(ctx, http.MethodGet, c.resolve(path), params, nil)
	if err != nil {
		return err
	}
	return decodeInto(body, v)
}

// PutForm issues a form-encoded PUT and decodes the response into v.
func (c *Client) PutForm(ctx context.Context, path string, form url.Values, v any) error {
	body, err := c.do(ctx, http.MethodPut, c.resolve(path), nil, form)
	if err != nil {
		return err
	}
	return decodeInto(body, v)
}

// PostForm issues a form-encoded POST and decodes the response into v.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values, v any) error {
	body, err := c.do(ctx, http.MethodPost, c.resolve(path), nil, form)
	if err != nil {
		return err
	}
	return decodeInto(body, v)
}

// Delete issues a DELETE for path.
func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, c.resolve(path), nil, nil)
	return err
}

// PageFetcher adapts a GET endpoint into a page.Fetcher. The base params
// are copied per fetch; page and per_page are added on top.
func (c *Client) PageFetcher(path string, params url.Values) page.Fetcher {
	return func(ctx context.Context, pageIndex, perPage int) ([]json.RawMessage, error) {
		query := url.Values{}
		for key, values := range params {
			for _, value := range values {
				query.Add(key, value)
			}
		}
		query.Set("page", strconv.Itoa(pageIndex))
		query.Set("per_page", strconv.Itoa(perPage))

		body, err := c.do(ctx, http.MethodGet, c.resolve(path), query, nil)
		if err != nil {
			return nil, err
		}

		var raws []json.RawMessage
		if err := json.Unmarshal(body, &raws); err != nil {
			return nil, fmt.Errorf("decode page: %w", err)
		}
		return raws, nil
	}
}

// ExchangeCode trades a temporary authorization code for a credential
// triple (authorization-code grant).
func (c *Client) ExchangeCode(ctx context.Context, clientID, clientSecret, code string) (core.Credential, error) {
	return c.tokenGrant(ctx, url.Values{
		"client_id":     []string{clientID},
		"client_secret": []string{clientSecret},
		"code":          []string{code},
		"grant_type":    []string{"authorization_code"},
	})
}

// RefreshToken trades a refresh token for the next credential triple
// (refresh-token grant). Implements auth.Refresher.
func (c *Client) RefreshToken(ctx context.Context, clientID, clientSecret, refreshToken string) (core.Credential, error) {
	return c.tokenGrant(ctx, url.Values{
		"client_id":     []string{clientID},
		"client_secret": []string{clientSecret},
		"refresh_token": []string{refreshToken},
		"grant_type":    []string{"refresh_token"},
	})
}

// AuthorizationURL builds the URL a user visits to authorize the
// application. Redirect handling itself is up to the caller.
func (c *Client) AuthorizationURL(clientID, redirectURI string, scopes []string, state string) string {
	if len(scopes) == 0 {
		scopes = []string{"read", "activity:read"}
	}

	params := url.Values{
		"client_id":       []string{clientID},
		"redirect_uri":    []string{redirectURI},
		"approval_prompt": []string{"auto"},
		"scope":           []string{strings.Join(scopes, ",")},
		"response_type":   []string{"code"},
	}
	if state != "" {
		params.Set("state", state)
	}

	return DefaultAuthorizeURL + "?" + params.Encode()
}

func (c *Client) tokenGrant(ctx context.Context, form url.Values) (core.Credential, error) {
	tokenURL := c.TokenURL
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}

	body, err := c.do(ctx, http.MethodPost, tokenURL, nil, form)
	if err != nil {
		return core.Credential{}, err
	}

	var cred core.Credential
	if err := json.Unmarshal(body, &cred); err != nil {
		return core.Credential{}, fmt.Errorf("decode token response: %w", err)
	}
	if cred.AccessToken == "" {
		return core.Credential{}, &Fault{Message: "token response is missing access_token"}
	}
	return cred, nil
}

// do executes one request. The token manager is consulted first unless the
// target is the token endpoint itself; a failed refresh aborts the request.
// After the response, the throttle observes the usage headers and the
// computed cool-down elapses before the result is handed back.
func (c *Client) do(ctx context.Context, method, rawURL string, params url.Values, form url.Values) ([]byte, error) {
	tokenEndpoint := c.isTokenEndpoint(rawURL)

	if !tokenEndpoint && c.Tokens != nil {
		if err := c.Tokens.EnsureValid(ctx); err != nil {
			return nil, err
		}
	}

	if len(params) > 0 {
		rawURL = rawURL + "?" + params.Encode()
	}

	var bodyReader io.Reader
	if form != nil {
		bodyReader = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if !tokenEndpoint && c.Tokens != nil {
		if token := c.Tokens.Credential().AccessToken; token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	c.logger().Debug("api request", zap.String("method", method), zap.String("url", rawURL))

	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	wait := c.observe(resp.Header, method == http.MethodGet)

	if err := c.checkStatus(resp, body, wait); err != nil {
		return nil, err
	}

	if wait > 0 {
		if err := c.sleep(ctx, wait); err != nil {
			return nil, err
		}
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	return body, nil
}

// observe feeds the throttle and the usage hook. Both are optional.
func (c *Client) observe(headers http.Header, readOnly bool) time.Duration {
	if c.OnUsage != nil {
		if rate, ok := limiter.RatesFromHeaders(headers, readOnly); ok {
			c.OnUsage(core.UsageEntry{
				Rate:       rate,
				ReadOnly:   readOnly,
				ObservedAt: time.Now().UTC(),
			})
		}
	}

	if c.Throttle == nil {
		return 0
	}
	return c.Throttle.Observe(headers, readOnly)
}

func (c *Client) checkStatus(resp *http.Response, body []byte, wait time.Duration) error {
	switch {
	case resp.StatusCode < http.StatusBadRequest:
		return nil
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return &UnauthorizedError{StatusCode: resp.StatusCode, Message: apiMessage(body)}
	case resp.StatusCode == http.StatusNotFound:
		return &NotFoundError{URL: resp.Request.URL.String()}
	case resp.StatusCode == http.StatusTooManyRequests:
		retryAfter := wait
		if retryAfter <= 0 {
			retryAfter = retryAfterHeader(resp.Header)
		}
		return &RateLimitExceededError{RetryAfter: retryAfter}
	default:
		return &Fault{StatusCode: resp.StatusCode, Message: apiMessage(body)}
	}
}

// apiMessage extracts the human-readable message from an API error body.
func apiMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return strings.TrimSpace(string(body))
}

// retryAfterHeader parses a Retry-After header, either delta-seconds or an
// HTTP date.
func retryAfterHeader(headers http.Header) time.Duration {
	retry := headers.Get("Retry-After")
	if retry == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(strings.TrimSpace(retry)); err == nil && seconds >= 0 {
		return time.Duration(seconds) * time.Second
	}
	if parsed, err := http.ParseTime(retry); err == nil {
		return time.Until(parsed)
	}
	return 0
}

func (c *Client) isTokenEndpoint(rawURL string) bool {
	tokenURL := c.TokenURL
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}
	return strings.HasPrefix(rawURL, tokenURL) || strings.Contains(rawURL, "/oauth/token")
}

func (c *Client) resolve(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}

	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) sleep(ctx context.Context, d time.Duration) error {
	if c.Sleep != nil {
		return c.Sleep(ctx, d)
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func decodeInto(body []byte, v any) error {
	if v == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) logger() *zap.Logger {
	if c != nil && c.Log != nil {
		return c.Log
	}
	return zap.NewNop()
}
