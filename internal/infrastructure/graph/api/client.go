// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/oauth2/microsoft"

	"github.com/linuxfoundation/lfx-v2-meeting-attendance/internal/domain"
	"github.com/linuxfoundation/lfx-v2-meeting-attendance/internal/logging"
	"github.com/linuxfoundation/lfx-v2-meeting-attendance/pkg/constants"
)

// ClientAPI defines the interface for Microsoft Graph API operations
// This allows for easy mocking and testing of the Graph client
type ClientAPI interface {
	Authenticate(ctx context.Context) error
	GetUser(ctx context.Context, principal string) (*User, error)
	CalendarView(userID string, start, end time.Time) *Pager[Event]
	FindOnlineMeetings(ctx context.Context, userID, joinURL string) ([]OnlineMeeting, error)
	ListAttendanceReports(ctx context.Context, userID, meetingID string) ([]AttendanceReport, error)
	ListAttendanceRecords(ctx context.Context, userID, meetingID, reportID string) ([]AttendanceRecord, error)
}

const (
	// BaseURL is the base URL for Microsoft Graph API
	BaseURL = "https://graph.microsoft.com/v1.0"
	// DefaultScope requests every application permission granted to the app registration
	DefaultScope = "https://graph.microsoft.com/.default"
)

// ErrNotAuthenticated is returned when a Graph call is attempted before Authenticate succeeded.
var ErrNotAuthenticated = errors.New("graph client is not authenticated")

// Client represents a Microsoft Graph API client. The access token is acquired
// once by Authenticate and reused, without refresh, for every later request.
type Client struct {
	httpClient  *http.Client
	config      Config
	oauthConfig *clientcredentials.Config
}

// Config holds the configuration for the Graph client
type Config struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	// Optional: override scope for national clouds
	Scope string
	// Optional: override base URL for testing
	BaseURL string
	// Optional: override token URL for testing
	AuthURL string
	// Optional: HTTP timeout for Graph requests, zero means none
	Timeout time.Duration
}

// Validate checks that the service identity is complete.
func (c Config) Validate() error {
	var missing []string
	if c.TenantID == "" {
		missing = append(missing, "tenant id")
	}
	if c.ClientID == "" {
		missing = append(missing, "client id")
	}
	if c.ClientSecret == "" {
		missing = append(missing, "client secret")
	}
	if len(missing) > 0 {
		return domain.NewValidationError("incomplete service identity, missing " + strings.Join(missing, ", "))
	}
	return nil
}

// Ensure that Client implements ClientAPI
var _ ClientAPI = (*Client)(nil)

// NewClient creates a new Graph API client
func NewClient(config Config) *Client {
	// Set defaults if not provided
	if config.BaseURL == "" {
		config.BaseURL = BaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.AuthURL == "" {
		config.AuthURL = microsoft.AzureADEndpoint(config.TenantID).TokenURL
	}
	if config.Scope == "" {
		config.Scope = DefaultScope
	}

	// Azure AD client credentials grant against the tenant's v2.0 token endpoint
	oauthConfig := &clientcredentials.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		TokenURL:     config.AuthURL,
		Scopes:       []string{config.Scope},
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	return &Client{
		config:      config,
		oauthConfig: oauthConfig,
	}
}

// Authenticate acquires the access token for the service identity. A token
// response without an access token is an error.
func (c *Client) Authenticate(ctx context.Context) error {
	if err := c.config.Validate(); err != nil {
		return err
	}

	// the token request shares the instrumented transport with Graph calls
	transport := otelhttp.NewTransport(http.DefaultTransport)
	tokenCtx := context.WithValue(ctx, oauth2.HTTPClient, &http.Client{
		Timeout:   c.config.Timeout,
		Transport: transport,
	})

	startTime := time.Now()
	token, err := c.oauthConfig.Token(tokenCtx)
	if err != nil {
		return domain.NewUnauthorizedError("failed to acquire access token", err)
	}
	if token == nil || token.AccessToken == "" {
		return domain.NewUnauthorizedError("failed to acquire access token: token response has no access token")
	}

	slog.DebugContext(ctx, "acquired Graph access token",
		"token_type", token.Type(),
		"expiry", token.Expiry,
		"duration", time.Since(startTime).String(),
	)

	c.httpClient = &http.Client{
		Timeout: c.config.Timeout,
		Transport: &oauth2.Transport{
			Base:   transport,
			Source: oauth2.StaticTokenSource(token),
		},
	}
	return nil
}

// resourceURL joins the base URL with a path whose dynamic segments are already escaped
func (c *Client) resourceURL(path string, query url.Values) string {
	u := c.config.BaseURL + path
	if len(query) > 0 {
		u += "?" + encodeQuery(query)
	}
	return u
}

// encodeQuery percent-encodes spaces instead of using '+', which OData filters do not accept
func encodeQuery(query url.Values) string {
	return strings.ReplaceAll(query.Encode(), "+", "%20")
}

// doRequest performs one authenticated HTTP request against an absolute Graph URL
func (c *Client) doRequest(ctx context.Context, method, rawURL string) (*http.Response, error) {
	if c.httpClient == nil {
		return nil, ErrNotAuthenticated
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, domain.NewInternalError("failed to create request", err)
	}
	req.Header.Set(constants.ContentTypeHeader, constants.ContentTypeJSON)

	slog.DebugContext(ctx, "making Graph API request",
		"method", method,
		"url", rawURL,
	)

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)
	if err != nil {
		slog.DebugContext(ctx, "Graph API request failed",
			"method", method,
			"url", rawURL,
			"duration", duration.String(),
			logging.ErrKey, err)
		return nil, domain.NewUnavailableError("graph request failed", err)
	}

	slog.DebugContext(ctx, "Graph API request completed",
		"method", method,
		"url", rawURL,
		"status", resp.StatusCode,
		"duration", duration.String(),
	)
	return resp, nil
}

// getJSON issues a GET request and decodes a successful JSON response into out
func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	resp, err := c.doRequest(ctx, http.MethodGet, rawURL)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		slog.DebugContext(ctx, "Graph API error response",
			"url", rawURL,
			"status", resp.StatusCode,
			"body", string(body))
		return errorFromResponse(resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.NewInternalError("failed to decode response", err)
	}
	return nil
}

// ResponseError is a non-success response returned by Graph
type ResponseError struct {
	StatusCode int
	Code       string
	Message    string
	Body       string
}

func (e *ResponseError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("graph API error (status %d, code %s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("graph API error (status %d): %s", e.StatusCode, e.Body)
}

// ResponseStatus returns the HTTP status of the response
func (e *ResponseError) ResponseStatus() int {
	return e.StatusCode
}

// ResponseBody returns the raw response body, including fields outside the error envelope
func (e *ResponseError) ResponseBody() string {
	return e.Body
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not a Graph response error
func StatusCode(err error) int {
	var respErr *ResponseError
	if errors.As(err, &respErr) {
		return respErr.StatusCode
	}
	return 0
}

// parseErrorResponse attempts to parse a Graph API error envelope
func parseErrorResponse(statusCode int, body []byte) *ResponseError {
	respErr := &ResponseError{
		StatusCode: statusCode,
		Body:       string(bytes.TrimSpace(body)),
	}

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		respErr.Code = envelope.Error.Code
		respErr.Message = envelope.Error.Message
	}
	return respErr
}

// errorFromResponse classifies a non-success response into a domain error
func errorFromResponse(statusCode int, body []byte) error {
	respErr := parseErrorResponse(statusCode, body)
	switch {
	case statusCode == http.StatusBadRequest:
		return domain.NewValidationError("graph rejected the request", respErr)
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return domain.NewUnauthorizedError("graph denied access", respErr)
	case statusCode == http.StatusNotFound:
		return domain.NewNotFoundError("graph resource not found", respErr)
	case statusCode == http.StatusTooManyRequests || statusCode >= http.StatusInternalServerError:
		return domain.NewUnavailableError("graph is unavailable", respErr)
	default:
		return domain.NewInternalError("unexpected graph response", respErr)
	}
}
