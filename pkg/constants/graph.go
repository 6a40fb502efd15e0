// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

// Constants for the HTTP request headers sent to Microsoft Graph
const (
	// ContentTypeHeader is the header name for the request content type
	ContentTypeHeader string = "Content-Type"

	// ContentTypeJSON is the media type of every Graph request and response
	ContentTypeJSON string = "application/json"
)

// Environment variables read by the attendance export
const (
	// EnvTenantID is the Azure AD tenant of the service identity
	EnvTenantID = "AZURE_TENANT_ID"
	// EnvClientID is the application (client) ID of the service identity
	EnvClientID = "AZURE_CLIENT_ID"
	// EnvClientSecret is the client secret of the service identity
	EnvClientSecret = "AZURE_CLIENT_SECRET"
	// EnvGraphBaseURL overrides the Graph API base URL
	EnvGraphBaseURL = "GRAPH_BASE_URL"
	// EnvGraphAuthURL overrides the token endpoint URL
	EnvGraphAuthURL = "GRAPH_AUTH_URL"
	// EnvGraphTimeout sets an HTTP timeout for Graph requests
	EnvGraphTimeout = "GRAPH_TIMEOUT"
	// EnvLogLevel selects the minimum log level
	EnvLogLevel = "LOG_LEVEL"
)
