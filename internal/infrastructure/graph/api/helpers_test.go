// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testToken     = "test-access-token"
	tokenPath     = "/tenant/oauth2/v2.0/token"
	graphBasePath = "/v1.0"
)

// fakeGraph is an httptest server that serves the token endpoint and routes
// every other request to graph.
type fakeGraph struct {
	*httptest.Server
	tokenCalls atomic.Int32
	graphCalls atomic.Int32
	tokenBody  string
	graph      http.HandlerFunc
}

func newFakeGraph(t *testing.T, graph http.HandlerFunc) *fakeGraph {
	t.Helper()

	fg := &fakeGraph{
		tokenBody: `{"access_token":"` + testToken + `","token_type":"Bearer","expires_in":3599}`,
		graph:     graph,
	}
	fg.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == tokenPath {
			fg.tokenCalls.Add(1)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(fg.tokenBody))
			return
		}

		fg.graphCalls.Add(1)
		if r.Header.Get("Authorization") != "Bearer "+testToken {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"code":"InvalidAuthenticationToken","message":"Access token is empty."}}`))
			return
		}
		if fg.graph == nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fg.graph(w, r)
	}))
	t.Cleanup(fg.Close)
	return fg
}

func (fg *fakeGraph) config() Config {
	return Config{
		TenantID:     "tenant",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		BaseURL:      fg.URL + graphBasePath,
		AuthURL:      fg.URL + tokenPath,
	}
}

// authenticatedClient returns a client that already holds the fake token
func (fg *fakeGraph) authenticatedClient(t *testing.T) *Client {
	t.Helper()

	client := NewClient(fg.config())
	require.NoError(t, client.Authenticate(context.Background()))
	return client
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
