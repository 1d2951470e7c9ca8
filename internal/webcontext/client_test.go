// AngelaMos | 2026
// client_test.go

package webcontext

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/carterperez-dev/insighthub/internal/config"
)

func testClient(baseURL string) *Client {
	return NewClient(config.FirecrawlConfig{
		APIKey:      "fc-test",
		BaseURL:     baseURL,
		ResultLimit: 3,
		Language:    "en",
		Timeout:     2 * time.Second,
	})
}

func TestFetchContextFormatsResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/search", r.URL.Path)
			assert.Equal(t, "Bearer fc-test", r.Header.Get("Authorization"))

			var req searchRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "crm tools", req.Query)
			assert.Equal(t, 3, req.Limit)
			assert.Equal(t, "en", req.Lang)

			resp := searchResponse{
				Success: true,
				Data: []searchResult{
					{URL: "https://a.example", Title: "A", Markdown: "alpha"},
					{URL: "https://b.example", Title: "B", Snippet: "beta"},
				},
			}
			assert.NoError(t, json.NewEncoder(w).Encode(resp))
		}))
	defer srv.Close()

	got := testClient(srv.URL).FetchContext(context.Background(), "crm tools")

	want := "Source: https://a.example\nTitle: A\nContent: alpha" +
		"\n\n---\n\n" +
		"Source: https://b.example\nTitle: B\nContent: beta"
	assert.Equal(t, want, got)
}

func TestFetchContextEmptyWithoutKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			t.Error("request should not be made without an api key")
		}))
	defer srv.Close()

	client := NewClient(config.FirecrawlConfig{
		BaseURL: srv.URL,
		Timeout: time.Second,
	})

	assert.Empty(t, client.FetchContext(context.Background(), "anything"))
}

func TestFetchContextEmptyOnHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
	defer srv.Close()

	assert.Empty(t, testClient(srv.URL).FetchContext(context.Background(), "q"))
}

func TestFetchContextEmptyOnFailureFlag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			assert.NoError(t, json.NewEncoder(w).Encode(searchResponse{
				Success: false,
			}))
		}))
	defer srv.Close()

	assert.Empty(t, testClient(srv.URL).FetchContext(context.Background(), "q"))
}

func TestFetchContextEmptyOnNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			assert.NoError(t, json.NewEncoder(w).Encode(searchResponse{
				Success: true,
			}))
		}))
	defer srv.Close()

	assert.Empty(t, testClient(srv.URL).FetchContext(context.Background(), "q"))
}

func TestFetchContextEmptyOnBadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
	defer srv.Close()

	assert.Empty(t, testClient(srv.URL).FetchContext(context.Background(), "q"))
}

func TestFormatResultsPrefersMarkdown(t *testing.T) {
	got := formatResults([]searchResult{
		{URL: "https://a", Title: "A", Markdown: "full page", Snippet: "short"},
	})

	assert.Equal(t, "Source: https://a\nTitle: A\nContent: full page", got)
}
