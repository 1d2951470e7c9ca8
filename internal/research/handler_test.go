// AngelaMos | 2026
// handler_test.go

package research

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/insighthub/internal/middleware"
)

func authedRequest(
	method, target, body, userID string,
) *http.Request {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	return req.WithContext(ctx)
}

func TestRunResearchInsufficientCredits(t *testing.T) {
	svc := newTestService(
		&fakeRepo{},
		&fakeProvider{},
		&fakeGenerator{text: "# Insight"},
		&fakeLedger{credits: 3},
	)
	handler := NewHandler(svc)

	req := authedRequest(
		http.MethodPost, "/v1/research",
		`{"query":"compare CRM tools"}`, "user-1",
	)
	rec := httptest.NewRecorder()

	handler.RunResearch(rec, req)

	assert.Equal(t, http.StatusPaymentRequired, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, "INSUFFICIENT_CREDITS", body.Error.Code)
}

func TestRunResearchGenerationFailure(t *testing.T) {
	svc := newTestService(
		&fakeRepo{},
		&fakeProvider{},
		&fakeGenerator{err: assert.AnError},
		&fakeLedger{credits: 100},
	)
	handler := NewHandler(svc)

	req := authedRequest(
		http.MethodPost, "/v1/research",
		`{"query":"compare CRM tools"}`, "user-1",
	)
	rec := httptest.NewRecorder()

	handler.RunResearch(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestRunResearchSuccess(t *testing.T) {
	svc := newTestService(
		&fakeRepo{},
		&fakeProvider{},
		&fakeGenerator{text: "# Insight"},
		&fakeLedger{credits: 100},
	)
	handler := NewHandler(svc)

	req := authedRequest(
		http.MethodPost, "/v1/research",
		`{"query":"compare CRM tools","category":"market_analysis"}`, "user-1",
	)
	rec := httptest.NewRecorder()

	handler.RunResearch(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool        `json:"success"`
		Data    RunResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

	assert.True(t, body.Success)
	assert.Equal(t, "# Insight", body.Data.Insight)
	require.NotNil(t, body.Data.Credits)
	assert.Equal(t, 95, *body.Data.Credits)
	assert.Empty(t, body.Data.Warning)
	require.NotNil(t, body.Data.Research)
	assert.Equal(t, CategoryMarket, body.Data.Research.Category)
}

func TestRunResearchRejectsEmptyQuery(t *testing.T) {
	svc := newTestService(
		&fakeRepo{},
		&fakeProvider{},
		&fakeGenerator{text: "# Insight"},
		&fakeLedger{credits: 100},
	)
	handler := NewHandler(svc)

	req := authedRequest(http.MethodPost, "/v1/research", `{}`, "user-1")
	rec := httptest.NewRecorder()

	handler.RunResearch(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTip(t *testing.T) {
	svc := newTestService(
		&fakeRepo{},
		&fakeProvider{},
		&fakeGenerator{},
		&fakeLedger{credits: 100},
	)
	handler := NewHandler(svc)

	req := authedRequest(http.MethodGet, "/v1/research/tip", "", "user-1")
	rec := httptest.NewRecorder()

	handler.GetTip(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data TipResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "tip", body.Data.Tip)
}
