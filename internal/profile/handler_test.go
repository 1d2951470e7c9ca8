// AngelaMos | 2026
// handler_test.go

package profile

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/insighthub/internal/core"
	"github.com/carterperez-dev/insighthub/internal/middleware"
)

type fakeAccounts struct {
	err     error
	userID  string
	newName string
}

func (f *fakeAccounts) UpdateName(
	_ context.Context,
	userID, name string,
) error {
	if f.err != nil {
		return f.err
	}
	f.userID = userID
	f.newName = name
	return nil
}

func authedRequest(method, target, body, userID string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	return req.WithContext(ctx)
}

func TestUpdateName(t *testing.T) {
	accounts := &fakeAccounts{}
	handler := NewHandler(NewService(newFakeRepository(), 100), accounts)

	req := authedRequest(
		http.MethodPut, "/v1/profile/me",
		`{"name":"Ada Lovelace"}`, "user-1",
	)
	rec := httptest.NewRecorder()

	handler.UpdateName(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", accounts.userID)
	assert.Equal(t, "Ada Lovelace", accounts.newName)

	var body struct {
		Data NameResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Ada Lovelace", body.Data.Name)
}

func TestUpdateNameRejectsEmpty(t *testing.T) {
	accounts := &fakeAccounts{}
	handler := NewHandler(NewService(newFakeRepository(), 100), accounts)

	req := authedRequest(
		http.MethodPut, "/v1/profile/me", `{"name":""}`, "user-1",
	)
	rec := httptest.NewRecorder()

	handler.UpdateName(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, accounts.newName)
}

func TestUpdateNameUnknownUser(t *testing.T) {
	accounts := &fakeAccounts{err: core.ErrNotFound}
	handler := NewHandler(NewService(newFakeRepository(), 100), accounts)

	req := authedRequest(
		http.MethodPut, "/v1/profile/me", `{"name":"Ada"}`, "user-1",
	)
	rec := httptest.NewRecorder()

	handler.UpdateName(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetMyProfileDefaults(t *testing.T) {
	handler := NewHandler(NewService(newFakeRepository(), 100), &fakeAccounts{})

	req := authedRequest(http.MethodGet, "/v1/profile/me", "", "user-1")
	rec := httptest.NewRecorder()

	handler.GetMyProfile(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data ProfileResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 100, body.Data.Credits)
	assert.Equal(t, ThemeDark, body.Data.Preferences.Theme)
}
