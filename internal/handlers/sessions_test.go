package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/murder-house/internal/session"
	"github.com/jwebster45206/murder-house/internal/storage"
	"github.com/jwebster45206/murder-house/pkg/api"
	"github.com/jwebster45206/murder-house/pkg/house"
	"github.com/jwebster45206/murder-house/pkg/narrative"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *storage.MockStorage) {
	t.Helper()
	store := storage.NewMockStorage()
	mgr := session.NewManager(store, narrative.Static{}, time.Second, testLogger())
	mux := http.NewServeMux()
	h := NewSessionHandler(mgr, testLogger())
	mux.Handle("/v1/sessions", h)
	mux.Handle("/v1/sessions/", h)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, store
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func startSession(t *testing.T, srv *httptest.Server) uuid.UUID {
	t.Helper()
	resp := doJSON(t, http.MethodPost, srv.URL+"/v1/sessions",
		api.StartSessionRequest{Theme: "victorian", PlayerName: "Holmes"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decode[api.StartSessionResponse](t, resp)
	assert.Contains(t, body.Intro, "Holmes")
	return body.SessionID
}

func TestSessionHandler_Lifecycle(t *testing.T) {
	srv, store := newTestServer(t)
	id := startSession(t, srv)
	sessionURL := fmt.Sprintf("%s/v1/sessions/%s", srv.URL, id)

	resp := doJSON(t, http.MethodGet, sessionURL, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view := decode[api.ViewResponse](t, resp)
	assert.Equal(t, id, view.SessionID)
	assert.Contains(t, view.CurrentRoom, "You are currently in the Room 1")
	assert.Equal(t, []int{0}, view.Visited)
	assert.False(t, view.Won)

	resp = doJSON(t, http.MethodPost, sessionURL+"/actions", api.ActionRequest{Action: "1", Params: []string{"2"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	action := decode[api.ActionResponse](t, resp)
	assert.Empty(t, action.ErrorKind)
	assert.Contains(t, action.CurrentRoom, "You are currently in the Room 3")

	resp = doJSON(t, http.MethodDelete, sessionURL, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, 0, store.SessionCount())

	resp = doJSON(t, http.MethodGet, sessionURL, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSessionHandler_RejectedTurnIsOK(t *testing.T) {
	srv, _ := newTestServer(t)
	id := startSession(t, srv)

	resp := doJSON(t, http.MethodPost, fmt.Sprintf("%s/v1/sessions/%s/actions", srv.URL, id),
		api.ActionRequest{Action: "1", Params: []string{"9"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[api.ActionResponse](t, resp)
	assert.Equal(t, "invalid_room_index", body.ErrorKind)
	assert.Equal(t, "Invalid choice. Choose a room between 1 and 5.", body.Outcome)
}

func TestSessionHandler_Quit(t *testing.T) {
	srv, store := newTestServer(t)
	id := startSession(t, srv)

	resp := doJSON(t, http.MethodPost, fmt.Sprintf("%s/v1/sessions/%s/actions", srv.URL, id),
		api.ActionRequest{Action: "q"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[api.ActionResponse](t, resp)
	assert.True(t, body.Ended)
	assert.Equal(t, 0, store.SessionCount())
}

func TestSessionHandler_BadRequests(t *testing.T) {
	srv, _ := newTestServer(t)
	id := startSession(t, srv)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"bad start json", http.MethodPost, "/v1/sessions", "{", http.StatusBadRequest},
		{"bad action json", http.MethodPost, "/v1/sessions/" + id.String() + "/actions", "not json", http.StatusBadRequest},
		{"bad id", http.MethodGet, "/v1/sessions/not-a-uuid", "", http.StatusBadRequest},
		{"unknown session", http.MethodGet, "/v1/sessions/" + uuid.NewString(), "", http.StatusNotFound},
		{"unknown session action", http.MethodPost, "/v1/sessions/" + uuid.NewString() + "/actions", `{"action":"2"}`, http.StatusNotFound},
		{"unknown session delete", http.MethodDelete, "/v1/sessions/" + uuid.NewString(), "", http.StatusNotFound},
		{"list not allowed", http.MethodGet, "/v1/sessions", "", http.StatusMethodNotAllowed},
		{"patch not allowed", http.MethodPatch, "/v1/sessions/" + id.String(), "", http.StatusMethodNotAllowed},
		{"get actions not allowed", http.MethodGet, "/v1/sessions/" + id.String() + "/actions", "", http.StatusMethodNotAllowed},
		{"unknown subresource", http.MethodGet, "/v1/sessions/" + id.String() + "/clues", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, srv.URL+tt.path, bytes.NewBufferString(tt.body))
			require.NoError(t, err)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.status, resp.StatusCode)
			body := decode[api.ErrorResponse](t, resp)
			assert.NotEmpty(t, body.Error)
		})
	}
}

// failingSessions returns err from every call.
type failingSessions struct{ err error }

func (f failingSessions) StartSession(context.Context, string, string) (uuid.UUID, string, error) {
	return uuid.Nil, "", f.err
}

func (f failingSessions) SendAction(context.Context, uuid.UUID, string, []string) (*api.ActionResponse, error) {
	return nil, f.err
}

func (f failingSessions) View(context.Context, uuid.UUID) (*api.ViewResponse, error) {
	return nil, f.err
}

func (f failingSessions) End(context.Context, uuid.UUID) error {
	return f.err
}

func TestSessionHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"graph construction", fmt.Errorf("build: %w", house.ErrGraphConstruction), http.StatusInternalServerError},
		{"busy", session.ErrSessionBusy, http.StatusConflict},
		{"not found", storage.ErrSessionNotFound, http.StatusNotFound},
		{"storage down", errors.New("redis: connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSessionHandler(failingSessions{err: tt.err}, testLogger())

			req := httptest.NewRequest(http.MethodPost, "/v1/sessions",
				bytes.NewBufferString(`{"theme":"t","player_name":"p"}`))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)

			req = httptest.NewRequest(http.MethodPost, "/v1/sessions/"+uuid.NewString()+"/actions",
				bytes.NewBufferString(`{"action":"2"}`))
			w = httptest.NewRecorder()
			h.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
