package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/orienta/internal/api"
	"github.com/spigell/orienta/internal/generation"
	"github.com/spigell/orienta/internal/metrics"
	"github.com/spigell/orienta/internal/profile"
	"github.com/spigell/orienta/internal/prompt"
	"github.com/spigell/orienta/internal/results"
	"github.com/spigell/orienta/internal/session"
	"github.com/spigell/orienta/internal/store"
)

func newTestServer(t *testing.T, opts api.Options) *httptest.Server {
	t.Helper()

	builder, err := prompt.New(prompt.Schedule{}, prompt.Limits{})
	require.NoError(t, err)

	engine, err := session.NewEngine(session.Deps{
		Store:       store.NewMemory(),
		Builder:     builder,
		Generator:   generation.New(nil, generation.Options{}),
		Synthesizer: results.New(nil, builder, profile.Comparator{}, results.Config{}, nil, nil),
	}, session.Config{})
	require.NoError(t, err)

	srv := httptest.NewServer(api.NewRouter(engine, opts))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, owner string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = strings.NewReader(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if owner != "" {
		req.Header.Set(api.OwnerHeader, owner)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func errorCode(t *testing.T, data []byte) string {
	t.Helper()
	var env struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(data, &env))
	return env.Error.Code
}

func TestInterviewFlow(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, api.Options{})

	resp, data := do(t, http.MethodPost, srv.URL+"/v1/sessions", "ana", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))

	var started session.Response
	require.NoError(t, json.Unmarshal(data, &started))
	require.NotNil(t, started.Question)

	resp, _ = do(t, http.MethodPost, srv.URL+"/v1/sessions", "ana", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "second start resumes")

	answer := map[string]any{
		"requestId":  "r-1",
		"questionId": started.Question.ID,
		"answer":     "Me gusta programar y resolver problemas de lógica",
	}
	answerURL := srv.URL + "/v1/sessions/" + started.SessionID + "/answers"

	resp, first := do(t, http.MethodPost, answerURL, "ana", answer)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(first))
	resp, replay := do(t, http.MethodPost, answerURL, "ana", answer)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, string(first), string(replay))

	resp, data = do(t, http.MethodGet, srv.URL+"/v1/sessions/"+started.SessionID, "ana", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var view struct {
		CurrentIndex   int               `json:"currentIndex"`
		TotalQuestions int               `json:"totalQuestions"`
		Answers        []json.RawMessage `json:"answers"`
	}
	require.NoError(t, json.Unmarshal(data, &view))
	assert.Equal(t, 1, view.CurrentIndex)
	assert.Equal(t, 20, view.TotalQuestions)
	assert.Len(t, view.Answers, 1)

	resp, data = do(t, http.MethodPost, srv.URL+"/v1/sessions/"+started.SessionID+"/results", "ana", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "NOT_COMPLETED", errorCode(t, data))
}

func TestErrorMapping(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, api.Options{})

	resp, data := do(t, http.MethodPost, srv.URL+"/v1/sessions", "ana", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var started session.Response
	require.NoError(t, json.Unmarshal(data, &started))
	answerURL := srv.URL + "/v1/sessions/" + started.SessionID + "/answers"

	tests := []struct {
		name   string
		method string
		url    string
		owner  string
		body   any
		status int
		code   string
	}{
		{"missing owner", http.MethodPost, srv.URL + "/v1/sessions", "", nil, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"invalid json", http.MethodPost, answerURL, "ana", "{oops", http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"missing answer", http.MethodPost, answerURL, "ana", map[string]any{"requestId": "x"}, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"missing request id", http.MethodPost, answerURL, "ana", map[string]any{"answer": "hola"}, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"foreign owner", http.MethodGet, srv.URL + "/v1/sessions/" + started.SessionID, "eve", nil, http.StatusNotFound, "NOT_FOUND"},
		{"unknown session", http.MethodPost, srv.URL + "/v1/sessions/nope/answers", "ana", map[string]any{"requestId": "x", "answer": "hola"}, http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := do(t, tt.method, tt.url, tt.owner, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode, string(data))
			assert.Equal(t, tt.code, errorCode(t, data))
		})
	}
}

func TestIdempotencyKeyHeader(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, api.Options{})

	_, data := do(t, http.MethodPost, srv.URL+"/v1/sessions", "ana", nil)
	var started session.Response
	require.NoError(t, json.Unmarshal(data, &started))

	send := func() int {
		req, err := http.NewRequest(http.MethodPost, srv.URL+"/v1/sessions/"+started.SessionID+"/answers",
			strings.NewReader(`{"answer":"Me gusta dibujar"}`))
		require.NoError(t, err)
		req.Header.Set(api.OwnerHeader, "ana")
		req.Header.Set("Idempotency-Key", "k-1")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}
	require.Equal(t, http.StatusOK, send())
	require.Equal(t, http.StatusOK, send())

	_, data = do(t, http.MethodGet, srv.URL+"/v1/sessions/"+started.SessionID, "ana", nil)
	var view struct {
		CurrentIndex int `json:"currentIndex"`
	}
	require.NoError(t, json.Unmarshal(data, &view))
	assert.Equal(t, 1, view.CurrentIndex)
}

func TestHealthAndMetrics(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewRegistry()
	srv := newTestServer(t, api.Options{Metrics: metrics.New(reg), Gatherer: reg})

	resp, _ := do(t, http.MethodGet, srv.URL+"/healthz", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, data := do(t, http.MethodGet, srv.URL+"/metrics", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), "orienta_http_requests_total")
	assert.Contains(t, string(data), `route="/healthz"`)
}

func TestRateLimitPerOwner(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, api.Options{RateLimitPerMin: 2})

	for i := 0; i < 2; i++ {
		resp, _ := do(t, http.MethodGet, srv.URL+"/v1/sessions/none", "ana", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	}
	resp, _ := do(t, http.MethodGet, srv.URL+"/v1/sessions/none", "ana", nil)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	resp, _ = do(t, http.MethodGet, srv.URL+"/v1/sessions/none", "bob", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "limits are per owner")
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, api.Options{AllowedOrigins: []string{"https://app.example"}})

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/v1/sessions", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "https://app.example", resp.Header.Get("Access-Control-Allow-Origin"))
}
