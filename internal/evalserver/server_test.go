package evalserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csheth/calc/internal/evaluator"
	"github.com/csheth/calc/internal/logging"
)

func newTestServer(t *testing.T, buf *bytes.Buffer) *Server {
	t.Helper()
	return New(Config{
		Evaluator: evaluator.New(),
		Logger:    logging.NewStructuredLogger(buf, slog.LevelInfo),
	})
}

func postCalculate(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, CalculatePath, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestCalculateHandlerSuccess(t *testing.T) {
	var logs bytes.Buffer
	handler := newTestServer(t, &logs).Handler()

	rr := postCalculate(t, handler, `{"expression":"2 + 3 × 4"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var resp CalculateResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "14", resp.Result)

	assert.Contains(t, logs.String(), `"msg":"http_request"`)
	assert.Contains(t, logs.String(), `"status":200`)
}

func TestCalculateHandlerDivideByZero(t *testing.T) {
	var logs bytes.Buffer
	handler := newTestServer(t, &logs).Handler()

	rr := postCalculate(t, handler, `{"expression":"5 ÷ 0"}`)

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, evaluator.ErrDivideByZero.Error(), resp.Error)
}

func TestCalculateHandlerRejectsBadInput(t *testing.T) {
	var logs bytes.Buffer
	handler := newTestServer(t, &logs).Handler()

	cases := []struct {
		name   string
		body   string
		status int
	}{
		{name: "invalid json", body: `{"expression":`, status: http.StatusBadRequest},
		{name: "blank expression", body: `{"expression":"  "}`, status: http.StatusBadRequest},
		{name: "malformed expression", body: `{"expression":"2 +"}`, status: http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := postCalculate(t, handler, tc.body)
			assert.Equal(t, tc.status, rr.Code)
		})
	}
}

func TestCalculateHandlerLimitsBodySize(t *testing.T) {
	var logs bytes.Buffer
	srv := New(Config{
		Evaluator:    evaluator.New(),
		Logger:       logging.NewStructuredLogger(&logs, slog.LevelInfo),
		MaxBodyBytes: 32,
	})

	body := `{"expression":"` + strings.Repeat("1 + ", 50) + `1"}`
	rr := postCalculate(t, srv.Handler(), body)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHealthAndNotFound(t *testing.T) {
	var logs bytes.Buffer
	handler := newTestServer(t, &logs).Handler()

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, HealthPath, nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCompressesWhenRequested(t *testing.T) {
	var logs bytes.Buffer
	handler := newTestServer(t, &logs).Handler()
	// a 3000 digit product keeps the JSON body above gzhttp's minimum size
	digits := strings.Repeat("9", 3000)
	body := `{"expression":"` + digits + ` × 1"}`

	t.Run("compresses response when gzip accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, CalculatePath, strings.NewReader(body))
		req.Header.Set("Accept-Encoding", "gzip")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
		assert.Contains(t, rr.Header().Get("Vary"), "Accept-Encoding")

		reader, err := gzip.NewReader(bytes.NewReader(rr.Body.Bytes()))
		require.NoError(t, err)
		defer reader.Close()
		decompressed, err := io.ReadAll(reader)
		require.NoError(t, err)

		var resp CalculateResponse
		require.NoError(t, json.Unmarshal(decompressed, &resp))
		assert.Equal(t, digits, resp.Result)
		assert.Less(t, rr.Body.Len(), len(decompressed))
	})

	t.Run("does not compress when gzip not accepted", func(t *testing.T) {
		rr := postCalculate(t, handler, body)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, rr.Header().Get("Content-Encoding"))
		var resp CalculateResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, digits, resp.Result)
	})
}

func TestRunStopsOnCancel(t *testing.T) {
	var buf bytes.Buffer
	srv := New(Config{
		Addr:      "127.0.0.1:0",
		Evaluator: evaluator.New(),
		Logger:    logging.NewStructuredLogger(&buf, slog.LevelInfo),
	})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, 1, strings.Count(buf.String(), "starting evaluator service"))
	assert.Contains(t, buf.String(), "evaluator service stopped")
}
