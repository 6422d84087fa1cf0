package evalclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csheth/calc/internal/calc"
	"github.com/csheth/calc/internal/evalserver"
	"github.com/csheth/calc/internal/evaluator"
)

func TestHTTPClientEvaluate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, evalserver.CalculatePath, r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		var payload evalserver.CalculateRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload)) {
			return
		}
		assert.Equal(t, "2 + 2", payload.Expression)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result":"4"}`))
	}))
	defer server.Close()

	client, err := newHTTPClient(server.URL, server.Client())
	require.NoError(t, err)

	result, err := client.Evaluate(context.Background(), "2 + 2")
	require.NoError(t, err)
	assert.Equal(t, "4", result)
}

func TestHTTPClientSurfacesEvaluatorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"cannot divide by zero"}`))
	}))
	defer server.Close()

	client, err := newHTTPClient(server.URL, server.Client())
	require.NoError(t, err)

	_, err = client.Evaluate(context.Background(), "5 ÷ 0")
	require.Error(t, err)
	assert.Equal(t, "cannot divide by zero", err.Error())
}

func TestHTTPClientReportsServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := newHTTPClient(server.URL, server.Client())
	require.NoError(t, err)

	_, err = client.Evaluate(context.Background(), "1 + 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "evaluator API error: 500")
	assert.Contains(t, err.Error(), "boom")
}

func TestRoundTripThroughEvaluatorService(t *testing.T) {
	server := httptest.NewServer(evalserver.New(evalserver.Config{Evaluator: evaluator.New()}).Handler())
	defer server.Close()

	client, err := NewFromEnv(Config{Endpoint: server.URL, HTTPClient: server.Client()})
	require.NoError(t, err)

	ctx := context.Background()
	assert.Equal(t, calc.Outcome{Value: "14"}, calc.Calculate(ctx, client, "2 + 3 × 4"))
	assert.Equal(t, calc.Outcome{Value: "Cannot divide by zero", Error: true}, calc.Calculate(ctx, client, "5 ÷ 0"))
	assert.Equal(t, calc.Outcome{Value: "Error", Error: true}, calc.Calculate(ctx, client, "1.2.3"))
}
