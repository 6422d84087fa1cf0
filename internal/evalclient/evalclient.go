package evalclient

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/csheth/calc/internal/calc"
	"github.com/csheth/calc/internal/evaluator"
)

// EndpointEnvVar names the evaluator service base URL.
const EndpointEnvVar = "CALC_EVALUATOR_URL"

const defaultEvalHTTPTimeout = 10 * time.Second

// Config describes how to reach an evaluator.
type Config struct {
	Endpoint   string
	HTTPClient *http.Client
}

// Client is an evaluator the shell can describe in its status line.
type Client interface {
	calc.Evaluator
	Name() string
}

type localClient struct {
	evaluator *evaluator.Evaluator
}

func (c localClient) Evaluate(ctx context.Context, expression string) (string, error) {
	return c.evaluator.Evaluate(ctx, expression)
}

func (c localClient) Name() string {
	return c.evaluator.Name()
}

// NewFromEnv inspects CLI arguments & environment variables to build a client.
// Without an endpoint expressions are evaluated in-process.
func NewFromEnv(cfg Config) (Client, error) {
	host := strings.TrimSpace(cfg.Endpoint)
	if host == "" {
		host = strings.TrimSpace(os.Getenv(EndpointEnvVar))
	}
	if host == "" {
		return localClient{evaluator: evaluator.New()}, nil
	}
	client, err := newHTTPClient(host, cfg.HTTPClient)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func pickHTTPClient(custom *http.Client) *http.Client {
	if custom != nil {
		return custom
	}
	return &http.Client{Timeout: defaultEvalHTTPTimeout}
}
