package evalclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/csheth/calc/internal/evalserver"
)

type httpClient struct {
	host   string
	client *http.Client
}

func newHTTPClient(host string, custom *http.Client) (*httpClient, error) {
	host = strings.TrimRight(host, "/")
	parsed, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("parse evaluator url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("evaluator url %q must use http or https", host)
	}
	return &httpClient{host: host, client: pickHTTPClient(custom)}, nil
}

func (c *httpClient) Name() string {
	return fmt.Sprintf("remote (%s)", c.host)
}

func (c *httpClient) Evaluate(ctx context.Context, expression string) (string, error) {
	buf, err := json.Marshal(evalserver.CalculateRequest{Expression: expression})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+evalserver.CalculatePath, bytes.NewReader(buf))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode == http.StatusUnprocessableEntity {
		var failure evalserver.ErrorResponse
		if err := json.Unmarshal(body, &failure); err == nil && failure.Error != "" {
			return "", errors.New(failure.Error)
		}
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("evaluator API error: %s (%s)", resp.Status, strings.TrimSpace(string(body)))
	}

	var parsed evalserver.CalculateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", err
	}
	if parsed.Result == "" {
		return "", fmt.Errorf("evaluator returned an empty result")
	}
	return parsed.Result, nil
}
