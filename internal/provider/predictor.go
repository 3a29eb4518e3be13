package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const predictorName = "predictor"

// Predictor forwards feature payloads to the remote prediction model.
type Predictor struct {
	httpClient *http.Client
	url        string
}

// NewPredictor creates a client for the prediction endpoint at url.
func NewPredictor(httpClient *http.Client, url string) *Predictor {
	return &Predictor{httpClient: httpClient, url: url}
}

// Predict posts payload verbatim and returns the model's JSON response verbatim.
func (p *Predictor) Predict(ctx context.Context, payload json.RawMessage) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%s: building request: %w", predictorName, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: http request: %w", predictorName, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{Provider: predictorName, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%s: reading response: %w", predictorName, err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%s: %w", predictorName, ErrBadResponse)
	}
	return body, nil
}
