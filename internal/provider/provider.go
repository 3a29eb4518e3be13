// Package provider implements HTTP clients for the external market data
// services: Alpha Vantage time series and news, Tiingo search and daily
// prices, and the remote prediction model.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// maxBodyBytes caps how much of an upstream response is read.
const maxBodyBytes = 32 << 20

// Sentinel causes so callers can tell "the provider answered without data"
// from transport failures.
var (
	ErrNoData      = errors.New("provider returned no data")
	ErrBadResponse = errors.New("provider returned an unusable response")
)

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	Provider   string
	StatusCode int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Provider, e.StatusCode)
}

// getJSON performs a GET and decodes a JSON body into a generic value suitable
// for jsonpath navigation. Non-JSON content types are rejected.
func getJSON(ctx context.Context, client *http.Client, name, url string, header http.Header) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: building request: %w", name, err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: http request: %w", name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{Provider: name, StatusCode: resp.StatusCode}
	}
	if !isJSON(resp.Header.Get("Content-Type")) {
		return nil, fmt.Errorf("%s: content type %q: %w", name, resp.Header.Get("Content-Type"), ErrBadResponse)
	}

	var payload any
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%s: decoding response: %w: %v", name, ErrBadResponse, err)
	}
	return payload, nil
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// lookup evaluates a jsonpath expression and unwraps single-element results.
func lookup(path string, payload any) (any, error) {
	v, err := jsonpath.Get(path, payload)
	if err != nil {
		return nil, err
	}
	if list, ok := v.([]any); ok && len(list) == 1 {
		v = list[0]
	}
	return v, nil
}

// lookupObject returns the object found at path.
func lookupObject(path string, payload any) (map[string]any, error) {
	v, err := lookup(path, payload)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s is not an object", path)
	}
	return obj, nil
}

// toDecimal accepts the numeric encodings providers use: JSON numbers and
// numeric strings.
func toDecimal(v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case float64:
		return decimal.NewFromFloat(x), nil
	case json.Number:
		return decimal.NewFromString(x.String())
	case string:
		return decimal.NewFromString(strings.TrimSpace(x))
	case nil:
		return decimal.Zero, errors.New("missing value")
	default:
		return decimal.Zero, fmt.Errorf("unexpected numeric type %T", v)
	}
}

// field reads a numeric field of an object, treating absence as zero.
func field(obj map[string]any, key string) decimal.Decimal {
	d, err := toDecimal(obj[key])
	if err != nil {
		return decimal.Zero
	}
	return d
}
