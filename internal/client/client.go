// Package client implements the catalog services over the REST API so the
// web UI can run against a remote catalog.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"catalog-manager/internal/domain"
	"catalog-manager/internal/middleware"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// Client performs JSON requests against the catalog REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a client for the REST API rooted at baseURL
func New(baseURL string, timeout time.Duration, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// requestID forwards the id of the inbound request, or starts a new one
func requestID(ctx context.Context) string {
	if id := chimiddleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}

// do sends body as JSON and decodes a 2xx answer into out. Error answers
// are turned back into catalog errors of the matching kind.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	id := requestID(ctx)
	req.Header.Set(chimiddleware.RequestIDHeader, id)

	c.logger.Debug("Calling catalog API",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", id),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Catalog API unreachable", zap.String("url", c.baseURL), zap.Error(err))
		return domain.Unavailable("Catalog service is unavailable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.StoreFailure("Failed to read catalog response", err)
	}
	return nil
}

type errorBody struct {
	Error struct {
		Message string `json:"message"`
		Details struct {
			ValidationErrors []middleware.ValidationError `json:"validation_errors"`
		} `json:"details"`
	} `json:"error"`
}

func decodeError(resp *http.Response) error {
	message := http.StatusText(resp.StatusCode)

	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error.Message != "" {
		message = body.Error.Message
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return domain.NotFound(message)
	case http.StatusConflict:
		return domain.IntegrityViolation(message, nil)
	case http.StatusBadRequest:
		for _, v := range body.Error.Details.ValidationErrors {
			message += fmt.Sprintf("; %s: %s", v.Field, v.Message)
		}
		return domain.InvalidInput(message)
	default:
		return domain.StoreFailure(message, fmt.Errorf("catalog API answered %d", resp.StatusCode))
	}
}
