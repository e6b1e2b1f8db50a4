// Package transport configures the HTTP client shared by the backend
// clients. The openai SDK client is used for its generic verbs
// (Get/Post/Put/Delete): base URL resolution, JSON encoding, timeouts and
// typed API errors come for free.
package transport

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
)

const RequestIDHeader = "X-Request-ID"

// TokenSource supplies the bearer token replayed on every request.
type TokenSource interface {
	Token() string
}

// New returns a client rooted at baseURL. Retries are disabled; timeout 0
// leaves requests unbounded. tokens may be nil for unauthenticated
// services.
func New(baseURL string, timeout time.Duration, tokens TokenSource, logger *zap.Logger) openai.Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := []option.RequestOption{
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
		option.WithMiddleware(authorize(tokens), logRequests(logger)),
	}
	if timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(timeout))
	}
	return openai.NewClient(opts...)
}

// StatusCode extracts the HTTP status from an SDK error, or 0.
func StatusCode(err error) int {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// authorize runs last before the wire, so it overrides whatever the SDK
// derived from OPENAI_* environment variables.
func authorize(tokens TokenSource) option.Middleware {
	return func(req *http.Request, next option.MiddlewareNext) (*http.Response, error) {
		req.Header.Del("Authorization")
		req.Header.Del("OpenAI-Organization")
		req.Header.Del("OpenAI-Project")
		if tokens != nil {
			if tok := tokens.Token(); tok != "" {
				req.Header.Set("Authorization", "Bearer "+tok)
			}
		}
		return next(req)
	}
}

func logRequests(logger *zap.Logger) option.Middleware {
	return func(req *http.Request, next option.MiddlewareNext) (*http.Response, error) {
		id := uuid.NewString()
		req.Header.Set(RequestIDHeader, id)
		start := time.Now()

		resp, err := next(req)

		fields := []zap.Field{
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.String("request_id", id),
			zap.Duration("duration", time.Since(start)),
		}
		if err != nil {
			logger.Warn("request failed", append(fields, zap.Error(err))...)
			return resp, err
		}
		fields = append(fields, zap.Int("status", resp.StatusCode))
		if resp.StatusCode >= 400 {
			logger.Warn("request rejected", fields...)
		} else {
			logger.Info("request", fields...)
		}
		return resp, nil
	}
}
