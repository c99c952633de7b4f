package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerRateLimitRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getRateLimitStatus",
		Method:      http.MethodGet,
		Path:        "/stickers/rate-limit/status",
		Summary:     "Get rate limit status",
		Description: "Returns the caller's current rate limit counter for an endpoint without consuming a request",
		Tags:        []string{"Stickers"},
	}, s.handleRateLimitStatus)
}

// === DTOs ===

// RateLimitStatusInput contains parameters for the rate limit status query.
type RateLimitStatusInput struct {
	Endpoint      string `query:"endpoint" default:"upload" doc:"Endpoint name the limit applies to"`
	XForwardedFor string `header:"X-Forwarded-For"`
	XRealIP       string `header:"X-Real-IP"`
}

// RateLimitStatusResponse describes the caller's counter state.
type RateLimitStatusResponse struct {
	Endpoint  string    `json:"endpoint" doc:"Endpoint name"`
	Limit     int       `json:"limit" doc:"Requests allowed per window"`
	Remaining int       `json:"remaining" doc:"Requests left in the current window"`
	Reset     time.Time `json:"reset,omitzero" doc:"When the current window resets; absent when no window is active"`
}

// RateLimitStatusOutput wraps the rate limit status response for Huma.
type RateLimitStatusOutput struct {
	Body RateLimitStatusResponse
}

// === Handlers ===

func (s *Server) handleRateLimitStatus(_ context.Context, input *RateLimitStatusInput) (*RateLimitStatusOutput, error) {
	endpoint := input.Endpoint
	if endpoint == "" {
		endpoint = EndpointUpload
	}

	ip := headerClientIP(input.XForwardedFor, input.XRealIP)
	result := s.uploadLimiter.Status(ip + ":" + endpoint)

	return &RateLimitStatusOutput{
		Body: RateLimitStatusResponse{
			Endpoint:  endpoint,
			Limit:     result.Limit,
			Remaining: result.Remaining,
			Reset:     result.Reset,
		},
	}, nil
}

// headerClientIP resolves the client IP from proxy headers, mirroring
// clientIP for handlers that receive headers through huma inputs.
func headerClientIP(forwardedFor, realIP string) string {
	if forwardedFor != "" {
		if i := strings.IndexByte(forwardedFor, ','); i >= 0 {
			return strings.TrimSpace(forwardedFor[:i])
		}
		return strings.TrimSpace(forwardedFor)
	}
	if realIP != "" {
		return realIP
	}
	return "unknown"
}
