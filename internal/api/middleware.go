package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/stickervault/stickervault-server/internal/http/response"
)

// EnvelopeTransformer wraps every huma response body in the shared
// envelope: {"v": 1, "success": bool, "data": ...} for successes and
// {"v": 1, "success": false, "error"/"code"/"message"/"details"} for
// errors. The version field is named exactly "v"; clients key on it.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	code, err := strconv.Atoi(status)
	if err != nil {
		code = http.StatusOK
	}

	if apiErr, ok := v.(*APIError); ok {
		envelope := map[string]any{
			"v":       1,
			"success": false,
			"error":   apiErr.Message,
		}
		if apiErr.Code != "" {
			envelope["code"] = apiErr.Code
			envelope["message"] = apiErr.Message
		}
		if apiErr.Details != nil {
			envelope["details"] = apiErr.Details
		}
		return envelope, nil
	}

	return map[string]any{
		"v":       1,
		"success": code < 400,
		"data":    v,
	}, nil
}

// rateLimit enforces the per-client request budget for an endpoint.
// The key combines client IP and endpoint name so limits on different
// endpoints never interfere.
func (s *Server) rateLimit(endpoint string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r) + ":" + endpoint

			result, ok := s.uploadLimiter.Allow(key)
			if !ok {
				s.logger.Warn("Rate limit exceeded",
					"ip", clientIP(r),
					"endpoint", endpoint,
					"reset", result.Reset,
				)
				w.Header().Set("Retry-After", strconv.Itoa(int(time.Until(result.Reset).Seconds())))
				response.TooManyRequests(w, "Too many upload requests. Try again after "+result.Reset.Format(time.RFC3339), s.logger)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP extracts the client IP from proxy headers.
// X-Forwarded-For may contain multiple IPs; the first is the client.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	return "unknown"
}
