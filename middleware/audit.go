package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/blogem/actionlog/metrics"
	"github.com/blogem/actionlog/services"
	"github.com/blogem/actionlog/userctx"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// maxCapturedBody caps how much of a request or response body goes into an audit entry
const maxCapturedBody = 64 << 10

type capturedRequest struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	Query  string `json:"query,omitempty"`
	Body   string `json:"body,omitempty"`
}

type capturedResponse struct {
	Status int    `json:"status"`
	Body   string `json:"body,omitempty"`
}

// AuditLogger records every POST/PUT/PATCH/DELETE request through the logging service.
// It must run after RequireAuth so the acting user is in the context.
// Recording happens synchronously once the handler returns; failures are logged, never sent to the client.
func AuditLogger(logging services.LoggingService, m *metrics.Metrics, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Only log mutation operations
			if !isMutation(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			request := captureRequest(r)

			var body bytes.Buffer
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			ww.Tee(&limitedWriter{buf: &body, limit: maxCapturedBody})

			next.ServeHTTP(ww, r)

			response := marshalOrEmpty(capturedResponse{
				Status: statusOrOK(ww.Status()),
				Body:   body.String(),
			})

			// The client may have gone away; the audit write must still happen
			ctx := context.WithoutCancel(r.Context())
			_, err := logging.LogAction(ctx, userctx.GetUsername(r.Context()), actionLabel(r), request, response)
			m.AuditRecorded(err)
			if err != nil {
				logger.Error("failed to record audit entry",
					zap.String("username", userctx.GetUsername(r.Context())),
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
			}
		})
	}
}

func isMutation(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// actionLabel names the action by method and route pattern, e.g. "POST /api/users"
func actionLabel(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return r.Method + " " + pattern
		}
	}
	return r.Method + " " + r.URL.Path
}

// captureRequest serializes the request as JSON and restores the body for the handler
func captureRequest(r *http.Request) string {
	captured := capturedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
	}

	if r.Body != nil {
		data, err := io.ReadAll(io.LimitReader(r.Body, maxCapturedBody))
		if err == nil {
			captured.Body = string(data)
		}
		r.Body = struct {
			io.Reader
			io.Closer
		}{io.MultiReader(bytes.NewReader(data), r.Body), r.Body}
	}

	return marshalOrEmpty(captured)
}

func marshalOrEmpty(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

// statusOrOK maps an unwritten status (0) to the implicit 200
func statusOrOK(status int) int {
	if status == 0 {
		return http.StatusOK
	}
	return status
}

// limitedWriter buffers up to limit bytes and silently drops the rest
type limitedWriter struct {
	buf   *bytes.Buffer
	limit int
}

func (lw *limitedWriter) Write(p []byte) (int, error) {
	if remaining := lw.limit - lw.buf.Len(); remaining > 0 {
		if len(p) > remaining {
			lw.buf.Write(p[:remaining])
		} else {
			lw.buf.Write(p)
		}
	}
	return len(p), nil
}
