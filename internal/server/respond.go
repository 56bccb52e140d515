package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	kerrors "github.com/matzehuels/knotwork/pkg/errors"
	"github.com/matzehuels/knotwork/pkg/observability"
)

// ErrorResponse is the body returned for failed requests.
type ErrorResponse struct {
	Code    kerrors.Code `json:"code"`
	Message string       `json:"message"`
}

// statusFor maps an error to an HTTP status code.
func statusFor(err error) int {
	if kerrors.IsClientError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)

	code := kerrors.GetCode(err)
	if code == "" {
		code = kerrors.ErrCodeInternal
	}
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err,
			"request_id", middleware.GetReqID(r.Context()))
	}
	s.writeJSON(w, status, ErrorResponse{Code: code, Message: kerrors.UserMessage(err)})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response", "error", err)
	}
}

// instrument fires HTTP hooks and logs every request.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		hooks := observability.HTTP()
		hooks.OnRequest(ctx, r.Method, r.URL.Path)

		reqID := middleware.GetReqID(ctx)
		if reqID != "" {
			w.Header().Set(middleware.RequestIDHeader, reqID)
		}

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		dur := time.Since(start)
		hooks.OnResponse(ctx, r.Method, r.URL.Path, status, dur)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", dur,
			"request_id", reqID)
	})
}
