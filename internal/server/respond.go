package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/creativeforge/pkg/errors"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "route", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorResponse{
		Error: errors.UserMessage(err),
		Code:  string(codeFor(err, status)),
	})
}

func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case stderrors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusUnsupportedMediaType
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func codeFor(err error, status int) errors.Code {
	if code := errors.GetCode(err); code != "" {
		return code
	}
	if status == http.StatusRequestEntityTooLarge {
		return errors.ErrCodeInvalidInput
	}
	return errors.ErrCodeInternal
}

// decodeJSON reads a bounded JSON body into v.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return err
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed request body")
	}
	return nil
}
