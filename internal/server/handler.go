package server

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/matzehuels/fencedraw/pkg/errors"
)

// handlerFunc is an http.HandlerFunc that returns its error instead of
// writing it.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// httpError carries an explicit status for errors that have no pipeline
// code.
type httpError struct {
	status  int
	code    string
	message string
}

func (e *httpError) Error() string { return e.code + ": " + e.message }

func httpErrorf(status int, code, format string, args ...any) error {
	return &httpError{status: status, code: code, message: fmt.Sprintf(format, args...)}
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// handle adapts h, logging and writing any error it returns: 4xx at warn
// level, 5xx at error level.
func (s *Server) handle(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		status, body := classify(err)
		if status >= 500 {
			s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
			body.Error.Message = http.StatusText(status)
		} else {
			s.logger.Warn("request rejected", "method", r.Method, "path", r.URL.Path, "err", err)
		}

		if ww, ok := w.(*responseWriter); ok && ww.written {
			return
		}
		s.writeJSON(w, status, body)
	}
}

// classify maps err to a status code and response body.
func classify(err error) (int, errorBody) {
	var he *httpError
	if stderrors.As(err, &he) {
		return he.status, errorBody{errorDetail{Code: he.code, Message: he.message}}
	}

	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge, errorBody{errorDetail{
			Code:    string(errors.ErrCodeInvalidInput),
			Message: fmt.Sprintf("spec larger than %d bytes", tooLarge.Limit),
		}}
	}

	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	return statusFor(code), errorBody{errorDetail{
		Code:    string(code),
		Message: strings.TrimPrefix(err.Error(), string(code)+": "),
	}}
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInconsistentStack:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusUnsupportedMediaType
	}
	if errors.IsInvalid(&errors.Error{Code: code}) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("json marshal failed", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
