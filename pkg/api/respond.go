package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/mosaic/pkg/errors"
)

// Response is the JSON envelope of every non-SVG response.
type Response struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
	Code   string `json:"code,omitempty"`
}

// respondWithError maps err to a status code and sends a JSON error response.
func (s *Server) respondWithError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	s.respondWithStatus(w, status, Response{
		Status: "error",
		Error:  errors.UserMessage(err),
		Code:   string(errors.GetCode(err)),
	})
}

// respondWithSuccess sends a standardized JSON success response.
func (s *Server) respondWithSuccess(w http.ResponseWriter, statusCode int, data any) {
	s.respondWithStatus(w, statusCode, Response{Status: "success", Data: data})
}

// respondWithStatus sends a JSON response with the given status code.
func (s *Server) respondWithStatus(w http.ResponseWriter, statusCode int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// respondWithSVG sends a rendered SVG document.
func (s *Server) respondWithSVG(w http.ResponseWriter, layoutID string, svg []byte) {
	w.Header().Set("Content-Type", "image/svg+xml")
	if layoutID != "" {
		w.Header().Set("X-Layout-Id", layoutID)
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(svg); err != nil {
		s.logger.Debug("failed to write svg", "error", err)
	}
}

func statusFor(err error) int {
	var tooLarge errTooLarge
	switch {
	case stderrors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.IsInvalid(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeNotFound), errors.Is(err, errors.ErrCodeFileNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
