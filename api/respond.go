package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mjcet-acm/site-backend/errs"
	"github.com/rs/zerolog"
)

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) writeJSON(w http.ResponseWriter, statusCode int, body Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	jsonData, err := json.Marshal(body)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(statusCode)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteSuccess writes a success envelope with optional data.
func (r Responder) WriteSuccess(w http.ResponseWriter, statusCode int, message string, data any) {
	r.writeJSON(w, statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// WritePage writes a success envelope carrying a list plus its pagination
// metadata.
func (r Responder) WritePage(w http.ResponseWriter, message string, data any, pagination *Pagination) {
	r.writeJSON(w, http.StatusOK, Response{
		Success:    true,
		Message:    message,
		Data:       data,
		Pagination: pagination,
	})
}

// WriteError renders an error envelope. Anything that is not an ApiErr is
// logged and collapsed into a generic 500 so internal detail never reaches
// the client.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		r.writeJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Message: "an unexpected error occurred",
			Error:   errs.CodeInternal,
		})
		return
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().Str("code", apiErr.Code).Msg(apiErr.GetFullError())
	}

	r.writeJSON(w, apiErr.StatusCode, Response{
		Success: false,
		Message: apiErr.Error(),
		Error:   apiErr.Code,
	})
}

// wrapDatabaseError wraps a database error with context information
func wrapDatabaseError(operation, entity string, cause error) error {
	return errs.NewDatabaseError(operation, entity, cause)
}
