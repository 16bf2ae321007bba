package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/aesthetic-webworks/agency-site-backend/errs"
)

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	r.writeJSON(w, http.StatusOK, data)
}

func (r Responder) WriteJSONStatus(w http.ResponseWriter, status int, data any) {
	r.writeJSON(w, status, data)
}

func (r Responder) NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func (r Responder) writeJSON(w http.ResponseWriter, status int, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteError renders an ApiErr with its status code and message. Unexpected
// errors are logged server-side and surfaced as a bare 500 so internals
// never leak to the client.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		r.logger.Error().Msg(err.Error())
		r.writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":  "Internal Server Error",
			"status": "error",
		})
		return
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().Msg(apiErr.GetFullError())
	}

	response := map[string]any{
		"error":  apiErr.Error(),
		"status": "error",
	}
	if apiErr.Field != "" {
		response["field"] = apiErr.Field
	}
	if apiErr.Details != "" {
		response["details"] = apiErr.Details
	}

	r.writeJSON(w, apiErr.StatusCode, response)
}
