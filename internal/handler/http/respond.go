package http

import (
	"log/slog"
	"net/http"

	"github.com/Armmuh/naija-coffee-oasis/pkg/httputil"
)

// Local aliases keep handler code terse while sharing the envelope types.
type (
	response      = httputil.Response
	errorResponse = httputil.ErrorResponse
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	httputil.WriteJSON(w, status, v)
}

func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	httputil.WriteError(w, r, err, logger)
}

func writeValidationError(w http.ResponseWriter, err error) {
	httputil.WriteValidationError(w, err)
}

func writeBadRequest(w http.ResponseWriter, message string) {
	httputil.WriteJSON(w, http.StatusBadRequest, response{
		Error: &errorResponse{Code: "INVALID_INPUT", Message: message},
	})
}
