// Package controllers translates HTTP requests into service calls and
// service errors into the JSON response envelope.
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/paddock-dev/paddock/app/services"
	"github.com/paddock-dev/paddock/pkg/response"
)

// maxUploadBytes caps multipart request memory; larger file parts spill to
// temporary files.
const maxUploadBytes = 32 << 20 // 32 MB

// parseForm accepts both urlencoded and multipart bodies.
func parseForm(r *http.Request) error {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		return r.ParseMultipartForm(maxUploadBytes)
	}
	return r.ParseForm()
}

// idParam reads the {id} route parameter as an unsigned integer.
func idParam(r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// writeServiceError maps the service error taxonomy onto HTTP responses.
func writeServiceError(w http.ResponseWriter, err error) {
	if ve, ok := services.AsValidation(err); ok {
		response.ValidationError(w, ve.Fields)
		return
	}

	switch {
	case errors.Is(err, services.ErrNotFound):
		response.NotFound(w)
	case errors.Is(err, services.ErrForbidden):
		response.Forbidden(w)
	case errors.Is(err, services.ErrInvalidCredentials):
		response.Error(w, http.StatusUnauthorized, services.ErrInvalidCredentials.Error())
	case errors.Is(err, services.ErrEmailTaken):
		response.ValidationError(w, map[string]string{"email": services.ErrEmailTaken.Error()})
	case errors.Is(err, services.ErrListingUnavailable),
		errors.Is(err, services.ErrSelfPurchase),
		errors.Is(err, services.ErrListingSold):
		response.Conflict(w, err.Error())
	default:
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
