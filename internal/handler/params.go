package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/scorelive/internal/domain"
)

// errBadMatchID marks a match id that does not parse as a UUID. No match can
// have such an id, so it is reported as not found.
var errBadMatchID = fmt.Errorf("malformed match id: %w", domain.ErrNotFound)

var errMinuteRequired = fmt.Errorf("%w: minute is required", domain.ErrValidation)

// queryString binds a required form-style query string parameter.
func queryString(r *http.Request, name string) (string, error) {
	var v string
	if err := runtime.BindQueryParameter("form", true, true, name, r.URL.Query(), &v); err != nil {
		return "", fmt.Errorf("%w: %s is required", domain.ErrValidation, name)
	}
	return v, nil
}

// queryInt binds a required integer query parameter.
func queryInt(r *http.Request, name string) (int, error) {
	if !r.URL.Query().Has(name) {
		return 0, fmt.Errorf("%w: %s is required", domain.ErrValidation, name)
	}
	var v int
	if err := runtime.BindQueryParameter("form", true, true, name, r.URL.Query(), &v); err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrValidation, name)
	}
	return v, nil
}

// queryMatchID binds the matchId query parameter.
func queryMatchID(r *http.Request) (openapi_types.UUID, error) {
	const name = "matchId"
	if r.URL.Query().Get(name) == "" {
		return openapi_types.UUID{}, fmt.Errorf("%w: %s is required", domain.ErrValidation, name)
	}
	var id openapi_types.UUID
	if err := runtime.BindQueryParameter("form", true, true, name, r.URL.Query(), &id); err != nil {
		return openapi_types.UUID{}, errBadMatchID
	}
	return id, nil
}

// pathMatchID binds the {matchId} path segment.
func pathMatchID(r *http.Request) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "matchId", chi.URLParam(r, "matchId"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return openapi_types.UUID{}, errBadMatchID
	}
	return id, nil
}

// hasJSONBody reports whether r declares a JSON body. Requests without one
// are read from query parameters instead.
func hasJSONBody(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}

// decodeJSON decodes r's body into dst. Size-limit errors are passed through
// untouched so fail can answer 413.
func decodeJSON(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	var tooLarge *http.MaxBytesError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &tooLarge):
		return err
	case errors.Is(err, io.EOF):
		return fmt.Errorf("%w: request body is required", domain.ErrValidation)
	default:
		return fmt.Errorf("%w: malformed JSON body", domain.ErrValidation)
	}
}
