package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/gapdebug/gapdebug/internal/extract"
	"github.com/gapdebug/gapdebug/internal/llm"
	"github.com/gapdebug/gapdebug/internal/schemas"
)

// HTTPStatus returns the appropriate HTTP status code for an error.
// Input problems (bad uploads, failed extraction) are client errors;
// provider and contract failures are server errors.
func HTTPStatus(err error) int {
	var (
		extractErr   *extract.Error
		configErr    *llm.ConfigError
		upstreamErr  *llm.UpstreamError
		emptyErr     *llm.EmptyResponseError
		malformedErr *llm.MalformedJSONError
		shapeErr     *schemas.ValidationError
	)

	switch {
	case errors.As(err, &extractErr):
		return http.StatusBadRequest
	case errors.As(err, &configErr),
		errors.As(err, &upstreamErr),
		errors.As(err, &emptyErr),
		errors.As(err, &malformedErr),
		errors.As(err, &shapeErr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// logFailure records a handler failure server-side before it is converted to
// the response envelope. Malformed model output is logged with its raw
// content for diagnostics.
func logFailure(r *http.Request, err error) {
	var malformedErr *llm.MalformedJSONError
	if errors.As(err, &malformedErr) {
		log.Printf("[%s] %s failed: %v (raw content: %s)", r.Method, r.URL.Path, err, malformedErr.Raw)
		return
	}
	log.Printf("[%s] %s failed: %v", r.Method, r.URL.Path, err)
}
