package domain

import "errors"

var (
	ErrInvalidRange        = errors.New("invalid date range")
	ErrConfiguration       = errors.New("configuration error")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrMalformedResponse   = errors.New("malformed upstream response")
	ErrNotFound            = errors.New("not found")
	ErrStorage             = errors.New("storage error")
)

// Error categories reported to callers.
const (
	CategoryInvalidRange        = "invalid_range"
	CategoryInvalidRequest      = "invalid_request"
	CategoryConfiguration       = "configuration"
	CategoryUpstreamUnavailable = "upstream_unavailable"
	CategoryMalformedResponse   = "malformed_response"
	CategoryNotFound            = "not_found"
	CategoryStorage             = "storage"
	CategoryInternal            = "internal"

	// Reported by the API key guard; no sentinel error maps to these.
	CategoryUnauthorized = "unauthorized"
	CategoryForbidden    = "forbidden"
)

var categories = []struct {
	err      error
	category string
}{
	{ErrInvalidRange, CategoryInvalidRange},
	{ErrConfiguration, CategoryConfiguration},
	{ErrUpstreamUnavailable, CategoryUpstreamUnavailable},
	{ErrMalformedResponse, CategoryMalformedResponse},
	{ErrNotFound, CategoryNotFound},
	{ErrStorage, CategoryStorage},
}

// Category returns the wire category for err, or CategoryInternal when err
// does not wrap one of the package sentinels.
func Category(err error) string {
	for _, c := range categories {
		if errors.Is(err, c.err) {
			return c.category
		}
	}
	return CategoryInternal
}
