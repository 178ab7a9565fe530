package switcher

import "github.com/m-mizutani/goerr/v2"

// Construction and payload errors. Missing fields in the page are never errors.
var (
	ErrNilResolver    = goerr.New("field resolver is required")
	ErrNilSelector    = goerr.New("property selector is required")
	ErrEmptyFallback  = goerr.New("fallback field ID is required")
	ErrInvalidPayload = goerr.New("invalid field registry payload")
)
