package provider

import (
	"errors"
	"fmt"
)

// ErrNoRows is returned when an endpoint answers successfully but carries no
// usable rows for the request.
var ErrNoRows = errors.New("no rows")

// RetrievalError reports an upstream fetch that failed or returned nothing
// usable. Callers treat it as "no data" for the unit of work at hand.
type RetrievalError struct {
	Endpoint string
	Err      error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieve %s: %v", e.Endpoint, e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// IsRetrieval reports whether err is (or wraps) a RetrievalError.
func IsRetrieval(err error) bool {
	var re *RetrievalError
	return errors.As(err, &re)
}
