package domain

import (
	"errors"
	"fmt"
)

// ErrNoData means the upstream call succeeded but returned an empty series
// for the requested date. Distinct from a fetch failure: reports render it
// as "no data for this date" rather than an apology with technical detail.
var ErrNoData = errors.New("no observations for requested date")

// FetchError is a transport, status, or parse failure from an upstream
// weather source. Reports catch it at the rendering boundary and surface the
// detail string to the user; it never crashes a dialogue turn.
type FetchError struct {
	Source string // "marine" or "forecast"
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch from %s api: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
