package pokeapi

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the requested resource does not exist upstream
var ErrNotFound = errors.New("pokeapi resource not found")

// FetchError represents a failed request against the PokeAPI: a transport
// error, a timeout, an unexpected status code or an undecodable body.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
