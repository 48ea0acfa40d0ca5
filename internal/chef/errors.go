package chef

import (
	"errors"
	"fmt"
)

// ErrMissingCredentials means no AI provider is configured. It is reported
// before any network call is attempted.
var ErrMissingCredentials = errors.New("no AI credentials configured")

// ErrUpstream wraps provider-side failures: network errors, rate limits,
// rejected keys. Requests are never retried internally; the user re-submits.
var ErrUpstream = errors.New("ai provider request failed")

// MalformedResponseError means the provider answered, but not with the JSON
// recipe batch we demanded. The whole batch is discarded; there is no partial
// salvage of individual recipes.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed ai response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
