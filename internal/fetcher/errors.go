package fetcher

import (
	"errors"
	"fmt"

	"github.com/petalhealth/content-service/internal/models"
)

// Kind classifies a fetch failure.
type Kind string

const (
	// KindNetwork covers transport-level failures (DNS, refused, timeout).
	KindNetwork Kind = "network"
	// KindHTTPStatus covers non-2xx responses.
	KindHTTPStatus Kind = "http_status"
	// KindParse covers bodies that are not valid JSON.
	KindParse Kind = "parse"
	// KindSchema covers valid JSON that is not an array of records.
	KindSchema Kind = "schema"
)

// Error is returned for every fetch failure. Message is human-readable and
// suitable for surfacing in the connection status.
type Error struct {
	Kind       Kind
	Resource   models.Resource
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.Resource, e.Message, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s", e.Resource, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AsError extracts a *fetcher.Error from err, if present.
func AsError(err error) (*Error, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

func networkError(res models.Resource, err error) *Error {
	return &Error{Kind: KindNetwork, Resource: res, Message: "network error", Err: err}
}

func httpStatusError(res models.Resource, code int) *Error {
	return &Error{Kind: KindHTTPStatus, Resource: res, StatusCode: code, Message: fmt.Sprintf("HTTP %d", code)}
}

func parseError(res models.Resource, err error) *Error {
	return &Error{Kind: KindParse, Resource: res, Message: "malformed JSON", Err: err}
}

func schemaError(res models.Resource, msg string) *Error {
	return &Error{Kind: KindSchema, Resource: res, Message: msg}
}
