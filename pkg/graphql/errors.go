package graphql

import (
	"strings"
)

// GraphQLError is a single entry of the response "errors" array.
type GraphQLError struct {
	Message    string                 `json:"message"`
	Path       []interface{}          `json:"path,omitempty"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

func (e GraphQLError) Error() string {
	return e.Message
}

// CombinedError is returned for every failed operation. Exactly one of
// NetworkError and GraphQLErrors is set.
type CombinedError struct {
	// NetworkError is a transport-level failure: the request never produced a
	// GraphQL response.
	NetworkError error
	// GraphQLErrors are the errors reported by the server.
	GraphQLErrors []GraphQLError
	// StatusCode is the HTTP status, 0 when no response was received.
	StatusCode int
}

// Message is the user facing text: the network error, or the server errors
// joined with " | ".
func (e *CombinedError) Message() string {
	if e.NetworkError != nil {
		return e.NetworkError.Error()
	}
	msgs := make([]string, 0, len(e.GraphQLErrors))
	for _, ge := range e.GraphQLErrors {
		msgs = append(msgs, ge.Message)
	}
	return strings.Join(msgs, " | ")
}

func (e *CombinedError) Error() string {
	return e.Message()
}

func (e *CombinedError) Unwrap() error {
	return e.NetworkError
}

// IsNetwork reports whether the failure happened below the GraphQL layer.
func (e *CombinedError) IsNetwork() bool {
	return e.NetworkError != nil
}
