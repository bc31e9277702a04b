package targetedcontent

import "errors"

var (
	// ErrMissingOrganization is returned when an event carries no organization code.
	ErrMissingOrganization = errors.New("targetedcontent: organization code is required")

	// ErrInvalidBaseURL is returned when the configured API base URL cannot be used.
	ErrInvalidBaseURL = errors.New("targetedcontent: invalid API base URL")

	// ErrEncodeRequest is returned when the request body cannot be encoded.
	ErrEncodeRequest = errors.New("targetedcontent: failed to encode request")

	// ErrTransport is returned when the HTTP exchange itself fails.
	ErrTransport = errors.New("targetedcontent: transport failure")

	// ErrDecodeResponse is returned when a 2xx response body is not valid JSON.
	ErrDecodeResponse = errors.New("targetedcontent: failed to decode response")
)
