package wavecx

import "errors"

var (
	// ErrMissingOrganization is returned when a provider is created without an organization code.
	ErrMissingOrganization = errors.New("wavecx: organization code is required")

	// ErrNoProvider is the panic value of MustFromContext outside a provider context.
	ErrNoProvider = errors.New("wavecx: must be used within a provider context")

	errEmptySessionToken = errors.New("wavecx: session initiator returned an empty token")
)
