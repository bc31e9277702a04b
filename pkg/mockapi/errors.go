package mockapi

import "errors"

var (
	ErrReadCatalog    = errors.New("mockapi: failed to read catalog")
	ErrInvalidCatalog = errors.New("mockapi: invalid catalog")
)
