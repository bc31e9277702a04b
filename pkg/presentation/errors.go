package presentation

import "errors"

var (
	ErrMissingViewURL   = errors.New("presentation: content has neither slides nor a view url")
	ErrUnknownSlideType = errors.New("presentation: unknown slide type")
)
