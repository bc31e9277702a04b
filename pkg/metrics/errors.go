package metrics

import "errors"

// ErrRegister is returned when the collectors cannot be registered, usually
// because another Observer already registered them on the same registry.
var ErrRegister = errors.New("metrics: failed to register collectors")
