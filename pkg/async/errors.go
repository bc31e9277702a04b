package async

import "errors"

// ErrPanicked is returned by Await when the background function panicked.
var ErrPanicked = errors.New("async: background function panicked")
