package webview

import "errors"

var ErrNoOpener = errors.New("webview: no opener configured")
