// Package webview keeps embedded targeted content inside its own origin.
//
// An Interceptor sits in the web view's navigation callback. Navigation within
// the content's origin proceeds; anything else is stopped and offered to the
// host as a LinkRequest, then opened outside the web view unless the host
// prevents it.
//
// A Bridge receives JSON messages posted by the page:
//
//	{"type":"content-loaded"}
//	{"type":"dismiss"}
//	{"type":"open-link","url":"https://example.com"}
//
// Malformed and unknown messages are ignored.
package webview
