package webview

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/wavecx/wavecx-go/pkg/logger"
)

// Decision tells the web view what to do with a navigation.
type Decision int

const (
	// Allow lets the web view load the URL.
	Allow Decision = iota
	// Open means loading was stopped and the URL handed to the opener.
	Open
	// Blocked means loading was stopped and the URL was not opened, because
	// the host prevented it or no opener could take it.
	Blocked
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Open:
		return "open"
	case Blocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// Opener opens a URL outside the web view, e.g. in the system browser.
type Opener interface {
	Open(ctx context.Context, url string) error
}

// OpenerFunc adapts a plain function to Opener.
type OpenerFunc func(ctx context.Context, url string) error

func (f OpenerFunc) Open(ctx context.Context, url string) error {
	return f(ctx, url)
}

// LinkRequest describes an external link the content tried to follow.
type LinkRequest struct {
	URL       string
	prevented bool
	dismiss   bool
}

// PreventDefault stops the link from being opened.
func (r *LinkRequest) PreventDefault() { r.prevented = true }

// DismissContent closes the presented content after the link is handled.
func (r *LinkRequest) DismissContent() { r.dismiss = true }

// DefaultPrevented reports whether PreventDefault was called.
func (r *LinkRequest) DefaultPrevented() bool { return r.prevented }

// Option configures an Interceptor.
type Option func(*Interceptor)

// WithOpener sets how external links are opened.
func WithOpener(o Opener) Option {
	return func(i *Interceptor) { i.opener = o }
}

// WithLinkHandler lets the host inspect, prevent or react to external links.
func WithLinkHandler(fn func(*LinkRequest)) Option {
	return func(i *Interceptor) { i.onLink = fn }
}

// WithDismiss sets the action behind LinkRequest.DismissContent and the
// bridge's dismiss message, usually (*wavecx.Provider).Dismiss.
func WithDismiss(fn func()) Option {
	return func(i *Interceptor) { i.dismiss = fn }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(i *Interceptor) {
		if l != nil {
			i.logger = l
		}
	}
}

// Interceptor decides navigations for one presented content item.
type Interceptor struct {
	viewURL string
	opener  Opener
	onLink  func(*LinkRequest)
	dismiss func()
	logger  *slog.Logger
}

// NewInterceptor creates an interceptor for content loaded from viewURL.
func NewInterceptor(viewURL string, opts ...Option) *Interceptor {
	i := &Interceptor{
		viewURL: viewURL,
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// HandleNavigation decides a navigation to targetURL.
func (i *Interceptor) HandleNavigation(ctx context.Context, targetURL string) Decision {
	if !IsExternal(i.viewURL, targetURL) {
		return Allow
	}

	req := &LinkRequest{URL: targetURL}
	if i.onLink != nil {
		i.onLink(req)
	}
	if req.dismiss {
		i.Dismiss()
	}
	if req.DefaultPrevented() {
		i.logger.DebugContext(ctx, "external link prevented by host", slog.String("url", targetURL))
		return Blocked
	}

	if i.opener == nil {
		i.logger.WarnContext(ctx, "external link not opened", slog.String("url", targetURL), logger.Error(ErrNoOpener))
		return Blocked
	}
	if err := i.opener.Open(ctx, targetURL); err != nil {
		i.logger.ErrorContext(ctx, "failed to open external link", slog.String("url", targetURL), logger.Error(err))
		return Blocked
	}
	return Open
}

// Dismiss runs the configured dismiss action, if any.
func (i *Interceptor) Dismiss() {
	if i.dismiss != nil {
		i.dismiss()
	}
}

// IsExternal reports whether targetURL points outside the authority
// (host and port) of viewURL. Comparison is case-insensitive.
func IsExternal(viewURL, targetURL string) bool {
	return authority(viewURL) != authority(targetURL)
}

func authority(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}
