package webview

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync/atomic"
)

// MessageType is the type field of a page message.
type MessageType string

// Messages understood by Bridge.
const (
	MessageContentLoaded MessageType = "content-loaded"
	MessageDismiss       MessageType = "dismiss"
	MessageOpenLink      MessageType = "open-link"
)

type message struct {
	Type MessageType `json:"type"`
	URL  string      `json:"url,omitempty"`
}

// Bridge handles messages posted by embedded content.
type Bridge struct {
	interceptor *Interceptor
	onLoaded    func()
	loaded      atomic.Bool
}

// BridgeOption configures a Bridge.
type BridgeOption func(*Bridge)

// WithLoadedHandler is called when the page reports it finished loading.
func WithLoadedHandler(fn func()) BridgeOption {
	return func(b *Bridge) { b.onLoaded = fn }
}

// NewBridge creates a bridge routing links and dismissals through interceptor.
// A nil interceptor is replaced by one with no opener and no dismiss action.
func NewBridge(interceptor *Interceptor, opts ...BridgeOption) *Bridge {
	if interceptor == nil {
		interceptor = NewInterceptor("")
	}
	b := &Bridge{interceptor: interceptor}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Loaded reports whether the page has announced it is ready. Hosts show a
// loading indicator until then.
func (b *Bridge) Loaded() bool {
	return b.loaded.Load()
}

// HandleMessage processes one message. It reports whether the message was
// understood.
func (b *Bridge) HandleMessage(ctx context.Context, data []byte) bool {
	var msg message
	if err := json.Unmarshal(data, &msg); err != nil {
		b.interceptor.logger.DebugContext(ctx, "ignoring malformed web view message", slog.Int("bytes", len(data)))
		return false
	}

	switch msg.Type {
	case MessageContentLoaded:
		if !b.loaded.Swap(true) && b.onLoaded != nil {
			b.onLoaded()
		}
	case MessageDismiss:
		b.loaded.Store(false)
		b.interceptor.Dismiss()
	case MessageOpenLink:
		if msg.URL == "" {
			return false
		}
		b.interceptor.HandleNavigation(ctx, msg.URL)
	default:
		b.interceptor.logger.DebugContext(ctx, "ignoring unknown web view message", slog.String("type", string(msg.Type)))
		return false
	}
	return true
}
