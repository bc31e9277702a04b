package targetedcontent

import (
	"context"
	"time"
)

// Gateway sends an event and receives the content selected for it.
type Gateway interface {
	FireEvent(ctx context.Context, req EventRequest) (EventResult, error)
}

// FireEventFunc adapts a plain function to Gateway.
type FireEventFunc func(ctx context.Context, req EventRequest) (EventResult, error)

func (f FireEventFunc) FireEvent(ctx context.Context, req EventRequest) (EventResult, error) {
	return f(ctx, req)
}

// InitiateSessionRequest is passed to a caller-supplied session initiator.
type InitiateSessionRequest struct {
	OrganizationCode   string
	UserID             string
	UserIDVerification string
	UserAttributes     map[string]any
}

// InitiateSessionResult carries a freshly issued session token.
// ExpiresIn is in seconds; nil means the token does not expire on its own.
type InitiateSessionResult struct {
	SessionToken string
	ExpiresIn    *int
}

// TTL converts ExpiresIn (seconds) to a duration. ok is false when no
// expiry was given.
func (r InitiateSessionResult) TTL() (ttl time.Duration, ok bool) {
	return secondsTTL(r.ExpiresIn)
}

// SessionInitiator obtains a session token out of band, typically from the
// host application's own backend.
type SessionInitiator interface {
	InitiateSession(ctx context.Context, req InitiateSessionRequest) (InitiateSessionResult, error)
}

// InitiateSessionFunc adapts a plain function to SessionInitiator.
type InitiateSessionFunc func(ctx context.Context, req InitiateSessionRequest) (InitiateSessionResult, error)

func (f InitiateSessionFunc) InitiateSession(ctx context.Context, req InitiateSessionRequest) (InitiateSessionResult, error) {
	return f(ctx, req)
}
