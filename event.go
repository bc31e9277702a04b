package wavecx

// EventKind names an application event.
type EventKind string

const (
	KindSessionStarted       EventKind = "session-started"
	KindSessionEnded         EventKind = "session-ended"
	KindTriggerPoint         EventKind = "trigger-point"
	KindUserTriggeredContent EventKind = "user-triggered-content"
)

// Event is one of SessionStarted, SessionEnded, TriggerPoint or UserTriggeredContent.
type Event interface {
	Kind() EventKind
	isEvent()
}

// SessionStarted begins a session for UserID.
type SessionStarted struct {
	UserID string
	// UserIDVerification is a server-checkable proof of identity, usually an
	// HMAC of UserID computed by the host's backend.
	UserIDVerification string
	UserAttributes     map[string]any
}

// SessionEnded ends the current session.
type SessionEnded struct{}

// TriggerPoint reports that the user reached a touch-point in the application.
type TriggerPoint struct {
	TriggerPoint       string
	OnContentDismissed func()
}

// UserTriggeredContent asks to open the available button-triggered content.
type UserTriggeredContent struct {
	OnContentDismissed func()
}

func (SessionStarted) Kind() EventKind       { return KindSessionStarted }
func (SessionEnded) Kind() EventKind         { return KindSessionEnded }
func (TriggerPoint) Kind() EventKind         { return KindTriggerPoint }
func (UserTriggeredContent) Kind() EventKind { return KindUserTriggeredContent }

func (SessionStarted) isEvent()       {}
func (SessionEnded) isEvent()         {}
func (TriggerPoint) isEvent()         {}
func (UserTriggeredContent) isEvent() {}
