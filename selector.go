package wavecx

import (
	"time"

	"github.com/wavecx/wavecx-go/pkg/targetedcontent"
)

// Selection is the raw presentation state of a provider.
type Selection struct {
	ActivePopup         *targetedcontent.Content
	ActiveUserTriggered *targetedcontent.Content
	UserTriggeredShown  bool
}

// Select decides what is presented: the active popup wins, then the active
// user-triggered content once the user has opened it.
func Select(s Selection) (targetedcontent.Content, bool) {
	switch {
	case s.ActivePopup != nil:
		return *s.ActivePopup, true
	case s.ActiveUserTriggered != nil && s.UserTriggeredShown:
		return *s.ActiveUserTriggered, true
	default:
		return targetedcontent.Content{}, false
	}
}

// HasUserTriggeredContent reports whether button-triggered content is available to open.
func (s Selection) HasUserTriggeredContent() bool {
	return s.ActiveUserTriggered != nil
}

// Snapshot is a point-in-time view of a provider, passed to change listeners.
type Snapshot struct {
	// Presented is the content item to render, nil when nothing is shown.
	Presented               *targetedcontent.Content
	HasUserTriggeredContent bool

	UserID         string
	SessionActive  bool
	// Establishing is true while a session fetch is in flight.
	Establishing   bool
	PendingEvents  int
	// TokenExpiresAt is when the held session token lapses; zero when no
	// valid token is held or it does not expire.
	TokenExpiresAt time.Time
}

func snapshotOf(s Selection) Snapshot {
	snap := Snapshot{HasUserTriggeredContent: s.HasUserTriggeredContent()}
	if c, ok := Select(s); ok {
		snap.Presented = &c
	}
	return snap
}
