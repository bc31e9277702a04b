package targetedcontent

import (
	"encoding/json"
	"time"
)

// ContentType is the kind of content item. The API currently only serves featurettes.
type ContentType string

const ContentTypeFeaturette ContentType = "featurette"

// PresentationType decides how a content item reaches the user.
type PresentationType string

const (
	// PresentationPopup items open on their own when the trigger point fires.
	PresentationPopup PresentationType = "popup"
	// PresentationButtonTriggered items wait for the user to open them.
	PresentationButtonTriggered PresentationType = "button-triggered"
)

// ModalType is the native modal presentation style.
type ModalType string

const (
	ModalPageSheet      ModalType = "pageSheet"
	ModalOverFullScreen ModalType = "overFullScreen"
)

// CloseButtonStyle selects how the modal close control is drawn.
type CloseButtonStyle string

const (
	CloseButtonX    CloseButtonStyle = "x"
	CloseButtonText CloseButtonStyle = "text"
)

// CloseButton describes the modal close control. Label is only meaningful
// for the text style.
type CloseButton struct {
	Style CloseButtonStyle `json:"style"`
	Label string           `json:"label,omitempty"`
}

// MobileModal describes the chrome around a content item.
type MobileModal struct {
	Type        ModalType   `json:"type"`
	Title       string      `json:"title"`
	HeaderColor string      `json:"headerColor"`
	CloseButton CloseButton `json:"closeButton"`
}

// SlideContent is the raw body of a native slide as sent by the API.
// Type is "basic" (BodyHTML, ImageURL) or "blocks" (Blocks).
type SlideContent struct {
	Type     string            `json:"type"`
	BodyHTML string            `json:"bodyHtml,omitempty"`
	ImageURL string            `json:"imageUrl,omitempty"`
	Blocks   []json.RawMessage `json:"blocks,omitempty"`
}

// Slide is one page of a native featurette.
type Slide struct {
	Content SlideContent `json:"content"`
}

// Content is a server-selected item tied to one trigger point.
type Content struct {
	TriggerPoint     string           `json:"triggerPoint"`
	Type             ContentType      `json:"type"`
	PresentationType PresentationType `json:"presentationType"`
	ViewURL          string           `json:"viewUrl"`
	MobileModal      *MobileModal     `json:"mobileModal,omitempty"`
	Slides           []Slide          `json:"slides,omitempty"`
}

// Matches reports whether the item belongs to triggerPoint with the given presentation type.
func (c Content) Matches(triggerPoint string, pt PresentationType) bool {
	return c.TriggerPoint == triggerPoint && c.PresentationType == pt
}

// EventType is the kind of event reported to the API.
type EventType string

const (
	EventSessionStarted EventType = "session-started"
	EventSessionRefresh EventType = "session-refresh"
	EventTriggerPoint   EventType = "trigger-point"
)

// EventRequest is the input of a gateway call.
type EventRequest struct {
	Type               EventType
	OrganizationCode   string
	UserID             string
	UserIDVerification string
	UserAttributes     map[string]any
	SessionToken       string
	TriggerPoint       string
}

// EventResult is the output of a successful gateway call.
type EventResult struct {
	Content      []Content `json:"content"`
	SessionToken string    `json:"sessionToken,omitempty"`
	ExpiresIn    *int      `json:"expiresIn,omitempty"`
}

// TTL converts ExpiresIn (seconds) to a duration. ok is false when the
// response carried no expiresIn.
func (r EventResult) TTL() (ttl time.Duration, ok bool) {
	return secondsTTL(r.ExpiresIn)
}

// Seconds returns a pointer to n for populating ExpiresIn.
func Seconds(n int) *int {
	return &n
}

func secondsTTL(seconds *int) (time.Duration, bool) {
	if seconds == nil {
		return 0, false
	}
	return time.Duration(*seconds) * time.Second, true
}
