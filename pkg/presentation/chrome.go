package presentation

import "github.com/wavecx/wavecx-go/pkg/targetedcontent"

const (
	DefaultTitle       = "What's New"
	DefaultHeaderColor = "#fafafa"
	DefaultCloseLabel  = "Close"
)

// CloseControl is how the close button is drawn.
type CloseControl string

const (
	CloseControlIcon CloseControl = "icon"
	CloseControlText CloseControl = "text"
)

// Chrome is the resolved modal around presented content.
type Chrome struct {
	Style       targetedcontent.ModalType
	Title       string
	HeaderColor string
	Close       CloseControl
	// CloseLabel is the text of a CloseControlText button. It may be empty
	// when the modal asks for text without giving a label.
	CloseLabel string
	// SafeAreaHeader means the header must be inset from the device's
	// unsafe areas because the modal covers the full screen.
	SafeAreaHeader bool
	// AccessibilityLabel names the close button for assistive technology.
	AccessibilityLabel string
}

// ResolveChrome applies defaults to m, which may be nil.
func ResolveChrome(m *targetedcontent.MobileModal) Chrome {
	ch := Chrome{
		Style:              targetedcontent.ModalPageSheet,
		Title:              DefaultTitle,
		HeaderColor:        DefaultHeaderColor,
		Close:              CloseControlText,
		AccessibilityLabel: DefaultCloseLabel,
	}
	if m == nil {
		ch.CloseLabel = DefaultCloseLabel
		return ch
	}

	if m.Type != "" {
		ch.Style = m.Type
	}
	if m.Title != "" {
		ch.Title = m.Title
	}
	if m.HeaderColor != "" {
		ch.HeaderColor = m.HeaderColor
	}

	switch m.CloseButton.Style {
	case targetedcontent.CloseButtonX:
		ch.Close = CloseControlIcon
	case targetedcontent.CloseButtonText:
		ch.CloseLabel = m.CloseButton.Label
	}

	ch.SafeAreaHeader = ch.Style == targetedcontent.ModalOverFullScreen
	return ch
}
