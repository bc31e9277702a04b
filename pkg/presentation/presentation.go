package presentation

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/wavecx/wavecx-go/pkg/targetedcontent"
)

// Presentation is either Embedded or Native.
type Presentation interface {
	isPresentation()
}

// Embedded content is a web page hosted by WaveCX.
type Embedded struct {
	ViewURL string
}

// Native content is rendered by the host from slides.
type Native struct {
	Slides []Slide
}

func (Embedded) isPresentation() {}
func (Native) isPresentation()   {}

// Slide is either BasicSlide or BlocksSlide.
type Slide interface {
	isSlide()
}

// BasicSlide is an HTML body with an optional image.
type BasicSlide struct {
	BodyHTML string
	ImageURL string
}

// BlocksSlide carries structured blocks the host renders itself.
type BlocksSlide struct {
	Blocks []json.RawMessage
}

func (BasicSlide) isSlide()  {}
func (BlocksSlide) isSlide() {}

// Slide type names used by the API.
const (
	SlideTypeBasic  = "basic"
	SlideTypeBlocks = "blocks"
)

// FromContent classifies c. Items carrying slides are native; all others
// are embedded and need a view URL.
func FromContent(c targetedcontent.Content) (Presentation, error) {
	if len(c.Slides) == 0 {
		if c.ViewURL == "" {
			return nil, ErrMissingViewURL
		}
		return Embedded{ViewURL: c.ViewURL}, nil
	}

	slides := make([]Slide, 0, len(c.Slides))
	for i, s := range c.Slides {
		switch s.Content.Type {
		case SlideTypeBasic:
			slides = append(slides, BasicSlide{BodyHTML: s.Content.BodyHTML, ImageURL: s.Content.ImageURL})
		case SlideTypeBlocks:
			slides = append(slides, BlocksSlide{Blocks: slices.Clone(s.Content.Blocks)})
		default:
			return nil, fmt.Errorf("%w: slide %d has type %q", ErrUnknownSlideType, i, s.Content.Type)
		}
	}
	return Native{Slides: slides}, nil
}
