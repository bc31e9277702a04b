package mockapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/wavecx/wavecx-go/pkg/targetedcontent"
)

// Catalog is the content served per organization.
type Catalog struct {
	Organizations map[string]Organization `yaml:"organizations"`
}

// Organization is one tenant of the mock API.
type Organization struct {
	// SigningSecret, when set, makes session-started require a valid
	// userIdVerification.
	SigningSecret string        `yaml:"signingSecret,omitempty"`
	Content       []CatalogItem `yaml:"content"`
}

// CatalogItem is a content item plus its audience.
type CatalogItem struct {
	TriggerPoint     string         `yaml:"triggerPoint"`
	Type             string         `yaml:"type,omitempty"`
	PresentationType string         `yaml:"presentationType"`
	ViewURL          string         `yaml:"viewUrl,omitempty"`
	Users            []string       `yaml:"users,omitempty"`
	MobileModal      *CatalogModal  `yaml:"mobileModal,omitempty"`
	Slides           []CatalogSlide `yaml:"slides,omitempty"`
}

type CatalogModal struct {
	Type        string `yaml:"type,omitempty"`
	Title       string `yaml:"title,omitempty"`
	HeaderColor string `yaml:"headerColor,omitempty"`
	CloseButton struct {
		Style string `yaml:"style,omitempty"`
		Label string `yaml:"label,omitempty"`
	} `yaml:"closeButton,omitempty"`
}

type CatalogSlide struct {
	Type     string           `yaml:"type"`
	BodyHTML string           `yaml:"bodyHtml,omitempty"`
	ImageURL string           `yaml:"imageUrl,omitempty"`
	Blocks   []map[string]any `yaml:"blocks,omitempty"`
}

// LoadCatalog reads and validates a catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadCatalog, err)
	}
	return ParseCatalog(data)
}

// ParseCatalog parses and validates catalog YAML.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks every item can be served.
func (c *Catalog) Validate() error {
	var errs []error
	for code, org := range c.Organizations {
		if code == "" {
			errs = append(errs, errors.New("organization code is empty"))
		}
		for i, item := range org.Content {
			where := fmt.Sprintf("%s.content[%d]", code, i)
			if item.TriggerPoint == "" {
				errs = append(errs, fmt.Errorf("%s: triggerPoint is required", where))
			}
			switch targetedcontent.PresentationType(item.PresentationType) {
			case targetedcontent.PresentationPopup, targetedcontent.PresentationButtonTriggered:
			default:
				errs = append(errs, fmt.Errorf("%s: unknown presentationType %q", where, item.PresentationType))
			}
			if item.ViewURL == "" && len(item.Slides) == 0 {
				errs = append(errs, fmt.Errorf("%s: viewUrl or slides required", where))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidCatalog, errors.Join(errs...))
	}
	return nil
}

// Has reports whether the organization exists.
func (c *Catalog) Has(organizationCode string) bool {
	_, ok := c.Organizations[organizationCode]
	return ok
}

// ContentFor returns the items userID is eligible for, in catalog order.
func (c *Catalog) ContentFor(organizationCode, userID string) []targetedcontent.Content {
	org := c.Organizations[organizationCode]
	out := make([]targetedcontent.Content, 0, len(org.Content))
	for _, item := range org.Content {
		if len(item.Users) > 0 && !slices.Contains(item.Users, userID) {
			continue
		}
		out = append(out, item.content())
	}
	return out
}

func (item CatalogItem) content() targetedcontent.Content {
	c := targetedcontent.Content{
		TriggerPoint:     item.TriggerPoint,
		Type:             targetedcontent.ContentType(item.Type),
		PresentationType: targetedcontent.PresentationType(item.PresentationType),
		ViewURL:          item.ViewURL,
	}
	if c.Type == "" {
		c.Type = targetedcontent.ContentTypeFeaturette
	}
	if m := item.MobileModal; m != nil {
		c.MobileModal = &targetedcontent.MobileModal{
			Type:        targetedcontent.ModalType(m.Type),
			Title:       m.Title,
			HeaderColor: m.HeaderColor,
			CloseButton: targetedcontent.CloseButton{
				Style: targetedcontent.CloseButtonStyle(m.CloseButton.Style),
				Label: m.CloseButton.Label,
			},
		}
	}
	for _, s := range item.Slides {
		sc := targetedcontent.SlideContent{Type: s.Type, BodyHTML: s.BodyHTML, ImageURL: s.ImageURL}
		for _, b := range s.Blocks {
			raw, err := json.Marshal(b)
			if err != nil {
				continue
			}
			sc.Blocks = append(sc.Blocks, raw)
		}
		c.Slides = append(c.Slides, targetedcontent.Slide{Content: sc})
	}
	return c
}
