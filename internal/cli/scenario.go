package cli

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wavecx/wavecx-go"
)

// Step actions besides the SDK event kinds.
const (
	actionDismiss = "dismiss"
)

// Scenario is a scripted sequence of provider inputs.
type Scenario struct {
	Organization string `yaml:"organization"`
	APIBaseURL   string `yaml:"apiBaseUrl,omitempty"`
	Steps        []Step `yaml:"steps"`
}

// Step is one provider input. Event is an event kind or "dismiss".
type Step struct {
	Event              string         `yaml:"event"`
	UserID             string         `yaml:"userId,omitempty"`
	UserIDVerification string         `yaml:"userIdVerification,omitempty"`
	Attributes         map[string]any `yaml:"attributes,omitempty"`
	TriggerPoint       string         `yaml:"triggerPoint,omitempty"`
}

func loadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return parseScenario(data)
}

func parseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}

	var errs []error
	for i, st := range s.Steps {
		switch wavecx.EventKind(st.Event) {
		case wavecx.KindSessionStarted:
			if st.UserID == "" {
				errs = append(errs, fmt.Errorf("step %d: session-started needs userId", i+1))
			}
		case wavecx.KindTriggerPoint:
			if st.TriggerPoint == "" {
				errs = append(errs, fmt.Errorf("step %d: trigger-point needs triggerPoint", i+1))
			}
		case wavecx.KindSessionEnded, wavecx.KindUserTriggeredContent, actionDismiss:
		default:
			errs = append(errs, fmt.Errorf("step %d: unknown event %q", i+1, st.Event))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return &s, nil
}

// describe renders the step as a short label.
func (st Step) describe() string {
	switch wavecx.EventKind(st.Event) {
	case wavecx.KindSessionStarted:
		return fmt.Sprintf("%s %s", st.Event, st.UserID)
	case wavecx.KindTriggerPoint:
		return fmt.Sprintf("%s %s", st.Event, st.TriggerPoint)
	default:
		return st.Event
	}
}
