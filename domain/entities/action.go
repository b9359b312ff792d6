package entities

import "fmt"

// ActionType represents the kind of page interaction a step performs
type ActionType string

const (
	ActionNavigate ActionType = "navigate"
	ActionLogin    ActionType = "login"
	ActionClick    ActionType = "click"
	ActionFill     ActionType = "fill"
)

// Action is a single interaction with the page under test.
type Action struct {
	Type        ActionType  `json:"type"`
	Selector    string      `json:"selector,omitempty"`
	Text        string      `json:"text,omitempty"`
	Path        string      `json:"path,omitempty"`
	Credentials Credentials `json:"credentials,omitempty"`
}

// Validate checks that the fields required by the action type are present.
func (a Action) Validate() error {
	switch a.Type {
	case ActionNavigate, ActionLogin:
		return nil
	case ActionClick, ActionFill:
		if a.Selector == "" {
			return fmt.Errorf("%s action requires a selector", a.Type)
		}
		return nil
	default:
		return fmt.Errorf("unknown action: %s", a.Type)
	}
}

// AssertionType represents what an assertion inspects
type AssertionType string

const (
	AssertVisible   AssertionType = "visible"
	AssertTextEqual AssertionType = "text_equals"
	AssertURLEqual  AssertionType = "url_equals"
)

// Assertion compares observed page state against a literal.
type Assertion struct {
	Type     AssertionType `json:"type"`
	Selector string        `json:"selector,omitempty"`
	// Expected is the literal text for AssertTextEqual, or the path relative
	// to the base URL for AssertURLEqual.
	Expected string `json:"expected,omitempty"`
}

// Validate checks that the fields required by the assertion type are present.
func (a Assertion) Validate() error {
	switch a.Type {
	case AssertVisible, AssertTextEqual:
		if a.Selector == "" {
			return fmt.Errorf("%s assertion requires a selector", a.Type)
		}
		return nil
	case AssertURLEqual:
		return nil
	default:
		return fmt.Errorf("unknown assertion: %s", a.Type)
	}
}
