package entities

import (
	"fmt"
	"time"
)

// Severity mirrors the severity levels understood by the report viewer.
type Severity string

const (
	SeverityBlocker  Severity = "blocker"
	SeverityCritical Severity = "critical"
	SeverityNormal   Severity = "normal"
	SeverityMinor    Severity = "minor"
	SeverityTrivial  Severity = "trivial"
)

// Metadata labels a test case for result aggregation. It never changes how
// the test runs.
type Metadata struct {
	Suite       string   `json:"suite,omitempty"`
	Feature     string   `json:"feature,omitempty"`
	Description string   `json:"description,omitempty"`
	Severity    Severity `json:"severity,omitempty"`
	Owner       string   `json:"owner,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// HasTag reports whether tag is one of the metadata tags.
func (m Metadata) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Step is one named unit of a scenario: exactly one of Action or Assertion is set.
type Step struct {
	Name      string     `json:"name"`
	Action    *Action    `json:"action,omitempty"`
	Assertion *Assertion `json:"assertion,omitempty"`
}

// Validate checks the step shape.
func (s Step) Validate() error {
	switch {
	case s.Action != nil && s.Assertion != nil:
		return fmt.Errorf("step %q has both an action and an assertion", s.Name)
	case s.Action != nil:
		return s.Action.Validate()
	case s.Assertion != nil:
		return s.Assertion.Validate()
	default:
		return fmt.Errorf("step %q has neither an action nor an assertion", s.Name)
	}
}

// Scenario is a fixed sequence of steps: navigate, act, assert.
type Scenario struct {
	Name     string   `json:"name"`
	Metadata Metadata `json:"metadata"`
	Steps    []Step   `json:"steps"`
}

// Validate checks every step of the scenario.
func (s Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario has no name")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("scenario %q has no steps", s.Name)
	}
	for i, step := range s.Steps {
		if err := step.Validate(); err != nil {
			return fmt.Errorf("scenario %q step %d: %w", s.Name, i, err)
		}
	}
	return nil
}

// Status is the outcome of a step or a scenario
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusBroken  Status = "broken"
	StatusSkipped Status = "skipped"
)

// StepResult records the outcome of a single step.
type StepResult struct {
	Name    string    `json:"name"`
	Status  Status    `json:"status"`
	Message string    `json:"message,omitempty"`
	Start   time.Time `json:"start"`
	Stop    time.Time `json:"stop"`
}

// ScenarioResult records the outcome of a scenario run.
type ScenarioResult struct {
	Scenario Scenario     `json:"scenario"`
	Status   Status       `json:"status"`
	Message  string       `json:"message,omitempty"`
	Steps    []StepResult `json:"steps"`
	Start    time.Time    `json:"start"`
	Stop     time.Time    `json:"stop"`
}

// Passed reports whether every step passed.
func (r ScenarioResult) Passed() bool {
	return r.Status == StatusPassed
}
