// Package report writes test outcomes in the Allure results format: one
// <uuid>-result.json per test case plus attachment files, all in one
// directory that the allure CLI can render.
package report

import (
	"time"

	"github.com/google/uuid"

	"login_automation/domain/entities"
)

// Stage values used by the results format.
const (
	StageRunning  = "running"
	StageFinished = "finished"
)

// Label is a name/value pair used for grouping results.
type Label struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// StatusDetails carries the failure message of a result or a step.
type StatusDetails struct {
	Message string `json:"message,omitempty"`
	Trace   string `json:"trace,omitempty"`
}

// Attachment references a file written next to the result.
type Attachment struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	Type   string `json:"type"`
}

// Step is a labelled sub-step of a test case; steps nest.
type Step struct {
	Name          string          `json:"name"`
	Status        entities.Status `json:"status,omitempty"`
	StatusDetails *StatusDetails  `json:"statusDetails,omitempty"`
	Stage         string          `json:"stage"`
	Start         int64           `json:"start"`
	Stop          int64           `json:"stop,omitempty"`
	Steps         []*Step         `json:"steps,omitempty"`
	Attachments   []Attachment    `json:"attachments,omitempty"`
}

// Result is one test case result file.
type Result struct {
	UUID          string          `json:"uuid"`
	HistoryID     string          `json:"historyId"`
	Name          string          `json:"name"`
	FullName      string          `json:"fullName"`
	Description   string          `json:"description,omitempty"`
	Status        entities.Status `json:"status,omitempty"`
	StatusDetails *StatusDetails  `json:"statusDetails,omitempty"`
	Stage         string          `json:"stage"`
	Start         int64           `json:"start"`
	Stop          int64           `json:"stop,omitempty"`
	Labels        []Label         `json:"labels"`
	Steps         []*Step         `json:"steps,omitempty"`
	Attachments   []Attachment    `json:"attachments,omitempty"`
}

// NewResult starts a result for the named test with its metadata as labels.
func NewResult(fullName, name string, meta entities.Metadata) *Result {
	return &Result{
		UUID:        uuid.NewString(),
		HistoryID:   uuid.NewSHA1(uuid.NameSpaceURL, []byte(fullName)).String(),
		Name:        name,
		FullName:    fullName,
		Description: meta.Description,
		Stage:       StageRunning,
		Start:       timestamp(time.Now()),
		Labels:      labels(meta),
	}
}

// Label returns the first value of the named label.
func (r *Result) Label(name string) (string, bool) {
	for _, l := range r.Labels {
		if l.Name == name {
			return l.Value, true
		}
	}
	return "", false
}

func labels(meta entities.Metadata) []Label {
	out := []Label{
		{Name: "language", Value: "go"},
		{Name: "framework", Value: "go-test"},
	}
	if meta.Suite != "" {
		out = append(out, Label{Name: "suite", Value: meta.Suite})
	}
	if meta.Feature != "" {
		out = append(out, Label{Name: "feature", Value: meta.Feature})
	}
	if meta.Severity != "" {
		out = append(out, Label{Name: "severity", Value: string(meta.Severity)})
	}
	if meta.Owner != "" {
		out = append(out, Label{Name: "owner", Value: meta.Owner})
	}
	for _, tag := range meta.Tags {
		out = append(out, Label{Name: "tag", Value: tag})
	}
	return out
}

// FromScenario converts a scenario run into a result.
func FromScenario(res entities.ScenarioResult) *Result {
	r := NewResult("scenarios/"+res.Scenario.Name, res.Scenario.Name, res.Scenario.Metadata)
	r.Start = timestamp(res.Start)
	r.Stop = timestamp(res.Stop)
	r.Stage = StageFinished
	r.Status = res.Status
	if res.Message != "" {
		r.StatusDetails = &StatusDetails{Message: res.Message}
	}
	for _, s := range res.Steps {
		step := &Step{
			Name:   s.Name,
			Status: s.Status,
			Stage:  StageFinished,
			Start:  timestamp(s.Start),
			Stop:   timestamp(s.Stop),
		}
		if s.Message != "" {
			step.StatusDetails = &StatusDetails{Message: s.Message}
		}
		r.Steps = append(r.Steps, step)
	}
	return r
}

func timestamp(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}
