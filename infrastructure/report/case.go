package report

import (
	"fmt"
	"time"

	"login_automation/domain/entities"
)

// TB is the part of testing.TB a Case reports through. *testing.T and
// *testing.B satisfy it.
type TB interface {
	Helper()
	Name() string
	Failed() bool
	Skipped() bool
	Cleanup(func())
	Logf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Case annotates one running test with metadata and labelled steps. The
// result is written when the test finishes. A Case belongs to the goroutine
// running the test; it is not safe for concurrent use.
type Case struct {
	t      TB
	writer *Writer
	result *Result
	stack  []*Step
}

// Start attaches meta to t and registers the result to be written on cleanup.
func Start(t TB, w *Writer, meta entities.Metadata) *Case {
	t.Helper()

	name := t.Name()
	c := &Case{
		t:      t,
		writer: w,
		result: NewResult(name, shortName(name), meta),
	}
	t.Cleanup(c.finish)
	return c
}

// Result exposes the result being built, mainly for inspection in tests.
func (c *Case) Result() *Result {
	return c.result
}

// Step runs fn as a named step. The step only labels output: a t.FailNow,
// t.SkipNow or panic inside fn propagates exactly as it would without the
// wrapper, after the step outcome has been recorded.
func (c *Case) Step(name string, fn func()) {
	c.t.Helper()

	step := &Step{Name: name, Stage: StageRunning, Start: timestamp(time.Now())}
	c.push(step)

	failedBefore := c.t.Failed()
	completed := false
	defer func() {
		r := recover()

		step.Stop = timestamp(time.Now())
		step.Stage = StageFinished
		switch {
		case r != nil:
			step.Status = entities.StatusBroken
			step.StatusDetails = &StatusDetails{Message: fmt.Sprint(r)}
		case !completed && c.t.Skipped():
			step.Status = entities.StatusSkipped
		case !completed || (c.t.Failed() && !failedBefore):
			step.Status = entities.StatusFailed
		default:
			step.Status = entities.StatusPassed
		}
		c.pop()

		if r != nil {
			panic(r)
		}
	}()

	fn()
	completed = true
}

// Attach stores data as an attachment of the current step, or of the test
// when no step is running.
func (c *Case) Attach(name, mimeType string, data []byte) {
	c.t.Helper()

	att, ok, err := c.writer.Attach(name, mimeType, data)
	if err != nil {
		c.t.Logf("attachment %q not saved: %v", name, err)
		return
	}
	if !ok {
		return
	}
	if n := len(c.stack); n > 0 {
		c.stack[n-1].Attachments = append(c.stack[n-1].Attachments, att)
		return
	}
	c.result.Attachments = append(c.result.Attachments, att)
}

func (c *Case) push(step *Step) {
	if n := len(c.stack); n > 0 {
		parent := c.stack[n-1]
		parent.Steps = append(parent.Steps, step)
	} else {
		c.result.Steps = append(c.result.Steps, step)
	}
	c.stack = append(c.stack, step)
}

func (c *Case) pop() {
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *Case) finish() {
	r := c.result
	r.Stop = timestamp(time.Now())
	r.Stage = StageFinished
	switch {
	case c.t.Skipped():
		r.Status = entities.StatusSkipped
	case c.t.Failed():
		r.Status = entities.StatusFailed
		if msg := firstFailure(r.Steps); msg != "" {
			r.StatusDetails = &StatusDetails{Message: msg}
		}
	default:
		r.Status = entities.StatusPassed
	}

	if c.writer == nil {
		return
	}
	if err := c.writer.Write(r); err != nil {
		c.t.Errorf("failed to write test result: %v", err)
	}
}

func firstFailure(steps []*Step) string {
	for _, s := range steps {
		if s.Status == entities.StatusFailed || s.Status == entities.StatusBroken {
			if msg := firstFailure(s.Steps); msg != "" {
				return msg
			}
			if s.StatusDetails != nil && s.StatusDetails.Message != "" {
				return s.StatusDetails.Message
			}
			return "step failed: " + s.Name
		}
	}
	return ""
}

func shortName(full string) string {
	for i := len(full) - 1; i >= 0; i-- {
		if full[i] == '/' {
			return full[i+1:]
		}
	}
	return full
}
