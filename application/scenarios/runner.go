package scenarios

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"login_automation/application/pages"
	"login_automation/domain/entities"
	"login_automation/domain/interfaces"
)

const defaultPollInterval = 100 * time.Millisecond

// MismatchError is returned when an assertion keeps observing something
// other than the expected value until its timeout.
type MismatchError struct {
	Assertion entities.Assertion
	Expected  string
	Actual    string
}

func (e *MismatchError) Error() string {
	switch e.Assertion.Type {
	case entities.AssertVisible:
		return fmt.Sprintf("expected %s to be visible", e.Assertion.Selector)
	case entities.AssertURLEqual:
		return fmt.Sprintf("expected URL %q, got %q", e.Expected, e.Actual)
	default:
		return fmt.Sprintf("expected text of %s to be %q, got %q", e.Assertion.Selector, e.Expected, e.Actual)
	}
}

// Runner plays scenarios step by step against one page.
type Runner struct {
	baseURL       string
	assertTimeout time.Duration
	pollInterval  time.Duration
	logger        *logrus.Logger
}

// NewRunner - creates a runner resolving paths against baseURL. Assertions
// poll for up to assertTimeout before failing.
func NewRunner(baseURL string, assertTimeout time.Duration, logger *logrus.Logger) *Runner {
	return &Runner{
		baseURL:       baseURL,
		assertTimeout: assertTimeout,
		pollInterval:  defaultPollInterval,
		logger:        logger,
	}
}

// WithPollInterval - sets how often assertions re-read page state
func (r *Runner) WithPollInterval(d time.Duration) *Runner {
	r.pollInterval = d
	return r
}

// URL resolves path against the runner's base URL.
func (r *Runner) URL(path string) string {
	return r.baseURL + strings.TrimPrefix(path, "/")
}

// Run plays sc against page. Every step waits for the previous one. The
// first step that does not pass ends the scenario: the remaining steps are
// reported as skipped and the page is left as it is.
func (r *Runner) Run(ctx context.Context, page interfaces.Page, sc entities.Scenario) entities.ScenarioResult {
	res := entities.ScenarioResult{
		Scenario: sc,
		Status:   entities.StatusPassed,
		Start:    time.Now(),
	}
	log := r.logger.WithField("scenario", sc.Name)

	if err := sc.Validate(); err != nil {
		res.Status = entities.StatusBroken
		res.Message = err.Error()
		res.Stop = time.Now()
		return res
	}

	login := pages.NewLoginPage(page)
	for _, step := range sc.Steps {
		if res.Status != entities.StatusPassed {
			res.Steps = append(res.Steps, entities.StepResult{Name: step.Name, Status: entities.StatusSkipped})
			continue
		}

		sr := entities.StepResult{Name: step.Name, Start: time.Now()}
		err := r.runStep(ctx, page, login, step)
		sr.Stop = time.Now()
		sr.Status = statusOf(err)
		if err != nil {
			sr.Message = err.Error()
			res.Status = sr.Status
			res.Message = fmt.Sprintf("%s: %v", step.Name, err)
		}
		res.Steps = append(res.Steps, sr)

		log.WithFields(logrus.Fields{
			"step":     step.Name,
			"status":   sr.Status,
			"duration": sr.Stop.Sub(sr.Start).Round(time.Millisecond),
		}).Debug("step finished")
	}

	res.Stop = time.Now()
	log.WithField("status", res.Status).Info("scenario finished")
	return res
}

func statusOf(err error) entities.Status {
	var mismatch *MismatchError
	switch {
	case err == nil:
		return entities.StatusPassed
	case errors.As(err, &mismatch):
		return entities.StatusFailed
	default:
		return entities.StatusBroken
	}
}

func (r *Runner) runStep(ctx context.Context, page interfaces.Page, login *pages.LoginPage, step entities.Step) error {
	if step.Action != nil {
		return r.executeAction(ctx, page, login, *step.Action)
	}
	return r.verify(ctx, page, *step.Assertion)
}

// executeAction - performs one page interaction
func (r *Runner) executeAction(ctx context.Context, page interfaces.Page, login *pages.LoginPage, action entities.Action) error {
	switch action.Type {
	case entities.ActionNavigate:
		return login.NavigateTo(ctx, r.URL(action.Path))

	case entities.ActionLogin:
		return login.LoginAs(ctx, action.Credentials)

	case entities.ActionClick:
		if err := page.Click(ctx, action.Selector); err != nil {
			return fmt.Errorf("click %s: %w", action.Selector, err)
		}
		return nil

	case entities.ActionFill:
		if err := page.Fill(ctx, action.Selector, action.Text); err != nil {
			return fmt.Errorf("fill %s: %w", action.Selector, err)
		}
		return nil

	default:
		return fmt.Errorf("unknown action: %s", action.Type)
	}
}

// verify polls page state until the assertion holds or the assertion
// timeout expires.
func (r *Runner) verify(ctx context.Context, page interfaces.Page, a entities.Assertion) error {
	expected := a.Expected
	var observe func(context.Context) (string, bool, error)

	switch a.Type {
	case entities.AssertVisible:
		observe = func(ctx context.Context) (string, bool, error) {
			ok, err := page.IsVisible(ctx, a.Selector)
			return fmt.Sprint(ok), ok, err
		}
	case entities.AssertTextEqual:
		observe = func(ctx context.Context) (string, bool, error) {
			text, err := page.TextContent(ctx, a.Selector)
			return text, err == nil && text == expected, err
		}
	case entities.AssertURLEqual:
		expected = r.URL(a.Expected)
		observe = func(ctx context.Context) (string, bool, error) {
			url, err := page.URL(ctx)
			return url, err == nil && url == expected, err
		}
	default:
		return fmt.Errorf("unknown assertion: %s", a.Type)
	}

	actx, cancel := context.WithTimeout(ctx, r.assertTimeout)
	defer cancel()

	var (
		actual  string
		lastErr error
	)
	for {
		observed, ok, err := observe(actx)
		if ok {
			return nil
		}
		actual, lastErr = observed, err

		select {
		case <-actx.Done():
			if err := ctx.Err(); err != nil {
				return err
			}
			if lastErr != nil {
				return fmt.Errorf("%s assertion: %w", a.Type, lastErr)
			}
			return &MismatchError{Assertion: a, Expected: expected, Actual: actual}
		case <-time.After(r.pollInterval):
		}
	}
}
