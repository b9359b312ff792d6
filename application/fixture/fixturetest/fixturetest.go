// Package fixturetest binds browser fixtures to running tests: it picks the
// site under test, opens a fixture per test scope and captures the page when
// a test fails.
package fixturetest

import (
	"context"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"login_automation/application/fixture"
	"login_automation/config"
	"login_automation/infrastructure/browser"
	"login_automation/infrastructure/demosite"
	"login_automation/infrastructure/logging"
	"login_automation/infrastructure/report"
)

// SkipReason returns why browser tests should not run, or "" when they should.
func SkipReason(cfg *config.Config) string {
	switch {
	case testing.Short():
		return "browser test skipped in -short mode"
	case cfg.E2ESkipBrowser:
		return "browser test skipped: E2E_SKIP_BROWSER=true"
	default:
		return ""
	}
}

// TargetConfig loads the configuration for a browser test and points it at
// the site under test: E2E_BASE_URL when set, otherwise a replica served
// for the lifetime of t. It skips t when browser tests are disabled.
func TargetConfig(t testing.TB) *config.Config {
	t.Helper()

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if reason := SkipReason(cfg); reason != "" {
		t.Skip(reason)
	}

	if cfg.E2EBaseURL != "" {
		cfg.BaseURL = cfg.E2EBaseURL
		return cfg
	}

	srv := httptest.NewServer(demosite.NewServer(logging.NewLogger(cfg.LogLevel)))
	t.Cleanup(srv.Close)
	cfg.BaseURL = config.NormalizeBaseURL(srv.URL)
	return cfg
}

// Setup opens a fixture for the calling test and closes it when the test
// and all its subtests finish, whatever way they finish. Launch failures
// fail the test; they never turn into a skip.
func Setup(t testing.TB, cfg *config.Config) *fixture.Fixture {
	t.Helper()
	return setup(t, browser.Launch, cfg)
}

func setup(t testing.TB, launch fixture.Launcher, cfg *config.Config) *fixture.Fixture {
	t.Helper()

	if reason := SkipReason(cfg); reason != "" {
		t.Skip(reason)
	}

	f, err := fixture.OpenWith(context.Background(), launch, cfg, logging.NewLogger(cfg.LogLevel))
	if err != nil {
		t.Fatalf("browser fixture: %v", err)
	}
	t.Cleanup(func() {
		if err := f.Close(); err != nil {
			t.Errorf("browser fixture: %v", err)
		}
	})
	return f
}

// ScreenshotOnFailure attaches a screenshot of the page to c if t has failed
// by the time it finishes. Call it after report.Start so the attachment lands
// before the result is written.
func ScreenshotOnFailure(t testing.TB, f *fixture.Fixture, c *report.Case) {
	t.Helper()

	t.Cleanup(func() {
		if !t.Failed() {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		data, ok, err := f.Screenshot(ctx)
		switch {
		case err != nil:
			t.Logf("failure screenshot not taken: %v", err)
		case ok:
			c.Attach(screenshotName(t.Name()), "image/png", data)
		}
	})
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

func screenshotName(testName string) string {
	return unsafeChars.ReplaceAllString(testName, "_") + "-failure"
}
