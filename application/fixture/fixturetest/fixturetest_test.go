package fixturetest

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"login_automation/application/fixture"
	"login_automation/config"
	"login_automation/domain/entities"
	"login_automation/domain/interfaces"
	"login_automation/domain/interfaces/mocks"
	"login_automation/infrastructure/browser"
	"login_automation/infrastructure/logging"
	"login_automation/infrastructure/report"
)

func launcherFor(session interfaces.Session, err error, calls *int) fixture.Launcher {
	return func(context.Context, *config.Config, *logrus.Logger) (interfaces.Session, error) {
		*calls++
		if err != nil {
			return nil, err
		}
		return session, nil
	}
}

func newMockSession(ctrl *gomock.Controller, page interfaces.Page) *mocks.MockSession {
	session := mocks.NewMockSession(ctrl)
	session.EXPECT().Page().Return(page).AnyTimes()
	session.EXPECT().Engine().Return(browser.EnginePlaywright).AnyTimes()
	return session
}

// screenshotPage is a page that can also capture itself.
type screenshotPage struct {
	interfaces.Page
	png   []byte
	err   error
	shots int
}

func (p *screenshotPage) Screenshot(context.Context) ([]byte, error) {
	p.shots++
	return p.png, p.err
}

// scopeTB records the outcome of a test scope run through setup.
type scopeTB struct {
	testing.TB
	failed   bool
	skipped  bool
	messages []string
	cleanups []func()
}

func (s *scopeTB) Helper() {}
func (s *scopeTB) Name() string { return "TestScope/Locked out user" }
func (s *scopeTB) Failed() bool { return s.failed }
func (s *scopeTB) Skipped() bool { return s.skipped }
func (s *scopeTB) Cleanup(fn func()) { s.cleanups = append(s.cleanups, fn) }
func (s *scopeTB) Logf(format string, args ...any) {
	s.messages = append(s.messages, fmt.Sprintf(format, args...))
}
func (s *scopeTB) Errorf(format string, args ...any) {
	s.failed = true
	s.Logf(format, args...)
}
func (s *scopeTB) Fatalf(format string, args ...any) {
	s.Errorf(format, args...)
	runtime.Goexit()
}
func (s *scopeTB) Skip(args ...any) {
	s.skipped = true
	s.messages = append(s.messages, fmt.Sprint(args...))
	runtime.Goexit()
}

// run executes body the way the testing package runs a test function.
func (s *scopeTB) run(body func()) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		body()
	}()
	<-done
	for i := len(s.cleanups) - 1; i >= 0; i-- {
		s.cleanups[i]()
	}
}

func openFixture(t *testing.T, session interfaces.Session) *fixture.Fixture {
	t.Helper()
	calls := 0
	f, err := fixture.OpenWith(context.Background(), launcherFor(session, nil, &calls), config.Default(), logging.Discard())
	require.NoError(t, err)
	return f
}

func TestSkipReason(t *testing.T) {
	if testing.Short() {
		assert.NotEmpty(t, SkipReason(config.Default()))
		return
	}

	assert.Empty(t, SkipReason(config.Default()))

	cfg := config.Default()
	cfg.E2ESkipBrowser = true
	assert.Contains(t, SkipReason(cfg), "E2E_SKIP_BROWSER")
}

func TestSetup_LaunchFailureFailsInsteadOfSkipping(t *testing.T) {
	if testing.Short() {
		t.Skip("setup skips every browser scope in -short mode")
	}

	tb := &scopeTB{}
	calls := 0
	reached := false
	tb.run(func() {
		setup(tb, launcherFor(nil, browser.LaunchError.New("no browser"), &calls), config.Default())
		reached = true
	})

	assert.True(t, tb.failed)
	assert.False(t, tb.skipped)
	assert.False(t, reached, "dependent test body must not run")
	assert.Equal(t, 1, calls)
	require.NotEmpty(t, tb.messages)
	assert.Contains(t, tb.messages[0], "no browser")
}

func TestSetup_ClosesWhenTheScopeFails(t *testing.T) {
	if testing.Short() {
		t.Skip("setup skips every browser scope in -short mode")
	}

	ctrl := gomock.NewController(t)
	session := newMockSession(ctrl, mocks.NewMockPage(ctrl))
	session.EXPECT().Close().Return(nil).Times(1)

	tb := &scopeTB{}
	calls := 0
	tb.run(func() {
		f := setup(tb, launcherFor(session, nil, &calls), config.Default())
		assert.NotNil(t, f)
		tb.Fatalf("assertion failed")
	})

	assert.True(t, tb.failed)
	assert.Equal(t, 1, calls)
}

func TestSetup_SkipsWhenBrowserTestsAreDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.E2ESkipBrowser = true

	tb := &scopeTB{}
	calls := 0
	tb.run(func() {
		setup(tb, launcherFor(nil, nil, &calls), cfg)
	})

	assert.True(t, tb.skipped)
	assert.False(t, tb.failed)
	assert.Zero(t, calls, "no browser is launched for a skipped scope")
}

func TestScreenshotOnFailure_AttachesToFailedTest(t *testing.T) {
	ctrl := gomock.NewController(t)
	page := &screenshotPage{png: []byte("\x89PNG")}
	session := newMockSession(ctrl, page)
	session.EXPECT().Close().Return(nil)

	f := openFixture(t, session)
	defer f.Close()

	dir := t.TempDir()
	tb := &scopeTB{}
	var c *report.Case
	tb.run(func() {
		c = report.Start(tb, report.NewWriter(dir, logging.Discard()), entities.Metadata{Suite: "Unit Tests"})
		ScreenshotOnFailure(tb, f, c)
		tb.Errorf("login did not reach the inventory")
	})

	assert.Equal(t, 1, page.shots)
	require.Len(t, c.Result().Attachments, 1)
	assert.Equal(t, "TestScope_Locked_out_user-failure", c.Result().Attachments[0].Name)
	assert.Equal(t, "image/png", c.Result().Attachments[0].Type)
}

func TestScreenshotOnFailure_PassingTestTakesNoScreenshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	page := &screenshotPage{}
	session := newMockSession(ctrl, page)
	session.EXPECT().Close().Return(nil)

	f := openFixture(t, session)
	defer f.Close()

	tb := &scopeTB{}
	var c *report.Case
	tb.run(func() {
		c = report.Start(tb, report.NewWriter("", logging.Discard()), entities.Metadata{})
		ScreenshotOnFailure(tb, f, c)
	})

	assert.Zero(t, page.shots)
	assert.Empty(t, c.Result().Attachments)
}

func TestScreenshotOnFailure_CaptureErrorIsLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	page := &screenshotPage{err: errors.New("page crashed")}
	session := newMockSession(ctrl, page)
	session.EXPECT().Close().Return(nil)

	f := openFixture(t, session)
	defer f.Close()

	tb := &scopeTB{}
	tb.run(func() {
		c := report.Start(tb, report.NewWriter("", logging.Discard()), entities.Metadata{})
		ScreenshotOnFailure(tb, f, c)
		tb.Errorf("assertion failed")
	})

	require.NotEmpty(t, tb.messages)
	assert.Contains(t, tb.messages[len(tb.messages)-1], "page crashed")
}

func TestScreenshotName(t *testing.T) {
	assert.Equal(t, "TestLogin_Locked_out_user-failure", screenshotName("TestLogin/Locked out user"))
}
