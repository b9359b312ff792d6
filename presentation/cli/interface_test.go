package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"login_automation/application/scenarios"
	"login_automation/config"
	"login_automation/domain/entities"
	"login_automation/domain/interfaces"
	"login_automation/domain/interfaces/mocks"
	"login_automation/infrastructure/browser"
	"login_automation/infrastructure/logging"
)

const testBase = "https://shop.test/"

func newTestInterface(launch func(context.Context, *config.Config, *logrus.Logger) (interfaces.Session, error)) (*Interface, *bytes.Buffer, *config.Config) {
	out := &bytes.Buffer{}
	cfg := config.Default()
	cfg.BaseURL = testBase

	i := NewInterface(out)
	i.launch = launch
	i.loadConfig = func() (*config.Config, error) {
		copied := *cfg
		return &copied, nil
	}
	i.newLogger = func(string) *logrus.Logger { return logging.Discard() }
	return i, out, cfg
}

func execute(i *Interface, args ...string) error {
	cmd := i.Command()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}

func TestList_PrintsCatalog(t *testing.T) {
	i, out, _ := newTestInterface(nil)

	require.NoError(t, execute(i, "list"))

	for _, sc := range scenarios.Catalog() {
		assert.Contains(t, out.String(), sc.Name)
	}
}

func TestList_FiltersByTag(t *testing.T) {
	i, out, _ := newTestInterface(nil)

	require.NoError(t, execute(i, "list", "--tag", "Logout"))

	assert.Contains(t, out.String(), scenarios.LogoutAfterSuccessfulLogin)
	assert.NotContains(t, out.String(), scenarios.FailedLoginLockedUser)
}

func TestRun_UnknownScenario(t *testing.T) {
	launched := false
	i, _, _ := newTestInterface(func(context.Context, *config.Config, *logrus.Logger) (interfaces.Session, error) {
		launched = true
		return nil, errors.New("unexpected launch")
	})

	err := execute(i, "run", "--scenario", "NoSuchScenario")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown scenario")
	assert.False(t, launched)
}

func TestRun_UnknownEngine(t *testing.T) {
	i, _, _ := newTestInterface(nil)

	err := execute(i, "run", "--engine", "netscape")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown engine")
}

func TestRun_LaunchFailure(t *testing.T) {
	i, _, _ := newTestInterface(func(context.Context, *config.Config, *logrus.Logger) (interfaces.Session, error) {
		return nil, browser.LaunchError.New("chromium missing")
	})

	err := execute(i, "run")
	require.Error(t, err)
	assert.True(t, browser.LaunchError.Has(err))
}

func TestRun_PassingScenarioWritesResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	page := mocks.NewMockPage(ctrl)
	session := mocks.NewMockSession(ctrl)
	session.EXPECT().Page().Return(page).AnyTimes()
	session.EXPECT().Engine().Return(browser.EnginePlaywright).AnyTimes()
	session.EXPECT().Close().Return(nil).Times(1)

	gomock.InOrder(
		page.EXPECT().Goto(gomock.Any(), testBase).Return(nil),
		page.EXPECT().Click(gomock.Any(), entities.SelectorLoginButton).Return(nil),
		page.EXPECT().TextContent(gomock.Any(), entities.SelectorError).Return(entities.MsgUsernameRequired, nil),
	)

	var launchedWith *config.Config
	i, out, _ := newTestInterface(func(_ context.Context, cfg *config.Config, _ *logrus.Logger) (interfaces.Session, error) {
		launchedWith = cfg
		return session, nil
	})
	results := t.TempDir()

	err := execute(i, "run", "--scenario", scenarios.FailedLoginEmptyCredentials, "--results", results, "--headed")
	require.NoError(t, err)

	require.NotNil(t, launchedWith)
	assert.False(t, launchedWith.Headless)
	assert.Contains(t, out.String(), "PASS   "+scenarios.FailedLoginEmptyCredentials)
	assert.Contains(t, out.String(), "1 passed, 0 failed, 0 broken")
	assert.Contains(t, out.String(), "Results written to "+results)

	files, err := filepath.Glob(filepath.Join(results, "*-result.json"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status": "passed"`)
}

func TestRun_FailingScenarioReturnsError(t *testing.T) {
	ctrl := gomock.NewController(t)
	page := mocks.NewMockPage(ctrl)
	session := mocks.NewMockSession(ctrl)
	session.EXPECT().Page().Return(page).AnyTimes()
	session.EXPECT().Engine().Return(browser.EnginePlaywright).AnyTimes()
	session.EXPECT().Close().Return(nil).Times(1)

	page.EXPECT().Goto(gomock.Any(), "http://localhost:8080/").Return(errors.New("net::ERR_CONNECTION_REFUSED"))

	i, out, _ := newTestInterface(func(context.Context, *config.Config, *logrus.Logger) (interfaces.Session, error) {
		return session, nil
	})

	err := execute(i, "run", "--scenario", scenarios.SuccessfulLogin, "--base-url", "http://localhost:8080")
	require.ErrorIs(t, err, ErrScenariosFailed)
	assert.Contains(t, out.String(), "BROKEN "+scenarios.SuccessfulLogin)
	assert.Contains(t, out.String(), "skipped")
	assert.Contains(t, out.String(), "0 passed, 0 failed, 1 broken")
	assert.NotContains(t, out.String(), "Results written to")
}

func TestSummary_ReadsResultsOfPreviousRuns(t *testing.T) {
	ctrl := gomock.NewController(t)
	page := mocks.NewMockPage(ctrl)
	session := mocks.NewMockSession(ctrl)
	session.EXPECT().Page().Return(page).AnyTimes()
	session.EXPECT().Engine().Return(browser.EnginePlaywright).AnyTimes()
	session.EXPECT().Close().Return(nil)
	page.EXPECT().Goto(gomock.Any(), testBase).Return(errors.New("net::ERR_CONNECTION_RESET"))

	i, out, _ := newTestInterface(func(context.Context, *config.Config, *logrus.Logger) (interfaces.Session, error) {
		return session, nil
	})
	results := t.TempDir()
	require.ErrorIs(t, execute(i, "run", "--scenario", scenarios.FailedLoginLockedUser, "--results", results), ErrScenariosFailed)

	out.Reset()
	require.NoError(t, execute(i, "summary", "--results", results))
	assert.Contains(t, out.String(), "scenarios/"+scenarios.FailedLoginLockedUser)
	assert.Contains(t, out.String(), "1 results: 0 passed, 0 failed, 1 broken, 0 skipped")
}

func TestSummary_RequiresDirectory(t *testing.T) {
	i, _, _ := newTestInterface(nil)

	err := execute(i, "summary")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no results directory")
}
