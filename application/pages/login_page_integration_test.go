package pages_test

import (
	"context"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"login_automation/application/fixture/fixturetest"
	"login_automation/application/pages"
	"login_automation/application/scenarios"
	"login_automation/domain/entities"
	"login_automation/infrastructure/logging"
	"login_automation/infrastructure/report"
)

// playwrightBacked is implemented by pages driven by Playwright.
type playwrightBacked interface {
	Underlying() playwright.Page
}

// TestLoginPageIntegration checks the page object against a real browser.
func TestLoginPageIntegration(t *testing.T) {
	cfg := fixturetest.TargetConfig(t)
	fx := fixturetest.Setup(t, cfg)
	writer := report.NewWriter(cfg.ResultsDir, logging.NewLogger(cfg.LogLevel))

	ctx := context.Background()
	loginPage := pages.NewLoginPage(fx.Page())
	timeout := float64(cfg.AssertTimeout.Milliseconds())

	t.Run("IntegratesWithPageAndNavigatesSuccessfully", func(t *testing.T) {
		sc, _ := scenarios.Find(scenarios.LoginIntegratesWithPageAndNavigates)
		c := report.Start(t, writer, sc.Metadata)
		fixturetest.ScreenshotOnFailure(t, fx, c)

		c.Step("Navigate to login page", func() {
			require.NoError(t, loginPage.NavigateTo(ctx, fx.URL(entities.PathLogin)))
		})
		c.Step("Perform login with valid credentials", func() {
			require.NoError(t, loginPage.LoginAs(ctx, entities.StandardUser))
		})
		c.Step("Verify URL changed to inventory page", func() {
			if pw, ok := fx.Page().(playwrightBacked); ok {
				require.NoError(t, pw.Underlying().WaitForURL(fx.URL(entities.PathInventory), playwright.PageWaitForURLOptions{
					Timeout: playwright.Float(timeout),
				}))
			}
			url, err := fx.Page().URL(ctx)
			require.NoError(t, err)
			assert.Equal(t, fx.URL(entities.PathInventory), url)
		})
		c.Step("Verify inventory container is visible on page", func() {
			loaded, err := pages.NewInventoryPage(fx.Page()).IsLoaded(ctx)
			require.NoError(t, err)
			assert.True(t, loaded)
		})
	})

	t.Run("HandlesInvalidCredentialsAndDisplaysError", func(t *testing.T) {
		sc, _ := scenarios.Find(scenarios.LoginHandlesInvalidCredentialsWithMessage)
		c := report.Start(t, writer, sc.Metadata)
		fixturetest.ScreenshotOnFailure(t, fx, c)

		c.Step("Navigate to login page", func() {
			require.NoError(t, loginPage.NavigateTo(ctx, fx.URL(entities.PathLogin)))
		})
		c.Step("Attempt login with invalid credentials", func() {
			require.NoError(t, loginPage.LoginAs(ctx, entities.UnknownUser))
		})
		c.Step("Verify error message is displayed", func() {
			if pw, ok := fx.Page().(playwrightBacked); ok {
				require.NoError(t, pw.Underlying().Locator(entities.SelectorError).WaitFor(playwright.LocatorWaitForOptions{
					State:   playwright.WaitForSelectorStateVisible,
					Timeout: playwright.Float(timeout),
				}))
			}
			visible, err := loginPage.IsErrorVisible(ctx)
			require.NoError(t, err)
			assert.True(t, visible)
		})
	})
}
