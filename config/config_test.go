package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"BASE_URL", "BROWSER_ENGINE", "HEADLESS", "SLOW_MO", "BROWSER_TIMEOUT",
		"ASSERT_TIMEOUT", "CHROMEDRIVER_PATH", "CHROMEDRIVER_PORT", "ALLURE_RESULTS_DIR",
		"LOG_LEVEL", "E2E_BASE_URL", "E2E_SKIP_BROWSER",
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "https://www.saucedemo.com/", cfg.BaseURL)
	assert.Equal(t, EnginePlaywright, cfg.Engine)
	assert.True(t, cfg.Headless)
	assert.Equal(t, 30*time.Second, cfg.BrowserTimeout)
	assert.Equal(t, 5*time.Second, cfg.AssertTimeout)
	assert.Equal(t, 9515, cfg.ChromeDriverPort)
	assert.Empty(t, cfg.ResultsDir)
	assert.False(t, cfg.E2ESkipBrowser)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("BASE_URL", "http://localhost:8080")
	t.Setenv("BROWSER_ENGINE", "Selenium")
	t.Setenv("HEADLESS", "false")
	t.Setenv("SLOW_MO", "250")
	t.Setenv("BROWSER_TIMEOUT", "10s")
	t.Setenv("ASSERT_TIMEOUT", "2s")
	t.Setenv("CHROMEDRIVER_PORT", "4444")
	t.Setenv("ALLURE_RESULTS_DIR", "allure-results")
	t.Setenv("E2E_BASE_URL", "https://www.saucedemo.com")
	t.Setenv("E2E_SKIP_BROWSER", "true")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/", cfg.BaseURL)
	assert.Equal(t, EngineSelenium, cfg.Engine)
	assert.False(t, cfg.Headless)
	assert.Equal(t, 250*time.Millisecond, cfg.SlowMo)
	assert.Equal(t, 10*time.Second, cfg.BrowserTimeout)
	assert.Equal(t, 2*time.Second, cfg.AssertTimeout)
	assert.Equal(t, 4444, cfg.ChromeDriverPort)
	assert.Equal(t, "allure-results", cfg.ResultsDir)
	assert.Equal(t, "https://www.saucedemo.com/", cfg.E2EBaseURL)
	assert.True(t, cfg.E2ESkipBrowser)
}

func TestFromEnv_CollectsEveryProblem(t *testing.T) {
	clearEnv(t)
	t.Setenv("BROWSER_ENGINE", "netscape")
	t.Setenv("HEADLESS", "maybe")
	t.Setenv("ASSERT_TIMEOUT", "-1s")
	t.Setenv("CHROMEDRIVER_PORT", "70000")

	_, err := FromEnv()
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Errors, 4)
	assert.Contains(t, err.Error(), "BROWSER_ENGINE")
}

func TestConfigURL(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "https://www.saucedemo.com/", cfg.URL(""))
	assert.Equal(t, "https://www.saucedemo.com/inventory.html", cfg.URL("inventory.html"))
	assert.Equal(t, "https://www.saucedemo.com/inventory.html", cfg.URL("/inventory.html"))
}
