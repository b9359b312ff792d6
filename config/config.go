// Package config loads the settings shared by the CLI and the browser tests.
// Values come from the environment, optionally seeded from a .env file in the
// working directory. Existing environment variables win over .env entries.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"login_automation/domain/entities"
)

// Engine names.
const (
	EnginePlaywright = "playwright"
	EngineSelenium   = "selenium"
)

const (
	defaultBrowserTimeout   = 30 * time.Second
	defaultAssertTimeout    = 5 * time.Second
	defaultChromeDriverPort = 9515
)

// Config holds the runtime settings.
type Config struct {
	BaseURL  string
	Engine   string
	Headless bool
	SlowMo   time.Duration

	// BrowserTimeout is the default timeout the engine applies to every call
	BrowserTimeout time.Duration
	// AssertTimeout bounds how long an assertion keeps polling page state
	AssertTimeout time.Duration

	ChromeDriverPath string
	ChromeDriverPort int

	ResultsDir string
	LogLevel   string

	// Test-only knobs
	E2EBaseURL     string // live target instead of the local replica
	E2ESkipBrowser bool
}

// ValidationError lists every invalid setting found by Load.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("configuration validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		BaseURL:          entities.DefaultBaseURL,
		Engine:           EnginePlaywright,
		Headless:         true,
		BrowserTimeout:   defaultBrowserTimeout,
		AssertTimeout:    defaultAssertTimeout,
		ChromeDriverPort: defaultChromeDriverPort,
		LogLevel:         "info",
	}
}

// Load reads .env (when present) and the environment.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds the configuration from environment variables only.
func FromEnv() (*Config, error) {
	cfg := Default()
	var problems []string

	if v := os.Getenv("BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	cfg.BaseURL = NormalizeBaseURL(cfg.BaseURL)

	if v := os.Getenv("BROWSER_ENGINE"); v != "" {
		cfg.Engine = strings.ToLower(v)
	}
	if cfg.Engine != EnginePlaywright && cfg.Engine != EngineSelenium {
		problems = append(problems, fmt.Sprintf("BROWSER_ENGINE must be %q or %q, got %q", EnginePlaywright, EngineSelenium, cfg.Engine))
	}

	if v := os.Getenv("HEADLESS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			problems = append(problems, fmt.Sprintf("HEADLESS: %v", err))
		} else {
			cfg.Headless = b
		}
	}

	if v := os.Getenv("SLOW_MO"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms < 0 {
			problems = append(problems, fmt.Sprintf("SLOW_MO must be a non-negative number of milliseconds, got %q", v))
		} else {
			cfg.SlowMo = time.Duration(ms) * time.Millisecond
		}
	}

	parseDuration := func(key string, dst *time.Duration) {
		v := os.Getenv(key)
		if v == "" {
			return
		}
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			problems = append(problems, fmt.Sprintf("%s must be a positive duration, got %q", key, v))
			return
		}
		*dst = d
	}
	parseDuration("BROWSER_TIMEOUT", &cfg.BrowserTimeout)
	parseDuration("ASSERT_TIMEOUT", &cfg.AssertTimeout)

	cfg.ChromeDriverPath = os.Getenv("CHROMEDRIVER_PATH")
	if v := os.Getenv("CHROMEDRIVER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			problems = append(problems, fmt.Sprintf("CHROMEDRIVER_PORT must be a TCP port, got %q", v))
		} else {
			cfg.ChromeDriverPort = port
		}
	}

	cfg.ResultsDir = os.Getenv("ALLURE_RESULTS_DIR")
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	if v := os.Getenv("E2E_BASE_URL"); v != "" {
		cfg.E2EBaseURL = NormalizeBaseURL(v)
	}
	cfg.E2ESkipBrowser = os.Getenv("E2E_SKIP_BROWSER") == "true"

	if len(problems) > 0 {
		return nil, &ValidationError{Errors: problems}
	}
	return cfg, nil
}

// NormalizeBaseURL makes sure the base URL ends with a slash so that
// relative paths can be appended directly.
func NormalizeBaseURL(base string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return base
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base
}

// URL resolves a path relative to the base URL.
func (c *Config) URL(path string) string {
	return c.BaseURL + strings.TrimPrefix(path, "/")
}
