package browser

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
	"github.com/zeebo/errs"

	"login_automation/domain/interfaces"
)

// SeleniumOptions configures a WebDriver-backed session.
type SeleniumOptions struct {
	Headless         bool
	Timeout          time.Duration
	ChromeDriverPath string
	ChromeDriverPort int
}

type seleniumSession struct {
	wd      selenium.WebDriver
	service *selenium.Service
	page    *seleniumPage
	logger  *logrus.Logger

	closeOnce sync.Once
	closeErr  error
}

// findChromeDriver - finds ChromeDriver executable path
func findChromeDriver(configured string) (string, error) {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured, nil
		}
		return "", fmt.Errorf("chromedriver not found at %s", configured)
	}

	commonPaths := []string{
		"/usr/local/bin/chromedriver",
		"/usr/bin/chromedriver",
		"/opt/homebrew/bin/chromedriver",
		filepath.Join(os.Getenv("HOME"), "bin", "chromedriver"),
	}

	for _, path := range commonPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	if path, err := exec.LookPath("chromedriver"); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("chromedriver not found. Please install it or set CHROMEDRIVER_PATH")
}

// NewSeleniumSession - starts ChromeDriver and opens a Chrome window through WebDriver
func NewSeleniumSession(opts SeleniumOptions, logger *logrus.Logger) (interfaces.Session, error) {
	driverPath, err := findChromeDriver(opts.ChromeDriverPath)
	if err != nil {
		return nil, LaunchError.Wrap(err)
	}
	logger.Infof("Using ChromeDriver at: %s", driverPath)

	service, err := selenium.NewChromeDriverService(driverPath, opts.ChromeDriverPort)
	if err != nil {
		return nil, launchErr("failed to start chromedriver: %w", err)
	}

	args := []string{
		"--disable-dev-shm-usage",
		"--no-sandbox",
		"--window-size=1280,720",
	}
	if opts.Headless {
		args = append(args, "--headless=new")
	}

	caps := selenium.Capabilities{
		"browserName": "chrome",
	}
	caps.AddChrome(chrome.Capabilities{Args: args})

	wd, err := selenium.NewRemote(caps, fmt.Sprintf("http://localhost:%d/wd/hub", opts.ChromeDriverPort))
	if err != nil {
		_ = service.Stop()
		if strings.Contains(err.Error(), "cannot find Chrome binary") {
			return nil, launchErr("failed to create webdriver: Chrome browser not found: %w", err)
		}
		return nil, launchErr("failed to create webdriver: %w", err)
	}

	// Lookups poll explicitly with a per-call timeout, so the driver must not block on its own.
	if err := wd.SetImplicitWaitTimeout(0); err != nil {
		_ = wd.Quit()
		_ = service.Stop()
		return nil, launchErr("failed to set implicit wait: %w", err)
	}
	if err := wd.SetPageLoadTimeout(opts.Timeout); err != nil {
		_ = wd.Quit()
		_ = service.Stop()
		return nil, launchErr("failed to set page load timeout: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"engine":   EngineSelenium,
		"headless": opts.Headless,
	}).Info("browser launched")

	return &seleniumSession{
		wd:      wd,
		service: service,
		page:    newSeleniumPage(wd, opts.Timeout, logger),
		logger:  logger,
	}, nil
}

func (s *seleniumSession) Page() interfaces.Page { return s.page }

func (s *seleniumSession) Engine() string { return EngineSelenium }

// Close - quits the browser and stops ChromeDriver. Only the first call does work.
func (s *seleniumSession) Close() error {
	s.closeOnce.Do(func() {
		var group errs.Group
		if err := s.wd.Quit(); err != nil {
			group.Add(fmt.Errorf("failed to quit webdriver: %w", err))
		}
		if err := s.service.Stop(); err != nil {
			group.Add(fmt.Errorf("failed to stop chromedriver: %w", err))
		}
		if err := group.Err(); err != nil {
			s.closeErr = LaunchError.Wrap(err)
			return
		}
		s.logger.WithField("engine", EngineSelenium).Info("browser closed")
	})
	return s.closeErr
}

// lookupInterval is how often a missing element is looked up again.
const lookupInterval = 50 * time.Millisecond

// seleniumPage adapts a WebDriver to interfaces.Page. Selectors are CSS.
type seleniumPage struct {
	wd      selenium.WebDriver
	timeout time.Duration
	logger  *logrus.Logger
}

func newSeleniumPage(wd selenium.WebDriver, timeout time.Duration, logger *logrus.Logger) *seleniumPage {
	return &seleniumPage{wd: wd, timeout: timeout, logger: logger}
}

// find waits for the first element matching selector, for the page timeout
// shortened to the context deadline.
func (s *seleniumPage) find(ctx context.Context, selector string) (selenium.WebElement, error) {
	timeout, err := callTimeout(ctx, s.timeout)
	if err != nil {
		return nil, err
	}

	var found selenium.WebElement
	lookup := func(wd selenium.WebDriver) (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		elements, err := wd.FindElements(selenium.ByCSSSelector, selector)
		if err != nil {
			return false, err
		}
		if len(elements) == 0 {
			return false, nil
		}
		found = elements[0]
		return true, nil
	}

	if err := s.wd.WaitWithTimeoutAndInterval(lookup, timeout, lookupInterval); err != nil {
		return nil, fmt.Errorf("waiting for %s: %w", selector, err)
	}
	return found, nil
}

// Goto - navigates browser to specified URL
func (s *seleniumPage) Goto(ctx context.Context, url string) error {
	timeout, err := callTimeout(ctx, s.timeout)
	if err != nil {
		return interactionErr("navigate to %s: %w", url, err)
	}
	s.logger.Debugf("navigate: %s", url)

	if timeout != s.timeout {
		if err := s.wd.SetPageLoadTimeout(timeout); err != nil {
			return interactionErr("navigate to %s: %w", url, err)
		}
		defer func() {
			if err := s.wd.SetPageLoadTimeout(s.timeout); err != nil {
				s.logger.WithError(err).Warn("failed to restore page load timeout")
			}
		}()
	}
	if err := s.wd.Get(url); err != nil {
		return interactionErr("navigate to %s: %w", url, err)
	}
	return nil
}

// Fill - clears the matched input and types value into it
func (s *seleniumPage) Fill(ctx context.Context, selector string, value string) error {
	s.logger.Debugf("fill: %s", selector)

	element, err := s.find(ctx, selector)
	if err != nil {
		return interactionErr("fill %s: %w", selector, err)
	}
	if err := element.Clear(); err != nil {
		return interactionErr("fill %s: %w", selector, err)
	}
	if value == "" {
		return nil
	}
	if err := element.SendKeys(value); err != nil {
		return interactionErr("fill %s: %w", selector, err)
	}
	return nil
}

// Click - clicks on element identified by selector
func (s *seleniumPage) Click(ctx context.Context, selector string) error {
	s.logger.Debugf("click: %s", selector)

	element, err := s.find(ctx, selector)
	if err != nil {
		return interactionErr("click %s: %w", selector, err)
	}
	if err := element.Click(); err != nil {
		return interactionErr("click %s: %w", selector, err)
	}
	return nil
}

// IsVisible - reports current visibility without waiting. No match is not an error.
func (s *seleniumPage) IsVisible(ctx context.Context, selector string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, interactionErr("visibility of %s: %w", selector, err)
	}
	elements, err := s.wd.FindElements(selenium.ByCSSSelector, selector)
	if err != nil {
		return false, interactionErr("visibility of %s: %w", selector, err)
	}
	if len(elements) == 0 {
		return false, nil
	}
	visible, err := elements[0].IsDisplayed()
	if err != nil {
		return false, interactionErr("visibility of %s: %w", selector, err)
	}
	return visible, nil
}

// TextContent - returns the DOM textContent of the matched element
func (s *seleniumPage) TextContent(ctx context.Context, selector string) (string, error) {
	element, err := s.find(ctx, selector)
	if err != nil {
		return "", interactionErr("text of %s: %w", selector, err)
	}
	raw, err := s.wd.ExecuteScript("return arguments[0].textContent;", []interface{}{element})
	if err != nil {
		return "", interactionErr("text of %s: %w", selector, err)
	}
	if raw == nil {
		return "", nil
	}
	text, ok := raw.(string)
	if !ok {
		return "", interactionErr("text of %s: unexpected script result %T", selector, raw)
	}
	return text, nil
}

// URL - returns current page URL
func (s *seleniumPage) URL(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", InteractionError.Wrap(err)
	}
	url, err := s.wd.CurrentURL()
	if err != nil {
		return "", InteractionError.Wrap(err)
	}
	return url, nil
}

// Screenshot - takes screenshot of current page
func (s *seleniumPage) Screenshot(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, InteractionError.Wrap(err)
	}
	data, err := s.wd.Screenshot()
	if err != nil {
		return nil, interactionErr("screenshot: %w", err)
	}
	return data, nil
}
