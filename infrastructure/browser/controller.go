package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
	"github.com/zeebo/errs"

	"login_automation/domain/interfaces"
)

// PlaywrightOptions configures a Playwright-backed session.
type PlaywrightOptions struct {
	Headless bool
	SlowMo   time.Duration
	Timeout  time.Duration
}

type playwrightSession struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    *playwrightPage
	logger  *logrus.Logger

	closeOnce sync.Once
	closeErr  error
}

// NewPlaywrightSession - starts the Playwright driver, launches Chromium and opens one page
func NewPlaywrightSession(opts PlaywrightOptions, logger *logrus.Logger) (interfaces.Session, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, launchErr("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		SlowMo:   playwright.Float(millis(opts.SlowMo)),
		Args: []string{
			"--disable-dev-shm-usage",
			"--no-sandbox",
		},
	})
	if err != nil {
		_ = pw.Stop()
		return nil, launchErr("failed to launch browser: %w", err)
	}

	bctx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  1280,
			Height: 720,
		},
	})
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, launchErr("failed to create context: %w", err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		_ = browser.Close()
		_ = pw.Stop()
		return nil, launchErr("failed to create page: %w", err)
	}
	page.SetDefaultTimeout(millis(opts.Timeout))
	page.SetDefaultNavigationTimeout(millis(opts.Timeout))

	logger.WithFields(logrus.Fields{
		"engine":   EnginePlaywright,
		"headless": opts.Headless,
		"version":  browser.Version(),
	}).Info("browser launched")

	return &playwrightSession{
		pw:      pw,
		browser: browser,
		context: bctx,
		page:    &playwrightPage{page: page, timeout: opts.Timeout, logger: logger},
		logger:  logger,
	}, nil
}

func (s *playwrightSession) Page() interfaces.Page { return s.page }

func (s *playwrightSession) Engine() string { return EnginePlaywright }

// Close - closes the context, the browser and stops the driver. Only the first call does work.
func (s *playwrightSession) Close() error {
	s.closeOnce.Do(func() {
		var group errs.Group

		if err := s.context.Close(); err != nil && !isAlreadyClosed(err) {
			group.Add(fmt.Errorf("failed to close context: %w", err))
		}
		if err := s.browser.Close(); err != nil && !isAlreadyClosed(err) {
			group.Add(fmt.Errorf("failed to close browser: %w", err))
		}
		if err := s.pw.Stop(); err != nil {
			group.Add(fmt.Errorf("failed to stop playwright: %w", err))
		}

		if err := group.Err(); err != nil {
			s.closeErr = LaunchError.Wrap(err)
			return
		}
		s.logger.WithField("engine", EnginePlaywright).Info("browser closed")
	})
	return s.closeErr
}

// playwrightPage adapts a playwright.Page to interfaces.Page.
type playwrightPage struct {
	page    playwright.Page
	timeout time.Duration
	logger  *logrus.Logger
}

// Goto - navigates to the URL and waits for the load event
func (p *playwrightPage) Goto(ctx context.Context, url string) error {
	timeout, err := callTimeout(ctx, p.timeout)
	if err != nil {
		return interactionErr("navigate to %s: %w", url, err)
	}
	p.logger.Debugf("navigate: %s", url)

	_, err = p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   playwright.Float(millis(timeout)),
	})
	if err != nil {
		return interactionErr("navigate to %s: %w", url, err)
	}
	return nil
}

// Fill - replaces the value of the matched input
func (p *playwrightPage) Fill(ctx context.Context, selector string, value string) error {
	timeout, err := callTimeout(ctx, p.timeout)
	if err != nil {
		return interactionErr("fill %s: %w", selector, err)
	}
	p.logger.Debugf("fill: %s", selector)

	err = p.page.Locator(selector).Fill(value, playwright.LocatorFillOptions{
		Timeout: playwright.Float(millis(timeout)),
	})
	if err != nil {
		return interactionErr("fill %s: %w", selector, err)
	}
	return nil
}

// Click - clicks the matched element
func (p *playwrightPage) Click(ctx context.Context, selector string) error {
	timeout, err := callTimeout(ctx, p.timeout)
	if err != nil {
		return interactionErr("click %s: %w", selector, err)
	}
	p.logger.Debugf("click: %s", selector)

	err = p.page.Locator(selector).Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(millis(timeout)),
	})
	if err != nil {
		return interactionErr("click %s: %w", selector, err)
	}
	return nil
}

// IsVisible - reports current visibility without waiting
func (p *playwrightPage) IsVisible(ctx context.Context, selector string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, interactionErr("visibility of %s: %w", selector, err)
	}

	visible, err := p.page.Locator(selector).IsVisible()
	if err != nil {
		return false, interactionErr("visibility of %s: %w", selector, err)
	}
	return visible, nil
}

// TextContent - returns the text of the matched element, waiting for it to be attached
func (p *playwrightPage) TextContent(ctx context.Context, selector string) (string, error) {
	timeout, err := callTimeout(ctx, p.timeout)
	if err != nil {
		return "", interactionErr("text of %s: %w", selector, err)
	}

	text, err := p.page.Locator(selector).TextContent(playwright.LocatorTextContentOptions{
		Timeout: playwright.Float(millis(timeout)),
	})
	if err != nil {
		return "", interactionErr("text of %s: %w", selector, err)
	}
	return text, nil
}

// URL - returns the current page URL
func (p *playwrightPage) URL(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", InteractionError.Wrap(err)
	}
	return p.page.URL(), nil
}

// Screenshot - captures the visible viewport as PNG
func (p *playwrightPage) Screenshot(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, InteractionError.Wrap(err)
	}
	data, err := p.page.Screenshot(playwright.PageScreenshotOptions{
		Type: playwright.ScreenshotTypePng,
	})
	if err != nil {
		return nil, interactionErr("screenshot: %w", err)
	}
	return data, nil
}

// Underlying exposes the raw playwright page for engine-specific assertions.
func (p *playwrightPage) Underlying() playwright.Page {
	return p.page
}
