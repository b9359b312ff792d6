// Package fixture owns the browser session shared by one test scope.
//
// A Fixture is opened once per scope (a top-level test function, or one CLI
// run), hands out its single page to page objects and is closed when the
// scope ends. Nothing about it is global: two scopes get two browsers.
// Helpers that bind a Fixture to a running test live in fixturetest.
package fixture

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"login_automation/config"
	"login_automation/domain/interfaces"
	"login_automation/infrastructure/browser"
)

// Launcher opens a browser session. browser.Launch is the default.
type Launcher func(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (interfaces.Session, error)

// Fixture is one open browser session and its page.
type Fixture struct {
	session interfaces.Session
	cfg     *config.Config
	logger  *logrus.Logger
	opened  time.Time

	closeOnce sync.Once
	closeErr  error
}

// Open launches a browser with the default launcher.
func Open(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Fixture, error) {
	return OpenWith(ctx, browser.Launch, cfg, logger)
}

// OpenWith launches a browser through launch. There is no retry: a launch
// failure is returned to the caller as is.
func OpenWith(ctx context.Context, launch Launcher, cfg *config.Config, logger *logrus.Logger) (*Fixture, error) {
	session, err := launch(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).WithField("engine", cfg.Engine).Error("browser launch failed")
		return nil, fmt.Errorf("open browser session: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"engine":   session.Engine(),
		"base_url": cfg.BaseURL,
	}).Info("browser session opened")

	return &Fixture{
		session: session,
		cfg:     cfg,
		logger:  logger,
		opened:  time.Now(),
	}, nil
}

// Page returns the session's only page.
func (f *Fixture) Page() interfaces.Page {
	return f.session.Page()
}

// Engine names the engine behind the session.
func (f *Fixture) Engine() string {
	return f.session.Engine()
}

// URL resolves path against the configured base URL.
func (f *Fixture) URL(path string) string {
	return f.cfg.URL(path)
}

// Close closes the browser and stops the engine. Only the first call does
// any work; later calls return the first result.
func (f *Fixture) Close() error {
	f.closeOnce.Do(func() {
		f.closeErr = f.session.Close()

		entry := f.logger.WithFields(logrus.Fields{
			"engine": f.session.Engine(),
			"uptime": time.Since(f.opened).Round(time.Millisecond),
		})
		if f.closeErr != nil {
			entry.WithError(f.closeErr).Warn("browser session closed with errors")
			return
		}
		entry.Info("browser session closed")
	})
	return f.closeErr
}

// Screenshot captures the page when the engine supports it.
func (f *Fixture) Screenshot(ctx context.Context) ([]byte, bool, error) {
	s, ok := f.session.Page().(browser.Screenshotter)
	if !ok {
		return nil, false, nil
	}
	data, err := s.Screenshot(ctx)
	if err != nil {
		return nil, true, err
	}
	return data, true, nil
}
