package interfaces

import "context"

// Page is the capability set the page objects and the scenario runner need
// from one open browser tab. Production code supplies an engine-backed
// implementation, tests supply a recording double.
//
//go:generate mockgen -package=mocks -destination=mocks/mock_page.go login_automation/domain/interfaces Page,Session
type Page interface {
	// Goto navigates to a URL and waits for the engine's default load condition
	Goto(ctx context.Context, url string) error

	// Fill replaces the value of the element matched by selector
	Fill(ctx context.Context, selector string, value string) error

	// Click clicks the element matched by selector
	Click(ctx context.Context, selector string) error

	// IsVisible reports whether the element matched by selector is visible right now
	IsVisible(ctx context.Context, selector string) (bool, error)

	// TextContent returns the text of the element matched by selector
	TextContent(ctx context.Context, selector string) (string, error)

	// URL returns the current page URL
	URL(ctx context.Context) (string, error)
}

// Session owns one browser process and the single page opened in it.
type Session interface {
	// Page returns the page handle owned by the session
	Page() Page

	// Engine names the automation engine behind the session
	Engine() string

	// Close closes the browser and releases the engine
	Close() error
}
