// Package pages holds page objects: small facades that keep selectors and
// interaction sequences for one page behind semantic methods.
package pages

import (
	"context"
	"fmt"

	"login_automation/domain/entities"
	"login_automation/domain/interfaces"
)

// LoginPage drives the login form. It wraps a page handle it does not own:
// the session that opened the page is responsible for closing it.
type LoginPage struct {
	page interfaces.Page
}

// NewLoginPage - wraps page in a login page object
func NewLoginPage(page interfaces.Page) *LoginPage {
	return &LoginPage{page: page}
}

// NavigateTo - loads url in the wrapped page
func (p *LoginPage) NavigateTo(ctx context.Context, url string) error {
	if err := p.page.Goto(ctx, url); err != nil {
		return fmt.Errorf("navigate to login page: %w", err)
	}
	return nil
}

// Login fills the username and password fields and submits the form, in
// that order. It stops at the first failing step without retrying; whatever
// was filled before the failure stays on the page.
func (p *LoginPage) Login(ctx context.Context, username, password string) error {
	if err := p.page.Fill(ctx, entities.SelectorUsername, username); err != nil {
		return fmt.Errorf("fill username: %w", err)
	}
	if err := p.page.Fill(ctx, entities.SelectorPassword, password); err != nil {
		return fmt.Errorf("fill password: %w", err)
	}
	if err := p.page.Click(ctx, entities.SelectorLoginButton); err != nil {
		return fmt.Errorf("submit login: %w", err)
	}
	return nil
}

// LoginAs - submits the given credentials
func (p *LoginPage) LoginAs(ctx context.Context, creds entities.Credentials) error {
	return p.Login(ctx, creds.Username, creds.Password)
}

// Submit - clicks the login button without touching the fields
func (p *LoginPage) Submit(ctx context.Context) error {
	if err := p.page.Click(ctx, entities.SelectorLoginButton); err != nil {
		return fmt.Errorf("submit login: %w", err)
	}
	return nil
}

// ErrorMessage - returns the text of the error banner
func (p *LoginPage) ErrorMessage(ctx context.Context) (string, error) {
	text, err := p.page.TextContent(ctx, entities.SelectorError)
	if err != nil {
		return "", fmt.Errorf("read login error: %w", err)
	}
	return text, nil
}

// IsErrorVisible - reports whether the error banner is shown
func (p *LoginPage) IsErrorVisible(ctx context.Context) (bool, error) {
	return p.page.IsVisible(ctx, entities.SelectorError)
}

// IsFormVisible - reports whether the login button is shown
func (p *LoginPage) IsFormVisible(ctx context.Context) (bool, error) {
	return p.page.IsVisible(ctx, entities.SelectorLoginButton)
}
