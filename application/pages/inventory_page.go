package pages

import (
	"context"
	"fmt"

	"login_automation/domain/entities"
	"login_automation/domain/interfaces"
)

// InventoryPage drives the product list shown after a successful login.
type InventoryPage struct {
	page interfaces.Page
}

// NewInventoryPage - wraps page in an inventory page object
func NewInventoryPage(page interfaces.Page) *InventoryPage {
	return &InventoryPage{page: page}
}

// IsLoaded - reports whether the inventory container is shown
func (p *InventoryPage) IsLoaded(ctx context.Context) (bool, error) {
	return p.page.IsVisible(ctx, entities.SelectorInventoryContainer)
}

// Logout opens the side menu and clicks the logout link.
func (p *InventoryPage) Logout(ctx context.Context) error {
	if err := p.page.Click(ctx, entities.SelectorMenuButton); err != nil {
		return fmt.Errorf("open menu: %w", err)
	}
	if err := p.page.Click(ctx, entities.SelectorLogoutLink); err != nil {
		return fmt.Errorf("click logout: %w", err)
	}
	return nil
}
