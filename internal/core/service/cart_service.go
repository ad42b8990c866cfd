package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/lamesa/ordering-gateway/internal/core/domain"
	"github.com/lamesa/ordering-gateway/internal/core/ports"
)

// CartService implements the order composer: a per-session working cart with
// price snapshots taken from the menu at add time.
type CartService struct {
	carts   ports.CartStore
	catalog ports.CatalogAPI
	log     zerolog.Logger
}

func NewCartService(carts ports.CartStore, catalog ports.CatalogAPI, log zerolog.Logger) *CartService {
	return &CartService{carts: carts, catalog: catalog, log: log}
}

func (s *CartService) Get(ctx context.Context, sessionID string) (domain.Cart, error) {
	return s.carts.Get(ctx, sessionID)
}

// AddItem inserts the menu item with quantity 1, or increments the existing
// line. The unit price is snapshotted from the menu listing.
func (s *CartService) AddItem(ctx context.Context, sessionID, menuItemID string) (domain.Cart, error) {
	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, err
	}

	item, err := s.lookupItem(ctx, menuItemID)
	if err != nil {
		return domain.Cart{}, err
	}

	cart.Add(*item)
	if err := s.carts.Save(ctx, sessionID, cart); err != nil {
		return domain.Cart{}, err
	}

	s.log.Debug().Str("menu_item_id", menuItemID).Int("lines", len(cart.Lines)).Msg("cart item added")
	return cart, nil
}

// RemoveItem decrements the line's quantity; at zero the line is removed.
func (s *CartService) RemoveItem(ctx context.Context, sessionID, menuItemID string) (domain.Cart, error) {
	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, err
	}

	cart.Remove(menuItemID)
	if err := s.carts.Save(ctx, sessionID, cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

// Clear empties the cart. The destructive-action confirmation lives at the
// HTTP surface; by the time this runs the user has confirmed.
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	return s.carts.Clear(ctx, sessionID)
}

func (s *CartService) lookupItem(ctx context.Context, menuItemID string) (*domain.MenuItem, error) {
	menu, err := s.catalog.Menu(ctx)
	if err != nil {
		return nil, err
	}
	for i := range menu {
		if menu[i].ID == menuItemID {
			return &menu[i], nil
		}
	}
	return nil, domain.ErrMenuItemUnknown
}
