package domain

// CartLine is one menu item in the working cart, with a snapshotted unit
// price. Quantity is always >= 1: removing the last unit removes the line.
type CartLine struct {
	MenuItemID string  `json:"menu_item_id"`
	Name       string  `json:"name"`
	UnitPrice  float64 `json:"unit_price"`
	Quantity   int     `json:"quantity"`
}

// Subtotal is the line's contribution to the cart total.
func (l CartLine) Subtotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

// Cart is the working selection of menu items for one browsing session.
// Lines keep insertion order; lookups go by menu item id.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Add inserts the item with quantity 1, or increments the existing line.
func (c *Cart) Add(item MenuItem) {
	for i := range c.Lines {
		if c.Lines[i].MenuItemID == item.ID {
			c.Lines[i].Quantity++
			return
		}
	}
	c.Lines = append(c.Lines, CartLine{
		MenuItemID: item.ID,
		Name:       item.Name,
		UnitPrice:  item.Price,
		Quantity:   1,
	})
}

// Remove decrements the line's quantity; at zero the line is dropped.
// Unknown ids are a no-op.
func (c *Cart) Remove(menuItemID string) {
	for i := range c.Lines {
		if c.Lines[i].MenuItemID != menuItemID {
			continue
		}
		c.Lines[i].Quantity--
		if c.Lines[i].Quantity <= 0 {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
		}
		return
	}
}

// Total sums unit price x quantity over all lines. There is no separate
// rounding path: the per-line subtotals add up to exactly this value.
func (c Cart) Total() float64 {
	var total float64
	for _, l := range c.Lines {
		total += l.Subtotal()
	}
	return total
}

// IsEmpty reports whether the cart holds no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Draft snapshots the cart into an immutable order request.
func (c Cart) Draft() OrderDraft {
	items := make([]OrderDraftItem, 0, len(c.Lines))
	for _, l := range c.Lines {
		items = append(items, OrderDraftItem{MenuItemID: l.MenuItemID, Quantity: l.Quantity})
	}
	return OrderDraft{Items: items}
}
