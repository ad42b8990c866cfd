package domain

import "testing"

func menuItem(id, name string, price float64) MenuItem {
	return MenuItem{ID: id, Name: name, Price: price, Category: "mains"}
}

func TestCart_AddAccumulatesQuantity(t *testing.T) {
	var cart Cart
	cart.Add(menuItem("m1", "Lomo saltado", 8500))
	cart.Add(menuItem("m1", "Lomo saltado", 8500))

	if len(cart.Lines) != 1 {
		t.Fatalf("expected a single line, got %d", len(cart.Lines))
	}
	if cart.Lines[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", cart.Lines[0].Quantity)
	}
}

func TestCart_TotalSumsLineSubtotals(t *testing.T) {
	var cart Cart
	cart.Add(menuItem("m1", "Lomo saltado", 1000))
	cart.Add(menuItem("m1", "Lomo saltado", 1000))
	cart.Add(menuItem("m2", "Jugo natural", 500))

	if got := cart.Total(); got != 2500 {
		t.Fatalf("expected total 2500, got %v", got)
	}
}

func TestCart_RemoveDecrementsAndDropsAtZero(t *testing.T) {
	var cart Cart
	cart.Add(menuItem("m1", "Empanada", 2000))
	cart.Add(menuItem("m1", "Empanada", 2000))

	cart.Remove("m1")
	if len(cart.Lines) != 1 || cart.Lines[0].Quantity != 1 {
		t.Fatalf("expected one line with quantity 1, got %+v", cart.Lines)
	}

	cart.Remove("m1")
	if !cart.IsEmpty() {
		t.Fatalf("expected empty cart, got %+v", cart.Lines)
	}
}

func TestCart_RemoveUnknownIsNoOp(t *testing.T) {
	var cart Cart
	cart.Add(menuItem("m1", "Empanada", 2000))

	cart.Remove("nope")
	if len(cart.Lines) != 1 || cart.Lines[0].Quantity != 1 {
		t.Fatalf("expected cart untouched, got %+v", cart.Lines)
	}
}

func TestCart_DraftPreservesOrderAndQuantities(t *testing.T) {
	var cart Cart
	cart.Add(menuItem("m1", "Empanada", 2000))
	cart.Add(menuItem("m2", "Jugo natural", 500))
	cart.Add(menuItem("m1", "Empanada", 2000))

	draft := cart.Draft()
	if len(draft.Items) != 2 {
		t.Fatalf("expected 2 draft items, got %d", len(draft.Items))
	}
	if draft.Items[0].MenuItemID != "m1" || draft.Items[0].Quantity != 2 {
		t.Fatalf("unexpected first draft item: %+v", draft.Items[0])
	}
	if draft.Items[1].MenuItemID != "m2" || draft.Items[1].Quantity != 1 {
		t.Fatalf("unexpected second draft item: %+v", draft.Items[1])
	}
}
