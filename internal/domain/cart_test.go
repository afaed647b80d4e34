package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func price(t *testing.T, v string) *decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(v)
	if err != nil {
		t.Fatalf("bad price literal %q: %v", v, err)
	}
	return &d
}

func TestCartAddItemMergesByProduct(t *testing.T) {
	var cart Cart
	p := uuid.New()

	cart.AddItem(p, ProductSnapshot{Name: "Tile", UnitPrice: price(t, "10")}, 2)
	cart.AddItem(p, ProductSnapshot{Name: "Tile", UnitPrice: price(t, "10")}, 3)

	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %d", cart.Items[0].Quantity)
	}
}

func TestCartAddItemDefaultsQuantityToOne(t *testing.T) {
	var cart Cart
	cart.AddItem(uuid.New(), ProductSnapshot{Name: "Tile"}, 0)

	if len(cart.Items) != 1 || cart.Items[0].Quantity != 1 {
		t.Fatalf("expected single line with quantity 1, got %+v", cart.Items)
	}
}

func TestCartAddItemOpensCart(t *testing.T) {
	var cart Cart
	if cart.IsOpen {
		t.Fatalf("new cart should be closed")
	}
	cart.AddItem(uuid.New(), ProductSnapshot{}, 1)
	if !cart.IsOpen {
		t.Fatalf("adding an item should open the cart")
	}
}

func TestCartRemoveMissingProductIsNoop(t *testing.T) {
	var cart Cart
	p := uuid.New()
	cart.AddItem(p, ProductSnapshot{}, 2)

	cart.RemoveItem(uuid.New())

	if len(cart.Items) != 1 || cart.Items[0].ProductID != p || cart.Items[0].Quantity != 2 {
		t.Fatalf("cart changed by removing an absent product: %+v", cart.Items)
	}
}

func TestCartUpdateQuantityZeroRemovesLine(t *testing.T) {
	var cart Cart
	p := uuid.New()
	cart.AddItem(p, ProductSnapshot{}, 2)

	cart.UpdateQuantity(p, 0)

	if len(cart.Items) != 0 {
		t.Fatalf("quantity 0 should remove the line, got %+v", cart.Items)
	}

	cart.AddItem(p, ProductSnapshot{}, 2)
	cart.UpdateQuantity(p, -3)
	if len(cart.Items) != 0 {
		t.Fatalf("negative quantity should remove the line, got %+v", cart.Items)
	}
}

func TestCartUpdateQuantityReplaces(t *testing.T) {
	var cart Cart
	p := uuid.New()
	cart.AddItem(p, ProductSnapshot{}, 2)

	cart.UpdateQuantity(p, 7)

	if cart.Items[0].Quantity != 7 {
		t.Fatalf("expected quantity 7, got %d", cart.Items[0].Quantity)
	}
}

func TestCartUpdateQuantityMissingProductIsNoop(t *testing.T) {
	var cart Cart
	p := uuid.New()
	cart.AddItem(p, ProductSnapshot{}, 2)

	cart.UpdateQuantity(uuid.New(), 9)

	if len(cart.Items) != 1 || cart.Items[0].Quantity != 2 {
		t.Fatalf("cart changed by updating an absent product: %+v", cart.Items)
	}
}

func TestCartLineInvariants(t *testing.T) {
	var cart Cart
	a, b := uuid.New(), uuid.New()

	cart.AddItem(a, ProductSnapshot{}, 1)
	cart.AddItem(b, ProductSnapshot{}, 4)
	cart.AddItem(a, ProductSnapshot{}, 2)
	cart.UpdateQuantity(b, 1)
	cart.RemoveItem(uuid.New())
	cart.AddItem(b, ProductSnapshot{}, -1)

	seen := map[uuid.UUID]bool{}
	for _, it := range cart.Items {
		if seen[it.ProductID] {
			t.Fatalf("duplicate line for product %s", it.ProductID)
		}
		seen[it.ProductID] = true
		if it.Quantity < 1 {
			t.Fatalf("line with quantity %d", it.Quantity)
		}
	}
	if cart.ItemCount() != 5 {
		t.Fatalf("expected item count 5, got %d", cart.ItemCount())
	}
}

func TestCartTotal(t *testing.T) {
	var cart Cart
	if !cart.Total().Equal(decimal.Zero) {
		t.Fatalf("empty cart total should be 0, got %s", cart.Total())
	}

	cart.AddItem(uuid.New(), ProductSnapshot{UnitPrice: price(t, "100")}, 2)
	cart.AddItem(uuid.New(), ProductSnapshot{UnitPrice: price(t, "50")}, 1)

	if !cart.Total().Equal(decimal.NewFromInt(250)) {
		t.Fatalf("expected total 250, got %s", cart.Total())
	}
}

func TestCartTotalTreatsMissingPriceAsZero(t *testing.T) {
	var cart Cart
	cart.AddItem(uuid.New(), ProductSnapshot{UnitPrice: nil}, 3)
	cart.AddItem(uuid.New(), ProductSnapshot{UnitPrice: price(t, "2.50")}, 2)

	if !cart.Total().Equal(decimal.NewFromInt(5)) {
		t.Fatalf("expected total 5, got %s", cart.Total())
	}
}

func TestCartVisibilityDoesNotTouchItems(t *testing.T) {
	var cart Cart
	p := uuid.New()
	cart.AddItem(p, ProductSnapshot{}, 2)

	cart.Close()
	cart.Open()
	cart.Toggle()
	cart.Toggle()

	if len(cart.Items) != 1 || cart.Items[0].Quantity != 2 {
		t.Fatalf("visibility toggles altered items: %+v", cart.Items)
	}
	if !cart.IsOpen {
		t.Fatalf("expected cart open after even toggle count from open")
	}
}

func TestCartClear(t *testing.T) {
	var cart Cart
	cart.AddItem(uuid.New(), ProductSnapshot{}, 2)
	cart.AddItem(uuid.New(), ProductSnapshot{}, 1)

	cart.Clear()

	if !cart.IsEmpty() {
		t.Fatalf("expected empty cart after clear")
	}
	if !cart.Total().Equal(decimal.Zero) || cart.ItemCount() != 0 {
		t.Fatalf("cleared cart should have zero metrics")
	}
}
