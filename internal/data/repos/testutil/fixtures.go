package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	types "github.com/tilemart/storefront-backend/internal/domain"
)

// Price builds a pointer to a decimal price literal for fixtures.
func Price(tb testing.TB, v string) *decimal.Decimal {
	tb.Helper()
	d, err := decimal.NewFromString(v)
	if err != nil {
		tb.Fatalf("bad price literal %q: %v", v, err)
	}
	return &d
}

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedProduct(tb testing.TB, ctx context.Context, tx *gorm.DB, sku string, unitPrice *decimal.Decimal) *types.Product {
	tb.Helper()
	p := &types.Product{
		ID:        uuid.New(),
		SKU:       sku,
		Name:      "Product " + sku,
		Category:  "tiles",
		UnitPrice: unitPrice,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed product: %v", err)
	}
	return p
}

func SeedList(tb testing.TB, ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, name string, createdAt time.Time) *types.List {
	tb.Helper()
	l := &types.List{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      name,
		Status:    types.ListStatusDraft,
		CreatedAt: createdAt,
	}
	if err := tx.WithContext(ctx).Omit("Items").Create(l).Error; err != nil {
		tb.Fatalf("seed list: %v", err)
	}
	return l
}

func SeedListItem(tb testing.TB, ctx context.Context, tx *gorm.DB, listID, productID uuid.UUID, quantity int) *types.ListItem {
	tb.Helper()
	it := &types.ListItem{
		ID:        uuid.New(),
		ListID:    listID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := tx.WithContext(ctx).Create(it).Error; err != nil {
		tb.Fatalf("seed list item: %v", err)
	}
	return it
}
