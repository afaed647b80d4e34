package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/tilemart/storefront-backend/internal/data/repos/testutil"
	types "github.com/tilemart/storefront-backend/internal/domain"
)

func TestCreateAndGetByIDs(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	repo := NewProductRepo(gdb, testutil.Logger(t))

	created, err := repo.Create(ctx, nil, []*types.Product{
		{SKU: "TIL-001", Name: "Ceramic Tile", Category: "tiles", UnitPrice: testutil.Price(t, "12.50")},
		{SKU: "GRT-001", Name: "Grout", Category: "supplies"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	for _, p := range created {
		if p.ID == uuid.Nil {
			t.Fatalf("expected assigned id for %s", p.SKU)
		}
	}

	got, err := repo.GetByIDs(ctx, nil, []uuid.UUID{created[0].ID, uuid.New()})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(got) != 1 || got[0].SKU != "TIL-001" {
		t.Fatalf("expected the one known product, got %+v", got)
	}
	if got[0].UnitPrice == nil || !got[0].UnitPrice.Equal(*testutil.Price(t, "12.50")) {
		t.Fatalf("price did not round-trip: %v", got[0].UnitPrice)
	}
}

func TestGetByIDsEmptyInput(t *testing.T) {
	repo := NewProductRepo(testutil.DB(t), testutil.Logger(t))
	got, err := repo.GetByIDs(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no results, got %d", len(got))
	}
}

func TestListSearchAndCategory(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	repo := NewProductRepo(gdb, testutil.Logger(t))

	testutil.SeedProduct(t, ctx, gdb, "TIL-001", testutil.Price(t, "12.50"))
	testutil.SeedProduct(t, ctx, gdb, "TIL-002", testutil.Price(t, "15.00"))
	mortar := &types.Product{ID: uuid.New(), SKU: "MRT-001", Name: "Mortar Mix", Category: "supplies"}
	if err := gdb.Create(mortar).Error; err != nil {
		t.Fatalf("seed mortar: %v", err)
	}

	all, err := repo.List(ctx, nil, "", "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 products, got %d", len(all))
	}

	matched, err := repo.List(ctx, nil, "mORTar", "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(matched) != 1 || matched[0].SKU != "MRT-001" {
		t.Fatalf("case-insensitive search failed: %+v", matched)
	}

	tiles, err := repo.List(ctx, nil, "", "tiles")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tiles) != 2 {
		t.Fatalf("expected 2 tiles, got %d", len(tiles))
	}
}

func TestDeleteHidesProduct(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	repo := NewProductRepo(gdb, testutil.Logger(t))
	tile := testutil.SeedProduct(t, ctx, gdb, "TIL-001", testutil.Price(t, "12.50"))

	if err := repo.Delete(ctx, nil, tile.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	got, err := repo.GetByIDs(ctx, nil, []uuid.UUID{tile.ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("deleted product must not be returned, got %+v", got)
	}
}
