package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/tilemart/storefront-backend/internal/data/repos/catalog"
	types "github.com/tilemart/storefront-backend/internal/domain"
	"github.com/tilemart/storefront-backend/internal/pkg/ctxutil"
	apperrors "github.com/tilemart/storefront-backend/internal/pkg/errors"
	"github.com/tilemart/storefront-backend/internal/pkg/logger"
)

// CartStore is the durable slot a session cart is persisted to between
// requests and across restarts.
type CartStore interface {
	Load(ctx context.Context, sessionID uuid.UUID) (*types.Cart, error)
	Save(ctx context.Context, sessionID uuid.UUID, cart *types.Cart) error
	Clear(ctx context.Context, sessionID uuid.UUID) error
}

// CartService is the single mutation path for session carts: load, mutate
// the aggregate, save. The session has exactly one writer, so there is no
// read-modify-write race to guard against.
type CartService interface {
	GetCart(ctx context.Context) (*types.Cart, error)
	AddItem(ctx context.Context, productID uuid.UUID, quantity int) (*types.Cart, error)
	UpdateQuantity(ctx context.Context, productID uuid.UUID, quantity int) (*types.Cart, error)
	RemoveItem(ctx context.Context, productID uuid.UUID) (*types.Cart, error)
	ClearCart(ctx context.Context) error
}

type cartService struct {
	log         *logger.Logger
	store       CartStore
	productRepo catalog.ProductRepo
}

func NewCartService(log *logger.Logger, store CartStore, productRepo catalog.ProductRepo) CartService {
	serviceLog := log.With("service", "CartService")
	return &cartService{
		log:         serviceLog,
		store:       store,
		productRepo: productRepo,
	}
}

func (cs *cartService) sessionID(ctx context.Context) (uuid.UUID, error) {
	sid := ctxutil.CurrentSessionID(ctx)
	if sid == uuid.Nil {
		return uuid.Nil, fmt.Errorf("missing cart session")
	}
	return sid, nil
}

func (cs *cartService) GetCart(ctx context.Context) (*types.Cart, error) {
	sid, err := cs.sessionID(ctx)
	if err != nil {
		return nil, err
	}
	return cs.store.Load(ctx, sid)
}

func (cs *cartService) AddItem(ctx context.Context, productID uuid.UUID, quantity int) (*types.Cart, error) {
	sid, err := cs.sessionID(ctx)
	if err != nil {
		return nil, err
	}

	products, err := cs.productRepo.GetByIDs(ctx, nil, []uuid.UUID{productID})
	if err != nil {
		return nil, apperrors.NewStoreError("load product", err)
	}
	if len(products) == 0 {
		return nil, apperrors.ErrNotFound
	}
	product := products[0]

	cart, err := cs.store.Load(ctx, sid)
	if err != nil {
		return nil, err
	}
	cart.AddItem(product.ID, product.Snapshot(), quantity)

	if err := cs.store.Save(ctx, sid, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (cs *cartService) UpdateQuantity(ctx context.Context, productID uuid.UUID, quantity int) (*types.Cart, error) {
	return cs.mutate(ctx, func(cart *types.Cart) {
		cart.UpdateQuantity(productID, quantity)
	})
}

func (cs *cartService) RemoveItem(ctx context.Context, productID uuid.UUID) (*types.Cart, error) {
	return cs.mutate(ctx, func(cart *types.Cart) {
		cart.RemoveItem(productID)
	})
}

func (cs *cartService) ClearCart(ctx context.Context) error {
	sid, err := cs.sessionID(ctx)
	if err != nil {
		return err
	}
	return cs.store.Clear(ctx, sid)
}

func (cs *cartService) mutate(ctx context.Context, fn func(cart *types.Cart)) (*types.Cart, error) {
	sid, err := cs.sessionID(ctx)
	if err != nil {
		return nil, err
	}
	cart, err := cs.store.Load(ctx, sid)
	if err != nil {
		return nil, err
	}
	fn(cart)
	if err := cs.store.Save(ctx, sid, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// MemoryCartStore keeps carts in process memory. Used by tests and as the
// boot fallback when no redis address is configured; carts then do not
// survive a restart.
type MemoryCartStore struct {
	mu    sync.Mutex
	carts map[uuid.UUID][]types.CartItem
}

func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{carts: make(map[uuid.UUID][]types.CartItem)}
}

func (m *MemoryCartStore) Load(ctx context.Context, sessionID uuid.UUID) (*types.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items, ok := m.carts[sessionID]
	if !ok {
		return &types.Cart{}, nil
	}
	copied := make([]types.CartItem, len(items))
	copy(copied, items)
	return &types.Cart{Items: copied}, nil
}

func (m *MemoryCartStore) Save(ctx context.Context, sessionID uuid.UUID, cart *types.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := make([]types.CartItem, len(cart.Items))
	copy(copied, cart.Items)
	m.carts[sessionID] = copied
	return nil
}

func (m *MemoryCartStore) Clear(ctx context.Context, sessionID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, sessionID)
	return nil
}
