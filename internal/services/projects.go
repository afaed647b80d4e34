package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tilemart/storefront-backend/internal/data/repos/catalog"
	"github.com/tilemart/storefront-backend/internal/data/repos/lists"
	types "github.com/tilemart/storefront-backend/internal/domain"
	"github.com/tilemart/storefront-backend/internal/pkg/ctxutil"
	apperrors "github.com/tilemart/storefront-backend/internal/pkg/errors"
	"github.com/tilemart/storefront-backend/internal/pkg/logger"
)

// ProjectService turns session carts into durable saved lists and serves the
// owner's collection of them.
type ProjectService interface {
	// ConvertCart drains the session cart into a new saved list. Validation
	// and authentication failures happen before any store call. A failure
	// while inserting the line items triggers a compensating delete of the
	// just-created list; the cart is only cleared on full success.
	ConvertCart(ctx context.Context, name, description string) (*types.List, error)

	// LoadProjects returns the owner's saved lists, newest first, each with
	// a derived item count. Load failures are absorbed: the caller always
	// gets a (possibly empty) slice, never an error.
	LoadProjects(ctx context.Context) []*types.List

	GetProject(ctx context.Context, listID uuid.UUID) (*types.List, error)
	DeleteProject(ctx context.Context, listID uuid.UUID) error

	// OrderSummary renders a human-readable bill of materials for handing to
	// the external ordering channel. No order is processed here.
	OrderSummary(ctx context.Context, listID uuid.UUID) (string, error)
}

type projectService struct {
	log         *logger.Logger
	listRepo    lists.ListRepo
	productRepo catalog.ProductRepo
	cartStore   CartStore
}

func NewProjectService(log *logger.Logger, listRepo lists.ListRepo, productRepo catalog.ProductRepo, cartStore CartStore) ProjectService {
	serviceLog := log.With("service", "ProjectService")
	return &projectService{
		log:         serviceLog,
		listRepo:    listRepo,
		productRepo: productRepo,
		cartStore:   cartStore,
	}
}

func (ps *projectService) ConvertCart(ctx context.Context, name, description string) (*types.List, error) {
	name = types.NormalizeListName(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name", "must not be empty")
	}

	ownerID := ctxutil.CurrentUserID(ctx)
	if ownerID == uuid.Nil {
		return nil, apperrors.ErrUnauthenticated
	}

	sessionID := ctxutil.CurrentSessionID(ctx)
	if sessionID == uuid.Nil {
		return nil, fmt.Errorf("missing cart session")
	}
	cart, err := ps.cartStore.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, apperrors.NewValidationError("cart", "is empty")
	}

	list := &types.List{
		OwnerID:       ownerID,
		Name:          name,
		Description:   description,
		Status:        types.ListStatusDraft,
		IsActiveCart:  false,
		TotalEstimate: cart.Total(),
		CreatedAt:     time.Now().UTC(),
	}
	created, err := ps.listRepo.Create(ctx, nil, list)
	if err != nil {
		return nil, apperrors.NewStoreError("create list", err)
	}

	items := make([]*types.ListItem, 0, len(cart.Items))
	for i := range cart.Items {
		items = append(items, &types.ListItem{
			ListID:    created.ID,
			ProductID: cart.Items[i].ProductID,
			Quantity:  cart.Items[i].Quantity,
		})
	}
	if err := ps.listRepo.InsertItems(ctx, nil, items); err != nil {
		// Compensate so no item-less list is left behind. Best effort: if
		// the delete fails too, the orphan list is logged, not hidden.
		if delErr := ps.listRepo.Delete(ctx, nil, created.ID); delErr != nil {
			ps.log.Error("Compensating list delete failed, orphan list remains",
				"list_id", created.ID.String(), "error", delErr)
		}
		return nil, apperrors.NewStoreError("insert list items", err)
	}

	if err := ps.cartStore.Clear(ctx, sessionID); err != nil {
		// The list is fully written; a stale local cart is not worth failing
		// the conversion over.
		ps.log.Warn("Failed to clear cart after conversion",
			"session_id", sessionID.String(), "error", err)
	}

	created.ItemCount = int64(len(items))
	return created, nil
}

func (ps *projectService) LoadProjects(ctx context.Context) []*types.List {
	ownerID := ctxutil.CurrentUserID(ctx)
	if ownerID == uuid.Nil {
		return []*types.List{}
	}

	results, err := ps.listRepo.ListByOwner(ctx, nil, ownerID)
	if err != nil {
		ps.log.Error("Failed to load saved lists", "owner_id", ownerID.String(), "error", err)
		return []*types.List{}
	}
	if results == nil {
		results = []*types.List{}
	}
	return results
}

func (ps *projectService) GetProject(ctx context.Context, listID uuid.UUID) (*types.List, error) {
	ownerID := ctxutil.CurrentUserID(ctx)
	if ownerID == uuid.Nil {
		return nil, apperrors.ErrUnauthenticated
	}

	list, err := ps.listRepo.GetByID(ctx, nil, ownerID, listID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewStoreError("load list", err)
	}
	return list, nil
}

func (ps *projectService) DeleteProject(ctx context.Context, listID uuid.UUID) error {
	// Ownership check first; Delete itself is unscoped.
	if _, err := ps.GetProject(ctx, listID); err != nil {
		return err
	}
	if err := ps.listRepo.Delete(ctx, nil, listID); err != nil {
		return apperrors.NewStoreError("delete list", err)
	}
	return nil
}

func (ps *projectService) OrderSummary(ctx context.Context, listID uuid.UUID) (string, error) {
	list, err := ps.GetProject(ctx, listID)
	if err != nil {
		return "", err
	}

	productIDs := make([]uuid.UUID, 0, len(list.Items))
	for i := range list.Items {
		productIDs = append(productIDs, list.Items[i].ProductID)
	}
	products, err := ps.productRepo.GetByIDs(ctx, nil, productIDs)
	if err != nil {
		return "", apperrors.NewStoreError("load products", err)
	}
	byID := make(map[uuid.UUID]*types.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Order request: %s\n", list.Name)
	if list.Description != "" {
		fmt.Fprintf(&b, "%s\n", list.Description)
	}
	b.WriteString("\n")
	for i := range list.Items {
		it := list.Items[i]
		label := it.ProductID.String()
		if p, ok := byID[it.ProductID]; ok {
			label = fmt.Sprintf("%s (%s)", p.Name, p.SKU)
		}
		fmt.Fprintf(&b, "%d x %s\n", it.Quantity, label)
		if it.Notes != "" {
			fmt.Fprintf(&b, "    %s\n", it.Notes)
		}
	}
	fmt.Fprintf(&b, "\nEstimated total: %s\n", list.TotalEstimate.StringFixed(2))
	return b.String(), nil
}
