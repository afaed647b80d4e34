package lists

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/tilemart/storefront-backend/internal/domain"
	"github.com/tilemart/storefront-backend/internal/pkg/logger"
)

// ListRepo is the boundary to the durable list store. The conversion workflow
// drives Create then InsertItems as two separate calls; the repo does not tie
// them together.
type ListRepo interface {
	Create(ctx context.Context, tx *gorm.DB, list *types.List) (*types.List, error)
	InsertItems(ctx context.Context, tx *gorm.DB, items []*types.ListItem) error
	ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.List, error)
	GetByID(ctx context.Context, tx *gorm.DB, ownerID, listID uuid.UUID) (*types.List, error)
	Delete(ctx context.Context, tx *gorm.DB, listID uuid.UUID) error
}

type listRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewListRepo(db *gorm.DB, baseLog *logger.Logger) ListRepo {
	repoLog := baseLog.With("repo", "ListRepo")
	return &listRepo{db: db, log: repoLog}
}

func (lr *listRepo) Create(ctx context.Context, tx *gorm.DB, list *types.List) (*types.List, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	if list.ID == uuid.Nil {
		list.ID = uuid.New()
	}
	if list.Status == "" {
		list.Status = types.ListStatusDraft
	}

	if err := transaction.WithContext(ctx).Omit("Items").Create(list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (lr *listRepo) InsertItems(ctx context.Context, tx *gorm.DB, items []*types.ListItem) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	if len(items) == 0 {
		return nil
	}

	for _, it := range items {
		if it.ID == uuid.Nil {
			it.ID = uuid.New()
		}
	}

	return transaction.WithContext(ctx).Create(&items).Error
}

// ListByOwner returns the owner's saved lists (never the active-cart rows),
// newest first, each annotated with a derived item count.
func (lr *listRepo) ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.List, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var results []*types.List
	if err := transaction.WithContext(ctx).
		Model(&types.List{}).
		Select("list.*, (SELECT COUNT(*) FROM list_item WHERE list_item.list_id = list.id) AS item_count").
		Where("owner_id = ? AND is_active_cart = ?", ownerID, false).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *listRepo) GetByID(ctx context.Context, tx *gorm.DB, ownerID, listID uuid.UUID) (*types.List, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var result types.List
	if err := transaction.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND owner_id = ? AND is_active_cart = ?", listID, ownerID, false).
		First(&result).Error; err != nil {
		return nil, err
	}
	result.ItemCount = int64(len(result.Items))
	return &result, nil
}

// Delete removes the list and its items. Item rows are removed explicitly
// because foreign key constraints are not relied on at runtime.
func (lr *listRepo) Delete(ctx context.Context, tx *gorm.DB, listID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	if err := transaction.WithContext(ctx).
		Where("list_id = ?", listID).
		Delete(&types.ListItem{}).Error; err != nil {
		return err
	}
	return transaction.WithContext(ctx).
		Where("id = ?", listID).
		Delete(&types.List{}).Error
}
