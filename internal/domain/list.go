package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ListStatus is the lifecycle state of a saved list. New lists always start
// as draft; transitions are driven by an external quoting/ordering workflow,
// never by this service.
type ListStatus string

const (
	ListStatusDraft   ListStatus = "draft"
	ListStatusQuoted  ListStatus = "quoted"
	ListStatusOrdered ListStatus = "ordered"
)

// StatusFilterAll matches every status when filtering a loaded collection.
const StatusFilterAll = "all"

// List is a durably stored, named bill of materials owned by a user. The same
// table shape can also hold an in-progress cart (is_active_cart = true), but
// this service only ever writes is_active_cart = false rows.
type List struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID       uuid.UUID       `gorm:"type:uuid;index;not null;column:owner_id" json:"owner_id"`
	Name          string          `gorm:"not null" json:"name"`
	Description   string          `json:"description"`
	Status        ListStatus      `gorm:"not null;default:draft" json:"status"`
	IsActiveCart  bool            `gorm:"not null;default:false;column:is_active_cart" json:"is_active_cart"`
	TotalEstimate decimal.Decimal `gorm:"type:numeric(14,2)" json:"total_estimate"`
	CreatedAt     time.Time       `gorm:"not null" json:"created_at"`

	Items []ListItem `gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE" json:"items,omitempty"`

	// ItemCount is derived per query from the related list_item rows; it is
	// never materialized on the row itself.
	ItemCount int64 `gorm:"->;-:migration" json:"item_count"`
}

func (List) TableName() string { return "list" }

// ListItem is one product line of a saved list. Items are created only as
// part of cart conversion and belong exclusively to their list.
type ListItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ListID    uuid.UUID `gorm:"type:uuid;index;not null;column:list_id" json:"list_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;column:product_id" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (ListItem) TableName() string { return "list_item" }

// NormalizeListName trims surrounding whitespace; the result must be
// non-empty for a list to be created.
func NormalizeListName(name string) string {
	return strings.TrimSpace(name)
}

// MatchesSearch reports whether the list's name contains the query,
// case-insensitively. Description is deliberately not searched.
func (l *List) MatchesSearch(query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(l.Name), strings.ToLower(query))
}

// FilterLists applies client-side search and status filtering to an already
// loaded snapshot. It never re-queries the store.
func FilterLists(lists []*List, search, status string) []*List {
	out := make([]*List, 0, len(lists))
	for _, l := range lists {
		if !l.MatchesSearch(search) {
			continue
		}
		if status != "" && status != StatusFilterAll && string(l.Status) != status {
			continue
		}
		out = append(out, l)
	}
	return out
}
