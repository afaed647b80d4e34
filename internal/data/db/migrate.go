package db

import (
	types "github.com/tilemart/storefront-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(

		// Identity + auth
		&types.User{},
		&types.UserToken{},

		// Catalog
		&types.Product{},

		// Saved lists (bill-of-materials) + their lines
		&types.List{},
		&types.ListItem{},
	)
}
