package persistence

import (
	"github.com/stockledger/backend/internal/domain/catalog"
	"github.com/stockledger/backend/internal/domain/identity"
	"github.com/stockledger/backend/internal/domain/ledger"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for all ledger tables. Used for
// the sqlite driver and in tests; Postgres deployments run the SQL
// migrations under migrations/ via cmd/migrate instead.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&catalog.Product{},
		&catalog.Warehouse{},
		&identity.User{},
		&ledger.LocationStock{},
		&ledger.Movement{},
	)
}
