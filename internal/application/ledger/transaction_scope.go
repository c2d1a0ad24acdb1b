package ledger

import (
	"context"

	"github.com/stockledger/backend/internal/domain/ledger"
)

// TransactionScope provides transactional access to the ledger repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically. Row locks taken inside the scope are held until it ends.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the ledger repositories
// within a transaction. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// Movements returns the movement repository scoped to the current transaction
	Movements() ledger.MovementRepository
	// LocationStocks returns the location stock repository scoped to the current transaction
	LocationStocks() ledger.LocationStockRepository
	// ProductStocks returns the aggregate stock repository scoped to the current transaction
	ProductStocks() ledger.ProductStockRepository
}
