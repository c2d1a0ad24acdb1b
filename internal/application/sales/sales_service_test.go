package sales_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	appledger "github.com/stockledger/backend/internal/application/ledger"
	"github.com/stockledger/backend/internal/application/sales"
	"github.com/stockledger/backend/internal/domain/catalog"
	"github.com/stockledger/backend/internal/domain/ledger"
	"github.com/stockledger/backend/internal/domain/shared"
	"github.com/stockledger/backend/internal/infrastructure/persistence"
)

func newSalesFixture(t *testing.T) (*sales.SalesService, *appledger.MovementService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, persistence.AutoMigrate(db))

	require.NoError(t, db.Create(&catalog.Product{ID: 1, Name: "Widget"}).Error)
	require.NoError(t, db.Create(&catalog.Product{ID: 2, Name: "Gadget"}).Error)
	require.NoError(t, db.Create(&catalog.Warehouse{ID: "central", Label: "Central"}).Error)

	movements := appledger.NewMovementService(persistence.NewGormTransactionScope(db), zap.NewNop())
	return sales.NewSalesService(movements, zap.NewNop()), movements, db
}

func stockLevel(t *testing.T, db *gorm.DB, productID uint, warehouseID string) int64 {
	t.Helper()
	var qty int64
	require.NoError(t, db.Model(&ledger.LocationStock{}).
		Where("warehouse_id = ? AND product_id = ?", warehouseID, productID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&qty).Error)
	return qty
}

func TestSalesService_RecordSale(t *testing.T) {
	svc, movements, db := newSalesFixture(t)
	ctx := context.Background()

	for _, productID := range []uint{1, 2} {
		_, err := movements.Create(ctx, ledger.NewMovement{
			Kind: ledger.KindEntry, ProductID: productID, Quantity: 10, WarehouseID: "central", UserID: 1,
		})
		require.NoError(t, err)
	}

	order, err := svc.RecordSale(ctx, sales.OrderInput{
		Reference: "SO-1001",
		UserID:    1,
		Lines: []sales.OrderLine{
			{ProductID: 1, WarehouseID: "central", Quantity: 3, UnitPrice: decimal.RequireFromString("19.99")},
			{ProductID: 2, WarehouseID: "central", Quantity: 2, UnitPrice: decimal.RequireFromString("4.50")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "SO-1001", order.Reference)
	// 3*19.99 + 2*4.50 = 68.97, exact in fixed-point.
	assert.True(t, order.Total.Equal(decimal.RequireFromString("68.97")), "total = %s", order.Total)
	require.Len(t, order.Movements, 2)
	assert.Equal(t, "out", order.Movements[0].Type)
	assert.Equal(t, "sale", order.Movements[0].Reason)
	assert.Equal(t, "SO-1001", order.Movements[0].Reference)

	assert.Equal(t, int64(7), stockLevel(t, db, 1, "central"))
	assert.Equal(t, int64(8), stockLevel(t, db, 2, "central"))
}

func TestSalesService_RejectsEmptyOrder(t *testing.T) {
	svc, _, _ := newSalesFixture(t)

	_, err := svc.RecordSale(context.Background(), sales.OrderInput{Reference: "SO-0"})
	require.Error(t, err)

	var ve *shared.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "lines")
}

func TestSalesService_RejectsNegativePrice(t *testing.T) {
	svc, _, _ := newSalesFixture(t)

	_, err := svc.RecordSale(context.Background(), sales.OrderInput{
		Reference: "SO-2",
		Lines: []sales.OrderLine{
			{ProductID: 1, WarehouseID: "central", Quantity: 1, UnitPrice: decimal.RequireFromString("-1")},
		},
	})
	require.Error(t, err)

	var ve *shared.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "unitPrice")
}

func TestSalesService_AbortsOnInsufficientStock(t *testing.T) {
	svc, movements, db := newSalesFixture(t)
	ctx := context.Background()

	_, err := movements.Create(ctx, ledger.NewMovement{
		Kind: ledger.KindEntry, ProductID: 1, Quantity: 5, WarehouseID: "central", UserID: 1,
	})
	require.NoError(t, err)

	_, err = svc.RecordSale(ctx, sales.OrderInput{
		Reference: "SO-3",
		UserID:    1,
		Lines: []sales.OrderLine{
			{ProductID: 1, WarehouseID: "central", Quantity: 3, UnitPrice: decimal.RequireFromString("2.00")},
			{ProductID: 2, WarehouseID: "central", Quantity: 1, UnitPrice: decimal.RequireFromString("2.00")},
		},
	})
	require.Error(t, err)

	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "INSUFFICIENT_STOCK", de.Code)

	// The first line committed before the abort; each line is its own
	// movement transaction.
	assert.Equal(t, int64(2), stockLevel(t, db, 1, "central"))
}
