package ledger

import (
	"github.com/stockledger/backend/internal/domain/shared"
)

// NewMovement is the input contract for creating a movement. Validation is
// pure and runs before any database access.
type NewMovement struct {
	Kind            MovementKind
	ProductID       uint
	Quantity        int64
	WarehouseID     string // entry, exit, adjustment
	FromWarehouseID string // transfer
	ToWarehouseID   string // transfer
	Reference       string
	Reason          string
	UserID          uint
}

// Validate checks the per-type input contract. All applicable checks run;
// the returned ValidationError names every offending field.
func (m NewMovement) Validate() error {
	var fields []string

	if !m.Kind.IsValid() {
		fields = append(fields, "type")
	}
	if m.ProductID == 0 {
		fields = append(fields, "productId")
	}

	switch m.Kind {
	case KindEntry, KindExit:
		if m.WarehouseID == "" {
			fields = append(fields, "warehouseId")
		}
		if m.Quantity <= 0 {
			fields = append(fields, "quantity")
		}
	case KindTransfer:
		if m.FromWarehouseID == "" {
			fields = append(fields, "fromWarehouseId")
		}
		if m.ToWarehouseID == "" {
			fields = append(fields, "toWarehouseId")
		}
		// Enforced here regardless of any client-side check.
		if m.FromWarehouseID != "" && m.FromWarehouseID == m.ToWarehouseID {
			fields = append(fields, "toWarehouseId")
		}
		if m.Quantity <= 0 {
			fields = append(fields, "quantity")
		}
	case KindAdjustment:
		if m.WarehouseID == "" {
			fields = append(fields, "warehouseId")
		}
		// Absolute target level, zero is a valid count.
		if m.Quantity < 0 {
			fields = append(fields, "quantity")
		}
	}

	if len(fields) > 0 {
		return shared.NewValidationError(fields...)
	}
	return nil
}
