package ledger

import (
	"time"
)

// MovementType represents the stored type of a stock movement
type MovementType string

const (
	// MovementTypeIn represents stock entering a warehouse (receipt)
	MovementTypeIn MovementType = "in"
	// MovementTypeOut represents stock leaving a warehouse (shipment/sale)
	MovementTypeOut MovementType = "out"
	// MovementTypeTransfer represents stock moving between two warehouses
	MovementTypeTransfer MovementType = "transfer"
	// MovementTypeAdjustment represents a manual correction to an absolute level
	MovementTypeAdjustment MovementType = "adjustment"
)

// String returns the string representation of MovementType
func (t MovementType) String() string {
	return string(t)
}

// IsValid returns true if the movement type is valid
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeTransfer, MovementTypeAdjustment:
		return true
	}
	return false
}

// MovementKind is the request-side movement type. Entries and exits are
// normalized to "in"/"out" when the movement row is written.
type MovementKind string

const (
	// KindEntry is a stock receipt into a single warehouse
	KindEntry MovementKind = "entry"
	// KindExit is a stock shipment out of a single warehouse
	KindExit MovementKind = "exit"
	// KindTransfer moves stock between two warehouses of the same product
	KindTransfer MovementKind = "transfer"
	// KindAdjustment sets the absolute stock level at one warehouse.
	// Its quantity is the new target level, not a delta.
	KindAdjustment MovementKind = "adjustment"
)

// IsValid returns true if the movement kind is valid
func (k MovementKind) IsValid() bool {
	switch k {
	case KindEntry, KindExit, KindTransfer, KindAdjustment:
		return true
	}
	return false
}

// Normalize maps a request-side kind to the stored movement type.
func (k MovementKind) Normalize() MovementType {
	switch k {
	case KindEntry:
		return MovementTypeIn
	case KindExit:
		return MovementTypeOut
	case KindTransfer:
		return MovementTypeTransfer
	case KindAdjustment:
		return MovementTypeAdjustment
	}
	return MovementType(k)
}

// DefaultReason derives the display reason for a movement whose reason was
// never supplied. Kept as a single pure function so the strings can be
// localized in one place later.
func DefaultReason(t MovementType) string {
	switch t {
	case MovementTypeIn:
		return "receipt"
	case MovementTypeOut:
		return "sale"
	case MovementTypeTransfer:
		return "transfer"
	case MovementTypeAdjustment:
		return "inventory adjustment"
	}
	return ""
}

// Movement is one immutable ledger entry describing a single stock-affecting
// event. Rows are created by the movement executor and removed only through
// the reversal path; adjustments are permanently delete-protected.
type Movement struct {
	ID              uint         `gorm:"primaryKey"`
	CreatedAt       time.Time    `gorm:"not null;index:idx_stock_movements_created_at"`
	ProductID       uint         `gorm:"not null;index:idx_stock_movements_product"`
	Type            MovementType `gorm:"type:varchar(16);not null;index:idx_stock_movements_type"`
	Quantity        int64        `gorm:"not null"` // positive magnitude; absolute target for adjustments
	FromWarehouseID *string      `gorm:"type:varchar(32)"`
	ToWarehouseID   *string      `gorm:"type:varchar(32)"`
	Reference       string       `gorm:"type:varchar(100)"`
	UserID          uint         `gorm:"not null"`
	Reason          *string      `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (Movement) TableName() string {
	return "stock_movements"
}

// ReasonOrDefault returns the stored reason, falling back to the per-type
// default when the stored value is absent.
func (m *Movement) ReasonOrDefault() string {
	if m.Reason != nil && *m.Reason != "" {
		return *m.Reason
	}
	return DefaultReason(m.Type)
}

// Warehouse returns the single warehouse a non-transfer movement touches.
// Entries and adjustments land in ToWarehouseID, exits leave from
// FromWarehouseID. Returns false for transfers and malformed rows.
func (m *Movement) Warehouse() (string, bool) {
	switch m.Type {
	case MovementTypeIn, MovementTypeAdjustment:
		if m.ToWarehouseID != nil {
			return *m.ToWarehouseID, true
		}
	case MovementTypeOut:
		if m.FromWarehouseID != nil {
			return *m.FromWarehouseID, true
		}
	}
	return "", false
}
