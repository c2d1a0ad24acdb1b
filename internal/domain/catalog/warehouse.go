package catalog

// Warehouse is static reference data: a stable string key and a display
// label. Read-only to the ledger.
type Warehouse struct {
	ID    string `gorm:"type:varchar(32);primaryKey"`
	Label string `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (Warehouse) TableName() string {
	return "warehouses"
}
