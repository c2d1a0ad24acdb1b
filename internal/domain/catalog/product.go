package catalog

import "time"

// Product is catalog reference data joined into dashboard responses.
// Name, reference and category are maintained by the product CRUD screens
// outside this service; AggregateStock is the ledger-owned denormalized sum
// of the product's location stocks and is written only by the movement
// executor and the reversal engine.
type Product struct {
	ID             uint   `gorm:"primaryKey"`
	Name           string `gorm:"type:varchar(100);not null"`
	Reference      string `gorm:"type:varchar(50);index"`
	Category       string `gorm:"type:varchar(50)"`
	AggregateStock int64  `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}
