package identity

import "time"

// User carries the display name joined into movement listings for
// attribution. Authentication and account management live in an external
// service; this table is a read-only directory here.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"type:varchar(100);not null"`
	Email     string `gorm:"type:varchar(255);uniqueIndex"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}
