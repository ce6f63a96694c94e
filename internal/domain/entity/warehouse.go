package entity

import "time"

// Warehouse master data. Read-only for reconciliation; label matching is
// case-insensitive against Name or Code.
type Warehouse struct {
	ID        string
	Name      string
	Code      string
	IsDefault bool
	IsActive  bool
	CreatedAt time.Time
}
