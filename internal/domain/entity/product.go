package entity

import "time"

// Product master data. Read-only here: reconcilers resolve SKUs against it,
// nothing in this service mutates the catalog.
type Product struct {
	ID        string
	SKU       string
	Name      string
	CreatedAt time.Time
}
