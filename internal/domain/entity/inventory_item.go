package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem is the current stock position of a product in one warehouse.
// Created on the first movement for the (product, warehouse) pair; mutated by
// every reconciliation; never deleted.
type InventoryItem struct {
	ProductID   string
	WarehouseID string
	OnHand      decimal.Decimal
	Reserved    decimal.Decimal
	ShelfNumber string
	UpdatedAt   time.Time
}

// Available is on-hand minus reserved. Derived, never stored.
func (i *InventoryItem) Available() decimal.Decimal {
	return i.OnHand.Sub(i.Reserved)
}
