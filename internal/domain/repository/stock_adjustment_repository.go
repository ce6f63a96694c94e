package repository

import "github.com/Arikan-Bt/CWI-New-sub002/internal/domain/entity"

// StockAdjustmentRepository is the persistence port for count-correction
// headers and their lines (DIP).
type StockAdjustmentRepository interface {
	Create(adjustment *entity.StockAdjustment) error
	CreateItem(item *entity.StockAdjustmentItem) error
	GetByID(id string) (*entity.StockAdjustment, error)
	GetItemsByAdjustmentID(adjustmentID string) ([]*entity.StockAdjustmentItem, error)
}
