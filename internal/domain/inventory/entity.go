// internal/domain/inventory/entity.go
package inventory

import (
	"time"
)

// Status represents the stock status of a product
type Status string

const (
	StatusInStock    Status = "IN_STOCK"
	StatusLowStock   Status = "LOW_STOCK"
	StatusOutOfStock Status = "OUT_OF_STOCK"
)

// LowStockLevel is the quantity at which a product stops being low on stock
const LowStockLevel = 10

// Inventory is the stock record of a single product
type Inventory struct {
	ProductID         string    `gorm:"primaryKey;size:64" json:"product_id"`
	Quantity          int       `gorm:"not null;default:0;index" json:"quantity"`
	Status            Status    `gorm:"size:20;not null" json:"status"`
	WarehouseLocation string    `gorm:"size:100;index" json:"warehouse_location"`
	LastUpdated       time.Time `json:"last_updated"`
}

// TableName overrides the table name
func (Inventory) TableName() string {
	return "inventory"
}

// DeriveStatus maps a quantity to its stock status
func DeriveStatus(quantity int) Status {
	switch {
	case quantity <= 0:
		return StatusOutOfStock
	case quantity < LowStockLevel:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// Refresh re-derives the status from the quantity and stamps LastUpdated
func (i *Inventory) Refresh(now time.Time) {
	i.Status = DeriveStatus(i.Quantity)
	i.LastUpdated = now
}
