package model

import (
	"database/sql"
	"time"

	"github.com/andikapratama/stockledger/constant"
)

// InventoryItem is one warehouse stock row: a distinct variant lot of a product,
// or a single unit created from purchase-order fulfillment (quantity 1, unit SKU set).
type InventoryItem struct {
	ID              uint64                   `db:"id" json:"id"`
	ProductID       uint64                   `db:"product_id" json:"product_id"`
	SKU             string                   `db:"sku" json:"sku"`
	UnitSKU         sql.NullString           `db:"unit_sku" json:"unit_sku,omitempty"`
	Size            string                   `db:"size" json:"size"`
	ItemCondition   string                   `db:"item_condition" json:"item_condition"`
	UnitCost        float64                  `db:"unit_cost" json:"unit_cost"`
	Quantity        int64                    `db:"quantity" json:"quantity"`
	Status          constant.InventoryStatus `db:"status" json:"status"`
	PurchaseOrderID sql.NullInt64            `db:"purchase_order_id" json:"purchase_order_id,omitempty"`
	DeletedAt       sql.NullTime             `db:"deleted_at" json:"deleted_at,omitempty"`
	CreatedAt       time.Time                `db:"created_at" json:"created_at"`
}

// NewInventoryItem is the insert shape used by fulfillment.
type NewInventoryItem struct {
	ProductID       uint64
	SKU             string
	UnitSKU         string
	Size            string
	ItemCondition   string
	UnitCost        float64
	Quantity        int64
	PurchaseOrderID uint64
}

// ItemAvailability is the cached read-model for a warehouse item's current stock.
type ItemAvailability struct {
	ItemID            uint64 `json:"item_id"`
	WarehouseQuantity int64  `json:"warehouse_quantity"`
	StoreQuantity     int64  `json:"store_quantity"`
}
