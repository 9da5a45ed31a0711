package model

import (
	"database/sql"
	"time"

	"github.com/andikapratama/stockledger/constant"
)

type PurchaseOrder struct {
	ID          uint64                       `db:"id" json:"id"`
	OrderNumber string                       `db:"order_number" json:"order_number"`
	Vendor      string                       `db:"vendor" json:"vendor"`
	Status      constant.PurchaseOrderStatus `db:"status" json:"status"`
	DeliveredAt sql.NullTime                 `db:"delivered_at" json:"delivered_at,omitempty"`
	CreatedAt   time.Time                    `db:"created_at" json:"created_at"`

	Items []PurchaseOrderItem `json:"items,omitempty"`
}

// PurchaseOrderItem is one ordered line. On delivery every ordered unit becomes
// exactly one InventoryItem.
type PurchaseOrderItem struct {
	ID              uint64  `db:"id" json:"id"`
	PurchaseOrderID uint64  `db:"purchase_order_id" json:"purchase_order_id"`
	ProductID       uint64  `db:"product_id" json:"product_id"`
	SKU             string  `db:"sku" json:"sku"`
	Size            string  `db:"size" json:"size"`
	ItemCondition   string  `db:"item_condition" json:"item_condition"`
	UnitCost        float64 `db:"unit_cost" json:"unit_cost"`
	QuantityOrdered int64   `db:"quantity_ordered" json:"quantity_ordered"`
}

type PurchaseOrderItemRequest struct {
	ProductID     uint64  `json:"product_id" validate:"required"`
	SKU           string  `json:"sku" validate:"required"`
	Size          string  `json:"size,omitempty"`
	ItemCondition string  `json:"item_condition,omitempty"`
	UnitCost      float64 `json:"unit_cost" validate:"required,gt=0"`
	Quantity      int64   `json:"quantity" validate:"required,gt=0"`
}

type CreatePurchaseOrderRequest struct {
	Vendor string                     `json:"vendor" validate:"required"`
	Items  []PurchaseOrderItemRequest `json:"items" validate:"required,min=1,dive,required"`
}

type DeliverPurchaseOrderResult struct {
	PurchaseOrder  *PurchaseOrder  `json:"purchase_order"`
	InventoryItems []InventoryItem `json:"inventory_items"`
}
