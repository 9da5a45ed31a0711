package model

import (
	"time"

	"github.com/andikapratama/stockledger/constant"
)

type Sale struct {
	ID              uint64              `db:"id" json:"id"`
	StoreID         uint64              `db:"store_id" json:"store_id"`
	InventoryItemID uint64              `db:"inventory_item_id" json:"inventory_item_id"`
	OrderNumber     string              `db:"order_number" json:"order_number"`
	Quantity        int64               `db:"quantity" json:"quantity"`
	Cost            float64             `db:"cost" json:"cost"`
	Payout          float64             `db:"payout" json:"payout"`
	Discount        float64             `db:"discount" json:"discount"`
	PayoutMethod    string              `db:"payout_method" json:"payout_method,omitempty"`
	Status          constant.SaleStatus `db:"status" json:"status"`
	SaleDate        time.Time           `db:"sale_date" json:"sale_date"`
	Notes           string              `db:"notes" json:"notes,omitempty"`
	CreatedAt       time.Time           `db:"created_at" json:"created_at"`
}

type RecordSaleRequest struct {
	StoreID         uint64     `json:"store_id" validate:"required"`
	InventoryItemID uint64     `json:"inventory_item_id" validate:"required"`
	Quantity        int64      `json:"quantity" validate:"required,gt=0"`
	Cost            float64    `json:"cost" validate:"gte=0"`
	Payout          float64    `json:"payout" validate:"gte=0"`
	Discount        float64    `json:"discount" validate:"gte=0"`
	PayoutMethod    string     `json:"payout_method,omitempty"`
	SaleDate        *time.Time `json:"sale_date,omitempty"`
	Notes           string     `json:"notes,omitempty"`
}
