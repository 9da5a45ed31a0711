package model

import (
	"database/sql"
	"time"

	"github.com/andikapratama/stockledger/constant"
)

// StoreInventory is the per-(store, item) stock row. Unique on (store_id, inventory_item_id).
// Never hard-deleted: sold and returned rows stay visible as history.
type StoreInventory struct {
	ID              uint64                        `db:"id" json:"id"`
	StoreID         uint64                        `db:"store_id" json:"store_id"`
	InventoryItemID uint64                        `db:"inventory_item_id" json:"inventory_item_id"`
	Quantity        int64                         `db:"quantity" json:"quantity"`
	TransferCost    float64                       `db:"transfer_cost" json:"transfer_cost"`
	Status          constant.StoreInventoryStatus `db:"status" json:"status"`
	StoreSKU        sql.NullString                `db:"store_sku" json:"store_sku,omitempty"`
	DeletedAt       sql.NullTime                  `db:"deleted_at" json:"deleted_at,omitempty"`
	CreatedAt       time.Time                     `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time                     `db:"updated_at" json:"updated_at"`
}

type Store struct {
	ID     uint64               `db:"id" json:"id"`
	Name   string               `db:"name" json:"name"`
	Status constant.StoreStatus `db:"status" json:"status"`
}
