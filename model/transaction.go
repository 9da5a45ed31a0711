package model

import (
	"database/sql"
	"time"

	"github.com/andikapratama/stockledger/constant"
)

// StockTransaction is one immutable ledger entry. A null FromStoreID/ToStoreID means
// the warehouse side of the movement. Rows are only ever soft-deleted (archived) or
// hard-deleted whole; quantities are never edited after insert.
type StockTransaction struct {
	ID              uint64                   `db:"id" json:"id"`
	InventoryItemID uint64                   `db:"inventory_item_id" json:"inventory_item_id"`
	Type            constant.TransactionType `db:"type" json:"type"`
	Quantity        int64                    `db:"quantity" json:"quantity"`
	Date            time.Time                `db:"date" json:"date"`
	FromStoreID     sql.NullInt64            `db:"from_store_id" json:"from_store_id,omitempty"`
	ToStoreID       sql.NullInt64            `db:"to_store_id" json:"to_store_id,omitempty"`
	ActorID         sql.NullInt64            `db:"actor_id" json:"actor_id,omitempty"`
	Notes           string                   `db:"notes" json:"notes,omitempty"`
	DeletedAt       sql.NullTime             `db:"deleted_at" json:"deleted_at,omitempty"`
	CreatedAt       time.Time                `db:"created_at" json:"created_at"`
}

// RecordTransactionRequest is the generic movement endpoint's payload. Which of the
// store references are required depends on the type; see application/ledgerentry.
type RecordTransactionRequest struct {
	InventoryItemID uint64                   `json:"inventory_item_id" validate:"required"`
	Type            constant.TransactionType `json:"type" validate:"required"`
	Quantity        int64                    `json:"quantity" validate:"gte=0"`
	Date            *time.Time               `json:"date,omitempty"`
	FromStoreID     *uint64                  `json:"from_store_id,omitempty"`
	ToStoreID       *uint64                  `json:"to_store_id,omitempty"`
	Notes           string                   `json:"notes,omitempty"`
}
