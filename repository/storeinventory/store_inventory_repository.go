package storeinventory

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/andikapratama/stockledger/constant"
	"github.com/andikapratama/stockledger/model"
	cerr "github.com/andikapratama/stockledger/utils/errors"
)

type SQL struct {
	conn *sqlx.DB
}

type StoreInventoryRepository interface {
	GetByID(ctx context.Context, id uint64) (*model.StoreInventory, error)
	GetByIDTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.StoreInventory, error)
	GetByStoreAndItemTx(ctx context.Context, tx *sqlx.Tx, storeID, itemID uint64) (*model.StoreInventory, error)
	UpsertAddTx(ctx context.Context, tx *sqlx.Tx, storeID, itemID uint64, qty int64, unitCost float64) (*model.StoreInventory, error)
	IncrementQuantityTx(ctx context.Context, tx *sqlx.Tx, id uint64, qty int64) error
	DecrementQuantityTx(ctx context.Context, tx *sqlx.Tx, id uint64, qty int64) error
	SetStatusTx(ctx context.Context, tx *sqlx.Tx, id uint64, status constant.StoreInventoryStatus) error
	ListByStore(ctx context.Context, storeID uint64) ([]model.StoreInventory, error)
	SumQuantityByItem(ctx context.Context, itemID uint64) (int64, error)
}

func NewStoreInventoryRepository(conn *sqlx.DB) StoreInventoryRepository {
	return &SQL{conn: conn}
}

const getStoreInventoryBase = `SELECT id, store_id, inventory_item_id, quantity, transfer_cost, status, store_sku, deleted_at, created_at, updated_at
FROM store_inventory`

func (r *SQL) GetByID(ctx context.Context, id uint64) (*model.StoreInventory, error) {
	var si model.StoreInventory
	if err := r.conn.GetContext(ctx, &si, getStoreInventoryBase+" WHERE id = ?", id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &si, nil
}

func (r *SQL) GetByIDTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.StoreInventory, error) {
	var si model.StoreInventory
	if err := tx.GetContext(ctx, &si, getStoreInventoryBase+" WHERE id = ? FOR UPDATE", id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &si, nil
}

func (r *SQL) GetByStoreAndItemTx(ctx context.Context, tx *sqlx.Tx, storeID, itemID uint64) (*model.StoreInventory, error) {
	var si model.StoreInventory
	err := tx.GetContext(ctx, &si,
		getStoreInventoryBase+" WHERE store_id = ? AND inventory_item_id = ? AND deleted_at IS NULL FOR UPDATE",
		storeID, itemID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &si, nil
}

// weightedAverageCost recomputes the transfer cost basis when stock is added on top
// of an existing row: (oldQty*oldCost + addQty*addCost) / (oldQty + addQty).
func weightedAverageCost(oldQty int64, oldCost float64, addQty int64, addCost float64) float64 {
	total := oldQty + addQty
	if total <= 0 {
		return addCost
	}
	return (float64(oldQty)*oldCost + float64(addQty)*addCost) / float64(total)
}

// UpsertAddTx creates the (store, item) row on first transfer, or adds quantity and
// recomputes the weighted-average cost on repeat transfers. The row is locked by the
// preceding FOR UPDATE read so the average is computed against a stable quantity.
func (r *SQL) UpsertAddTx(ctx context.Context, tx *sqlx.Tx, storeID, itemID uint64, qty int64, unitCost float64) (*model.StoreInventory, error) {
	existing, err := r.GetByStoreAndItemTx(ctx, tx, storeID, itemID)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO store_inventory (store_id, inventory_item_id, quantity, transfer_cost, status) VALUES (?, ?, ?, ?, ?)",
			storeID, itemID, qty, unitCost, constant.StoreInventoryStatusInStock)
		if err != nil {
			return nil, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, err
		}
		return r.GetByIDTx(ctx, tx, uint64(id))
	}

	newCost := weightedAverageCost(existing.Quantity, existing.TransferCost, qty, unitCost)
	_, err = tx.ExecContext(ctx,
		"UPDATE store_inventory SET quantity = quantity + ?, transfer_cost = ?, status = ? WHERE id = ?",
		qty, newCost, constant.StoreInventoryStatusInStock, existing.ID)
	if err != nil {
		return nil, err
	}
	return r.GetByIDTx(ctx, tx, existing.ID)
}

// IncrementQuantityTx adds stock back without touching the cost basis (refunds).
func (r *SQL) IncrementQuantityTx(ctx context.Context, tx *sqlx.Tx, id uint64, qty int64) error {
	res, err := tx.ExecContext(ctx, "UPDATE store_inventory SET quantity = quantity + ? WHERE id = ?", qty, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return cerr.SetCustomError(constant.ErrNotFound)
	}
	return nil
}

// DecrementQuantityTx removes stock without touching the cost basis. Check and
// decrement are one conditional statement; zero rows affected means insufficient
// stock (or a missing row), reported with the current availability.
func (r *SQL) DecrementQuantityTx(ctx context.Context, tx *sqlx.Tx, id uint64, qty int64) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE store_inventory SET quantity = quantity - ? WHERE id = ? AND deleted_at IS NULL AND quantity >= ?",
		qty, id, qty)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var available int64
		if err := tx.GetContext(ctx, &available, "SELECT quantity FROM store_inventory WHERE id = ? AND deleted_at IS NULL", id); err != nil {
			if err == sql.ErrNoRows {
				return cerr.SetCustomError(constant.ErrNotFound)
			}
			return err
		}
		return cerr.SetCustomErrorWithDetail(constant.ErrInsufficientStock,
			fmt.Sprintf("available %d, requested %d", available, qty))
	}
	return nil
}

func (r *SQL) SetStatusTx(ctx context.Context, tx *sqlx.Tx, id uint64, status constant.StoreInventoryStatus) error {
	res, err := tx.ExecContext(ctx, "UPDATE store_inventory SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return cerr.SetCustomError(constant.ErrNotFound)
	}
	return nil
}

func (r *SQL) ListByStore(ctx context.Context, storeID uint64) ([]model.StoreInventory, error) {
	rows, err := r.conn.QueryxContext(ctx,
		getStoreInventoryBase+" WHERE store_id = ? AND deleted_at IS NULL ORDER BY id", storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.StoreInventory, 0)
	for rows.Next() {
		var si model.StoreInventory
		if err := rows.StructScan(&si); err != nil {
			return nil, err
		}
		items = append(items, si)
	}
	return items, rows.Err()
}

// SumQuantityByItem totals the item's stock across all stores for the availability
// read model. RETURNED rows are excluded: their quantity already went back into the
// warehouse count and would otherwise be counted twice.
func (r *SQL) SumQuantityByItem(ctx context.Context, itemID uint64) (int64, error) {
	var total sql.NullInt64
	q := "SELECT COALESCE(SUM(quantity),0) FROM store_inventory WHERE inventory_item_id = ? AND deleted_at IS NULL AND status != ?"
	if err := r.conn.GetContext(ctx, &total, q, itemID, constant.StoreInventoryStatusReturned); err != nil {
		return 0, err
	}
	if !total.Valid {
		return 0, nil
	}
	return total.Int64, nil
}
