package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/andikapratama/stockledger/constant"
	"github.com/andikapratama/stockledger/model"
	cerr "github.com/andikapratama/stockledger/utils/errors"
)

const mysqlErrDuplicateEntry = 1062

type SQL struct {
	conn *sqlx.DB
}

type InventoryRepository interface {
	GetByID(ctx context.Context, id uint64) (*model.InventoryItem, error)
	GetByIDTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.InventoryItem, error)
	InsertTx(ctx context.Context, tx *sqlx.Tx, item *model.NewInventoryItem) (uint64, error)
	DecrementQuantityTx(ctx context.Context, tx *sqlx.Tx, id uint64, qty int64) error
	IncrementQuantityTx(ctx context.Context, tx *sqlx.Tx, id uint64, qty int64) error
	SetQuantityTx(ctx context.Context, tx *sqlx.Tx, id uint64, qty int64) error
	RestoreTx(ctx context.Context, tx *sqlx.Tx, id uint64) error
	SoftDelete(ctx context.Context, id uint64) error
	ListAssignedUnitSKUsTx(ctx context.Context, tx *sqlx.Tx) ([]string, error)
}

func NewInventoryRepository(conn *sqlx.DB) InventoryRepository {
	return &SQL{conn: conn}
}

const getItemQuery = `SELECT id, product_id, sku, unit_sku, size, item_condition, unit_cost, quantity, status, purchase_order_id, deleted_at, created_at
FROM inventory_item WHERE id = ?`

func (r *SQL) GetByID(ctx context.Context, id uint64) (*model.InventoryItem, error) {
	var item model.InventoryItem
	if err := r.conn.GetContext(ctx, &item, getItemQuery, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *SQL) GetByIDTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.InventoryItem, error) {
	var item model.InventoryItem
	if err := tx.GetContext(ctx, &item, getItemQuery, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// IsDuplicateUnitSKU reports whether err is the unique-key violation raised when a
// concurrently allocated unit SKU was inserted first. Fulfillment retries on it.
func IsDuplicateUnitSKU(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlErrDuplicateEntry
}

func (r *SQL) InsertTx(ctx context.Context, tx *sqlx.Tx, item *model.NewInventoryItem) (uint64, error) {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO inventory_item (product_id, sku, unit_sku, size, item_condition, unit_cost, quantity, status, purchase_order_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ProductID, item.SKU, item.UnitSKU, item.Size, item.ItemCondition,
		item.UnitCost, item.Quantity, constant.InventoryStatusInStock, item.PurchaseOrderID,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// DecrementQuantityTx is a single conditional update: the availability check and the
// decrement are one statement, so a concurrent writer can never invalidate the check.
func (r *SQL) DecrementQuantityTx(ctx context.Context, tx *sqlx.Tx, id uint64, qty int64) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE inventory_item SET quantity = quantity - ? WHERE id = ? AND deleted_at IS NULL AND quantity >= ?",
		qty, id, qty,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var available int64
		if err := tx.GetContext(ctx, &available, "SELECT quantity FROM inventory_item WHERE id = ? AND deleted_at IS NULL", id); err != nil {
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

func (r *SQL) IncrementQuantityTx(ctx context.Context, tx *sqlx.Tx, id uint64, qty int64) error {
	res, err := tx.ExecContext(ctx, "UPDATE inventory_item SET quantity = quantity + ? WHERE id = ?", qty, id)
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

func (r *SQL) SetQuantityTx(ctx context.Context, tx *sqlx.Tx, id uint64, qty int64) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE inventory_item SET quantity = ? WHERE id = ? AND deleted_at IS NULL", qty, id)
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

// RestoreTx clears the soft-delete marker and puts the item back in stock. Used by
// the return flow when store stock comes back for an item deleted in the meantime.
func (r *SQL) RestoreTx(ctx context.Context, tx *sqlx.Tx, id uint64) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE inventory_item SET deleted_at = NULL, status = ? WHERE id = ?",
		constant.InventoryStatusInStock, id)
	return err
}

func (r *SQL) SoftDelete(ctx context.Context, id uint64) error {
	res, err := r.conn.ExecContext(ctx,
		"UPDATE inventory_item SET deleted_at = NOW(), status = ? WHERE id = ? AND deleted_at IS NULL",
		constant.InventoryStatusDeleted, id)
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

// ListAssignedUnitSKUsTx feeds gap-filling SKU allocation with every value currently
// taken, soft-deleted rows included so their numbers are not reissued. The locking
// read sees rows committed after the transaction began, which a plain consistent
// read under REPEATABLE READ would not.
func (r *SQL) ListAssignedUnitSKUsTx(ctx context.Context, tx *sqlx.Tx) ([]string, error) {
	rows, err := tx.QueryxContext(ctx, "SELECT unit_sku FROM inventory_item WHERE unit_sku IS NOT NULL FOR UPDATE")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	skus := make([]string, 0)
	for rows.Next() {
		var sku string
		if err := rows.Scan(&sku); err != nil {
			return nil, err
		}
		skus = append(skus, sku)
	}
	return skus, rows.Err()
}
