package purchaseorder

import (
	"context"
	"database/sql"
	"errors"
	"time"

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

type PurchaseOrderRepository interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, po *model.PurchaseOrder) (uint64, error)
	InsertItemsTx(ctx context.Context, tx *sqlx.Tx, poID uint64, items []model.PurchaseOrderItemRequest) error
	GetByID(ctx context.Context, id uint64) (*model.PurchaseOrder, error)
	GetByIDTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.PurchaseOrder, error)
	GetItemsTx(ctx context.Context, tx *sqlx.Tx, poID uint64) ([]model.PurchaseOrderItem, error)
	GetMaxOrderNumberTx(ctx context.Context, tx *sqlx.Tx) (string, error)
	MarkDeliveredTx(ctx context.Context, tx *sqlx.Tx, id uint64, deliveredAt time.Time) error
}

func NewPurchaseOrderRepository(conn *sqlx.DB) PurchaseOrderRepository {
	return &SQL{conn: conn}
}

// IsDuplicateOrderNumber reports the unique-key violation raised when a concurrent
// caller claimed the same order number first. Creation retries with a recomputed one.
func IsDuplicateOrderNumber(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlErrDuplicateEntry
}

func (r *SQL) InsertTx(ctx context.Context, tx *sqlx.Tx, po *model.PurchaseOrder) (uint64, error) {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO purchase_order (order_number, vendor, status) VALUES (?, ?, ?)",
		po.OrderNumber, po.Vendor, constant.PurchaseOrderStatusPending)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SQL) InsertItemsTx(ctx context.Context, tx *sqlx.Tx, poID uint64, items []model.PurchaseOrderItemRequest) error {
	q := `INSERT INTO purchase_order_item (purchase_order_id, product_id, sku, size, item_condition, unit_cost, quantity_ordered)
	VALUES (?, ?, ?, ?, ?, ?, ?)`
	for _, it := range items {
		if _, err := tx.ExecContext(ctx, q, poID, it.ProductID, it.SKU, it.Size, it.ItemCondition, it.UnitCost, it.Quantity); err != nil {
			return err
		}
	}
	return nil
}

const getPOBase = `SELECT id, order_number, vendor, status, delivered_at, created_at FROM purchase_order`

func (r *SQL) GetByID(ctx context.Context, id uint64) (*model.PurchaseOrder, error) {
	var po model.PurchaseOrder
	if err := r.conn.GetContext(ctx, &po, getPOBase+" WHERE id = ?", id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	rows, err := r.conn.QueryxContext(ctx,
		"SELECT id, purchase_order_id, product_id, sku, size, item_condition, unit_cost, quantity_ordered FROM purchase_order_item WHERE purchase_order_id = ? ORDER BY id", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var it model.PurchaseOrderItem
		if err := rows.StructScan(&it); err != nil {
			return nil, err
		}
		po.Items = append(po.Items, it)
	}
	return &po, rows.Err()
}

func (r *SQL) GetByIDTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.PurchaseOrder, error) {
	var po model.PurchaseOrder
	if err := tx.GetContext(ctx, &po, getPOBase+" WHERE id = ? FOR UPDATE", id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &po, nil
}

func (r *SQL) GetItemsTx(ctx context.Context, tx *sqlx.Tx, poID uint64) ([]model.PurchaseOrderItem, error) {
	rows, err := tx.QueryxContext(ctx,
		"SELECT id, purchase_order_id, product_id, sku, size, item_condition, unit_cost, quantity_ordered FROM purchase_order_item WHERE purchase_order_id = ? ORDER BY id", poID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.PurchaseOrderItem, 0)
	for rows.Next() {
		var it model.PurchaseOrderItem
		if err := rows.StructScan(&it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetMaxOrderNumberTx returns the highest assigned order number, or "" when none
// exist yet. Numbers are zero-padded so lexical and numeric order agree. The locking
// read sees numbers committed after the transaction began, so a collision retry does
// not recompute the same value from a stale read view.
func (r *SQL) GetMaxOrderNumberTx(ctx context.Context, tx *sqlx.Tx) (string, error) {
	var num sql.NullString
	if err := tx.GetContext(ctx, &num, "SELECT MAX(order_number) FROM purchase_order FOR UPDATE"); err != nil {
		return "", err
	}
	if !num.Valid {
		return "", nil
	}
	return num.String, nil
}

// MarkDeliveredTx transitions PENDING → DELIVERED conditionally; zero rows affected
// means the order was already delivered (or does not exist).
func (r *SQL) MarkDeliveredTx(ctx context.Context, tx *sqlx.Tx, id uint64, deliveredAt time.Time) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE purchase_order SET status = ?, delivered_at = ? WHERE id = ? AND status = ?",
		constant.PurchaseOrderStatusDelivered, deliveredAt, id, constant.PurchaseOrderStatusPending)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return cerr.SetCustomError(constant.ErrAlreadyDelivered)
	}
	return nil
}
