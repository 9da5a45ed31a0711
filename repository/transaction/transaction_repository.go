package transaction

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/andikapratama/stockledger/constant"
	"github.com/andikapratama/stockledger/model"
	cerr "github.com/andikapratama/stockledger/utils/errors"
)

type SQL struct {
	conn *sqlx.DB
}

// TransactionRepository appends and reads ledger entries. Inserted rows are never
// updated apart from the soft-delete marker; hard delete removes the row outright.
type TransactionRepository interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, txn *model.StockTransaction) (uint64, error)
	GetByID(ctx context.Context, id uint64) (*model.StockTransaction, error)
	ListByItem(ctx context.Context, itemID uint64) ([]model.StockTransaction, error)
	Archive(ctx context.Context, id uint64) error
	Restore(ctx context.Context, id uint64) error
	HardDelete(ctx context.Context, id uint64) error
}

func NewTransactionRepository(conn *sqlx.DB) TransactionRepository {
	return &SQL{conn: conn}
}

const getTransactionBase = `SELECT id, inventory_item_id, type, quantity, date, from_store_id, to_store_id, actor_id, notes, deleted_at, created_at
FROM stock_transaction`

func (r *SQL) InsertTx(ctx context.Context, tx *sqlx.Tx, txn *model.StockTransaction) (uint64, error) {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO stock_transaction (inventory_item_id, type, quantity, date, from_store_id, to_store_id, actor_id, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		txn.InventoryItemID, txn.Type, txn.Quantity, txn.Date,
		txn.FromStoreID, txn.ToStoreID, txn.ActorID, txn.Notes,
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

func (r *SQL) GetByID(ctx context.Context, id uint64) (*model.StockTransaction, error) {
	var txn model.StockTransaction
	if err := r.conn.GetContext(ctx, &txn, getTransactionBase+" WHERE id = ?", id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &txn, nil
}

func (r *SQL) ListByItem(ctx context.Context, itemID uint64) ([]model.StockTransaction, error) {
	rows, err := r.conn.QueryxContext(ctx,
		getTransactionBase+" WHERE inventory_item_id = ? AND deleted_at IS NULL ORDER BY date, id", itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txns := make([]model.StockTransaction, 0)
	for rows.Next() {
		var txn model.StockTransaction
		if err := rows.StructScan(&txn); err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}

// Archive soft-deletes an entry: the row stays for history but drops out of listings.
func (r *SQL) Archive(ctx context.Context, id uint64) error {
	res, err := r.conn.ExecContext(ctx,
		"UPDATE stock_transaction SET deleted_at = NOW() WHERE id = ? AND deleted_at IS NULL", id)
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

func (r *SQL) Restore(ctx context.Context, id uint64) error {
	res, err := r.conn.ExecContext(ctx,
		"UPDATE stock_transaction SET deleted_at = NULL WHERE id = ? AND deleted_at IS NOT NULL", id)
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

// HardDelete removes the row irreversibly. Callers gate this more strictly than
// Archive.
func (r *SQL) HardDelete(ctx context.Context, id uint64) error {
	res, err := r.conn.ExecContext(ctx, "DELETE FROM stock_transaction WHERE id = ?", id)
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
