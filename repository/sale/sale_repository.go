package sale

import (
	"context"
	"database/sql"
	"errors"

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

type SaleRepository interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, s *model.Sale) (uint64, error)
	GetByID(ctx context.Context, id uint64) (*model.Sale, error)
	GetByIDTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.Sale, error)
	OrderNumberExistsTx(ctx context.Context, tx *sqlx.Tx, orderNumber string) (bool, error)
	MarkRefundedTx(ctx context.Context, tx *sqlx.Tx, id uint64) error
}

func NewSaleRepository(conn *sqlx.DB) SaleRepository {
	return &SQL{conn: conn}
}

// IsDuplicateOrderNumber reports a unique-key collision on the sale order number.
func IsDuplicateOrderNumber(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlErrDuplicateEntry
}

func (r *SQL) InsertTx(ctx context.Context, tx *sqlx.Tx, s *model.Sale) (uint64, error) {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO sale (store_id, inventory_item_id, order_number, quantity, cost, payout, discount, payout_method, status, sale_date, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.StoreID, s.InventoryItemID, s.OrderNumber, s.Quantity, s.Cost, s.Payout,
		s.Discount, s.PayoutMethod, constant.SaleStatusCompleted, s.SaleDate, s.Notes,
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

const getSaleBase = `SELECT id, store_id, inventory_item_id, order_number, quantity, cost, payout, discount, payout_method, status, sale_date, notes, created_at
FROM sale`

func (r *SQL) GetByID(ctx context.Context, id uint64) (*model.Sale, error) {
	var s model.Sale
	if err := r.conn.GetContext(ctx, &s, getSaleBase+" WHERE id = ?", id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SQL) GetByIDTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.Sale, error) {
	var s model.Sale
	if err := tx.GetContext(ctx, &s, getSaleBase+" WHERE id = ? FOR UPDATE", id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SQL) OrderNumberExistsTx(ctx context.Context, tx *sqlx.Tx, orderNumber string) (bool, error) {
	var count int64
	if err := tx.GetContext(ctx, &count, "SELECT COUNT(*) FROM sale WHERE order_number = ?", orderNumber); err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkRefundedTx transitions COMPLETED → REFUNDED conditionally; refunding an
// already-refunded sale affects zero rows and is rejected.
func (r *SQL) MarkRefundedTx(ctx context.Context, tx *sqlx.Tx, id uint64) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE sale SET status = ? WHERE id = ? AND status = ?",
		constant.SaleStatusRefunded, id, constant.SaleStatusCompleted)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return cerr.SetCustomError(constant.ErrInvalidStatus)
	}
	return nil
}
