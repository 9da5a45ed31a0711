package store

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/andikapratama/stockledger/model"
)

type SQL struct {
	conn *sqlx.DB
}

// StoreRepository is read-only: store rows are owned by an external CRUD surface,
// this service only checks existence and status before moving stock.
type StoreRepository interface {
	GetByID(ctx context.Context, id uint64) (*model.Store, error)
}

func NewStoreRepository(conn *sqlx.DB) StoreRepository {
	return &SQL{conn: conn}
}

func (r *SQL) GetByID(ctx context.Context, id uint64) (*model.Store, error) {
	var st model.Store
	if err := r.conn.GetContext(ctx, &st, "SELECT id, name, status FROM store WHERE id = ?", id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &st, nil
}
