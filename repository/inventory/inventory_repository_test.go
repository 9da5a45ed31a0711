package inventory

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func TestListAssignedUnitSKUsTx_LockingRead(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()
	conn := sqlx.NewDb(db, "sqlmock")

	mock.ExpectBegin()
	tx, err := conn.Beginx()
	if err != nil {
		t.Fatalf("Beginx() error = %v", err)
	}

	// The scan must lock so a collision retry inside the same transaction sees
	// concurrently committed SKUs instead of its original read view.
	mock.ExpectQuery("SELECT unit_sku FROM inventory_item WHERE unit_sku IS NOT NULL FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"unit_sku"}).AddRow("SKU-00001").AddRow("SKU-00003"))

	r := NewInventoryRepository(conn)
	got, err := r.ListAssignedUnitSKUsTx(context.Background(), tx)
	if err != nil {
		t.Fatalf("ListAssignedUnitSKUsTx() error = %v", err)
	}
	if len(got) != 2 || got[0] != "SKU-00001" || got[1] != "SKU-00003" {
		t.Fatalf("ListAssignedUnitSKUsTx() = %v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
