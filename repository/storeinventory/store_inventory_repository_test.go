package storeinventory

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/andikapratama/stockledger/constant"
)

func TestWeightedAverageCost(t *testing.T) {
	tests := []struct {
		name    string
		oldQty  int64
		oldCost float64
		addQty  int64
		addCost float64
		want    float64
	}{
		{name: "equal batches average evenly", oldQty: 5, oldCost: 10, addQty: 5, addCost: 20, want: 15},
		{name: "larger existing batch dominates", oldQty: 9, oldCost: 10, addQty: 1, addCost: 20, want: 11},
		{name: "empty row takes the incoming cost", oldQty: 0, oldCost: 0, addQty: 4, addCost: 12.5, want: 12.5},
		{name: "same cost stays put", oldQty: 3, oldCost: 7, addQty: 2, addCost: 7, want: 7},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := weightedAverageCost(tt.oldQty, tt.oldCost, tt.addQty, tt.addCost); got != tt.want {
				t.Fatalf("weightedAverageCost(%d, %v, %d, %v) = %v, want %v",
					tt.oldQty, tt.oldCost, tt.addQty, tt.addCost, got, tt.want)
			}
		})
	}
}

func TestSumQuantityByItem_SkipsReturnedRows(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()
	conn := sqlx.NewDb(db, "sqlmock")

	// A RETURNED row's quantity already went back into the warehouse count, so the
	// availability sum must not count it a second time.
	mock.ExpectQuery("SELECT COALESCE(SUM(quantity),0) FROM store_inventory WHERE inventory_item_id = ? AND deleted_at IS NULL AND status != ?").
		WithArgs(int64(7), string(constant.StoreInventoryStatusReturned)).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(int64(8)))

	r := NewStoreInventoryRepository(conn)
	got, err := r.SumQuantityByItem(context.Background(), 7)
	if err != nil {
		t.Fatalf("SumQuantityByItem() error = %v", err)
	}
	if got != 8 {
		t.Fatalf("SumQuantityByItem() = %d, want 8", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
