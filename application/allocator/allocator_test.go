package allocator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/andikapratama/stockledger/constant"
	inventorymocks "github.com/andikapratama/stockledger/mocks/repository/inventory"
	purchaseordermocks "github.com/andikapratama/stockledger/mocks/repository/purchaseorder"
	salemocks "github.com/andikapratama/stockledger/mocks/repository/sale"
	cerr "github.com/andikapratama/stockledger/utils/errors"
	"github.com/stretchr/testify/mock"
)

func TestSmallestUnusedSuffix(t *testing.T) {
	tests := []struct {
		name     string
		assigned []string
		want     int
	}{
		{name: "empty set starts at one", assigned: nil, want: 1},
		{name: "gap is filled before the max", assigned: []string{"SKU-00001", "SKU-00003"}, want: 2},
		{name: "contiguous set extends", assigned: []string{"SKU-00001", "SKU-00002"}, want: 3},
		{name: "unordered input", assigned: []string{"SKU-00003", "SKU-00001", "SKU-00002"}, want: 4},
		{name: "duplicates do not advance twice", assigned: []string{"SKU-00001", "SKU-00001"}, want: 2},
		{name: "unparseable values are skipped", assigned: []string{"SKU-XYZ", "LEGACY-1", "SKU-00002"}, want: 1},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := smallestUnusedSuffix(tt.assigned, unitSKUPrefix); got != tt.want {
				t.Fatalf("smallestUnusedSuffix(%v) = %d, want %d", tt.assigned, got, tt.want)
			}
		})
	}
}

func TestParseSuffix(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{in: "PO-000042", want: 42},
		{in: "PO-1", want: 1},
		{in: "", want: 0},
		{in: "ORD-000042", want: 0},
		{in: "PO-abc", want: 0},
	}
	for _, tt := range tests {
		if got := parseSuffix(tt.in, purchaseOrderPrefix); got != tt.want {
			t.Fatalf("parseSuffix(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestAllocator_NextUnitSKUTx(t *testing.T) {
	tests := []struct {
		name     string
		assigned []string
		exclude  []string
		want     string
	}{
		{name: "gap filled", assigned: []string{"SKU-00001", "SKU-00003"}, want: "SKU-00002"},
		{
			name:     "collided candidates are skipped even when the scan does not show them",
			assigned: []string{"SKU-00001", "SKU-00003"},
			exclude:  []string{"SKU-00002"},
			want:     "SKU-00004",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			inventoryRepo := inventorymocks.NewInventoryRepository(t)
			a := &allocatorImpl{inventoryRepo: inventoryRepo, now: time.Now}

			tx := &sqlx.Tx{}
			inventoryRepo.On("ListAssignedUnitSKUsTx", mock.Anything, tx).
				Return(tt.assigned, nil).Once()

			got, err := a.NextUnitSKUTx(context.Background(), tx, tt.exclude)
			if err != nil {
				t.Fatalf("NextUnitSKUTx() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("NextUnitSKUTx() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAllocator_NextPurchaseOrderNumberTx(t *testing.T) {
	tests := []struct {
		name    string
		current string
		after   string
		want    string
	}{
		{name: "first number", current: "", want: "PO-000001"},
		{name: "monotonic after the max", current: "PO-000042", want: "PO-000043"},
		{
			name:    "collided candidate advances past a stale max",
			current: "PO-000042",
			after:   "PO-000043",
			want:    "PO-000044",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			purchaseOrderRepo := purchaseordermocks.NewPurchaseOrderRepository(t)
			a := &allocatorImpl{purchaseOrderRepo: purchaseOrderRepo, now: time.Now}

			tx := &sqlx.Tx{}
			purchaseOrderRepo.On("GetMaxOrderNumberTx", mock.Anything, tx).
				Return(tt.current, nil).Once()

			got, err := a.NextPurchaseOrderNumberTx(context.Background(), tx, tt.after)
			if err != nil {
				t.Fatalf("NextPurchaseOrderNumberTx() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("NextPurchaseOrderNumberTx() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAllocator_NewSaleOrderNumberTx(t *testing.T) {
	fixed := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	t.Run("success: timestamp plus token, collision regenerated", func(t *testing.T) {
		saleRepo := salemocks.NewSaleRepository(t)
		a := &allocatorImpl{saleRepo: saleRepo, now: func() time.Time { return fixed }}

		tx := &sqlx.Tx{}
		saleRepo.On("OrderNumberExistsTx", mock.Anything, tx, mock.Anything).Return(true, nil).Once()
		saleRepo.On("OrderNumberExistsTx", mock.Anything, tx, mock.Anything).Return(false, nil).Once()

		got, err := a.NewSaleOrderNumberTx(context.Background(), tx)
		if err != nil {
			t.Fatalf("NewSaleOrderNumberTx() error = %v", err)
		}
		if !strings.HasPrefix(got, "ORD-20260115120000-") {
			t.Fatalf("NewSaleOrderNumberTx() = %s, want ORD-20260115120000-* prefix", got)
		}
		token := strings.TrimPrefix(got, "ORD-20260115120000-")
		if len(token) != 6 || token != strings.ToUpper(token) {
			t.Fatalf("token = %q, want 6 uppercase characters", token)
		}
	})

	t.Run("error: exhausted after bounded attempts", func(t *testing.T) {
		saleRepo := salemocks.NewSaleRepository(t)
		a := &allocatorImpl{saleRepo: saleRepo, now: func() time.Time { return fixed }}

		tx := &sqlx.Tx{}
		saleRepo.On("OrderNumberExistsTx", mock.Anything, tx, mock.Anything).
			Return(true, nil).Times(MaxAllocationAttempts)

		_, err := a.NewSaleOrderNumberTx(context.Background(), tx)
		var ce cerr.CustomError
		if !errors.As(err, &ce) {
			t.Fatalf("error type = %T, want CustomError", err)
		}
		if ce.ErrorCode() != constant.ErrorTypeCode[constant.ErrAllocationExhausted] {
			t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[constant.ErrAllocationExhausted])
		}
	})
}
