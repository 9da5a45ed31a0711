package fulfillment_test

import (
	"context"
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	appfulfillment "github.com/andikapratama/stockledger/application/fulfillment"
	"github.com/andikapratama/stockledger/constant"
	allocatormocks "github.com/andikapratama/stockledger/mocks/application/allocator"
	inventorymocks "github.com/andikapratama/stockledger/mocks/repository/inventory"
	purchaseordermocks "github.com/andikapratama/stockledger/mocks/repository/purchaseorder"
	transactionmocks "github.com/andikapratama/stockledger/mocks/repository/transaction"
	txmocks "github.com/andikapratama/stockledger/mocks/repository/tx"
	"github.com/andikapratama/stockledger/model"
	cerr "github.com/andikapratama/stockledger/utils/errors"
	"github.com/stretchr/testify/mock"
)

func TestFulfillmentApp_CreatePurchaseOrder(t *testing.T) {
	type fields struct {
		txRepo            *txmocks.TxRepository
		purchaseOrderRepo *purchaseordermocks.PurchaseOrderRepository
		inventoryRepo     *inventorymocks.InventoryRepository
		transactionRepo   *transactionmocks.TransactionRepository
		alloc             *allocatormocks.Allocator
	}
	type args struct {
		ctx context.Context
		req *model.CreatePurchaseOrderRequest
	}
	items := []model.PurchaseOrderItemRequest{
		{ProductID: 3, SKU: "AJ1-BRED", Size: "42", ItemCondition: "new", UnitCost: 90, Quantity: 2},
	}
	tests := []struct {
		name     string
		fields   fields
		args     args
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: order number allocated and lines inserted",
			fields: fields{
				txRepo:            txmocks.NewTxRepository(t),
				purchaseOrderRepo: purchaseordermocks.NewPurchaseOrderRepository(t),
				inventoryRepo:     inventorymocks.NewInventoryRepository(t),
				transactionRepo:   transactionmocks.NewTransactionRepository(t),
				alloc:             allocatormocks.NewAllocator(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.CreatePurchaseOrderRequest{Vendor: "Acme Sneakers", Items: items},
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				f.alloc.On("NextPurchaseOrderNumberTx", mock.Anything, tx, "").
					Return("PO-000042", nil).Once()
				f.purchaseOrderRepo.On("InsertTx", mock.Anything, tx, mock.MatchedBy(func(po *model.PurchaseOrder) bool {
					return po.OrderNumber == "PO-000042" && po.Status == constant.PurchaseOrderStatusPending
				})).Return(uint64(9), nil).Once()
				f.purchaseOrderRepo.On("InsertItemsTx", mock.Anything, tx, uint64(9), items).
					Return(nil).Once()

				f.purchaseOrderRepo.On("GetByID", mock.Anything, uint64(9)).
					Return(&model.PurchaseOrder{ID: 9, OrderNumber: "PO-000042", Vendor: "Acme Sneakers", Status: constant.PurchaseOrderStatusPending}, nil).Once()
			},
			wantErr: false,
		},
		{
			name: "success: concurrent number claim retried with the next one",
			fields: fields{
				txRepo:            txmocks.NewTxRepository(t),
				purchaseOrderRepo: purchaseordermocks.NewPurchaseOrderRepository(t),
				inventoryRepo:     inventorymocks.NewInventoryRepository(t),
				transactionRepo:   transactionmocks.NewTransactionRepository(t),
				alloc:             allocatormocks.NewAllocator(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.CreatePurchaseOrderRequest{Vendor: "Acme Sneakers", Items: items},
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				f.alloc.On("NextPurchaseOrderNumberTx", mock.Anything, tx, "").
					Return("PO-000042", nil).Once()
				f.purchaseOrderRepo.On("InsertTx", mock.Anything, tx, mock.Anything).
					Return(uint64(0), &mysql.MySQLError{Number: 1062}).Once()

				f.alloc.On("NextPurchaseOrderNumberTx", mock.Anything, tx, "PO-000042").
					Return("PO-000043", nil).Once()
				f.purchaseOrderRepo.On("InsertTx", mock.Anything, tx, mock.MatchedBy(func(po *model.PurchaseOrder) bool {
					return po.OrderNumber == "PO-000043"
				})).Return(uint64(10), nil).Once()
				f.purchaseOrderRepo.On("InsertItemsTx", mock.Anything, tx, uint64(10), items).
					Return(nil).Once()

				f.purchaseOrderRepo.On("GetByID", mock.Anything, uint64(10)).
					Return(&model.PurchaseOrder{ID: 10, OrderNumber: "PO-000043", Status: constant.PurchaseOrderStatusPending}, nil).Once()
			},
			wantErr: false,
		},
		{
			name: "error: empty item list",
			fields: fields{
				txRepo:            txmocks.NewTxRepository(t),
				purchaseOrderRepo: purchaseordermocks.NewPurchaseOrderRepository(t),
				inventoryRepo:     inventorymocks.NewInventoryRepository(t),
				transactionRepo:   transactionmocks.NewTransactionRepository(t),
				alloc:             allocatormocks.NewAllocator(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.CreatePurchaseOrderRequest{Vendor: "Acme Sneakers"},
			},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appfulfillment.NewFulfillmentApp(tt.fields.txRepo, tt.fields.purchaseOrderRepo, tt.fields.inventoryRepo, tt.fields.transactionRepo, tt.fields.alloc)

			got, err := app.CreatePurchaseOrder(tt.args.ctx, tt.args.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CreatePurchaseOrder() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}

			if got.Status != constant.PurchaseOrderStatusPending {
				t.Fatalf("status = %s, want %s", got.Status, constant.PurchaseOrderStatusPending)
			}
		})
	}
}

func TestFulfillmentApp_DeliverPurchaseOrder(t *testing.T) {
	type fields struct {
		txRepo            *txmocks.TxRepository
		purchaseOrderRepo *purchaseordermocks.PurchaseOrderRepository
		inventoryRepo     *inventorymocks.InventoryRepository
		transactionRepo   *transactionmocks.TransactionRepository
		alloc             *allocatormocks.Allocator
	}
	type args struct {
		ctx  context.Context
		poID uint64
	}
	tests := []struct {
		name      string
		fields    fields
		args      args
		mockCall  func(f fields)
		wantErr   bool
		errCode   constant.ErrorType
		wantUnits int
	}{
		{
			name: "success: two ordered units become two unit-tracked items",
			fields: fields{
				txRepo:            txmocks.NewTxRepository(t),
				purchaseOrderRepo: purchaseordermocks.NewPurchaseOrderRepository(t),
				inventoryRepo:     inventorymocks.NewInventoryRepository(t),
				transactionRepo:   transactionmocks.NewTransactionRepository(t),
				alloc:             allocatormocks.NewAllocator(t),
			},
			args: args{ctx: context.Background(), poID: 9},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				f.purchaseOrderRepo.On("GetByIDTx", mock.Anything, tx, uint64(9)).
					Return(&model.PurchaseOrder{ID: 9, OrderNumber: "PO-000042", Status: constant.PurchaseOrderStatusPending}, nil).Once()
				f.purchaseOrderRepo.On("MarkDeliveredTx", mock.Anything, tx, uint64(9), mock.Anything).
					Return(nil).Once()
				f.purchaseOrderRepo.On("GetItemsTx", mock.Anything, tx, uint64(9)).
					Return([]model.PurchaseOrderItem{
						{ID: 21, PurchaseOrderID: 9, ProductID: 3, SKU: "AJ1-BRED", Size: "42", ItemCondition: "new", UnitCost: 90, QuantityOrdered: 2},
					}, nil).Once()

				f.alloc.On("NextUnitSKUTx", mock.Anything, tx, []string(nil)).Return("SKU-00001", nil).Once()
				f.inventoryRepo.On("InsertTx", mock.Anything, tx, mock.MatchedBy(func(it *model.NewInventoryItem) bool {
					return it.UnitSKU == "SKU-00001" && it.Quantity == 1 && it.PurchaseOrderID == 9
				})).Return(uint64(11), nil).Once()
				f.inventoryRepo.On("GetByIDTx", mock.Anything, tx, uint64(11)).
					Return(&model.InventoryItem{ID: 11, Quantity: 1}, nil).Once()

				f.alloc.On("NextUnitSKUTx", mock.Anything, tx, []string(nil)).Return("SKU-00002", nil).Once()
				f.inventoryRepo.On("InsertTx", mock.Anything, tx, mock.MatchedBy(func(it *model.NewInventoryItem) bool {
					return it.UnitSKU == "SKU-00002" && it.Quantity == 1
				})).Return(uint64(12), nil).Once()
				f.inventoryRepo.On("GetByIDTx", mock.Anything, tx, uint64(12)).
					Return(&model.InventoryItem{ID: 12, Quantity: 1}, nil).Once()

				f.transactionRepo.On("InsertTx", mock.Anything, tx, mock.MatchedBy(func(txn *model.StockTransaction) bool {
					return txn.Type == constant.TransactionTypeIn && txn.Quantity == 1
				})).Return(uint64(200), nil).Times(2)
			},
			wantErr:   false,
			wantUnits: 2,
		},
		{
			name: "success: first two unit SKUs collide, third attempt sticks",
			fields: fields{
				txRepo:            txmocks.NewTxRepository(t),
				purchaseOrderRepo: purchaseordermocks.NewPurchaseOrderRepository(t),
				inventoryRepo:     inventorymocks.NewInventoryRepository(t),
				transactionRepo:   transactionmocks.NewTransactionRepository(t),
				alloc:             allocatormocks.NewAllocator(t),
			},
			args: args{ctx: context.Background(), poID: 9},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				f.purchaseOrderRepo.On("GetByIDTx", mock.Anything, tx, uint64(9)).
					Return(&model.PurchaseOrder{ID: 9, OrderNumber: "PO-000042", Status: constant.PurchaseOrderStatusPending}, nil).Once()
				f.purchaseOrderRepo.On("MarkDeliveredTx", mock.Anything, tx, uint64(9), mock.Anything).
					Return(nil).Once()
				f.purchaseOrderRepo.On("GetItemsTx", mock.Anything, tx, uint64(9)).
					Return([]model.PurchaseOrderItem{
						{ID: 21, PurchaseOrderID: 9, ProductID: 3, SKU: "AJ1-BRED", UnitCost: 90, QuantityOrdered: 1},
					}, nil).Once()

				f.alloc.On("NextUnitSKUTx", mock.Anything, tx, []string(nil)).
					Return("SKU-00002", nil).Once()
				f.inventoryRepo.On("InsertTx", mock.Anything, tx, mock.MatchedBy(func(it *model.NewInventoryItem) bool {
					return it.UnitSKU == "SKU-00002"
				})).Return(uint64(0), &mysql.MySQLError{Number: 1062}).Once()

				f.alloc.On("NextUnitSKUTx", mock.Anything, tx, []string{"SKU-00002"}).
					Return("SKU-00003", nil).Once()
				f.inventoryRepo.On("InsertTx", mock.Anything, tx, mock.MatchedBy(func(it *model.NewInventoryItem) bool {
					return it.UnitSKU == "SKU-00003"
				})).Return(uint64(0), &mysql.MySQLError{Number: 1062}).Once()

				f.alloc.On("NextUnitSKUTx", mock.Anything, tx, []string{"SKU-00002", "SKU-00003"}).
					Return("SKU-00004", nil).Once()
				f.inventoryRepo.On("InsertTx", mock.Anything, tx, mock.MatchedBy(func(it *model.NewInventoryItem) bool {
					return it.UnitSKU == "SKU-00004"
				})).Return(uint64(11), nil).Once()
				f.inventoryRepo.On("GetByIDTx", mock.Anything, tx, uint64(11)).
					Return(&model.InventoryItem{ID: 11, Quantity: 1}, nil).Once()

				f.transactionRepo.On("InsertTx", mock.Anything, tx, mock.Anything).
					Return(uint64(200), nil).Once()
			},
			wantErr:   false,
			wantUnits: 1,
		},
		{
			name: "error: already delivered",
			fields: fields{
				txRepo:            txmocks.NewTxRepository(t),
				purchaseOrderRepo: purchaseordermocks.NewPurchaseOrderRepository(t),
				inventoryRepo:     inventorymocks.NewInventoryRepository(t),
				transactionRepo:   transactionmocks.NewTransactionRepository(t),
				alloc:             allocatormocks.NewAllocator(t),
			},
			args: args{ctx: context.Background(), poID: 9},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.purchaseOrderRepo.On("GetByIDTx", mock.Anything, tx, uint64(9)).
					Return(&model.PurchaseOrder{ID: 9, Status: constant.PurchaseOrderStatusDelivered}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrAlreadyDelivered,
		},
		{
			name: "error: unknown order",
			fields: fields{
				txRepo:            txmocks.NewTxRepository(t),
				purchaseOrderRepo: purchaseordermocks.NewPurchaseOrderRepository(t),
				inventoryRepo:     inventorymocks.NewInventoryRepository(t),
				transactionRepo:   transactionmocks.NewTransactionRepository(t),
				alloc:             allocatormocks.NewAllocator(t),
			},
			args: args{ctx: context.Background(), poID: 404},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.purchaseOrderRepo.On("GetByIDTx", mock.Anything, tx, uint64(404)).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
		{
			name: "error: SKU allocation exhausted rolls back the delivery",
			fields: fields{
				txRepo:            txmocks.NewTxRepository(t),
				purchaseOrderRepo: purchaseordermocks.NewPurchaseOrderRepository(t),
				inventoryRepo:     inventorymocks.NewInventoryRepository(t),
				transactionRepo:   transactionmocks.NewTransactionRepository(t),
				alloc:             allocatormocks.NewAllocator(t),
			},
			args: args{ctx: context.Background(), poID: 9},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.purchaseOrderRepo.On("GetByIDTx", mock.Anything, tx, uint64(9)).
					Return(&model.PurchaseOrder{ID: 9, OrderNumber: "PO-000042", Status: constant.PurchaseOrderStatusPending}, nil).Once()
				f.purchaseOrderRepo.On("MarkDeliveredTx", mock.Anything, tx, uint64(9), mock.Anything).
					Return(nil).Once()
				f.purchaseOrderRepo.On("GetItemsTx", mock.Anything, tx, uint64(9)).
					Return([]model.PurchaseOrderItem{
						{ID: 21, PurchaseOrderID: 9, ProductID: 3, SKU: "AJ1-BRED", UnitCost: 90, QuantityOrdered: 1},
					}, nil).Once()

				f.alloc.On("NextUnitSKUTx", mock.Anything, tx, mock.Anything).
					Return("SKU-00001", nil).Times(5)
				f.inventoryRepo.On("InsertTx", mock.Anything, tx, mock.Anything).
					Return(uint64(0), &mysql.MySQLError{Number: 1062}).Times(5)
			},
			wantErr: true,
			errCode: constant.ErrAllocationExhausted,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appfulfillment.NewFulfillmentApp(tt.fields.txRepo, tt.fields.purchaseOrderRepo, tt.fields.inventoryRepo, tt.fields.transactionRepo, tt.fields.alloc)

			got, err := app.DeliverPurchaseOrder(tt.args.ctx, tt.args.poID)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DeliverPurchaseOrder() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}

			if got.PurchaseOrder.Status != constant.PurchaseOrderStatusDelivered {
				t.Fatalf("status = %s, want %s", got.PurchaseOrder.Status, constant.PurchaseOrderStatusDelivered)
			}
			if !got.PurchaseOrder.DeliveredAt.Valid {
				t.Fatal("delivered_at should be set")
			}
			if len(got.InventoryItems) != tt.wantUnits {
				t.Fatalf("created items = %d, want %d", len(got.InventoryItems), tt.wantUnits)
			}
		})
	}
}
