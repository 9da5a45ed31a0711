package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	appinventory "github.com/andikapratama/stockledger/application/inventory"
	"github.com/andikapratama/stockledger/constant"
	inventorymocks "github.com/andikapratama/stockledger/mocks/repository/inventory"
	redismocks "github.com/andikapratama/stockledger/mocks/repository/redis"
	storeinventorymocks "github.com/andikapratama/stockledger/mocks/repository/storeinventory"
	txmocks "github.com/andikapratama/stockledger/mocks/repository/tx"
	"github.com/andikapratama/stockledger/model"
	cerr "github.com/andikapratama/stockledger/utils/errors"
	"github.com/stretchr/testify/mock"
)

func TestInventoryApp_GetItemAvailability(t *testing.T) {
	type fields struct {
		txRepo             *txmocks.TxRepository
		inventoryRepo      *inventorymocks.InventoryRepository
		storeInventoryRepo *storeinventorymocks.StoreInventoryRepository
		cacheRepo          *redismocks.Repository
	}
	tests := []struct {
		name     string
		fields   fields
		itemID   uint64
		mockCall func(f fields)
		want     *model.ItemAvailability
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: cache hit skips the database",
			fields: fields{
				txRepo:             txmocks.NewTxRepository(t),
				inventoryRepo:      inventorymocks.NewInventoryRepository(t),
				storeInventoryRepo: storeinventorymocks.NewStoreInventoryRepository(t),
				cacheRepo:          redismocks.NewRepository(t),
			},
			itemID: 7,
			mockCall: func(f fields) {
				f.cacheRepo.On("GetItemAvailability", mock.Anything, uint64(7)).
					Return(&model.ItemAvailability{ItemID: 7, WarehouseQuantity: 10, StoreQuantity: 5}, nil).Once()
			},
			want: &model.ItemAvailability{ItemID: 7, WarehouseQuantity: 10, StoreQuantity: 5},
		},
		{
			name: "success: miss rebuilds from warehouse and store rows and caches it",
			fields: fields{
				txRepo:             txmocks.NewTxRepository(t),
				inventoryRepo:      inventorymocks.NewInventoryRepository(t),
				storeInventoryRepo: storeinventorymocks.NewStoreInventoryRepository(t),
				cacheRepo:          redismocks.NewRepository(t),
			},
			itemID: 7,
			mockCall: func(f fields) {
				f.cacheRepo.On("GetItemAvailability", mock.Anything, uint64(7)).
					Return(nil, nil).Once()

				f.inventoryRepo.On("GetByID", mock.Anything, uint64(7)).
					Return(&model.InventoryItem{ID: 7, Quantity: 12}, nil).Once()
				f.storeInventoryRepo.On("SumQuantityByItem", mock.Anything, uint64(7)).
					Return(int64(8), nil).Once()

				f.cacheRepo.On("SetItemAvailability", mock.Anything, &model.ItemAvailability{ItemID: 7, WarehouseQuantity: 12, StoreQuantity: 8}).
					Return(nil).Once()
			},
			want: &model.ItemAvailability{ItemID: 7, WarehouseQuantity: 12, StoreQuantity: 8},
		},
		{
			name: "error: unknown item",
			fields: fields{
				txRepo:             txmocks.NewTxRepository(t),
				inventoryRepo:      inventorymocks.NewInventoryRepository(t),
				storeInventoryRepo: storeinventorymocks.NewStoreInventoryRepository(t),
				cacheRepo:          redismocks.NewRepository(t),
			},
			itemID: 404,
			mockCall: func(f fields) {
				f.cacheRepo.On("GetItemAvailability", mock.Anything, uint64(404)).
					Return(nil, nil).Once()
				f.inventoryRepo.On("GetByID", mock.Anything, uint64(404)).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appinventory.NewInventoryApp(tt.fields.txRepo, tt.fields.inventoryRepo, tt.fields.storeInventoryRepo, tt.fields.cacheRepo)

			got, err := app.GetItemAvailability(context.Background(), tt.itemID)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GetItemAvailability() error = %v, wantErr %v", err, tt.wantErr)
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

			if *got != *tt.want {
				t.Fatalf("GetItemAvailability() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestInventoryApp_RestoreItem(t *testing.T) {
	type fields struct {
		txRepo             *txmocks.TxRepository
		inventoryRepo      *inventorymocks.InventoryRepository
		storeInventoryRepo *storeinventorymocks.StoreInventoryRepository
	}
	tests := []struct {
		name     string
		fields   fields
		itemID   uint64
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "error: restoring an item that is not deleted",
			fields: fields{
				txRepo:             txmocks.NewTxRepository(t),
				inventoryRepo:      inventorymocks.NewInventoryRepository(t),
				storeInventoryRepo: storeinventorymocks.NewStoreInventoryRepository(t),
			},
			itemID: 7,
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.inventoryRepo.On("GetByIDTx", mock.Anything, tx, uint64(7)).
					Return(&model.InventoryItem{ID: 7, Status: constant.InventoryStatusInStock}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidStatus,
		},
		{
			name: "success: deleted item restored in one transaction",
			fields: fields{
				txRepo:             txmocks.NewTxRepository(t),
				inventoryRepo:      inventorymocks.NewInventoryRepository(t),
				storeInventoryRepo: storeinventorymocks.NewStoreInventoryRepository(t),
			},
			itemID: 7,
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				deleted := &model.InventoryItem{ID: 7, Status: constant.InventoryStatusDeleted}
				deleted.DeletedAt.Valid = true
				f.inventoryRepo.On("GetByIDTx", mock.Anything, tx, uint64(7)).
					Return(deleted, nil).Once()
				f.inventoryRepo.On("RestoreTx", mock.Anything, tx, uint64(7)).Return(nil).Once()
			},
			wantErr: false,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appinventory.NewInventoryApp(tt.fields.txRepo, tt.fields.inventoryRepo, tt.fields.storeInventoryRepo, nil)

			err := app.RestoreItem(context.Background(), tt.itemID)
			if (err != nil) != tt.wantErr {
				t.Fatalf("RestoreItem() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
			}
		})
	}
}
