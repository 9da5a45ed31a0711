package transfer

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/andikapratama/stockledger/constant"
	"github.com/andikapratama/stockledger/model"
	inventoryrepo "github.com/andikapratama/stockledger/repository/inventory"
	redisrepo "github.com/andikapratama/stockledger/repository/redis"
	storerepo "github.com/andikapratama/stockledger/repository/store"
	storeinventoryrepo "github.com/andikapratama/stockledger/repository/storeinventory"
	transactionrepo "github.com/andikapratama/stockledger/repository/transaction"
	txrepo "github.com/andikapratama/stockledger/repository/tx"
	"github.com/andikapratama/stockledger/thirdparty/rabbitmq"
	utilsContext "github.com/andikapratama/stockledger/utils/context"
	"github.com/andikapratama/stockledger/utils/errors"
	"github.com/andikapratama/stockledger/utils/logger"
	"go.uber.org/zap"
)

// TransferApp orchestrates the atomic multi-table stock movements between the
// warehouse and stores. Every operation runs in one transaction: location rows and
// the ledger entry commit together or not at all.
type TransferApp interface {
	TransferToStore(ctx context.Context, req *model.TransferToStoreRequest) (*model.TransferResult, error)
	TransferToWarehouse(ctx context.Context, req *model.TransferToWarehouseRequest) (*model.TransferResult, error)
	ReturnStoreItems(ctx context.Context, req *model.ReturnStoreItemsRequest) ([]model.ReturnResult, error)
}

type transferAppImpl struct {
	txRepo             txrepo.TxRepository
	storeRepo          storerepo.StoreRepository
	inventoryRepo      inventoryrepo.InventoryRepository
	storeInventoryRepo storeinventoryrepo.StoreInventoryRepository
	transactionRepo    transactionrepo.TransactionRepository
	cacheRepo          redisrepo.Repository
	publisher          *rabbitmq.Publisher
}

func NewTransferApp(txRepo txrepo.TxRepository, storeRepo storerepo.StoreRepository, inventoryRepo inventoryrepo.InventoryRepository, storeInventoryRepo storeinventoryrepo.StoreInventoryRepository, transactionRepo transactionrepo.TransactionRepository, cacheRepo redisrepo.Repository, publisher *rabbitmq.Publisher) TransferApp {
	return &transferAppImpl{
		txRepo:             txRepo,
		storeRepo:          storeRepo,
		inventoryRepo:      inventoryRepo,
		storeInventoryRepo: storeInventoryRepo,
		transactionRepo:    transactionRepo,
		cacheRepo:          cacheRepo,
		publisher:          publisher,
	}
}

func (s *transferAppImpl) TransferToStore(ctx context.Context, req *model.TransferToStoreRequest) (*model.TransferResult, error) {
	if req.Quantity <= 0 || req.TransferCost <= 0 {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	if err := s.checkStoreActive(ctx, req.StoreID); err != nil {
		return nil, err
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[TransferToStore] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	item, err := s.inventoryRepo.GetByIDTx(ctx, tx, req.InventoryItemID)
	if err != nil {
		logger.Error("[TransferToStore] get item", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if item == nil || item.DeletedAt.Valid {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	if err := s.inventoryRepo.DecrementQuantityTx(ctx, tx, req.InventoryItemID, req.Quantity); err != nil {
		if _, ok := errors.TypeOf(err); ok {
			return nil, err
		}
		logger.Error("[TransferToStore] decrement warehouse", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	storeInv, err := s.storeInventoryRepo.UpsertAddTx(ctx, tx, req.StoreID, req.InventoryItemID, req.Quantity, req.TransferCost)
	if err != nil {
		logger.Error("[TransferToStore] upsert store inventory", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	txn, err := s.recordTx(ctx, tx, &model.StockTransaction{
		InventoryItemID: req.InventoryItemID,
		Type:            constant.TransactionTypeTransferToStore,
		Quantity:        req.Quantity,
		Date:            time.Now(),
		ToStoreID:       sql.NullInt64{Int64: int64(req.StoreID), Valid: true},
		Notes:           req.Notes,
	})
	if err != nil {
		logger.Error("[TransferToStore] record transaction", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	item, err = s.inventoryRepo.GetByIDTx(ctx, tx, req.InventoryItemID)
	if err != nil {
		logger.Error("[TransferToStore] reload item", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[TransferToStore] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	s.afterCommit(ctx, txn)

	return &model.TransferResult{Item: item, StoreInventory: storeInv, Transaction: txn}, nil
}

func (s *transferAppImpl) TransferToWarehouse(ctx context.Context, req *model.TransferToWarehouseRequest) (*model.TransferResult, error) {
	if req.Quantity <= 0 {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	if err := s.checkStoreActive(ctx, req.StoreID); err != nil {
		return nil, err
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[TransferToWarehouse] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	storeInv, err := s.storeInventoryRepo.GetByStoreAndItemTx(ctx, tx, req.StoreID, req.InventoryItemID)
	if err != nil {
		logger.Error("[TransferToWarehouse] get store inventory", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if storeInv == nil {
		return nil, errors.SetCustomError(constant.ErrItemNotAtStore)
	}
	if storeInv.Status == constant.StoreInventoryStatusReturned {
		return nil, errors.SetCustomErrorWithDetail(constant.ErrInvalidStatus,
			"store inventory row was returned to the warehouse")
	}

	if err := s.storeInventoryRepo.DecrementQuantityTx(ctx, tx, storeInv.ID, req.Quantity); err != nil {
		if _, ok := errors.TypeOf(err); ok {
			return nil, err
		}
		logger.Error("[TransferToWarehouse] decrement store", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.inventoryRepo.IncrementQuantityTx(ctx, tx, req.InventoryItemID, req.Quantity); err != nil {
		if _, ok := errors.TypeOf(err); ok {
			return nil, err
		}
		logger.Error("[TransferToWarehouse] increment warehouse", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	txn, err := s.recordTx(ctx, tx, &model.StockTransaction{
		InventoryItemID: req.InventoryItemID,
		Type:            constant.TransactionTypeTransferFromStore,
		Quantity:        req.Quantity,
		Date:            time.Now(),
		FromStoreID:     sql.NullInt64{Int64: int64(req.StoreID), Valid: true},
		Notes:           req.Notes,
	})
	if err != nil {
		logger.Error("[TransferToWarehouse] record transaction", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	storeInv, err = s.storeInventoryRepo.GetByIDTx(ctx, tx, storeInv.ID)
	if err != nil {
		logger.Error("[TransferToWarehouse] reload store inventory", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	item, err := s.inventoryRepo.GetByIDTx(ctx, tx, req.InventoryItemID)
	if err != nil {
		logger.Error("[TransferToWarehouse] reload item", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[TransferToWarehouse] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	s.afterCommit(ctx, txn)

	return &model.TransferResult{Item: item, StoreInventory: storeInv, Transaction: txn}, nil
}

// ReturnStoreItems moves whole StoreInventory rows back to the warehouse. Rows must
// be IN_STOCK; each one is marked RETURNED (quantity kept as history) and its
// warehouse item restored if soft-deleted in the meantime.
func (s *transferAppImpl) ReturnStoreItems(ctx context.Context, req *model.ReturnStoreItemsRequest) ([]model.ReturnResult, error) {
	if len(req.StoreInventoryIDs) == 0 {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	if err := s.checkStoreActive(ctx, req.StoreID); err != nil {
		return nil, err
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[ReturnStoreItems] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	results := make([]model.ReturnResult, 0, len(req.StoreInventoryIDs))
	txns := make([]*model.StockTransaction, 0, len(req.StoreInventoryIDs))

	for _, siID := range req.StoreInventoryIDs {
		storeInv, err := s.storeInventoryRepo.GetByIDTx(ctx, tx, siID)
		if err != nil {
			logger.Error("[ReturnStoreItems] get store inventory", zap.Uint64("store_inventory_id", siID), zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		if storeInv == nil || storeInv.StoreID != req.StoreID {
			return nil, errors.SetCustomError(constant.ErrNotFound)
		}
		if storeInv.Status != constant.StoreInventoryStatusInStock {
			return nil, errors.SetCustomErrorWithDetail(constant.ErrInvalidStatus,
				"store inventory row is not in stock")
		}

		if err := s.storeInventoryRepo.SetStatusTx(ctx, tx, siID, constant.StoreInventoryStatusReturned); err != nil {
			logger.Error("[ReturnStoreItems] mark returned", zap.Uint64("store_inventory_id", siID), zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}

		item, err := s.inventoryRepo.GetByIDTx(ctx, tx, storeInv.InventoryItemID)
		if err != nil {
			logger.Error("[ReturnStoreItems] get item", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		if item == nil {
			return nil, errors.SetCustomError(constant.ErrNotFound)
		}

		if item.DeletedAt.Valid {
			if err := s.inventoryRepo.RestoreTx(ctx, tx, item.ID); err != nil {
				logger.Error("[ReturnStoreItems] restore item", zap.String("error", err.Error()))
				return nil, errors.SetCustomError(constant.ErrInternal)
			}
		}
		if err := s.inventoryRepo.IncrementQuantityTx(ctx, tx, item.ID, storeInv.Quantity); err != nil {
			logger.Error("[ReturnStoreItems] increment warehouse", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}

		txn, err := s.recordTx(ctx, tx, &model.StockTransaction{
			InventoryItemID: item.ID,
			Type:            constant.TransactionTypeTransferFromStore,
			Quantity:        storeInv.Quantity,
			Date:            time.Now(),
			FromStoreID:     sql.NullInt64{Int64: int64(req.StoreID), Valid: true},
			Notes:           req.Notes,
		})
		if err != nil {
			logger.Error("[ReturnStoreItems] record transaction", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		txns = append(txns, txn)

		storeInv, err = s.storeInventoryRepo.GetByIDTx(ctx, tx, siID)
		if err != nil {
			logger.Error("[ReturnStoreItems] reload store inventory", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		item, err = s.inventoryRepo.GetByIDTx(ctx, tx, item.ID)
		if err != nil {
			logger.Error("[ReturnStoreItems] reload item", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}

		results = append(results, model.ReturnResult{StoreInventory: storeInv, Item: item, Transaction: txn})
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[ReturnStoreItems] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	for _, txn := range txns {
		s.afterCommit(ctx, txn)
	}

	return results, nil
}

func (s *transferAppImpl) checkStoreActive(ctx context.Context, storeID uint64) error {
	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		logger.Error("[checkStoreActive] get store", zap.Uint64("store_id", storeID), zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if store == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	if store.Status != constant.StoreStatusActive {
		return errors.SetCustomError(constant.ErrStoreInactive)
	}
	return nil
}

// recordTx appends the ledger entry with actor attribution from the request context.
func (s *transferAppImpl) recordTx(ctx context.Context, tx *sqlx.Tx, txn *model.StockTransaction) (*model.StockTransaction, error) {
	if actorID, ok := utilsContext.GetActorID(ctx); ok {
		txn.ActorID = sql.NullInt64{Int64: int64(actorID), Valid: true}
	}
	id, err := s.transactionRepo.InsertTx(ctx, tx, txn)
	if err != nil {
		return nil, err
	}
	txn.ID = id
	return txn, nil
}

// afterCommit publishes the movement event and drops the cached availability
// snapshot. Both are best-effort: the tx has already committed.
func (s *transferAppImpl) afterCommit(ctx context.Context, txn *model.StockTransaction) {
	if s.cacheRepo != nil {
		if err := s.cacheRepo.InvalidateItemAvailability(ctx, txn.InventoryItemID); err != nil {
			logger.Warn("[afterCommit] invalidate availability cache", zap.String("error", err.Error()))
		}
	}
	if s.publisher == nil {
		return
	}
	msg := rabbitmq.StockMovementMessage{
		TransactionID:   txn.ID,
		InventoryItemID: txn.InventoryItemID,
		Type:            txn.Type,
		Quantity:        txn.Quantity,
		OccurredAt:      txn.Date,
	}
	if txn.FromStoreID.Valid {
		from := uint64(txn.FromStoreID.Int64)
		msg.FromStoreID = &from
	}
	if txn.ToStoreID.Valid {
		to := uint64(txn.ToStoreID.Int64)
		msg.ToStoreID = &to
	}
	if err := s.publisher.PublishStockMovement(msg); err != nil {
		logger.Error("[afterCommit] publish stock movement", zap.String("error", err.Error()))
	}
}
