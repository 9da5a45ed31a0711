package ledgerentry

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/andikapratama/stockledger/constant"
	"github.com/andikapratama/stockledger/model"
	inventoryrepo "github.com/andikapratama/stockledger/repository/inventory"
	redisrepo "github.com/andikapratama/stockledger/repository/redis"
	storeinventoryrepo "github.com/andikapratama/stockledger/repository/storeinventory"
	transactionrepo "github.com/andikapratama/stockledger/repository/transaction"
	txrepo "github.com/andikapratama/stockledger/repository/tx"
	utilsContext "github.com/andikapratama/stockledger/utils/context"
	"github.com/andikapratama/stockledger/utils/errors"
	"github.com/andikapratama/stockledger/utils/logger"
	"go.uber.org/zap"
)

// LedgerEntryApp is the lower-level movement entry point: a caller records any
// ledger type directly and the matching warehouse/store deltas are applied in the
// same transaction. Archive and hard delete are the only mutations a recorded entry
// ever sees.
type LedgerEntryApp interface {
	RecordTransaction(ctx context.Context, req *model.RecordTransactionRequest) (*model.StockTransaction, error)
	ArchiveTransaction(ctx context.Context, id uint64) error
	RestoreTransaction(ctx context.Context, id uint64) error
	DeleteTransactionHard(ctx context.Context, id uint64) error
	ListItemTransactions(ctx context.Context, itemID uint64) ([]model.StockTransaction, error)
}

type ledgerEntryAppImpl struct {
	txRepo             txrepo.TxRepository
	inventoryRepo      inventoryrepo.InventoryRepository
	storeInventoryRepo storeinventoryrepo.StoreInventoryRepository
	transactionRepo    transactionrepo.TransactionRepository
	cacheRepo          redisrepo.Repository
}

func NewLedgerEntryApp(txRepo txrepo.TxRepository, inventoryRepo inventoryrepo.InventoryRepository, storeInventoryRepo storeinventoryrepo.StoreInventoryRepository, transactionRepo transactionrepo.TransactionRepository, cacheRepo redisrepo.Repository) LedgerEntryApp {
	return &ledgerEntryAppImpl{
		txRepo:             txRepo,
		inventoryRepo:      inventoryRepo,
		storeInventoryRepo: storeInventoryRepo,
		transactionRepo:    transactionRepo,
		cacheRepo:          cacheRepo,
	}
}

// movement is the closed tagged variant behind the generic endpoint: each ledger
// type carries exactly the store references it needs and the deltas it applies.
type movement struct {
	requiresFromStore bool
	requiresToStore   bool

	// warehouse effect: +1 adds, -1 subtracts (guarded), 0 leaves untouched.
	// ADJUSTMENT is special-cased to set the quantity directly.
	warehouseDelta int

	// store effect on the referenced row, which must already exist: removing stock
	// from a location that records none is a hard error, never an implicit create.
	storeDelta int
}

var movements = map[constant.TransactionType]movement{
	constant.TransactionTypeIn:                {warehouseDelta: +1},
	constant.TransactionTypeOut:               {warehouseDelta: -1},
	constant.TransactionTypeMove:              {},
	constant.TransactionTypeReturn:            {},
	constant.TransactionTypeAdjustment:        {},
	constant.TransactionTypeAudit:             {},
	constant.TransactionTypeTransferToStore:   {requiresToStore: true, warehouseDelta: -1, storeDelta: +1},
	constant.TransactionTypeTransferFromStore: {requiresFromStore: true, storeDelta: -1},
	constant.TransactionTypeSaleAtStore:       {requiresFromStore: true, storeDelta: -1},
}

func (s *ledgerEntryAppImpl) RecordTransaction(ctx context.Context, req *model.RecordTransactionRequest) (*model.StockTransaction, error) {
	mv, ok := movements[req.Type]
	if !ok {
		return nil, errors.SetCustomErrorWithDetail(constant.ErrInvalidRequest, "unknown transaction type")
	}
	if mv.requiresFromStore && req.FromStoreID == nil {
		return nil, errors.SetCustomErrorWithDetail(constant.ErrInvalidRequest, "from_store_id required for "+string(req.Type))
	}
	if mv.requiresToStore && req.ToStoreID == nil {
		return nil, errors.SetCustomErrorWithDetail(constant.ErrInvalidRequest, "to_store_id required for "+string(req.Type))
	}
	if req.Type == constant.TransactionTypeAdjustment {
		if req.Quantity < 0 {
			return nil, errors.SetCustomError(constant.ErrInvalidRequest)
		}
	} else if req.Quantity <= 0 {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[RecordTransaction] begin tx", zap.String("error", err.Error()))
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
		logger.Error("[RecordTransaction] get item", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if item == nil || item.DeletedAt.Valid {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	if err := s.applyWarehouseEffect(ctx, tx, req, mv); err != nil {
		return nil, err
	}
	if err := s.applyStoreEffect(ctx, tx, req, mv); err != nil {
		return nil, err
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}
	txn := &model.StockTransaction{
		InventoryItemID: req.InventoryItemID,
		Type:            req.Type,
		Quantity:        req.Quantity,
		Date:            date,
		Notes:           req.Notes,
	}
	if req.FromStoreID != nil {
		txn.FromStoreID = sql.NullInt64{Int64: int64(*req.FromStoreID), Valid: true}
	}
	if req.ToStoreID != nil {
		txn.ToStoreID = sql.NullInt64{Int64: int64(*req.ToStoreID), Valid: true}
	}
	if actorID, ok := utilsContext.GetActorID(ctx); ok {
		txn.ActorID = sql.NullInt64{Int64: int64(actorID), Valid: true}
	}

	id, err := s.transactionRepo.InsertTx(ctx, tx, txn)
	if err != nil {
		logger.Error("[RecordTransaction] insert transaction", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	txn.ID = id

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[RecordTransaction] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	if s.cacheRepo != nil {
		if err := s.cacheRepo.InvalidateItemAvailability(ctx, req.InventoryItemID); err != nil {
			logger.Warn("[RecordTransaction] invalidate availability cache", zap.String("error", err.Error()))
		}
	}

	return txn, nil
}

func (s *ledgerEntryAppImpl) applyWarehouseEffect(ctx context.Context, tx *sqlx.Tx, req *model.RecordTransactionRequest, mv movement) error {
	if req.Type == constant.TransactionTypeAdjustment {
		if err := s.inventoryRepo.SetQuantityTx(ctx, tx, req.InventoryItemID, req.Quantity); err != nil {
			if _, ok := errors.TypeOf(err); ok {
				return err
			}
			logger.Error("[RecordTransaction] set quantity", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}
		return nil
	}

	var err error
	switch mv.warehouseDelta {
	case +1:
		err = s.inventoryRepo.IncrementQuantityTx(ctx, tx, req.InventoryItemID, req.Quantity)
	case -1:
		err = s.inventoryRepo.DecrementQuantityTx(ctx, tx, req.InventoryItemID, req.Quantity)
	default:
		return nil
	}
	if err != nil {
		if _, ok := errors.TypeOf(err); ok {
			return err
		}
		logger.Error("[RecordTransaction] apply warehouse delta", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

func (s *ledgerEntryAppImpl) applyStoreEffect(ctx context.Context, tx *sqlx.Tx, req *model.RecordTransactionRequest, mv movement) error {
	if mv.storeDelta == 0 {
		return nil
	}

	storeID := req.ToStoreID
	if mv.requiresFromStore {
		storeID = req.FromStoreID
	}

	storeInv, err := s.storeInventoryRepo.GetByStoreAndItemTx(ctx, tx, *storeID, req.InventoryItemID)
	if err != nil {
		logger.Error("[RecordTransaction] get store inventory", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if storeInv == nil {
		return errors.SetCustomError(constant.ErrItemNotAtStore)
	}
	if storeInv.Status == constant.StoreInventoryStatusReturned {
		return errors.SetCustomErrorWithDetail(constant.ErrInvalidStatus,
			"store inventory row was returned to the warehouse")
	}

	if mv.storeDelta > 0 {
		err = s.storeInventoryRepo.IncrementQuantityTx(ctx, tx, storeInv.ID, req.Quantity)
	} else {
		err = s.storeInventoryRepo.DecrementQuantityTx(ctx, tx, storeInv.ID, req.Quantity)
	}
	if err != nil {
		if _, ok := errors.TypeOf(err); ok {
			return err
		}
		logger.Error("[RecordTransaction] apply store delta", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

func (s *ledgerEntryAppImpl) ArchiveTransaction(ctx context.Context, id uint64) error {
	if err := s.transactionRepo.Archive(ctx, id); err != nil {
		if _, ok := errors.TypeOf(err); ok {
			return err
		}
		logger.Error("[ArchiveTransaction] archive", zap.Uint64("id", id), zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

func (s *ledgerEntryAppImpl) RestoreTransaction(ctx context.Context, id uint64) error {
	if err := s.transactionRepo.Restore(ctx, id); err != nil {
		if _, ok := errors.TypeOf(err); ok {
			return err
		}
		logger.Error("[RestoreTransaction] restore", zap.Uint64("id", id), zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

func (s *ledgerEntryAppImpl) DeleteTransactionHard(ctx context.Context, id uint64) error {
	if err := s.transactionRepo.HardDelete(ctx, id); err != nil {
		if _, ok := errors.TypeOf(err); ok {
			return err
		}
		logger.Error("[DeleteTransactionHard] delete", zap.Uint64("id", id), zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

func (s *ledgerEntryAppImpl) ListItemTransactions(ctx context.Context, itemID uint64) ([]model.StockTransaction, error) {
	txns, err := s.transactionRepo.ListByItem(ctx, itemID)
	if err != nil {
		logger.Error("[ListItemTransactions] list", zap.Uint64("item_id", itemID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return txns, nil
}
