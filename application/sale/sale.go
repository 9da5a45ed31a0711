package sale

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/andikapratama/stockledger/application/allocator"
	"github.com/andikapratama/stockledger/constant"
	"github.com/andikapratama/stockledger/model"
	redisrepo "github.com/andikapratama/stockledger/repository/redis"
	salerepo "github.com/andikapratama/stockledger/repository/sale"
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

// SaleApp records sales that consume store stock, and refunds that put it back.
// Each operation is one transaction: the sale row, the store quantity, the status
// and the ledger entry commit together.
type SaleApp interface {
	RecordSale(ctx context.Context, req *model.RecordSaleRequest) (*model.Sale, error)
	RefundSale(ctx context.Context, saleID uint64) (*model.Sale, error)
	GetSale(ctx context.Context, saleID uint64) (*model.Sale, error)
}

type saleAppImpl struct {
	txRepo             txrepo.TxRepository
	storeRepo          storerepo.StoreRepository
	storeInventoryRepo storeinventoryrepo.StoreInventoryRepository
	saleRepo           salerepo.SaleRepository
	transactionRepo    transactionrepo.TransactionRepository
	alloc              allocator.Allocator
	cacheRepo          redisrepo.Repository
	publisher          *rabbitmq.Publisher
}

func NewSaleApp(txRepo txrepo.TxRepository, storeRepo storerepo.StoreRepository, storeInventoryRepo storeinventoryrepo.StoreInventoryRepository, saleRepo salerepo.SaleRepository, transactionRepo transactionrepo.TransactionRepository, alloc allocator.Allocator, cacheRepo redisrepo.Repository, publisher *rabbitmq.Publisher) SaleApp {
	return &saleAppImpl{
		txRepo:             txRepo,
		storeRepo:          storeRepo,
		storeInventoryRepo: storeInventoryRepo,
		saleRepo:           saleRepo,
		transactionRepo:    transactionRepo,
		alloc:              alloc,
		cacheRepo:          cacheRepo,
		publisher:          publisher,
	}
}

func (s *saleAppImpl) RecordSale(ctx context.Context, req *model.RecordSaleRequest) (*model.Sale, error) {
	if req.Quantity <= 0 {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	store, err := s.storeRepo.GetByID(ctx, req.StoreID)
	if err != nil {
		logger.Error("[RecordSale] get store", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if store == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	if store.Status != constant.StoreStatusActive {
		return nil, errors.SetCustomError(constant.ErrStoreInactive)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[RecordSale] begin tx", zap.String("error", err.Error()))
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
		logger.Error("[RecordSale] get store inventory", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if storeInv == nil {
		return nil, errors.SetCustomError(constant.ErrItemNotAtStore)
	}
	if storeInv.Status == constant.StoreInventoryStatusReturned {
		return nil, errors.SetCustomErrorWithDetail(constant.ErrInvalidStatus,
			"store inventory row was returned to the warehouse")
	}

	saleDate := time.Now()
	if req.SaleDate != nil {
		saleDate = *req.SaleDate
	}

	sale, err := s.insertSaleTx(ctx, tx, req, saleDate)
	if err != nil {
		if _, ok := errors.TypeOf(err); ok {
			return nil, err
		}
		logger.Error("[RecordSale] insert sale", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.storeInventoryRepo.DecrementQuantityTx(ctx, tx, storeInv.ID, req.Quantity); err != nil {
		if _, ok := errors.TypeOf(err); ok {
			return nil, err
		}
		logger.Error("[RecordSale] decrement store", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.storeInventoryRepo.SetStatusTx(ctx, tx, storeInv.ID, constant.StoreInventoryStatusSold); err != nil {
		logger.Error("[RecordSale] set status sold", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	txn := &model.StockTransaction{
		InventoryItemID: req.InventoryItemID,
		Type:            constant.TransactionTypeSaleAtStore,
		Quantity:        req.Quantity,
		Date:            saleDate,
		FromStoreID:     sql.NullInt64{Int64: int64(req.StoreID), Valid: true},
		Notes:           "sale " + sale.OrderNumber,
	}
	if actorID, ok := utilsContext.GetActorID(ctx); ok {
		txn.ActorID = sql.NullInt64{Int64: int64(actorID), Valid: true}
	}
	txnID, err := s.transactionRepo.InsertTx(ctx, tx, txn)
	if err != nil {
		logger.Error("[RecordSale] record transaction", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	txn.ID = txnID

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[RecordSale] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	s.afterCommit(ctx, txn)

	return sale, nil
}

// insertSaleTx allocates an order number and inserts the sale, retrying with a fresh
// number on a uniqueness collision, bounded like every other allocation loop.
func (s *saleAppImpl) insertSaleTx(ctx context.Context, tx *sqlx.Tx, req *model.RecordSaleRequest, saleDate time.Time) (*model.Sale, error) {
	for attempt := 0; attempt < allocator.MaxAllocationAttempts; attempt++ {
		orderNumber, err := s.alloc.NewSaleOrderNumberTx(ctx, tx)
		if err != nil {
			return nil, err
		}

		sale := &model.Sale{
			StoreID:         req.StoreID,
			InventoryItemID: req.InventoryItemID,
			OrderNumber:     orderNumber,
			Quantity:        req.Quantity,
			Cost:            req.Cost,
			Payout:          req.Payout,
			Discount:        req.Discount,
			PayoutMethod:    req.PayoutMethod,
			Status:          constant.SaleStatusCompleted,
			SaleDate:        saleDate,
			Notes:           req.Notes,
		}
		id, err := s.saleRepo.InsertTx(ctx, tx, sale)
		if err != nil {
			if salerepo.IsDuplicateOrderNumber(err) {
				continue
			}
			return nil, err
		}
		sale.ID = id
		return sale, nil
	}
	return nil, errors.SetCustomError(constant.ErrAllocationExhausted)
}

// RefundSale flips the sale to REFUNDED, returns the quantity to the store row
// (cost basis untouched) and appends a RETURN ledger entry.
func (s *saleAppImpl) RefundSale(ctx context.Context, saleID uint64) (*model.Sale, error) {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[RefundSale] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	sale, err := s.saleRepo.GetByIDTx(ctx, tx, saleID)
	if err != nil {
		logger.Error("[RefundSale] get sale", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if sale == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	if err := s.saleRepo.MarkRefundedTx(ctx, tx, saleID); err != nil {
		if _, ok := errors.TypeOf(err); ok {
			return nil, err
		}
		logger.Error("[RefundSale] mark refunded", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	storeInv, err := s.storeInventoryRepo.GetByStoreAndItemTx(ctx, tx, sale.StoreID, sale.InventoryItemID)
	if err != nil {
		logger.Error("[RefundSale] get store inventory", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if storeInv == nil {
		return nil, errors.SetCustomError(constant.ErrItemNotAtStore)
	}
	if storeInv.Status == constant.StoreInventoryStatusReturned {
		return nil, errors.SetCustomErrorWithDetail(constant.ErrInvalidStatus,
			"store inventory row was returned to the warehouse")
	}

	if err := s.storeInventoryRepo.IncrementQuantityTx(ctx, tx, storeInv.ID, sale.Quantity); err != nil {
		logger.Error("[RefundSale] increment store", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if err := s.storeInventoryRepo.SetStatusTx(ctx, tx, storeInv.ID, constant.StoreInventoryStatusInStock); err != nil {
		logger.Error("[RefundSale] set status in stock", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	txn := &model.StockTransaction{
		InventoryItemID: sale.InventoryItemID,
		Type:            constant.TransactionTypeReturn,
		Quantity:        sale.Quantity,
		Date:            time.Now(),
		ToStoreID:       sql.NullInt64{Int64: int64(sale.StoreID), Valid: true},
		Notes:           "refund " + sale.OrderNumber,
	}
	if actorID, ok := utilsContext.GetActorID(ctx); ok {
		txn.ActorID = sql.NullInt64{Int64: int64(actorID), Valid: true}
	}
	txnID, err := s.transactionRepo.InsertTx(ctx, tx, txn)
	if err != nil {
		logger.Error("[RefundSale] record transaction", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	txn.ID = txnID

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[RefundSale] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	sale.Status = constant.SaleStatusRefunded
	s.afterCommit(ctx, txn)

	return sale, nil
}

func (s *saleAppImpl) GetSale(ctx context.Context, saleID uint64) (*model.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		logger.Error("[GetSale] get sale", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if sale == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	return sale, nil
}

func (s *saleAppImpl) afterCommit(ctx context.Context, txn *model.StockTransaction) {
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
