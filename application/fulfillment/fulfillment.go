package fulfillment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/andikapratama/stockledger/application/allocator"
	"github.com/andikapratama/stockledger/constant"
	"github.com/andikapratama/stockledger/model"
	inventoryrepo "github.com/andikapratama/stockledger/repository/inventory"
	purchaseorderrepo "github.com/andikapratama/stockledger/repository/purchaseorder"
	transactionrepo "github.com/andikapratama/stockledger/repository/transaction"
	txrepo "github.com/andikapratama/stockledger/repository/tx"
	utilsContext "github.com/andikapratama/stockledger/utils/context"
	"github.com/andikapratama/stockledger/utils/errors"
	"github.com/andikapratama/stockledger/utils/logger"
	"go.uber.org/zap"
)

// FulfillmentApp creates purchase orders and converts delivered ones into
// individually tracked warehouse stock: one InventoryItem of quantity 1 per ordered
// unit, each with its own allocated unit SKU and an IN ledger entry.
type FulfillmentApp interface {
	CreatePurchaseOrder(ctx context.Context, req *model.CreatePurchaseOrderRequest) (*model.PurchaseOrder, error)
	DeliverPurchaseOrder(ctx context.Context, poID uint64) (*model.DeliverPurchaseOrderResult, error)
	GetPurchaseOrder(ctx context.Context, poID uint64) (*model.PurchaseOrder, error)
}

type fulfillmentAppImpl struct {
	txRepo            txrepo.TxRepository
	purchaseOrderRepo purchaseorderrepo.PurchaseOrderRepository
	inventoryRepo     inventoryrepo.InventoryRepository
	transactionRepo   transactionrepo.TransactionRepository
	alloc             allocator.Allocator
}

func NewFulfillmentApp(txRepo txrepo.TxRepository, purchaseOrderRepo purchaseorderrepo.PurchaseOrderRepository, inventoryRepo inventoryrepo.InventoryRepository, transactionRepo transactionrepo.TransactionRepository, alloc allocator.Allocator) FulfillmentApp {
	return &fulfillmentAppImpl{
		txRepo:            txRepo,
		purchaseOrderRepo: purchaseOrderRepo,
		inventoryRepo:     inventoryRepo,
		transactionRepo:   transactionRepo,
		alloc:             alloc,
	}
}

func (s *fulfillmentAppImpl) CreatePurchaseOrder(ctx context.Context, req *model.CreatePurchaseOrderRequest) (*model.PurchaseOrder, error) {
	if len(req.Items) == 0 {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[CreatePurchaseOrder] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	po, err := s.insertOrderTx(ctx, tx, req.Vendor)
	if err != nil {
		if _, ok := errors.TypeOf(err); ok {
			return nil, err
		}
		logger.Error("[CreatePurchaseOrder] insert order", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.purchaseOrderRepo.InsertItemsTx(ctx, tx, po.ID, req.Items); err != nil {
		logger.Error("[CreatePurchaseOrder] insert items", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[CreatePurchaseOrder] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	return s.GetPurchaseOrder(ctx, po.ID)
}

// insertOrderTx allocates the next monotonic order number and inserts, retrying
// past the collided number when a concurrent creation claimed the same one.
func (s *fulfillmentAppImpl) insertOrderTx(ctx context.Context, tx *sqlx.Tx, vendor string) (*model.PurchaseOrder, error) {
	var collided string
	for attempt := 0; attempt < allocator.MaxAllocationAttempts; attempt++ {
		orderNumber, err := s.alloc.NextPurchaseOrderNumberTx(ctx, tx, collided)
		if err != nil {
			return nil, err
		}

		po := &model.PurchaseOrder{
			OrderNumber: orderNumber,
			Vendor:      vendor,
			Status:      constant.PurchaseOrderStatusPending,
		}
		id, err := s.purchaseOrderRepo.InsertTx(ctx, tx, po)
		if err != nil {
			if purchaseorderrepo.IsDuplicateOrderNumber(err) {
				collided = orderNumber
				continue
			}
			return nil, err
		}
		po.ID = id
		return po, nil
	}
	return nil, errors.SetCustomError(constant.ErrAllocationExhausted)
}

// DeliverPurchaseOrder transitions the order to DELIVERED and creates one
// quantity-1 InventoryItem plus an IN ledger entry per ordered unit, all in one
// transaction. Any failure, including SKU allocation exhaustion, rolls back the
// whole delivery.
func (s *fulfillmentAppImpl) DeliverPurchaseOrder(ctx context.Context, poID uint64) (*model.DeliverPurchaseOrderResult, error) {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[DeliverPurchaseOrder] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	po, err := s.purchaseOrderRepo.GetByIDTx(ctx, tx, poID)
	if err != nil {
		logger.Error("[DeliverPurchaseOrder] get order", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if po == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	if po.Status == constant.PurchaseOrderStatusDelivered {
		return nil, errors.SetCustomError(constant.ErrAlreadyDelivered)
	}

	deliveredAt := time.Now()
	if err := s.purchaseOrderRepo.MarkDeliveredTx(ctx, tx, poID, deliveredAt); err != nil {
		if _, ok := errors.TypeOf(err); ok {
			return nil, err
		}
		logger.Error("[DeliverPurchaseOrder] mark delivered", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	lines, err := s.purchaseOrderRepo.GetItemsTx(ctx, tx, poID)
	if err != nil {
		logger.Error("[DeliverPurchaseOrder] get items", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	var actorID sql.NullInt64
	if id, ok := utilsContext.GetActorID(ctx); ok {
		actorID = sql.NullInt64{Int64: int64(id), Valid: true}
	}

	created := make([]model.InventoryItem, 0)
	for lineIdx, line := range lines {
		for unit := int64(0); unit < line.QuantityOrdered; unit++ {
			item, err := s.insertUnitTx(ctx, tx, po, &line)
			if err != nil {
				if _, ok := errors.TypeOf(err); ok {
					return nil, err
				}
				logger.Error("[DeliverPurchaseOrder] insert unit", zap.Int("line", lineIdx), zap.String("error", err.Error()))
				return nil, errors.SetCustomError(constant.ErrInternal)
			}

			_, err = s.transactionRepo.InsertTx(ctx, tx, &model.StockTransaction{
				InventoryItemID: item.ID,
				Type:            constant.TransactionTypeIn,
				Quantity:        1,
				Date:            deliveredAt,
				ActorID:         actorID,
				Notes:           fmt.Sprintf("purchase order %s line %d", po.OrderNumber, line.ID),
			})
			if err != nil {
				logger.Error("[DeliverPurchaseOrder] record transaction", zap.String("error", err.Error()))
				return nil, errors.SetCustomError(constant.ErrInternal)
			}

			created = append(created, *item)
		}
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[DeliverPurchaseOrder] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	po.Status = constant.PurchaseOrderStatusDelivered
	po.DeliveredAt = sql.NullTime{Time: deliveredAt, Valid: true}
	po.Items = lines

	return &model.DeliverPurchaseOrderResult{PurchaseOrder: po, InventoryItems: created}, nil
}

// insertUnitTx allocates a gap-filling unit SKU and inserts the quantity-1 item,
// reallocating on a uniqueness collision up to the shared attempt bound. Collided
// SKUs are excluded on the next attempt so the loop always advances.
func (s *fulfillmentAppImpl) insertUnitTx(ctx context.Context, tx *sqlx.Tx, po *model.PurchaseOrder, line *model.PurchaseOrderItem) (*model.InventoryItem, error) {
	var collided []string
	for attempt := 0; attempt < allocator.MaxAllocationAttempts; attempt++ {
		unitSKU, err := s.alloc.NextUnitSKUTx(ctx, tx, collided)
		if err != nil {
			return nil, err
		}

		id, err := s.inventoryRepo.InsertTx(ctx, tx, &model.NewInventoryItem{
			ProductID:       line.ProductID,
			SKU:             line.SKU,
			UnitSKU:         unitSKU,
			Size:            line.Size,
			ItemCondition:   line.ItemCondition,
			UnitCost:        line.UnitCost,
			Quantity:        1,
			PurchaseOrderID: po.ID,
		})
		if err != nil {
			if inventoryrepo.IsDuplicateUnitSKU(err) {
				collided = append(collided, unitSKU)
				continue
			}
			return nil, err
		}
		return s.inventoryRepo.GetByIDTx(ctx, tx, id)
	}
	return nil, errors.SetCustomErrorWithDetail(constant.ErrAllocationExhausted,
		fmt.Sprintf("unit SKU collided %d times", allocator.MaxAllocationAttempts))
}

func (s *fulfillmentAppImpl) GetPurchaseOrder(ctx context.Context, poID uint64) (*model.PurchaseOrder, error) {
	po, err := s.purchaseOrderRepo.GetByID(ctx, poID)
	if err != nil {
		logger.Error("[GetPurchaseOrder] get order", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if po == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	return po, nil
}
