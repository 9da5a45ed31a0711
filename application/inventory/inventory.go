package inventory

import (
	"context"

	"github.com/andikapratama/stockledger/constant"
	"github.com/andikapratama/stockledger/model"
	inventoryrepo "github.com/andikapratama/stockledger/repository/inventory"
	redisrepo "github.com/andikapratama/stockledger/repository/redis"
	storeinventoryrepo "github.com/andikapratama/stockledger/repository/storeinventory"
	txrepo "github.com/andikapratama/stockledger/repository/tx"
	"github.com/andikapratama/stockledger/utils/errors"
	"github.com/andikapratama/stockledger/utils/logger"
	"go.uber.org/zap"
)

// InventoryApp is the read-and-lifecycle surface for warehouse items: availability
// snapshots (cached), per-store listings, soft delete and restore.
type InventoryApp interface {
	GetItem(ctx context.Context, id uint64) (*model.InventoryItem, error)
	GetItemAvailability(ctx context.Context, id uint64) (*model.ItemAvailability, error)
	ListStoreInventory(ctx context.Context, storeID uint64) ([]model.StoreInventory, error)
	ArchiveItem(ctx context.Context, id uint64) error
	RestoreItem(ctx context.Context, id uint64) error
}

type inventoryAppImpl struct {
	txRepo             txrepo.TxRepository
	inventoryRepo      inventoryrepo.InventoryRepository
	storeInventoryRepo storeinventoryrepo.StoreInventoryRepository
	cacheRepo          redisrepo.Repository
}

func NewInventoryApp(txRepo txrepo.TxRepository, inventoryRepo inventoryrepo.InventoryRepository, storeInventoryRepo storeinventoryrepo.StoreInventoryRepository, cacheRepo redisrepo.Repository) InventoryApp {
	return &inventoryAppImpl{
		txRepo:             txRepo,
		inventoryRepo:      inventoryRepo,
		storeInventoryRepo: storeInventoryRepo,
		cacheRepo:          cacheRepo,
	}
}

func (s *inventoryAppImpl) GetItem(ctx context.Context, id uint64) (*model.InventoryItem, error) {
	item, err := s.inventoryRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[GetItem] get item", zap.Uint64("id", id), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if item == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	return item, nil
}

// GetItemAvailability serves the cached snapshot when present and rebuilds it from
// the warehouse and store rows on a miss. Movements invalidate the key post-commit,
// so a hit is at worst one movement stale within the TTL.
func (s *inventoryAppImpl) GetItemAvailability(ctx context.Context, id uint64) (*model.ItemAvailability, error) {
	if s.cacheRepo != nil {
		cached, err := s.cacheRepo.GetItemAvailability(ctx, id)
		if err != nil {
			logger.Warn("[GetItemAvailability] cache read", zap.String("error", err.Error()))
		} else if cached != nil {
			return cached, nil
		}
	}

	item, err := s.inventoryRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[GetItemAvailability] get item", zap.Uint64("id", id), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if item == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	storeQty, err := s.storeInventoryRepo.SumQuantityByItem(ctx, id)
	if err != nil {
		logger.Error("[GetItemAvailability] sum store quantity", zap.Uint64("id", id), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	avail := &model.ItemAvailability{
		ItemID:            id,
		WarehouseQuantity: item.Quantity,
		StoreQuantity:     storeQty,
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetItemAvailability(ctx, avail); err != nil {
			logger.Warn("[GetItemAvailability] cache write", zap.String("error", err.Error()))
		}
	}
	return avail, nil
}

func (s *inventoryAppImpl) ListStoreInventory(ctx context.Context, storeID uint64) ([]model.StoreInventory, error) {
	items, err := s.storeInventoryRepo.ListByStore(ctx, storeID)
	if err != nil {
		logger.Error("[ListStoreInventory] list", zap.Uint64("store_id", storeID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return items, nil
}

func (s *inventoryAppImpl) ArchiveItem(ctx context.Context, id uint64) error {
	if err := s.inventoryRepo.SoftDelete(ctx, id); err != nil {
		if _, ok := errors.TypeOf(err); ok {
			return err
		}
		logger.Error("[ArchiveItem] soft delete", zap.Uint64("id", id), zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if s.cacheRepo != nil {
		if err := s.cacheRepo.InvalidateItemAvailability(ctx, id); err != nil {
			logger.Warn("[ArchiveItem] invalidate availability cache", zap.String("error", err.Error()))
		}
	}
	return nil
}

// RestoreItem clears the soft-delete marker inside a transaction so the marker and
// status flip together.
func (s *inventoryAppImpl) RestoreItem(ctx context.Context, id uint64) error {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[RestoreItem] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	item, err := s.inventoryRepo.GetByIDTx(ctx, tx, id)
	if err != nil {
		logger.Error("[RestoreItem] get item", zap.Uint64("id", id), zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if item == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	if !item.DeletedAt.Valid {
		return errors.SetCustomErrorWithDetail(constant.ErrInvalidStatus, "item is not deleted")
	}

	if err := s.inventoryRepo.RestoreTx(ctx, tx, id); err != nil {
		logger.Error("[RestoreItem] restore", zap.Uint64("id", id), zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[RestoreItem] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	if s.cacheRepo != nil {
		if err := s.cacheRepo.InvalidateItemAvailability(ctx, id); err != nil {
			logger.Warn("[RestoreItem] invalidate availability cache", zap.String("error", err.Error()))
		}
	}
	return nil
}
