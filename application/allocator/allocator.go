package allocator

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/andikapratama/stockledger/constant"
	inventoryrepo "github.com/andikapratama/stockledger/repository/inventory"
	purchaseorderrepo "github.com/andikapratama/stockledger/repository/purchaseorder"
	salerepo "github.com/andikapratama/stockledger/repository/sale"
	"github.com/andikapratama/stockledger/utils/errors"
)

const (
	// MaxAllocationAttempts bounds every identifier retry loop. Exhausting it fails
	// the whole enclosing operation.
	MaxAllocationAttempts = 5

	unitSKUPrefix       = "SKU-"
	purchaseOrderPrefix = "PO-"
	saleOrderPrefix     = "ORD-"
)

// Allocator produces human-readable identifiers unique within their namespace.
// All methods read through the caller's transaction so allocation and insert share
// one unit of work; uniqueness constraints plus bounded retries absorb races.
// Callers feed candidates that already collided back in, so a retry advances even
// when the transaction's read view has not caught up with the concurrent insert.
type Allocator interface {
	NextUnitSKUTx(ctx context.Context, tx *sqlx.Tx, exclude []string) (string, error)
	NextPurchaseOrderNumberTx(ctx context.Context, tx *sqlx.Tx, after string) (string, error)
	NewSaleOrderNumberTx(ctx context.Context, tx *sqlx.Tx) (string, error)
}

type allocatorImpl struct {
	inventoryRepo     inventoryrepo.InventoryRepository
	purchaseOrderRepo purchaseorderrepo.PurchaseOrderRepository
	saleRepo          salerepo.SaleRepository
	now               func() time.Time
}

func NewAllocator(inventoryRepo inventoryrepo.InventoryRepository, purchaseOrderRepo purchaseorderrepo.PurchaseOrderRepository, saleRepo salerepo.SaleRepository) Allocator {
	return &allocatorImpl{
		inventoryRepo:     inventoryRepo,
		purchaseOrderRepo: purchaseOrderRepo,
		saleRepo:          saleRepo,
		now:               time.Now,
	}
}

// NextUnitSKUTx scans all assigned unit SKUs and returns the smallest unused
// positive suffix, gap-filling rather than max+1. The caller retries the whole
// allocate-then-insert step on a uniqueness collision, passing the collided
// candidates as exclude so the next attempt picks a different value.
func (a *allocatorImpl) NextUnitSKUTx(ctx context.Context, tx *sqlx.Tx, exclude []string) (string, error) {
	assigned, err := a.inventoryRepo.ListAssignedUnitSKUsTx(ctx, tx)
	if err != nil {
		return "", err
	}
	assigned = append(assigned, exclude...)
	return formatUnitSKU(smallestUnusedSuffix(assigned, unitSKUPrefix)), nil
}

// NextPurchaseOrderNumberTx returns max+1: purchase-order numbers are monotonic, not
// gap-filling. The unique constraint on the column backstops concurrent readers;
// after carries the last collided candidate so the retry moves past it.
func (a *allocatorImpl) NextPurchaseOrderNumberTx(ctx context.Context, tx *sqlx.Tx, after string) (string, error) {
	maxNum, err := a.purchaseOrderRepo.GetMaxOrderNumberTx(ctx, tx)
	if err != nil {
		return "", err
	}
	n := parseSuffix(maxNum, purchaseOrderPrefix)
	if m := parseSuffix(after, purchaseOrderPrefix); m > n {
		n = m
	}
	return formatPurchaseOrderNumber(n + 1), nil
}

// NewSaleOrderNumberTx composes a timestamp and a short random token, regenerating
// the token on the (negligible but possible) collision, bounded like every other
// allocation loop.
func (a *allocatorImpl) NewSaleOrderNumberTx(ctx context.Context, tx *sqlx.Tx) (string, error) {
	stamp := a.now().Format("20060102150405")
	for attempt := 0; attempt < MaxAllocationAttempts; attempt++ {
		candidate := saleOrderPrefix + stamp + "-" + shortToken()
		exists, err := a.saleRepo.OrderNumberExistsTx(ctx, tx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", errors.SetCustomErrorWithDetail(constant.ErrAllocationExhausted,
		fmt.Sprintf("sale order number collided %d times", MaxAllocationAttempts))
}

// smallestUnusedSuffix returns the smallest positive integer not present among the
// numeric suffixes of the assigned identifiers. Values that do not parse are skipped.
func smallestUnusedSuffix(assigned []string, prefix string) int {
	suffixes := make([]int, 0, len(assigned))
	for _, s := range assigned {
		if n := parseSuffix(s, prefix); n > 0 {
			suffixes = append(suffixes, n)
		}
	}
	sort.Ints(suffixes)

	next := 1
	for _, n := range suffixes {
		if n > next {
			break
		}
		if n == next {
			next++
		}
	}
	return next
}

func parseSuffix(s, prefix string) int {
	if !strings.HasPrefix(s, prefix) {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimPrefix(s, prefix))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func formatUnitSKU(n int) string {
	return fmt.Sprintf("%s%05d", unitSKUPrefix, n)
}

// formatPurchaseOrderNumber zero-pads so lexical MAX() matches numeric order.
func formatPurchaseOrderNumber(n int) string {
	return fmt.Sprintf("%s%06d", purchaseOrderPrefix, n)
}

func shortToken() string {
	return strings.ToUpper(uuid.NewString()[:6])
}
