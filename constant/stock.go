package constant

// TransactionType classifies a single stock-quantity-changing event in the ledger.
type TransactionType string

const (
	TransactionTypeIn                TransactionType = "IN"
	TransactionTypeOut               TransactionType = "OUT"
	TransactionTypeMove              TransactionType = "MOVE"
	TransactionTypeReturn            TransactionType = "RETURN"
	TransactionTypeAdjustment        TransactionType = "ADJUSTMENT"
	TransactionTypeAudit             TransactionType = "AUDIT"
	TransactionTypeTransferToStore   TransactionType = "TRANSFER_TO_STORE"
	TransactionTypeTransferFromStore TransactionType = "TRANSFER_FROM_STORE"
	TransactionTypeSaleAtStore       TransactionType = "SALE_AT_STORE"
)

type InventoryStatus string

const (
	InventoryStatusInStock InventoryStatus = "IN_STOCK"
	InventoryStatusDeleted InventoryStatus = "DELETED"
)

type StoreInventoryStatus string

const (
	StoreInventoryStatusInStock  StoreInventoryStatus = "IN_STOCK"
	StoreInventoryStatusSold     StoreInventoryStatus = "SOLD"
	StoreInventoryStatusReturned StoreInventoryStatus = "RETURNED"
)

type PurchaseOrderStatus string

const (
	PurchaseOrderStatusPending   PurchaseOrderStatus = "PENDING"
	PurchaseOrderStatusDelivered PurchaseOrderStatus = "DELIVERED"
)

type SaleStatus string

const (
	SaleStatusCompleted SaleStatus = "COMPLETED"
	SaleStatusRefunded  SaleStatus = "REFUNDED"
)

type StoreStatus int

const (
	StoreStatusActive   StoreStatus = 1
	StoreStatusInactive StoreStatus = 2
)
