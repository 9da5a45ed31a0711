package model

type TransferToStoreRequest struct {
	InventoryItemID uint64  `json:"inventory_item_id" validate:"required"`
	StoreID         uint64  `json:"store_id" validate:"required"`
	Quantity        int64   `json:"quantity" validate:"required,gt=0"`
	TransferCost    float64 `json:"transfer_cost" validate:"required,gt=0"`
	Notes           string  `json:"notes,omitempty"`
}

type TransferToWarehouseRequest struct {
	InventoryItemID uint64 `json:"inventory_item_id" validate:"required"`
	StoreID         uint64 `json:"store_id" validate:"required"`
	Quantity        int64  `json:"quantity" validate:"required,gt=0"`
	Notes           string `json:"notes,omitempty"`
}

type ReturnStoreItemsRequest struct {
	StoreID           uint64   `json:"store_id" validate:"required"`
	StoreInventoryIDs []uint64 `json:"store_inventory_ids" validate:"required,min=1,dive,required"`
	Notes             string   `json:"notes,omitempty"`
}

// TransferResult is the post-commit state of one transfer: the warehouse row, the
// store row and the ledger entry written for it.
type TransferResult struct {
	Item           *InventoryItem    `json:"item"`
	StoreInventory *StoreInventory   `json:"store_inventory"`
	Transaction    *StockTransaction `json:"transaction"`
}

type ReturnResult struct {
	StoreInventory *StoreInventory   `json:"store_inventory"`
	Item           *InventoryItem    `json:"item"`
	Transaction    *StockTransaction `json:"transaction"`
}
