package transport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	inventoryapp "github.com/andikapratama/stockledger/application/inventory"
	ledgerentryapp "github.com/andikapratama/stockledger/application/ledgerentry"
	saleapp "github.com/andikapratama/stockledger/application/sale"
	transferapp "github.com/andikapratama/stockledger/application/transfer"
	fulfillmentapp "github.com/andikapratama/stockledger/application/fulfillment"
	"github.com/andikapratama/stockledger/cmd/config"
	"github.com/andikapratama/stockledger/constant"
	"github.com/andikapratama/stockledger/model"
	"github.com/andikapratama/stockledger/utils/errors"
	validatorx "github.com/andikapratama/stockledger/utils/validator"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RestHandler struct {
	TransferApp    transferapp.TransferApp
	SaleApp        saleapp.SaleApp
	FulfillmentApp fulfillmentapp.FulfillmentApp
	LedgerEntryApp ledgerentryapp.LedgerEntryApp
	InventoryApp   inventoryapp.InventoryApp
}

func NewTransport(cfg *config.Config, transferApp transferapp.TransferApp, saleApp saleapp.SaleApp, fulfillmentApp fulfillmentapp.FulfillmentApp, ledgerEntryApp ledgerentryapp.LedgerEntryApp, inventoryApp inventoryapp.InventoryApp) http.Handler {
	router := mux.NewRouter()

	rh := &RestHandler{
		TransferApp:    transferApp,
		SaleApp:        saleApp,
		FulfillmentApp: fulfillmentApp,
		LedgerEntryApp: ledgerEntryApp,
		InventoryApp:   inventoryApp,
	}

	// Swagger UI
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	router.HandleFunc("/health", rh.Health).Methods(http.MethodGet)

	// movements
	router.HandleFunc("/transfers/to-store", rh.TransferToStore).Methods(http.MethodPost)
	router.HandleFunc("/transfers/to-warehouse", rh.TransferToWarehouse).Methods(http.MethodPost)
	router.HandleFunc("/stores/{storeID}/returns", rh.ReturnStoreItems).Methods(http.MethodPost)

	// sales
	router.HandleFunc("/sales", rh.RecordSale).Methods(http.MethodPost)
	router.HandleFunc("/sales/{id}", rh.GetSale).Methods(http.MethodGet)
	router.HandleFunc("/sales/{id}/refund", rh.RefundSale).Methods(http.MethodPost)

	// purchase orders
	router.HandleFunc("/purchase-orders", rh.CreatePurchaseOrder).Methods(http.MethodPost)
	router.HandleFunc("/purchase-orders/{id}", rh.GetPurchaseOrder).Methods(http.MethodGet)
	router.HandleFunc("/purchase-orders/{id}/deliver", rh.DeliverPurchaseOrder).Methods(http.MethodPost)

	// ledger
	router.HandleFunc("/transactions", rh.RecordTransaction).Methods(http.MethodPost)
	router.HandleFunc("/transactions", rh.ListItemTransactions).Methods(http.MethodGet).Queries("item_id", "{itemID}")
	router.HandleFunc("/transactions/{id}/archive", rh.ArchiveTransaction).Methods(http.MethodPost)
	router.HandleFunc("/transactions/{id}/restore", rh.RestoreTransaction).Methods(http.MethodPost)
	router.HandleFunc("/transactions/{id}", rh.DeleteTransactionHard).Methods(http.MethodDelete)

	// inventory reads and lifecycle
	router.HandleFunc("/inventory/{id}", rh.GetItem).Methods(http.MethodGet)
	router.HandleFunc("/inventory/{id}/availability", rh.GetItemAvailability).Methods(http.MethodGet)
	router.HandleFunc("/inventory/{id}/archive", rh.ArchiveItem).Methods(http.MethodPost)
	router.HandleFunc("/inventory/{id}/restore", rh.RestoreItem).Methods(http.MethodPost)
	router.HandleFunc("/stores/{storeID}/inventory", rh.ListStoreInventory).Methods(http.MethodGet)

	// internal routes for the delivery consumer
	internal := router.PathPrefix("/internal").Subrouter()
	internal.Use(InternalMiddleware(cfg.Auth.InternalAPIKey))
	internal.HandleFunc("/purchase-orders/{id}/deliver", rh.DeliverPurchaseOrder).Methods(http.MethodPost)

	// middleware
	router.Use(LoggingMiddleware())
	router.Use(AuthMiddleware(cfg.Auth.JWTSecret))

	return router
}

func (s *RestHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, map[string]string{"status": "ok"})
}

// TransferToStore handler
// @Summary Transfer warehouse stock to a store
// @Tags Transfers
// @Accept json
// @Produce json
// @Param request body model.TransferToStoreRequest true "Transfer Request"
// @Success 200 {object} model.TransferResult
// @Failure 400 {object} errors.CustomError
// @Router /transfers/to-store [post]
func (s *RestHandler) TransferToStore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.TransferToStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.TransferApp.TransferToStore(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// TransferToWarehouse handler
// @Summary Transfer store stock back to the warehouse
// @Tags Transfers
// @Accept json
// @Produce json
// @Param request body model.TransferToWarehouseRequest true "Transfer Request"
// @Success 200 {object} model.TransferResult
// @Failure 400 {object} errors.CustomError
// @Router /transfers/to-warehouse [post]
func (s *RestHandler) TransferToWarehouse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.TransferToWarehouseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.TransferApp.TransferToWarehouse(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// ReturnStoreItems handler
// @Summary Return whole store inventory rows to the warehouse
// @Tags Transfers
// @Accept json
// @Produce json
// @Param storeID path int true "Store ID"
// @Param request body model.ReturnStoreItemsRequest true "Return Request"
// @Success 200 {array} model.ReturnResult
// @Failure 400 {object} errors.CustomError
// @Router /stores/{storeID}/returns [post]
func (s *RestHandler) ReturnStoreItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	storeID, ok := pathID(w, r, "storeID")
	if !ok {
		return
	}

	var req model.ReturnStoreItemsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	req.StoreID = storeID
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.TransferApp.ReturnStoreItems(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// RecordSale handler
// @Summary Record a sale that consumes store stock
// @Tags Sales
// @Accept json
// @Produce json
// @Param request body model.RecordSaleRequest true "Sale Request"
// @Success 200 {object} model.Sale
// @Failure 400 {object} errors.CustomError
// @Router /sales [post]
func (s *RestHandler) RecordSale(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.RecordSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.SaleApp.RecordSale(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// GetSale handler
// @Summary Get a sale
// @Tags Sales
// @Produce json
// @Param id path int true "Sale ID"
// @Success 200 {object} model.Sale
// @Failure 400 {object} errors.CustomError
// @Router /sales/{id} [get]
func (s *RestHandler) GetSale(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	res, err := s.SaleApp.GetSale(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// RefundSale handler
// @Summary Refund a completed sale and return stock to the store
// @Tags Sales
// @Produce json
// @Param id path int true "Sale ID"
// @Success 200 {object} model.Sale
// @Failure 400 {object} errors.CustomError
// @Router /sales/{id}/refund [post]
func (s *RestHandler) RefundSale(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	res, err := s.SaleApp.RefundSale(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// CreatePurchaseOrder handler
// @Summary Create a purchase order with an allocated order number
// @Tags PurchaseOrders
// @Accept json
// @Produce json
// @Param request body model.CreatePurchaseOrderRequest true "Purchase Order Request"
// @Success 200 {object} model.PurchaseOrder
// @Failure 400 {object} errors.CustomError
// @Router /purchase-orders [post]
func (s *RestHandler) CreatePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.CreatePurchaseOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.FulfillmentApp.CreatePurchaseOrder(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// GetPurchaseOrder handler
// @Summary Get a purchase order with its line items
// @Tags PurchaseOrders
// @Produce json
// @Param id path int true "Purchase Order ID"
// @Success 200 {object} model.PurchaseOrder
// @Failure 400 {object} errors.CustomError
// @Router /purchase-orders/{id} [get]
func (s *RestHandler) GetPurchaseOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	res, err := s.FulfillmentApp.GetPurchaseOrder(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// DeliverPurchaseOrder handler
// @Summary Deliver a purchase order into individually tracked stock units
// @Tags PurchaseOrders
// @Produce json
// @Param id path int true "Purchase Order ID"
// @Success 200 {object} model.DeliverPurchaseOrderResult
// @Failure 400 {object} errors.CustomError
// @Failure 409 {object} errors.CustomError
// @Router /purchase-orders/{id}/deliver [post]
func (s *RestHandler) DeliverPurchaseOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	res, err := s.FulfillmentApp.DeliverPurchaseOrder(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// RecordTransaction handler
// @Summary Record a ledger entry of any movement type with its stock deltas
// @Tags Transactions
// @Accept json
// @Produce json
// @Param request body model.RecordTransactionRequest true "Transaction Request"
// @Success 200 {object} model.StockTransaction
// @Failure 400 {object} errors.CustomError
// @Router /transactions [post]
func (s *RestHandler) RecordTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.RecordTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.LedgerEntryApp.RecordTransaction(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// ListItemTransactions handler
// @Summary List ledger entries for an inventory item
// @Tags Transactions
// @Produce json
// @Param item_id query int true "Inventory Item ID"
// @Success 200 {array} model.StockTransaction
// @Failure 400 {object} errors.CustomError
// @Router /transactions [get]
func (s *RestHandler) ListItemTransactions(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseUint(r.URL.Query().Get("item_id"), 10, 64)
	if err != nil || itemID == 0 {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	res, aerr := s.LedgerEntryApp.ListItemTransactions(r.Context(), itemID)
	if aerr != nil {
		writeError(w, aerr)
		return
	}
	writeSuccess(w, res)
}

// ArchiveTransaction handler
// @Summary Archive (soft delete) a ledger entry
// @Tags Transactions
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} nil
// @Failure 400 {object} errors.CustomError
// @Router /transactions/{id}/archive [post]
func (s *RestHandler) ArchiveTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := s.LedgerEntryApp.ArchiveTransaction(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

// RestoreTransaction handler
// @Summary Restore an archived ledger entry
// @Tags Transactions
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} nil
// @Failure 400 {object} errors.CustomError
// @Router /transactions/{id}/restore [post]
func (s *RestHandler) RestoreTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := s.LedgerEntryApp.RestoreTransaction(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

// DeleteTransactionHard handler
// @Summary Hard delete a ledger entry (irreversible)
// @Tags Transactions
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} nil
// @Failure 400 {object} errors.CustomError
// @Router /transactions/{id} [delete]
func (s *RestHandler) DeleteTransactionHard(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := s.LedgerEntryApp.DeleteTransactionHard(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

// GetItem handler
// @Summary Get a warehouse inventory item
// @Tags Inventory
// @Produce json
// @Param id path int true "Inventory Item ID"
// @Success 200 {object} model.InventoryItem
// @Failure 400 {object} errors.CustomError
// @Router /inventory/{id} [get]
func (s *RestHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	res, err := s.InventoryApp.GetItem(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// GetItemAvailability handler
// @Summary Get an item's warehouse and store availability (cached)
// @Tags Inventory
// @Produce json
// @Param id path int true "Inventory Item ID"
// @Success 200 {object} model.ItemAvailability
// @Failure 400 {object} errors.CustomError
// @Router /inventory/{id}/availability [get]
func (s *RestHandler) GetItemAvailability(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	res, err := s.InventoryApp.GetItemAvailability(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// ArchiveItem handler
// @Summary Soft delete a warehouse inventory item
// @Tags Inventory
// @Produce json
// @Param id path int true "Inventory Item ID"
// @Success 200 {object} nil
// @Failure 400 {object} errors.CustomError
// @Router /inventory/{id}/archive [post]
func (s *RestHandler) ArchiveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := s.InventoryApp.ArchiveItem(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

// RestoreItem handler
// @Summary Restore a soft-deleted warehouse inventory item
// @Tags Inventory
// @Produce json
// @Param id path int true "Inventory Item ID"
// @Success 200 {object} nil
// @Failure 400 {object} errors.CustomError
// @Router /inventory/{id}/restore [post]
func (s *RestHandler) RestoreItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := s.InventoryApp.RestoreItem(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

// ListStoreInventory handler
// @Summary List a store's inventory rows
// @Tags Inventory
// @Produce json
// @Param storeID path int true "Store ID"
// @Success 200 {array} model.StoreInventory
// @Failure 400 {object} errors.CustomError
// @Router /stores/{storeID}/inventory [get]
func (s *RestHandler) ListStoreInventory(w http.ResponseWriter, r *http.Request) {
	storeID, ok := pathID(w, r, "storeID")
	if !ok {
		return
	}
	res, err := s.InventoryApp.ListStoreInventory(r.Context(), storeID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (uint64, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 64)
	if err != nil || id == 0 {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return 0, false
	}
	return id, true
}
