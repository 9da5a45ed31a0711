package main

import (
	"context"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	allocatorapp "github.com/andikapratama/stockledger/application/allocator"
	fulfillmentapp "github.com/andikapratama/stockledger/application/fulfillment"
	inventoryapp "github.com/andikapratama/stockledger/application/inventory"
	ledgerentryapp "github.com/andikapratama/stockledger/application/ledgerentry"
	saleapp "github.com/andikapratama/stockledger/application/sale"
	transferapp "github.com/andikapratama/stockledger/application/transfer"
	"github.com/andikapratama/stockledger/cmd/config"
	redisclient "github.com/andikapratama/stockledger/cmd/redis"
	inventoryRepo "github.com/andikapratama/stockledger/repository/inventory"
	purchaseOrderRepo "github.com/andikapratama/stockledger/repository/purchaseorder"
	redisRepo "github.com/andikapratama/stockledger/repository/redis"
	saleRepo "github.com/andikapratama/stockledger/repository/sale"
	storeRepo "github.com/andikapratama/stockledger/repository/store"
	storeInventoryRepo "github.com/andikapratama/stockledger/repository/storeinventory"
	transactionRepo "github.com/andikapratama/stockledger/repository/transaction"
	txRepo "github.com/andikapratama/stockledger/repository/tx"
	"github.com/andikapratama/stockledger/thirdparty/rabbitmq"
	"github.com/andikapratama/stockledger/transport"
	"github.com/andikapratama/stockledger/utils/logger"
	validatorx "github.com/andikapratama/stockledger/utils/validator"
	"go.uber.org/zap"
)

// @title STOCK LEDGER API
// @version 1.0
// @description Multi-location inventory ledger and movement API
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	validatorx.Init()

	// Connect to database
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}

	// Set database connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// Initialize Redis client
	if err := redisclient.New(cfg); err != nil {
		logger.Warn("redis unavailable, availability cache disabled", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()

	// Initialize repositories
	TxRepo := txRepo.NewTxRepository(db)
	StoreRepo := storeRepo.NewStoreRepository(db)
	InventoryRepo := inventoryRepo.NewInventoryRepository(db)
	StoreInventoryRepo := storeInventoryRepo.NewStoreInventoryRepository(db)
	TransactionRepo := transactionRepo.NewTransactionRepository(db)
	PurchaseOrderRepo := purchaseOrderRepo.NewPurchaseOrderRepository(db)
	SaleRepo := saleRepo.NewSaleRepository(db)
	CacheRepo := redisRepo.NewRepository()

	// Initialize RabbitMQ publisher and delivery consumer
	var publisher *rabbitmq.Publisher
	if cfg.RabbitMQ.Enabled {
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
		if err != nil {
			logger.Fatal("err connect rabbitmq publisher", zap.Error(err))
		}
		defer publisher.Close()

		consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password, cfg.RabbitMQ.APIURL, cfg.Auth.InternalAPIKey)
		if err != nil {
			logger.Fatal("err connect rabbitmq consumer", zap.Error(err))
		}
		defer consumer.Close()

		if err := consumer.Start(context.Background()); err != nil {
			logger.Fatal("err start delivery consumer", zap.Error(err))
		}
	}

	// Initialize application layers
	Allocator := allocatorapp.NewAllocator(InventoryRepo, PurchaseOrderRepo, SaleRepo)
	TransferApp := transferapp.NewTransferApp(TxRepo, StoreRepo, InventoryRepo, StoreInventoryRepo, TransactionRepo, CacheRepo, publisher)
	SaleApp := saleapp.NewSaleApp(TxRepo, StoreRepo, StoreInventoryRepo, SaleRepo, TransactionRepo, Allocator, CacheRepo, publisher)
	FulfillmentApp := fulfillmentapp.NewFulfillmentApp(TxRepo, PurchaseOrderRepo, InventoryRepo, TransactionRepo, Allocator)
	LedgerEntryApp := ledgerentryapp.NewLedgerEntryApp(TxRepo, InventoryRepo, StoreInventoryRepo, TransactionRepo, CacheRepo)
	InventoryApp := inventoryapp.NewInventoryApp(TxRepo, InventoryRepo, StoreInventoryRepo, CacheRepo)

	httpTransport := transport.NewTransport(cfg, TransferApp, SaleApp, FulfillmentApp, LedgerEntryApp, InventoryApp)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
	err = server.ListenAndServe()
	if err != nil {
		logger.Fatal("failed server", zap.Error(err))
	}
}
