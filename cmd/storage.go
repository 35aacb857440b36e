package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-CafeOrderService/internal/config"
	"github.com/m04kA/SMC-CafeOrderService/internal/infra/docstore"
	bookingRepo "github.com/m04kA/SMC-CafeOrderService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CafeOrderService/internal/infra/storage/memory"
	settingsRepo "github.com/m04kA/SMC-CafeOrderService/internal/infra/storage/settings"
	ordersService "github.com/m04kA/SMC-CafeOrderService/internal/service/orders"
	settingsService "github.com/m04kA/SMC-CafeOrderService/internal/service/settings"
	getAvailableSlotsUC "github.com/m04kA/SMC-CafeOrderService/internal/usecase/get_available_slots"
	placeOrderUC "github.com/m04kA/SMC-CafeOrderService/internal/usecase/place_order"
	"github.com/m04kA/SMC-CafeOrderService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CafeOrderService/pkg/logger"
	"github.com/m04kA/SMC-CafeOrderService/pkg/metrics"
	"github.com/m04kA/SMC-CafeOrderService/pkg/txmanager"
)

const poolStatsInterval = 15 * time.Second

// bookingStore счетчики слотов и заказы, общий контракт всех драйверов
type bookingStore interface {
	placeOrderUC.BookingStore
	getAvailableSlotsUC.BookingCounter
	ordersService.OrderRepository
}

type storage struct {
	settings  settingsService.SettingsRepository
	bookings  bookingStore
	txManager placeOrderUC.TransactionManager
	close     func()
}

// openStorage подключает хранилище по storage.driver
func openStorage(ctx context.Context, cfg *config.Config, m *metrics.Metrics, log *logger.Logger) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg, m, log)
	case config.DriverMongo:
		return openMongo(ctx, cfg, log)
	default:
		log.Warn("Using in-memory storage: data is lost on restart")
		store := memory.NewStore()
		return &storage{
			settings:  store,
			bookings:  store,
			txManager: txmanager.NewNopManager(),
			close:     func() {},
		}, nil
	}
}

func openPostgres(ctx context.Context, cfg *config.Config, m *metrics.Metrics, log *logger.Logger) (*storage, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	wrapped := dbmetrics.Wrap(db, m)
	if err := wrapped.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	stop := make(chan struct{})
	dbmetrics.CollectPoolStats(wrapped, m, poolStatsInterval, stop)

	return &storage{
		settings:  settingsRepo.NewRepository(wrapped),
		bookings:  bookingRepo.NewRepository(wrapped),
		txManager: txmanager.NewTransactionManager(wrapped),
		close: func() {
			close(stop)
			wrapped.Close()
		},
	}, nil
}

func openMongo(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	client, err := docstore.Connect(ctx, cfg.Mongo.URI, time.Duration(cfg.Mongo.ConnectTimeout)*time.Second)
	if err != nil {
		return nil, err
	}

	store := docstore.NewStore(client.Database(cfg.Mongo.Database))
	if err := store.EnsureIndexes(ctx); err != nil {
		client.Disconnect(context.Background())
		return nil, err
	}
	log.Info("Successfully connected to MongoDB (db=%s)", cfg.Mongo.Database)

	return &storage{
		settings:  store,
		bookings:  store,
		txManager: txmanager.NewNopManager(),
		close: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			client.Disconnect(ctx)
		},
	}, nil
}
