package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
	"github.com/vladislavdragonenkov/storefront/internal/storage/postgres"
)

// Dependencies содержит хранилища приложения. Store равен nil, когда
// приложение работает на in-memory реализациях.
type Dependencies struct {
	Users       domain.UserRepository
	Products    domain.ProductRepository
	Orders      domain.OrderRepository
	Outbox      domain.OutboxRepository
	Timeline    domain.TimelineRepository
	Idempotency domain.IdempotencyRepository
	Store       *postgres.Store
	Logger      *log.Entry
}

// NewDependencies создаёт хранилища: postgres, если задан DSN, иначе
// in-memory. Для postgres применяются недостающие миграции.
func NewDependencies(ctx context.Context, dsn string, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	if dsn == "" {
		logger.Info("postgres DSN not set, using in-memory storage")
		orders := memory.NewOrderRepository()
		return &Dependencies{
			Users:       memory.NewUserRepository(orders),
			Products:    memory.NewProductRepository(orders),
			Orders:      orders,
			Outbox:      memory.NewOutboxRepository(),
			Timeline:    memory.NewTimelineRepository(),
			Idempotency: memory.NewIdempotencyRepository(),
			Logger:      logger,
		}, nil
	}

	store, err := postgres.Open(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := store.EnsureSchema(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	logger.Info("postgres storage initialized")

	return &Dependencies{
		Users:       postgres.NewUserRepository(store),
		Products:    postgres.NewProductRepository(store),
		Orders:      postgres.NewOrderRepository(store),
		Outbox:      postgres.NewOutboxRepository(store),
		Timeline:    postgres.NewTimelineRepository(store),
		Idempotency: postgres.NewIdempotencyRepository(store),
		Store:       store,
		Logger:      logger,
	}, nil
}

// Close освобождает ресурсы хранилища.
func (d *Dependencies) Close() {
	if d == nil || d.Store == nil {
		return
	}
	if err := d.Store.Close(); err != nil {
		d.Logger.WithError(err).Warn("failed to close postgres store")
	}
}
