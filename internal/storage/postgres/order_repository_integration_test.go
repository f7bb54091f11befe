package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func TestOrderRepository_PostgresCreateGetListAndSave(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)

	user := seedUserForIntegrationTest(t, store)
	product := seedProductForIntegrationTest(t, store, 150)

	now := time.Now().UTC().Round(time.Microsecond)
	order1 := sampleOrder(user.ID, product.ID, now.Add(-2*time.Minute))
	order2 := sampleOrder(user.ID, product.ID, now.Add(-time.Minute))

	if err := repo.Create(order1); err != nil {
		t.Fatalf("create order1: %v", err)
	}
	if err := repo.Create(order2); err != nil {
		t.Fatalf("create order2: %v", err)
	}

	got, err := repo.Get(order1.ID)
	if err != nil {
		t.Fatalf("get order1: %v", err)
	}
	if got.ID != order1.ID || got.UserID != order1.UserID || got.Status != order1.Status {
		t.Fatalf("unexpected order payload: %+v", got)
	}
	if len(got.Items) != len(order1.Items) {
		t.Fatalf("unexpected items count: got=%d want=%d", len(got.Items), len(order1.Items))
	}

	byItem, err := repo.GetByItem(order1.Items[0].ID)
	if err != nil {
		t.Fatalf("get by item: %v", err)
	}
	if byItem.ID != order1.ID {
		t.Fatalf("unexpected order by item: %s", byItem.ID)
	}

	listed, err := repo.ListByUser(user.ID, 1)
	if err != nil {
		t.Fatalf("list by user with limit: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != order2.ID {
		t.Fatalf("unexpected list result with limit: %+v", listed)
	}

	all, err := repo.List(0)
	if err != nil {
		t.Fatalf("list without limit: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(all))
	}

	items, err := repo.ListItems()
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	got.Status = domain.OrderStatusProcessing
	got.Items[0].Qty = 5
	got.Recalculate()
	got.UpdatedAt = now.Add(time.Minute)
	if err := repo.Save(got); err != nil {
		t.Fatalf("save order: %v", err)
	}

	updated, err := repo.Get(order1.ID)
	if err != nil {
		t.Fatalf("get updated order: %v", err)
	}
	if updated.Status != domain.OrderStatusProcessing {
		t.Fatalf("unexpected status after save: %s", updated.Status)
	}
	if updated.AmountMinor != 750 {
		t.Fatalf("unexpected amount after save: %d", updated.AmountMinor)
	}
	if updated.Version != got.Version+1 {
		t.Fatalf("unexpected version after save: got=%d want=%d", updated.Version, got.Version+1)
	}
}

func TestOrderRepository_PostgresDeleteCascades(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)

	user := seedUserForIntegrationTest(t, store)
	product := seedProductForIntegrationTest(t, store, 100)

	order := sampleOrder(user.ID, product.ID, time.Now().UTC().Round(time.Microsecond))
	if err := repo.Create(order); err != nil {
		t.Fatalf("create order: %v", err)
	}

	if err := repo.Delete(order.ID); err != nil {
		t.Fatalf("delete order: %v", err)
	}
	if _, err := repo.Get(order.ID); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}

	items, err := repo.ListItems()
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected items to cascade, got %d", len(items))
	}

	// Товар и владелец переживают удаление заказа.
	if _, err := NewProductRepository(store).Get(product.ID); err != nil {
		t.Fatalf("product must survive: %v", err)
	}
	if _, err := NewUserRepository(store).Get(user.ID); err != nil {
		t.Fatalf("user must survive: %v", err)
	}

	if err := repo.Delete(order.ID); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound on second delete, got %v", err)
	}
}

func TestOrderRepository_PostgresErrors(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)

	user := seedUserForIntegrationTest(t, store)
	product := seedProductForIntegrationTest(t, store, 100)

	now := time.Now().UTC().Round(time.Microsecond)
	base := sampleOrder(user.ID, product.ID, now)

	if _, err := repo.Get(uuid.NewString()); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
	if _, err := repo.GetByItem(uuid.NewString()); !errors.Is(err, domain.ErrOrderItemNotFound) {
		t.Fatalf("expected ErrOrderItemNotFound, got %v", err)
	}

	if err := repo.Save(base); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound on save missing, got %v", err)
	}

	if err := repo.Create(base); err != nil {
		t.Fatalf("create base order: %v", err)
	}
	if err := repo.Create(base); !errors.Is(err, domain.ErrOrderVersionConflict) {
		t.Fatalf("expected ErrOrderVersionConflict on duplicate create, got %v", err)
	}

	stale := base
	stale.Status = domain.OrderStatusCompleted
	stale.UpdatedAt = now.Add(time.Minute)
	stale.Version = 42
	if err := repo.Save(stale); !errors.Is(err, domain.ErrOrderVersionConflict) {
		t.Fatalf("expected ErrOrderVersionConflict on stale save, got %v", err)
	}

	// Позиция с неизвестным товаром нарушает FK.
	broken := sampleOrder(user.ID, uuid.NewString(), now.Add(time.Second))
	if err := repo.Create(broken); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound for unknown product, got %v", err)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if !isUniqueViolation(&pgconn.PgError{Code: "23505"}) {
		t.Fatal("expected unique violation for code 23505")
	}
	if isUniqueViolation(&pgconn.PgError{Code: "22001"}) {
		t.Fatal("unexpected unique violation for non-unique code")
	}
	if isUniqueViolation(errors.New("plain error")) {
		t.Fatal("plain error must not be unique violation")
	}
	if !isForeignKeyViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatal("expected foreign key violation for code 23503")
	}
}

func sampleOrder(userID, productID string, createdAt time.Time) domain.Order {
	items := []domain.OrderItem{
		{
			ID:         uuid.NewString(),
			ProductID:  productID,
			Qty:        2,
			PriceMinor: 150,
			CreatedAt:  createdAt,
		},
	}

	return domain.Order{
		ID:          uuid.NewString(),
		UserID:      userID,
		Status:      domain.OrderStatusPending,
		Currency:    "USD",
		AmountMinor: 300,
		Items:       items,
		Version:     0,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}
