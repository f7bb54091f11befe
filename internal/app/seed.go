package app

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/service/auth"
)

// seedData наполняет пустое хранилище демонстрационными данными:
// два аккаунта, десять товаров и три исторических заказа. Повторный
// запуск на непустой базе ничего не делает.
func seedData(deps *Dependencies, authSvc *auth.Service, logger *log.Entry) error {
	count, err := deps.Users.Count()
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		logger.Debug("storage is not empty, skipping seed")
		return nil
	}

	now := time.Now().UTC()

	adminHash, err := authSvc.HashPassword("admin")
	if err != nil {
		return err
	}
	userHash, err := authSvc.HashPassword("password")
	if err != nil {
		return err
	}

	admin := domain.User{
		ID:           uuid.NewString(),
		Username:     "admin",
		Email:        "admin@storefront.local",
		PasswordHash: adminHash,
		Role:         domain.RoleAdmin,
		Active:       true,
		CreatedAt:    now,
	}
	customer := domain.User{
		ID:           uuid.NewString(),
		Username:     "demo",
		Email:        "demo@storefront.local",
		PasswordHash: userHash,
		Phone:        "+15550100",
		Role:         domain.RoleUser,
		Active:       true,
		CreatedAt:    now,
	}
	for _, user := range []domain.User{admin, customer} {
		if err := deps.Users.Create(user); err != nil {
			return fmt.Errorf("seed user %s: %w", user.Username, err)
		}
	}

	type seedProduct struct {
		name       string
		desc       string
		priceMinor int64
		stock      int32
	}
	catalog := []seedProduct{
		{"Laptop", "14-inch ultrabook", 129900, 12},
		{"Smartphone", "6.1-inch OLED phone", 89900, 30},
		{"Headphones", "Over-ear, noise cancelling", 24900, 50},
		{"Keyboard", "Mechanical, tenkeyless", 10900, 40},
		{"Mouse", "Wireless optical mouse", 4900, 80},
		{"Monitor", "27-inch QHD display", 32900, 15},
		{"Webcam", "1080p USB camera", 7900, 25},
		{"Docking Station", "USB-C dock with dual HDMI", 18900, 10},
		{"External SSD", "1 TB portable drive", 12900, 35},
		{"Desk Lamp", "LED lamp with USB charging", 3900, 60},
	}

	products := make([]domain.Product, 0, len(catalog))
	for _, item := range catalog {
		product := domain.Product{
			ID:          uuid.NewString(),
			Name:        item.name,
			Description: item.desc,
			PriceMinor:  item.priceMinor,
			Currency:    "USD",
			Status:      domain.ProductStatusActive,
			StockQty:    item.stock,
			CreatedAt:   now,
		}
		if err := deps.Products.Create(product); err != nil {
			return fmt.Errorf("seed product %s: %w", item.name, err)
		}
		products = append(products, product)
	}

	// Три исторических заказа с зафиксированными ценами.
	seedOrders := []struct {
		status domain.OrderStatus
		age    time.Duration
		lines  []int // индексы в products
		qty    []int32
	}{
		{domain.OrderStatusCompleted, 72 * time.Hour, []int{0, 4}, []int32{1, 2}},
		{domain.OrderStatusProcessing, 24 * time.Hour, []int{2}, []int32{1}},
		{domain.OrderStatusPending, time.Hour, []int{5, 3, 8}, []int32{2, 1, 1}},
	}

	for _, seed := range seedOrders {
		createdAt := now.Add(-seed.age)
		order := domain.Order{
			ID:        uuid.NewString(),
			UserID:    customer.ID,
			Status:    seed.status,
			Currency:  "USD",
			Version:   1,
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		}
		for i, idx := range seed.lines {
			order.Items = append(order.Items, domain.OrderItem{
				ID:         uuid.NewString(),
				ProductID:  products[idx].ID,
				Qty:        seed.qty[i],
				PriceMinor: products[idx].PriceMinor,
				CreatedAt:  createdAt,
			})
		}
		order.Recalculate()
		if err := deps.Orders.Create(order); err != nil {
			return fmt.Errorf("seed order: %w", err)
		}
	}

	logger.WithFields(log.Fields{
		"users":    2,
		"products": len(products),
		"orders":   len(seedOrders),
	}).Info("seeded demo data")
	return nil
}
