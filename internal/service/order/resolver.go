package order

import (
	"fmt"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// Line — запрошенная строка заказа: товар и количество.
type Line struct {
	ProductID string
	Qty       int32
}

// snapshotResolver батчем переводит запрошенные строки заказа в ценовые
// снапшоты каталога.
type snapshotResolver struct {
	products domain.ProductRepository
}

// resolve валидирует строки и возвращает снапшот цены/валюты для каждого
// товара плюс валюту будущего заказа. Все товары загружаются одним запросом.
// Наборы строк с товарами в разных валютах отклоняются с ErrCurrencyMismatch:
// молчаливый выбор валюты "первого" товара — источник скрытых ошибок.
func (r *snapshotResolver) resolve(lines []Line) (map[string]domain.PriceSnapshot, string, error) {
	if len(lines) == 0 {
		return nil, "", domain.ErrItemsRequired
	}

	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		if line.Qty <= 0 {
			return nil, "", fmt.Errorf("product %s: %w", line.ProductID, domain.ErrQuantityInvalid)
		}
		ids = append(ids, line.ProductID)
	}

	products, err := r.products.GetMany(ids)
	if err != nil {
		return nil, "", fmt.Errorf("resolve products: %w", err)
	}

	snapshots := make(map[string]domain.PriceSnapshot, len(lines))
	currency := ""
	for _, line := range lines {
		product, ok := products[line.ProductID]
		if !ok {
			return nil, "", fmt.Errorf("product %s: %w", line.ProductID, domain.ErrProductNotFound)
		}
		if currency == "" {
			currency = product.Currency
		} else if product.Currency != currency {
			return nil, "", domain.ErrCurrencyMismatch
		}
		snapshots[line.ProductID] = domain.PriceSnapshot{
			PriceMinor: product.PriceMinor,
			Currency:   product.Currency,
		}
	}

	return snapshots, currency, nil
}
