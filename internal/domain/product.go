package domain

import "time"

// ProductStatus описывает доступность товара в каталоге.
type ProductStatus string

const (
	// ProductStatusActive — товар отображается в каталоге.
	ProductStatusActive ProductStatus = "active"
	// ProductStatusInactive — товар скрыт, но исторические заказы его сохраняют.
	ProductStatusInactive ProductStatus = "inactive"
)

// Valid проверяет, что статус относится к поддерживаемым значениям.
func (s ProductStatus) Valid() bool {
	switch s {
	case ProductStatusActive, ProductStatusInactive:
		return true
	default:
		return false
	}
}

// Product представляет товар каталога.
type Product struct {
	ID          string
	Name        string
	Description string
	// PriceMinor — текущая цена за единицу в минимальных денежных единицах.
	PriceMinor int64
	Currency   string
	Status     ProductStatus
	// StockQty — складской остаток; информативное поле, резервирование не выполняется.
	StockQty int32
	// Photo хранит бинарное изображение товара; может быть пустым.
	Photo     []byte
	CreatedAt time.Time
}

// ValidateInvariants проверяет базовые инварианты товара.
func (p *Product) ValidateInvariants() []error {
	var errs []error

	if p.Name == "" {
		errs = append(errs, ErrProductNameRequired)
	}
	if p.PriceMinor < 0 {
		errs = append(errs, ErrPriceNegative)
	}
	if p.Currency == "" {
		errs = append(errs, ErrCurrencyRequired)
	}
	if !p.Status.Valid() {
		errs = append(errs, ErrInvalidProductStatus)
	}

	return errs
}

// PriceSnapshot фиксирует цену и валюту товара на момент создания заказа.
type PriceSnapshot struct {
	PriceMinor int64
	Currency   string
}
