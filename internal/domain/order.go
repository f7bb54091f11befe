package domain

import "time"

// OrderStatus описывает жизненный цикл заказа.
type OrderStatus string

const (
	// OrderStatusPending — заказ создан и ожидает обработки.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusProcessing — заказ взят в работу.
	OrderStatusProcessing OrderStatus = "processing"
	// OrderStatusCompleted — заказ выполнен.
	OrderStatusCompleted OrderStatus = "completed"
	// OrderStatusCancelled — заказ отменён.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid проверяет, что статус относится к поддерживаемым значениям.
// Таблица переходов плоская: любой статус может смениться на любой,
// терминальных состояний нет.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// OrderItem представляет одну позицию заказа.
type OrderItem struct {
	// ID позиции нужен для однозначной идентификации и аудита.
	ID string
	// ProductID — ссылка на товар каталога.
	ProductID string
	// Qty — количество единиц товара.
	Qty int32
	// PriceMinor — цена за единицу, зафиксированная в момент создания заказа.
	// Последующие изменения цены товара на позицию не влияют.
	PriceMinor int64
	// CreatedAt фиксирует момент добавления позиции в заказ.
	CreatedAt time.Time
}

// Order агрегирует состояние заказа и его позиции.
type Order struct {
	ID          string
	UserID      string
	Status      OrderStatus
	Currency    string
	AmountMinor int64
	Items       []OrderItem
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Recalculate приводит сумму заказа в соответствие с текущим набором позиций.
func (o *Order) Recalculate() {
	o.AmountMinor = TotalMinor(o.Items)
}

// ItemByID возвращает указатель на позицию заказа или nil, если её нет.
func (o *Order) ItemByID(itemID string) *OrderItem {
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			return &o.Items[i]
		}
	}
	return nil
}

// RemoveItem удаляет позицию по идентификатору и сообщает, была ли она найдена.
func (o *Order) RemoveItem(itemID string) bool {
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			o.Items = append(o.Items[:i], o.Items[i+1:]...)
			return true
		}
	}
	return false
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.UserID == "" {
		errs = append(errs, ErrCustomerRequired)
	}
	if o.Currency == "" {
		errs = append(errs, ErrCurrencyRequired)
	}
	if !o.Status.Valid() {
		errs = append(errs, ErrInvalidOrderStatus)
	}
	if len(o.Items) == 0 {
		errs = append(errs, ErrItemsRequired)
	}
	if o.AmountMinor < 0 {
		errs = append(errs, ErrAmountNegative)
	}

	// Сверяем сумму заказа с суммой позиций: qty * price.
	for _, item := range o.Items {
		if item.Qty <= 0 {
			errs = append(errs, ErrQuantityInvalid)
		}
		if item.PriceMinor < 0 {
			errs = append(errs, ErrItemPriceInvalid)
		}
	}
	if TotalMinor(o.Items) != o.AmountMinor {
		errs = append(errs, ErrAmountMismatch)
	}

	return errs
}
