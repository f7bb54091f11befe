package order

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
	"github.com/vladislavdragonenkov/storefront/internal/service/auth"
)

const (
	timelineEventOrderCreated       = "OrderCreated"
	timelineEventOrderStatusChanged = "OrderStatusChanged"
	timelineEventItemUpdated        = "OrderItemUpdated"
	timelineEventItemDeleted        = "OrderItemDeleted"

	// Количество повторов Save при конфликте версий: пересчёт суммы
	// перечитывает агрегат, поэтому гонку двух мутаций можно разрешить повтором.
	saveRetryAttempts = 3
)

// Service управляет жизненным циклом заказа и его позиций и поддерживает
// инвариант: сумма заказа всегда равна сумме qty*price по текущим позициям.
type Service struct {
	orders   domain.OrderRepository
	users    domain.UserRepository
	resolver *snapshotResolver
	outbox   domain.OutboxRepository
	timeline domain.TimelineRepository
	metrics  *metrics.OrderMetrics
	logger   *log.Entry
}

// NewService конструирует сервис заказов. Outbox, timeline и metrics опциональны.
func NewService(
	orders domain.OrderRepository,
	products domain.ProductRepository,
	users domain.UserRepository,
	outbox domain.OutboxRepository,
	timeline domain.TimelineRepository,
	orderMetrics *metrics.OrderMetrics,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.WithField("component", "order-service")
	}
	return &Service{
		orders:   orders,
		users:    users,
		resolver: &snapshotResolver{products: products},
		outbox:   outbox,
		timeline: timeline,
		metrics:  orderMetrics,
		logger:   logger,
	}
}

// Create создаёт заказ из запрошенных строк. Цена каждой позиции фиксируется
// на момент создания; статус всегда pending; сумма вычисляется из позиций.
// Если хотя бы одна строка не резолвится, заказ не сохраняется вовсе.
func (s *Service) Create(actor auth.Context, lines []Line) (domain.Order, error) {
	user, err := s.users.Get(actor.UserID)
	if err != nil {
		return domain.Order{}, err
	}
	if !user.Active {
		return domain.Order{}, domain.ErrUserInactive
	}

	snapshots, currency, err := s.resolver.resolve(lines)
	if err != nil {
		return domain.Order{}, err
	}

	now := time.Now().UTC()
	items := make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, domain.OrderItem{
			ID:         uuid.NewString(),
			ProductID:  line.ProductID,
			Qty:        line.Qty,
			PriceMinor: snapshots[line.ProductID].PriceMinor,
			CreatedAt:  now,
		})
	}

	order := domain.Order{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Status:    domain.OrderStatusPending,
		Currency:  currency,
		Items:     items,
		Version:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	order.Recalculate()

	if errs := order.ValidateInvariants(); len(errs) > 0 {
		return domain.Order{}, fmt.Errorf("order invariants violated: %v", errs)
	}

	if err := s.orders.Create(order); err != nil {
		s.logger.WithError(err).WithField("user_id", user.ID).Error("failed to create order")
		return domain.Order{}, err
	}
	s.metrics.RecordOrderCreated()

	s.emitEvent(&order, timelineEventOrderCreated, map[string]interface{}{
		"status":       string(order.Status),
		"amount_minor": order.AmountMinor,
		"currency":     order.Currency,
		"items":        len(order.Items),
		"ts":           order.CreatedAt.Format(time.RFC3339Nano),
	})

	return order, nil
}

// Get возвращает заказ с позициями; чтение чужого заказа разрешено только администратору.
func (s *Service) Get(actor auth.Context, orderID string) (domain.Order, error) {
	order, err := s.orders.Get(orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if !actor.CanAccess(order.UserID) {
		return domain.Order{}, domain.ErrForbidden
	}
	return order, nil
}

// List возвращает заказы: администратору — все, пользователю — только собственные.
func (s *Service) List(actor auth.Context, limit int) ([]domain.Order, error) {
	if actor.IsAdmin() {
		return s.orders.List(limit)
	}
	return s.orders.ListByUser(actor.UserID, limit)
}

// Timeline возвращает события жизненного цикла заказа.
func (s *Service) Timeline(actor auth.Context, orderID string) ([]domain.TimelineEvent, error) {
	order, err := s.orders.Get(orderID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(order.UserID) {
		return nil, domain.ErrForbidden
	}
	if s.timeline == nil {
		return []domain.TimelineEvent{}, nil
	}
	return s.timeline.List(order.ID)
}

// ListItems возвращает все позиции всех заказов.
func (s *Service) ListItems() ([]domain.OrderItem, error) {
	return s.orders.ListItems()
}

// GetItem возвращает позицию заказа по её идентификатору.
func (s *Service) GetItem(itemID string) (domain.OrderItem, error) {
	order, err := s.orders.GetByItem(itemID)
	if err != nil {
		return domain.OrderItem{}, err
	}
	item := order.ItemByID(itemID)
	if item == nil {
		return domain.OrderItem{}, domain.ErrOrderItemNotFound
	}
	return *item, nil
}

// UpdateItemQuantity меняет количество в позиции и пересчитывает сумму
// родительского заказа по всем его текущим позициям.
func (s *Service) UpdateItemQuantity(itemID string, qty int32) (domain.Order, error) {
	if qty <= 0 {
		return domain.Order{}, domain.ErrQuantityInvalid
	}

	var updated domain.Order
	err := s.saveWithRetry(func() (domain.Order, error) {
		order, err := s.orders.GetByItem(itemID)
		if err != nil {
			return domain.Order{}, err
		}
		item := order.ItemByID(itemID)
		if item == nil {
			return domain.Order{}, domain.ErrOrderItemNotFound
		}
		item.Qty = qty
		order.Recalculate()
		order.UpdatedAt = time.Now().UTC()
		updated = order
		return order, nil
	})
	if err != nil {
		return domain.Order{}, err
	}
	s.metrics.RecordTotalRecompute()

	s.emitEvent(&updated, timelineEventItemUpdated, map[string]interface{}{
		"item_id":      itemID,
		"qty":          qty,
		"amount_minor": updated.AmountMinor,
		"ts":           updated.UpdatedAt.Format(time.RFC3339Nano),
	})

	return updated, nil
}

// DeleteItem удаляет позицию и пересчитывает сумму родительского заказа.
// Если позиций не осталось, сумма становится нулевой.
func (s *Service) DeleteItem(itemID string) (domain.Order, error) {
	var updated domain.Order
	err := s.saveWithRetry(func() (domain.Order, error) {
		order, err := s.orders.GetByItem(itemID)
		if err != nil {
			return domain.Order{}, err
		}
		if !order.RemoveItem(itemID) {
			return domain.Order{}, domain.ErrOrderItemNotFound
		}
		order.Recalculate()
		order.UpdatedAt = time.Now().UTC()
		updated = order
		return order, nil
	})
	if err != nil {
		return domain.Order{}, err
	}
	s.metrics.RecordTotalRecompute()

	s.emitEvent(&updated, timelineEventItemDeleted, map[string]interface{}{
		"item_id":      itemID,
		"amount_minor": updated.AmountMinor,
		"ts":           updated.UpdatedAt.Format(time.RFC3339Nano),
	})

	return updated, nil
}

// UpdateStatus меняет статус заказа; сумма и позиции не затрагиваются.
// Переходы не ограничены: терминальных состояний нет.
func (s *Service) UpdateStatus(orderID string, status domain.OrderStatus) (domain.Order, error) {
	if !status.Valid() {
		return domain.Order{}, domain.ErrInvalidOrderStatus
	}

	var updated domain.Order
	err := s.saveWithRetry(func() (domain.Order, error) {
		order, err := s.orders.Get(orderID)
		if err != nil {
			return domain.Order{}, err
		}
		order.Status = status
		order.UpdatedAt = time.Now().UTC()
		updated = order
		return order, nil
	})
	if err != nil {
		return domain.Order{}, err
	}
	s.metrics.RecordStatusChange(string(status))

	s.emitEvent(&updated, timelineEventOrderStatusChanged, map[string]interface{}{
		"status": string(status),
		"ts":     updated.UpdatedAt.Format(time.RFC3339Nano),
	})

	return updated, nil
}

// Delete удаляет заказ вместе со всеми позициями. Товары и владелец
// затронуты не будут.
func (s *Service) Delete(orderID string) error {
	order, err := s.orders.Get(orderID)
	if err != nil {
		return err
	}

	if err := s.orders.Delete(order.ID); err != nil {
		return err
	}
	s.metrics.RecordOrderDeleted()

	s.emitEvent(&order, "OrderDeleted", map[string]interface{}{
		"ts": time.Now().UTC().Format(time.RFC3339Nano),
	})

	return nil
}

// saveWithRetry перечитывает агрегат и повторяет сохранение при конфликте версий.
func (s *Service) saveWithRetry(mutate func() (domain.Order, error)) error {
	var lastErr error
	for attempt := 0; attempt < saveRetryAttempts; attempt++ {
		order, err := mutate()
		if err != nil {
			return err
		}
		err = s.orders.Save(order)
		if err == nil {
			return nil
		}
		if !domain.IsVersionConflict(err) {
			return err
		}
		lastErr = err
	}
	return lastErr
}

func (s *Service) emitEvent(order *domain.Order, eventType string, payload map[string]interface{}) {
	if payload == nil {
		payload = make(map[string]interface{})
	}
	payload["order_id"] = order.ID

	if s.outbox != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			s.logger.WithError(err).WithFields(log.Fields{
				"order_id": order.ID,
				"event":    eventType,
			}).Error("marshal event failed")
			return
		}

		msg := domain.OutboxMessage{
			AggregateType: "order",
			AggregateID:   order.ID,
			EventType:     eventType,
			Payload:       data,
		}
		if _, err := s.outbox.Enqueue(msg); err != nil {
			s.logger.WithError(err).WithFields(log.Fields{
				"order_id": order.ID,
				"event":    eventType,
			}).Error("enqueue event failed")
		} else {
			s.metrics.RecordOutboxEvent()
		}
	}

	if s.timeline != nil {
		occurred := time.Now().UTC()
		if ts, ok := payload["ts"].(string); ok {
			if parsed, parseErr := time.Parse(time.RFC3339Nano, ts); parseErr == nil {
				occurred = parsed
			}
		}
		event := domain.TimelineEvent{
			OrderID:  order.ID,
			Type:     eventType,
			Occurred: occurred,
		}
		if reason, ok := payload["reason"].(string); ok {
			event.Reason = reason
		} else if status, ok := payload["status"].(string); ok {
			event.Reason = status
		}
		if err := s.timeline.Append(event); err != nil {
			s.logger.WithError(err).WithFields(log.Fields{
				"order_id": order.ID,
				"event":    eventType,
			}).Warn("append timeline event failed")
		} else {
			s.metrics.RecordTimelineEvent()
		}
	}
}
