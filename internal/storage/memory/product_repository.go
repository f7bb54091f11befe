package memory

import (
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// productRepositoryInMemory — in-memory реализация каталога.
// Для проверки restrict-on-delete хранит ссылку на репозиторий заказов.
type productRepositoryInMemory struct {
	mu     sync.RWMutex
	items  map[string]domain.Product
	orders domain.OrderRepository
}

// NewProductRepository возвращает in-memory репозиторий каталога.
// orders может быть nil; тогда удаление не проверяет ссылающиеся позиции.
func NewProductRepository(orders domain.OrderRepository) domain.ProductRepository {
	return &productRepositoryInMemory{
		items:  make(map[string]domain.Product),
		orders: orders,
	}
}

// Create сохраняет новый товар.
func (r *productRepositoryInMemory) Create(product domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[product.ID] = cloneProduct(product)
	return nil
}

// Get возвращает товар или ErrProductNotFound, если его нет.
func (r *productRepositoryInMemory) Get(id string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.items[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return cloneProduct(product), nil
}

// GetMany возвращает товары по набору идентификаторов; отсутствующие пропускаются.
func (r *productRepositoryInMemory) GetMany(ids []string) (map[string]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]domain.Product, len(ids))
	for _, id := range ids {
		if product, ok := r.items[id]; ok {
			result[id] = cloneProduct(product)
		}
	}
	return result, nil
}

// List возвращает весь каталог, отсортированный по дате создания.
func (r *productRepositoryInMemory) List() ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Product, 0, len(r.items))
	for _, product := range r.items {
		result = append(result, cloneProduct(product))
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// Save перезаписывает товар или возвращает ErrProductNotFound.
func (r *productRepositoryInMemory) Save(product domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	r.items[product.ID] = cloneProduct(product)
	return nil
}

// Delete удаляет товар; позиции заказов блокируют удаление (restrict).
func (r *productRepositoryInMemory) Delete(id string) error {
	if r.orders != nil {
		items, err := r.orders.ListItems()
		if err != nil {
			return err
		}
		for _, item := range items {
			if item.ProductID == id {
				return domain.ErrProductInUse
			}
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.items, id)
	return nil
}

func cloneProduct(src domain.Product) domain.Product {
	dst := src
	dst.Photo = append([]byte(nil), src.Photo...)
	return dst
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)
