package memory

import (
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// userRepositoryInMemory — in-memory реализация хранилища аккаунтов.
type userRepositoryInMemory struct {
	mu     sync.RWMutex
	items  map[string]domain.User
	orders domain.OrderRepository
}

// NewUserRepository возвращает in-memory репозиторий аккаунтов.
// orders может быть nil; тогда удаление не проверяет ссылающиеся заказы.
func NewUserRepository(orders domain.OrderRepository) domain.UserRepository {
	return &userRepositoryInMemory{
		items:  make(map[string]domain.User),
		orders: orders,
	}
}

// Create сохраняет нового пользователя, контролируя уникальность username/email.
func (r *userRepositoryInMemory) Create(user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.Username == user.Username {
			return domain.ErrUsernameTaken
		}
		if existing.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	r.items[user.ID] = cloneUser(user)
	return nil
}

// Get возвращает пользователя или ErrUserNotFound, если его нет.
func (r *userRepositoryInMemory) Get(id string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.items[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return cloneUser(user), nil
}

// GetByEmail возвращает пользователя по email.
func (r *userRepositoryInMemory) GetByEmail(email string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.items {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

// GetByUsername возвращает пользователя по имени.
func (r *userRepositoryInMemory) GetByUsername(username string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.items {
		if user.Username == username {
			return cloneUser(user), nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

// List возвращает всех пользователей.
func (r *userRepositoryInMemory) List() ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.User, 0, len(r.items))
	for _, user := range r.items {
		result = append(result, cloneUser(user))
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// Save перезаписывает пользователя, сохраняя контроль уникальности.
func (r *userRepositoryInMemory) Save(user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	for id, existing := range r.items {
		if id == user.ID {
			continue
		}
		if existing.Username == user.Username {
			return domain.ErrUsernameTaken
		}
		if existing.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	r.items[user.ID] = cloneUser(user)
	return nil
}

// Delete удаляет пользователя; существующие заказы блокируют удаление (restrict).
func (r *userRepositoryInMemory) Delete(id string) error {
	if r.orders != nil {
		orders, err := r.orders.ListByUser(id, 1)
		if err != nil {
			return err
		}
		if len(orders) > 0 {
			return domain.ErrUserHasOrders
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.items, id)
	return nil
}

// Count возвращает число аккаунтов.
func (r *userRepositoryInMemory) Count() (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items), nil
}

func cloneUser(src domain.User) domain.User {
	dst := src
	dst.Photo = append([]byte(nil), src.Photo...)
	return dst
}

var _ domain.UserRepository = (*userRepositoryInMemory)(nil)
