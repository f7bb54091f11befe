package domain

// OrderRepository описывает требования к хранилищу заказов.
// Заказ хранится как агрегат: позиции загружаются и сохраняются вместе с ним.
type OrderRepository interface {
	// Create сохраняет новый заказ вместе с позициями в одной транзакции.
	Create(order Order) error
	// Get возвращает заказ по идентификатору или ErrOrderNotFound, если его нет.
	Get(id string) (Order, error)
	// GetByItem возвращает заказ, которому принадлежит позиция,
	// или ErrOrderItemNotFound, если позиция неизвестна.
	GetByItem(itemID string) (Order, error)
	// List возвращает все заказы (для администратора) с опциональным лимитом.
	List(limit int) ([]Order, error)
	// ListByUser возвращает заказы пользователя с опциональным лимитом.
	ListByUser(userID string, limit int) ([]Order, error)
	// ListItems возвращает все позиции всех заказов.
	ListItems() ([]OrderItem, error)
	// Save применяет обновления к заказу и его позициям с учётом optimistic locking.
	Save(order Order) error
	// Delete удаляет заказ вместе с позициями или возвращает ErrOrderNotFound.
	Delete(id string) error
}

// ProductRepository описывает требования к хранилищу каталога.
type ProductRepository interface {
	// Create сохраняет новый товар.
	Create(product Product) error
	// Get возвращает товар или ErrProductNotFound, если его нет.
	Get(id string) (Product, error)
	// GetMany возвращает товары по набору идентификаторов одним запросом.
	// Отсутствующие идентификаторы в результат не попадают.
	GetMany(ids []string) (map[string]Product, error)
	// List возвращает весь каталог.
	List() ([]Product, error)
	// Save перезаписывает товар или возвращает ErrProductNotFound.
	Save(product Product) error
	// Delete удаляет товар; возвращает ErrProductInUse, если на товар
	// ссылаются позиции заказов.
	Delete(id string) error
}

// UserRepository описывает требования к хранилищу аккаунтов.
type UserRepository interface {
	// Create сохраняет нового пользователя; уникальность username/email
	// контролируется хранилищем.
	Create(user User) error
	// Get возвращает пользователя или ErrUserNotFound, если его нет.
	Get(id string) (User, error)
	// GetByEmail возвращает пользователя по email или ErrUserNotFound.
	GetByEmail(email string) (User, error)
	// GetByUsername возвращает пользователя по имени или ErrUserNotFound.
	GetByUsername(username string) (User, error)
	// List возвращает всех пользователей.
	List() ([]User, error)
	// Save перезаписывает пользователя или возвращает ErrUserNotFound.
	Save(user User) error
	// Delete удаляет пользователя; возвращает ErrUserHasOrders, если на
	// пользователя ссылаются заказы.
	Delete(id string) error
	// Count возвращает число аккаунтов; используется бутстрапом сидинга.
	Count() (int, error)
}
