package domain

import "errors"

var (
	// ErrUserNotFound возвращается, если пользователь не найден в репозитории.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserInactive возвращается при попытке действовать от имени деактивированного аккаунта.
	ErrUserInactive = errors.New("user account is inactive")
	// ErrUsernameTaken — имя пользователя уже занято.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrEmailTaken — email уже занят.
	ErrEmailTaken = errors.New("email already taken")
	// ErrUserHasOrders — пользователя нельзя удалить, пока на него ссылаются заказы.
	ErrUserHasOrders = errors.New("user is referenced by existing orders")
	// ErrInvalidCredentials — неверная пара логин/пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidRole — роль вне поддерживаемого набора.
	ErrInvalidRole = errors.New("invalid user role")
	// ErrUsernameRequired — имя пользователя обязательно.
	ErrUsernameRequired = errors.New("username is required")
	// ErrEmailRequired — email обязателен.
	ErrEmailRequired = errors.New("email is required")
	// ErrPasswordRequired — пароль обязателен.
	ErrPasswordRequired = errors.New("password is required")

	// ErrProductNotFound возвращается, если товар не найден в каталоге.
	ErrProductNotFound = errors.New("product not found")
	// ErrProductInUse — товар нельзя удалить, пока на него ссылаются позиции заказов.
	ErrProductInUse = errors.New("product is referenced by existing order items")
	// ErrPriceNegative — цена товара не может быть отрицательной.
	ErrPriceNegative = errors.New("price_minor must be non-negative")
	// ErrProductNameRequired — у товара должно быть имя.
	ErrProductNameRequired = errors.New("product name is required")
	// ErrInvalidProductStatus — статус товара вне набора active/inactive.
	ErrInvalidProductStatus = errors.New("invalid product status")

	// ErrPhotoEmpty — пустой файл изображения недопустим.
	ErrPhotoEmpty = errors.New("photo file is empty")
	// ErrPhotoTooLarge — размер изображения превышает допустимый лимит.
	ErrPhotoTooLarge = errors.New("photo exceeds maximum allowed size")
	// ErrPhotoUnsupportedType — тип содержимого не входит в список разрешённых.
	ErrPhotoUnsupportedType = errors.New("unsupported photo content type")

	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderItemNotFound возвращается, если позиция заказа не найдена.
	ErrOrderItemNotFound = errors.New("order item not found")
	// ErrOrderVersionConflict сигнализирует о конфликте версий при сохранении.
	ErrOrderVersionConflict = errors.New("order version conflict")
	// ErrItemsRequired — заказ должен содержать хотя бы одну позицию.
	ErrItemsRequired = errors.New("order must contain at least one item")
	// ErrQuantityInvalid — количество должно быть строго положительным.
	ErrQuantityInvalid = errors.New("quantity must be greater than zero")
	// ErrInvalidOrderStatus — статус заказа вне поддерживаемого набора.
	ErrInvalidOrderStatus = errors.New("invalid order status")
	// ErrCurrencyMismatch — позиции заказа ссылаются на товары в разных валютах.
	ErrCurrencyMismatch = errors.New("order items span multiple currencies")
	// ErrCustomerRequired — у заказа должен быть владелец.
	ErrCustomerRequired = errors.New("user_id is required")
	// ErrCurrencyRequired — у заказа должен быть код валюты.
	ErrCurrencyRequired = errors.New("currency is required")
	// ErrAmountNegative — сумма заказа не может быть отрицательной.
	ErrAmountNegative = errors.New("amount_minor must be non-negative")
	// ErrItemPriceInvalid — цена позиции не может быть отрицательной.
	ErrItemPriceInvalid = errors.New("item price must be non-negative")
	// ErrAmountMismatch — сумма заказа не совпадает с суммой позиций.
	ErrAmountMismatch = errors.New("order amount does not match items sum")

	// ErrForbidden — пользователь не владеет заказом и не является администратором.
	ErrForbidden = errors.New("operation is not allowed for this user")

	// ErrOutboxPublish — ошибка при публикации сообщения из outbox.
	ErrOutboxPublish = errors.New("outbox publish failed")

	// ErrIdempotencyKeyRequired — пустой idempotency-key недопустим.
	ErrIdempotencyKeyRequired = errors.New("idempotency key is required")
	// ErrIdempotencyRequestHashRequired — пустой хэш запроса недопустим.
	ErrIdempotencyRequestHashRequired = errors.New("idempotency request hash is required")
	// ErrIdempotencyKeyAlreadyExists — ключ уже зарегистрирован с тем же запросом.
	ErrIdempotencyKeyAlreadyExists = errors.New("idempotency key already exists")
	// ErrIdempotencyHashMismatch — ключ переиспользован с другим телом запроса.
	ErrIdempotencyHashMismatch = errors.New("idempotency key reused with a different request")
	// ErrIdempotencyKeyNotFound — ключ не найден в хранилище.
	ErrIdempotencyKeyNotFound = errors.New("idempotency key not found")
)

// IsVersionConflict проверяет, является ли ошибка конфликтом версий.
func IsVersionConflict(err error) bool {
	return errors.Is(err, ErrOrderVersionConflict)
}

// IsNotFound проверяет, относится ли ошибка к классу "сущность не найдена".
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrOrderItemNotFound)
}
