package domain

import "time"

// Role описывает уровень прав пользователя.
type Role string

const (
	// RoleAdmin — полный доступ ко всем ресурсам.
	RoleAdmin Role = "admin"
	// RoleUser — доступ только к собственным заказам и профилю.
	RoleUser Role = "user"
)

// Valid проверяет, что роль относится к поддерживаемым значениям.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	default:
		return false
	}
}

// User представляет аккаунт пользователя.
type User struct {
	ID       string
	Username string
	Email    string
	// PasswordHash — bcrypt-хэш пароля; сырой пароль нигде не хранится.
	PasswordHash string
	Phone        string
	Role         Role
	// Active — деактивированный аккаунт не может логиниться и создавать заказы.
	Active bool
	// Photo хранит бинарный аватар пользователя; может быть пустым.
	Photo     []byte
	CreatedAt time.Time
}
