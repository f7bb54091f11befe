package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

type userRepository struct {
	db *sql.DB
}

// NewUserRepository создаёт PostgreSQL-реализацию UserRepository.
func NewUserRepository(store *Store) domain.UserRepository {
	return &userRepository{db: store.DB()}
}

func (r *userRepository) Create(user domain.User) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, username, email, password_hash, phone, role, active, photo, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		user.ID, user.Username, user.Email, user.PasswordHash,
		user.Phone, string(user.Role), user.Active, user.Photo, user.CreatedAt,
	)
	if err != nil {
		if uniqueErr := mapUserUniqueViolation(err); uniqueErr != nil {
			return uniqueErr
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

func (r *userRepository) Get(id string) (domain.User, error) {
	return r.getBy(`WHERE id = $1`, id)
}

func (r *userRepository) GetByEmail(email string) (domain.User, error) {
	return r.getBy(`WHERE email = $1`, email)
}

func (r *userRepository) GetByUsername(username string) (domain.User, error) {
	return r.getBy(`WHERE username = $1`, username)
}

func (r *userRepository) List() ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, username, email, password_hash, phone, role, active, photo, created_at
		FROM users
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user rows: %w", err)
	}

	return users, nil
}

func (r *userRepository) Save(user domain.User) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET username = $2,
		    email = $3,
		    password_hash = $4,
		    phone = $5,
		    role = $6,
		    active = $7,
		    photo = $8
		WHERE id = $1
	`,
		user.ID, user.Username, user.Email, user.PasswordHash,
		user.Phone, string(user.Role), user.Active, user.Photo,
	)
	if err != nil {
		if uniqueErr := mapUserUniqueViolation(err); uniqueErr != nil {
			return uniqueErr
		}
		return fmt.Errorf("update user: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

func (r *userRepository) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	// FK orders.user_id объявлен RESTRICT: владельца заказов не удалить.
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserHasOrders
		}
		return fmt.Errorf("delete user: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

func (r *userRepository) Count() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

func (r *userRepository) getBy(where string, arg interface{}) (domain.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	user, err := scanUser(r.db.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, phone, role, active, photo, created_at
		FROM users
	`+where, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("select user: %w", err)
	}

	return user, nil
}

func scanUser(row rowScanner) (domain.User, error) {
	var user domain.User
	var role string
	if err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.Phone, &role, &user.Active, &user.Photo, &user.CreatedAt,
	); err != nil {
		return domain.User{}, err
	}
	user.Role = domain.Role(role)
	return user, nil
}

// mapUserUniqueViolation переводит нарушение уникального индекса users
// в доменную ошибку по имени constraint.
func mapUserUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil
	}
	if strings.Contains(pgErr.ConstraintName, "email") {
		return domain.ErrEmailTaken
	}
	return domain.ErrUsernameTaken
}

var _ domain.UserRepository = (*userRepository)(nil)
