package account

import (
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/service/auth"
)

// CreateInput — данные для создания пользователя администратором.
type CreateInput struct {
	Username string
	Email    string
	Password string
	Phone    string
	Role     domain.Role
}

// UpdateInput — административное обновление пользователя.
// Пустой Password означает "пароль не меняется".
type UpdateInput struct {
	Username string
	Email    string
	Password string
	Phone    string
	Role     domain.Role
	Active   bool
}

// ProfileInput — обновление собственного профиля. Смена пароля требует
// подтверждения текущим паролем.
type ProfileInput struct {
	Username        string
	Email           string
	Phone           string
	CurrentPassword string
	NewPassword     string
}

// Service управляет учётными записями и профилями.
type Service struct {
	users  domain.UserRepository
	auth   *auth.Service
	logger *log.Entry
}

// NewService конструирует сервис учётных записей.
func NewService(users domain.UserRepository, authSvc *auth.Service, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.WithField("component", "account-service")
	}
	return &Service{users: users, auth: authSvc, logger: logger}
}

// Login проверяет пару логин/пароль и выпускает JWT. Неверные учётные
// данные и деактивированный аккаунт различимы только по ошибке: наружу
// оба случая отдаются как 401.
func (s *Service) Login(username, password string) (string, domain.User, error) {
	user, err := s.users.GetByUsername(username)
	if err != nil {
		if domain.IsNotFound(err) {
			return "", domain.User{}, domain.ErrInvalidCredentials
		}
		return "", domain.User{}, err
	}
	if !s.auth.VerifyPassword(password, user.PasswordHash) {
		return "", domain.User{}, domain.ErrInvalidCredentials
	}
	if !user.Active {
		return "", domain.User{}, domain.ErrUserInactive
	}

	token, err := s.auth.IssueToken(user)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", user.ID).Error("failed to issue token")
		return "", domain.User{}, err
	}
	return token, user, nil
}

// Create регистрирует пользователя: хэширует пароль и сразу активирует аккаунт.
func (s *Service) Create(in CreateInput) (domain.User, error) {
	if err := validateIdentity(in.Username, in.Email); err != nil {
		return domain.User{}, err
	}
	if in.Password == "" {
		return domain.User{}, domain.ErrPasswordRequired
	}
	if in.Role == "" {
		in.Role = domain.RoleUser
	}
	if !in.Role.Valid() {
		return domain.User{}, domain.ErrInvalidRole
	}

	hash, err := s.auth.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Phone:        in.Phone,
		Role:         in.Role,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Get возвращает пользователя по идентификатору.
func (s *Service) Get(userID string) (domain.User, error) {
	return s.users.Get(userID)
}

// List возвращает всех пользователей.
func (s *Service) List() ([]domain.User, error) {
	return s.users.List()
}

// Update административно перезаписывает атрибуты пользователя, включая
// роль и флаг активности. Непустой Password заменяет хэш без проверки
// текущего пароля.
func (s *Service) Update(userID string, in UpdateInput) (domain.User, error) {
	if err := validateIdentity(in.Username, in.Email); err != nil {
		return domain.User{}, err
	}
	if !in.Role.Valid() {
		return domain.User{}, domain.ErrInvalidRole
	}

	user, err := s.users.Get(userID)
	if err != nil {
		return domain.User{}, err
	}

	user.Username = in.Username
	user.Email = in.Email
	user.Phone = in.Phone
	user.Role = in.Role
	user.Active = in.Active
	if in.Password != "" {
		hash, hashErr := s.auth.HashPassword(in.Password)
		if hashErr != nil {
			return domain.User{}, hashErr
		}
		user.PasswordHash = hash
	}

	if err := s.users.Save(user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Delete удаляет пользователя. Пользователь с заказами защищён от
// удаления: вернётся ErrUserHasOrders.
func (s *Service) Delete(userID string) error {
	if _, err := s.users.Get(userID); err != nil {
		return err
	}
	return s.users.Delete(userID)
}

// UpdateProfile меняет собственные данные пользователя. Роль и флаг
// активности через профиль недоступны; смена пароля требует текущий пароль.
func (s *Service) UpdateProfile(userID string, in ProfileInput) (domain.User, error) {
	if err := validateIdentity(in.Username, in.Email); err != nil {
		return domain.User{}, err
	}

	user, err := s.users.Get(userID)
	if err != nil {
		return domain.User{}, err
	}

	if in.NewPassword != "" {
		if !s.auth.VerifyPassword(in.CurrentPassword, user.PasswordHash) {
			return domain.User{}, domain.ErrInvalidCredentials
		}
		hash, hashErr := s.auth.HashPassword(in.NewPassword)
		if hashErr != nil {
			return domain.User{}, hashErr
		}
		user.PasswordHash = hash
	}

	user.Username = in.Username
	user.Email = in.Email
	user.Phone = in.Phone

	if err := s.users.Save(user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// SetPhoto валидирует и сохраняет фотографию профиля.
func (s *Service) SetPhoto(userID, contentType string, data []byte) (domain.User, error) {
	if err := domain.ValidatePhoto(contentType, int64(len(data))); err != nil {
		return domain.User{}, err
	}

	user, err := s.users.Get(userID)
	if err != nil {
		return domain.User{}, err
	}
	user.Photo = data

	if err := s.users.Save(user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func validateIdentity(username, email string) error {
	if username == "" {
		return domain.ErrUsernameRequired
	}
	if email == "" {
		return domain.ErrEmailRequired
	}
	return nil
}
