package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

const defaultTokenTTL = 24 * time.Hour

// Context описывает аутентифицированного пользователя запроса.
// Передаётся в сервисы явно, а не читается из ambient-состояния запроса.
type Context struct {
	UserID string
	Role   domain.Role
}

// IsAdmin сообщает, имеет ли пользователь административные права.
func (c Context) IsAdmin() bool {
	return c.Role == domain.RoleAdmin
}

// CanAccess проверяет право доступа к ресурсу, которым владеет ownerID.
func (c Context) CanAccess(ownerID string) bool {
	return c.IsAdmin() || c.UserID == ownerID
}

// Claims — полезная нагрузка JWT-токена.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.StandardClaims
}

// Service выпускает и проверяет токены и пароли.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService создаёт auth-сервис с HS256-секретом и временем жизни токена.
func NewService(secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &Service{secret: []byte(secret), ttl: ttl}
}

// HashPassword возвращает bcrypt-хэш пароля.
func (s *Service) HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// VerifyPassword сверяет пароль с bcrypt-хэшем.
func (s *Service) VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// IssueToken выпускает JWT для пользователя.
func (s *Service) IssueToken(user domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.ttl).Unix(),
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken проверяет подпись и срок действия токена и возвращает контекст пользователя.
func (s *Service) ParseToken(tokenStr string) (Context, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return Context{}, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Context{}, errors.New("invalid token")
	}

	role := domain.Role(claims.Role)
	if !role.Valid() {
		return Context{}, domain.ErrInvalidRole
	}

	return Context{UserID: claims.UserID, Role: role}, nil
}
