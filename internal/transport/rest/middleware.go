package rest

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vladislavdragonenkov/storefront/internal/service/auth"
)

const authContextKey = "storefront.auth"

// authMiddleware извлекает Bearer-токен и кладёт контекст пользователя
// в контекст запроса. Запросы без валидного токена отклоняются с 401.
func authMiddleware(authSvc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
			return
		}

		actor, err := authSvc.ParseToken(strings.TrimPrefix(header, prefix))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "invalid token"})
			return
		}

		c.Set(authContextKey, actor)
		c.Next()
	}
}

// requireAdmin пропускает только администраторов.
func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !actorFrom(c).IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, errorResponse{Error: "admin role required"})
			return
		}
		c.Next()
	}
}

// actorFrom достаёт контекст пользователя, положенный authMiddleware.
func actorFrom(c *gin.Context) auth.Context {
	value, ok := c.Get(authContextKey)
	if !ok {
		return auth.Context{}
	}
	actor, _ := value.(auth.Context)
	return actor
}
