package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "username and password are required"})
		return
	}

	token, user, err := s.accounts.Login(req.Username, req.Password)
	if err != nil {
		// Замороженный аккаунт на логине неотличим от неверных данных.
		if errors.Is(err, domain.ErrUserInactive) {
			c.JSON(http.StatusUnauthorized, errorResponse{Error: domain.ErrInvalidCredentials.Error()})
			return
		}
		respondError(c, s.logger, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Token:    token,
		Username: user.Username,
		Role:     string(user.Role),
	})
}
