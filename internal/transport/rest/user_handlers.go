package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/service/account"
)

func (s *Server) listUsers(c *gin.Context) {
	users, err := s.accounts.List()
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponses(users))
}

func (s *Server) getUser(c *gin.Context) {
	user, err := s.accounts.Get(c.Param("id"))
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (s *Server) createUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	user, err := s.accounts.Create(account.CreateInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(user))
}

// updateUser перезаписывает пользователя целиком. Отсутствующий флаг
// active трактуется как true, чтобы PUT без него не замораживал аккаунт.
func (s *Server) updateUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	user, err := s.accounts.Update(c.Param("id"), account.UpdateInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Role:     domain.Role(req.Role),
		Active:   active,
	})
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (s *Server) deleteUser(c *gin.Context) {
	if err := s.accounts.Delete(c.Param("id")); err != nil {
		respondError(c, s.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) getProfile(c *gin.Context) {
	user, err := s.accounts.Get(actorFrom(c).UserID)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (s *Server) updateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	user, err := s.accounts.UpdateProfile(actorFrom(c).UserID, account.ProfileInput{
		Username:        req.Username,
		Email:           req.Email,
		Phone:           req.Phone,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (s *Server) uploadProfilePhoto(c *gin.Context) {
	contentType, data, err := readPhotoUpload(c)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	user, err := s.accounts.SetPhoto(actorFrom(c).UserID, contentType, data)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}
