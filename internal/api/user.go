package api

import (
	"fmt"
	"net/http"
	"strconv"

	"vocabler/internal/domain"

	"github.com/gin-gonic/gin"
)

func parseUserID(raw string) (int64, error) {
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid userId %q: %w", raw, domain.ErrValidation)
	}
	return userID, nil
}

func (s *Server) userExists(c *gin.Context) {
	userID, err := parseUserID(c.Query("userId"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	exists, err := s.users.Exists(c.Request.Context(), userID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, exists)
}

type addUserRequest struct {
	UserID int64 `json:"userId" binding:"required"`
}

func (s *Server) addUser(c *gin.Context) {
	var req addUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, fmt.Errorf("%s: %w", err, domain.ErrValidation))
		return
	}

	user, err := s.users.Register(c.Request.Context(), req.UserID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) getUser(c *gin.Context) {
	userID, err := parseUserID(c.Param("userId"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	user, err := s.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
