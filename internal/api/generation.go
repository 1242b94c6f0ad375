package api

import (
	"errors"
	"net/http"

	"vocabler/internal/domain"

	"github.com/gin-gonic/gin"
)

func (s *Server) generateText(c *gin.Context) {
	userID, err := parseUserID(c.Query("userId"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	categoryID, err := optionalCategoryID(c)
	if err != nil {
		s.respondError(c, err)
		return
	}

	text, err := s.generation.Generate(c.Request.Context(), userID, categoryID)
	if errors.Is(err, domain.ErrNoWords) {
		// No learned words is a client problem on this route.
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, text)
}
