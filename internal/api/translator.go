package api

import (
	"fmt"
	"net/http"

	"vocabler/internal/domain"

	"github.com/gin-gonic/gin"
)

type translateRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"targetLanguage"`
}

func (s *Server) translate(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, fmt.Errorf("%s: %w", err, domain.ErrValidation))
		return
	}

	translation, err := s.translator.Translate(c.Request.Context(), req.Text, req.TargetLanguage)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, translation)
}

type saveTranslationRequest struct {
	UserID      int64  `json:"userId" binding:"required"`
	Word        string `json:"word"`
	Translation string `json:"translation"`
}

// saveTranslation stores a translated word in the user's custom list.
func (s *Server) saveTranslation(c *gin.Context) {
	var req saveTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, fmt.Errorf("%s: %w", err, domain.ErrValidation))
		return
	}

	word, err := s.words.AddCustomWord(c.Request.Context(), req.UserID, req.Word, req.Translation, nil)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, word)
}
