package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"vocabler/internal/domain"

	"github.com/gin-gonic/gin"
)

func parseWordID(raw string) (int, error) {
	wordID, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid wordId %q: %w", raw, domain.ErrValidation)
	}
	return wordID, nil
}

// optionalCategoryID parses the categoryId query param, absent means no
// category filter.
func optionalCategoryID(c *gin.Context) (*int, error) {
	raw := c.Query("categoryId")
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid categoryId %q: %w", raw, domain.ErrValidation)
	}
	return &id, nil
}

func (s *Server) randomWord(c *gin.Context) {
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

	word, err := s.words.GetRandomWord(c.Request.Context(), userID, categoryID)
	if errors.Is(err, domain.ErrNoWords) {
		// This route reports an exhausted pool the same way as a
		// missing word.
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, word)
}

func (s *Server) randomWordByCategory(c *gin.Context) {
	userID, err := parseUserID(c.Query("userId"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	category := c.Query("category")
	if category == "" {
		s.respondError(c, fmt.Errorf("category is required: %w", domain.ErrValidation))
		return
	}

	word, err := s.words.GetRandomWordByCategory(c.Request.Context(), userID, category)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, word)
}

func (s *Server) addWordToVocabulary(c *gin.Context) {
	userID, err := parseUserID(c.Query("userId"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	wordID, err := parseWordID(c.Query("wordId"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	if err := s.users.AddWordToVocabulary(c.Request.Context(), userID, wordID); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *Server) getWord(c *gin.Context) {
	wordID, err := parseWordID(c.Param("wordId"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	word, err := s.words.GetWordByID(c.Request.Context(), wordID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, word)
}

type addWordRequest struct {
	UserID      int64  `json:"userId" binding:"required"`
	Word        string `json:"word"`
	Translation string `json:"translation"`
	CategoryID  *int   `json:"categoryId"`
}

func (s *Server) addCustomWord(c *gin.Context) {
	var req addWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, fmt.Errorf("%s: %w", err, domain.ErrValidation))
		return
	}

	word, err := s.words.AddCustomWord(c.Request.Context(), req.UserID, req.Word, req.Translation, req.CategoryID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, word)
}

func (s *Server) deleteCustomWord(c *gin.Context) {
	userID, err := parseUserID(c.Query("userId"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	wordID, err := parseWordID(c.Param("wordId"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	if err := s.words.DeleteCustomWord(c.Request.Context(), userID, wordID); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *Server) customWords(c *gin.Context) {
	userID, err := parseUserID(c.Query("userId"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	words, err := s.words.GetAllCustomWords(c.Request.Context(), userID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if words == nil {
		words = []domain.Word{}
	}
	c.JSON(http.StatusOK, words)
}

func (s *Server) wordsByCategory(c *gin.Context) {
	words, err := s.words.GetWordsByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, words)
}
