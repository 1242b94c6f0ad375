// Package api exposes the backend HTTP surface consumed by the bot.
package api

import (
	"errors"
	"net/http"

	"vocabler/internal/domain"
	"vocabler/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server wires services into gin handlers
type Server struct {
	users      *service.UserService
	words      *service.WordService
	translator *service.TranslatorService
	generation *service.GenerationService
	logger     *zap.Logger
}

// NewServer creates a new API server
func NewServer(
	users *service.UserService,
	words *service.WordService,
	translator *service.TranslatorService,
	generation *service.GenerationService,
	logger *zap.Logger,
) *Server {
	return &Server{
		users:      users,
		words:      words,
		translator: translator,
		generation: generation,
		logger:     logger,
	}
}

// Router builds the gin engine with all routes registered
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		user := api.Group("/user")
		{
			user.GET("/exists", s.userExists)
			user.POST("/add", s.addUser)
			user.GET("/:userId", s.getUser)
		}

		word := api.Group("/word")
		{
			word.GET("/random", s.randomWord)
			word.GET("/random-word", s.randomWordByCategory)
			word.POST("/vocabulary/add", s.addWordToVocabulary)
			word.GET("/custom", s.customWords)
			word.GET("/category/:category", s.wordsByCategory)
			word.GET("/:wordId", s.getWord)
			word.POST("", s.addCustomWord)
			word.DELETE("/:wordId", s.deleteCustomWord)
		}

		translator := api.Group("/translator")
		{
			translator.POST("/translate", s.translate)
			translator.POST("/save", s.saveTranslation)
		}

		api.GET("/textgeneration/generate", s.generateText)
	}

	return r
}

// respondError maps the domain error taxonomy onto HTTP statuses:
// validation 400, not found 404, conflict/quota/no-words 409, anything
// else is an internal failure logged with context.
func (s *Server) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrQuotaExceeded),
		errors.Is(err, domain.ErrNoWords):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		s.logger.Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
