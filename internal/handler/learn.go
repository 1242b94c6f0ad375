package handler

import (
	"errors"
	"fmt"

	"vocabler/internal/domain"
	"vocabler/internal/session"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleLearn shows a random unlearned word from the shared pool
func (h *Handler) handleLearn(c tele.Context) error {
	userID := c.Sender().ID

	ctx, cancel := h.ctx()
	defer cancel()

	word, err := h.api.GetRandomWord(ctx, userID, nil)
	if errors.Is(err, domain.ErrNotFound) {
		h.sessions.Reset(userID)
		return c.Send("🎉 Новых слов не осталось — ты выучил всё!", backMarkup())
	}
	if err != nil {
		h.logger.Error("Failed to get random word", zap.Error(err))
		return c.Send(errGeneric, backMarkup())
	}

	h.sessions.Set(userID, &session.Data{
		State:      session.StateIdle,
		LastWordID: word.ID,
	})

	return c.Send(
		fmt.Sprintf("📖 %s — %s", word.Word, word.Translation),
		wordMarkup(),
	)
}

// handleKnow marks the last shown word as learned
func (h *Handler) handleKnow(c tele.Context) error {
	userID := c.Sender().ID

	data := h.sessions.Get(userID)
	if data.LastWordID == 0 {
		return c.Send("Сначала возьми слово для изучения.", backMarkup())
	}

	ctx, cancel := h.ctx()
	defer cancel()

	if err := h.api.AddWordToVocabulary(ctx, userID, data.LastWordID); err != nil {
		h.logger.Error("Failed to add word to vocabulary",
			zap.Int64("user_id", userID),
			zap.Int("word_id", data.LastWordID),
			zap.Error(err),
		)
		return c.Send(errGeneric, backMarkup())
	}

	// Move straight to the next word
	return h.handleLearn(c)
}

// handleMyWords shows a random word from the user's own list
func (h *Handler) handleMyWords(c tele.Context) error {
	userID := c.Sender().ID

	ctx, cancel := h.ctx()
	defer cancel()

	word, err := h.api.GetRandomWordByCategory(ctx, userID, domain.MyWordsCategory)
	if errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrNotFound) {
		return c.Send("В твоём списке пока нет слов. Добавь первое!", backMarkup())
	}
	if err != nil {
		h.logger.Error("Failed to get custom word", zap.Error(err))
		return c.Send(errGeneric, backMarkup())
	}

	h.sessions.Set(userID, &session.Data{
		State:      session.StateIdle,
		LastWordID: word.ID,
	})

	return c.Send(
		fmt.Sprintf("🎯 %s — %s", word.Word, word.Translation),
		wordMarkup(),
	)
}

// handleGenerate builds a story from the user's learned words
func (h *Handler) handleGenerate(c tele.Context) error {
	userID := c.Sender().ID

	ctx, cancel := h.ctx()
	defer cancel()

	text, err := h.api.GenerateText(ctx, userID)
	if errors.Is(err, domain.ErrValidation) {
		return c.Send("Сначала выучи хотя бы одно слово.", backMarkup())
	}
	if errors.Is(err, domain.ErrConflict) {
		return c.Send("На сегодня лимит генераций исчерпан. Возвращайся завтра!", backMarkup())
	}
	if err != nil {
		h.logger.Error("Failed to generate text", zap.Error(err))
		return c.Send(errGeneric, backMarkup())
	}

	msg := fmt.Sprintf("📝 %s\n\n🇷🇺 %s", text.EnglishText, text.RussianText)
	return c.Send(msg, backMarkup())
}
