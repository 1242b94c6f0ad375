package handler

import (
	"fmt"
	"strings"

	"vocabler/internal/session"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleAddWord starts the custom-word input flow
func (h *Handler) handleAddWord(c tele.Context) error {
	h.sessions.Set(c.Sender().ID, &session.Data{State: session.StateWaitingWord})
	return c.Send("Отправь слово на английском:", cancelMarkup())
}

// handleTranslate starts the translation flow
func (h *Handler) handleTranslate(c tele.Context) error {
	h.sessions.Set(c.Sender().ID, &session.Data{State: session.StateWaitingText})
	return c.Send("Отправь текст для перевода:", cancelMarkup())
}

// handleText handles all text messages based on the chat's session state
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	data := h.sessions.Get(userID)

	switch data.State {
	case session.StateWaitingWord:
		// User sent a word, now wait for translation
		h.sessions.Set(userID, &session.Data{
			State:       session.StateWaitingTranslation,
			CurrentWord: text,
		})
		return c.Send("Жду перевод:", cancelMarkup())

	case session.StateWaitingTranslation:
		ctx, cancel := h.ctx()
		defer cancel()

		word, err := h.api.AddCustomWord(ctx, userID, data.CurrentWord, text)
		if err != nil {
			h.logger.Error("Failed to save custom word",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			h.sessions.Reset(userID)
			return c.Send("Не удалось сохранить слово. Попробуйте ещё раз.", backMarkup())
		}

		h.logger.Info("Custom word saved",
			zap.Int64("user_id", userID),
			zap.Int("word_id", word.ID),
		)

		h.sessions.Set(userID, &session.Data{State: session.StateWaitingWord})
		return c.Send("✅ Сохранено!\n\nМожешь отправить следующее слово или вернуться в меню.", backMarkup())

	case session.StateWaitingText:
		ctx, cancel := h.ctx()
		defer cancel()

		translation, err := h.api.Translate(ctx, text, "ru")
		if err != nil {
			h.logger.Error("Failed to translate",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			h.sessions.Reset(userID)
			return c.Send("Не удалось перевести. Попробуйте позже.", backMarkup())
		}

		h.sessions.Reset(userID)
		return c.Send(
			fmt.Sprintf("🌐 %s\n\n➡️ %s", translation.OriginalText, translation.TranslatedText),
			backMarkup(),
		)

	default:
		// Idle: a bare word is a shortcut into the translate flow
		ctx, cancel := h.ctx()
		defer cancel()

		translation, err := h.api.Translate(ctx, text, "ru")
		if err != nil {
			h.logger.Error("Failed to translate", zap.Error(err))
			return c.Send(errGeneric, backMarkup())
		}
		return c.Send(
			fmt.Sprintf("🌐 %s\n\n➡️ %s", translation.OriginalText, translation.TranslatedText),
			backMarkup(),
		)
	}
}
