package handler

import (
	"context"
	"errors"
	"time"

	"vocabler/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// requestTimeout bounds one backend call made from a bot handler.
const requestTimeout = 35 * time.Second

func (h *Handler) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// handleStart handles /start and the main-menu button. Users are
// registered on first contact.
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	ctx, cancel := h.ctx()
	defer cancel()

	exists, err := h.api.UserExists(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to check user", zap.Error(err))
		return c.Send(errGeneric)
	}

	if !exists {
		if _, err := h.api.AddUser(ctx, userID); err != nil && !errors.Is(err, domain.ErrConflict) {
			h.logger.Error("Failed to register user", zap.Error(err))
			return c.Send(errGeneric)
		}
		h.logger.Info("User registered", zap.Int64("user_id", userID))
	}

	h.sessions.Reset(userID)
	return c.Send(
		"🏠 Главное меню\n\nВыберите действие:",
		mainMenuMarkup(),
	)
}

// handleCancel aborts the current input flow
func (h *Handler) handleCancel(c tele.Context) error {
	h.sessions.Reset(c.Sender().ID)
	return c.Send("Отменено.", mainMenuMarkup())
}
