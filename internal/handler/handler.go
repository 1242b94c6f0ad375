package handler

import (
	"vocabler/internal/botclient"
	"vocabler/internal/session"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// errGeneric is shown when the backend is unreachable or broken.
const errGeneric = "Произошла ошибка. Попробуйте позже."

// Handler manages all bot interactions
type Handler struct {
	bot      *tele.Bot
	api      *botclient.Client
	sessions *session.Store
	logger   *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(bot *tele.Bot, api *botclient.Client, sessions *session.Store, logger *zap.Logger) *Handler {
	return &Handler{
		bot:      bot,
		api:      api,
		sessions: sessions,
		logger:   logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// Callback queries (inline buttons)
	h.bot.Handle(&btnLearn, h.handleLearn)
	h.bot.Handle(&btnMore, h.handleLearn)
	h.bot.Handle(&btnKnow, h.handleKnow)
	h.bot.Handle(&btnMyWords, h.handleMyWords)
	h.bot.Handle(&btnAddWord, h.handleAddWord)
	h.bot.Handle(&btnTranslate, h.handleTranslate)
	h.bot.Handle(&btnGenerate, h.handleGenerate)
	h.bot.Handle(&btnCancel, h.handleCancel)
	h.bot.Handle(&btnMainMenu, h.handleStart)
}

// Inline keyboard buttons
var (
	btnLearn = tele.Btn{
		Unique: "learn",
		Text:   "📖 Учить слова",
	}
	btnMore = tele.Btn{
		Unique: "more",
		Text:   "🔄 Ещё",
	}
	btnKnow = tele.Btn{
		Unique: "know",
		Text:   "✅ Знаю это слово",
	}
	btnMyWords = tele.Btn{
		Unique: "my_words",
		Text:   "🎯 Мои слова",
	}
	btnAddWord = tele.Btn{
		Unique: "add_word",
		Text:   "➕ Добавить слово",
	}
	btnTranslate = tele.Btn{
		Unique: "translate",
		Text:   "🌐 Перевести",
	}
	btnGenerate = tele.Btn{
		Unique: "generate",
		Text:   "📝 Текст из моих слов",
	}
	btnCancel = tele.Btn{
		Unique: "cancel",
		Text:   "❌ Отменить",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Главное меню",
	}
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnLearn),
		menu.Row(btnMyWords),
		menu.Row(btnAddWord, btnTranslate),
		menu.Row(btnGenerate),
	)
	return menu
}

// backMarkup offers a path back to the main menu
func backMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(btnMainMenu))
	return menu
}

// wordMarkup is shown under a word being learned
func wordMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnKnow),
		menu.Row(btnMore),
		menu.Row(btnMainMenu),
	)
	return menu
}

// cancelMarkup is shown while waiting for user input
func cancelMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(btnCancel))
	return menu
}
