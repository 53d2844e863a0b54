package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/motleyton/tgbot-hp/internal/dialog"
	"github.com/motleyton/tgbot-hp/internal/domain"
	"github.com/motleyton/tgbot-hp/internal/i18n"
	"github.com/motleyton/tgbot-hp/internal/openai"
	"github.com/motleyton/tgbot-hp/internal/store"
)

// Router wires Telegram updates to handlers.
type Router struct {
	bot     *tgbotapi.BotAPI
	log     *zap.Logger
	repo    store.Repo
	flow    *dialog.Flow
	greeter *openai.Client
	loc     *i18n.Bundle
	lang    string
}

// NewRouter creates a new Telegram router.
func NewRouter(
	bot *tgbotapi.BotAPI,
	log *zap.Logger,
	repo store.Repo,
	flow *dialog.Flow,
	greeter *openai.Client,
	loc *i18n.Bundle,
	lang string,
) *Router {
	return &Router{
		bot:     bot,
		log:     log,
		repo:    repo,
		flow:    flow,
		greeter: greeter,
		loc:     loc,
		lang:    lang,
	}
}

// HandleUpdate routes a single update to the appropriate handler.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message != nil {
		msg := upd.Message
		chatID := msg.Chat.ID
		text := strings.TrimSpace(msg.Text)

		switch {
		case strings.HasPrefix(text, "/start"):
			r.handleStart(chatID)
		case strings.HasPrefix(text, "/add_friend"):
			r.handleAddFriend(chatID)
		case strings.HasPrefix(text, "/cancel"):
			r.handleCancel(chatID)
		default:
			r.handleFreeForm(ctx, chatID, text)
		}
		return
	}

	if upd.CallbackQuery != nil {
		r.handleCallback(ctx, upd.CallbackQuery)
	}
}

// NotifyBirthday sends one reminder with a "generate greeting" button.
// This makes Router satisfy scheduler.Notifier.
func (r *Router) NotifyBirthday(ownerID int64, friend domain.Friend) error {
	msg := tgbotapi.NewMessage(ownerID, r.textf("birthday_today", friend.Name))
	msg.ReplyMarkup = greetingKeyboard(r.text("generate_button"), friend.ID)
	_, err := r.bot.Send(msg)
	return err
}
