package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/motleyton/tgbot-hp/internal/domain"
)

// text resolves a translation key in the bot's configured language.
func (r *Router) text(key string) string {
	return r.loc.Text(r.lang, key)
}

// textf resolves a key whose translation carries one format verb.
func (r *Router) textf(key string, args ...any) string {
	return fmt.Sprintf(r.loc.Text(r.lang, key), args...)
}

// greetingKeyboard builds the single-button markup attached to a birthday
// reminder. The callback data carries the record id.
func greetingKeyboard(label string, friendID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, domain.GreetingAction{FriendID: friendID}.Encode()),
		),
	)
}
