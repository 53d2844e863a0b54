package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/motleyton/tgbot-hp/assets"
	"github.com/motleyton/tgbot-hp/internal/dialog"
	"github.com/motleyton/tgbot-hp/internal/domain"
	"github.com/motleyton/tgbot-hp/internal/store"
)

func (r *Router) handleStart(chatID int64) {
	r.sendText(chatID, r.text("start"))
}

func (r *Router) handleAddFriend(chatID int64) {
	r.replyFlowResult(chatID, r.flow.Begin(chatID))
}

func (r *Router) handleCancel(chatID int64) {
	r.replyFlowResult(chatID, r.flow.Cancel(chatID))
}

// handleFreeForm feeds plain text into the entry dialogue, if one is active.
func (r *Router) handleFreeForm(ctx context.Context, chatID int64, text string) {
	res, err := r.flow.Input(ctx, chatID, text)
	if err != nil {
		r.log.Error("dialogue input failed", zap.Error(err), zap.Int64("chatID", chatID))
	}
	r.replyFlowResult(chatID, res)
}

// replyFlowResult maps a dialogue transition to its localized reply.
func (r *Router) replyFlowResult(chatID int64, res dialog.Result) {
	switch res {
	case dialog.PromptName:
		r.sendText(chatID, r.text("enter_name"))
	case dialog.PromptBirthday:
		r.sendText(chatID, r.text("enter_birthday"))
	case dialog.BadDate:
		r.sendText(chatID, r.text("birthday_invalid"))
	case dialog.Saved:
		r.sendText(chatID, r.text("birthday_saved"))
	case dialog.Duplicate:
		r.sendText(chatID, r.text("birthday_duplicate"))
	case dialog.SaveFailed:
		r.sendText(chatID, r.text("save_failed"))
	case dialog.Cancelled:
		r.sendText(chatID, r.text("cancelled"))
	case dialog.NothingToCancel:
		r.sendText(chatID, r.text("nothing_to_cancel"))
	case dialog.NoSession:
		// Stray text outside a dialogue is ignored.
	}
}

// handleCallback services the "generate greeting" button: validate the
// payload, look the record up, generate the text and reply with the card.
func (r *Router) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		_ = r.answerCallback(cb.ID, "")
		return
	}
	chatID := cb.Message.Chat.ID

	action, err := domain.ParseGreetingAction(cb.Data)
	if err != nil {
		r.log.Warn("malformed callback payload", zap.String("data", cb.Data))
		_ = r.alertCallback(cb.ID, r.text("malformed_alert"))
		return
	}

	friend, err := r.repo.GetFriend(ctx, action.FriendID)
	if errors.Is(err, store.ErrFriendNotFound) {
		_ = r.alertCallback(cb.ID, r.text("not_found_alert"))
		return
	}
	if err != nil {
		r.log.Error("friend lookup failed", zap.Error(err), zap.Int64("friendID", action.FriendID))
		_ = r.alertCallback(cb.ID, r.text("not_found_alert"))
		return
	}

	greeting := r.greeter.GenerateGreeting(ctx, friend.Name)

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{
		Name:  "birthday_card.png",
		Bytes: assets.BirthdayCard(),
	})
	photo.Caption = greeting
	if _, err := r.bot.Send(photo); err != nil {
		r.log.Error("send greeting failed", zap.Error(err), zap.Int64("chatID", chatID))
	}

	_ = r.answerCallback(cb.ID, "")
}

func (r *Router) sendText(chatID int64, text string) {
	if _, err := r.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		r.log.Error("send failed", zap.Error(err), zap.Int64("chatID", chatID))
	}
}

func (r *Router) answerCallback(id, text string) error {
	_, err := r.bot.Request(tgbotapi.NewCallback(id, text))
	return err
}

func (r *Router) alertCallback(id, text string) error {
	_, err := r.bot.Request(tgbotapi.NewCallbackWithAlert(id, text))
	return err
}
