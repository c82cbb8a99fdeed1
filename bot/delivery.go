package bot

import (
	"errors"
	"strings"

	"github.com/PaulSonOfLars/gotgbot/v2"

	"github.com/thankscarbon/rida/utils"
)

// sendOrEditLongMessage edits the placeholder message with the first chunk
// of text and delivers the remaining chunks as new messages.
func (h *Handler) sendOrEditLongMessage(b *gotgbot.Bot, chatID int64, text string, messageID int64) {
	h.transcript.StoreBotResponse(chatID, text)

	if text == "" {
		_ = h.editMessage(b, chatID, messageID, noResponseText)
		return
	}

	chunks := utils.SplitMessage(text, utils.MaxMessageLength)
	if len(chunks) == 0 {
		_ = h.editMessage(b, chatID, messageID, emptyResponseText)
		return
	}

	if err := h.editMessage(b, chatID, messageID, chunks[0]); err != nil {
		log.Err(err).
			Int64("chat_id", chatID).
			Msg("Failed to edit placeholder message")
	}

	for _, chunk := range chunks[1:] {
		h.sendMessage(b, chatID, chunk)
	}
}

// editMessage tries Markdown first; model output full of underscores and
// asterisks is regularly rejected by Telegram, in which case the edit is
// retried without formatting.
func (h *Handler) editMessage(b *gotgbot.Bot, chatID, messageID int64, text string) error {
	_, _, err := b.EditMessageText(text, &gotgbot.EditMessageTextOpts{
		ChatId:    chatID,
		MessageId: messageID,
		ParseMode: gotgbot.ParseModeMarkdown,
	})
	if isParseError(err) {
		log.Warn().
			Int64("chat_id", chatID).
			Msg("Formatting rejected by Telegram, retrying without parse mode")
		_, _, err = b.EditMessageText(text, &gotgbot.EditMessageTextOpts{
			ChatId:    chatID,
			MessageId: messageID,
		})
	}
	return err
}

func (h *Handler) sendMessage(b *gotgbot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(chatID, text, &gotgbot.SendMessageOpts{
		ParseMode: gotgbot.ParseModeMarkdown,
	})
	if isParseError(err) {
		log.Warn().
			Int64("chat_id", chatID).
			Msg("Formatting rejected by Telegram, retrying without parse mode")
		_, err = b.SendMessage(chatID, text, nil)
	}
	if err != nil {
		log.Err(err).
			Int64("chat_id", chatID).
			Msg("Failed to send message")
	}
}

func isParseError(err error) bool {
	if err == nil {
		return false
	}
	var telegramErr *gotgbot.TelegramError
	if !errors.As(err, &telegramErr) {
		return false
	}
	return strings.Contains(strings.ToLower(telegramErr.Description), utils.ErrCantParseEntities)
}
