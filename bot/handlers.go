package bot

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers/filters/message"
	"github.com/rs/xid"
	"golang.org/x/exp/slices"

	"github.com/thankscarbon/rida/chatlog"
	"github.com/thankscarbon/rida/conversation"
	"github.com/thankscarbon/rida/model"
	"github.com/thankscarbon/rida/utils"
	"github.com/thankscarbon/rida/utils/httpUtils"
)

// Localizer renders UI templates in the user's language, falling back to the
// source text when translation fails.
type Localizer interface {
	Translate(ctx context.Context, text, language string) string
	TranslatePair(ctx context.Context, first, second, language string) (string, string)
	SupportsLanguage(ctx context.Context, language string) bool
}

type Handler struct {
	chats          model.ChatService
	sessions       *Sessions
	backend        conversation.Backend
	localizer      Localizer
	transcript     *chatlog.Logger
	systemTemplate string
}

func NewHandler(chatService model.ChatService, backend conversation.Backend, localizer Localizer, transcript *chatlog.Logger, systemTemplate string) *Handler {
	return &Handler{
		chats:          chatService,
		sessions:       NewSessions(chatService),
		backend:        backend,
		localizer:      localizer,
		transcript:     transcript,
		systemTemplate: systemTemplate,
	}
}

func (h *Handler) Register(dispatcher *ext.Dispatcher) {
	dispatcher.AddHandler(handlers.NewCommand("start", h.onStart))
	dispatcher.AddHandler(handlers.NewCommand("language", h.onLanguage))
	dispatcher.AddHandler(handlers.NewCommand("clear", h.onClear))
	dispatcher.AddHandler(handlers.NewCommand("help", h.onHelp))
	dispatcher.AddHandler(handlers.NewCommand("cancel", h.onCancel))
	dispatcher.AddHandler(handlers.NewMessage(message.Photo, h.onPhoto))
	dispatcher.AddHandler(handlers.NewMessage(message.Document, h.onDocument))
	dispatcher.AddHandler(handlers.NewMessage(message.Text, h.onText))
}

func (h *Handler) onStart(b *gotgbot.Bot, ctx *ext.Context) error {
	chatID := ctx.EffectiveChat.Id
	sess := h.sessions.Get(chatID)
	sess.Lock()
	defer sess.Unlock()

	sess.State = conversation.NewState()
	sess.LanguageSet = false
	sess.ChoosingLanguage = true
	sess.FromStart = true

	h.transcript.StoreBotResponse(chatID, startText)
	_, err := ctx.EffectiveMessage.Reply(b, startText, utils.DefaultSendOptions())
	return err
}

func (h *Handler) onLanguage(b *gotgbot.Bot, ctx *ext.Context) error {
	chatID := ctx.EffectiveChat.Id
	sess := h.sessions.Get(chatID)
	sess.Lock()
	defer sess.Unlock()

	sess.ChoosingLanguage = true

	text := chooseLanguageText
	if sess.LanguageSet {
		text = fmt.Sprintf("Your current language is set to '%s'.\nWhat new language would you like to switch to?", sess.State.Language)
	}

	h.transcript.StoreBotResponse(chatID, text)
	_, err := ctx.EffectiveMessage.Reply(b, text, utils.DefaultSendOptions())
	return err
}

func (h *Handler) onCancel(b *gotgbot.Bot, ctx *ext.Context) error {
	chatID := ctx.EffectiveChat.Id
	sess := h.sessions.Get(chatID)
	sess.Lock()
	sess.ChoosingLanguage = false
	sess.FromStart = false
	sess.Unlock()

	h.transcript.StoreBotResponse(chatID, cancelText)
	_, err := ctx.EffectiveMessage.Reply(b, cancelText, utils.DefaultSendOptions())
	return err
}

func (h *Handler) onHelp(b *gotgbot.Bot, ctx *ext.Context) error {
	h.transcript.StoreBotResponse(ctx.EffectiveChat.Id, helpText)
	_, err := ctx.EffectiveMessage.Reply(b, helpText, utils.DefaultSendOptions())
	return err
}

func (h *Handler) onClear(b *gotgbot.Bot, ctx *ext.Context) error {
	chatID := ctx.EffectiveChat.Id
	sess := h.sessions.Get(chatID)
	sess.Lock()
	defer sess.Unlock()

	sess.ChoosingLanguage = false
	sess.FromStart = false

	if !sess.LanguageSet {
		sess.State = conversation.NewState()
		h.transcript.StoreBotResponse(chatID, clearedNoLanguageText)
		_, err := ctx.EffectiveMessage.Reply(b, clearedNoLanguageText, utils.DefaultSendOptions())
		return err
	}

	sess.State = conversation.ResetPreservingLanguage(sess.State)

	confirmation := h.localizer.Translate(context.Background(), clearedTemplate, sess.State.Language)
	confirmation = strings.ReplaceAll(confirmation, "{language}", sess.State.Language)

	h.transcript.StoreBotResponse(chatID, confirmation)
	_, err := ctx.EffectiveMessage.Reply(b, confirmation, utils.DefaultSendOptions())
	return err
}

func (h *Handler) onText(b *gotgbot.Bot, ctx *ext.Context) error {
	msg := ctx.EffectiveMessage
	if strings.HasPrefix(msg.Text, "/") {
		return nil
	}
	if !utils.IsPrivate(msg) {
		return nil
	}

	chatID := ctx.EffectiveChat.Id
	sess := h.sessions.Get(chatID)
	sess.Lock()
	defer sess.Unlock()

	if sess.ChoosingLanguage {
		return h.setLanguage(b, ctx, sess)
	}

	if !sess.LanguageSet {
		h.transcript.StoreBotResponse(chatID, needStartText)
		_, err := msg.Reply(b, needStartText, utils.DefaultSendOptions())
		return err
	}

	question := msg.Text
	h.transcript.StoreMessage(chatID, utils.FullName(ctx.EffectiveUser.FirstName, ctx.EffectiveUser.LastName), question)

	_, _ = ctx.EffectiveChat.SendAction(b, gotgbot.ChatActionTyping, nil)
	h.transcript.StoreBotResponse(chatID, thinkingText)
	thinking, err := b.SendMessage(chatID, thinkingText, nil)
	if err != nil {
		return err
	}

	reportID := sess.State.ReportCounter
	state, outcome := conversation.Process(context.Background(), sess.State, conversation.Input{
		Question: question,
		Language: sess.State.Language,
		ReportID: &reportID,
	}, h.systemTemplate, h.backend)
	sess.State = state

	if outcome.Err != nil {
		guid := xid.New().String()
		log.Err(outcome.Err).
			Str("guid", guid).
			Int64("chat_id", chatID).
			Msg("Generation failed for text turn")
	}

	h.sendOrEditLongMessage(b, chatID, outcome.Text, thinking.MessageId)
	return nil
}

func (h *Handler) onPhoto(b *gotgbot.Bot, ctx *ext.Context) error {
	if !utils.IsPrivate(ctx.EffectiveMessage) {
		return nil
	}

	chatID := ctx.EffectiveChat.Id
	sess := h.sessions.Get(chatID)
	sess.Lock()
	defer sess.Unlock()

	if !sess.LanguageSet {
		h.transcript.StoreBotResponse(chatID, needLanguageText)
		_, err := ctx.EffectiveMessage.Reply(b, needLanguageText, utils.DefaultSendOptions())
		return err
	}

	photo := utils.GetBestResolution(ctx.EffectiveMessage.Photo)
	if photo == nil {
		return nil
	}

	return h.processImage(b, ctx, sess, photo.FileId, "image/jpeg", ctx.EffectiveMessage.Caption)
}

func (h *Handler) onDocument(b *gotgbot.Bot, ctx *ext.Context) error {
	if !utils.IsPrivate(ctx.EffectiveMessage) {
		return nil
	}

	chatID := ctx.EffectiveChat.Id
	sess := h.sessions.Get(chatID)
	sess.Lock()
	defer sess.Unlock()

	if !sess.LanguageSet {
		h.transcript.StoreBotResponse(chatID, needLanguageText)
		_, err := ctx.EffectiveMessage.Reply(b, needLanguageText, utils.DefaultSendOptions())
		return err
	}

	document := ctx.EffectiveMessage.Document
	if !slices.Contains(utils.AllowedImageMimeTypes, document.MimeType) {
		var formats []string
		for _, mimeType := range utils.AllowedImageMimeTypes {
			formats = append(formats, strings.ToUpper(strings.TrimPrefix(mimeType, "image/")))
		}
		text := fmt.Sprintf("Sorry, I can only analyze image files.\nThe allowed formats are: %s.", strings.Join(formats, ", "))
		h.transcript.StoreBotResponse(chatID, text)
		_, err := ctx.EffectiveMessage.Reply(b, text, utils.DefaultSendOptions())
		return err
	}

	if document.FileSize > utils.MaxFilesizeDownload {
		text := "Sorry, I can only analyze images smaller than 20 MB."
		h.transcript.StoreBotResponse(chatID, text)
		_, err := ctx.EffectiveMessage.Reply(b, text, utils.DefaultSendOptions())
		return err
	}

	return h.processImage(b, ctx, sess, document.FileId, document.MimeType, ctx.EffectiveMessage.Caption)
}

// processImage downloads the attachment, records it, runs the image turn and
// afterwards applies the periodic reset policy. The caller holds the session
// lock.
func (h *Handler) processImage(b *gotgbot.Bot, ctx *ext.Context, sess *Session, fileID, mimeType, caption string) error {
	chatID := ctx.EffectiveChat.Id

	_, _ = ctx.EffectiveChat.SendAction(b, gotgbot.ChatActionUploadPhoto, nil)
	h.transcript.StoreBotResponse(chatID, analyzingText)
	thinking, err := b.SendMessage(chatID, analyzingText, nil)
	if err != nil {
		return err
	}

	data, err := h.downloadImage(b, ctx, fileID, mimeType, caption)
	if err != nil {
		guid := xid.New().String()
		log.Err(err).
			Str("guid", guid).
			Int64("chat_id", chatID).
			Msg("Failed to fetch image")
		h.editMessage(b, chatID, thinking.MessageId, imageErrorText+utils.EmbedGUID(guid))
		h.transcript.StoreBotResponse(chatID, imageErrorText)
		return nil
	}

	sess.State.ReportCounter++
	reportID := sess.State.ReportCounter
	if err := h.chats.SetReportCounter(chatID, reportID); err != nil {
		log.Err(err).
			Int64("chat_id", chatID).
			Msg("Failed to persist report counter")
	}

	state, outcome := conversation.Process(context.Background(), sess.State, conversation.Input{
		Question: caption,
		Image:    &conversation.Image{Data: data, MimeType: mimeType},
		Language: sess.State.Language,
		ReportID: &reportID,
	}, h.systemTemplate, h.backend)
	sess.State = state

	if outcome.Err != nil {
		guid := xid.New().String()
		log.Err(outcome.Err).
			Str("guid", guid).
			Int64("chat_id", chatID).
			Msg("Generation failed for image turn")
	}

	h.sendOrEditLongMessage(b, chatID, outcome.Text, thinking.MessageId)

	if maybeReset(sess, reportID) {
		log.Info().
			Int64("chat_id", chatID).
			Int("report_id", reportID).
			Msg("Report threshold reached, resetting conversation history")

		notice := h.localizer.Translate(context.Background(), resetNoticeText, sess.State.Language)
		h.transcript.StoreBotResponse(chatID, notice)
		if _, err := b.SendMessage(chatID, notice, nil); err != nil {
			log.Err(err).
				Int64("chat_id", chatID).
				Msg("Failed to send reset notice")
		}
	}

	return nil
}

// downloadImage fetches the attachment from Telegram, stores a copy in the
// chat's image folder and records it in the transcript.
func (h *Handler) downloadImage(b *gotgbot.Bot, ctx *ext.Context, fileID, mimeType, caption string) ([]byte, error) {
	chatID := ctx.EffectiveChat.Id

	file, err := httpUtils.DownloadFile(b, fileID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Err(err).Msg("Failed to close file")
		}
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("%s_%d%s",
		time.Now().Format("20060102_150405"),
		ctx.EffectiveMessage.MessageId,
		extensionFor(mimeType),
	)
	imagePath := filepath.Join(h.transcript.ImageDir(chatID), filename)

	if err := h.transcript.Setup(chatID); err != nil {
		log.Err(err).
			Int64("chat_id", chatID).
			Msg("Failed to create image directory")
	} else if err := os.WriteFile(imagePath, data, 0o644); err != nil {
		log.Err(err).
			Str("path", imagePath).
			Msg("Failed to store image copy")
	}

	userName := utils.FullName(ctx.EffectiveUser.FirstName, ctx.EffectiveUser.LastName)
	h.transcript.StoreImage(chatID, userName, imagePath, caption)

	return data, nil
}

func (h *Handler) setLanguage(b *gotgbot.Bot, ctx *ext.Context, sess *Session) error {
	chatID := ctx.EffectiveChat.Id
	language := strings.TrimSpace(ctx.EffectiveMessage.Text)

	userName := utils.FullName(ctx.EffectiveUser.FirstName, ctx.EffectiveUser.LastName)
	h.transcript.StoreMessage(chatID, userName, "Set language to: "+language)

	checkingText := fmt.Sprintf("Changing the assistant language to '%s'...", language)
	h.transcript.StoreBotResponse(chatID, checkingText)
	checking, err := b.SendMessage(chatID, checkingText, nil)
	if err != nil {
		return err
	}

	if !h.localizer.SupportsLanguage(context.Background(), language) {
		errorText := fmt.Sprintf("I'm sorry, but I might not be able to generate reports in language '%s'. "+
			"This could be due to a typo or it might be a language I don't fully support yet.\n\n"+
			"Please try another language.", language)
		h.transcript.StoreBotResponse(chatID, errorText)
		return h.editMessage(b, chatID, checking.MessageId, errorText)
	}

	sess.State.Language = language
	sess.LanguageSet = true
	sess.ChoosingLanguage = false

	if err := h.chats.SetLanguage(chatID, language); err != nil {
		log.Err(err).
			Int64("chat_id", chatID).
			Msg("Failed to persist language")
	}

	confirmation := fmt.Sprintf("Great! I will provide my answers and reports in %s.", language)
	confirmation, welcome := h.localizer.TranslatePair(context.Background(), confirmation, welcomeTemplate, language)

	h.transcript.StoreBotResponse(chatID, confirmation)
	if err := h.editMessage(b, chatID, checking.MessageId, confirmation); err != nil {
		return err
	}

	if sess.FromStart {
		sess.FromStart = false
		welcome = strings.ReplaceAll(welcome, "{user_mention}", utils.MentionMarkdown(ctx.EffectiveUser))
		h.transcript.StoreBotResponse(chatID, welcome)
		h.sendMessage(b, chatID, welcome)
	}

	return nil
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	default:
		return ".jpg"
	}
}
