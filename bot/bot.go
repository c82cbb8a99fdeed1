package bot

import (
	"time"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"

	"github.com/thankscarbon/rida/logger"
)

var log = logger.New("bot")

type Bot struct {
	*gotgbot.Bot
	updater *ext.Updater
}

func New(token string, handler *Handler) (*Bot, error) {
	b, err := gotgbot.NewBot(token, nil)
	if err != nil {
		return nil, err
	}

	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Error: func(_ *gotgbot.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			log.Err(err).
				Int64("chat_id", ctx.EffectiveChat.Id).
				Msg("Error while handling update")
			return ext.DispatcherActionNoop
		},
		Panic: func(_ *gotgbot.Bot, ctx *ext.Context, r any) {
			log.Error().
				Int64("chat_id", ctx.EffectiveChat.Id).
				Msgf("Panic while handling update: %v", r)
		},
	})

	handler.Register(dispatcher)

	updater := ext.NewUpdater(dispatcher, nil)

	return &Bot{
		Bot:     b,
		updater: updater,
	}, nil
}

// Start begins long polling and blocks until the updater is stopped.
func (b *Bot) Start() error {
	err := b.updater.StartPolling(b.Bot, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &gotgbot.GetUpdatesOpts{
			Timeout:        10,
			AllowedUpdates: []string{"message"},
			RequestOpts: &gotgbot.RequestOpts{
				Timeout: 15 * time.Second,
			},
		},
	})
	if err != nil {
		return err
	}

	log.Info().Msg("Bot is running. Press Ctrl-C to stop.")
	b.updater.Idle()
	return nil
}
