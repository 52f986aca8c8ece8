// Package bot is the Telegram front end: a read-only consumer of the
// article store that replies to /start commands carrying an article id.
package bot

import (
	"strconv"
	"strings"

	"newsguard/internal/store"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// Bot serves article lookups over Telegram long polling
type Bot struct {
	api      *tgbotapi.BotAPI
	articles *store.Articles
	log      zerolog.Logger
}

// New creates the bot against the Telegram API
func New(token string, articles *store.Articles, log zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Bot{
		api:      api,
		articles: articles,
		log:      log.With().Str("component", "bot").Logger(),
	}, nil
}

// Run polls for updates until the updates channel closes.
func (b *Bot) Run() {
	b.log.Info().Str("username", b.api.Self.UserName).Msg("bot is running")

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30

	for update := range b.api.GetUpdatesChan(updateConfig) {
		if update.Message == nil || !update.Message.IsCommand() {
			continue
		}
		if update.Message.Command() != "start" {
			continue
		}

		b.handleStart(update.Message)
	}
}

// Stop ends the update polling loop.
func (b *Bot) Stop() {
	b.api.StopReceivingUpdates()
}

// handleStart looks the article up directly by primary key, ignoring its
// publish status, and replies with the content or a not-found message.
func (b *Bot) handleStart(message *tgbotapi.Message) {
	args := strings.TrimSpace(message.CommandArguments())
	if args == "" {
		return
	}

	reply := "Article not found"

	if id, err := strconv.ParseUint(args, 10, 64); err == nil {
		article, err := b.articles.GetByID(uint(id))
		if err == nil {
			reply = article.Content
		}
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, reply)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error().Err(err).Int64("chat_id", message.Chat.ID).Msg("failed to send reply")
	}
}
