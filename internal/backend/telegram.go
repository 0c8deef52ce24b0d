package backend

import (
	"context"
	"errors"

	tele "gopkg.in/telebot.v4"

	"agentbell/internal/event"
	logx "agentbell/pkg/logx"
)

// Telegram sends the notification as a text message to a single chat.
//
// Options: token (required; use {env:...} or {file:...} in the config to keep
// it out of the file), chat_id (required).
type Telegram struct {
	bot    *tele.Bot
	chatID int64
	log    logx.Logger
}

func NewTelegram(raw map[string]any, log logx.Logger) (*Telegram, error) {
	token := strOpt(raw, "token", "")
	if token == "" {
		return nil, errors.New("backend: telegram requires a token")
	}
	chatID := int64Opt(raw, "chat_id", 0)
	if chatID == 0 {
		return nil, errors.New("backend: telegram requires a chat_id")
	}
	// No poller: this bot only ever sends.
	b, err := tele.NewBot(tele.Settings{Token: token})
	if err != nil {
		return nil, err
	}
	return &Telegram{bot: b, chatID: chatID, log: log}, nil
}

func (*Telegram) Name() string { return "telegram" }

func (s *Telegram) Send(ctx context.Context, n *event.Context) error {
	_ = ctx // telebot does not take a context per send
	text := n.Title
	if n.Message != "" {
		text += "\n" + n.Message
	}
	chat := &tele.Chat{ID: s.chatID}
	_, err := s.bot.Send(chat, text, &tele.SendOptions{DisableWebPagePreview: true})
	if err != nil {
		return err
	}
	s.log.Debug("telegram delivered", logx.String("event", string(n.Kind)), logx.Int64("chat_id", s.chatID))
	return nil
}
