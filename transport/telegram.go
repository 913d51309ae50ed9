package transport

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/lingobridge/lingobridge"
)

// TelegramTransport delivers and receives messages through the Telegram Bot
// API using long polling.
type TelegramTransport struct {
	bot    *tgbotapi.BotAPI
	logger *logrus.Logger
}

// NewTelegramTransport authenticates against the Bot API.
func NewTelegramTransport(token string, debug bool, logger *logrus.Logger) (*TelegramTransport, error) {
	if logger == nil {
		logger = logrus.New()
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, &lingobridge.TransportError{Message: "telegram authentication", Cause: err}
	}
	bot.Debug = debug

	logger.WithField("account", bot.Self.UserName).Info("authorized on telegram")

	return &TelegramTransport{
		bot:    bot,
		logger: logger,
	}, nil
}

// Send delivers an outbound message and returns the message id Telegram
// assigned to it.
func (t *TelegramTransport) Send(ctx context.Context, out lingobridge.OutboundMessage) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	msg := tgbotapi.NewMessage(out.ConversationID, out.Text)
	msg.DisableNotification = !out.Notify
	if out.ReplyTo != 0 {
		msg.ReplyToMessageID = int(out.ReplyTo)
		// Deliver even if the referenced message was deleted meanwhile.
		msg.AllowSendingWithoutReply = true
	}

	sent, err := t.bot.Send(msg)
	if err != nil {
		return 0, &lingobridge.TransportError{Message: "send message", Cause: err}
	}

	return int64(sent.MessageID), nil
}

// Listen polls for updates and dispatches text messages to the handler until
// the context is cancelled. Each event is handled in its own goroutine;
// ordering is only meaningful per forwarded message, which the relay's
// save-then-cache discipline already covers.
func (t *TelegramTransport) Listen(ctx context.Context, handler Handler) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := t.bot.GetUpdatesChan(u)
	defer t.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.Text == "" || update.Message.IsCommand() {
				continue
			}
			msg := messageFromTelegram(update.Message)
			go t.dispatch(ctx, handler, msg)
		}
	}
}

func (t *TelegramTransport) dispatch(ctx context.Context, handler Handler, msg lingobridge.Message) {
	var (
		res *lingobridge.Result
		err error
	)
	if msg.ReplyTo != 0 {
		res, err = handler.HandleReply(ctx, msg)
	} else {
		res, err = handler.HandleInbound(ctx, msg)
	}
	if err != nil {
		t.logger.WithError(err).WithField("message_id", msg.ID).Error("handler failed")
		return
	}
	t.logger.WithFields(logrus.Fields{
		"message_id": msg.ID,
		"outcome":    res.Outcome,
	}).Debug("message handled")
}

// messageFromTelegram converts a Telegram message into the relay's
// transport-neutral form.
func messageFromTelegram(m *tgbotapi.Message) lingobridge.Message {
	msg := lingobridge.Message{
		ConversationID: m.Chat.ID,
		ID:             int64(m.MessageID),
		Text:           m.Text,
	}
	if m.From != nil {
		msg.SenderID = m.From.ID
		msg.SenderUsername = m.From.UserName
		msg.SenderName = m.From.FirstName
		if m.From.LastName != "" {
			msg.SenderName += " " + m.From.LastName
		}
	}
	if m.ReplyToMessage != nil {
		msg.ReplyTo = int64(m.ReplyToMessage.MessageID)
	}
	return msg
}

// Verify TelegramTransport implements Sender
var _ Sender = (*TelegramTransport)(nil)
