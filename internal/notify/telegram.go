package notify

import (
	"context"
	"time"

	"github.com/Freeeeeet/tutor_booking/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const sendTimeout = 10 * time.Second

// Telegram отправляет уведомления в чат преподавателя.
// Отправка не блокирует запрос: ошибки только логируются.
type Telegram struct {
	bot    *bot.Bot
	chatID int64
	logger *zap.Logger
}

func NewTelegram(b *bot.Bot, chatID int64, logger *zap.Logger) *Telegram {
	return &Telegram{bot: b, chatID: chatID, logger: logger}
}

func (t *Telegram) BookingCreated(_ context.Context, b *model.Booking) {
	t.send("booking", BookingText(b))
}

func (t *Telegram) WorkshopCreated(_ context.Context, w *model.Workshop) {
	t.send("workshop", WorkshopText(w))
}

func (t *Telegram) UnavailabilityCreated(_ context.Context, u *model.Unavailability) {
	t.send("unavailability", UnavailabilityText(u))
}

// DailyDigest отправляет синхронно: вызывается из cron, а не из запроса
func (t *Telegram) DailyDigest(ctx context.Context, day time.Time, items []model.AgendaItem) {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	t.deliver(ctx, "digest", AgendaText(day, items))
}

func (t *Telegram) send(event, text string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		t.deliver(ctx, event, text)
	}()
}

func (t *Telegram) deliver(ctx context.Context, event, text string) {
	_, err := t.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    t.chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		t.logger.Error("Failed to send telegram notification",
			zap.String("event", event),
			zap.Int64("chat_id", t.chatID),
			zap.Error(err))
		return
	}
	t.logger.Debug("Telegram notification sent", zap.String("event", event))
}
