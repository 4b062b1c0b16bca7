package controller

import (
	"context"
	"strings"

	"github.com/Freeeeeet/tutor_booking/internal/model"
	"github.com/Freeeeeet/tutor_booking/internal/notify"
	"github.com/Freeeeeet/tutor_booking/internal/schedule"
	"github.com/Freeeeeet/tutor_booking/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// BotController команды преподавателя в Telegram.
// Отвечает только в чате администратора.
type BotController struct {
	bot          *bot.Bot
	adminChatID  int64
	availability *schedule.AvailabilityCalculator
	agenda       *service.AgendaService
	logger       *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	adminChatID int64,
	availability *schedule.AvailabilityCalculator,
	agenda *service.AgendaService,
	logger *zap.Logger,
) *BotController {
	return &BotController{
		bot:          botInstance,
		adminChatID:  adminChatID,
		availability: availability,
		agenda:       agenda,
		logger:       logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.adminOnly(c.handleHelp))
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.adminOnly(c.handleHelp))
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/availability", bot.MatchTypePrefix, c.adminOnly(c.handleAvailability))
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/agenda", bot.MatchTypePrefix, c.adminOnly(c.handleAgenda))

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "help", Description: "❓ Справка по командам"},
		{Command: "availability", Description: "🟢 Свободные слоты: /availability 2025-12-01"},
		{Command: "agenda", Description: "📋 Расписание дня: /agenda [2025-12-01]"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})
	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}

func (c *BotController) adminOnly(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if update.Message == nil {
			return
		}
		if update.Message.Chat.ID != c.adminChatID {
			c.logger.Warn("Ignoring command from non-admin chat",
				zap.Int64("chat_id", update.Message.Chat.ID))
			return
		}
		next(ctx, b, update)
	}
}

func (c *BotController) reply(ctx context.Context, chatID int64, text string) {
	_, err := c.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		c.logger.Error("Failed to send reply", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (c *BotController) handleHelp(ctx context.Context, _ *bot.Bot, update *models.Update) {
	c.reply(ctx, update.Message.Chat.ID,
		"👋 Команды:\n\n"+
			"/availability YYYY-MM-DD - свободные слоты\n"+
			"/agenda [YYYY-MM-DD] - расписание дня, по умолчанию сегодня")
}

// commandArg возвращает первый аргумент команды или пустую строку
func commandArg(text string) string {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return ""
	}
	return fields[1]
}

func (c *BotController) handleAvailability(ctx context.Context, _ *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID

	arg := commandArg(update.Message.Text)
	if arg == "" {
		c.reply(ctx, chatID, "❌ Укажите дату: /availability 2025-12-01")
		return
	}
	day, err := schedule.ParseDate(arg)
	if err != nil {
		c.reply(ctx, chatID, "❌ "+err.Error())
		return
	}

	slots, err := c.availability.AvailableSlots(ctx, day)
	if err != nil {
		c.logger.Error("Failed to compute availability", zap.String("date", arg), zap.Error(err))
		c.reply(ctx, chatID, "❌ Не удалось получить расписание")
		return
	}

	labels := make([]string, len(slots))
	for i, s := range slots {
		labels[i] = string(s)
	}
	c.reply(ctx, chatID, notify.AvailabilityText(day, labels))
}

func (c *BotController) handleAgenda(ctx context.Context, _ *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID

	day := c.availability.Today()
	if arg := commandArg(update.Message.Text); arg != "" {
		d, err := schedule.ParseDate(arg)
		if err != nil {
			c.reply(ctx, chatID, "❌ "+err.Error())
			return
		}
		day = d
	}

	items, err := c.agenda.Day(ctx, day)
	if err != nil {
		c.logger.Error("Failed to load agenda", zap.String("date", model.FormatDay(day)), zap.Error(err))
		c.reply(ctx, chatID, "❌ Не удалось получить расписание")
		return
	}
	c.reply(ctx, chatID, notify.AgendaText(day, items))
}
