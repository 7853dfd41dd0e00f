package notify

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/planbar/planbar-api/internal/model"
	"go.uber.org/zap"
)

// TelegramNotifier шлёт администратору сообщения о бронированиях.
// Уведомления best-effort: ошибка отправки логируется и не влияет
// на результат операции.
type TelegramNotifier struct {
	bot    *bot.Bot
	chatID int64
	logger *zap.Logger
}

func NewTelegramNotifier(token string, chatID int64, logger *zap.Logger) (*TelegramNotifier, error) {
	b, err := bot.New(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &TelegramNotifier{
		bot:    b,
		chatID: chatID,
		logger: logger,
	}, nil
}

// LessonBooked уведомляет о новом уроке
func (n *TelegramNotifier) LessonBooked(ctx context.Context, lesson *model.Lesson) {
	text := fmt.Sprintf(
		"Новый урок\nТренер: %s\nУченик: %s\nВремя: %s — %s",
		lesson.CoachID,
		lesson.StudentID,
		lesson.StartTime.Format("02.01.2006 15:04"),
		lesson.EndTime.Format("15:04"),
	)
	n.send(ctx, text)
}

// LessonCanceled уведомляет об отменённом уроке
func (n *TelegramNotifier) LessonCanceled(ctx context.Context, lesson *model.Lesson) {
	text := fmt.Sprintf(
		"Урок отменён\nТренер: %s\nУченик: %s\nВремя: %s",
		lesson.CoachID,
		lesson.StudentID,
		lesson.StartTime.Format("02.01.2006 15:04"),
	)
	n.send(ctx, text)
}

func (n *TelegramNotifier) send(ctx context.Context, text string) {
	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: n.chatID,
		Text:   text,
	})
	if err != nil {
		n.logger.Warn("Failed to send telegram notification", zap.Error(err))
	}
}
