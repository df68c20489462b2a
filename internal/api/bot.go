package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	app "frame-classifier/internal/application"
	"frame-classifier/internal/container"
	"frame-classifier/internal/domain/entity"
	"frame-classifier/internal/domain/port"
)

const (
	msgStart = `👋 Привет! Я показываю, что видит камера классификатора.

📋 Команды:
/status — последний результат с камеры
/classify — классифицировать своё фото
/subscribe — получать предупреждения о препятствиях
/unsubscribe — отключить предупреждения
/help — справка`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ /status покажет, что камера распознала последним
2️⃣ /classify и затем фото: я назову класс объекта
3️⃣ /subscribe включит предупреждения, когда перед камерой препятствие

📋 Команды:
/status, /classify, /subscribe, /unsubscribe, /cancel`

	msgAwaitingPhoto   = "📸 Отправьте фото для классификации."
	msgCancelled       = "❌ Операция отменена."
	msgSendPhoto       = "📸 Сначала отправьте /classify, затем фото. Справка: /help"
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "⏳ Обрабатываю изображение..."
	msgProcessingError = "⚠️ Не удалось обработать изображение. Попробуйте другое фото."
	msgNoPrediction    = "📷 Камера ещё ничего не распознала."
	msgSubscribed      = "🔔 Предупреждения включены."
	msgUnsubscribed    = "🔕 Предупреждения отключены."
)

// Bot представляет Telegram-бота
type Bot struct {
	api        *tgbotapi.BotAPI
	users      *app.UserService
	classifier *app.ClassificationService
	log        *zap.Logger
}

// NewBot создаёт нового бота
func NewBot(token string, c *container.Container, log *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Info("authorized on telegram", zap.String("account", api.Self.UserName))

	return &Bot{
		api:        api,
		users:      c.UserService,
		classifier: c.ClassificationService,
		log:        log,
	}, nil
}

// Run запускает основной цикл обработки сообщений
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// Notify рассылает предупреждение подписчикам
func (b *Bot) Notify(ctx context.Context, alert entity.Alert) error {
	subs, err := b.users.Subscribers(ctx)
	if err != nil {
		return fmt.Errorf("list subscribers: %w", err)
	}

	var errs []error
	text := formatAlert(alert)
	for _, user := range subs {
		if _, err := b.api.Send(tgbotapi.NewMessage(user.ChatID, text)); err != nil {
			errs = append(errs, fmt.Errorf("send alert to %d: %w", user.ChatID, err))
		}
	}
	return errors.Join(errs...)
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	// Обработка фото
	if len(msg.Photo) > 0 {
		b.handlePhoto(ctx, msg)
		return
	}

	// Текстовое сообщение (не команда)
	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	userID, chatID := msg.From.ID, msg.Chat.ID

	var err error
	switch msg.Command() {
	case "start":
		_, err = b.users.Cancel(ctx, userID, chatID)
		b.sendMessage(chatID, msgStart)

	case "help":
		b.sendMessage(chatID, msgHelp)

	case "status":
		p, perr := b.classifier.Latest()
		if perr != nil {
			b.sendMessage(chatID, msgNoPrediction)
			return
		}
		b.sendMessage(chatID, formatPrediction(p))

	case "classify":
		_, err = b.users.BeginClassify(ctx, userID, chatID)
		b.sendMessage(chatID, msgAwaitingPhoto)

	case "subscribe":
		_, err = b.users.SetSubscribed(ctx, userID, chatID, true)
		b.sendMessage(chatID, msgSubscribed)

	case "unsubscribe":
		_, err = b.users.SetSubscribed(ctx, userID, chatID, false)
		b.sendMessage(chatID, msgUnsubscribed)

	case "cancel":
		_, err = b.users.Cancel(ctx, userID, chatID)
		b.sendMessage(chatID, msgCancelled)

	default:
		b.sendMessage(chatID, msgUnknownCommand)
	}

	if err != nil {
		b.log.Error("update user", zap.Int64("user", userID), zap.Error(err))
	}
}

// handlePhoto классифицирует присланное фото
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message) {
	userID, chatID := msg.From.ID, msg.Chat.ID

	accepted, err := b.users.AcceptPhoto(ctx, userID, chatID)
	if err != nil {
		b.log.Error("update user", zap.Int64("user", userID), zap.Error(err))
		b.sendMessage(chatID, msgProcessingError)
		return
	}
	if !accepted {
		b.sendMessage(chatID, msgSendPhoto)
		return
	}
	defer func() {
		if _, err := b.users.Cancel(ctx, userID, chatID); err != nil {
			b.log.Error("update user", zap.Int64("user", userID), zap.Error(err))
		}
	}()

	b.sendMessage(chatID, msgProcessing)

	// Берём файл с максимальным разрешением
	photo := msg.Photo[len(msg.Photo)-1]

	imageData, err := b.downloadFile(ctx, photo.FileID)
	if err != nil {
		b.log.Warn("download photo", zap.Error(err))
		b.sendMessage(chatID, msgProcessingError)
		return
	}

	p, err := b.classifier.ClassifyImage(ctx, imageData)
	if err != nil {
		b.log.Warn("classify photo", zap.Int("bytes", len(imageData)), zap.Error(err))
		b.sendMessage(chatID, msgProcessingError)
		return
	}

	b.sendMessage(chatID, formatPrediction(*p))
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(b.api.Token), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Warn("send message", zap.Int64("chat", chatID), zap.Error(err))
	}
}

var _ port.Notifier = (*Bot)(nil)
