package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	app "ocr-service/internal/application"
	"ocr-service/internal/domain/entity"
	"ocr-service/internal/logger"
)

const (
	msgStart = `👋 Привет! Я бот для распознавания текста на изображениях.

📸 Отправьте мне фото или картинку файлом, и я найду на ней слова, обведу их рамками и пришлю текст.

📋 Команды:
/download — скачать картинку с рамками
/text — прислать распознанный текст ещё раз
/reset — начать заново
/help — справка`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Отправьте фото или изображение файлом
2️⃣ Бот распознает текст
3️⃣ Вы получите картинку с рамками вокруг слов и текст

💡 Рекомендации:
• Файлом качество выше, чем сжатым фото
• Текст должен быть чётким и горизонтальным

📋 Команды:
/download — скачать processed_image.png
/text — текст ещё раз
/reset — начать заново`

	msgReset           = "🔄 Готово. Отправьте новое изображение."
	msgSendPhoto       = "📸 Пожалуйста, отправьте изображение с текстом."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "⏳ Распознаю текст..."
	msgBusy            = "⏳ Предыдущее изображение ещё обрабатывается."
	msgNoResult        = "📭 Результата пока нет. Сначала отправьте изображение."
	msgNoText          = "🔍 Текст не найден."
	msgBadImage        = "⚠️ Не удалось прочитать изображение. Поддерживаются PNG, JPEG, GIF, BMP, TIFF и WEBP."
	msgTooLarge        = "⚠️ Изображение слишком большое."
	msgProcessingError = "⚠️ Не удалось обработать изображение. Попробуйте ещё раз."

	downloadFileName = "processed_image.png"
	// лимит Telegram на длину сообщения
	maxMessageRunes = 4096
)

// botAPI часть tgbotapi.BotAPI, которой пользуется бот
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetFile(config tgbotapi.FileConfig) (tgbotapi.File, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot представляет Telegram-бота
type Bot struct {
	api      botAPI
	token    string
	sessions *app.SessionService
	log      zerolog.Logger
	download func(fileID string) ([]byte, error)
}

// NewBot создаёт нового бота
func NewBot(token string, sessions *app.SessionService) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log := logger.WithComponent("telegram")
	log.Info().Str("account", api.Self.UserName).Msg("authorized")

	return newBot(api, api.Token, sessions, log), nil
}

func newBot(api botAPI, token string, sessions *app.SessionService, log zerolog.Logger) *Bot {
	b := &Bot{
		api:      api,
		token:    token,
		sessions: sessions,
		log:      log,
	}
	b.download = b.downloadFile
	return b
}

// Run запускает основной цикл обработки сообщений до отмены контекста
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

	// Обработка фото, берём максимальное разрешение
	if len(msg.Photo) > 0 {
		photo := msg.Photo[len(msg.Photo)-1]
		b.handleImage(ctx, msg, photo.FileID, "photo.jpg")
		return
	}

	// Изображение, отправленное файлом
	if msg.Document != nil && isImageDocument(msg.Document) {
		b.handleImage(ctx, msg, msg.Document.FileID, msg.Document.FileName)
		return
	}

	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	userID, chatID := msg.From.ID, msg.Chat.ID

	switch msg.Command() {
	case "start":
		if _, err := b.sessions.Reset(ctx, userID, chatID); err != nil {
			b.log.Error().Err(err).Int64("user", userID).Msg("reset session")
		}
		b.sendMessage(chatID, msgStart)

	case "help":
		b.sendMessage(chatID, msgHelp)

	case "reset", "cancel":
		if _, err := b.sessions.Reset(ctx, userID, chatID); err != nil {
			b.log.Error().Err(err).Int64("user", userID).Msg("reset session")
		}
		b.sendMessage(chatID, msgReset)

	case "download":
		session, err := b.sessions.Result(ctx, userID, chatID)
		if err != nil {
			b.sendMessage(chatID, msgNoResult)
			return
		}
		doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: downloadFileName, Bytes: session.Annotated})
		b.send(doc)

	case "text":
		session, err := b.sessions.Result(ctx, userID, chatID)
		if err != nil {
			b.sendMessage(chatID, msgNoResult)
			return
		}
		b.sendText(chatID, session.Result)

	default:
		b.sendMessage(chatID, msgUnknownCommand)
	}
}

// handleImage выбирает файл для сессии и сразу запускает распознавание
func (b *Bot) handleImage(ctx context.Context, msg *tgbotapi.Message, fileID, name string) {
	userID, chatID := msg.From.ID, msg.Chat.ID

	imageData, err := b.download(fileID)
	if err != nil {
		b.log.Error().Err(err).Int64("user", userID).Msg("download image")
		b.sendMessage(chatID, msgProcessingError)
		return
	}

	if _, err := b.sessions.SelectFile(ctx, userID, chatID, name, imageData); err != nil {
		if errors.Is(err, entity.ErrInvalidTransition) {
			b.sendMessage(chatID, msgBusy)
			return
		}
		b.log.Error().Err(err).Int64("user", userID).Msg("select file")
		b.sendMessage(chatID, msgProcessingError)
		return
	}

	b.sendMessage(chatID, msgProcessing)

	session, err := b.sessions.Process(ctx, userID, chatID)
	if err != nil {
		b.log.Warn().Err(err).Int64("user", userID).Int("bytes", len(imageData)).Msg("process image")
		b.sendMessage(chatID, userMessageFor(err))
		return
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: downloadFileName, Bytes: session.Annotated})
	photo.Caption = caption(session.Result)
	b.send(photo)

	b.sendText(chatID, session.Result)
}

// sendText отправляет распознанный текст частями под лимит Telegram
func (b *Bot) sendText(chatID int64, result *entity.RecognitionResult) {
	if result == nil || result.Text == "" {
		b.sendMessage(chatID, msgNoText)
		return
	}
	for _, part := range splitText(result.Text, maxMessageRunes) {
		b.sendMessage(chatID, part)
	}
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	fileURL := file.Link(b.token)

	resp, err := http.Get(fileURL)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		b.log.Error().Err(err).Msg("send message")
	}
}

func isImageDocument(doc *tgbotapi.Document) bool {
	return strings.HasPrefix(doc.MimeType, "image/")
}

func userMessageFor(err error) string {
	switch {
	case errors.Is(err, entity.ErrUnsupportedImage), errors.Is(err, entity.ErrEmptyImage):
		return msgBadImage
	case errors.Is(err, entity.ErrImageTooLarge):
		return msgTooLarge
	default:
		return msgProcessingError
	}
}

func caption(result *entity.RecognitionResult) string {
	if result == nil || !result.HasText {
		return msgNoText
	}
	return fmt.Sprintf("✅ Найдено слов: %d (уверенность %.0f%%)", result.WordCount(), result.AverageConfidence()*100)
}

// splitText режет текст на части не длиннее limit рун, по возможности по переводу строки.
func splitText(text string, limit int) []string {
	runes := []rune(text)
	var parts []string
	for len(runes) > limit {
		cut := limit
		for i := limit; i > limit/2; i-- {
			if runes[i-1] == '\n' {
				cut = i
				break
			}
		}
		parts = append(parts, string(runes[:cut]))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}
	return parts
}
