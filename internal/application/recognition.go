package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"time"

	"github.com/rs/zerolog"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"ocr-service/internal/domain/entity"
	"ocr-service/internal/domain/port"
	"ocr-service/internal/logger"
)

// DefaultMaxPixels лимит на размер изображения в пикселях (50 MP).
const DefaultMaxPixels = 50_000_000

// Limits ограничения на входное изображение. Нулевое значение отключает лимит.
type Limits struct {
	MaxBytes  int64 // размер файла в байтах
	MaxPixels int64 // ширина × высота после декодирования заголовка
}

type RecognitionService struct {
	recognizer port.TextRecognizer
	annotator  port.BoxAnnotator
	limits     Limits
	log        zerolog.Logger
}

// RecognitionOutput содержит результат распознавания и картинку с рамками.
type RecognitionOutput struct {
	Result    *entity.RecognitionResult
	Annotated []byte
}

// NewRecognitionService создаёт сервис распознавания.
func NewRecognitionService(recognizer port.TextRecognizer, annotator port.BoxAnnotator, limits Limits) *RecognitionService {
	return &RecognitionService{
		recognizer: recognizer,
		annotator:  annotator,
		limits:     limits,
		log:        logger.WithComponent("recognition"),
	}
}

// EngineName возвращает имя OCR-движка или пустую строку.
func (s *RecognitionService) EngineName() string {
	if s.recognizer == nil {
		return ""
	}
	return s.recognizer.Name()
}

// MaxBytes возвращает лимит размера изображения.
func (s *RecognitionService) MaxBytes() int64 {
	return s.limits.MaxBytes
}

// Process распознаёт изображение и рисует рамки вокруг слов.
// Картинка возвращается всегда, даже если слов не нашлось.
func (s *RecognitionService) Process(ctx context.Context, imageData []byte) (*RecognitionOutput, error) {
	if len(imageData) == 0 {
		return nil, entity.ErrEmptyImage
	}
	if s.limits.MaxBytes > 0 && int64(len(imageData)) > s.limits.MaxBytes {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", entity.ErrImageTooLarge, len(imageData), s.limits.MaxBytes)
	}
	if err := s.checkDimensions(imageData); err != nil {
		return nil, err
	}
	if s.recognizer == nil {
		return nil, fmt.Errorf("%w: recognizer is not configured", entity.ErrEngineUnavailable)
	}
	if s.annotator == nil {
		return nil, errors.New("annotator is not configured")
	}

	started := time.Now()
	result, err := s.recognizer.Recognize(ctx, imageData)
	if err != nil {
		return nil, fmt.Errorf("recognize: %w", err)
	}
	if result.Engine == "" {
		result.Engine = s.recognizer.Name()
	}
	result.Text = strings.TrimSpace(result.Text)
	result.HasText = result.Text != "" || result.WordCount() > 0

	annotated, err := s.annotator.Annotate(imageData, result)
	if err != nil {
		return nil, fmt.Errorf("annotate: %w", err)
	}

	s.log.Info().
		Str("engine", result.Engine).
		Int("words", result.WordCount()).
		Int("width", result.ImageWidth).
		Int("height", result.ImageHeight).
		Dur("took", time.Since(started)).
		Msg("image recognized")

	return &RecognitionOutput{Result: result, Annotated: annotated}, nil
}

// checkDimensions читает только заголовок: маленький файл может объявить
// огромные размеры, и полное декодирование исчерпает память.
func (s *RecognitionService) checkDimensions(data []byte) error {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrUnsupportedImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", entity.ErrUnsupportedImage, cfg.Width, cfg.Height)
	}
	pixels := int64(cfg.Width) * int64(cfg.Height)
	if s.limits.MaxPixels > 0 && pixels > s.limits.MaxPixels {
		return fmt.Errorf("%w: %dx%d pixels, limit %d", entity.ErrImageTooLarge, cfg.Width, cfg.Height, s.limits.MaxPixels)
	}
	return nil
}
