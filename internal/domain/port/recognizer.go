package port

import (
	"context"

	"ocr-service/internal/domain/entity"
)

// TextRecognizer интерфейс OCR-движка
type TextRecognizer interface {
	// Name возвращает имя движка
	Name() string

	// Recognize распознаёт изображение и возвращает текст и рамки слов
	Recognize(ctx context.Context, imageData []byte) (*entity.RecognitionResult, error)
}
