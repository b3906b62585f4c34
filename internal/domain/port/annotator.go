package port

import "ocr-service/internal/domain/entity"

// BoxAnnotator интерфейс отрисовки рамок
type BoxAnnotator interface {
	// Annotate рисует рамки слов и возвращает PNG
	Annotate(imageData []byte, result *entity.RecognitionResult) ([]byte, error)
}
