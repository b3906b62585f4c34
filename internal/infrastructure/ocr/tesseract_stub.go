//go:build !gosseract
// +build !gosseract

package ocr

import (
	"context"

	"ocr-service/internal/domain/entity"
)

// TesseractAvailable сообщает, собран ли бинарник с libtesseract.
func TesseractAvailable() bool { return false }

// TesseractEngine заглушка, если сборка без тега gosseract.
type TesseractEngine struct {
	opts TesseractOptions
}

// NewTesseractEngine создаёт движок-заглушку (без libtesseract).
func NewTesseractEngine(opts TesseractOptions) *TesseractEngine {
	return &TesseractEngine{opts: opts}
}

func (e *TesseractEngine) Name() string { return "tesseract" }

// Recognize возвращает ошибку, если сборка без тега gosseract.
func (e *TesseractEngine) Recognize(ctx context.Context, imageData []byte) (*entity.RecognitionResult, error) {
	_ = ctx
	_ = imageData
	return nil, wrap("Recognize", entity.ErrEngineUnavailable, "gosseract build tag is not enabled")
}
