//go:build !gocv
// +build !gocv

package vision

import (
	"errors"

	"ocr-service/internal/domain/entity"
)

type GoCVAnnotator struct {
	Style BoxStyle
}

// NewGoCVAnnotator создаёт аннотатор-заглушку (без OpenCV).
func NewGoCVAnnotator(style BoxStyle) *GoCVAnnotator {
	return &GoCVAnnotator{Style: style}
}

// Annotate возвращает ошибку, если сборка без тега gocv.
func (a *GoCVAnnotator) Annotate(imageData []byte, result *entity.RecognitionResult) ([]byte, error) {
	_ = imageData
	_ = result
	return nil, errors.New("gocv build tag is not enabled")
}
