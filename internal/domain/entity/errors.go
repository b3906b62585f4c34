package entity

import "errors"

var (
	// ErrEmptyImage возвращается, если изображение не передано.
	ErrEmptyImage = errors.New("empty image")

	// ErrUnsupportedImage возвращается, если формат изображения не распознан.
	ErrUnsupportedImage = errors.New("unsupported image format")

	// ErrImageTooLarge возвращается при превышении лимита размера.
	ErrImageTooLarge = errors.New("image is too large")

	// ErrInvalidTransition возвращается при недопустимой смене состояния сессии.
	ErrInvalidTransition = errors.New("invalid session state transition")

	// ErrNoResult возвращается, если результата распознавания ещё нет.
	ErrNoResult = errors.New("no recognition result")

	// ErrEngineUnavailable возвращается, если OCR-движок не собран или не настроен.
	ErrEngineUnavailable = errors.New("ocr engine is not available")
)
