package container

import (
	"context"
	"fmt"
	"io"

	"ocr-service/config"
	app "ocr-service/internal/application"
	"ocr-service/internal/domain/port"
	"ocr-service/internal/infrastructure/ocr"
	"ocr-service/internal/infrastructure/storage"
	"ocr-service/internal/infrastructure/vision"
	"ocr-service/internal/logger"
)

type Container struct {
	RecognitionService *app.RecognitionService
	SessionService     *app.SessionService

	closers []io.Closer
}

func New(sessionRepo port.SessionRepository, recognizer port.TextRecognizer, annotator port.BoxAnnotator, limits app.Limits) *Container {
	recognitionService := app.NewRecognitionService(recognizer, annotator, limits)
	sessionService := app.NewSessionService(sessionRepo, recognitionService)

	return &Container{
		RecognitionService: recognitionService,
		SessionService:     sessionService,
	}
}

// FromConfig собирает движок, аннотатор и сервисы по настройкам
func FromConfig(ctx context.Context, cfg *config.Config) (*Container, error) {
	recognizer, closer, err := NewRecognizer(ctx, cfg)
	if err != nil {
		return nil, err
	}

	limits := app.Limits{MaxBytes: cfg.MaxUploadBytes, MaxPixels: cfg.MaxPixels}
	c := New(storage.NewMemorySessionRepository(), recognizer, NewAnnotator(cfg), limits)
	if closer != nil {
		c.closers = append(c.closers, closer)
	}

	return c, nil
}

// NewRecognizer создаёт OCR-движок; второй результат нужно закрыть, если он не nil
func NewRecognizer(ctx context.Context, cfg *config.Config) (port.TextRecognizer, io.Closer, error) {
	switch cfg.Engine {
	case config.EngineTesseract:
		if !ocr.TesseractAvailable() {
			log := logger.WithComponent("container")
			log.Warn().
				Msg("tesseract engine selected but binary is built without the gosseract tag: every request will fail with 503; rebuild with -tags gosseract or set OCR_ENGINE=google")
		}
		return ocr.NewTesseractEngine(ocr.TesseractOptions{
			Languages:   cfg.Languages,
			PageSegMode: cfg.PageSegMode,
			Whitelist:   cfg.Whitelist,
		}), nil, nil
	case config.EngineGoogle:
		engine, err := ocr.NewGoogleVisionEngine(ctx, cfg.LanguageHints)
		if err != nil {
			return nil, nil, err
		}
		return engine, engine, nil
	default:
		return nil, nil, fmt.Errorf("unknown engine %q", cfg.Engine)
	}
}

// NewAnnotator создаёт аннотатор рамок
func NewAnnotator(cfg *config.Config) port.BoxAnnotator {
	if cfg.Annotator == config.AnnotatorGoCV {
		return vision.NewGoCVAnnotator(cfg.BoxStyle())
	}
	return vision.NewAnnotator(cfg.BoxStyle())
}

// Close освобождает клиентов движков
func (c *Container) Close() error {
	var firstErr error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
