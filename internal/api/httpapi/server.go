package httpapi

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	app "ocr-service/internal/application"
	"ocr-service/internal/logger"
)

// Server HTTP-сервер страницы и эндпоинта /ocr-service
type Server struct {
	httpServer  *http.Server
	recognition *app.RecognitionService
	page        fs.FS
	corsOrigin  string
	log         zerolog.Logger
}

// Options настройки сервера
type Options struct {
	Addr       string // адрес, по умолчанию 127.0.0.1:8686
	CORSOrigin string // значение Access-Control-Allow-Origin, пусто = без CORS
	Page       fs.FS  // файлы страницы, должен содержать index.html
}

// NewServer создаёт сервер поверх сервиса распознавания
func NewServer(recognition *app.RecognitionService, opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = "127.0.0.1:8686"
	}

	s := &Server{
		recognition: recognition,
		page:        opts.Page,
		corsOrigin:  opts.CORSOrigin,
		log:         logger.WithComponent("http"),
	}

	s.httpServer = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return s
}

// Handler возвращает обработчик со всеми маршрутами и middleware
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /ocr-service", s.handleOCR)

	return s.withRequestLog(s.withCORS(mux))
}

// Addr возвращает адрес, на котором слушает сервер
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Run запускает сервер и блокируется до отмены контекста
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.httpServer.Addr).Msg("starting HTTP server")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
