package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"ocr-service/internal/infrastructure/vision"
)

const (
	EngineTesseract = "tesseract"
	EngineGoogle    = "google"

	AnnotatorNative = "native"
	AnnotatorGoCV   = "gocv"
)

type Config struct {
	HTTPAddr      string
	TelegramToken string
	CORSOrigin    string

	Engine        string
	Languages     []string // коды Tesseract: eng, rus
	LanguageHints []string // BCP-47 для Google Vision: en, ru; пусто = автоопределение
	PageSegMode   int
	Whitelist     string

	Annotator    string
	BoxColor     string
	BoxThickness int
	BoxLabels    bool

	MaxUploadBytes int64
	MaxPixels      int64

	LogLevel  string
	LogFormat string
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:      getEnv("HTTP_ADDR", "127.0.0.1:8686"),
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		CORSOrigin:    getEnv("CORS_ORIGIN", "*"),
		Engine:        strings.ToLower(getEnv("OCR_ENGINE", EngineTesseract)),
		Languages:     splitList(getEnv("OCR_LANGUAGES", "eng")),
		LanguageHints: splitList(os.Getenv("OCR_LANGUAGE_HINTS")),
		Whitelist:     os.Getenv("OCR_WHITELIST"),
		Annotator:     strings.ToLower(getEnv("ANNOTATOR", AnnotatorNative)),
		BoxColor:      getEnv("BOX_COLOR", "#00FF00"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "console"),
	}

	var err error
	if cfg.PageSegMode, err = getInt("OCR_PSM", 3); err != nil {
		return nil, err
	}
	if cfg.BoxThickness, err = getInt("BOX_THICKNESS", 2); err != nil {
		return nil, err
	}
	if cfg.BoxLabels, err = getBool("BOX_LABELS", false); err != nil {
		return nil, err
	}
	maxMB, err := getInt("MAX_UPLOAD_MB", 10)
	if err != nil {
		return nil, err
	}
	cfg.MaxUploadBytes = int64(maxMB) << 20
	maxPixels, err := getInt("MAX_PIXELS", 50_000_000)
	if err != nil {
		return nil, err
	}
	cfg.MaxPixels = int64(maxPixels)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	switch c.Engine {
	case EngineTesseract, EngineGoogle:
	default:
		return fmt.Errorf("OCR_ENGINE: unknown engine %q", c.Engine)
	}
	switch c.Annotator {
	case AnnotatorNative, AnnotatorGoCV:
	default:
		return fmt.Errorf("ANNOTATOR: unknown annotator %q", c.Annotator)
	}
	if _, err := vision.ParseHexColor(c.BoxColor); err != nil {
		return fmt.Errorf("BOX_COLOR: %w", err)
	}
	if c.BoxThickness < 1 {
		return fmt.Errorf("BOX_THICKNESS: must be positive, got %d", c.BoxThickness)
	}
	if c.PageSegMode < 0 || c.PageSegMode > 13 {
		return fmt.Errorf("OCR_PSM: must be in 0..13, got %d", c.PageSegMode)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB: must be positive")
	}
	if c.MaxPixels <= 0 {
		return fmt.Errorf("MAX_PIXELS: must be positive")
	}
	return nil
}

// BoxStyle собирает стиль рамок из настроек
func (c *Config) BoxStyle() vision.BoxStyle {
	col, err := vision.ParseHexColor(c.BoxColor)
	if err != nil {
		return vision.DefaultBoxStyle()
	}
	return vision.BoxStyle{Color: col, Thickness: c.BoxThickness, Labels: c.BoxLabels}
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getBool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '+' || r == ' ' })
}
