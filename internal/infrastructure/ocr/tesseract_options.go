package ocr

// TesseractOptions настройки движка Tesseract.
type TesseractOptions struct {
	Languages   []string // коды языков, например eng, rus
	PageSegMode int      // режим сегментации страницы (PSM), 0 оставляет значение по умолчанию
	Whitelist   string   // допустимые символы, пусто = все
}

// DefaultTesseractOptions возвращает настройки по умолчанию.
func DefaultTesseractOptions() TesseractOptions {
	return TesseractOptions{
		Languages:   []string{"eng"},
		PageSegMode: 3,
	}
}
