package ocr

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"ocr-service/internal/domain/entity"
)

// imageSize читает размеры изображения без полного декодирования.
func imageSize(data []byte) (width, height int, format string, err error) {
	if len(data) == 0 {
		return 0, 0, "", entity.ErrEmptyImage
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, "", fmt.Errorf("%w: %v", entity.ErrUnsupportedImage, err)
	}
	return cfg.Width, cfg.Height, format, nil
}

// clampWord обрезает рамку по границам изображения; false если рамка пустая.
func clampWord(w entity.WordBox, width, height int) (entity.WordBox, bool) {
	r := w.Rect()
	if width > 0 && height > 0 {
		r = r.Intersect(image.Rect(0, 0, width, height))
	}
	if r.Empty() {
		return w, false
	}
	w.X, w.Y = r.Min.X, r.Min.Y
	w.Width, w.Height = r.Dx(), r.Dy()
	return w, true
}
