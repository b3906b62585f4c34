package vision

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"ocr-service/internal/domain/entity"
)

// BoxStyle оформление рамок.
type BoxStyle struct {
	Color     color.RGBA
	Thickness int
	Labels    bool // подписывать рамки распознанным словом
}

// DefaultBoxStyle зелёные рамки толщиной 2 без подписей.
func DefaultBoxStyle() BoxStyle {
	return BoxStyle{Color: color.RGBA{G: 255, A: 255}, Thickness: 2}
}

// ParseHexColor разбирает цвет вида #RRGGBB или #RRGGBBAA.
// Каналы в строке не домножены на альфу, color.RGBA хранит домноженные.
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q: expected #RRGGBB or #RRGGBBAA", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	c := color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
	return color.RGBAModel.Convert(c).(color.RGBA), nil
}

// scaledRect переводит рамку из координат движка в координаты изображения.
// Нужно, если движок работал с уменьшенной копией.
func scaledRect(w entity.WordBox, result *entity.RecognitionResult, bounds image.Rectangle) image.Rectangle {
	r := w.Rect()
	if result.ImageWidth > 0 && result.ImageHeight > 0 &&
		(result.ImageWidth != bounds.Dx() || result.ImageHeight != bounds.Dy()) {
		sx := float64(bounds.Dx()) / float64(result.ImageWidth)
		sy := float64(bounds.Dy()) / float64(result.ImageHeight)
		r = image.Rect(
			int(float64(r.Min.X)*sx), int(float64(r.Min.Y)*sy),
			int(float64(r.Max.X)*sx), int(float64(r.Max.Y)*sy),
		)
	}
	return r.Add(bounds.Min).Intersect(bounds)
}
