package vision

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"ocr-service/internal/domain/entity"
)

// Annotator рисует рамки слов без OpenCV.
type Annotator struct {
	Style BoxStyle
}

// NewAnnotator создаёт аннотатор с заданным стилем.
func NewAnnotator(style BoxStyle) *Annotator {
	if style.Thickness <= 0 {
		style.Thickness = 1
	}
	return &Annotator{Style: style}
}

// Annotate рисует прямоугольники вокруг слов и возвращает PNG.
func (a *Annotator) Annotate(imageData []byte, result *entity.RecognitionResult) ([]byte, error) {
	if len(imageData) == 0 {
		return nil, entity.ErrEmptyImage
	}
	src, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrUnsupportedImage, err)
	}

	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)

	if result != nil {
		fill := image.NewUniform(a.Style.Color)
		for _, w := range result.Words {
			if w.Empty() {
				continue
			}
			r := scaledRect(w, result, dst.Bounds())
			if r.Empty() {
				continue
			}
			outline(dst, r, a.Style.Thickness, fill)
			if a.Style.Labels && w.Text != "" {
				label(dst, r, w.Text, fill)
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// outline рисует рамку толщиной t внутрь прямоугольника.
// Полосы не пересекаются, иначе полупрозрачный цвет ложится в углах дважды.
func outline(dst draw.Image, r image.Rectangle, t int, src image.Image) {
	t = min(t, (r.Dx()+1)/2, (r.Dy()+1)/2)
	top, bottom := r.Min.Y+t, max(r.Max.Y-t, r.Min.Y+t)
	strips := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, top),
		image.Rect(r.Min.X, bottom, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, top, r.Min.X+t, bottom),
		image.Rect(r.Max.X-t, top, r.Max.X, bottom),
	}
	for _, s := range strips {
		draw.Draw(dst, s, src, image.Point{}, draw.Over)
	}
}

// label подписывает рамку над ней, а если места нет, то под ней.
func label(dst draw.Image, r image.Rectangle, text string, src image.Image) {
	face := basicfont.Face7x13
	y := r.Min.Y - 2
	if y-face.Ascent < dst.Bounds().Min.Y {
		y = r.Max.Y + face.Ascent
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  src,
		Face: face,
		Dot:  fixed.P(r.Min.X, y),
	}
	d.DrawString(text)
}
