//go:build gocv
// +build gocv

package vision

import (
	"bytes"
	"errors"
	"image"
	"image/png"

	"gocv.io/x/gocv"

	"ocr-service/internal/domain/entity"
)

// GoCVAnnotator рисует рамки средствами OpenCV.
type GoCVAnnotator struct {
	Style BoxStyle
}

// NewGoCVAnnotator создаёт аннотатор на OpenCV.
func NewGoCVAnnotator(style BoxStyle) *GoCVAnnotator {
	if style.Thickness <= 0 {
		style.Thickness = 1
	}
	return &GoCVAnnotator{Style: style}
}

// Annotate рисует прямоугольники вокруг слов и возвращает PNG.
func (a *GoCVAnnotator) Annotate(imageData []byte, result *entity.RecognitionResult) ([]byte, error) {
	mat, err := decodeToMat(imageData)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	bounds := image.Rect(0, 0, mat.Cols(), mat.Rows())
	if result != nil {
		for _, w := range result.Words {
			if w.Empty() {
				continue
			}
			rect := scaledRect(w, result, bounds)
			if rect.Empty() {
				continue
			}
			gocv.Rectangle(&mat, rect, a.Style.Color, a.Style.Thickness)
			if a.Style.Labels && w.Text != "" {
				y := rect.Min.Y - 3
				if y < 10 {
					y = rect.Max.Y + 12
				}
				gocv.PutText(&mat, w.Text, image.Pt(rect.Min.X, y), gocv.FontHersheySimplex, 0.4, a.Style.Color, 1)
			}
		}
	}

	img, err := mat.ToImage()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// decodeToMat превращает байты изображения в gocv.Mat.
func decodeToMat(imageData []byte) (gocv.Mat, error) {
	if len(imageData) == 0 {
		return gocv.NewMat(), entity.ErrEmptyImage
	}
	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err == nil && !mat.Empty() {
		return mat, nil
	}
	if !mat.Empty() {
		mat.Close()
	}
	return gocv.NewMat(), errors.Join(entity.ErrUnsupportedImage, errors.New("failed to decode image"))
}
