//go:build gosseract
// +build gosseract

package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"

	"ocr-service/internal/domain/entity"
)

// TesseractAvailable сообщает, собран ли бинарник с libtesseract.
func TesseractAvailable() bool { return true }

// TesseractEngine распознаёт текст через libtesseract (gosseract).
type TesseractEngine struct {
	opts          TesseractOptions
	clientFactory func() *gosseract.Client
}

// NewTesseractEngine создаёт движок Tesseract.
func NewTesseractEngine(opts TesseractOptions) *TesseractEngine {
	return &TesseractEngine{opts: opts, clientFactory: gosseract.NewClient}
}

func (e *TesseractEngine) Name() string { return "tesseract" }

// Recognize распознаёт изображение. Клиент gosseract не потокобезопасен,
// поэтому на каждый вызов создаётся новый.
func (e *TesseractEngine) Recognize(ctx context.Context, imageData []byte) (*entity.RecognitionResult, error) {
	const op = "Recognize"

	width, height, _, err := imageSize(imageData)
	if err != nil {
		return nil, wrap(op, err, "read image size")
	}
	if err := ctx.Err(); err != nil {
		return nil, wrap(op, err, "")
	}

	c := e.clientFactory()
	defer c.Close()

	if err := e.configure(c); err != nil {
		return nil, wrap(op, err, "configure client")
	}
	if err := c.SetImageFromBytes(imageData); err != nil {
		return nil, wrap(op, err, "set image")
	}

	text, err := c.Text()
	if err != nil {
		return nil, wrap(op, err, "recognize text")
	}

	boxes, err := c.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, wrap(op, err, "word boxes")
	}

	words := make([]entity.WordBox, 0, len(boxes))
	for _, b := range boxes {
		if b.Word == "" {
			continue
		}
		w, ok := clampWord(entity.WordBox{
			Text:       b.Word,
			X:          b.Box.Min.X,
			Y:          b.Box.Min.Y,
			Width:      b.Box.Dx(),
			Height:     b.Box.Dy(),
			Confidence: b.Confidence / 100.0,
		}, width, height)
		if !ok {
			continue
		}
		words = append(words, w)
	}

	return &entity.RecognitionResult{
		ImageWidth:  width,
		ImageHeight: height,
		Text:        text,
		Words:       words,
		Engine:      e.Name(),
	}, nil
}

func (e *TesseractEngine) configure(c *gosseract.Client) error {
	if len(e.opts.Languages) > 0 {
		if err := c.SetLanguage(e.opts.Languages...); err != nil {
			return fmt.Errorf("set languages: %w", err)
		}
	}
	if e.opts.PageSegMode > 0 {
		if err := c.SetPageSegMode(gosseract.PageSegMode(e.opts.PageSegMode)); err != nil {
			return fmt.Errorf("set page seg mode: %w", err)
		}
	}
	if e.opts.Whitelist != "" {
		if err := c.SetWhitelist(e.opts.Whitelist); err != nil {
			return fmt.Errorf("set whitelist: %w", err)
		}
	}
	return nil
}
