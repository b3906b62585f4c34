package ocr

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"

	"ocr-service/internal/domain/entity"
)

// imageAnnotator часть клиента Vision API, которую использует движок.
type imageAnnotator interface {
	BatchAnnotateImages(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest, opts ...gax.CallOption) (*visionpb.BatchAnnotateImagesResponse, error)
	Close() error
}

// GoogleVisionEngine распознаёт текст через Google Cloud Vision API.
type GoogleVisionEngine struct {
	client imageAnnotator
	hints  []string // BCP-47, например en, ru
}

// NewGoogleVisionEngine создаёт клиент Vision API. hints передаются как LanguageHints.
// Сначала GOOGLE_CREDENTIALS (JSON), затем GOOGLE_APPLICATION_CREDENTIALS (файл), затем ADC.
func NewGoogleVisionEngine(ctx context.Context, hints []string) (*GoogleVisionEngine, error) {
	const op = "NewGoogleVisionEngine"

	var opts []option.ClientOption
	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credJSON)))
	} else if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		opts = append(opts, option.WithCredentialsFile(credFile))
	}

	client, err := vision.NewImageAnnotatorClient(ctx, opts...)
	if err != nil {
		return nil, wrap(op, fmt.Errorf("%w: %v", entity.ErrEngineUnavailable, err), "create client")
	}

	return newGoogleVisionEngine(client, hints), nil
}

func newGoogleVisionEngine(client imageAnnotator, hints []string) *GoogleVisionEngine {
	return &GoogleVisionEngine{client: client, hints: hints}
}

func (g *GoogleVisionEngine) Name() string { return "google-vision" }

// Recognize отправляет изображение на DOCUMENT_TEXT_DETECTION.
func (g *GoogleVisionEngine) Recognize(ctx context.Context, imageData []byte) (*entity.RecognitionResult, error) {
	const op = "Recognize"

	width, height, _, err := imageSize(imageData)
	if err != nil {
		return nil, wrap(op, err, "read image size")
	}

	imgReq := &visionpb.AnnotateImageRequest{
		Image: &visionpb.Image{Content: imageData},
		Features: []*visionpb.Feature{
			{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
		},
	}
	// Без подсказок Vision определяет язык сам.
	if len(g.hints) > 0 {
		imgReq.ImageContext = &visionpb.ImageContext{LanguageHints: g.hints}
	}
	req := &visionpb.BatchAnnotateImagesRequest{Requests: []*visionpb.AnnotateImageRequest{imgReq}}

	resp, err := g.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return nil, wrap(op, err, "Vision API call failed")
	}
	if len(resp.GetResponses()) == 0 {
		return nil, wrap(op, errors.New("empty response"), "Vision API")
	}

	imgResp := resp.GetResponses()[0]
	if imgResp.GetError() != nil {
		return nil, wrap(op, errors.New(imgResp.GetError().GetMessage()), "Vision API error")
	}

	annotation := imgResp.GetFullTextAnnotation()
	if width == 0 || height == 0 {
		for _, p := range annotation.GetPages() {
			width, height = int(p.GetWidth()), int(p.GetHeight())
			break
		}
	}

	return &entity.RecognitionResult{
		ImageWidth:  width,
		ImageHeight: height,
		Text:        annotation.GetText(),
		Words:       wordsFromAnnotation(annotation, width, height),
		Engine:      g.Name(),
	}, nil
}

// Close закрывает клиент Vision API.
func (g *GoogleVisionEngine) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// wordsFromAnnotation обходит страницы → блоки → абзацы → слова.
func wordsFromAnnotation(annotation *visionpb.TextAnnotation, width, height int) []entity.WordBox {
	var words []entity.WordBox
	for _, page := range annotation.GetPages() {
		for _, block := range page.GetBlocks() {
			for _, paragraph := range block.GetParagraphs() {
				for _, word := range paragraph.GetWords() {
					var text strings.Builder
					for _, symbol := range word.GetSymbols() {
						text.WriteString(symbol.GetText())
					}
					if text.Len() == 0 {
						continue
					}
					x, y, w, h, ok := polyBounds(word.GetBoundingBox())
					if !ok {
						continue
					}
					box, ok := clampWord(entity.WordBox{
						Text:       text.String(),
						X:          x,
						Y:          y,
						Width:      w,
						Height:     h,
						Confidence: float64(word.GetConfidence()),
					}, width, height)
					if !ok {
						continue
					}
					words = append(words, box)
				}
			}
		}
	}
	return words
}

// polyBounds возвращает охватывающий прямоугольник вершин.
func polyBounds(poly *visionpb.BoundingPoly) (x, y, w, h int, ok bool) {
	vertices := poly.GetVertices()
	if len(vertices) == 0 {
		return 0, 0, 0, 0, false
	}
	minX, minY := math.MaxInt32, math.MaxInt32
	maxX, maxY := math.MinInt32, math.MinInt32
	for _, v := range vertices {
		vx, vy := int(v.GetX()), int(v.GetY())
		minX, maxX = min(minX, vx), max(maxX, vx)
		minY, maxY = min(minY, vy), max(maxY, vy)
	}
	if maxX <= minX || maxY <= minY {
		return 0, 0, 0, 0, false
	}
	return minX, minY, maxX - minX, maxY - minY, true
}
