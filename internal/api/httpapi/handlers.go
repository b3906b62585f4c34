package httpapi

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"net/http"

	"ocr-service/internal/domain/entity"
)

const (
	formField        = "image"
	downloadFileName = "processed_image.png"
	// запас на заголовки multipart сверх лимита на само изображение
	multipartOverhead = 1 << 20
)

// OCRResponse ответ эндпоинта /ocr-service
type OCRResponse struct {
	ExtractedText  string     `json:"extractedText"`
	ProcessedImage string     `json:"processedImage"` // PNG в base64
	Words          []WordJSON `json:"words"`
	Width          int        `json:"width"`
	Height         int        `json:"height"`
	Engine         string     `json:"engine"`
}

// WordJSON рамка слова в ответе
type WordJSON struct {
	Text       string  `json:"text"`
	X          int     `json:"x"`
	Y          int     `json:"y"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Confidence float64 `json:"confidence"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status string `json:"status"`
	Engine string `json:"engine,omitempty"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.page == nil {
		http.NotFound(w, r)
		return
	}
	data, err := fs.ReadFile(s.page, "index.html")
	if err != nil {
		s.log.Error().Err(err).Msg("read index page")
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(data)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Engine: s.recognition.EngineName()})
}

// handleOCR принимает multipart-поле image и возвращает текст и PNG с рамками.
// С ?format=png отдаёт сам PNG как вложение.
func (s *Server) handleOCR(w http.ResponseWriter, r *http.Request) {
	if limit := s.recognition.MaxBytes(); limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)
	}

	file, _, err := r.FormFile(formField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, entity.ErrImageTooLarge)
			return
		}
		writeError(w, http.StatusBadRequest, errors.New("missing form field \"image\""))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	out, err := s.recognition.Process(r.Context(), data)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			s.log.Error().Err(err).Msg("recognition failed")
		}
		writeError(w, status, err)
		return
	}

	if r.URL.Query().Get("format") == "png" {
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Disposition", `attachment; filename="`+downloadFileName+`"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(out.Annotated)
		return
	}

	words := make([]WordJSON, 0, len(out.Result.Words))
	for _, word := range out.Result.Words {
		words = append(words, WordJSON{
			Text:       word.Text,
			X:          word.X,
			Y:          word.Y,
			Width:      word.Width,
			Height:     word.Height,
			Confidence: word.Confidence,
		})
	}

	writeJSON(w, http.StatusOK, OCRResponse{
		ExtractedText:  out.Result.Text,
		ProcessedImage: base64.StdEncoding.EncodeToString(out.Annotated),
		Words:          words,
		Width:          out.Result.ImageWidth,
		Height:         out.Result.ImageHeight,
		Engine:         out.Result.Engine,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrEmptyImage), errors.Is(err, entity.ErrUnsupportedImage):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrImageTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, entity.ErrEngineUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
