package httpapi

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"hash/crc32"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	app "ocr-service/internal/application"
	"ocr-service/internal/domain/entity"
	"ocr-service/internal/infrastructure/vision"
)

type stubRecognizer struct {
	err error
}

func (s *stubRecognizer) Name() string { return "stub" }

func (s *stubRecognizer) Recognize(ctx context.Context, imageData []byte) (*entity.RecognitionResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &entity.RecognitionResult{
		ImageWidth:  40,
		ImageHeight: 20,
		Text:        "hello",
		Words:       []entity.WordBox{{Text: "hello", X: 2, Y: 2, Width: 20, Height: 10, Confidence: 0.9}},
	}, nil
}

func newTestServer(rec *stubRecognizer, maxBytes int64) *Server {
	limits := app.Limits{MaxBytes: maxBytes, MaxPixels: app.DefaultMaxPixels}
	svc := app.NewRecognitionService(rec, vision.NewAnnotator(vision.DefaultBoxStyle()), limits)
	page := fstest.MapFS{"index.html": {Data: []byte("<html>ocr</html>")}}
	return NewServer(svc, Options{CORSOrigin: "*", Page: page})
}

func testImage(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// hugePNG возвращает PNG, в заголовке которого заявлены размеры w×h, без пиксельных данных.
func hugePNG(w, h uint32) []byte {
	var ihdr [13]byte
	binary.BigEndian.PutUint32(ihdr[0:4], w)
	binary.BigEndian.PutUint32(ihdr[4:8], h)
	ihdr[8] = 8 // bit depth, ihdr[9] = 0: grayscale

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	buf.WriteString("IHDR")
	buf.Write(ihdr[:])
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(append([]byte("IHDR"), ihdr[:]...)))
	return buf.Bytes()
}

func multipartRequest(t *testing.T, target, field string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, "photo.png")
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHandleOCR_JSON(t *testing.T) {
	srv := newTestServer(&stubRecognizer{}, 0)
	rr := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rr, multipartRequest(t, "/ocr-service", "image", testImage(t)))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	require.NotEmpty(t, rr.Header().Get(headerRequestID))

	var resp OCRResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "hello", resp.ExtractedText)
	require.Equal(t, "stub", resp.Engine)
	require.Equal(t, 40, resp.Width)
	require.Len(t, resp.Words, 1)

	raw, err := base64.StdEncoding.DecodeString(resp.ProcessedImage)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, color.RGBA{G: 255, A: 255}, color.RGBAModel.Convert(img.At(2, 2)))
}

func TestHandleOCR_DownloadPNG(t *testing.T) {
	srv := newTestServer(&stubRecognizer{}, 0)
	rr := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rr, multipartRequest(t, "/ocr-service?format=png", "image", testImage(t)))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	require.Contains(t, rr.Header().Get("Content-Disposition"), "processed_image.png")
	_, err := png.Decode(bytes.NewReader(rr.Body.Bytes()))
	require.NoError(t, err)
}

func TestHandleOCR_Errors(t *testing.T) {
	// больше, чем limit + multipartOverhead
	oversized := bytes.Repeat([]byte{0}, 2<<20)

	tests := []struct {
		name   string
		srv    *Server
		req    func(t *testing.T) *http.Request
		status int
	}{
		{
			name:   "missing field",
			srv:    newTestServer(&stubRecognizer{}, 0),
			req:    func(t *testing.T) *http.Request { return multipartRequest(t, "/ocr-service", "file", testImage(t)) },
			status: http.StatusBadRequest,
		},
		{
			name:   "not multipart",
			srv:    newTestServer(&stubRecognizer{}, 0),
			req:    func(t *testing.T) *http.Request { return httptest.NewRequest(http.MethodPost, "/ocr-service", nil) },
			status: http.StatusBadRequest,
		},
		{
			name:   "bad image",
			srv:    newTestServer(&stubRecognizer{}, 0),
			req:    func(t *testing.T) *http.Request { return multipartRequest(t, "/ocr-service", "image", []byte("nope")) },
			status: http.StatusBadRequest,
		},
		{
			name:   "too large",
			srv:    newTestServer(&stubRecognizer{}, 16),
			req:    func(t *testing.T) *http.Request { return multipartRequest(t, "/ocr-service", "image", testImage(t)) },
			status: http.StatusRequestEntityTooLarge,
		},
		{
			name:   "body over multipart allowance",
			srv:    newTestServer(&stubRecognizer{}, 16),
			req:    func(t *testing.T) *http.Request { return multipartRequest(t, "/ocr-service", "image", oversized) },
			status: http.StatusRequestEntityTooLarge,
		},
		{
			name:   "pixel budget exceeded",
			srv:    newTestServer(&stubRecognizer{}, 0),
			req:    func(t *testing.T) *http.Request { return multipartRequest(t, "/ocr-service", "image", hugePNG(12000, 12000)) },
			status: http.StatusRequestEntityTooLarge,
		},
		{
			name:   "engine unavailable",
			srv:    newTestServer(&stubRecognizer{err: entity.ErrEngineUnavailable}, 0),
			req:    func(t *testing.T) *http.Request { return multipartRequest(t, "/ocr-service", "image", testImage(t)) },
			status: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			tt.srv.Handler().ServeHTTP(rr, tt.req(t))
			require.Equal(t, tt.status, rr.Code)

			var resp errorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			require.NotEmpty(t, resp.Error)
		})
	}
}

func TestPreflight(t *testing.T) {
	srv := newTestServer(&stubRecognizer{}, 0)
	rr := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodOptions, "/ocr-service", nil))

	require.Equal(t, http.StatusNoContent, rr.Code)
	require.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestIndexAndHealth(t *testing.T) {
	srv := newTestServer(&stubRecognizer{}, 0)

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "ocr")

	rr = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"status":"ok","engine":"stub"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.Equal(t, http.StatusNotFound, rr.Code)
}
