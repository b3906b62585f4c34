package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"ocr-service/internal/domain/entity"
)

func TestRecognitionService_Process(t *testing.T) {
	rec := &fakeRecognizer{result: &entity.RecognitionResult{
		ImageWidth: 100, ImageHeight: 50, Text: "  hello world \n",
		Words: []entity.WordBox{{Text: "hello", X: 1, Y: 1, Width: 10, Height: 5}},
	}}
	ann := &fakeAnnotator{}
	svc := NewRecognitionService(rec, ann, Limits{})

	out, err := svc.Process(context.Background(), testPNG(t, 100, 50))
	require.NoError(t, err)
	require.Equal(t, "hello world", out.Result.Text)
	require.True(t, out.Result.HasText)
	require.Equal(t, "fake", out.Result.Engine)
	require.Equal(t, []byte("png"), out.Annotated)
	require.Same(t, out.Result, ann.seen)
}

func TestRecognitionService_NoTextStillAnnotates(t *testing.T) {
	rec := &fakeRecognizer{result: &entity.RecognitionResult{ImageWidth: 10, ImageHeight: 10}}
	ann := &fakeAnnotator{}
	svc := NewRecognitionService(rec, ann, Limits{})

	out, err := svc.Process(context.Background(), testPNG(t, 10, 10))
	require.NoError(t, err)
	require.False(t, out.Result.HasText)
	require.NotEmpty(t, out.Annotated)
}

func TestRecognitionService_Validation(t *testing.T) {
	rec := &fakeRecognizer{result: &entity.RecognitionResult{}}
	svc := NewRecognitionService(rec, &fakeAnnotator{}, Limits{MaxBytes: 4})
	ctx := context.Background()

	_, err := svc.Process(ctx, nil)
	require.ErrorIs(t, err, entity.ErrEmptyImage)

	_, err = svc.Process(ctx, []byte("too big"))
	require.ErrorIs(t, err, entity.ErrImageTooLarge)
	require.Zero(t, rec.calls)

	_, err = NewRecognitionService(rec, &fakeAnnotator{}, Limits{}).Process(ctx, []byte("not an image"))
	require.ErrorIs(t, err, entity.ErrUnsupportedImage)
	require.Zero(t, rec.calls)

	_, err = NewRecognitionService(nil, &fakeAnnotator{}, Limits{}).Process(ctx, testPNG(t, 4, 4))
	require.ErrorIs(t, err, entity.ErrEngineUnavailable)
}

func TestRecognitionService_PixelLimit(t *testing.T) {
	rec := &fakeRecognizer{result: &entity.RecognitionResult{}}
	ann := &fakeAnnotator{}
	svc := NewRecognitionService(rec, ann, Limits{MaxBytes: 10 << 20, MaxPixels: DefaultMaxPixels})

	// несколько десятков байт, но 12000×12000 в заголовке
	huge := pngHeader(12000, 12000)
	require.Less(t, len(huge), 100)

	_, err := svc.Process(context.Background(), huge)
	require.ErrorIs(t, err, entity.ErrImageTooLarge)
	require.Zero(t, rec.calls)
	require.Nil(t, ann.seen)

	_, err = svc.Process(context.Background(), testPNG(t, 64, 64))
	require.NoError(t, err)
	require.Equal(t, 1, rec.calls)
}

func TestRecognitionService_RecognizerError(t *testing.T) {
	boom := errors.New("boom")
	svc := NewRecognitionService(&fakeRecognizer{err: boom}, &fakeAnnotator{}, Limits{})

	_, err := svc.Process(context.Background(), testPNG(t, 4, 4))
	require.ErrorIs(t, err, boom)
}
