package entity

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWordBoxCenter(t *testing.T) {
	w := WordBox{X: 10, Y: 20, Width: 8, Height: 6}
	x, y := w.Center()
	require.Equal(t, 14, x)
	require.Equal(t, 23, y)
}

func TestWordBoxRectAndArea(t *testing.T) {
	w := WordBox{X: 3, Y: 4, Width: 10, Height: 5}
	require.Equal(t, image.Rect(3, 4, 13, 9), w.Rect())
	require.Equal(t, 50, w.Area())
	require.False(t, w.Empty())
	require.True(t, WordBox{Width: 0, Height: 4}.Empty())
}

func TestRecognitionResult_Stats(t *testing.T) {
	r := &RecognitionResult{Words: []WordBox{
		{Text: "a", Width: 2, Height: 2, Confidence: 0.5},
		{Text: "b", Width: 0, Height: 2, Confidence: 1},
	}}
	require.Equal(t, 1, r.WordCount())
	require.InDelta(t, 0.75, r.AverageConfidence(), 1e-9)

	var empty *RecognitionResult
	require.Equal(t, 0, empty.WordCount())
	require.Zero(t, empty.AverageConfidence())
}
