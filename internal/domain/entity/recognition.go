package entity

// RecognitionResult хранит итог распознавания изображения.
type RecognitionResult struct {
	ImageWidth  int       // ширина изображения
	ImageHeight int       // высота изображения
	Text        string    // извлечённый текст целиком
	Words       []WordBox // рамки найденных слов
	Engine      string    // имя OCR-движка
	HasText     bool      // флаг наличия текста
}

// WordCount возвращает количество слов с непустыми рамками.
func (r *RecognitionResult) WordCount() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, w := range r.Words {
		if !w.Empty() {
			n++
		}
	}
	return n
}

// AverageConfidence возвращает среднюю уверенность по словам.
func (r *RecognitionResult) AverageConfidence() float64 {
	if r == nil || len(r.Words) == 0 {
		return 0
	}
	var sum float64
	for _, w := range r.Words {
		sum += w.Confidence
	}
	return sum / float64(len(r.Words))
}
