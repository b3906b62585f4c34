package entity

import "image"

// WordBox представляет распознанное слово и его рамку на изображении
type WordBox struct {
	Text       string  // распознанный текст слова
	X          int     // координата X левого верхнего угла
	Y          int     // координата Y левого верхнего угла
	Width      int     // ширина рамки в пикселях
	Height     int     // высота рамки в пикселях
	Confidence float64 // уверенность движка, 0..1
}

// Center возвращает координаты центра рамки
func (w WordBox) Center() (x, y int) {
	return w.X + w.Width/2, w.Y + w.Height/2
}

// Area возвращает площадь рамки в пикселях
func (w WordBox) Area() int {
	return w.Width * w.Height
}

// Rect возвращает рамку как image.Rectangle
func (w WordBox) Rect() image.Rectangle {
	return image.Rect(w.X, w.Y, w.X+w.Width, w.Y+w.Height)
}

// Empty сообщает, что у рамки нет площади
func (w WordBox) Empty() bool {
	return w.Width <= 0 || w.Height <= 0
}
