package entity

import "fmt"

// SessionState состояние сессии распознавания
type SessionState string

const (
	StateIdle         SessionState = "idle"          // Файл не выбран
	StateFileSelected SessionState = "file_selected" // Файл выбран, ждём запуска
	StateProcessing   SessionState = "processing"    // Идёт распознавание
	StateResultReady  SessionState = "result_ready"  // Результат готов к скачиванию
)

// Session представляет сессию пользователя: выбранный файл и результат
type Session struct {
	ID        int64              // Telegram User ID или иной идентификатор
	ChatID    int64              // Telegram Chat ID
	State     SessionState       // Текущее состояние
	FileName  string             // Имя выбранного файла
	Image     []byte             // Исходное изображение
	Result    *RecognitionResult // Результат распознавания
	Annotated []byte             // PNG с рамками
}

// NewSession создаёт новую сессию с начальным состоянием
func NewSession(id, chatID int64) *Session {
	return &Session{
		ID:     id,
		ChatID: chatID,
		State:  StateIdle,
	}
}

// SelectFile запоминает новый файл и сбрасывает прошлый результат
func (s *Session) SelectFile(name string, image []byte) error {
	if s.State == StateProcessing {
		return s.invalid(StateFileSelected)
	}
	if len(image) == 0 {
		return ErrEmptyImage
	}
	s.FileName = name
	s.Image = image
	s.Result = nil
	s.Annotated = nil
	s.State = StateFileSelected
	return nil
}

// BeginProcessing переводит сессию в обработку
func (s *Session) BeginProcessing() error {
	if s.State != StateFileSelected {
		return s.invalid(StateProcessing)
	}
	s.State = StateProcessing
	return nil
}

// Complete сохраняет результат и переводит сессию в result_ready
func (s *Session) Complete(result *RecognitionResult, annotated []byte) error {
	if s.State != StateProcessing {
		return s.invalid(StateResultReady)
	}
	s.Result = result
	s.Annotated = annotated
	s.State = StateResultReady
	return nil
}

// Fail возвращает сессию к выбранному файлу, чтобы можно было повторить
func (s *Session) Fail() error {
	if s.State != StateProcessing {
		return s.invalid(StateFileSelected)
	}
	s.State = StateFileSelected
	return nil
}

// Reset возвращает сессию в начальное состояние
func (s *Session) Reset() {
	s.State = StateIdle
	s.FileName = ""
	s.Image = nil
	s.Result = nil
	s.Annotated = nil
}

func (s *Session) invalid(to SessionState) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.State, to)
}
