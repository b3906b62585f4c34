package ocr

import "fmt"

// Error оборачивает ошибку движка с именем операции.
type Error struct {
	Op      string // операция, например "Recognize"
	Err     error  // исходная ошибка
	Details string // дополнительный контекст
}

func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("ocr: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("ocr: %s failed: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrap(op string, err error, details string) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err, Details: details}
}
