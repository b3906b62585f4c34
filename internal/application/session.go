package app

import (
	"context"

	"ocr-service/internal/domain/entity"
	"ocr-service/internal/domain/port"
)

type SessionService struct {
	repo        port.SessionRepository
	recognition *RecognitionService
}

func NewSessionService(repo port.SessionRepository, recognition *RecognitionService) *SessionService {
	return &SessionService{repo: repo, recognition: recognition}
}

func (s *SessionService) Get(ctx context.Context, id, chatID int64) (*entity.Session, error) {
	return s.repo.Get(ctx, id, chatID)
}

// SelectFile запоминает выбранный файл; прошлый результат сбрасывается.
func (s *SessionService) SelectFile(ctx context.Context, id, chatID int64, name string, image []byte) (*entity.Session, error) {
	session, err := s.repo.Get(ctx, id, chatID)
	if err != nil {
		return nil, err
	}

	if err := session.SelectFile(name, image); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// Process распознаёт выбранный файл. При ошибке сессия возвращается
// в file_selected, файл остаётся выбранным.
func (s *SessionService) Process(ctx context.Context, id, chatID int64) (*entity.Session, error) {
	session, err := s.repo.Get(ctx, id, chatID)
	if err != nil {
		return nil, err
	}

	if err := session.BeginProcessing(); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}

	out, procErr := s.recognition.Process(ctx, session.Image)
	if procErr != nil {
		_ = session.Fail()
		if err := s.repo.Save(ctx, session); err != nil {
			return nil, err
		}
		return session, procErr
	}

	if err := session.Complete(out.Result, out.Annotated); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// Result возвращает сессию с готовым результатом.
func (s *SessionService) Result(ctx context.Context, id, chatID int64) (*entity.Session, error) {
	session, err := s.repo.Get(ctx, id, chatID)
	if err != nil {
		return nil, err
	}
	if session.State != entity.StateResultReady || session.Result == nil {
		return nil, entity.ErrNoResult
	}
	return session, nil
}

func (s *SessionService) Reset(ctx context.Context, id, chatID int64) (*entity.Session, error) {
	session, err := s.repo.Get(ctx, id, chatID)
	if err != nil {
		return nil, err
	}

	session.Reset()
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}
