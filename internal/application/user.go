package app

import (
	"context"

	"frame-classifier/internal/domain/entity"
	"frame-classifier/internal/domain/port"
)

type UserService struct {
	repo port.UserRepository
}

func NewUserService(repo port.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.repo.Get(ctx, userID, chatID)
}

func (s *UserService) SetState(ctx context.Context, userID, chatID int64, state entity.UserState) (*entity.User, error) {
	user, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	user.SetState(state)
	if err := s.repo.UpdateState(ctx, userID, state); err != nil {
		return nil, err
	}

	return user, nil
}

// AcceptPhoto переводит пользователя в обработку, если он ждал фото.
// false означает, что фото пришло без /classify.
func (s *UserService) AcceptPhoto(ctx context.Context, userID, chatID int64) (bool, error) {
	user, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return false, err
	}
	if user.State != entity.StateAwaitingPhoto {
		return false, nil
	}

	if err := s.repo.UpdateState(ctx, userID, entity.StateProcessing); err != nil {
		return false, err
	}
	return true, nil
}

func (s *UserService) BeginClassify(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateAwaitingPhoto)
}

func (s *UserService) Cancel(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateMainMenu)
}

// SetSubscribed включает или выключает предупреждения для пользователя
func (s *UserService) SetSubscribed(ctx context.Context, userID, chatID int64, on bool) (*entity.User, error) {
	user, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	user.Subscribed = on
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) Subscribers(ctx context.Context) ([]*entity.User, error) {
	return s.repo.Subscribers(ctx)
}
