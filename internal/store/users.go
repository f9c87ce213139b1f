package store

import (
	"context"

	"github.com/freelanceflow/backend/internal/models"
)

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	return s.conn(ctx).Create(u).Error
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.conn(ctx).First(&u, "email = ?", email).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *Store) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := s.conn(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *Store) Users(ctx context.Context) ([]models.User, error) {
	var out []models.User
	err := s.conn(ctx).Order("id").Find(&out).Error
	return out, err
}

func (s *Store) UpdateUserStatus(ctx context.Context, id uint, status models.UserStatus) (int64, error) {
	res := s.conn(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("status", status)
	return res.RowsAffected, res.Error
}

func (s *Store) DeleteUser(ctx context.Context, id uint) error {
	res := s.conn(ctx).Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
