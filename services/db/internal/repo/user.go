package repo

import (
	"context"

	"github.com/merchstore/merch-store/services/db/internal/models"
)

func (r *GormRepo) CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error) {
	user := models.User{
		Username:     username,
		PasswordHash: passwordHash,
		Active:       true,
	}
	if err := r.DB.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser fully replaces username and active. The caller resolves any
// partial-field semantics before getting here.
func (r *GormRepo) UpdateUser(ctx context.Context, id uint, username string, active bool) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}

	user.Username = username
	user.Active = active
	if err := r.DB.WithContext(ctx).Model(&user).
		Select("username", "active").
		Updates(map[string]any{"username": username, "active": active}).Error; err != nil {
		return nil, err
	}

	return &user, nil
}
