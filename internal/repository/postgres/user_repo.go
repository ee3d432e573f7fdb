package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Chewycide/wireless-fingerprint-attendance-system/internal/domain"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Enroll(ctx context.Context, req domain.EnrollmentRequest) (uint, error) {
	user := domain.User{
		FullName:      req.FullName(),
		FingerprintID: req.FingerprintID,
		ClientID:      req.ClientID,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		info := domain.UserInfo{
			UserID:      user.ID,
			FirstName:   req.FirstName,
			MiddleName:  req.MiddleName,
			LastName:    req.LastName,
			Age:         req.Age,
			Gender:      req.Gender,
			PhoneNumber: req.PhoneNumber,
			Address:     req.Address,
		}
		return tx.Create(&info).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, domain.ErrDuplicateKey
		}
		return 0, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	return user.ID, nil
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&domain.User{}, id).Error; err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}

func (r *userRepository) Exists(ctx context.Context, fingerprintID int, clientID string) (bool, error) {
	_, err := r.ResolveID(ctx, fingerprintID, clientID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *userRepository) ResolveID(ctx context.Context, fingerprintID int, clientID string) (uint, error) {
	var user domain.User
	err := r.db.WithContext(ctx).
		Select("user_id").
		Where("fingerprint_id = ? AND client_id = ?", fingerprintID, clientID).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, domain.ErrUserNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return user.ID, nil
}

func (r *userRepository) All(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).
		Preload("Info").
		Order("user_id ASC").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return users, nil
}
