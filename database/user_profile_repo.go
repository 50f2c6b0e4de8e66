package database

import (
	"errors"

	"github.com/google/uuid"
	"github.com/mjcet-acm/site-backend/models"
	"gorm.io/gorm"
)

type UserProfileRepo struct {
	db *gorm.DB
}

func NewUserProfileRepo(db *gorm.DB) *UserProfileRepo {
	return &UserProfileRepo{db}
}

// Create inserts a new user profile into the database
func (r *UserProfileRepo) Create(profile *models.UserProfile) error {
	return r.db.Create(profile).Error
}

// FindByUUID returns a profile by its external identity UUID, or nil when
// absent.
func (r *UserProfileRepo) FindByUUID(id uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := r.db.Where("uuid = ?", id).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindAll returns every profile ordered by creation time.
func (r *UserProfileRepo) FindAll() ([]models.UserProfile, error) {
	var profiles []models.UserProfile
	err := r.db.Order("created_at ASC").Find(&profiles).Error
	return profiles, err
}

// UpdateFields patches the allow-listed columns for one profile and
// reports how many rows matched; zero means the UUID is unknown.
func (r *UserProfileRepo) UpdateFields(id uuid.UUID, fields map[string]any) (int64, error) {
	result := r.db.Model(&models.UserProfile{}).
		Where("uuid = ?", id).
		Updates(fields)
	return result.RowsAffected, result.Error
}
