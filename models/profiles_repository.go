package models

import (
	"errors"

	"gorm.io/gorm"
)

type ProfilesRepository struct {
	db *gorm.DB
}

func NewProfilesRepository(db *gorm.DB) *ProfilesRepository {
	return &ProfilesRepository{
		db: db,
	}
}

// RoleOf returns the role recorded in the user_profiles side table.
// A user without a profile row counts as a plain user.
func (r *ProfilesRepository) RoleOf(userID string) (string, error) {
	var profile UserProfile
	if err := r.db.Where("id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RoleUser, nil
		}
		return "", err
	}
	return profile.Role, nil
}

func (r *ProfilesRepository) IsAdmin(userID string) (bool, error) {
	role, err := r.RoleOf(userID)
	if err != nil {
		return false, err
	}
	return role == RoleAdmin, nil
}

// Stats are the dashboard counters. Orders and revenue stay at zero
// until an orders table exists.
type Stats struct {
	Products int64 `json:"products"`
	Clients  int64 `json:"clients"`
	Orders   int64 `json:"orders"`
	Revenue  int64 `json:"revenue"`
}

func (r *ProfilesRepository) Stats() (Stats, error) {
	var s Stats
	if err := r.db.Model(&Product{}).Count(&s.Products).Error; err != nil {
		return Stats{}, err
	}
	if err := r.db.Model(&UserProfile{}).Count(&s.Clients).Error; err != nil {
		return Stats{}, err
	}
	return s, nil
}
