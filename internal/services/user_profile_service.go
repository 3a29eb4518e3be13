package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "investwise/internal/errors"
	"investwise/internal/models"
)

// ProfileInput is the identity captured when a user first signs in.
type ProfileInput struct {
	UserID    string
	Email     string
	FirstName string
	LastName  string
	Phone     string
	Address   string
}

// userProfileService handles user profiles and their empty portfolios.
type userProfileService struct {
	db    *gorm.DB
	audit AuditServicer
}

// NewUserProfileService creates a new UserProfileServicer.
func NewUserProfileService(db *gorm.DB, audit AuditServicer) UserProfileServicer {
	return &userProfileService{db: db, audit: audit}
}

// CreateProfile creates the profile and an empty portfolio. The bool reports
// whether anything was created; an existing profile is returned unchanged.
func (s *userProfileService) CreateProfile(ctx context.Context, in ProfileInput) (*models.UserProfile, bool, error) {
	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		return nil, false, apperrors.WithMessage(apperrors.ErrInvalidInput, "userId is required")
	}

	var profile models.UserProfile
	created := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ?", userID).First(&profile).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		profile = models.UserProfile{
			UserID:    userID,
			Email:     strings.ToLower(strings.TrimSpace(in.Email)),
			FirstName: strings.TrimSpace(in.FirstName),
			LastName:  strings.TrimSpace(in.LastName),
			Phone:     strings.TrimSpace(in.Phone),
			Address:   strings.TrimSpace(in.Address),
		}
		if err := tx.Create(&profile).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if _, err := ensurePortfolio(tx, userID); err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	if created {
		s.audit.Log(ctx, userID, "CREATE_PROFILE", "user_profile", profile.ID, nil)
	}
	return &profile, created, nil
}

// GetProfile returns the profile for userID.
func (s *userProfileService) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserProfileNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &profile, nil
}
