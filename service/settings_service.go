package service

import (
	"errors"
	"fmt"
	"regexp"

	"stargrid/models"

	"gorm.io/gorm"
)

var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// SettingsService manages the singleton row of visual configuration. The row
// is created lazily with defaults on first read.
type SettingsService struct {
	db *gorm.DB
}

// NewSettingsService constructs a settings service
func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// Get returns the settings row, creating it with defaults when absent.
func (s *SettingsService) Get() (*models.Settings, error) {
	var settings models.Settings
	err := s.db.First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	settings = models.DefaultSettings()
	if err := s.db.Create(&settings).Error; err != nil {
		return nil, fmt.Errorf("failed to initialize settings: %w", err)
	}
	return &settings, nil
}

// Update merges the provided fields into the settings row after validating
// bounds, and refreshes updated_at. Fields left nil in the payload are
// untouched.
func (s *SettingsService) Update(req models.SettingsUpdate) (*models.Settings, error) {
	req.Normalize()
	if err := validateSettingsUpdate(&req); err != nil {
		return nil, err
	}

	settings, err := s.Get()
	if err != nil {
		return nil, err
	}

	if req.AppTitle != nil {
		settings.AppTitle = *req.AppTitle
	}
	if req.AppDescription != nil {
		settings.AppDescription = *req.AppDescription
	}
	if req.TitleColor != nil {
		settings.TitleColor = *req.TitleColor
	}
	if req.StarColor != nil {
		settings.StarColor = *req.StarColor
	}
	if req.StarBorderColor != nil {
		settings.StarBorderColor = *req.StarBorderColor
	}
	if req.BackgroundImage != nil {
		settings.BackgroundImage = *req.BackgroundImage
	}
	if req.TotalDays != nil {
		settings.TotalDays = *req.TotalDays
	}

	if err := s.db.Save(settings).Error; err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}
	return settings, nil
}

// validateSettingsUpdate checks every provided field and reports all
// violations at once.
func validateSettingsUpdate(req *models.SettingsUpdate) error {
	verr := &models.ValidationError{}

	checkColor := func(field string, value *string) {
		if value != nil && !hexColorRe.MatchString(*value) {
			verr.Add(field, "must be a 6-hex-digit color like #1E3A8A")
		}
	}
	checkColor("titleColor", req.TitleColor)
	checkColor("starColor", req.StarColor)
	checkColor("starBorderColor", req.StarBorderColor)

	if req.AppTitle != nil {
		if n := len(*req.AppTitle); n < 1 || n > 100 {
			verr.Add("appTitle", "length must be between 1 and 100")
		}
	}
	if req.BackgroundImage != nil && !models.ValidateSettingsURL(*req.BackgroundImage) {
		verr.Add("backgroundImage", "must be a well-formed absolute URL")
	}
	if req.TotalDays != nil {
		if *req.TotalDays < models.MinDay || *req.TotalDays > models.MaxDay {
			verr.Add("totalDays", "must be between %d and %d", models.MinDay, models.MaxDay)
		}
	}

	return verr.Err()
}
