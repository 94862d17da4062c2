package service

import (
	"errors"
	"fmt"

	"stargrid/models"

	"gorm.io/gorm"
)

var (
	// ErrContentNotFound means no content record exists for the requested day.
	ErrContentNotFound = errors.New("content not found")
	// ErrInvalidDay means the day is outside the calendar range.
	ErrInvalidDay = fmt.Errorf("day must be between %d and %d", models.MinDay, models.MaxDay)
)

// ContentService handles per-day calendar content. Records are addressed by
// day, never by surrogate id: upserts create or replace the single record a
// day may have.
type ContentService struct {
	db *gorm.DB
}

// NewContentService constructs a content service
func NewContentService(db *gorm.DB) *ContentService {
	return &ContentService{db: db}
}

// GetByDay fetches the content record for a day
func (s *ContentService) GetByDay(day int) (*models.ContentRead, error) {
	if !models.DayInRange(day) {
		return nil, ErrInvalidDay
	}

	var record models.Content
	if err := s.db.First(&record, "day = ?", day).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, fmt.Errorf("failed to get content for day %d: %w", day, err)
	}

	read := models.NewContentRead(&record)
	return &read, nil
}

// GetAll lists all content records in ascending day order
func (s *ContentService) GetAll() ([]models.ContentRead, error) {
	var records []models.Content
	if err := s.db.Order("day asc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list content: %w", err)
	}

	reads := make([]models.ContentRead, 0, len(records))
	for i := range records {
		reads = append(reads, models.NewContentRead(&records[i]))
	}
	return reads, nil
}

// UpsertByDay validates the payload against the declared content type and
// creates or replaces the day's record. On create an empty title defaults to
// "Day {day}"; on update title, type and payload are replaced and the
// surrogate id is preserved.
func (s *ContentService) UpsertByDay(day int, req models.ContentUpdate) (*models.ContentRead, error) {
	if !models.DayInRange(day) {
		return nil, ErrInvalidDay
	}

	req.Normalize()

	data, err := models.ValidateContentData(req.Type, req.Content)
	if err != nil {
		return nil, err
	}

	var record models.Content
	err = s.db.First(&record, "day = ?", day).Error
	switch {
	case err == nil:
		record.Title = req.Title
		record.Type = req.Type
		record.SetData(data)
		if record.Title == "" {
			record.Title = models.DefaultTitle(day)
		}
		if err := s.db.Save(&record).Error; err != nil {
			return nil, fmt.Errorf("failed to update content for day %d: %w", day, err)
		}

	case errors.Is(err, gorm.ErrRecordNotFound):
		record = models.Content{
			Day:   day,
			Title: req.Title,
			Type:  req.Type,
		}
		record.SetData(data)
		if record.Title == "" {
			record.Title = models.DefaultTitle(day)
		}
		if err := s.db.Create(&record).Error; err != nil {
			return nil, fmt.Errorf("failed to create content for day %d: %w", day, err)
		}

	default:
		return nil, fmt.Errorf("failed to look up content for day %d: %w", day, err)
	}

	read := models.NewContentRead(&record)
	return &read, nil
}

// DeleteByDay removes the content record for a day. Deleting a day with no
// record is a no-op.
func (s *ContentService) DeleteByDay(day int) error {
	if !models.DayInRange(day) {
		return ErrInvalidDay
	}

	if err := s.db.Where("day = ?", day).Delete(&models.Content{}).Error; err != nil {
		return fmt.Errorf("failed to delete content for day %d: %w", day, err)
	}
	return nil
}
