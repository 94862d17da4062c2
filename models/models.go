package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Day bounds for the calendar grid. A content record exists for at most one
// of these slots; day is the natural key, the surrogate id never leaves the
// storage layer.
const (
	MinDay = 1
	MaxDay = 30
)

// DayInRange reports whether day identifies a valid calendar slot.
func DayInRange(day int) bool {
	return day >= MinDay && day <= MaxDay
}

// Content is one day's calendar entry. The payload is stored as JSON text
// keyed by Type; Day carries a unique index so upserts address rows by day.
type Content struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Day       int       `gorm:"uniqueIndex;not null" json:"day"`
	Title     string    `gorm:"not null" json:"title"`
	Type      string    `gorm:"not null" json:"type"`
	DataJSON  string    `gorm:"column:content_json;type:text;not null" json:"-"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GetData returns the stored payload as raw JSON.
func (c *Content) GetData() json.RawMessage {
	if c.DataJSON == "" {
		return json.RawMessage("{}")
	}
	return json.RawMessage(c.DataJSON)
}

// SetData stores the payload JSON.
func (c *Content) SetData(data json.RawMessage) {
	c.DataJSON = string(data)
}

// ContentUpdate request payload for upserting a day's content
type ContentUpdate struct {
	Title   string          `json:"title"`
	Type    string          `json:"type"`
	Content json.RawMessage `json:"content"`
}

// Normalize trims whitespace from input fields
func (u *ContentUpdate) Normalize() {
	u.Title = strings.TrimSpace(u.Title)
	u.Type = strings.TrimSpace(u.Type)
}

// ContentRead response model for a day's content
type ContentRead struct {
	ID        uint            `json:"id"`
	Day       int             `json:"day"`
	Title     string          `json:"title"`
	Type      string          `json:"type"`
	Content   json.RawMessage `json:"content"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// NewContentRead builds the response model from a stored record
func NewContentRead(c *Content) ContentRead {
	return ContentRead{
		ID:        c.ID,
		Day:       c.Day,
		Title:     c.Title,
		Type:      c.Type,
		Content:   c.GetData(),
		UpdatedAt: c.UpdatedAt,
	}
}

// DefaultTitle is the title applied when an upsert creates a day without one.
func DefaultTitle(day int) string {
	return fmt.Sprintf("Day %d", day)
}

// Settings is the singleton row of visual/display configuration.
type Settings struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	AppTitle        string    `gorm:"not null" json:"appTitle"`
	AppDescription  string    `gorm:"not null" json:"appDescription"`
	TitleColor      string    `gorm:"not null" json:"titleColor"`
	StarColor       string    `gorm:"not null" json:"starColor"`
	StarBorderColor string    `gorm:"not null" json:"starBorderColor"`
	BackgroundImage string    `gorm:"not null" json:"backgroundImage"`
	TotalDays       int       `gorm:"not null" json:"totalDays"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// DefaultSettings returns the row created on first access.
func DefaultSettings() Settings {
	return Settings{
		AppTitle:        "Calendrier de Riḍván",
		AppDescription:  "The Festival of Paradise",
		TitleColor:      "#1E3A8A",
		StarColor:       "#FCD34D",
		StarBorderColor: "#F59E0B",
		BackgroundImage: "https://images.unsplash.com/photo-1462331940025-496dfbfc7564?ixlib=rb-1.2.1&auto=format&fit=crop&w=2048&q=80",
		TotalDays:       19,
	}
}

// SettingsUpdate is a partial settings payload: nil fields are left untouched.
type SettingsUpdate struct {
	AppTitle        *string `json:"appTitle"`
	AppDescription  *string `json:"appDescription"`
	TitleColor      *string `json:"titleColor"`
	StarColor       *string `json:"starColor"`
	StarBorderColor *string `json:"starBorderColor"`
	BackgroundImage *string `json:"backgroundImage"`
	TotalDays       *int    `json:"totalDays"`
}

// Normalize trims whitespace from provided string fields
func (u *SettingsUpdate) Normalize() {
	trim := func(s *string) {
		if s != nil {
			*s = strings.TrimSpace(*s)
		}
	}
	trim(u.AppTitle)
	trim(u.AppDescription)
	trim(u.TitleColor)
	trim(u.StarColor)
	trim(u.StarBorderColor)
	trim(u.BackgroundImage)
}

// Session is an admin bearer token with expiry. A session is valid iff it is
// found by token and ExpiresAt is in the future; expired rows are purged on
// detection.
type Session struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"uniqueIndex;not null" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// Expired reports whether the session is past its expiry at the given instant.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// User is an optional named operator account. The shared admin password works
// without any user rows; accounts exist for operators who want their own
// credentials.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"not null" json:"-"`
}

// UserCreate request payload for creating an operator account
type UserCreate struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Normalize trims whitespace from the username
func (u *UserCreate) Normalize() {
	u.Username = strings.TrimSpace(u.Username)
}
