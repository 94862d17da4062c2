package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"stargrid/models"
	"stargrid/service"

	"github.com/gin-gonic/gin"
)

// parseDay extracts and range-checks the :day route parameter.
func parseDay(c *gin.Context) (int, bool) {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil || !models.DayInRange(day) {
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": fmt.Sprintf("Invalid day parameter. Must be between %d and %d.", models.MinDay, models.MaxDay),
		})
		return 0, false
	}
	return day, true
}

// respondError maps service errors onto HTTP responses. Validation failures
// carry the field issue list; storage failures stay opaque.
func respondError(c *gin.Context, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"detail": verr.Error(), "errors": verr.Issues})
	case errors.Is(err, service.ErrInvalidDay):
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
	case errors.Is(err, service.ErrContentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": err.Error()})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Unauthorized"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
	}
}

// GetSettings returns the settings row, creating defaults on first access
func GetSettings(c *gin.Context) {
	settings, err := service.GlobalServices.Settings.Get()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings merges a partial settings payload into the singleton row
func UpdateSettings(c *gin.Context) {
	var req models.SettingsUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	settings, err := service.GlobalServices.Settings.Update(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// GetContent returns the content record for a day
func GetContent(c *gin.Context) {
	day, ok := parseDay(c)
	if !ok {
		return
	}

	record, err := service.GlobalServices.Content.GetByDay(day)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// ListContent returns all content records in ascending day order
func ListContent(c *gin.Context) {
	records, err := service.GlobalServices.Content.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// UpsertContent creates or replaces the content record for a day
func UpsertContent(c *gin.Context) {
	day, ok := parseDay(c)
	if !ok {
		return
	}

	var req models.ContentUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	record, err := service.GlobalServices.Content.UpsertByDay(day, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// DeleteContent removes the content record for a day; absent days are a no-op
func DeleteContent(c *gin.Context) {
	day, ok := parseDay(c)
	if !ok {
		return
	}

	if err := service.GlobalServices.Content.DeleteByDay(day); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// CreateUser registers a named operator account
func CreateUser(c *gin.Context) {
	var req models.UserCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	user, err := service.GlobalServices.User.Create(req)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			c.JSON(http.StatusConflict, gin.H{"detail": err.Error()})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": user.ID, "username": user.Username})
}
