package handlers

import (
	"net/http"
	"runtime"
	"time"

	"stargrid/database"
	"stargrid/models"
	"stargrid/version"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports service and database health
func HealthCheck(c *gin.Context) {
	dbHealthy := database.SQLiteUp(c.Request.Context())

	health := gin.H{
		"status":     "healthy",
		"timestamp":  time.Now().Unix(),
		"db_healthy": dbHealthy,
		"version":    version.GetFullVersion(),
	}

	if !dbHealthy {
		health["status"] = "degraded"
		c.JSON(http.StatusServiceUnavailable, health)
		return
	}

	c.JSON(http.StatusOK, health)
}

// GetMetrics returns runtime and storage counters
func GetMetrics(c *gin.Context) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	var contentCount, sessionCount int64
	if database.DB != nil {
		database.DB.Model(&models.Content{}).Count(&contentCount)
		database.DB.Model(&models.Session{}).Count(&sessionCount)
	}

	c.JSON(http.StatusOK, gin.H{
		"timestamp": time.Now().Unix(),
		"sqlite": gin.H{
			"busy_errors_total":   database.SQLiteBusyErrorsTotal(),
			"locked_errors_total": database.SQLiteLockedErrorsTotal(),
		},
		"store": gin.H{
			"content_records": contentCount,
			"active_sessions": sessionCount,
		},
		"system": gin.H{
			"goroutines":   runtime.NumGoroutine(),
			"memory_alloc": mem.Alloc,
			"memory_sys":   mem.Sys,
			"num_gc":       mem.NumGC,
		},
	})
}
