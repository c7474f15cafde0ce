package handlers

import (
	"net/http"

	"invoicepay/utils"

	"github.com/gin-gonic/gin"
)

// HealthSource supplies the latest dependency snapshot.
type HealthSource interface {
	Status() utils.HealthStatus
}

// HealthHandler reports 200 while every dependency answered its last probe.
func HealthHandler(src HealthSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := src.Status()
		code := http.StatusOK
		if !status.Healthy() {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status})
	}
}
