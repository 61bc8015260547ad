package api

import (
	"errors"
	"net/http"

	"github.com/alenapavlenkko/lifetracker/internal/service"
	"github.com/alenapavlenkko/lifetracker/pkg/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// respondError переводит ошибку сервиса в HTTP-статус и {error: ...}
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, service.ErrValidation):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials):
		status, message = http.StatusUnauthorized, err.Error()
	case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrConflict):
		status, message = http.StatusConflict, err.Error()
	}

	if status == http.StatusInternalServerError {
		utils.Log.Error("Request failed", "method", c.Request.Method, "path", c.FullPath(), "err", err)
	} else {
		utils.Log.Warn("Request rejected", "method", c.Request.Method, "path", c.FullPath(), "status", status, "err", err)
	}
	c.JSON(status, gin.H{"error": message})
}

// bindJSON разбирает тело запроса; при ошибке сам отвечает 400
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.Log.Warn("Invalid request body", "path", c.FullPath(), "err", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// queryID достаёт обязательный ?id=
func queryID(c *gin.Context) (string, bool) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return "", false
	}
	return id, true
}

func deleted(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}
