package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/alenapavlenkko/lifetracker/internal/auth"
	"github.com/alenapavlenkko/lifetracker/internal/models"
	"github.com/alenapavlenkko/lifetracker/internal/service"
	"github.com/alenapavlenkko/lifetracker/pkg/utils"
	"github.com/gin-gonic/gin"
)

const (
	sessionCookie = "session"
	userKey       = "user"
)

// sessionToken берёт токен из cookie, а для не-браузерных клиентов - из Authorization
func sessionToken(c *gin.Context) string {
	if token, err := c.Cookie(sessionCookie); err == nil && token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// AuthMiddleware проверяет сессию и на каждый запрос заново находит пользователя по email
func AuthMiddleware(sessions *auth.Sessions, accounts *service.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		email, err := sessions.Parse(token)
		if err != nil {
			utils.Log.Warn("Rejected session", "path", c.FullPath(), "err", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		user, err := accounts.UserByEmail(c.Request.Context(), email)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			respondError(c, err)
			c.Abort()
			return
		}

		c.Set(userKey, user)
		c.Next() // Продолжаем выполнение запроса
	}
}

// currentUser - пользователь, положенный в контекст AuthMiddleware
func currentUser(c *gin.Context) *models.User {
	return c.MustGet(userKey).(*models.User)
}
