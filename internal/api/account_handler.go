package api

import (
	"net/http"

	"github.com/alenapavlenkko/lifetracker/internal/models"
	"github.com/alenapavlenkko/lifetracker/internal/service"
	"github.com/gin-gonic/gin"
)

type sessionResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token,omitempty"`
}

func (h *Handlers) setSession(c *gin.Context, user *models.User) (string, bool) {
	token, err := h.sessions.Issue(user.Email)
	if err != nil {
		respondError(c, err)
		return "", false
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, token, int(h.sessions.TTL().Seconds()), "/", "", h.secure, true)
	return token, true
}

func (h *Handlers) Register(c *gin.Context) {
	var dto service.RegisterDTO
	if !bindJSON(c, &dto) {
		return
	}
	user, err := h.accounts.Register(c.Request.Context(), dto)
	if err != nil {
		respondError(c, err)
		return
	}
	token, ok := h.setSession(c, user)
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, sessionResponse{User: user, Token: token})
}

func (h *Handlers) Login(c *gin.Context) {
	var dto service.LoginDTO
	if !bindJSON(c, &dto) {
		return
	}
	user, err := h.accounts.Authenticate(c.Request.Context(), dto)
	if err != nil {
		respondError(c, err)
		return
	}
	token, ok := h.setSession(c, user)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sessionResponse{User: user, Token: token})
}

func (h *Handlers) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, "", -1, "/", "", h.secure, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handlers) Session(c *gin.Context) {
	c.JSON(http.StatusOK, sessionResponse{User: currentUser(c)})
}

// ==================== НАСТРОЙКИ ====================

func (h *Handlers) GetSettings(c *gin.Context) {
	settings, err := h.accounts.Settings(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *Handlers) UpdateSettings(c *gin.Context) {
	var dto service.SettingsDTO
	if !bindJSON(c, &dto) {
		return
	}
	settings, err := h.accounts.UpdateSettings(c.Request.Context(), currentUser(c).ID, dto)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// Reset стирает все данные пользователя
func (h *Handlers) Reset(c *gin.Context) {
	user := currentUser(c)
	if err := h.accounts.Reset(c.Request.Context(), user.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "All data has been reset"})
}
