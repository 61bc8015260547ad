package api

import (
	"net/http"

	"github.com/alenapavlenkko/lifetracker/internal/dashboard"
	"github.com/alenapavlenkko/lifetracker/internal/models"
	"github.com/gin-gonic/gin"
)

func (h *Handlers) GetWidgets(c *gin.Context) {
	widgets, err := h.dashboard.Widgets(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, widgets)
}

// ReplaceWidgets принимает полный список; пустой массив тоже сохраняется
func (h *Handlers) ReplaceWidgets(c *gin.Context) {
	var widgets []models.Widget
	if !bindJSON(c, &widgets) {
		return
	}
	saved, err := h.dashboard.ReplaceWidgets(c.Request.Context(), currentUser(c).ID, widgets)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *Handlers) WidgetAction(c *gin.Context) {
	var action dashboard.Action
	if !bindJSON(c, &action) {
		return
	}
	widgets, err := h.dashboard.ApplyAction(c.Request.Context(), currentUser(c).ID, action)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, widgets)
}
