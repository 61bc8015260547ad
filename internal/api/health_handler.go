package api

import (
	"net/http"

	"github.com/alenapavlenkko/lifetracker/internal/service"
	"github.com/gin-gonic/gin"
)

// ==================== ПРОФИЛЬ ====================

// GetProfile отдаёт null, если профиль ещё не заполнен
func (h *Handlers) GetProfile(c *gin.Context) {
	profile, err := h.health.Profile(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handlers) Targets(c *gin.Context) {
	targets, err := h.health.Targets(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, targets)
}

// ==================== ПИТАНИЕ ====================

// GetNutrition: ?date= - один день, без параметра - вся история
func (h *Handlers) GetNutrition(c *gin.Context) {
	ctx := c.Request.Context()
	userID := currentUser(c).ID

	date := c.Query("date")
	if date == "" {
		days, err := h.health.ListNutrition(ctx, userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, days)
		return
	}

	day, err := h.health.Day(ctx, userID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}

func (h *Handlers) RemoveMeal(c *gin.Context) {
	date, mealID := c.Query("date"), c.Query("mealId")
	if date == "" || mealID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date and mealId are required"})
		return
	}
	day, err := h.health.RemoveMeal(c.Request.Context(), currentUser(c).ID, date, mealID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}

// ==================== ТРЕНИРОВКИ ====================

func (h *Handlers) ApplyProgram(c *gin.Context) {
	var dto service.ApplyProgramDTO
	if !bindJSON(c, &dto) {
		return
	}
	result, err := h.workouts.ApplyProgram(c.Request.Context(), currentUser(c).ID, dto)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}
