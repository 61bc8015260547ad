package api

import (
	"net/http"

	"github.com/alenapavlenkko/lifetracker/internal/service"
	"github.com/gin-gonic/gin"
)

// routineHandlers - одинаковый набор обработчиков для утренней и вечерней рутины
type routineHandlers struct {
	kind     string
	routines *service.RoutineService
}

func (h *Handlers) registerRoutines(g *gin.RouterGroup, kind string) {
	rh := &routineHandlers{kind: kind, routines: h.routines}
	g.GET("", rh.list)
	g.POST("", rh.create)
	g.PUT("", rh.update)
	g.DELETE("", rh.delete)
	g.GET("/logs", rh.logs)
	g.POST("/logs", rh.log)
	g.GET("/streaks", rh.streaks)
}

func (rh *routineHandlers) list(c *gin.Context) {
	actions, err := rh.routines.ListActions(c.Request.Context(), currentUser(c).ID, rh.kind)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, actions)
}

func (rh *routineHandlers) create(c *gin.Context) {
	var dto service.RoutineActionDTO
	if !bindJSON(c, &dto) {
		return
	}
	action, err := rh.routines.CreateAction(c.Request.Context(), currentUser(c).ID, rh.kind, dto)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, action)
}

func (rh *routineHandlers) update(c *gin.Context) {
	var dto service.RoutineActionDTO
	if !bindJSON(c, &dto) {
		return
	}
	action, err := rh.routines.UpdateAction(c.Request.Context(), currentUser(c).ID, rh.kind, dto)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, action)
}

func (rh *routineHandlers) delete(c *gin.Context) {
	id, ok := queryID(c)
	if !ok {
		return
	}
	if err := rh.routines.DeleteAction(c.Request.Context(), currentUser(c).ID, rh.kind, id); err != nil {
		respondError(c, err)
		return
	}
	deleted(c)
}

// logs отдаёт историю отметок по ?actionId=
func (rh *routineHandlers) logs(c *gin.Context) {
	actionID := c.Query("actionId")
	if actionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "actionId is required"})
		return
	}
	logs, err := rh.routines.Logs(c.Request.Context(), currentUser(c).ID, rh.kind, actionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (rh *routineHandlers) log(c *gin.Context) {
	var dto service.RoutineLogDTO
	if !bindJSON(c, &dto) {
		return
	}
	entry, err := rh.routines.LogCompletion(c.Request.Context(), currentUser(c).ID, rh.kind, dto)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (rh *routineHandlers) streaks(c *gin.Context) {
	streaks, err := rh.routines.Streaks(c.Request.Context(), currentUser(c).ID, rh.kind)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, streaks)
}
