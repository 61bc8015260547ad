package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Обобщённые обработчики для ресурсов с соглашением
// GET - список, POST - создание, PUT - обновление по id в теле, DELETE ?id=

func listOf[T any](fn func(ctx context.Context, userID string) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := fn(c.Request.Context(), currentUser(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func writeOf[D, T any](status int, fn func(ctx context.Context, userID string, dto D) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var dto D
		if !bindJSON(c, &dto) {
			return
		}
		item, err := fn(c.Request.Context(), currentUser(c).ID, dto)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(status, item)
	}
}

func createOf[D, T any](fn func(ctx context.Context, userID string, dto D) (T, error)) gin.HandlerFunc {
	return writeOf(http.StatusCreated, fn)
}

func updateOf[D, T any](fn func(ctx context.Context, userID string, dto D) (T, error)) gin.HandlerFunc {
	return writeOf(http.StatusOK, fn)
}

func deleteOf(fn func(ctx context.Context, userID, id string) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := queryID(c)
		if !ok {
			return
		}
		if err := fn(c.Request.Context(), currentUser(c).ID, id); err != nil {
			respondError(c, err)
			return
		}
		deleted(c)
	}
}

// resource вешает четыре стандартных маршрута на путь
type resource struct {
	list, create, update, delete gin.HandlerFunc
}

func (r resource) mount(g *gin.RouterGroup, path string) {
	g.GET(path, r.list)
	g.POST(path, r.create)
	g.PUT(path, r.update)
	g.DELETE(path, r.delete)
}
