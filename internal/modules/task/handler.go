package task

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mindlog/core/internal/middleware"
	"github.com/mindlog/core/internal/pkg/pagination"
	"github.com/mindlog/core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/tasks", authMW)

	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
	g.PUT("/:id/reminder", h.markReminded)
}

// POST /tasks
func (h *Handler) create(c *gin.Context) {
	var dto CreateTaskDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "待办事项内容不能为空")
		return
	}
	t, err := h.svc.Create(middleware.CurrentUserID(c), &dto)
	if err != nil {
		if errors.Is(err, errJournalNotFound) {
			response.NotFoundMsg(c, errJournalNotFound.Error())
			return
		}
		if errors.Is(err, errNotOwner) {
			response.Forbidden(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, t)
}

// GET /tasks?completed=true|false
func (h *Handler) list(c *gin.Context) {
	var completed *bool
	switch c.Query("completed") {
	case "true":
		v := true
		completed = &v
	case "false":
		v := false
		completed = &v
	}

	tasks, p, err := h.svc.List(middleware.CurrentUserID(c), completed, pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, tasks, p)
}

// GET /tasks/:id
func (h *Handler) get(c *gin.Context) {
	t, err := h.svc.GetByID(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, t)
}

// PUT /tasks/:id
func (h *Handler) update(c *gin.Context) {
	var dto UpdateTaskDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	t, err := h.svc.Update(middleware.CurrentUserID(c), c.Param("id"), &dto)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, t)
}

// DELETE /tasks/:id
func (h *Handler) remove(c *gin.Context) {
	if err := h.svc.Delete(middleware.CurrentUserID(c), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	response.NoContent(c)
}

// PUT /tasks/:id/reminder
func (h *Handler) markReminded(c *gin.Context) {
	t, err := h.svc.MarkReminded(middleware.CurrentUserID(c), c.Param("id"), time.Now())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, t)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errNotFound):
		response.NotFoundMsg(c, errNotFound.Error())
	case errors.Is(err, errNotOwner):
		response.Forbidden(c)
	default:
		response.InternalError(c, err)
	}
}
