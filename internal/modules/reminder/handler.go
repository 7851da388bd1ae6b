package reminder

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mindlog/core/internal/middleware"
	"github.com/mindlog/core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/tasks/reminders", authMW)
	g.GET("/next", h.next)
}

// GET /tasks/reminders/next
//
// Returns the task the client should surface now, recording the
// reminder in the same call.
func (h *Handler) next(c *gin.Context) {
	t, err := h.svc.NextDue(middleware.CurrentUserID(c), time.Now())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if t == nil {
		response.NotFoundMsg(c, "当前没有需要提醒的任务")
		return
	}
	response.OK(c, t)
}
