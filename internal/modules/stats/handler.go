package stats

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mindlog/core/internal/middleware"
	"github.com/mindlog/core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/stats", authMW)

	g.GET("", h.overview)
	g.GET("/export", h.export)
}

// GET /stats
func (h *Handler) overview(c *gin.Context) {
	overview, err := h.svc.GetOverview(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, overview)
}

// GET /stats/export
func (h *Handler) export(c *gin.Context) {
	data, err := h.svc.Export(middleware.CurrentUserID(c), time.Now())
	if err != nil {
		if errors.Is(err, errUserNotFound) {
			response.NotFoundMsg(c, errUserNotFound.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, data)
}
