package journal

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mindlog/core/internal/middleware"
	"github.com/mindlog/core/internal/models"
	aimodule "github.com/mindlog/core/internal/modules/ai"
	"github.com/mindlog/core/internal/pkg/pagination"
	"github.com/mindlog/core/internal/pkg/response"
)

type Handler struct {
	svc   *Service
	aiSvc *aimodule.Service
}

func NewHandler(svc *Service, aiSvc *aimodule.Service) *Handler {
	return &Handler{svc: svc, aiSvc: aiSvc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/journals", authMW)

	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/today", h.today)
	g.GET("/weekly-report", h.weeklyReport)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
	g.PUT("/:id/analysis", h.setAnalysis)
	g.POST("/:id/analyze", h.analyzeAsync)
}

type journalDTO struct {
	Content string `json:"content" binding:"required"`
}

// POST /journals
func (h *Handler) create(c *gin.Context) {
	var dto journalDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "日记内容不能为空")
		return
	}

	entry, created, err := h.svc.CreateOrReplaceToday(middleware.CurrentUserID(c), dto.Content, time.Now())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if created {
		response.Created(c, entry)
		return
	}
	response.OK(c, entry)
}

// GET /journals
func (h *Handler) list(c *gin.Context) {
	entries, p, err := h.svc.List(middleware.CurrentUserID(c), pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, entries, p)
}

// GET /journals/today
func (h *Handler) today(c *gin.Context) {
	entry, err := h.svc.GetToday(middleware.CurrentUserID(c), time.Now())
	if err != nil {
		if errors.Is(err, errNoneToday) {
			response.NotFoundMsg(c, errNoneToday.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, entry)
}

// GET /journals/:id
func (h *Handler) get(c *gin.Context) {
	entry, err := h.svc.GetByID(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, entry)
}

// PUT /journals/:id
func (h *Handler) update(c *gin.Context) {
	var dto journalDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "日记内容不能为空")
		return
	}
	entry, err := h.svc.UpdateContent(middleware.CurrentUserID(c), c.Param("id"), dto.Content)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, entry)
}

// DELETE /journals/:id
func (h *Handler) remove(c *gin.Context) {
	if err := h.svc.Delete(middleware.CurrentUserID(c), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	response.NoContent(c)
}

// PUT /journals/:id/analysis
func (h *Handler) setAnalysis(c *gin.Context) {
	var dto models.JournalAnalysis
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	entry, err := h.svc.SetAnalysis(middleware.CurrentUserID(c), c.Param("id"), dto)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, entry)
}

// GET /journals/weekly-report — trailing-week aggregation, no provider call
func (h *Handler) weeklyReport(c *gin.Context) {
	stats, err := h.svc.GetWeeklyStats(middleware.CurrentUserID(c), time.Now())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, stats)
}

// POST /journals/:id/analyze — queues background analysis
func (h *Handler) analyzeAsync(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	// Ownership check first so the queue only ever sees valid work.
	if _, err := h.svc.GetByID(userID, c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}

	task, err := h.aiSvc.EnqueueJournalAnalysis(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{
		"message": "analysis queued",
		"task_id": task.ID,
	})
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
