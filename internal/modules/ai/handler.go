package ai

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mindlog/core/internal/middleware"
	"github.com/mindlog/core/internal/models"
	"github.com/mindlog/core/internal/pkg/pagination"
	"github.com/mindlog/core/internal/pkg/response"
	"github.com/mindlog/core/internal/pkg/taskqueue"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	deepseek := rg.Group("/deepseek", authMW)
	deepseek.POST("/analyze", h.analyze)
	deepseek.POST("/extract-tasks", h.extractTasks)
	deepseek.POST("/weekly-report", h.weeklyReport)

	g := rg.Group("/ai", authMW)
	g.GET("/weekly-summary", h.weeklySummary)

	tasks := g.Group("/tasks")
	tasks.GET("", h.listQueueTasks)
	tasks.GET("/:id", h.getQueueTask)
	tasks.POST("/:id/cancel", h.cancelQueueTask)
	tasks.DELETE("/:id", h.deleteQueueTask)
	tasks.DELETE("", h.deleteCompletedQueueTasks)
}

type analyzeDTO struct {
	Content string `json:"content" binding:"required"`
}

// POST /deepseek/analyze
func (h *Handler) analyze(c *gin.Context) {
	var dto analyzeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "日记内容不能为空")
		return
	}

	userID := middleware.CurrentUserID(c)
	analysis, err := h.svc.Analyze(c.Request.Context(), userID, dto.Content)
	if err != nil {
		if errors.Is(err, ErrAPIKeyMissing) {
			response.BadRequest(c, ErrAPIKeyMissing.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, analysis)
}

type extractTasksDTO struct {
	Content   string `json:"content" binding:"required"`
	JournalID string `json:"journal_id"`
}

// POST /deepseek/extract-tasks
//
// With a journal_id the extracted items are persisted as tasks linked
// to that entry; otherwise they are only returned.
func (h *Handler) extractTasks(c *gin.Context) {
	var dto extractTasksDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "日记内容不能为空")
		return
	}

	userID := middleware.CurrentUserID(c)
	extracted, err := h.svc.ExtractTasks(c.Request.Context(), userID, dto.Content)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	if dto.JournalID == "" {
		response.OK(c, extracted)
		return
	}

	var journal models.JournalModel
	if err := h.svc.db.Where("id = ?", dto.JournalID).First(&journal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFoundMsg(c, "未找到日记")
			return
		}
		response.InternalError(c, err)
		return
	}
	if !ownsJournal(&journal, userID) {
		response.Forbidden(c)
		return
	}

	saved := make([]models.TaskModel, 0, len(extracted))
	for _, item := range extracted {
		task := models.TaskModel{
			UserID:       userID,
			JournalID:    &journal.ID,
			Content:      item.Task,
			OriginalText: item.OriginalText,
			TimeContext:  item.TimeContext,
		}
		if task.TimeContext == "" {
			task.TimeContext = TimeContextUnspecified
		}
		if err := h.svc.db.Create(&task).Error; err != nil {
			response.InternalError(c, err)
			return
		}
		saved = append(saved, task)
	}
	response.OK(c, saved)
}

// POST /deepseek/weekly-report
func (h *Handler) weeklyReport(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	report, err := h.svc.GenerateCurrentWeeklyReport(c.Request.Context(), userID, time.Now())
	if err != nil {
		if errors.Is(err, ErrAPIKeyMissing) {
			response.BadRequest(c, ErrAPIKeyMissing.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, report)
}

// GET /ai/weekly-summary
func (h *Handler) weeklySummary(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	summary, err := h.svc.GetOrCreateWeeklySummary(c.Request.Context(), userID, time.Now())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, summary)
}

// ownsJournal reports whether the entry belongs to this user. A found
// row with a different owner is an authorization failure, not a 404.
func ownsJournal(j *models.JournalModel, userID string) bool {
	return j != nil && userID != "" && j.UserID == userID
}

// ownsQueueTask reports whether the task was enqueued for this user.
// Queue tasks carry their owner as the group key.
func ownsQueueTask(task *taskqueue.Task, userID string) bool {
	return task != nil && userID != "" && task.GroupKey == userID
}

// loadOwnedQueueTask resolves the :id task and enforces ownership,
// writing the error response itself when the task cannot be served.
func (h *Handler) loadOwnedQueueTask(c *gin.Context) (*taskqueue.Task, bool) {
	task, err := h.svc.Queue().GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return nil, false
	}
	if task == nil {
		response.NotFound(c)
		return nil, false
	}
	if !ownsQueueTask(task, middleware.CurrentUserID(c)) {
		response.Forbidden(c)
		return nil, false
	}
	return task, true
}

// GET /ai/tasks?type=...&status=...
func (h *Handler) listQueueTasks(c *gin.Context) {
	q := pagination.FromContext(c)

	var taskType *string
	if t := c.Query("type"); t != "" {
		taskType = &t
	}
	var status *taskqueue.TaskStatus
	if st := c.Query("status"); st != "" {
		s := taskqueue.TaskStatus(st)
		status = &s
	}

	tasks, total, err := h.svc.Queue().List(c.Request.Context(), middleware.CurrentUserID(c), taskType, status, q.Page, q.Size)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	totalPage := int((total + int64(q.Size) - 1) / int64(q.Size))
	response.Paged(c, tasks, response.Pagination{
		Total:       total,
		CurrentPage: q.Page,
		TotalPage:   totalPage,
		Size:        q.Size,
		HasNextPage: q.Page < totalPage,
	})
}

// GET /ai/tasks/:id
func (h *Handler) getQueueTask(c *gin.Context) {
	task, ok := h.loadOwnedQueueTask(c)
	if !ok {
		return
	}
	response.OK(c, task)
}

// POST /ai/tasks/:id/cancel
func (h *Handler) cancelQueueTask(c *gin.Context) {
	task, ok := h.loadOwnedQueueTask(c)
	if !ok {
		return
	}
	if err := h.svc.Queue().Cancel(c.Request.Context(), task.ID); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.OK(c, gin.H{"message": "cancelled"})
}

// DELETE /ai/tasks/:id
func (h *Handler) deleteQueueTask(c *gin.Context) {
	task, ok := h.loadOwnedQueueTask(c)
	if !ok {
		return
	}
	if err := h.svc.Queue().DeleteByID(c.Request.Context(), task.ID); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

// DELETE /ai/tasks — purge the caller's finished tasks
func (h *Handler) deleteCompletedQueueTasks(c *gin.Context) {
	if err := h.svc.Queue().DeleteCompleted(c.Request.Context(), middleware.CurrentUserID(c), 0); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
