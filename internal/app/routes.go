package app

import (
	"github.com/gin-gonic/gin"

	"github.com/mindlog/core/internal/middleware"
	"github.com/mindlog/core/internal/modules/ai"
	"github.com/mindlog/core/internal/modules/health"
	"github.com/mindlog/core/internal/modules/journal"
	"github.com/mindlog/core/internal/modules/reminder"
	"github.com/mindlog/core/internal/modules/settings"
	"github.com/mindlog/core/internal/modules/stats"
	"github.com/mindlog/core/internal/modules/task"
	"github.com/mindlog/core/internal/modules/user"
	pkgredis "github.com/mindlog/core/internal/pkg/redis"
	"github.com/mindlog/core/internal/pkg/response"
	"github.com/mindlog/core/internal/pkg/taskqueue"
)

const apiPrefix = "/api"

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router
	db := a.db
	authMW := middleware.Auth(db)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	// Rate limiting and idempotence run on every route (requires Redis).
	r.Use(middleware.RateLimit(rc.Raw()))
	r.Use(middleware.Idempotence(rc.Raw()))

	queueSvc := taskqueue.NewService(rc)
	aiSvc := ai.NewService(db, a.cfg, queueSvc)
	a.aiSvc = aiSvc

	api := r.Group(apiPrefix)

	user.NewHandler(user.NewService(db)).RegisterRoutes(api, authMW)
	journal.NewHandler(journal.NewService(db), aiSvc).RegisterRoutes(api, authMW)
	task.NewHandler(task.NewService(db)).RegisterRoutes(api, authMW)
	reminder.NewHandler(reminder.NewService(db)).RegisterRoutes(api, authMW)
	settings.NewHandler(settings.NewService(db)).RegisterRoutes(api, authMW)
	stats.NewHandler(stats.NewService(db)).RegisterRoutes(api, authMW)
	ai.NewHandler(aiSvc).RegisterRoutes(api, authMW)
	health.RegisterRoutes(api, db, rc, a.sched, authMW)
}
