package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mindlog/core/internal/pkg/cron"
	pkgredis "github.com/mindlog/core/internal/pkg/redis"
	"github.com/mindlog/core/internal/pkg/response"
)

// RegisterRoutes mounts the liveness endpoint and the cron inspection
// endpoints.
func RegisterRoutes(rg *gin.RouterGroup, db *gorm.DB, rc *pkgredis.Client, sched *cron.Scheduler, authMW gin.HandlerFunc) {
	rg.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		dbOK := err == nil && sqlDB.Ping() == nil
		redisOK := rc.Raw().Ping(c.Request.Context()).Err() == nil

		status := "ok"
		code := http.StatusOK
		if !dbOK || !redisOK {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":   status,
			"database": dbOK,
			"redis":    redisOK,
		})
	})

	cronGroup := rg.Group("/health/cron", authMW)
	{
		cronGroup.GET("", func(c *gin.Context) {
			items := sched.List()
			byName := make(map[string]cron.ListItem, len(items))
			for _, item := range items {
				byName[item.Name] = item
			}
			response.OK(c, byName)
		})

		cronGroup.POST("/run/:name", func(c *gin.Context) {
			if err := sched.Run(c.Request.Context(), c.Param("name")); err != nil {
				response.NotFoundMsg(c, err.Error())
				return
			}
			response.OK(c, gin.H{"message": "job triggered"})
		})

		cronGroup.GET("/task/:name", func(c *gin.Context) {
			result, err := sched.GetTask(c.Param("name"))
			if err != nil {
				response.NotFoundMsg(c, err.Error())
				return
			}
			response.OK(c, result)
		})
	}
}
