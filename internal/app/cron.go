package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mindlog/core/internal/models"
	pkgcron "github.com/mindlog/core/internal/pkg/cron"
	pkgredis "github.com/mindlog/core/internal/pkg/redis"
	sessionpkg "github.com/mindlog/core/internal/pkg/session"
	"github.com/mindlog/core/internal/pkg/taskqueue"
)

// registerCronJobs registers all scheduled background jobs.
func (a *App) registerCronJobs(rc *pkgredis.Client) {
	db := a.db
	cronLogger := a.logger.Named("CronService")
	queueSvc := taskqueue.NewService(rc)

	a.sched.Register(pkgcron.Job{
		Name:        "cleanup_sessions",
		Description: "清理过期和已撤销的登录会话",
		Interval:    24 * time.Hour,
		Fn: func(ctx context.Context) error {
			removed, err := sessionpkg.PurgeStale(db, time.Now())
			if err != nil {
				cronLogger.Warn("清理会话失败", zap.Error(err))
				return err
			}
			cronLogger.Info(fmt.Sprintf("清理会话成功，共删除 %d 条", removed))
			return nil
		},
	})

	a.sched.Register(pkgcron.Job{
		Name:        "cleanup_queue_tasks",
		Description: "清理 3 天以上已结束的后台任务",
		Interval:    24 * time.Hour,
		Fn: func(ctx context.Context) error {
			cutoff := time.Now().AddDate(0, 0, -3).UnixMilli()
			if err := queueSvc.DeleteCompleted(ctx, "", cutoff); err != nil {
				cronLogger.Warn("清理后台任务失败", zap.Error(err))
				return err
			}
			return nil
		},
	})

	a.sched.Register(pkgcron.Job{
		Name:        "pregenerate_weekly_summaries",
		Description: "为活跃用户预生成本周总结",
		Interval:    24 * time.Hour,
		Fn: func(ctx context.Context) error {
			var userIDs []string
			weekAgo := time.Now().AddDate(0, 0, -7)
			if err := db.Model(&models.JournalModel{}).
				Where("created_at >= ?", weekAgo).
				Distinct("user_id").
				Pluck("user_id", &userIDs).Error; err != nil {
				return err
			}

			for _, userID := range userIDs {
				if _, err := a.aiSvc.GetOrCreateWeeklySummary(ctx, userID, time.Now()); err != nil {
					cronLogger.Warn("预生成周总结失败",
						zap.String("user_id", userID),
						zap.Error(err),
					)
				}
			}
			cronLogger.Info(fmt.Sprintf("周总结预生成完成，共 %d 个用户", len(userIDs)))
			return nil
		},
	})
}
