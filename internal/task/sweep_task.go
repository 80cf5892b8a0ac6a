package task

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"meli_listing_v1/pkg/utils"
)

// ==================== 状态缓存清理任务 ====================

// StateSweepTask 定期清理过期的授权 state 缓存
// 缓存本身有惰性过期，这里兜底回收从未被回调消费的条目
type StateSweepTask struct {
	cache *utils.StateCache
	log   *zap.Logger
	cron  *cron.Cron
}

// NewStateSweepTask 创建清理任务
func NewStateSweepTask(cache *utils.StateCache, log *zap.Logger) *StateSweepTask {
	return &StateSweepTask{
		cache: cache,
		log:   log,
		cron:  cron.New(),
	}
}

// Start 注册并启动定时清理（每 5 分钟一次）
func (t *StateSweepTask) Start() error {
	if _, err := t.cron.AddFunc("@every 5m", t.Run); err != nil {
		return err
	}
	t.cron.Start()
	return nil
}

// Run 执行一次清理
func (t *StateSweepTask) Run() {
	if removed := t.cache.Sweep(); removed > 0 {
		t.log.Info("swept expired auth states", zap.Int("removed", removed))
	}
}

// Stop 停止调度，等待在途任务结束
func (t *StateSweepTask) Stop() {
	<-t.cron.Stop().Done()
}
