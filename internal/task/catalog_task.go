package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"shirt_sh_v1_202608/internal/service"
)

// CatalogTask 定时刷新 Printify 目录变体快照
// 快照只做静态表未命中时的兜底，刷新失败不影响主流程
type CatalogTask struct {
	Resolver *service.VariantResolver
	Cron     *cron.Cron
}

func NewCatalogTask(resolver *service.VariantResolver) *CatalogTask {
	return &CatalogTask{
		Resolver: resolver,
		Cron:     cron.New(cron.WithSeconds()), // 支持秒级控制
	}
}

// Start 启动定时任务
func (t *CatalogTask) Start() {
	// 首次执行
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		log.Println("[Task] 服务启动，正在预热目录变体快照...")
		t.refreshJob(ctx)
	}()

	// 定时策略：每 6 小时刷新一次，目录变化频率很低
	_, err := t.Cron.AddFunc("0 0 0/6 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		t.refreshJob(ctx)
	})

	if err != nil {
		log.Fatalf("无法启动目录刷新定时任务: %v", err)
	}

	t.Cron.Start()
	log.Println("目录刷新任务已启动 (每6小时刷新一次)")
}

func (t *CatalogTask) refreshJob(ctx context.Context) {
	if err := t.Resolver.RefreshCatalog(ctx); err != nil {
		// 日志仅记录，静态表兜底不受影响
		log.Printf("[Cron] 目录变体快照刷新失败: %v", err)
		return
	}
	log.Println("[Cron] 目录变体快照刷新完成")
}
