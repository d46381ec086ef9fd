package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"shirt_sh_v1_202608/internal/api/dto"
)

// ==================== OrderRateLimiter 下单限流器 ====================

// OrderRateLimiter 按来源 IP 限制下单频率
// 每次下单都会触发 AI 生成与 Printify 真实扣费，必须有冷却
type OrderRateLimiter struct {
	locks sync.Map // key -> *lockEntry
}

// lockEntry 锁条目
type lockEntry struct {
	lastTime time.Time
	mu       sync.Mutex
}

// 全局限流器实例
var globalLimiter = &OrderRateLimiter{}

// GetLimiter 获取全局限流器
func GetLimiter() *OrderRateLimiter {
	return globalLimiter
}

// ==================== 限流检查 ====================

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool          // 是否允许
	RetryAfter time.Duration // 剩余冷却时间
}

// Check 检查是否允许执行，允许时更新最后执行时间
// key: 限流键，如 "ip:1.2.3.4:order"
// interval: 冷却间隔
func (r *OrderRateLimiter) Check(key string, interval time.Duration) CheckResult {
	actual, _ := r.locks.LoadOrStore(key, &lockEntry{})
	entry := actual.(*lockEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(entry.lastTime)

	if elapsed < interval {
		return CheckResult{
			Allowed:    false,
			RetryAfter: interval - elapsed,
		}
	}

	entry.lastTime = now
	return CheckResult{
		Allowed:    true,
		RetryAfter: 0,
	}
}

// Reset 重置指定 key 的限流
func (r *OrderRateLimiter) Reset(key string) {
	r.locks.Delete(key)
}

// OrderKey 生成来源级下单 Key
func OrderKey(clientIP string) string {
	return fmt.Sprintf("ip:%s:order", clientIP)
}

// ==================== Gin 中间件 ====================

// RateLimit 下单频率限制中间件
// interval <= 0 时关闭限流（测试环境）
func RateLimit(interval time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if interval <= 0 {
			c.Next()
			return
		}

		result := GetLimiter().Check(OrderKey(c.ClientIP()), interval)
		if !result.Allowed {
			c.Header("Retry-After", fmt.Sprintf("%d", int(result.RetryAfter.Seconds())+1))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorBody(
				"RATE_LIMITED",
				fmt.Sprintf("下单过于频繁，请 %d 秒后重试", int(result.RetryAfter.Seconds())+1),
			))
			return
		}
		c.Next()
	}
}
