package middleware

import (
	"crypto/subtle"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"shirt_sh_v1_202608/internal/api/dto"
)

// ==================== 支付校验 ====================

// PaymentVerifier 支付凭证校验器
type PaymentVerifier interface {
	Verify(token string) bool
}

// EnvTokenVerifier 固定令牌校验：请求头携带的凭证与配置的令牌一致即放行
type EnvTokenVerifier struct {
	Token string
}

var _ PaymentVerifier = (*EnvTokenVerifier)(nil)

// Verify 常量时间比较，避免时序侧信道
func (v *EnvTokenVerifier) Verify(token string) bool {
	if token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(v.Token)) == 1
}

// ==================== Gin 中间件 ====================

// PaymentRequired 支付门禁中间件
// 未携带或携带无效 X-Payment 头时返回 402
// verifier 为 nil 表示未配置支付，门禁关闭（开发环境）
func PaymentRequired(verifier PaymentVerifier) gin.HandlerFunc {
	if verifier == nil {
		log.Println("[Payment] 未配置支付令牌，支付门禁关闭")
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		token := c.GetHeader("X-Payment")
		if !verifier.Verify(token) {
			c.AbortWithStatusJSON(http.StatusPaymentRequired, dto.NewErrorBody(
				"PAYMENT_REQUIRED",
				"缺少或无效的支付凭证，请在 X-Payment 请求头中携带",
			))
			return
		}
		c.Next()
	}
}
