package dto

// ==================== 收货地址 ====================

// AddressTo 收货地址
// 字段格式校验由 binding 完成，国家相关的邮编规则在 controller 层单独校验
type AddressTo struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"omitempty,min=3,max=32"` // Printify 对格式宽容，可留空
	Country   string `json:"country" binding:"required,iso3166_1_alpha2"`
	Region    string `json:"region"`
	Address1  string `json:"address1" binding:"required"`
	Address2  string `json:"address2"`
	City      string `json:"city" binding:"required"`
	Zip       string `json:"zip" binding:"required"`
}

// ==================== 创建请求 ====================

// CreateShirtRequest 提示词下单请求
// size/color 可省略，省略时走默认变体 (XL/White)
type CreateShirtRequest struct {
	Prompt    string    `json:"prompt" binding:"required,min=10,max=4000"`
	Size      string    `json:"size" binding:"omitempty,oneof=S M L XL 2XL 3XL 4XL 5XL"`
	Color     string    `json:"color" binding:"omitempty,oneof=Black White"`
	AddressTo AddressTo `json:"address_to" binding:"required"`
}

// CreateShirtFromImageRequest 自带图片下单请求（跳过 AI 生成）
type CreateShirtFromImageRequest struct {
	ImageURL  string    `json:"image_url" binding:"required"`
	Size      string    `json:"size" binding:"omitempty,oneof=S M L XL 2XL 3XL 4XL 5XL"`
	Color     string    `json:"color" binding:"omitempty,oneof=Black White"`
	AddressTo AddressTo `json:"address_to" binding:"required"`
}

// ==================== 响应 ====================

// ShirtJobResponse 下单成功响应
type ShirtJobResponse struct {
	ID           string          `json:"id"`
	Status       string          `json:"status"`
	ImageURL     string          `json:"image_url,omitempty"`
	ProductID    string          `json:"product_id,omitempty"`
	OrderID      string          `json:"order_id,omitempty"`
	TrackingInfo *TrackingInfoVO `json:"tracking_info,omitempty"`
}

// TrackingInfoVO 物流跟踪信息
type TrackingInfoVO struct {
	Carrier        string `json:"carrier"`
	TrackingNumber string `json:"tracking_number,omitempty"`
	TrackingURL    string `json:"tracking_url,omitempty"`
}

// ==================== 错误结构 ====================

// ErrorDetail 错误详情
type ErrorDetail struct {
	Code    string      `json:"code"` // BAD_REQUEST / INVALID_ADDRESS / WORKFLOW_FAILED / PAYMENT_REQUIRED
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorBody 统一错误响应
type ErrorBody struct {
	OK    bool        `json:"ok"`
	Error ErrorDetail `json:"error"`
}

// NewErrorBody 构造错误响应
func NewErrorBody(code, message string) ErrorBody {
	return ErrorBody{OK: false, Error: ErrorDetail{Code: code, Message: message}}
}
