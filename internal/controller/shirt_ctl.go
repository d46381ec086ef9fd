package controller

import (
	"context"
	"log"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shirt_sh_v1_202608/internal/api/dto"
	"shirt_sh_v1_202608/internal/service"
)

// ==================== 依赖接口 ====================

// WorkflowRunner 工作流执行入口（由 WorkflowService 实现）
type WorkflowRunner interface {
	Run(ctx context.Context, jobID string, req *service.WorkflowRequest) *service.WorkflowResult
}

var _ WorkflowRunner = (*service.WorkflowService)(nil)

// ==================== ShirtController ====================

// ShirtController 下单接口
type ShirtController struct {
	workflow WorkflowRunner
}

// NewShirtController 创建下单控制器
func NewShirtController(workflow WorkflowRunner) *ShirtController {
	return &ShirtController{workflow: workflow}
}

// 美国邮编：5位 或 5+4 位
var usZipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// ==================== 接口实现 ====================

// CreateShirt 提示词下单
// @Summary 按文字描述生成设计并下单
// @Description 生成设计图 -> 解析变体 -> 提交 Printify 订单，同步返回结果
// @Tags 下单
// @Accept json
// @Produce json
// @Param request body dto.CreateShirtRequest true "下单请求"
// @Success 200 {object} dto.ShirtJobResponse
// @Failure 400 {object} dto.ErrorBody "参数错误"
// @Failure 422 {object} dto.ErrorBody "地址不合法"
// @Failure 500 {object} dto.ErrorBody "工作流失败"
// @Router /api/shirts [post]
func (c *ShirtController) CreateShirt(ctx *gin.Context) {
	var req dto.CreateShirtRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorBody("BAD_REQUEST", err.Error()))
		return
	}
	if err := validateAddressBusinessRules(&req.AddressTo); err != "" {
		ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorBody("INVALID_ADDRESS", err))
		return
	}

	jobID := uuid.New().String()
	log.Printf("[Shirt] 收到下单请求 job=%s mode=promptFlow size=%q color=%q", jobID, req.Size, req.Color)

	result := c.workflow.Run(ctx.Request.Context(), jobID, &service.WorkflowRequest{
		Mode:      service.ModePromptFlow,
		Prompt:    req.Prompt,
		Size:      req.Size,
		Color:     req.Color,
		AddressTo: &req.AddressTo,
	})
	c.respond(ctx, result)
}

// CreateShirtFromImage 自带图片下单
// @Summary 用现成图片下单（跳过 AI 生成）
// @Tags 下单
// @Accept json
// @Produce json
// @Param request body dto.CreateShirtFromImageRequest true "下单请求"
// @Success 200 {object} dto.ShirtJobResponse
// @Failure 400 {object} dto.ErrorBody "参数错误"
// @Failure 422 {object} dto.ErrorBody "地址不合法"
// @Failure 500 {object} dto.ErrorBody "工作流失败"
// @Router /api/shirts/from-image [post]
func (c *ShirtController) CreateShirtFromImage(ctx *gin.Context) {
	var req dto.CreateShirtFromImageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorBody("BAD_REQUEST", err.Error()))
		return
	}
	if err := validateAddressBusinessRules(&req.AddressTo); err != "" {
		ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorBody("INVALID_ADDRESS", err))
		return
	}

	jobID := uuid.New().String()
	log.Printf("[Shirt] 收到下单请求 job=%s mode=imageFlow", jobID)

	result := c.workflow.Run(ctx.Request.Context(), jobID, &service.WorkflowRequest{
		Mode:      service.ModeImageFlow,
		ImageURL:  req.ImageURL,
		Size:      req.Size,
		Color:     req.Color,
		AddressTo: &req.AddressTo,
	})
	c.respond(ctx, result)
}

// ==================== 内部方法 ====================

func (c *ShirtController) respond(ctx *gin.Context, result *service.WorkflowResult) {
	if !result.Success {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorBody{
			OK: false,
			Error: dto.ErrorDetail{
				Code:    "WORKFLOW_FAILED",
				Message: result.Err.Error(),
				Details: gin.H{"job_id": result.JobID},
			},
		})
		return
	}
	ctx.JSON(http.StatusOK, dto.ShirtJobResponse{
		ID:           result.JobID,
		Status:       "completed",
		ImageURL:     result.ImageURL,
		ProductID:    result.ProductID,
		OrderID:      result.OrderID,
		TrackingInfo: result.TrackingInfo,
	})
}

// validateAddressBusinessRules 国家相关的地址规则
// binding 管格式，这里管业务：美国地址的邮编必须是 5 位或 5+4 位
func validateAddressBusinessRules(addr *dto.AddressTo) string {
	if addr.Country == "US" && !usZipPattern.MatchString(addr.Zip) {
		return "美国邮编格式不正确，应为 5 位或 5+4 位数字"
	}
	return ""
}
