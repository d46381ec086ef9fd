package service

import (
	"context"
	"log"

	"shirt_sh_v1_202608/internal/api/dto"
)

// ==================== 工作流模式 ====================

const (
	ModePromptFlow = "promptFlow" // 文字描述 -> 生成设计 -> 下单
	ModeImageFlow  = "imageFlow"  // 现成图片 -> 下单
)

// ==================== 依赖接口 ====================

// DesignGenerator 设计生成器（由 DesignService 实现）
type DesignGenerator interface {
	GenerateDesign(ctx context.Context, jobID, prompt string, provider ImageProvider) (*GeneratedDesign, error)
}

// FulfillmentSubmitter 履约提交器（由 FulfillmentService 实现）
type FulfillmentSubmitter interface {
	SubmitDirect(ctx context.Context, imageURL string, variantID, quantity int, addr *dto.AddressTo) (*dto.PrintifyOrder, error)
	SubmitViaProduct(ctx context.Context, imageURL, title, description string, quantity int, addr *dto.AddressTo) (*dto.PrintifyOrder, string, error)
}

var _ DesignGenerator = (*DesignService)(nil)
var _ FulfillmentSubmitter = (*FulfillmentService)(nil)

// ==================== 配置 ====================

// WorkflowConfig 工作流配置
type WorkflowConfig struct {
	ImageProvider ImageProvider // 默认 google
	DirectMode    bool          // 直接下单（不创建商品），默认开启
	Quantity      int           // 每单数量，默认 1
}

// ==================== 请求/结果 ====================

// WorkflowRequest 单次工作流输入
type WorkflowRequest struct {
	Mode      string
	Prompt    string // promptFlow 必填
	ImageURL  string // imageFlow 必填
	Size      string
	Color     string
	VariantID int // 显式变体，>0 时跳过尺码/颜色解析
	AddressTo *dto.AddressTo
}

// WorkflowResult 工作流结果；Success=false 时 Err 必有值
type WorkflowResult struct {
	Success      bool
	JobID        string
	ImageURL     string
	ProductID    string
	OrderID      string
	TrackingInfo *dto.TrackingInfoVO
	Err          error
}

// ==================== WorkflowService ====================

// WorkflowService 下单工作流编排：设计生成 -> 变体解析 -> 履约提交
// 单一错误边界：任何一步失败，整个任务以失败结束，不做部分重试
type WorkflowService struct {
	Config      WorkflowConfig
	generator   DesignGenerator
	fulfillment FulfillmentSubmitter
	resolver    *VariantResolver
}

// NewWorkflowService 创建工作流服务
func NewWorkflowService(config WorkflowConfig, generator DesignGenerator, fulfillment FulfillmentSubmitter, resolver *VariantResolver) *WorkflowService {
	if config.ImageProvider == "" {
		config.ImageProvider = ProviderGoogle
	}
	if config.Quantity <= 0 {
		config.Quantity = 1
	}
	return &WorkflowService{
		Config:      config,
		generator:   generator,
		fulfillment: fulfillment,
		resolver:    resolver,
	}
}

// Run 执行一次完整工作流
// 永远返回结构化结果，不向上抛 error：失败细节封装在 Result.Err
func (s *WorkflowService) Run(ctx context.Context, jobID string, req *WorkflowRequest) *WorkflowResult {
	result, err := s.run(ctx, jobID, req)
	if err != nil {
		log.Printf("[Workflow] 任务 %s 失败: %s", jobID, err.Error())
		return &WorkflowResult{Success: false, JobID: jobID, Err: err}
	}
	result.Success = true
	result.JobID = jobID
	return result
}

func (s *WorkflowService) run(ctx context.Context, jobID string, req *WorkflowRequest) (*WorkflowResult, error) {
	// 1. 拿到设计图
	var imageURL, title string
	switch req.Mode {
	case ModeImageFlow:
		// 跳过生成，直接用调用方提供的图片
		imageURL = req.ImageURL
		title = fallbackTitle(req.Prompt)
	default:
		design, err := s.generator.GenerateDesign(ctx, jobID, req.Prompt, s.Config.ImageProvider)
		if err != nil {
			// 生成失败不进入履约
			return nil, err
		}
		imageURL = design.ImageURL
		title = design.Title
	}

	// 2. 解析变体
	variantID, err := s.resolver.Resolve(ctx, req.Size, req.Color, req.VariantID)
	if err != nil {
		return nil, err
	}

	// 3. 提交履约
	if s.Config.DirectMode {
		order, err := s.fulfillment.SubmitDirect(ctx, imageURL, variantID, s.Config.Quantity, req.AddressTo)
		if err != nil {
			return nil, err
		}
		return &WorkflowResult{
			ImageURL:     imageURL,
			OrderID:      order.ID,
			TrackingInfo: trackingFrom(order),
		}, nil
	}

	order, productID, err := s.fulfillment.SubmitViaProduct(ctx, imageURL, title, req.Prompt, s.Config.Quantity, req.AddressTo)
	if err != nil {
		return nil, err
	}
	return &WorkflowResult{
		ImageURL:     imageURL,
		ProductID:    productID,
		OrderID:      order.ID,
		TrackingInfo: trackingFrom(order),
	}, nil
}

// trackingFrom 刚提交的订单一般还没有物流信息
func trackingFrom(order *dto.PrintifyOrder) *dto.TrackingInfoVO {
	if order.Shipment == nil || order.Shipment.TrackingNumber == "" {
		return nil
	}
	return &dto.TrackingInfoVO{
		Carrier:        order.Shipment.Carrier,
		TrackingNumber: order.Shipment.TrackingNumber,
		TrackingURL:    order.Shipment.TrackingURL,
	}
}
