package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"shirt_sh_v1_202608/internal/api/dto"
)

// ==================== 配置 ====================

// PrintifyConfig Printify 配置
type PrintifyConfig struct {
	BaseURL string // e.g. https://api.printify.com
	APIKey  string
	ShopID  int64
	Timeout time.Duration
}

// PrintifyClient Printify API 客户端
type PrintifyClient struct {
	config     PrintifyConfig
	httpClient *http.Client
}

// NewPrintifyClient 创建客户端
func NewPrintifyClient(cfg PrintifyConfig) *PrintifyClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.printify.com"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &PrintifyClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// ==================== 图片上传 ====================

// UploadImage 上传设计图，返回 Printify 侧的资源引用
// Printify 下单只认自家托管的资源，外部 URL 必须先经过这一步
func (c *PrintifyClient) UploadImage(ctx context.Context, req *dto.UploadImageRequest) (*dto.PrintifyUpload, error) {
	var resp dto.PrintifyUpload
	err := c.doRequest(ctx, http.MethodPost, "/v1/uploads/images.json", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("上传设计图失败: %w", err)
	}
	return &resp, nil
}

// ==================== 商品 ====================

// CreateProduct 创建商品
func (c *PrintifyClient) CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (*dto.PrintifyProduct, error) {
	path := fmt.Sprintf("/v1/shops/%d/products.json", c.config.ShopID)
	var resp dto.PrintifyProduct
	err := c.doRequest(ctx, http.MethodPost, path, req, &resp)
	if err != nil {
		return nil, fmt.Errorf("创建商品失败: %w", err)
	}
	return &resp, nil
}

// PublishProduct 发布商品（商品发布后才可被下单）
func (c *PrintifyClient) PublishProduct(ctx context.Context, productID string) error {
	path := fmt.Sprintf("/v1/shops/%d/products/%s/publish.json", c.config.ShopID, productID)
	body := map[string]bool{
		"title":       true,
		"description": true,
		"images":      true,
		"variants":    true,
		"tags":        true,
	}
	if err := c.doRequest(ctx, http.MethodPost, path, body, nil); err != nil {
		return fmt.Errorf("发布商品失败: %w", err)
	}
	return nil
}

// ==================== 订单 ====================

// CreateOrder 创建订单
func (c *PrintifyClient) CreateOrder(ctx context.Context, req *dto.CreateOrderRequest) (*dto.PrintifyOrder, error) {
	path := fmt.Sprintf("/v1/shops/%d/orders.json", c.config.ShopID)
	var resp dto.PrintifyOrder
	err := c.doRequest(ctx, http.MethodPost, path, req, &resp)
	if err != nil {
		return nil, fmt.Errorf("创建订单失败: %w", err)
	}
	return &resp, nil
}

// SubmitOrder 将订单提交生产
func (c *PrintifyClient) SubmitOrder(ctx context.Context, orderID string) error {
	path := fmt.Sprintf("/v1/shops/%d/orders/%s/send_to_production.json", c.config.ShopID, orderID)
	if err := c.doRequest(ctx, http.MethodPost, path, nil, nil); err != nil {
		return fmt.Errorf("提交生产失败: %w", err)
	}
	return nil
}

// ==================== 目录查询 ====================

// GetBlueprintVariants 查询蓝图在指定供应商下的全部变体
func (c *PrintifyClient) GetBlueprintVariants(ctx context.Context, blueprintID, printProviderID int) ([]dto.CatalogVariant, error) {
	path := fmt.Sprintf("/v1/catalog/blueprints/%d/print_providers/%d/variants.json", blueprintID, printProviderID)
	var resp dto.CatalogVariantsResponse
	err := c.doRequest(ctx, http.MethodGet, path, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("查询目录变体失败: %w", err)
	}
	return resp.Variants, nil
}

// ==================== HTTP 请求封装 ====================

func (c *PrintifyClient) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("序列化请求失败: %w", err)
		}
		reqBody = bytes.NewReader(jsonBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("创建请求失败: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("发送请求失败: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("读取响应失败: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp dto.PrintifyErrorResponse
		if json.Unmarshal(respBody, &errResp) == nil {
			if errResp.Message != "" {
				return fmt.Errorf("Printify API 错误 [%d]: %s", resp.StatusCode, errResp.Message)
			}
			if errResp.Error != "" {
				return fmt.Errorf("Printify API 错误 [%d]: %s", resp.StatusCode, errResp.Error)
			}
		}
		return fmt.Errorf("Printify API 错误 [%d]: %s", resp.StatusCode, string(respBody))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("解析响应失败: %w", err)
		}
	}

	return nil
}

// ==================== 健康检查 ====================

// Ping 检查 Printify 服务与凭证状态
func (c *PrintifyClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/v1/shops.json", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("Printify 服务不可用: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("Printify 凭证校验失败: HTTP %d", resp.StatusCode)
	}

	return nil
}
