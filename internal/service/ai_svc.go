package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"shirt_sh_v1_202608/internal/model"
	"shirt_sh_v1_202608/internal/repository"
)

// ==================== 提供者枚举 ====================

// ImageProvider 图片生成提供者（封闭枚举，单函数分发）
type ImageProvider string

const (
	ProviderGoogle ImageProvider = "google"
	ProviderOpenAI ImageProvider = "openai"
)

// ==================== 配置 ====================

// AIConfig AI 服务配置
type AIConfig struct {
	GeminiAPIKey string
	OpenAIAPIKey string

	TextModel        string // 标题生成模型
	ImageModel       string // Gemini 图片模型
	OpenAIImageModel string

	// BaseURL 可覆写，测试时指向本地伪服务
	GeminiBaseURL      string
	OpenAIBaseURL      string
	PlaceholderBaseURL string
}

// ==================== 服务 ====================

// DesignService 设计生成服务
type DesignService struct {
	Config      *AIConfig
	Storage     *StorageService
	callLogRepo repository.AICallLogRepository
	httpClient  *http.Client
}

// GeneratedDesign 生成结果
type GeneratedDesign struct {
	ImageURL string `json:"image_url"`
	Title    string `json:"title"`
}

// NewDesignService 创建设计生成服务
func NewDesignService(cfg *AIConfig, storage *StorageService, callLogRepo repository.AICallLogRepository) *DesignService {
	// 固定模型配置
	if cfg.TextModel == "" {
		cfg.TextModel = "gemini-3-flash"
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = "gemini-3-pro-image-preview-2k"
	}
	if cfg.OpenAIImageModel == "" {
		cfg.OpenAIImageModel = "dall-e-3"
	}
	if cfg.GeminiBaseURL == "" {
		cfg.GeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if cfg.OpenAIBaseURL == "" {
		cfg.OpenAIBaseURL = "https://api.openai.com/v1"
	}
	if cfg.PlaceholderBaseURL == "" {
		cfg.PlaceholderBaseURL = "https://via.placeholder.com/1024x1024.png"
	}

	return &DesignService{
		Config:      cfg,
		Storage:     storage,
		callLogRepo: callLogRepo,
		httpClient:  &http.Client{Timeout: 60 * time.Second},
	}
}

// ==================== 设计生成 ====================

// GenerateDesign 生成完整的衣服设计（图片 + 标题）
// 图片与标题没有数据依赖，两路并发执行；任一路失败走各自的兜底，互不影响
func (s *DesignService) GenerateDesign(ctx context.Context, jobID, prompt string, provider ImageProvider) (*GeneratedDesign, error) {
	titleCh := make(chan string, 1)
	go func() {
		titleCh <- s.GenerateTitle(ctx, jobID, prompt)
	}()

	imageURL, err := s.generateImage(ctx, jobID, prompt, provider)
	title := <-titleCh

	if err != nil {
		// 到这里说明连兜底图都构造不出来，没有图片就无法下单
		return nil, err
	}

	return &GeneratedDesign{ImageURL: imageURL, Title: title}, nil
}

// generateImage 按提供者分发图片生成；提供者失败不重试，降级为占位图
func (s *DesignService) generateImage(ctx context.Context, jobID, prompt string, provider ImageProvider) (string, error) {
	var (
		imageURL string
		err      error
	)

	start := time.Now()
	switch provider {
	case ProviderGoogle:
		imageURL, err = s.generateGoogleImage(ctx, prompt)
		s.logCall(ctx, jobID, model.AICallTypeImage, s.Config.ImageModel, start, err)
	case ProviderOpenAI:
		imageURL, err = s.generateOpenAIImage(ctx, prompt)
		s.logCall(ctx, jobID, model.AICallTypeImage, s.Config.OpenAIImageModel, start, err)
	default:
		return "", fmt.Errorf("不支持的图片提供者: %s", provider)
	}

	if err != nil {
		log.Printf("[Design] 任务 %s 图片生成失败，降级为占位图: %v", jobID, err)
		return s.placeholderURL(prompt), nil
	}

	return imageURL, nil
}

// GenerateTitle 生成商品标题，失败时退化为提示词前几个词的标题化，永不报错
func (s *DesignService) GenerateTitle(ctx context.Context, jobID, prompt string) string {
	start := time.Now()
	title, err := s.callGeminiTitle(ctx, prompt)
	s.logCall(ctx, jobID, model.AICallTypeText, s.Config.TextModel, start, err)

	if err != nil || title == "" {
		log.Printf("[Design] 任务 %s 标题生成失败，使用兜底标题: %v", jobID, err)
		return fallbackTitle(prompt)
	}
	return title
}

// ==================== Gemini ====================

// geminiResponse Gemini generateContent 响应
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text       string `json:"text,omitempty"`
				InlineData *struct {
					MimeType string `json:"mimeType"`
					Data     string `json:"data"`
				} `json:"inlineData,omitempty"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// callGeminiTitle 调用 Gemini 生成标题
func (s *DesignService) callGeminiTitle(ctx context.Context, prompt string) (string, error) {
	if s.Config.GeminiAPIKey == "" {
		return "", fmt.Errorf("Gemini API Key 未配置")
	}

	fullPrompt := fmt.Sprintf(`Generate a short, catchy product title (max 50 characters) for a t-shirt with this design: "%s". Return only the title, nothing else.`, prompt)

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": []map[string]interface{}{{"text": fullPrompt}}},
		},
	}

	resp, err := s.callGemini(ctx, s.Config.TextModel, reqBody)
	if err != nil {
		return "", err
	}

	for _, candidate := range resp.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				return strings.TrimSpace(strings.Trim(strings.TrimSpace(part.Text), `"`)), nil
			}
		}
	}

	return "", fmt.Errorf("响应中未找到标题文本")
}

// generateGoogleImage 调用 Gemini 多模态能力生成图片并托管到存储
func (s *DesignService) generateGoogleImage(ctx context.Context, prompt string) (string, error) {
	if s.Config.GeminiAPIKey == "" {
		return "", fmt.Errorf("Gemini API Key 未配置")
	}

	fullPrompt := fmt.Sprintf(`You are a professional t-shirt designer.
Generate a high-quality print-ready design based on the following description:

%s

Requirements:
- Bold, clean composition that reads well on fabric
- Transparent or solid background, no mockup photos
- High resolution, suitable for direct-to-garment printing`, prompt)

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": []map[string]interface{}{{"text": fullPrompt}}},
		},
		"generationConfig": map[string]interface{}{
			"responseModalities": []string{"TEXT", "IMAGE"},
		},
	}

	resp, err := s.callGemini(ctx, s.Config.ImageModel, reqBody)
	if err != nil {
		return "", err
	}

	// 查找图片数据
	for _, candidate := range resp.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && part.InlineData.Data != "" {
				if s.Storage == nil {
					return "", fmt.Errorf("存储服务未配置，无法托管生成图片")
				}
				return s.Storage.SaveBase64(ctx, part.InlineData.Data, "design")
			}
		}
	}

	return "", fmt.Errorf("响应中未找到图片数据")
}

// callGemini 调用 Gemini generateContent 通用入口
func (s *DesignService) callGemini(ctx context.Context, modelName string, reqBody interface{}) (*geminiResponse, error) {
	apiURL := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		s.Config.GeminiBaseURL, modelName, s.Config.GeminiAPIKey)

	bodyBytes, _ := json.Marshal(reqBody)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("请求失败: %v", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Gemini API 错误 [%d]: %s", resp.StatusCode, string(respBody))
	}

	var geminiResp geminiResponse
	if err := json.Unmarshal(respBody, &geminiResp); err != nil {
		return nil, fmt.Errorf("解析响应失败: %v", err)
	}
	if geminiResp.Error != nil {
		return nil, fmt.Errorf("API错误: %s", geminiResp.Error.Message)
	}

	return &geminiResp, nil
}

// ==================== OpenAI ====================

// generateOpenAIImage 调用 OpenAI 图片接口，直接返回托管URL
func (s *DesignService) generateOpenAIImage(ctx context.Context, prompt string) (string, error) {
	if s.Config.OpenAIAPIKey == "" {
		return "", fmt.Errorf("OpenAI API Key 未配置")
	}

	reqBody := map[string]interface{}{
		"model":           s.Config.OpenAIImageModel,
		"prompt":          prompt,
		"n":               1,
		"size":            "1024x1024",
		"quality":         "hd",
		"style":           "vivid",
		"response_format": "url",
	}

	bodyBytes, _ := json.Marshal(reqBody)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.Config.OpenAIBaseURL+"/images/generations", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.Config.OpenAIAPIKey)

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("请求失败: %v", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OpenAI API 错误 [%d]: %s", resp.StatusCode, string(respBody))
	}

	var openaiResp struct {
		Data []struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := json.Unmarshal(respBody, &openaiResp); err != nil {
		return "", fmt.Errorf("解析响应失败: %v", err)
	}
	if len(openaiResp.Data) == 0 || openaiResp.Data[0].URL == "" {
		return "", fmt.Errorf("响应中未找到图片URL")
	}

	// OpenAI 返回的图片地址数小时后失效，托管到自有存储换取持久地址
	ephemeralURL := openaiResp.Data[0].URL
	if s.Storage != nil {
		hosted, err := s.Storage.SaveFromURL(ctx, ephemeralURL, "design")
		if err != nil {
			log.Printf("[Design] 托管 OpenAI 图片失败，回退为原始地址: %v", err)
			return ephemeralURL, nil
		}
		return hosted, nil
	}

	return ephemeralURL, nil
}

// ==================== 兜底逻辑 ====================

// placeholderURL 基于提示词前缀构造确定性的占位图URL
func (s *DesignService) placeholderURL(prompt string) string {
	prefix := []rune(prompt)
	if len(prefix) > 50 {
		prefix = prefix[:50]
	}
	return fmt.Sprintf("%s?text=%s", s.Config.PlaceholderBaseURL, url.QueryEscape(string(prefix)))
}

// fallbackTitle 提示词前4个词的标题化
func fallbackTitle(prompt string) string {
	words := strings.Fields(prompt)
	if len(words) > 4 {
		words = words[:4]
	}
	for i, w := range words {
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	title := strings.Join(words, " ")
	if title == "" {
		title = "Custom Shirt"
	}
	return title
}

// ==================== 调用日志 ====================

// logCall 记录一次 AI 调用的审计日志（仓储未配置时跳过）
func (s *DesignService) logCall(ctx context.Context, jobID, callType, modelName string, start time.Time, callErr error) {
	if s.callLogRepo == nil {
		return
	}

	entry := &model.AICallLog{
		JobID:      jobID,
		CallType:   callType,
		ModelName:  modelName,
		DurationMs: time.Since(start).Milliseconds(),
		Status:     model.AICallStatusSuccess,
	}
	if callType == model.AICallTypeImage {
		entry.ImageCount = 1
		entry.CostUSD = 0.04
	} else {
		entry.CostUSD = 0.001
	}
	if callErr != nil {
		entry.Status = model.AICallStatusFailed
		entry.ErrorMsg = callErr.Error()
		entry.CostUSD = 0
	}

	if err := s.callLogRepo.Create(ctx, entry); err != nil {
		log.Printf("[Design] 记录AI调用日志失败: %v", err)
	}
}
