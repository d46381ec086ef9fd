package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shirt_sh_v1_202608/internal/api/dto"
)

// fakeGenerator 设计生成替身
type fakeGenerator struct {
	design *GeneratedDesign
	err    error
	calls  int
}

func (f *fakeGenerator) GenerateDesign(ctx context.Context, jobID, prompt string, provider ImageProvider) (*GeneratedDesign, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.design, nil
}

// fakeFulfillment 履约替身
type fakeFulfillment struct {
	directErr  error
	productErr error

	directCalls  []fakeDirectCall
	productCalls int
}

type fakeDirectCall struct {
	ImageURL  string
	VariantID int
	Quantity  int
}

func (f *fakeFulfillment) SubmitDirect(ctx context.Context, imageURL string, variantID, quantity int, addr *dto.AddressTo) (*dto.PrintifyOrder, error) {
	if f.directErr != nil {
		return nil, f.directErr
	}
	f.directCalls = append(f.directCalls, fakeDirectCall{ImageURL: imageURL, VariantID: variantID, Quantity: quantity})
	return &dto.PrintifyOrder{ID: fmt.Sprintf("order-%d", len(f.directCalls)), Status: "pending"}, nil
}

func (f *fakeFulfillment) SubmitViaProduct(ctx context.Context, imageURL, title, description string, quantity int, addr *dto.AddressTo) (*dto.PrintifyOrder, string, error) {
	if f.productErr != nil {
		return nil, "", f.productErr
	}
	f.productCalls++
	return &dto.PrintifyOrder{ID: "order-p1", Status: "pending"}, "product-1", nil
}

func newTestWorkflow(gen *fakeGenerator, ful *fakeFulfillment, direct bool) *WorkflowService {
	return NewWorkflowService(WorkflowConfig{DirectMode: direct}, gen, ful, NewVariantResolver(nil))
}

func TestWorkflowService_Run_PromptFlow(t *testing.T) {
	gen := &fakeGenerator{design: &GeneratedDesign{
		ImageURL: "https://cdn.example.com/falcon.png",
		Title:    "Falcon Sunrise Tee",
	}}
	ful := &fakeFulfillment{}
	svc := newTestWorkflow(gen, ful, true)

	result := svc.Run(context.Background(), "job-1", &WorkflowRequest{
		Mode:      ModePromptFlow,
		Prompt:    "a majestic falcon soaring over snowy mountains",
		Size:      "M",
		Color:     "Black",
		AddressTo: testAddress(),
	})

	require.True(t, result.Success, "工作流应成功: %v", result.Err)
	assert.Equal(t, "job-1", result.JobID)
	assert.Equal(t, "https://cdn.example.com/falcon.png", result.ImageURL)
	assert.NotEmpty(t, result.OrderID)
	assert.Empty(t, result.ProductID, "直接模式不产生商品")

	require.Len(t, ful.directCalls, 1)
	assert.Equal(t, 12101, ful.directCalls[0].VariantID, "M/Black 应解析为 12101")
	assert.Equal(t, 1, ful.directCalls[0].Quantity, "默认数量为 1")
}

func TestWorkflowService_Run_GeneratorFails(t *testing.T) {
	gen := &fakeGenerator{err: fmt.Errorf("不支持的图片提供者: midjourney")}
	ful := &fakeFulfillment{}
	svc := newTestWorkflow(gen, ful, true)

	result := svc.Run(context.Background(), "job-2", &WorkflowRequest{
		Mode:      ModePromptFlow,
		Prompt:    "some design prompt here",
		AddressTo: testAddress(),
	})

	require.False(t, result.Success)
	assert.Equal(t, "job-2", result.JobID)
	assert.Error(t, result.Err)
	// 生成失败不应触发任何履约调用
	assert.Len(t, ful.directCalls, 0)
	assert.Equal(t, 0, ful.productCalls)
}

func TestWorkflowService_Run_ImageFlow(t *testing.T) {
	gen := &fakeGenerator{}
	ful := &fakeFulfillment{}
	svc := newTestWorkflow(gen, ful, true)

	result := svc.Run(context.Background(), "job-3", &WorkflowRequest{
		Mode:      ModeImageFlow,
		ImageURL:  "https://cdn.example.com/custom.png",
		AddressTo: testAddress(),
	})

	require.True(t, result.Success, "工作流应成功: %v", result.Err)
	// 自带图片不经过生成器
	assert.Equal(t, 0, gen.calls, "imageFlow 不应调用生成器")
	require.Len(t, ful.directCalls, 1)
	assert.Equal(t, "https://cdn.example.com/custom.png", ful.directCalls[0].ImageURL)
	// 未给尺码颜色，走默认变体
	assert.Equal(t, DefaultVariantID, ful.directCalls[0].VariantID)
}

func TestWorkflowService_Run_TraditionalMode(t *testing.T) {
	gen := &fakeGenerator{design: &GeneratedDesign{
		ImageURL: "https://cdn.example.com/x.png",
		Title:    "Neon Tiger",
	}}
	ful := &fakeFulfillment{}
	svc := newTestWorkflow(gen, ful, false)

	result := svc.Run(context.Background(), "job-4", &WorkflowRequest{
		Mode:      ModePromptFlow,
		Prompt:    "a neon tiger in the jungle",
		AddressTo: testAddress(),
	})

	require.True(t, result.Success, "工作流应成功: %v", result.Err)
	assert.Equal(t, "product-1", result.ProductID)
	assert.Equal(t, "order-p1", result.OrderID)
	assert.Equal(t, 1, ful.productCalls)
	assert.Len(t, ful.directCalls, 0)
}

func TestWorkflowService_Run_FulfillmentFails(t *testing.T) {
	gen := &fakeGenerator{design: &GeneratedDesign{ImageURL: "https://cdn.example.com/x.png", Title: "T"}}
	ful := &fakeFulfillment{directErr: fmt.Errorf("Printify API 错误 [400]: invalid address")}
	svc := newTestWorkflow(gen, ful, true)

	result := svc.Run(context.Background(), "job-5", &WorkflowRequest{
		Mode:      ModePromptFlow,
		Prompt:    "some design prompt here",
		AddressTo: testAddress(),
	})

	require.False(t, result.Success)
	assert.Contains(t, result.Err.Error(), "Printify API 错误")
}

func TestWorkflowService_Run_IndependentJobs(t *testing.T) {
	gen := &fakeGenerator{design: &GeneratedDesign{ImageURL: "https://cdn.example.com/x.png", Title: "T"}}
	ful := &fakeFulfillment{}
	svc := newTestWorkflow(gen, ful, true)

	req := &WorkflowRequest{
		Mode:      ModePromptFlow,
		Prompt:    "same prompt submitted twice",
		AddressTo: testAddress(),
	}

	r1 := svc.Run(context.Background(), "job-a", req)
	r2 := svc.Run(context.Background(), "job-b", req)

	require.True(t, r1.Success)
	require.True(t, r2.Success)
	// 相同输入的两次提交是两个独立任务，各自产生订单
	assert.NotEqual(t, r1.OrderID, r2.OrderID)
	assert.Len(t, ful.directCalls, 2)
}

func TestNewWorkflowService_Defaults(t *testing.T) {
	svc := NewWorkflowService(WorkflowConfig{}, &fakeGenerator{}, &fakeFulfillment{}, NewVariantResolver(nil))

	assert.Equal(t, ProviderGoogle, svc.Config.ImageProvider)
	assert.Equal(t, 1, svc.Config.Quantity)
}
