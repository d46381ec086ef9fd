package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"shirt_sh_v1_202608/internal/api/dto"
)

// fakeGateway Printify 网关替身，记录调用序列
type fakeGateway struct {
	uploadErr  error
	productErr error
	publishErr error
	orderErr   error
	submitErr  error

	uploads  []*dto.UploadImageRequest
	products []*dto.CreateProductRequest
	orders   []*dto.CreateOrderRequest
	submits  []string
}

func (f *fakeGateway) UploadImage(ctx context.Context, req *dto.UploadImageRequest) (*dto.PrintifyUpload, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	f.uploads = append(f.uploads, req)
	return &dto.PrintifyUpload{ID: "upload-1", FileName: req.FileName}, nil
}

func (f *fakeGateway) CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (*dto.PrintifyProduct, error) {
	if f.productErr != nil {
		return nil, f.productErr
	}
	f.products = append(f.products, req)
	variants := make([]dto.PrintifyProductVariant, len(req.Variants))
	for i, v := range req.Variants {
		variants[i] = dto.PrintifyProductVariant{ID: v.ID, Price: v.Price, IsEnabled: v.IsEnabled}
	}
	return &dto.PrintifyProduct{ID: "product-1", Title: req.Title, Variants: variants}, nil
}

func (f *fakeGateway) PublishProduct(ctx context.Context, productID string) error {
	return f.publishErr
}

func (f *fakeGateway) CreateOrder(ctx context.Context, req *dto.CreateOrderRequest) (*dto.PrintifyOrder, error) {
	if f.orderErr != nil {
		return nil, f.orderErr
	}
	f.orders = append(f.orders, req)
	return &dto.PrintifyOrder{
		ID:         fmt.Sprintf("order-%d", len(f.orders)),
		ExternalID: req.ExternalID,
		Status:     "pending",
		LineItems:  req.LineItems,
	}, nil
}

func (f *fakeGateway) SubmitOrder(ctx context.Context, orderID string) error {
	if f.submitErr != nil {
		return f.submitErr
	}
	f.submits = append(f.submits, orderID)
	return nil
}

func testAddress() *dto.AddressTo {
	return &dto.AddressTo{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Country:   "US",
		Region:    "CA",
		Address1:  "1 Market St",
		City:      "San Francisco",
		Zip:       "94105",
	}
}

func TestFulfillmentService_SubmitDirect(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewFulfillmentService(gw, NewVariantResolver(nil))

	order, err := svc.SubmitDirect(context.Background(), "https://cdn.example.com/design.png", 12101, 1, testAddress())
	if err != nil {
		t.Fatalf("SubmitDirect() error = %v", err)
	}

	// 上传一次，下单一次，不创建商品、不单独提交生产
	if len(gw.uploads) != 1 {
		t.Errorf("上传次数 = %d, want 1", len(gw.uploads))
	}
	if len(gw.orders) != 1 {
		t.Fatalf("下单次数 = %d, want 1", len(gw.orders))
	}
	if len(gw.products) != 0 {
		t.Errorf("直接模式不应创建商品: %d", len(gw.products))
	}
	if len(gw.submits) != 0 {
		t.Errorf("直接模式不应单独调用提交生产: %d", len(gw.submits))
	}

	req := gw.orders[0]
	if !req.SendToProduction {
		t.Error("直接模式应在建单时提交生产")
	}
	if len(req.LineItems) != 1 {
		t.Fatalf("订单行数 = %d, want 1", len(req.LineItems))
	}

	item := req.LineItems[0]
	if item.VariantID != 12101 {
		t.Errorf("变体ID = %d, want 12101", item.VariantID)
	}
	if item.BlueprintID != BlueprintID || item.PrintProviderID != PrintProviderID {
		t.Errorf("蓝图/供应商 = %d/%d, want %d/%d", item.BlueprintID, item.PrintProviderID, BlueprintID, PrintProviderID)
	}
	if item.PrintAreas["front"] != "upload-1" {
		t.Errorf("印刷区应引用上传资源: %v", item.PrintAreas)
	}
	if item.PrintDetails == nil || item.PrintDetails.X != 0.5 || item.PrintDetails.Y != 0.5 || item.PrintDetails.Scale != 1.0 {
		t.Errorf("印刷位置参数不正确: %+v", item.PrintDetails)
	}

	if order.ID == "" {
		t.Error("订单ID不应为空")
	}
	if !strings.HasPrefix(req.ExternalID, "shirt-") {
		t.Errorf("外部单号格式不正确: %s", req.ExternalID)
	}
}

func TestFulfillmentService_SubmitDirect_UploadFails(t *testing.T) {
	gw := &fakeGateway{uploadErr: fmt.Errorf("上传设计图失败: 资源不可达")}
	svc := NewFulfillmentService(gw, NewVariantResolver(nil))

	_, err := svc.SubmitDirect(context.Background(), "https://bad.example.com/x.png", 12101, 1, testAddress())
	if err == nil {
		t.Fatal("上传失败应中止整个流程")
	}
	if !strings.Contains(err.Error(), "上传设计图失败") {
		t.Errorf("错误应携带上传失败信息: %v", err)
	}
	if len(gw.orders) != 0 {
		t.Errorf("上传失败后不应下单: %d", len(gw.orders))
	}
}

func TestFulfillmentService_SubmitViaProduct(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewFulfillmentService(gw, NewVariantResolver(nil))

	order, productID, err := svc.SubmitViaProduct(
		context.Background(),
		"https://cdn.example.com/design.png",
		"Falcon Sunrise Tee", "a falcon at sunrise",
		1, testAddress(),
	)
	if err != nil {
		t.Fatalf("SubmitViaProduct() error = %v", err)
	}

	// 完整序列：上传 -> 创建商品 -> 发布 -> 下单 -> 提交生产
	if len(gw.uploads) != 1 || len(gw.products) != 1 || len(gw.orders) != 1 || len(gw.submits) != 1 {
		t.Fatalf("调用序列不完整: uploads=%d products=%d orders=%d submits=%d",
			len(gw.uploads), len(gw.products), len(gw.orders), len(gw.submits))
	}

	if productID != "product-1" {
		t.Errorf("商品ID = %s, want product-1", productID)
	}

	product := gw.products[0]
	if product.Title != "Falcon Sunrise Tee" {
		t.Errorf("商品标题 = %s", product.Title)
	}
	if len(product.Variants) != 16 {
		t.Errorf("商品应覆盖全部16个变体: %d", len(product.Variants))
	}
	if len(product.PrintAreas) != 1 || len(product.PrintAreas[0].VariantIDs) != 16 {
		t.Error("印刷区域应覆盖全部变体")
	}

	req := gw.orders[0]
	if req.SendToProduction {
		t.Error("传统模式建单时不应直接提交生产")
	}
	if req.LineItems[0].ProductID != "product-1" {
		t.Errorf("订单行应引用商品: %+v", req.LineItems[0])
	}
	if gw.submits[0] != order.ID {
		t.Errorf("提交生产的订单ID不匹配: %s != %s", gw.submits[0], order.ID)
	}
}

func TestFulfillmentService_SubmitViaProduct_PublishFails(t *testing.T) {
	gw := &fakeGateway{publishErr: fmt.Errorf("Printify API 错误 [423]: shop locked")}
	svc := NewFulfillmentService(gw, NewVariantResolver(nil))

	_, _, err := svc.SubmitViaProduct(context.Background(), "https://cdn.example.com/x.png", "T", "D", 1, testAddress())
	if err == nil {
		t.Fatal("发布失败应中止")
	}
	if len(gw.orders) != 0 {
		t.Errorf("发布失败后不应下单: %d", len(gw.orders))
	}
}
