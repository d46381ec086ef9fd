package service

import (
	"context"
	"fmt"
	"time"

	"shirt_sh_v1_202608/internal/api/dto"
)

// ==================== 印刷常量 ====================

// 固定的正面居中印刷参数
const (
	printPosition = "front"
	printX        = 0.5
	printY        = 0.5
	printScale    = 1.0
	printAngle    = 0

	// 标准物流
	shippingMethodStandard = 1
)

// ==================== 依赖接口 ====================

// PrintifyGateway 履约网关（由 PrintifyClient 实现，测试可替身）
type PrintifyGateway interface {
	UploadImage(ctx context.Context, req *dto.UploadImageRequest) (*dto.PrintifyUpload, error)
	CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (*dto.PrintifyProduct, error)
	PublishProduct(ctx context.Context, productID string) error
	CreateOrder(ctx context.Context, req *dto.CreateOrderRequest) (*dto.PrintifyOrder, error)
	SubmitOrder(ctx context.Context, orderID string) error
}

var _ PrintifyGateway = (*PrintifyClient)(nil)

// ==================== FulfillmentService ====================

// FulfillmentService 履约提交服务
type FulfillmentService struct {
	printify PrintifyGateway
	resolver *VariantResolver
}

// NewFulfillmentService 创建履约服务
func NewFulfillmentService(printify PrintifyGateway, resolver *VariantResolver) *FulfillmentService {
	return &FulfillmentService{
		printify: printify,
		resolver: resolver,
	}
}

// ==================== 直接模式 ====================

// SubmitDirect 直接下单：不创建商品，单次调用完成建单+提交生产
// 任一步失败整体中止；Printify 侧已产生的副作用不做回滚
func (s *FulfillmentService) SubmitDirect(ctx context.Context, imageURL string, variantID, quantity int, addr *dto.AddressTo) (*dto.PrintifyOrder, error) {
	// 1. 上传设计图（直接模式也必须：Printify 只接受自家托管的资源）
	upload, err := s.printify.UploadImage(ctx, &dto.UploadImageRequest{
		FileName: "shirt-design.png",
		URL:      imageURL,
	})
	if err != nil {
		return nil, err
	}

	// 2. 单行订单，内嵌印刷位置与变体
	lineItem := dto.OrderLineItem{
		BlueprintID:     BlueprintID,
		PrintProviderID: PrintProviderID,
		VariantID:       variantID,
		Quantity:        quantity,
		PrintAreas:      map[string]string{printPosition: upload.ID},
		PrintDetails: &dto.PrintPlacement{
			Placement: printPosition,
			X:         printX,
			Y:         printY,
			Scale:     printScale,
			Angle:     printAngle,
		},
	}

	// 3. 建单+提交生产，一次请求
	order, err := s.printify.CreateOrder(ctx, &dto.CreateOrderRequest{
		ExternalID:               newExternalID(),
		LineItems:                []dto.OrderLineItem{lineItem},
		ShippingMethod:           shippingMethodStandard,
		SendShippingNotification: true,
		SendToProduction:         true,
		AddressTo:                toPrintifyAddress(addr),
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// ==================== 传统模式 ====================

// SubmitViaProduct 传统下单：创建可复用商品 -> 发布 -> 对首个变体下单 -> 提交生产
// 商品是独立于订单的持久产物，后续可复用
func (s *FulfillmentService) SubmitViaProduct(ctx context.Context, imageURL, title, description string, quantity int, addr *dto.AddressTo) (*dto.PrintifyOrder, string, error) {
	// 1. 上传设计图
	upload, err := s.printify.UploadImage(ctx, &dto.UploadImageRequest{
		FileName: "shirt-design.png",
		URL:      imageURL,
	})
	if err != nil {
		return nil, "", err
	}

	// 2. 创建覆盖全部变体的商品
	variantIDs := s.resolver.AllVariantIDs()
	product, err := s.printify.CreateProduct(ctx, &dto.CreateProductRequest{
		Title:           title,
		Description:     description,
		BlueprintID:     BlueprintID,
		PrintProviderID: PrintProviderID,
		Variants:        s.resolver.AllVariantSpecs(),
		PrintAreas: []dto.PrintArea{
			{
				VariantIDs: variantIDs,
				Placeholders: []dto.Placeholder{
					{
						Position: printPosition,
						Images: []dto.PlacedImage{
							{ID: upload.ID, X: printX, Y: printY, Scale: printScale, Angle: printAngle},
						},
					},
				},
			},
		},
	})
	if err != nil {
		return nil, "", err
	}

	// 3. 发布商品（未发布不可下单）
	if err := s.printify.PublishProduct(ctx, product.ID); err != nil {
		return nil, "", err
	}

	// 4. 对首个变体下单
	if len(product.Variants) == 0 {
		return nil, "", fmt.Errorf("商品 %s 没有可用变体", product.ID)
	}
	order, err := s.printify.CreateOrder(ctx, &dto.CreateOrderRequest{
		ExternalID: newExternalID(),
		LineItems: []dto.OrderLineItem{
			{
				ProductID: product.ID,
				VariantID: product.Variants[0].ID,
				Quantity:  quantity,
			},
		},
		ShippingMethod:           shippingMethodStandard,
		SendShippingNotification: true,
		AddressTo:                toPrintifyAddress(addr),
	})
	if err != nil {
		return nil, "", err
	}

	// 5. 单独提交生产
	if err := s.printify.SubmitOrder(ctx, order.ID); err != nil {
		return nil, "", err
	}

	return order, product.ID, nil
}

// ==================== 工具函数 ====================

// toPrintifyAddress 收货地址转 Printify 格式
func toPrintifyAddress(addr *dto.AddressTo) dto.PrintifyAddress {
	return dto.PrintifyAddress{
		FirstName: addr.FirstName,
		LastName:  addr.LastName,
		Email:     addr.Email,
		Phone:     addr.Phone,
		Country:   addr.Country,
		Region:    addr.Region,
		Address1:  addr.Address1,
		Address2:  addr.Address2,
		City:      addr.City,
		Zip:       addr.Zip,
	}
}

func newExternalID() string {
	return fmt.Sprintf("shirt-%d", time.Now().UnixNano())
}
