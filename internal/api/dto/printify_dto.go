package dto

// ==================== 地址 ====================

// PrintifyAddress Printify 订单地址格式
type PrintifyAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Country   string `json:"country"`
	Region    string `json:"region"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2"`
	City      string `json:"city"`
	Zip       string `json:"zip"`
}

// ==================== 图片上传 ====================

// UploadImageRequest 上传设计图请求
// URL 与 Contents 二选一：URL 让 Printify 自行拉取，Contents 为 base64 内容
type UploadImageRequest struct {
	FileName string `json:"file_name"`
	URL      string `json:"url,omitempty"`
	Contents string `json:"contents,omitempty"`
}

// PrintifyUpload 上传结果
type PrintifyUpload struct {
	ID         string `json:"id"`
	FileName   string `json:"file_name"`
	Height     int    `json:"height,omitempty"`
	Width      int    `json:"width,omitempty"`
	PreviewURL string `json:"preview_url,omitempty"`
}

// ==================== 商品 ====================

// ProductVariantSpec 创建商品时的变体定义
type ProductVariantSpec struct {
	ID        int  `json:"id"`
	Price     int  `json:"price"` // 美分
	IsEnabled bool `json:"is_enabled"`
}

// PlacedImage 印刷区中的图片及位置参数
type PlacedImage struct {
	ID    string  `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Scale float64 `json:"scale"`
	Angle int     `json:"angle"`
}

// Placeholder 印刷位
type Placeholder struct {
	Position string        `json:"position"` // front / back
	Images   []PlacedImage `json:"images"`
}

// PrintArea 印刷区域
type PrintArea struct {
	VariantIDs   []int         `json:"variant_ids"`
	Placeholders []Placeholder `json:"placeholders"`
}

// CreateProductRequest 创建商品请求
type CreateProductRequest struct {
	Title           string               `json:"title"`
	Description     string               `json:"description"`
	BlueprintID     int                  `json:"blueprint_id"`
	PrintProviderID int                  `json:"print_provider_id"`
	Variants        []ProductVariantSpec `json:"variants"`
	PrintAreas      []PrintArea          `json:"print_areas"`
}

// PrintifyProductVariant 商品变体
type PrintifyProductVariant struct {
	ID        int    `json:"id"`
	SKU       string `json:"sku"`
	Price     int    `json:"price"`
	IsEnabled bool   `json:"is_enabled"`
}

// PrintifyProduct 商品
type PrintifyProduct struct {
	ID              string                   `json:"id"`
	Title           string                   `json:"title"`
	Description     string                   `json:"description"`
	BlueprintID     int                      `json:"blueprint_id"`
	PrintProviderID int                      `json:"print_provider_id"`
	Variants        []PrintifyProductVariant `json:"variants"`
}

// ==================== 订单 ====================

// PrintPlacement 直接下单时的印刷位置参数
type PrintPlacement struct {
	Placement string  `json:"placement"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Scale     float64 `json:"scale"`
	Angle     int     `json:"angle"`
}

// OrderLineItem 订单行
// 传统模式填 ProductID；直接模式填 BlueprintID/PrintProviderID/PrintAreas
type OrderLineItem struct {
	ProductID       string            `json:"product_id,omitempty"`
	BlueprintID     int               `json:"blueprint_id,omitempty"`
	PrintProviderID int               `json:"print_provider_id,omitempty"`
	VariantID       int               `json:"variant_id"`
	Quantity        int               `json:"quantity"`
	Price           int               `json:"price,omitempty"`
	PrintAreas      map[string]string `json:"print_areas,omitempty"` // position -> 图片资源ID
	PrintDetails    *PrintPlacement   `json:"print_details,omitempty"`
}

// CreateOrderRequest 创建订单请求
type CreateOrderRequest struct {
	ExternalID               string          `json:"external_id"`
	LineItems                []OrderLineItem `json:"line_items"`
	ShippingMethod           int             `json:"shipping_method"`
	SendShippingNotification bool            `json:"send_shipping_notification"`
	SendToProduction         bool            `json:"send_to_production,omitempty"`
	AddressTo                PrintifyAddress `json:"address_to"`
}

// PrintifyShipment 订单物流信息
type PrintifyShipment struct {
	Carrier        string `json:"carrier"`
	TrackingNumber string `json:"tracking_number,omitempty"`
	TrackingURL    string `json:"tracking_url,omitempty"`
}

// PrintifyOrder 订单
type PrintifyOrder struct {
	ID         string            `json:"id"`
	ExternalID string            `json:"external_id"`
	Status     string            `json:"status"` // pending/processing/shipped/delivered/cancelled
	LineItems  []OrderLineItem   `json:"line_items"`
	AddressTo  PrintifyAddress   `json:"address_to"`
	Shipment   *PrintifyShipment `json:"shipment,omitempty"`
	CreatedAt  string            `json:"created_at"`
}

// ==================== 目录查询 ====================

// CatalogVariantOptions 目录变体的规格选项
type CatalogVariantOptions struct {
	Size  string `json:"size"`
	Color string `json:"color"`
}

// CatalogVariant 目录变体
type CatalogVariant struct {
	ID      int                   `json:"id"`
	Title   string                `json:"title"`
	Options CatalogVariantOptions `json:"options"`
}

// CatalogVariantsResponse 目录变体列表响应
type CatalogVariantsResponse struct {
	ID       int              `json:"id"`
	Title    string           `json:"title"`
	Variants []CatalogVariant `json:"variants"`
}

// ==================== 错误响应 ====================

// PrintifyErrorResponse Printify 错误响应
type PrintifyErrorResponse struct {
	Status  string `json:"status,omitempty"`
	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
