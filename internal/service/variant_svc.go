package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"shirt_sh_v1_202608/internal/api/dto"
)

// ==================== 产品线常量 ====================

// 本系统只支持单一蓝图/供应商组合（基础款 T 恤）
const (
	BlueprintID     = 3
	PrintProviderID = 99

	// 默认变体：XL / White
	DefaultVariantID = 12127

	// 变体统一售价（美分）
	VariantPriceCents = 2500
)

// ErrVariantNotFound 无法解析出变体
var ErrVariantNotFound = errors.New("variant not found")

// ==================== 静态映射表 ====================

type variantKey struct {
	Size  string
	Color string
}

// 单一产品线的 (尺码, 颜色) -> 变体ID 固定双射
var variantTable = map[variantKey]int{
	{"S", "Black"}: 12100, {"M", "Black"}: 12101, {"L", "Black"}: 12102, {"XL", "Black"}: 12103,
	{"2XL", "Black"}: 12104, {"3XL", "Black"}: 12105, {"4XL", "Black"}: 12106, {"5XL", "Black"}: 12107,
	{"S", "White"}: 12124, {"M", "White"}: 12125, {"L", "White"}: 12126, {"XL", "White"}: 12127,
	{"2XL", "White"}: 12128, {"3XL", "White"}: 12129, {"4XL", "White"}: 12130, {"5XL", "White"}: 12131,
}

// 反查表，Describe 用
var variantReverse = func() map[int]variantKey {
	m := make(map[int]variantKey, len(variantTable))
	for k, id := range variantTable {
		m[id] = k
	}
	return m
}()

// ==================== 依赖接口 ====================

// CatalogProvider 目录查询提供者（静态表未命中时的动态兜底）
type CatalogProvider interface {
	GetBlueprintVariants(ctx context.Context, blueprintID, printProviderID int) ([]dto.CatalogVariant, error)
}

// ==================== VariantResolver ====================

// VariantResolver 变体解析器
type VariantResolver struct {
	catalog CatalogProvider

	mu       sync.RWMutex
	snapshot []dto.CatalogVariant // 目录快照，由定时任务预热
}

// NewVariantResolver 创建变体解析器
// catalog 可为 nil，此时动态兜底不可用，仅静态表生效
func NewVariantResolver(catalog CatalogProvider) *VariantResolver {
	return &VariantResolver{catalog: catalog}
}

// Resolve 解析 (尺码, 颜色) 为变体ID
// explicitVariantID > 0 时直接透传（调用方保证有效性）；
// 尺码颜色均为空时返回默认变体；静态表未命中走目录查询，仍无匹配返回 ErrVariantNotFound
func (r *VariantResolver) Resolve(ctx context.Context, size, color string, explicitVariantID int) (int, error) {
	if explicitVariantID > 0 {
		return explicitVariantID, nil
	}

	if size == "" && color == "" {
		return DefaultVariantID, nil
	}

	// 单边缺省时补默认值，保持与默认变体一致的行为
	if size == "" {
		size = "XL"
	}
	if color == "" {
		color = "White"
	}

	if id, ok := variantTable[variantKey{Size: size, Color: color}]; ok {
		return id, nil
	}

	// 静态表未命中，查目录
	return r.lookupCatalog(ctx, size, color)
}

// Describe 反查变体的尺码/颜色，仅用于展示
// 未知ID返回 Unknown/Unknown 而非报错
func (r *VariantResolver) Describe(variantID int) (size, color string) {
	if k, ok := variantReverse[variantID]; ok {
		return k.Size, k.Color
	}
	return "Unknown", "Unknown"
}

// AllVariantSpecs 产品线全部变体的创建规格（创建商品时使用），按ID升序
func (r *VariantResolver) AllVariantSpecs() []dto.ProductVariantSpec {
	specs := make([]dto.ProductVariantSpec, 0, len(variantTable))
	for _, id := range variantTable {
		specs = append(specs, dto.ProductVariantSpec{
			ID:        id,
			Price:     VariantPriceCents,
			IsEnabled: true,
		})
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].ID < specs[j].ID })
	return specs
}

// AllVariantIDs 产品线全部变体ID，按升序
func (r *VariantResolver) AllVariantIDs() []int {
	specs := r.AllVariantSpecs()
	ids := make([]int, len(specs))
	for i, s := range specs {
		ids[i] = s.ID
	}
	return ids
}

// ==================== 动态目录兜底 ====================

// RefreshCatalog 拉取目录快照（定时任务调用）
func (r *VariantResolver) RefreshCatalog(ctx context.Context) error {
	if r.catalog == nil {
		return fmt.Errorf("目录提供者未配置")
	}

	variants, err := r.catalog.GetBlueprintVariants(ctx, BlueprintID, PrintProviderID)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.snapshot = variants
	r.mu.Unlock()

	log.Printf("[Catalog] 目录快照已刷新，共 %d 个变体", len(variants))
	return nil
}

// lookupCatalog 在目录中精确匹配选项
func (r *VariantResolver) lookupCatalog(ctx context.Context, size, color string) (int, error) {
	variants := r.cachedSnapshot()

	if variants == nil {
		if r.catalog == nil {
			return 0, fmt.Errorf("%w: %s/%s", ErrVariantNotFound, size, color)
		}
		fetched, err := r.catalog.GetBlueprintVariants(ctx, BlueprintID, PrintProviderID)
		if err != nil {
			return 0, fmt.Errorf("%w: %s/%s (目录查询失败: %v)", ErrVariantNotFound, size, color, err)
		}
		variants = fetched
	}

	for _, v := range variants {
		if equalOption(v.Options.Size, size) && equalOption(v.Options.Color, color) {
			return v.ID, nil
		}
	}

	return 0, fmt.Errorf("%w: %s/%s", ErrVariantNotFound, size, color)
}

func (r *VariantResolver) cachedSnapshot() []dto.CatalogVariant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot
}

// 目录选项匹配：大小写不敏感，容忍前后空格
func equalOption(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
