package validator

import (
	"context"
	"fmt"
	"strings"

	"app/internal/repository"
	"app/internal/usecase"
)

// 名前の最大長（ショップ・商品とも）
const maxNameLength = 50

// 価格の範囲（セント単位、両端含む）
const (
	minPrice = 0
	maxPrice = 500000
)

type guard struct {
	products repository.ProductRepository
}

// Usecaseは interface を依存注入
func NewGuard(products repository.ProductRepository) usecase.Guard {
	return &guard{products: products}
}

// 商品入力を検証する。形式チェックに加えて名前の重複もここで弾く。
// excludeIDが自分のIDなら同じ名前のまま更新してよい
func (g *guard) ValidateProduct(ctx context.Context, req usecase.ProductInput, excludeID *int64) error {
	name := strings.TrimSpace(req.Name)

	// 必須チェック
	if name == "" {
		return fmt.Errorf("%w: name required", usecase.ErrInvalidInput)
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", usecase.ErrInvalidInput, maxNameLength)
	}

	// 価格範囲
	if req.Price < minPrice {
		return fmt.Errorf("%w: price must be >= %d", usecase.ErrInvalidInput, minPrice)
	}
	if req.Price > maxPrice {
		return fmt.Errorf("%w: price must be <= %d", usecase.ErrInvalidInput, maxPrice)
	}

	// 別の商品が同じ名前を持っていないか（DBが必要）
	existing, err := g.products.FindByName(ctx, name)
	if err == repository.ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	if excludeID == nil || existing.ID != *excludeID {
		return fmt.Errorf("%w: '%s'", usecase.ErrProductNameTaken, name)
	}
	return nil
}

// ショップ入力を検証する。形式チェックのみ。
// 名前の重複チェックはShopUsecase側にある（意図的な非対称）
func (g *guard) ValidateShop(req usecase.ShopInput) error {
	name := strings.TrimSpace(req.ShopName)

	if name == "" {
		return fmt.Errorf("%w: shop name required", usecase.ErrInvalidInput)
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("%w: shop name must be at most %d characters", usecase.ErrInvalidInput, maxNameLength)
	}
	return nil
}
