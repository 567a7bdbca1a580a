package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// usecaseがGuard Interfaceに依存する約束。
// 実装はinternal/validator
type Guard interface {
	// ショップ入力の形式チェックのみ。名前の重複チェックはShopUsecase側
	ValidateShop(req ShopInput) error

	// 商品入力の形式チェック＋名前の重複チェック。
	// excludeIDは更新対象自身のID（新規作成ならnil）
	ValidateProduct(ctx context.Context, req ProductInput, excludeID *int64) error
}

// POST/PUT 商品の入力DTO
type ProductInput struct {
	Name  string
	Price int64
}

// POST /api/shop の入力DTO
type ShopInput struct {
	ShopName string
}

type ProductUsecase struct {
	products repo.ProductRepository
	shops    repo.ShopRepository
	tx       repo.TransactionManager
	guard    Guard
}

// DI
func NewProductUsecase(
	products repo.ProductRepository,
	shops repo.ShopRepository,
	tx repo.TransactionManager,
	guard Guard,
) *ProductUsecase {
	return &ProductUsecase{
		products: products,
		shops:    shops,
		tx:       tx,
		guard:    guard,
	}
}

// 商品を作成する。shopIDがあればそのショップに所属させ、なければ単独商品
func (u *ProductUsecase) CreateProduct(ctx context.Context, in ProductInput, shopID *int64) (*model.Product, error) {
	if err := u.guard.ValidateProduct(ctx, in, nil); err != nil {
		return nil, guardError(err)
	}

	var created *model.Product
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var shop *model.Shop
		if shopID != nil {
			s, err := r.Shops().FindByID(ctx, *shopID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, fmt.Sprintf("shop %d not found", *shopID))
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			shop = s
		}

		p := model.NewProduct(strings.TrimSpace(in.Name), in.Price, shop)
		if err := r.Products().Create(ctx, p); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// IDで商品を取得
func (u *ProductUsecase) GetProduct(ctx context.Context, productID int64) (*model.Product, error) {
	p, err := u.products.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return nil, NewHTTPError(http.StatusNotFound, fmt.Sprintf("product %d not found", productID))
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// 商品を更新する。同一性（BusinessID）とショップ所属は保ったまま、
// name/priceを丸ごと差し替える
func (u *ProductUsecase) UpdateProduct(ctx context.Context, productID int64, in ProductInput) (*model.Product, error) {
	var updated *model.Product
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		existing, err := r.Products().FindByID(ctx, productID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, fmt.Sprintf("product %d not found", productID))
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// 自分自身の名前はそのまま使ってよい
		if err := u.guard.ValidateProduct(ctx, in, &productID); err != nil {
			return guardError(err)
		}

		next := existing.WithUpdatedValues(strings.TrimSpace(in.Name), in.Price)
		if err := r.Products().Update(ctx, next); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, fmt.Sprintf("product %d not found", productID))
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// 商品を削除する。ショップに所属している間は削除不可（先にdetachする）
func (u *ProductUsecase) DeleteProduct(ctx context.Context, productID int64) error {
	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Products().FindByID(ctx, productID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, fmt.Sprintf("product %d not found", productID))
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if p.ShopID != nil {
			return NewHTTPError(http.StatusConflict, "product belongs to a shop and can only be deleted via the shop")
		}

		if err := r.Products().Delete(ctx, p.ID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, fmt.Sprintf("product %d not found", productID))
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}
