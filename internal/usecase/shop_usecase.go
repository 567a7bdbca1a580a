package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type ShopUsecase struct {
	shops    repo.ShopRepository
	products repo.ProductRepository
	tx       repo.TransactionManager
	guard    Guard
	productU *ProductUsecase
}

// DI
func NewShopUsecase(
	shops repo.ShopRepository,
	products repo.ProductRepository,
	tx repo.TransactionManager,
	guard Guard,
	productU *ProductUsecase,
) *ShopUsecase {
	return &ShopUsecase{
		shops:    shops,
		products: products,
		tx:       tx,
		guard:    guard,
		productU: productU,
	}
}

// ショップを作成する。名前の重複はここで弾く（Guardは形式チェックのみ）
func (u *ShopUsecase) CreateShop(ctx context.Context, in ShopInput) (*model.Shop, error) {
	if err := u.guard.ValidateShop(in); err != nil {
		return nil, guardError(err)
	}

	name := strings.TrimSpace(in.ShopName)

	var created *model.Shop
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		existing, err := r.Shops().FindByName(ctx, name)
		if err != nil && err != repo.ErrNotFound {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if existing != nil {
			return NewHTTPError(http.StatusConflict, fmt.Sprintf("shop name '%s' already used", name))
		}

		s := model.NewShop(name)
		if err := r.Shops().Create(ctx, s); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		created = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// IDでショップを取得（商品リスト付き）
func (u *ShopUsecase) GetShop(ctx context.Context, shopID int64) (*model.Shop, error) {
	s, err := u.shops.FindByID(ctx, shopID)
	if err == repo.ErrNotFound {
		return nil, NewHTTPError(http.StatusNotFound, fmt.Sprintf("shop %d not found", shopID))
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return s, nil
}

// ショップに新しい商品を追加する
func (u *ShopUsecase) AddProductToShop(ctx context.Context, shopID int64, in ProductInput) (*model.Product, error) {
	var created *model.Product
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		shop, err := r.Shops().FindByID(ctx, shopID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, fmt.Sprintf("shop %d not found", shopID))
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// 新規作成なのでexcludeIDはnil
		if err := u.guard.ValidateProduct(ctx, in, nil); err != nil {
			return guardError(err)
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

// ショップから商品を外す。商品は削除せず単独商品として残す
func (u *ShopUsecase) RemoveProductFromShop(ctx context.Context, shopID int64, productID int64) error {
	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		shop, err := r.Shops().FindByID(ctx, shopID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, fmt.Sprintf("shop %d not found", shopID))
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		p, err := r.Products().FindByID(ctx, productID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, fmt.Sprintf("product %d not found", productID))
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		member := shop.FindProduct(p)
		if member == nil {
			return NewHTTPError(http.StatusConflict, "product does not belong to this shop")
		}

		shop.RemoveProduct(member)
		if err := r.Products().Update(ctx, member); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

// ショップ内の商品を更新する。所属チェックの後はProductUsecaseに委譲
func (u *ShopUsecase) UpdateProductInShop(ctx context.Context, shopID int64, productID int64, in ProductInput) (*model.Product, error) {
	shop, err := u.shops.FindByID(ctx, shopID)
	if err == repo.ErrNotFound {
		return nil, NewHTTPError(http.StatusNotFound, fmt.Sprintf("shop %d not found", shopID))
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	p, err := u.products.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return nil, NewHTTPError(http.StatusNotFound, fmt.Sprintf("product %d not found", productID))
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if shop.FindProduct(p) == nil {
		return nil, NewHTTPError(http.StatusConflict, "product does not belong to this shop")
	}

	return u.productU.UpdateProduct(ctx, productID, in)
}

// ショップ配下の商品一覧
func (u *ShopUsecase) ListProducts(ctx context.Context, shopID int64) ([]*model.Product, error) {
	_, err := u.shops.FindByID(ctx, shopID)
	if err == repo.ErrNotFound {
		return nil, NewHTTPError(http.StatusNotFound, fmt.Sprintf("shop %d not found", shopID))
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	products, err := u.products.ListByShop(ctx, shopID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return products, nil
}

// ショップを削除する。所属商品は先にdetachして残す（商品は消さない）
func (u *ShopUsecase) DeleteShop(ctx context.Context, shopID int64) error {
	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		shop, err := r.Shops().FindByID(ctx, shopID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, fmt.Sprintf("shop %d not found", shopID))
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// Detachはスライスを縮めるのでスナップショットを回す
		members := append([]*model.Product(nil), shop.Products...)
		for _, p := range members {
			p.Detach()
			if err := r.Products().Update(ctx, p); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		if err := r.Shops().Delete(ctx, shop.ID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, fmt.Sprintf("shop %d not found", shopID))
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}
