package repository

import (
	"app/internal/domain/model"
	"context"
)

// 商品の永続化（保存・取得・削除）だけを約束。
type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	FindByName(ctx context.Context, name string) (*model.Product, error)
	ListByShop(ctx context.Context, shopID int64) ([]*model.Product, error)

	Create(ctx context.Context, p *model.Product) error
	// Update はname/price/shop_idを丸ごと書き換える（shop_idのNULL化も含む）
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id int64) error
}
