package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// ショップの永続化（保存・取得・削除）だけを約束。
type ShopRepository interface {
	// FindByID は商品リストも一緒にロードする
	FindByID(ctx context.Context, id int64) (*model.Shop, error)
	FindByName(ctx context.Context, name string) (*model.Shop, error)

	Create(ctx context.Context, s *model.Shop) error
	Delete(ctx context.Context, id int64) error
}
