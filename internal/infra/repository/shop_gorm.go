package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ShopGormRepository struct {
	db *gorm.DB
}

// DI
func NewShopGormRepository(db *gorm.DB) *ShopGormRepository {
	return &ShopGormRepository{db: db}
}

// IDでショップを取得（商品リスト付き）
func (r *ShopGormRepository) FindByID(ctx context.Context, id int64) (*model.Shop, error) {
	var s model.Shop
	err := r.db.WithContext(ctx).Preload("Products").First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	// ロード直後に逆参照を張り直す（双方向の同期はここ1箇所）
	for _, p := range s.Products {
		p.Shop = &s
	}
	return &s, nil
}

// 名前でショップを取得（重複チェック用）
func (r *ShopGormRepository) FindByName(ctx context.Context, name string) (*model.Shop, error) {
	var s model.Shop
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ショップの作成。関連の自動保存はしない
func (r *ShopGormRepository) Create(ctx context.Context, s *model.Shop) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(s).Error
}

// ショップの削除（商品は先にdetachしておくこと）
func (r *ShopGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Shop{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
