package model

import (
	"time"

	"github.com/google/uuid"
)

// 商品。nameは全商品で一意（ショップをまたいで）。Priceはセント単位
type Product struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	BusinessID string    `gorm:"type:uuid;uniqueIndex;not null;<-:create" json:"business_id"`
	Name       string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Price      int64     `gorm:"not null" json:"price"`
	ShopID     *int64    `gorm:"index" json:"shop_id"`
	Shop       *Shop     `gorm:"foreignKey:ShopID" json:"-"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// NewProduct は新しい商品を作る。shopがnilなら単独商品
func NewProduct(name string, price int64, shop *Shop) *Product {
	p := &Product{
		BusinessID: uuid.NewString(),
		Name:       name,
		Price:      price,
	}
	p.AttachTo(shop)
	return p
}

// 同一性はBusinessIDだけで判定
func (p *Product) Equal(other *Product) bool {
	return other != nil && p.BusinessID == other.BusinessID
}

// AttachTo はショップの付け替えを両側まとめて行う。
// 別ショップに付いていた場合はまずそちらのリストから外す。
// 同じショップへの再attachはno-op相当。
func (p *Product) AttachTo(s *Shop) {
	if p.Shop != nil && !p.Shop.Equal(s) {
		p.Shop.dropFromList(p)
	}

	p.Shop = s
	if s == nil {
		p.ShopID = nil
		return
	}

	id := s.ID
	p.ShopID = &id
	if !s.Contains(p) {
		s.Products = append(s.Products, p)
	}
}

// Detach はショップ参照を外して単独商品にする
func (p *Product) Detach() {
	p.AttachTo(nil)
}

// WithUpdatedValues は同一性（ID/BusinessID）とショップ関連を保ったまま、
// name/priceを差し替えた新しい論理バージョンを返す。部分更新はしない
func (p *Product) WithUpdatedValues(name string, price int64) *Product {
	return &Product{
		ID:         p.ID,
		BusinessID: p.BusinessID,
		Name:       name,
		Price:      price,
		ShopID:     p.ShopID,
		Shop:       p.Shop,
		CreatedAt:  p.CreatedAt,
	}
}
