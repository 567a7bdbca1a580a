package model

import (
	"time"

	"github.com/google/uuid"
)

// ショップ。nameは全店舗で一意
type Shop struct {
	ID         int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	BusinessID string     `gorm:"type:uuid;uniqueIndex;not null;<-:create" json:"business_id"`
	Name       string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"shop_name"`
	Products   []*Product `gorm:"foreignKey:ShopID" json:"products"`
	CreatedAt  time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// NewShop は空の商品リストを持つ新しいショップを作る。
// BusinessIDは生成後に変更不可。
func NewShop(name string) *Shop {
	return &Shop{
		BusinessID: uuid.NewString(),
		Name:       name,
		Products:   []*Product{},
	}
}

// 同一性はBusinessIDだけで判定（DBのIDや他フィールドは見ない）
func (s *Shop) Equal(other *Shop) bool {
	return other != nil && s.BusinessID == other.BusinessID
}

// Contains は p が既にメンバーかどうか（同一性で判定）
func (s *Shop) Contains(p *Product) bool {
	return s.FindProduct(p) != nil
}

// FindProduct はリスト内の同一商品（BusinessID一致）を返す。無ければnil
func (s *Shop) FindProduct(p *Product) *Product {
	if p == nil {
		return nil
	}
	for _, member := range s.Products {
		if member.Equal(p) {
			return member
		}
	}
	return nil
}

// AddProduct は商品を追加する。既にメンバーならno-op。
// 逆側（商品のshop参照）も必ず同期する。
func (s *Shop) AddProduct(p *Product) {
	if p == nil || s.Contains(p) {
		return
	}
	s.Products = append(s.Products, p)
	if p.Shop == nil || !p.Shop.Equal(s) {
		p.AttachTo(s)
	}
}

// RemoveProduct はリストから外し、商品側の参照もここを指していればクリアする
func (s *Shop) RemoveProduct(p *Product) {
	if p == nil {
		return
	}
	s.dropFromList(p)
	if p.Shop != nil && p.Shop.Equal(s) {
		p.Shop = nil
		p.ShopID = nil
	}
}

func (s *Shop) dropFromList(p *Product) {
	for i, member := range s.Products {
		if member.Equal(p) {
			s.Products = append(s.Products[:i], s.Products[i+1:]...)
			return
		}
	}
}
