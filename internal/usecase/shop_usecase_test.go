package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type ShopRepoMock struct{ mock.Mock }

func (m *ShopRepoMock) FindByID(ctx context.Context, id int64) (*model.Shop, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*model.Shop)
	return s, args.Error(1)
}

func (m *ShopRepoMock) FindByName(ctx context.Context, name string) (*model.Shop, error) {
	args := m.Called(ctx, name)
	s, _ := args.Get(0).(*model.Shop)
	return s, args.Error(1)
}

func (m *ShopRepoMock) Create(ctx context.Context, s *model.Shop) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *ShopRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) FindByName(ctx context.Context, name string) (*model.Product, error) {
	args := m.Called(ctx, name)
	p, _ := args.Get(0).(*model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) ListByShop(ctx context.Context, shopID int64) ([]*model.Product, error) {
	args := m.Called(ctx, shopID)
	products, _ := args.Get(0).([]*model.Product)
	return products, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p *model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) Update(ctx context.Context, p *model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WithinTxは同じmockをそのまま渡すだけ（rollbackは見ない）
type txReposStub struct {
	shops    repo.ShopRepository
	products repo.ProductRepository
}

func (s *txReposStub) Shops() repo.ShopRepository       { return s.shops }
func (s *txReposStub) Products() repo.ProductRepository { return s.products }

type txManagerStub struct {
	repos txReposStub
}

func (m *txManagerStub) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(&m.repos)
}

// =====================
// Helpers
// =====================

type shopFixture struct {
	shops    *ShopRepoMock
	products *ProductRepoMock
	uc       *usecase.ShopUsecase
}

func newShopFixture() *shopFixture {
	shops := new(ShopRepoMock)
	products := new(ProductRepoMock)
	tx := &txManagerStub{repos: txReposStub{shops: shops, products: products}}
	guard := validator.NewGuard(products)
	productUC := usecase.NewProductUsecase(products, shops, tx, guard)

	return &shopFixture{
		shops:    shops,
		products: products,
		uc:       usecase.NewShopUsecase(shops, products, tx, guard, productUC),
	}
}

func assertErrStatus(t *testing.T, err error, status int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with status %d, got nil", status)
	}
	he, ok := usecase.AsHTTPError(err)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if he.Status != status {
		t.Fatalf("expected status %d, got %d (%s)", status, he.Status, he.Message)
	}
}

// メンバー商品入りのショップと、repoが返す「別インスタンス」のロード結果を用意
func shopWithMember(shopID int64, productID int64, name string, price int64) (*model.Shop, *model.Product) {
	s := model.NewShop("Armory")
	s.ID = shopID
	member := model.NewProduct(name, price, s)
	member.ID = productID

	loaded := &model.Product{
		ID:         member.ID,
		BusinessID: member.BusinessID,
		Name:       member.Name,
		Price:      member.Price,
		ShopID:     member.ShopID,
	}
	return s, loaded
}

// =====================
// CreateShop
// =====================

func TestShopUsecase_CreateShop_Success(t *testing.T) {
	f := newShopFixture()
	ctx := context.Background()

	f.shops.On("FindByName", mock.Anything, "Armory").Return(nil, repo.ErrNotFound)
	f.shops.On("Create", mock.Anything, mock.MatchedBy(func(s *model.Shop) bool {
		return s.Name == "Armory" && s.BusinessID != "" && len(s.Products) == 0
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Shop).ID = 1
	}).Return(nil)

	s, err := f.uc.CreateShop(ctx, usecase.ShopInput{ShopName: " Armory "})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), s.ID)
	assert.Equal(t, "Armory", s.Name)
	assert.NotEmpty(t, s.BusinessID)
	assert.Empty(t, s.Products)

	f.shops.AssertExpectations(t)
}

func TestShopUsecase_CreateShop_DuplicateName(t *testing.T) {
	f := newShopFixture()

	existing := model.NewShop("Armory")
	existing.ID = 1
	f.shops.On("FindByName", mock.Anything, "Armory").Return(existing, nil)

	_, err := f.uc.CreateShop(context.Background(), usecase.ShopInput{ShopName: "Armory"})
	assertErrStatus(t, err, http.StatusConflict)

	f.shops.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestShopUsecase_CreateShop_InvalidName(t *testing.T) {
	f := newShopFixture()

	_, err := f.uc.CreateShop(context.Background(), usecase.ShopInput{ShopName: "   "})
	assertErrStatus(t, err, http.StatusBadRequest)

	f.shops.AssertNotCalled(t, "FindByName", mock.Anything, mock.Anything)
}

// =====================
// GetShop
// =====================

func TestShopUsecase_GetShop_NotFound(t *testing.T) {
	f := newShopFixture()

	f.shops.On("FindByID", mock.Anything, int64(99)).Return(nil, repo.ErrNotFound)

	_, err := f.uc.GetShop(context.Background(), 99)
	assertErrStatus(t, err, http.StatusNotFound)
}

func TestShopUsecase_GetShop_Success(t *testing.T) {
	f := newShopFixture()

	s := model.NewShop("Armory")
	s.ID = 1
	f.shops.On("FindByID", mock.Anything, int64(1)).Return(s, nil)

	got, err := f.uc.GetShop(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, "Armory", got.Name)
}

// =====================
// AddProductToShop
// =====================

func TestShopUsecase_AddProductToShop_Success(t *testing.T) {
	f := newShopFixture()

	s := model.NewShop("Armory")
	s.ID = 1
	f.shops.On("FindByID", mock.Anything, int64(1)).Return(s, nil)
	f.products.On("FindByName", mock.Anything, "Sword").Return(nil, repo.ErrNotFound)
	f.products.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Product) bool {
		return p.Name == "Sword" && p.Price == 4999 && p.ShopID != nil && *p.ShopID == 1
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Product).ID = 2
	}).Return(nil)

	p, err := f.uc.AddProductToShop(context.Background(), 1, usecase.ProductInput{Name: "Sword", Price: 4999})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), p.ID)
	assert.True(t, p.Shop.Equal(s))
	assert.True(t, s.Contains(p))

	f.products.AssertExpectations(t)
}

func TestShopUsecase_AddProductToShop_ShopMissing(t *testing.T) {
	f := newShopFixture()

	f.shops.On("FindByID", mock.Anything, int64(99)).Return(nil, repo.ErrNotFound)

	_, err := f.uc.AddProductToShop(context.Background(), 99, usecase.ProductInput{Name: "Sword", Price: 4999})
	assertErrStatus(t, err, http.StatusNotFound)

	f.products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestShopUsecase_AddProductToShop_DuplicateProductName(t *testing.T) {
	f := newShopFixture()

	s := model.NewShop("Armory")
	s.ID = 1
	other := model.NewProduct("Sword", 100, nil)
	other.ID = 7

	f.shops.On("FindByID", mock.Anything, int64(1)).Return(s, nil)
	f.products.On("FindByName", mock.Anything, "Sword").Return(other, nil)

	_, err := f.uc.AddProductToShop(context.Background(), 1, usecase.ProductInput{Name: "Sword", Price: 4999})
	assertErrStatus(t, err, http.StatusConflict)

	f.products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// =====================
// RemoveProductFromShop
// =====================

func TestShopUsecase_RemoveProductFromShop_Success(t *testing.T) {
	f := newShopFixture()

	s, loaded := shopWithMember(1, 2, "Sword", 4999)
	f.shops.On("FindByID", mock.Anything, int64(1)).Return(s, nil)
	f.products.On("FindByID", mock.Anything, int64(2)).Return(loaded, nil)
	f.products.On("Update", mock.Anything, mock.MatchedBy(func(p *model.Product) bool {
		return p.ID == 2 && p.ShopID == nil
	})).Return(nil)

	err := f.uc.RemoveProductFromShop(context.Background(), 1, 2)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(s.Products))

	f.products.AssertExpectations(t)
}

func TestShopUsecase_RemoveProductFromShop_NotAMember(t *testing.T) {
	f := newShopFixture()

	s, _ := shopWithMember(1, 2, "Sword", 4999)
	stranger := model.NewProduct("Shield", 2999, nil)
	stranger.ID = 3

	f.shops.On("FindByID", mock.Anything, int64(1)).Return(s, nil)
	f.products.On("FindByID", mock.Anything, int64(3)).Return(stranger, nil)

	err := f.uc.RemoveProductFromShop(context.Background(), 1, 3)
	assertErrStatus(t, err, http.StatusConflict)

	// ショップの商品リストは変わらない
	assert.Equal(t, 1, len(s.Products))
	f.products.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestShopUsecase_RemoveProductFromShop_ProductMissing(t *testing.T) {
	f := newShopFixture()

	s, _ := shopWithMember(1, 2, "Sword", 4999)
	f.shops.On("FindByID", mock.Anything, int64(1)).Return(s, nil)
	f.products.On("FindByID", mock.Anything, int64(99)).Return(nil, repo.ErrNotFound)

	err := f.uc.RemoveProductFromShop(context.Background(), 1, 99)
	assertErrStatus(t, err, http.StatusNotFound)
}

// =====================
// UpdateProductInShop
// =====================

func TestShopUsecase_UpdateProductInShop_Success(t *testing.T) {
	f := newShopFixture()

	s, loaded := shopWithMember(1, 2, "Sword", 4999)
	f.shops.On("FindByID", mock.Anything, int64(1)).Return(s, nil)
	f.products.On("FindByID", mock.Anything, int64(2)).Return(loaded, nil)
	f.products.On("FindByName", mock.Anything, "Longsword").Return(nil, repo.ErrNotFound)
	f.products.On("Update", mock.Anything, mock.MatchedBy(func(p *model.Product) bool {
		return p.ID == 2 && p.Name == "Longsword" && p.Price == 5999 && p.ShopID != nil
	})).Return(nil)

	p, err := f.uc.UpdateProductInShop(context.Background(), 1, 2, usecase.ProductInput{Name: "Longsword", Price: 5999})
	assert.NoError(t, err)
	assert.Equal(t, "Longsword", p.Name)
	assert.Equal(t, loaded.BusinessID, p.BusinessID)

	f.products.AssertExpectations(t)
}

func TestShopUsecase_UpdateProductInShop_NotAMember(t *testing.T) {
	f := newShopFixture()

	s, _ := shopWithMember(1, 2, "Sword", 4999)
	stranger := model.NewProduct("Shield", 2999, nil)
	stranger.ID = 3

	f.shops.On("FindByID", mock.Anything, int64(1)).Return(s, nil)
	f.products.On("FindByID", mock.Anything, int64(3)).Return(stranger, nil)

	_, err := f.uc.UpdateProductInShop(context.Background(), 1, 3, usecase.ProductInput{Name: "Shield", Price: 2999})
	assertErrStatus(t, err, http.StatusConflict)

	f.products.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

// =====================
// ListProducts
// =====================

func TestShopUsecase_ListProducts_Success(t *testing.T) {
	f := newShopFixture()

	s, loaded := shopWithMember(1, 2, "Sword", 4999)
	f.shops.On("FindByID", mock.Anything, int64(1)).Return(s, nil)
	f.products.On("ListByShop", mock.Anything, int64(1)).Return([]*model.Product{loaded}, nil)

	products, err := f.uc.ListProducts(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(products))
	assert.Equal(t, "Sword", products[0].Name)
}

func TestShopUsecase_ListProducts_ShopMissing(t *testing.T) {
	f := newShopFixture()

	f.shops.On("FindByID", mock.Anything, int64(99)).Return(nil, repo.ErrNotFound)

	_, err := f.uc.ListProducts(context.Background(), 99)
	assertErrStatus(t, err, http.StatusNotFound)
}

// =====================
// DeleteShop
// =====================

// ショップ削除で商品はdetachされて生き残る
func TestShopUsecase_DeleteShop_DetachesProducts(t *testing.T) {
	f := newShopFixture()

	s := model.NewShop("Armory")
	s.ID = 1
	p1 := model.NewProduct("Sword", 4999, s)
	p1.ID = 2
	p2 := model.NewProduct("Shield", 2999, s)
	p2.ID = 3

	f.shops.On("FindByID", mock.Anything, int64(1)).Return(s, nil)
	f.products.On("Update", mock.Anything, mock.MatchedBy(func(p *model.Product) bool {
		return p.ShopID == nil
	})).Return(nil).Twice()
	f.shops.On("Delete", mock.Anything, int64(1)).Return(nil)

	err := f.uc.DeleteShop(context.Background(), 1)
	assert.NoError(t, err)
	assert.Nil(t, p1.ShopID)
	assert.Nil(t, p2.ShopID)

	f.shops.AssertExpectations(t)
	f.products.AssertExpectations(t)
}

func TestShopUsecase_DeleteShop_NotFound(t *testing.T) {
	f := newShopFixture()

	f.shops.On("FindByID", mock.Anything, int64(99)).Return(nil, repo.ErrNotFound)

	err := f.uc.DeleteShop(context.Background(), 99)
	assertErrStatus(t, err, http.StatusNotFound)

	f.shops.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
