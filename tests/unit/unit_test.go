package unit

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// Repository mocks
// =====================

type AddressRepoMock struct{ mock.Mock }

func (m *AddressRepoMock) Create(ctx context.Context, address model.Address) (model.Address, error) {
	args := m.Called(ctx, address)
	a, _ := args.Get(0).(model.Address)
	return a, args.Error(1)
}

func (m *AddressRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Address, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]model.Address)
	return list, args.Error(1)
}

func (m *AddressRepoMock) FindByID(ctx context.Context, addressID int64) (model.Address, error) {
	args := m.Called(ctx, addressID)
	a, _ := args.Get(0).(model.Address)
	return a, args.Error(1)
}

func (m *AddressRepoMock) Update(ctx context.Context, address model.Address) (model.Address, error) {
	args := m.Called(ctx, address)
	a, _ := args.Get(0).(model.Address)
	return a, args.Error(1)
}

func (m *AddressRepoMock) Delete(ctx context.Context, addressID int64) error {
	args := m.Called(ctx, addressID)
	return args.Error(0)
}

func (m *AddressRepoMock) IsOwnedByUser(ctx context.Context, addressID, userID int64) (bool, error) {
	args := m.Called(ctx, addressID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *AddressRepoMock) IsReferencedByOrder(ctx context.Context, addressID int64) (bool, error) {
	args := m.Called(ctx, addressID)
	return args.Bool(0), args.Error(1)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) ListPublic(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	list, _ := args.Get(0).([]model.Product)
	return list, int64(args.Int(1)), args.Error(2)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

type FavoriteRepoMock struct{ mock.Mock }

func (m *FavoriteRepoMock) Create(ctx context.Context, fav model.Favorite) (model.Favorite, error) {
	args := m.Called(ctx, fav)
	f, _ := args.Get(0).(model.Favorite)
	return f, args.Error(1)
}

func (m *FavoriteRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Favorite, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]model.Favorite)
	return list, args.Error(1)
}

func (m *FavoriteRepoMock) FindByID(ctx context.Context, favoriteID int64) (model.Favorite, error) {
	args := m.Called(ctx, favoriteID)
	f, _ := args.Get(0).(model.Favorite)
	return f, args.Error(1)
}

func (m *FavoriteRepoMock) DeleteByID(ctx context.Context, favoriteID int64) error {
	args := m.Called(ctx, favoriteID)
	return args.Error(0)
}

func (m *FavoriteRepoMock) ExistsByUserAndProduct(ctx context.Context, userID, productID int64) (bool, error) {
	args := m.Called(ctx, userID, productID)
	return args.Bool(0), args.Error(1)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64, q repo.OrderListQuery) ([]model.Order, int64, error) {
	args := m.Called(ctx, userID, q)
	list, _ := args.Get(0).([]model.Order)
	return list, int64(args.Int(1)), args.Error(2)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (model.Order, error) {
	args := m.Called(ctx, order)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) IsDeliveredWithProduct(ctx context.Context, orderID, userID, productID int64) (bool, error) {
	args := m.Called(ctx, orderID, userID, productID)
	return args.Bool(0), args.Error(1)
}

type ReviewRepoMock struct{ mock.Mock }

func (m *ReviewRepoMock) Create(ctx context.Context, review model.Review) (model.Review, error) {
	args := m.Called(ctx, review)
	r, _ := args.Get(0).(model.Review)
	return r, args.Error(1)
}

func (m *ReviewRepoMock) ListByProductIDs(ctx context.Context, productIDs []int64) ([]model.Review, error) {
	args := m.Called(ctx, productIDs)
	list, _ := args.Get(0).([]model.Review)
	return list, args.Error(1)
}

func (m *ReviewRepoMock) ExistsByUserProductOrder(ctx context.Context, userID, productID, orderID int64) (bool, error) {
	args := m.Called(ctx, userID, productID, orderID)
	return args.Bool(0), args.Error(1)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *InventoryRepoMock) IncreaseStock(ctx context.Context, productID int64, qty int64) error {
	args := m.Called(ctx, productID, qty)
	return args.Error(0)
}

func (m *InventoryRepoMock) CreateAdjustment(ctx context.Context, adjustment model.InventoryAdjustment) error {
	args := m.Called(ctx, adjustment)
	return args.Error(0)
}

// =====================
// TxManager / TxRepos mocks
// =====================

// TxReposMock は WithinTx に渡す repos を固定して unit テストを回す
type TxReposMock struct {
	orders    repo.OrderRepository
	inventory repo.InventoryRepository
	products  repo.ProductRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository        { return r.orders }
func (r *TxReposMock) Inventory() repo.InventoryRepository { return r.inventory }
func (r *TxReposMock) Products() repo.ProductRepository    { return r.products }

type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	//呼ばれた事実だけ記録（ctxの具体値は問わない）
	m.Called(ctx)
	return fn(m.Repos)
}
